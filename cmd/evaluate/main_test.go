package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadIdea_YAML(t *testing.T) {
	path := writeFile(t, "idea.yaml", `
name: LedgerLoop
description: Automates invoice reconciliation for small finance teams
industry: fintech
target_customer_type: finance teams
customer_size: Mid-Market
tech_complexity: 0.4
regulatory_risk: 0.3
`)

	idea, err := loadIdea(path)
	require.NoError(t, err)

	assert.Equal(t, "LedgerLoop", idea.Name)
	assert.Equal(t, "Mid-Market", idea.CustomerSize)
	assert.Equal(t, 0.4, idea.TechComplexity)
	assert.Equal(t, 0.3, idea.RegulatoryRisk)
}

func TestLoadIdea_JSON(t *testing.T) {
	path := writeFile(t, "idea.json", `{"name": "LedgerLoop", "industry": "fintech", "team_size": 3}`)

	idea, err := loadIdea(path)
	require.NoError(t, err)

	assert.Equal(t, "fintech", idea.Industry)
	assert.Equal(t, 3, idea.TeamSize)
}

func TestLoadIdea_Errors(t *testing.T) {
	_, err := loadIdea(writeFile(t, "idea.txt", "name: x"))
	assert.ErrorContains(t, err, "unsupported")

	_, err = loadIdea(writeFile(t, "idea.json", "{broken"))
	assert.Error(t, err)

	_, err = loadIdea(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
