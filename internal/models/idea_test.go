package models

import (
	"strings"
	"testing"

	"github.com/ajharbinger/ideascore/internal/errors"
)

func validIdea() Idea {
	return Idea{
		Name:           "LedgerLoop",
		Description:    "Automates invoice reconciliation for small finance teams",
		Industry:       "fintech",
		TechComplexity: 0.4,
		RegulatoryRisk: 0.3,
	}
}

func TestIdea_WithDefaults(t *testing.T) {
	idea := Idea{Name: "  LedgerLoop ", Industry: " fintech"}.WithDefaults()

	if idea.Name != "LedgerLoop" || idea.Industry != "fintech" {
		t.Errorf("Expected trimmed fields, got %q and %q", idea.Name, idea.Industry)
	}
	if idea.CustomerSize != CustomerSMB {
		t.Errorf("Expected default customer size %s, got %s", CustomerSMB, idea.CustomerSize)
	}
	if idea.RevenueModel != RevenueSubscription {
		t.Errorf("Expected default revenue model %s, got %s", RevenueSubscription, idea.RevenueModel)
	}

	kept := Idea{CustomerSize: CustomerEnterprise, RevenueModel: RevenueAds}.WithDefaults()
	if kept.CustomerSize != CustomerEnterprise || kept.RevenueModel != RevenueAds {
		t.Errorf("Expected explicit values to be kept, got %+v", kept)
	}
}

func TestIdea_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Idea)
		valid  bool
	}{
		{"valid idea", func(*Idea) {}, true},
		{"missing name", func(i *Idea) { i.Name = " " }, false},
		{"name too long", func(i *Idea) { i.Name = strings.Repeat("a", 256) }, false},
		{"missing description", func(i *Idea) { i.Description = "" }, false},
		{"description under five words", func(i *Idea) { i.Description = "invoice reconciliation for teams" }, false},
		{"missing industry", func(i *Idea) { i.Industry = "" }, false},
		{"tech complexity above 1", func(i *Idea) { i.TechComplexity = 1.2 }, false},
		{"negative regulatory risk", func(i *Idea) { i.RegulatoryRisk = -0.1 }, false},
		{"negative team size", func(i *Idea) { i.TeamSize = -1 }, false},
		{"boundary risk values", func(i *Idea) { i.TechComplexity = 1; i.RegulatoryRisk = 0 }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			idea := validIdea()
			tc.modify(&idea)

			err := idea.Validate()
			if tc.valid && err != nil {
				t.Errorf("Expected valid idea, got %v", err)
			}
			if !tc.valid {
				if err == nil {
					t.Fatal("Expected validation error, got nil")
				}
				if !errors.IsValidation(err) {
					t.Errorf("Expected a validation error code, got %v", err)
				}
			}
		})
	}
}
