package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ajharbinger/ideascore/internal/errors"
	"github.com/ajharbinger/ideascore/internal/logger"
	"github.com/ajharbinger/ideascore/internal/models"
	"github.com/ajharbinger/ideascore/internal/pipeline"
	"github.com/ajharbinger/ideascore/internal/providers"
	"github.com/ajharbinger/ideascore/pkg/config"
)

func main() {
	ideaPath := flag.String("idea", "", "path to the idea file (.yaml, .yml or .json)")
	compact := flag.Bool("compact", false, "print the report on a single line")
	quiet := flag.Bool("quiet", false, "suppress progress logs")
	flag.Parse()

	if *ideaPath == "" {
		fmt.Fprintln(os.Stderr, "usage: evaluate -idea <file> [-compact] [-quiet]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.New()
	appLogger := logger.NewSimpleLogger()
	if *quiet {
		appLogger = logger.Discard()
	}

	idea, err := loadIdea(*ideaPath)
	if err != nil {
		appLogger.Fatal("failed to read idea", err, "path", *ideaPath)
	}

	httpClient := providers.NewHTTPClient(cfg.HTTP)
	defer httpClient.Close()

	evaluator := pipeline.NewEvaluator(
		pipeline.NewProviders(cfg, httpClient, providers.NewHealthRegistry(), appLogger),
		cfg.AgentTimeout,
		appLogger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := evaluator.Evaluate(ctx, idea)
	if err != nil {
		if errors.IsValidation(err) {
			fmt.Fprintf(os.Stderr, "invalid idea: %v\n", err)
			os.Exit(2)
		}
		appLogger.Fatal("evaluation failed", err)
	}

	enc := json.NewEncoder(os.Stdout)
	if !*compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(report); err != nil {
		appLogger.Fatal("failed to write report", err)
	}
}

// loadIdea parses YAML or JSON depending on the file extension
func loadIdea(path string) (models.Idea, error) {
	var idea models.Idea

	raw, err := os.ReadFile(path)
	if err != nil {
		return idea, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &idea)
	case ".json":
		err = json.Unmarshal(raw, &idea)
	default:
		return idea, fmt.Errorf("unsupported idea file extension %q", filepath.Ext(path))
	}
	if err != nil {
		return idea, fmt.Errorf("parse %s: %w", path, err)
	}
	return idea, nil
}
