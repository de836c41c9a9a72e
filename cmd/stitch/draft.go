package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aproctor/stitch/internal/draft"
	"github.com/aproctor/stitch/internal/llm"
)

const defaultDraftModel = "gpt-4.1-mini"

func runDraft(args []string) int {
	var configPath string
	var model string
	var positional []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config":
			i++
			if i >= len(args) {
				usage()
				return exitUsage
			}
			configPath = args[i]
		case "--model":
			i++
			if i >= len(args) {
				usage()
				return exitUsage
			}
			model = args[i]
		default:
			positional = append(positional, args[i])
		}
	}
	if len(positional) < 2 || len(positional) > 3 {
		usage()
		return exitUsage
	}
	task, outPath := positional[0], positional[1]
	inputJSON := "{}"
	if len(positional) == 3 {
		inputJSON = positional[2]
	}

	if model == "" {
		model = strings.TrimSpace(os.Getenv("STITCH_MODEL"))
	}
	if model == "" {
		model = defaultDraftModel
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}
	client, err := llm.NewFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}

	d := &draft.Drafter{
		Client:    client,
		Model:     model,
		Formatter: cfg.FormatterTool(),
		Validator: cfg.ValidatorTool(),
	}
	res, err := d.Draft(context.Background(), task, outPath, inputJSON)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}
	fmt.Print(res.Stdout)
	if res.ExitCode != 0 {
		return exitFailure
	}
	return exitOK
}
