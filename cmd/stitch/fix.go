package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aproctor/stitch/internal/fixer"
)

const defaultConfigPath = "tools.yaml"

// loadConfig resolves the tools config: an explicit --config path, or
// tools.yaml in the working directory.
func loadConfig(path string) (*fixer.ToolsConfig, error) {
	if path != "" {
		return fixer.LoadToolsConfig(path)
	}
	cfg, err := fixer.LoadToolsConfig(defaultConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no tools config: pass --config or create %s", defaultConfigPath)
		}
		return nil, err
	}
	return cfg, nil
}

func runFix(args []string) int {
	var configPath string
	var tracePath string
	var docs []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config":
			i++
			if i >= len(args) {
				usage()
				return exitUsage
			}
			configPath = args[i]
		case "--trace":
			i++
			if i >= len(args) {
				usage()
				return exitUsage
			}
			tracePath = args[i]
		default:
			docs = append(docs, args[i])
		}
	}
	if len(docs) != 1 {
		usage()
		return exitUsage
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}

	s := &fixer.Session{
		Path:      docs[0],
		Formatter: cfg.FormatterTool(),
		Validator: cfg.ValidatorTool(),
		MaxRounds: cfg.MaxRounds,
	}
	res, err := s.Run(context.Background())
	if tracePath != "" && s.Trace != nil {
		if werr := s.Trace.WriteFile(tracePath); werr != nil {
			fmt.Fprintln(os.Stderr, werr)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}
	return reportOutcome(res)
}

// reportOutcome prints the terminal state of a session and maps it to a
// process exit code.
func reportOutcome(res fixer.Result) int {
	switch res.Outcome {
	case fixer.OutcomeClean:
		fmt.Printf("clean after %d round(s)\n", res.Rounds)
		return exitOK
	case fixer.OutcomeNoFixes:
		fmt.Print(res.LastOutput)
		return exitFailure
	default:
		if res.Oscillating {
			fmt.Println("max rounds reached (fixes oscillate without converging)")
		} else {
			fmt.Println("max rounds reached")
		}
		return exitFailure
	}
}

func runFixAll(args []string) int {
	var configPath string
	var patterns []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config":
			i++
			if i >= len(args) {
				usage()
				return exitUsage
			}
			configPath = args[i]
		default:
			patterns = append(patterns, args[i])
		}
	}
	if len(patterns) == 0 {
		usage()
		return exitUsage
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}

	seen := map[string]bool{}
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad pattern %q: %v\n", pattern, err)
			return exitFailure
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no files match")
		return exitFailure
	}
	sort.Strings(files)

	code := exitOK
	for _, path := range files {
		// One isolated session per document; sessions never share a buffer.
		s := &fixer.Session{
			Path:      path,
			Formatter: cfg.FormatterTool(),
			Validator: cfg.ValidatorTool(),
			MaxRounds: cfg.MaxRounds,
		}
		res, err := s.Run(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			code = exitFailure
			continue
		}
		fmt.Printf("%s: %s (%d round(s))\n", path, res.Outcome, res.Rounds)
		if res.Outcome != fixer.OutcomeClean {
			code = exitFailure
		}
	}
	return code
}
