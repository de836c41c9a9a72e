package main

import (
	"fmt"
	"os"

	"github.com/aproctor/stitch/internal/rerank"
	"github.com/aproctor/stitch/internal/toolrun"
)

func runRerank(args []string) int {
	addr := "127.0.0.1:5001"
	modelName := "external"
	var scorerCmd []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--addr":
			i++
			if i >= len(args) {
				usage()
				return exitUsage
			}
			addr = args[i]
		case "--model":
			i++
			if i >= len(args) {
				usage()
				return exitUsage
			}
			modelName = args[i]
		case "--":
			scorerCmd = args[i+1:]
			i = len(args)
		default:
			usage()
			return exitUsage
		}
	}
	if len(scorerCmd) == 0 {
		usage()
		return exitUsage
	}

	svc := rerank.New(
		rerank.Config{Addr: addr, ModelName: modelName},
		&rerank.ProcessScorer{Tool: toolrun.Tool{Command: scorerCmd}},
	)
	if err := svc.ListenAndServe(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}
	return exitOK
}
