// Command stitch repairs text documents with an external validator's
// machine-applicable fix suggestions, drafts initial documents with an LLM,
// and serves a document reranking endpoint.
//
// Exit codes: 0 on success, 1 on failure (document still rejected or the
// round budget ran out), 2 on usage errors.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(exitUsage)
	}

	switch os.Args[1] {
	case "fix":
		os.Exit(runFix(os.Args[2:]))
	case "fixall":
		os.Exit(runFixAll(os.Args[2:]))
	case "draft":
		os.Exit(runDraft(os.Args[2:]))
	case "rerank":
		os.Exit(runRerank(os.Args[2:]))
	default:
		usage()
		os.Exit(exitUsage)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  stitch fix [--config <tools.yaml>] [--trace <file>] <document>")
	fmt.Fprintln(os.Stderr, "  stitch fixall [--config <tools.yaml>] <glob> [<glob>...]")
	fmt.Fprintln(os.Stderr, "  stitch draft [--config <tools.yaml>] [--model <model>] <task> <out> [input-json]")
	fmt.Fprintln(os.Stderr, "  stitch rerank [--addr <host:port>] [--model <name>] -- <scorer-command> [args...]")
}
