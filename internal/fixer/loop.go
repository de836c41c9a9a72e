// Package fixer repairs a document by repeatedly consulting an external
// validator, applying the insertion edits it suggests, and re-validating
// until the document is accepted or the round budget runs out.
package fixer

import (
	"context"
	"fmt"
	"os"

	"github.com/aproctor/stitch/internal/toolrun"
)

// Outcome is the terminal state of a fix session.
type Outcome string

const (
	// OutcomeClean: the validator accepted the document.
	OutcomeClean Outcome = "clean"
	// OutcomeNoFixes: the validator rejected the document and offered no
	// applicable edits. Author intervention is needed.
	OutcomeNoFixes Outcome = "no_fixes"
	// OutcomeMaxRounds: edits kept being offered and applied but the
	// document was never accepted within the round budget.
	OutcomeMaxRounds Outcome = "max_rounds"
)

// Result is the report of one completed fix session.
type Result struct {
	Outcome Outcome
	Rounds  int

	// LastOutput is the validator's raw stdout from the final round, for
	// pass-through reporting when no fixes were offered.
	LastOutput string

	// Oscillating is set when the session revisited an earlier buffer
	// state, which means the offered fixes cycle without converging.
	Oscillating bool
}

// Session owns the working buffer for one document. The buffer lives in
// memory between rounds and is written back to Path before every validator
// run, so the validator always observes the latest state through the file.
// A Session is single-use and must not be shared across goroutines; repair
// of multiple documents takes one Session per document.
type Session struct {
	// Path is the document's backing store. The validator receives it as
	// its argument and the file is overwritten once per round.
	Path string

	// Formatter reads the buffer on stdin and emits the reformatted buffer
	// on stdout. Nil disables the formatting pass.
	Formatter *toolrun.Tool

	// Validator receives Path as its final argument. Exit 0 means the
	// document is accepted; any other status means rejected.
	Validator toolrun.Tool

	// MaxRounds is the round budget. Zero means DefaultMaxRounds.
	MaxRounds int

	// Trace collects per-round audit records. Created on first use when nil.
	Trace *Trace
}

// Run executes one formatting pass followed by up to MaxRounds
// validate-parse-apply rounds.
func (s *Session) Run(ctx context.Context) (Result, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return Result{}, fmt.Errorf("read document: %w", err)
	}
	buf := string(b)

	budget := s.MaxRounds
	if budget <= 0 {
		budget = DefaultMaxRounds
	}
	if s.Trace == nil {
		s.Trace = NewTrace()
	}

	if s.Formatter != nil {
		res, err := toolrun.Run(ctx, *s.Formatter, buf)
		if err != nil {
			return Result{}, fmt.Errorf("formatter: %w", err)
		}
		// A failing or silent formatter keeps the original buffer.
		if res.ExitCode == 0 && res.Stdout != "" {
			buf = res.Stdout
		}
	}

	rounds := 0
	for rounds < budget {
		rounds++
		if err := os.WriteFile(s.Path, []byte(buf), 0o644); err != nil {
			return Result{}, fmt.Errorf("write document: %w", err)
		}
		res, err := toolrun.Run(ctx, s.Validator.WithArgs(s.Path), "")
		if err != nil {
			return Result{}, fmt.Errorf("validator: %w", err)
		}
		if res.ExitCode == 0 {
			s.Trace.Record(rounds, buf, res.ExitCode, 0)
			return Result{Outcome: OutcomeClean, Rounds: rounds}, nil
		}

		edits := ParseDiagnostics(res.Stdout)
		s.Trace.Record(rounds, buf, res.ExitCode, len(edits))
		if len(edits) == 0 {
			return Result{Outcome: OutcomeNoFixes, Rounds: rounds, LastOutput: res.Stdout}, nil
		}

		next, err := Apply(buf, edits)
		if err != nil {
			// The validator referenced offsets the buffer does not have:
			// the two have desynchronized. Surface it, never clamp.
			return Result{}, fmt.Errorf("apply round %d edits: %w", rounds, err)
		}
		buf = next
	}

	return Result{
		Outcome:     OutcomeMaxRounds,
		Rounds:      rounds,
		Oscillating: s.Trace.Oscillating(),
	}, nil
}
