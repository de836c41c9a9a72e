// Package draft generates an initial document with one blocking LLM call,
// then hands it to the external formatter and validator. It owns no loop:
// repairing a rejected draft is the fixer's job.
package draft

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aproctor/stitch/internal/llm"
	"github.com/aproctor/stitch/internal/toolrun"
)

// DefaultSystemPrompt instructs the model to produce a document the
// validator will accept.
const DefaultSystemPrompt = "You write documents that must pass an automated validator. " +
	"Return only the document body, with no commentary."

const userTemplate = "Task: %s\nInput: %s\nReturn a single file that passes validation."

// Drafter generates one document and runs it through the external tools.
type Drafter struct {
	Client *llm.Client
	Model  string

	// System overrides DefaultSystemPrompt when non-empty.
	System string

	// Formatter reformats the draft via stdin/stdout. Nil skips formatting.
	Formatter *toolrun.Tool

	// Validator is run once against the written file; its result is
	// returned for the caller to report.
	Validator toolrun.Tool
}

// Draft asks the model for a document, writes it to outPath, formats it in
// place, and validates it once. The validator's result is returned even
// when its exit status is non-zero.
func (d *Drafter) Draft(ctx context.Context, task, outPath, inputJSON string) (toolrun.Result, error) {
	if strings.TrimSpace(inputJSON) == "" {
		inputJSON = "{}"
	}
	temp := 0.2
	resp, err := d.Client.Complete(ctx, llm.Request{
		Model:       d.Model,
		System:      d.systemPrompt(),
		Messages:    []llm.Message{{Role: "user", Content: fmt.Sprintf(userTemplate, task, inputJSON)}},
		Temperature: &temp,
	})
	if err != nil {
		return toolrun.Result{}, fmt.Errorf("draft request: %w", err)
	}

	body := StripFences(resp.Text)
	if err := os.WriteFile(outPath, []byte(body), 0o644); err != nil {
		return toolrun.Result{}, fmt.Errorf("write draft: %w", err)
	}

	if d.Formatter != nil {
		res, err := toolrun.Run(ctx, *d.Formatter, body)
		if err != nil {
			return toolrun.Result{}, fmt.Errorf("formatter: %w", err)
		}
		if res.ExitCode == 0 && res.Stdout != "" {
			if err := os.WriteFile(outPath, []byte(res.Stdout), 0o644); err != nil {
				return toolrun.Result{}, fmt.Errorf("write formatted draft: %w", err)
			}
		}
	}

	res, err := toolrun.Run(ctx, d.Validator.WithArgs(outPath), "")
	if err != nil {
		return toolrun.Result{}, fmt.Errorf("validator: %w", err)
	}
	return res, nil
}

func (d *Drafter) systemPrompt() string {
	if strings.TrimSpace(d.System) != "" {
		return d.System
	}
	return DefaultSystemPrompt
}

// StripFences removes a Markdown code fence wrapper from model output. The
// text is returned untouched when no fence is present; a leading language
// tag on the opening fence is dropped.
func StripFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	parts := strings.Split(s, "```")
	if len(parts) < 2 {
		return s
	}
	code := parts[1]
	if i := strings.IndexByte(code, '\n'); i >= 0 {
		first := strings.TrimSpace(code[:i])
		if first != "" && !strings.ContainsAny(first, " \t") {
			code = code[i+1:]
		}
	}
	return strings.TrimSpace(code)
}
