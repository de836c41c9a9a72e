package toolrun

import (
	"context"
	"strings"
	"testing"
)

func TestRun_CapturesStdoutAndExitZero(t *testing.T) {
	res, err := Run(context.Background(), Tool{Command: []string{"sh", "-c", "echo hello"}}, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("exit code: got %d want 0", res.ExitCode)
	}
	if got := strings.TrimSpace(res.Stdout); got != "hello" {
		t.Fatalf("stdout: got %q want %q", got, "hello")
	}
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	res, err := Run(context.Background(), Tool{Command: []string{"sh", "-c", "echo diag; exit 3"}}, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.ExitCode != 3 {
		t.Fatalf("exit code: got %d want 3", res.ExitCode)
	}
	if got := strings.TrimSpace(res.Stdout); got != "diag" {
		t.Fatalf("stdout: got %q want %q", got, "diag")
	}
}

func TestRun_FeedsStdin(t *testing.T) {
	res, err := Run(context.Background(), Tool{Command: []string{"cat"}}, "payload\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Stdout != "payload\n" {
		t.Fatalf("stdout: got %q want %q", res.Stdout, "payload\n")
	}
}

func TestRun_CapturesStderrSeparately(t *testing.T) {
	res, err := Run(context.Background(), Tool{Command: []string{"sh", "-c", "echo out; echo err >&2"}}, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.TrimSpace(res.Stdout); got != "out" {
		t.Fatalf("stdout: got %q", got)
	}
	if got := strings.TrimSpace(res.Stderr); got != "err" {
		t.Fatalf("stderr: got %q", got)
	}
}

func TestRun_MissingExecutableIsFatal(t *testing.T) {
	_, err := Run(context.Background(), Tool{Command: []string{"definitely-not-a-real-binary-xyz"}}, "")
	if err == nil {
		t.Fatalf("expected launch error for missing executable")
	}
}

func TestRun_EmptyCommandRejected(t *testing.T) {
	_, err := Run(context.Background(), Tool{}, "")
	if err == nil {
		t.Fatalf("expected error for empty command")
	}
}

func TestWithArgs_DoesNotMutateReceiver(t *testing.T) {
	base := Tool{Command: []string{"validator", "--strict"}}
	derived := base.WithArgs("file.txt")
	if len(base.Command) != 2 {
		t.Fatalf("base mutated: %v", base.Command)
	}
	if got := derived.String(); got != "validator --strict file.txt" {
		t.Fatalf("derived: got %q", got)
	}
}
