package fixer

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/oklog/ulid/v2"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/blake3"
)

// RoundRecord captures one validate-parse-apply round for later inspection.
type RoundRecord struct {
	Round         int    `msgpack:"round"`
	BufferHash    string `msgpack:"buffer_hash"`
	ValidatorExit int    `msgpack:"validator_exit"`
	EditCount     int    `msgpack:"edit_count"`
	Repeat        bool   `msgpack:"repeat"`
}

// Trace is the audit trail of one fix session. It hashes the buffer each
// round; a hash seen in an earlier round means the applied fixes have cycled
// back to a previous buffer state and the session is oscillating.
type Trace struct {
	SessionID string        `msgpack:"session_id"`
	Rounds    []RoundRecord `msgpack:"rounds"`

	seen map[string]int
}

func NewTrace() *Trace {
	return &Trace{
		SessionID: ulid.Make().String(),
		seen:      map[string]int{},
	}
}

// Record appends one round. It reports whether the buffer state was already
// observed in an earlier round.
func (t *Trace) Record(round int, buf string, validatorExit, editCount int) bool {
	if t.seen == nil {
		t.seen = map[string]int{}
	}
	sum := blake3.Sum256([]byte(buf))
	h := hex.EncodeToString(sum[:])
	_, repeat := t.seen[h]
	if !repeat {
		t.seen[h] = round
	}
	t.Rounds = append(t.Rounds, RoundRecord{
		Round:         round,
		BufferHash:    h,
		ValidatorExit: validatorExit,
		EditCount:     editCount,
		Repeat:        repeat,
	})
	return repeat
}

// Oscillating reports whether any round revisited a previous buffer state.
func (t *Trace) Oscillating() bool {
	for _, r := range t.Rounds {
		if r.Repeat {
			return true
		}
	}
	return false
}

// WriteFile persists the trace as msgpack.
func (t *Trace) WriteFile(path string) error {
	b, err := msgpack.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode trace: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	return nil
}

// ReadTraceFile loads a trace previously written by WriteFile.
func ReadTraceFile(path string) (*Trace, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Trace
	if err := msgpack.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("decode trace %s: %w", path, err)
	}
	return &t, nil
}
