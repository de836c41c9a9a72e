// Parses validator diagnostic output. The validator emits one record per
// line as NDJSON; each record may carry machine-applicable fix suggestions
// alongside free-form diagnostic text.
package fixer

import (
	"bufio"
	"bytes"
	"encoding/json"
)

// diagRecord is a single NDJSON line of validator output.
type diagRecord struct {
	Fixes []fixRecord `json:"fixes"`
}

// fixRecord is one entry of a record's "fixes" collection.
type fixRecord struct {
	Edit editRecord `json:"edit"`
}

// editRecord is the wire shape of a suggested edit. Only insertions are
// modeled; pointers distinguish absent fields from zero values so that
// non-insertion fix kinds are ignored rather than misread.
type editRecord struct {
	At     *int    `json:"at"`
	Insert *string `json:"insert"`
}

// ParseDiagnostics scans the validator's stdout line by line and collects
// every well-formed insertion edit in first-seen order. Lines that do not
// decode as records are diagnostic prose and are skipped silently; they
// still reach the caller through the raw output.
func ParseDiagnostics(out string) []Edit {
	var edits []Edit
	scanner := bufio.NewScanner(bytes.NewReader([]byte(out)))
	scanner.Buffer(make([]byte, 0, 256*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec diagRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		for _, f := range rec.Fixes {
			if f.Edit.At == nil || f.Edit.Insert == nil || *f.Edit.At < 0 {
				continue
			}
			edits = append(edits, Edit{Pos: *f.Edit.At, Insert: *f.Edit.Insert})
		}
	}
	return edits
}
