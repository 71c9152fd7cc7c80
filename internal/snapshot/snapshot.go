// Package snapshot reads and writes the portable JSON export of one account.
package snapshot

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"lifeadmin/internal/engine"
)

// Version is the snapshot format written by Encode.
const Version = 1

//go:embed schema.json
var schemaJSON string

type Snapshot struct {
	Version    int                     `json:"version"`
	Account    string                  `json:"account"`
	ExportedAt time.Time               `json:"exportedAt"`
	Tasks      []engine.Task           `json:"tasks"`
	State      engine.ProgressionState `json:"state"`
}

func New(account string, tasks []engine.Task, state engine.ProgressionState, at time.Time) Snapshot {
	if tasks == nil {
		tasks = []engine.Task{}
	}
	return Snapshot{
		Version:    Version,
		Account:    account,
		ExportedAt: at.UTC(),
		Tasks:      tasks,
		State:      state,
	}
}

func Encode(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Decode validates the document against the snapshot schema, then decodes it
// and reconciles the progression state with the current catalog.
func Decode(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	if err := Validate(data); err != nil {
		return Snapshot{}, err
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	for i := range s.Tasks {
		if !s.Tasks[i].Priority.IsValid() {
			s.Tasks[i].Priority = engine.ParsePriority(string(s.Tasks[i].Priority))
		}
	}
	s.State = engine.Reconcile(s.State)
	return s, nil
}

// Validate checks raw snapshot JSON against the embedded schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schemaJSON), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate snapshot schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, schemaErr := range result.Errors() {
		errs = append(errs, schemaErr.String())
	}
	sort.Strings(errs)

	return fmt.Errorf("snapshot schema validation failed: %s", strings.Join(errs, "; "))
}
