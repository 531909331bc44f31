// Package eventlog persists the event history as a flat YAML file.
//
// The file is the only durable state of the application. Stored score
// deltas are kept in it so the audit trail survives restarts without a
// replay on load.
package eventlog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/okian/steady/internal/domain/model"
)

// File permissions for the log and its parent directory.
const (
	fileMode = 0o600
	dirMode  = 0o700
)

// record is the on-disk shape of one event.
type record struct {
	ID    int64     `yaml:"id"`
	Type  string    `yaml:"type"`
	TS    time.Time `yaml:"ts"`
	Value int       `yaml:"value,omitempty"`
	Delta float64   `yaml:"delta"`
}

// document is the on-disk shape of the whole log.
type document struct {
	Events []record `yaml:"events"`
}

// File reads and writes one event-log file.
type File struct {
	path string
}

// New returns a File bound to the given path.
func New(path string) *File {
	return &File{path: path}
}

// Path returns the bound file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the full history. A missing file is an empty history, not
// an error.
func (f *File) Load(ctx context.Context) ([]model.ActivityEvent, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	events := make([]model.ActivityEvent, 0, len(doc.Events))
	for _, r := range doc.Events {
		events = append(events, model.ActivityEvent{
			ID:         r.ID,
			Type:       model.EventType(r.Type),
			TS:         r.TS,
			Value:      r.Value,
			ScoreDelta: r.Delta,
		})
	}
	return events, nil
}

// Save writes the full history, replacing the previous file contents via
// a temp file and rename so a crash never leaves a half-written log.
func (f *File) Save(ctx context.Context, events []model.ActivityEvent) error {
	doc := document{Events: make([]record, 0, len(events))}
	for _, ev := range events {
		doc.Events = append(doc.Events, record{
			ID:    ev.ID,
			Type:  string(ev.Type),
			TS:    ev.TS,
			Value: ev.Value,
			Delta: ev.ScoreDelta,
		})
	}

	raw, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}
