// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

// Package trace records one line per conversation turn.
package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Record is one conversation turn as it is logged
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	TurnID    string    `json:"turn_id"`
	SessionID string    `json:"session_id"`
	UserInput string    `json:"user_input"`
	Agent     string    `json:"agent"`
	Category  string    `json:"category,omitempty"`
	Response  string    `json:"response"`
	Blocked   bool      `json:"blocked"`
	Error     string    `json:"error,omitempty"`
}

// Recorder receives one record per processed turn
type Recorder interface {
	Record(record Record)
}

// NewTurnID returns a fresh correlation ID for a turn
func NewTurnID() string {
	return uuid.New().String()
}

// JSONLRecorder appends records to a dated JSONL file
type JSONLRecorder struct {
	mu   sync.Mutex
	file *os.File
}

func NewJSONLRecorder(dir string) (*JSONLRecorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, pkgerrors.Wrapf(err, "creating log directory %s", dir)
	}
	path := filepath.Join(dir, fmt.Sprintf("conversations_%s.jsonl", time.Now().Format("20060102")))
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "opening conversation log %s", path)
	}
	return &JSONLRecorder{file: file}, nil
}

func (r *JSONLRecorder) Record(record Record) {
	line, err := json.Marshal(record)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal turn record")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.file.Write(append(line, '\n')); err != nil {
		log.Error().Err(err).Msg("failed to write turn record")
	}
}

func (r *JSONLRecorder) Close() error {
	return r.file.Close()
}

// Memory keeps records in memory, for tests
type Memory struct {
	mu      sync.Mutex
	records []Record
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Record(record Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
}

func (m *Memory) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := make([]Record, len(m.records))
	copy(records, m.records)
	return records
}

// Nop discards all records
type Nop struct{}

func (Nop) Record(record Record) {}
