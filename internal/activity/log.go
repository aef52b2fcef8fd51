// Package activity appends tracker mutations to a JSONL audit log.
package activity

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	logFileMode   = 0o600
	maxLogEntries = 10000
)

// Entry is one line of the activity log.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Date      string    `json:"date,omitempty"`
	TaskID    string    `json:"task_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Log writes to a single JSONL file. A Log with an empty path discards
// everything.
type Log struct {
	path       string
	maxEntries int
}

func New(path string) *Log {
	return &Log{path: path, maxEntries: maxLogEntries}
}

// Discard returns a Log that records nothing.
func Discard() *Log {
	return &Log{}
}

func (l *Log) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes entry and truncates the file to the newest entries.
func (l *Log) Append(entry Entry) error {
	if l == nil || l.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // log path from config
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling log entry: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing log entry: %w", err)
	}

	_ = l.truncateIfNeeded()
	return nil
}

// Record appends an entry stamped at now. Errors are discarded so that
// logging never fails a mutation.
func (l *Log) Record(now time.Time, action, date, taskID, detail string) {
	_ = l.Append(Entry{Timestamp: now, Action: action, Date: date, TaskID: taskID, Detail: detail})
}

// Read returns every parseable entry, oldest first. A missing file is empty.
func (l *Log) Read() ([]Entry, error) {
	if l == nil || l.path == "" {
		return nil, nil
	}
	f, err := os.Open(l.path) //nolint:gosec // trusted path
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if json.Unmarshal(scanner.Bytes(), &e) == nil {
			out = append(out, e)
		}
	}
	return out, scanner.Err()
}

func (l *Log) truncateIfNeeded() error {
	f, err := os.Open(l.path) //nolint:gosec // trusted path
	if err != nil {
		return err
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	_ = f.Close()

	if err := scanner.Err(); err != nil {
		return err
	}
	if len(lines) <= l.maxEntries {
		return nil
	}

	lines = lines[len(lines)-l.maxEntries:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return os.WriteFile(l.path, []byte(buf.String()), logFileMode)
}
