package logging

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFileMaxBytes = 1024 * 1024

// fileSink appends one JSON object per event to icongen-<run>-<part>.jsonl
// files in dir, starting a new part once maxBytes would be exceeded.
type fileSink struct {
	mu       sync.Mutex
	dir      string
	run      string
	maxBytes int64
	part     int
	file     *os.File
	written  int64
	closed   bool
}

type jsonRecord struct {
	Time    string         `json:"time"`
	Run     string         `json:"run"`
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

func newFileSink(dir string, maxBytes int64) (*fileSink, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("log directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if maxBytes <= 0 {
		maxBytes = defaultLogFileMaxBytes
	}
	return &fileSink{
		dir:      dir,
		run:      time.Now().UTC().Format("20060102-150405"),
		maxBytes: maxBytes,
	}, nil
}

// WriteEvent opens the first part lazily, so a run that logs nothing leaves
// no file behind.
func (s *fileSink) WriteEvent(event Event) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return os.ErrClosed
	}

	line, err := json.Marshal(jsonRecord{
		Time:    event.Time.UTC().Format(time.RFC3339Nano),
		Run:     s.run,
		Level:   strings.ToUpper(event.Level.String()),
		Message: event.Message,
		Fields:  jsonFields(event.Fields),
	})
	if err != nil {
		return fmt.Errorf("encode log event: %w", err)
	}
	line = append(line, '\n')

	if s.file == nil || (s.written > 0 && s.written+int64(len(line)) > s.maxBytes) {
		if err := s.nextPartLocked(); err != nil {
			return err
		}
	}
	n, err := s.file.Write(line)
	s.written += int64(n)
	return err
}

func (s *fileSink) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// nextPartLocked closes the current part and creates the next unused one.
func (s *fileSink) nextPartLocked() error {
	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
	}
	for {
		s.part++
		path := filepath.Join(s.dir, fmt.Sprintf("icongen-%s-%03d.jsonl", s.run, s.part))
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		s.file = f
		s.written = 0
		return nil
	}
}

// jsonFields turns values encoding/json would render badly (errors marshal
// to {} and durations to nanoseconds) into strings.
func jsonFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]any, len(fields))
	for key, value := range fields {
		switch v := value.(type) {
		case error:
			out[key] = v.Error()
		case time.Duration:
			out[key] = v.String()
		case fmt.Stringer:
			out[key] = v.String()
		default:
			out[key] = value
		}
	}
	return out
}
