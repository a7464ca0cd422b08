package generators

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/reusee/mailx/logs"
	"github.com/reusee/mailx/mailconfigs"
)

// LogRecord is one line of the session log. Exactly one of Response and
// Error is non-nil.
type LogRecord struct {
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float32 `json:"temperature"`
	AgentName   string  `json:"agent_name"`
	Response    *string `json:"response"`
	Error       *string `json:"error"`
}

// SessionLog is an append-only JSONL file recording every backend call.
type SessionLog struct {
	path   string
	mu     sync.Mutex
	logger logs.Logger
}

func NewSessionLog(path string, logger logs.Logger) *SessionLog {
	return &SessionLog{
		path:   path,
		logger: logger,
	}
}

func (Module) SessionLog(
	path mailconfigs.LogPath,
	logger logs.Logger,
) *SessionLog {
	return NewSessionLog(string(path), logger)
}

// Generate calls generator and appends one record whether the call succeeds,
// fails or panics. A failure to write the record is logged, not returned.
func (s *SessionLog) Generate(
	ctx context.Context,
	generator Generator,
	turns []Turn,
	temperature float32,
	agentName string,
) (response string, err error) {
	args := generator.Args()
	record := LogRecord{
		Provider:    args.Provider,
		Model:       args.Model,
		Prompt:      FormatPrompt(turns),
		Temperature: temperature,
		AgentName:   agentName,
	}

	defer func() {
		p := recover()
		switch {
		case p != nil:
			msg := fmt.Sprintf("panic: %v", p)
			record.Error = &msg
		case err != nil:
			msg := err.Error()
			record.Error = &msg
		default:
			record.Response = &response
		}
		if writeErr := s.Append(record); writeErr != nil {
			s.logger.WarnContext(ctx, "write session log",
				"path", s.path,
				"error", writeErr,
			)
		}
		if p != nil {
			panic(p)
		}
	}()

	return generator.Generate(ctx, turns, temperature)
}

func (s *SessionLog) Append(record LogRecord) error {
	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
