package probe

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ch0t4nk/stm32h753zi-sub001/internal/clk"
)

// captureFile is the on-disk YAML shape of a recorded session.
type captureFile struct {
	Captures []captureEntry `yaml:"captures"`
}

type captureEntry struct {
	Label     string               `yaml:"label,omitempty"`
	Registers clk.RegisterSnapshot `yaml:"registers"`
}

// ReplaySource replays captures recorded to a YAML file, in file order.
// Each capture gets a fresh ID at load time.
type ReplaySource struct {
	mu       sync.Mutex
	captures []Capture
	next     int
}

// LoadReplay reads a capture file and returns a source that replays it.
func LoadReplay(path string) (*ReplaySource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read capture file: %w", err)
	}
	return ParseReplay(data)
}

// ParseReplay builds a ReplaySource from raw capture YAML.
func ParseReplay(data []byte) (*ReplaySource, error) {
	var file captureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse capture file: %w", err)
	}
	if len(file.Captures) == 0 {
		return nil, fmt.Errorf("capture file contains no captures")
	}

	captures := make([]Capture, len(file.Captures))
	for i, entry := range file.Captures {
		label := entry.Label
		if label == "" {
			label = fmt.Sprintf("capture-%d", i)
		}
		captures[i] = Capture{
			ID:       uuid.NewString(),
			Label:    label,
			Snapshot: entry.Registers,
		}
	}

	return &ReplaySource{captures: captures}, nil
}

// Len returns the number of captures in the replay.
func (s *ReplaySource) Len() int {
	return len(s.captures)
}

// At returns the capture at index i without advancing the replay
// cursor.
func (s *ReplaySource) At(i int) (Capture, error) {
	if i < 0 || i >= len(s.captures) {
		return Capture{}, fmt.Errorf("capture index %d out of range", i)
	}
	return s.captures[i], nil
}

// ReadSnapshot returns the next recorded capture, ErrExhausted after
// the last one.
func (s *ReplaySource) ReadSnapshot(ctx context.Context) (Capture, error) {
	if err := ctx.Err(); err != nil {
		return Capture{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= len(s.captures) {
		return Capture{}, ErrExhausted
	}
	c := s.captures[s.next]
	s.next++
	return c, nil
}
