package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Progress is the whole save file: the unlock pointer and one solution per level.
type Progress struct {
	MaxUnlocked int                 `json:"max_unlocked"`
	Solutions   map[string]Solution `json:"solutions"`
}

// NewProgress returns empty progress with only the first level unlocked.
func NewProgress() *Progress {
	return &Progress{Solutions: make(map[string]Solution)}
}

// Solution returns the stored solution for a level key.
func (p *Progress) Solution(key string) (Solution, bool) {
	sol, ok := p.Solutions[key]
	return sol, ok
}

// Put stores a solution under a level key.
func (p *Progress) Put(key string, sol Solution) {
	if p.Solutions == nil {
		p.Solutions = make(map[string]Solution)
	}
	p.Solutions[key] = sol
}

// Unlock advances the unlock pointer by one if idx is the furthest unlocked
// level. Returns true if the pointer moved.
func (p *Progress) Unlock(idx int) bool {
	if idx != p.MaxUnlocked {
		return false
	}
	p.MaxUnlocked++
	return true
}

// Load reads progress from path. A missing file yields empty progress; an
// unreadable or corrupt file is logged and also yields empty progress.
func Load(path string) *Progress {
	p, err := Read(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("ignoring unreadable save file", "path", path, "error", err)
		}
		return NewProgress()
	}
	return p
}

// Read reads progress from path, reporting any error.
func Read(path string) (*Progress, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read progress: %w", err)
	}

	p := NewProgress()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("unmarshal progress: %w", err)
	}
	if p.Solutions == nil {
		p.Solutions = make(map[string]Solution)
	}
	if p.MaxUnlocked < 0 {
		p.MaxUnlocked = 0
	}
	return p, nil
}

// Store writes progress to path as indented JSON.
func (p *Progress) Store(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create save dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	return nil
}
