package save

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProgress_StoreLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "save_game.json")

	p := NewProgress()
	p.MaxUnlocked = 3
	p.Put("2", Solution{
		UserNodes:   []NodeDesc{{Type: "Or", X: 400, Y: 250}},
		Connections: []Connection{{FromIdx: 0, ToIdx: 3, PortIdx: 0}},
	})

	if err := p.Store(path); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.MaxUnlocked != 3 {
		t.Errorf("MaxUnlocked = %d, want 3", got.MaxUnlocked)
	}
	sol, ok := got.Solution("2")
	if !ok {
		t.Fatal("solution for level 2 missing")
	}
	if len(sol.UserNodes) != 1 || sol.UserNodes[0].Type != "Or" {
		t.Errorf("UserNodes = %+v", sol.UserNodes)
	}
	if len(sol.Connections) != 1 || sol.Connections[0].ToIdx != 3 {
		t.Errorf("Connections = %+v", sol.Connections)
	}
}

func TestProgress_FileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	data := `{
  "max_unlocked": 1,
  "solutions": {
    "1": {
      "user_nodes": [{"type": "AndNode", "x": 500, "y": 300}],
      "connections": [{"from_idx": 0, "to_idx": 3, "port_idx": 0}]
    }
  }
}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	p := Load(path)
	if p.MaxUnlocked != 1 {
		t.Errorf("MaxUnlocked = %d, want 1", p.MaxUnlocked)
	}
	sol, ok := p.Solution("1")
	if !ok || len(sol.UserNodes) != 1 || sol.UserNodes[0].Type != "AndNode" {
		t.Errorf("solution = %+v, %v", sol, ok)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "absent.json"))
	if p.MaxUnlocked != 0 || len(p.Solutions) != 0 {
		t.Error("missing file should give empty progress")
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Read(path); err == nil {
		t.Error("Read should report a corrupt file")
	}
	p := Load(path)
	if p.MaxUnlocked != 0 || p.Solutions == nil {
		t.Error("corrupt file should give usable empty progress")
	}
}

func TestProgress_Unlock(t *testing.T) {
	p := NewProgress()
	p.MaxUnlocked = 2

	if p.Unlock(0) {
		t.Error("solving an earlier level must not advance the pointer")
	}
	if !p.Unlock(2) || p.MaxUnlocked != 3 {
		t.Errorf("solving the furthest level should advance to 3, got %d", p.MaxUnlocked)
	}
}
