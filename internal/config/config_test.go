package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"assassins/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PLAYERS", "SEED", "PHASE_DELAY", "LOG_LEVEL", "LOG_FORMAT", "OBSERVE_ADDR", "OPENAI_MODEL"} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.Players != 9 {
		t.Errorf("default players = %d, want 9", cfg.Game.Players)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("default logging = %s/%s, want info/text", cfg.Logging.Level, cfg.Logging.Format)
	}
	if cfg.Observe.Addr != "127.0.0.1:8089" {
		t.Errorf("default observe addr = %q", cfg.Observe.Addr)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("default model = %q", cfg.OpenAI.Model)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PLAYERS", "12")
	t.Setenv("PHASE_DELAY", "250ms")
	t.Setenv("SCRIPTED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.Players != 12 {
		t.Errorf("players = %d, want 12", cfg.Game.Players)
	}
	if cfg.Game.Delay != 250*time.Millisecond {
		t.Errorf("delay = %v, want 250ms", cfg.Game.Delay)
	}
	if !cfg.Game.Scripted {
		t.Error("scripted flag not parsed")
	}
}

func TestLoadGameFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cast.yaml")
	raw := `players:
  - name: Alice
    personality: bold and outspoken
    role: assassins
  - name: Bob
    personality: quiet
events:
  - zombie
  - jester
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	gf, err := LoadGameFile(path)
	if err != nil {
		t.Fatalf("LoadGameFile: %v", err)
	}
	if len(gf.Players) != 2 {
		t.Fatalf("got %d players, want 2", len(gf.Players))
	}
	if gf.Players[0].Role != domain.RoleAssassin {
		t.Errorf("pinned role = %q, want assassin", gf.Players[0].Role)
	}
	if gf.Players[1].Role != "" {
		t.Errorf("unpinned role = %q, want empty", gf.Players[1].Role)
	}
	if len(gf.Events) != 2 || gf.Events[0] != "zombie" {
		t.Errorf("events = %v, want [zombie jester]", gf.Events)
	}
}

func TestLoadGameFile_Errors(t *testing.T) {
	if _, err := LoadGameFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should error")
	}

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(empty, []byte("players: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGameFile(empty); err == nil {
		t.Error("empty roster should error")
	}
}
