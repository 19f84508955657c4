package novascript

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ns.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	def := DefaultConfig()
	if *cfg != *def {
		t.Fatalf("want defaults %+v, got %+v", def, cfg)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, "tabWidth: 8\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TabWidth != 8 {
		t.Fatalf("tabWidth: want 8, got %d", cfg.TabWidth)
	}
	if cfg.MaxIdentLen != DefaultConfig().MaxIdentLen {
		t.Fatalf("unset field lost default: %+v", cfg)
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "tabWidth: [not an int\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("malformed YAML should error")
	}
}

func TestLoadConfigRejectsNonPositiveLimits(t *testing.T) {
	for _, body := range []string{"tabWidth: 0\n", "maxIdentLen: -3\n"} {
		path := writeConfig(t, body)
		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("config %q should be rejected", body)
		}
	}
}

func TestConfiguredTabWidthAffectsLexer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TabWidth = 2
	src := "when 1 then\n\tsay 1\nend\n"
	tokens := NewLexerWith(src, cfg).Scan()
	if countKind(tokens, INDENT) != 1 {
		t.Fatalf("tab should still open a block at width 2: %v", tokens)
	}
}
