package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestGetDataDirWithExplicitEnv(t *testing.T) {
	tmpDir := t.TempDir()
	customDir := filepath.Join(tmpDir, "custom")

	t.Setenv("BRS_AGENT_DIR", customDir)
	t.Setenv("XDG_DATA_HOME", "")

	got := GetDataDir()
	if got != customDir {
		t.Fatalf("expected %q, got %q", customDir, got)
	}
}

func TestGetDataDirFallsBackToXDG(t *testing.T) {
	tmpDir := t.TempDir()
	xdgDir := filepath.Join(tmpDir, "xdg")

	t.Setenv("BRS_AGENT_DIR", "")
	t.Setenv("XDG_DATA_HOME", xdgDir)

	got := GetDataDir()
	want := filepath.Join(xdgDir, "brs-agent")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestGetDBAndObjectsPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("BRS_AGENT_DIR", tmpDir)

	if got, want := GetDBPath(), filepath.Join(tmpDir, "index.db"); got != want {
		t.Fatalf("GetDBPath expected %q, got %q", want, got)
	}

	if got, want := GetObjectsDir(), filepath.Join(tmpDir, "objects"); got != want {
		t.Fatalf("GetObjectsDir expected %q, got %q", want, got)
	}
}

func TestEncodeFileName(t *testing.T) {
	input := "reports/finac_brs.v2.md"
	got := EncodeFileName(input)
	if strings.ContainsAny(got, "/._") {
		t.Fatalf("expected encoded name to replace '/', '.', '_' but got %q", got)
	}
	if got == input {
		t.Fatalf("expected encoded name to differ from input")
	}
}

func TestOpenAIModelDefault(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "")
	if got := OpenAIModel(); got != "o3-mini" {
		t.Fatalf("expected default model o3-mini, got %q", got)
	}

	t.Setenv("OPENAI_MODEL", "gpt-4o")
	if got := OpenAIModel(); got != "gpt-4o" {
		t.Fatalf("expected gpt-4o, got %q", got)
	}
}

func TestListenAddrDefault(t *testing.T) {
	t.Setenv("BRS_LISTEN_ADDR", "")
	if got := ListenAddr(); got != ":8090" {
		t.Fatalf("expected default addr :8090, got %q", got)
	}
}
