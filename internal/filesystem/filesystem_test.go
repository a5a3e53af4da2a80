package filesystem

import (
	"strings"
	"testing"
)

func TestSaveAndVerifyVersion(t *testing.T) {
	t.Setenv("BRS_AGENT_DIR", t.TempDir())

	path, hash, err := SaveVersion("spec.md", 1, "Hello")
	if err != nil {
		t.Fatalf("SaveVersion failed: %v", err)
	}
	if !strings.HasSuffix(path, "v1.md") {
		t.Fatalf("unexpected path %q", path)
	}

	content, err := ReadFile(path)
	if err != nil || content != "Hello" {
		t.Fatalf("ReadFile: content=%q err=%v", content, err)
	}

	ok, err := VerifyFile(path, hash)
	if err != nil || !ok {
		t.Fatalf("VerifyFile: ok=%v err=%v", ok, err)
	}

	ok, err = VerifyFile(path, "deadbeef")
	if err != nil {
		t.Fatalf("VerifyFile with wrong hash errored: %v", err)
	}
	if ok {
		t.Fatal("VerifyFile accepted a wrong hash")
	}
}

func TestDeleteDocumentFiles(t *testing.T) {
	t.Setenv("BRS_AGENT_DIR", t.TempDir())

	path, _, err := SaveVersion("doomed.md", 1, "x")
	if err != nil {
		t.Fatalf("SaveVersion failed: %v", err)
	}

	if err := DeleteDocumentFiles("doomed.md"); err != nil {
		t.Fatalf("DeleteDocumentFiles failed: %v", err)
	}
	if FileExists(path) {
		t.Fatal("snapshot still present after delete")
	}

	// Deleting a document that was never exported is a no-op.
	if err := DeleteDocumentFiles("never-exported.md"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
