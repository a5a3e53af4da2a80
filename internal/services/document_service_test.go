package services

import (
	"context"
	"errors"
	"testing"

	"github.com/acroford/brs-agent/internal/database"
)

func setupServiceDB(t *testing.T) *database.Context {
	t.Helper()
	ctx, err := database.CreateDatabase(":memory:")
	if err != nil {
		t.Fatalf("CreateDatabase error: %v", err)
	}

	t.Cleanup(func() {
		if err := database.CloseDatabase(ctx); err != nil {
			t.Fatalf("CloseDatabase error: %v", err)
		}
	})

	return ctx
}

func TestInitializeThenRead(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewDocumentService(dbCtx)

	if _, err := svc.Create(ctx, "a.md"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Initialize(ctx, "a.md", "Hello"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	record, err := svc.Get(ctx, "a.md")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record.Data == nil || record.Data.LatestVersion != 1 {
		t.Fatalf("expected latestVersion 1, got %#v", record.Data)
	}
	if text, ok := record.Data.Version(1); !ok || text != "Hello" {
		t.Fatalf("expected versions[\"1\"] == \"Hello\", got %q ok=%v", text, ok)
	}
}

func TestInitializeMissingRecordDoesNotCreate(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewDocumentService(dbCtx)

	err := svc.Initialize(ctx, "ghost.md", "Hello")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := svc.Get(ctx, "ghost.md"); !errors.Is(err, ErrNotFound) {
		t.Fatal("initialize must not create the record")
	}
}

func TestInitializeTwiceIsRejectedWithoutMutation(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewDocumentService(dbCtx)

	if _, err := svc.Create(ctx, "a.md"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.Initialize(ctx, "a.md", "Hello"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	err := svc.Initialize(ctx, "a.md", "overwrite attempt")
	if !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}

	record, err := svc.Get(ctx, "a.md")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record.Data.LatestVersion != 1 {
		t.Fatalf("rejected initialize mutated latestVersion: %d", record.Data.LatestVersion)
	}
	if text, _ := record.Data.Version(1); text != "Hello" {
		t.Fatalf("rejected initialize mutated version 1: %q", text)
	}
}

func TestPublishAppendsSequentialVersions(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewDocumentService(dbCtx)

	if _, err := svc.Create(ctx, "a.md"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.Initialize(ctx, "a.md", "Hello"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	latest, err := svc.Publish(ctx, "a.md", "v2", nil)
	if err != nil || latest != 2 {
		t.Fatalf("first publish: latest=%d err=%v", latest, err)
	}
	latest, err = svc.Publish(ctx, "a.md", "v3", nil)
	if err != nil || latest != 3 {
		t.Fatalf("second publish: latest=%d err=%v", latest, err)
	}

	record, err := svc.Get(ctx, "a.md")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record.Data.LatestVersion != 3 {
		t.Fatalf("expected latestVersion 3, got %d", record.Data.LatestVersion)
	}
	want := map[string]string{"1": "Hello", "2": "v2", "3": "v3"}
	for key, text := range want {
		if got := record.Data.Versions[key]; got != text {
			t.Fatalf("versions[%q] = %q, want %q", key, got, text)
		}
	}
	if err := record.Data.Validate(); err != nil {
		t.Fatalf("history has gaps: %v", err)
	}
}

func TestPublishRequiresInitialize(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewDocumentService(dbCtx)

	if _, err := svc.Create(ctx, "a.md"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := svc.Publish(ctx, "a.md", "v1?", nil)
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}

	record, err := svc.Get(ctx, "a.md")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record.Data.Initialized() {
		t.Fatal("rejected publish created a version")
	}
}

func TestPublishExpectedVersionConflict(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewDocumentService(dbCtx)

	if _, err := svc.Create(ctx, "a.md"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.Initialize(ctx, "a.md", "Hello"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if _, err := svc.Publish(ctx, "a.md", "v2", nil); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	// A second writer that read latestVersion=1 must fail its CAS publish.
	stale := int64(1)
	if _, err := svc.Publish(ctx, "a.md", "racer", &stale); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	// After refreshing the token the retry lands as version 3.
	current := int64(2)
	latest, err := svc.Publish(ctx, "a.md", "racer", &current)
	if err != nil || latest != 3 {
		t.Fatalf("retry publish: latest=%d err=%v", latest, err)
	}
}

func TestGetVersion(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewDocumentService(dbCtx)

	if _, err := svc.Create(ctx, "a.md"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.Initialize(ctx, "a.md", "Hello"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	text, err := svc.GetVersion(ctx, "a.md", 1)
	if err != nil || text != "Hello" {
		t.Fatalf("GetVersion: text=%q err=%v", text, err)
	}

	if _, err := svc.GetVersion(ctx, "a.md", 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing version, got %v", err)
	}
}

func TestCreateDuplicate(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewDocumentService(dbCtx)

	if _, err := svc.Create(ctx, "a.md"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, "a.md"); !errors.Is(err, ErrExists) {
		t.Fatal("expected ErrExists on duplicate create")
	}
}
