package database

import (
	"context"
	"errors"
	"testing"

	"github.com/acroford/brs-agent/internal/document"
)

func TestFindByNameReturnsNilWhenMissing(t *testing.T) {
	dbCtx := setupTestDB(t)
	repo := NewDocumentRepository(dbCtx)

	record, err := repo.FindByName(context.Background(), "missing.md")
	if err != nil {
		t.Fatalf("FindByName failed: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record, got %#v", record)
	}
}

func TestFindByNameRejectsEmptyName(t *testing.T) {
	dbCtx := setupTestDB(t)
	repo := NewDocumentRepository(dbCtx)

	if _, err := repo.FindByName(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty file name")
	}
}

func TestCreateAndFind(t *testing.T) {
	dbCtx := setupTestDB(t)
	ctx := context.Background()
	repo := NewDocumentRepository(dbCtx)

	id, err := repo.Create(ctx, "spec.md", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	record, err := repo.FindByName(ctx, "spec.md")
	if err != nil {
		t.Fatalf("FindByName failed: %v", err)
	}
	if record == nil || record.ID != id {
		t.Fatalf("unexpected record: %#v", record)
	}
	if record.Versioned() {
		t.Fatal("fresh record should not be versioned")
	}

	byID, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if byID.FileName != "spec.md" {
		t.Fatalf("unexpected file name %q", byID.FileName)
	}
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	dbCtx := setupTestDB(t)
	ctx := context.Background()
	repo := NewDocumentRepository(dbCtx)

	if _, err := repo.Create(ctx, "dup.md", ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := repo.Create(ctx, "dup.md", ""); err == nil {
		t.Fatal("expected unique constraint violation")
	}
}

func TestFindByIDMissingIsNotFound(t *testing.T) {
	dbCtx := setupTestDB(t)
	repo := NewDocumentRepository(dbCtx)

	_, err := repo.FindByID(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateDataRoundTripsPayload(t *testing.T) {
	dbCtx := setupTestDB(t)
	ctx := context.Background()
	repo := NewDocumentRepository(dbCtx)

	id, err := repo.Create(ctx, "payload.md", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	data := &document.VersionedData{}
	data.Append("Hello")
	data.Append("v2")

	if err := repo.UpdateData(ctx, id, "payload.md", data); err != nil {
		t.Fatalf("UpdateData failed: %v", err)
	}

	record, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if record.Data == nil || record.Data.LatestVersion != 2 {
		t.Fatalf("unexpected payload: %#v", record.Data)
	}
	if text, ok := record.Data.Version(1); !ok || text != "Hello" {
		t.Fatalf("version 1 not preserved: %q ok=%v", text, ok)
	}
	if err := record.Data.Validate(); err != nil {
		t.Fatalf("restored payload invalid: %v", err)
	}
}

func TestUpdateDataMissingRecordIsNotFound(t *testing.T) {
	dbCtx := setupTestDB(t)
	repo := NewDocumentRepository(dbCtx)

	err := repo.UpdateData(context.Background(), 4242, "gone.md", &document.VersionedData{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteByName(t *testing.T) {
	dbCtx := setupTestDB(t)
	ctx := context.Background()
	repo := NewDocumentRepository(dbCtx)

	if _, err := repo.Create(ctx, "doomed.md", ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := repo.DeleteByName(ctx, "doomed.md")
	if err != nil || !deleted {
		t.Fatalf("DeleteByName failed: err=%v deleted=%v", err, deleted)
	}

	deleted, err = repo.DeleteByName(ctx, "doomed.md")
	if err != nil {
		t.Fatalf("DeleteByName failed: %v", err)
	}
	if deleted {
		t.Fatal("second delete should report nothing removed")
	}
}

func TestListOrdersByFileName(t *testing.T) {
	dbCtx := setupTestDB(t)
	ctx := context.Background()
	repo := NewDocumentRepository(dbCtx)

	for _, name := range []string{"zeta.md", "alpha.md"} {
		if _, err := repo.Create(ctx, name, ""); err != nil {
			t.Fatalf("Create %s failed: %v", name, err)
		}
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 || records[0].FileName != "alpha.md" {
		t.Fatalf("unexpected list order: %#v", records)
	}
}
