// Package usecase wires the generation collaborator and the document service
// into the operations exposed by the HTTP API, the CLI, and the MCP server.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/acroford/brs-agent/internal/database"
	"github.com/acroford/brs-agent/internal/generator"
	"github.com/acroford/brs-agent/internal/services"
)

// ErrGeneratorUnavailable is returned when no generation provider is
// configured (missing API key).
var ErrGeneratorUnavailable = errors.New("no generation provider configured")

type Document struct {
	svc *services.DocumentService
	gen generator.Generator
}

// NewDocument builds the document use cases. gen may be nil when no provider
// is configured; only ImplementChanges requires it.
func NewDocument(dbCtx *database.Context, gen generator.Generator) *Document {
	return &Document{
		svc: services.NewDocumentService(dbCtx),
		gen: gen,
	}
}

// Create registers a new empty document record.
func (u *Document) Create(ctx context.Context, fileName string) (int64, error) {
	return u.svc.Create(ctx, fileName)
}

// Initialize publishes version 1 of an existing document.
func (u *Document) Initialize(ctx context.Context, fileName, text string) error {
	return u.svc.Initialize(ctx, fileName, text)
}

// Publish appends a new version directly, without the generation step.
func (u *Document) Publish(ctx context.Context, fileName, text string, expected *int64) (int64, error) {
	return u.svc.Publish(ctx, fileName, text, expected)
}

// ImplementChangesInput carries a change request against the current document text.
type ImplementChangesInput struct {
	Overview     string
	FileContents string
	FileName     string
}

// ImplementChanges runs the append operation end to end: it asks the
// generation provider to apply the requested change to the supplied content,
// then publishes the result as the next version in the same process. The new
// latestVersion is returned. Nothing here retries: any generator, contract,
// or persistence failure is surfaced as a single error outcome.
func (u *Document) ImplementChanges(ctx context.Context, input ImplementChangesInput) (int64, error) {
	if input.Overview == "" || input.FileContents == "" {
		return 0, fmt.Errorf("usecase: overview and file_contents are required")
	}
	if u.gen == nil {
		return 0, ErrGeneratorUnavailable
	}

	newVersion, err := u.gen.NewVersion(ctx, input.Overview, input.FileContents)
	if err != nil {
		return 0, err
	}

	latest, err := u.svc.Publish(ctx, input.FileName, newVersion, nil)
	if err != nil {
		return 0, fmt.Errorf("publish new version: %w", err)
	}
	return latest, nil
}

// Get retrieves a document record by file name.
func (u *Document) Get(ctx context.Context, fileName string) (*database.DocumentRecord, error) {
	return u.svc.Get(ctx, fileName)
}

// GetVersion retrieves one snapshot of a versioned document.
func (u *Document) GetVersion(ctx context.Context, fileName string, version int64) (string, error) {
	return u.svc.GetVersion(ctx, fileName, version)
}

// List returns all documents.
func (u *Document) List(ctx context.Context) ([]database.DocumentRecord, error) {
	return u.svc.List(ctx)
}

// Delete removes a document and reports whether it existed.
func (u *Document) Delete(ctx context.Context, fileName string) (bool, error) {
	return u.svc.Delete(ctx, fileName)
}
