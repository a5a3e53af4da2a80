// Package mcp exposes the document versioning operations as MCP tools so
// chat agents can drive the BRS workflow directly.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/acroford/brs-agent/internal/database"
	"github.com/acroford/brs-agent/internal/generator"
	"github.com/acroford/brs-agent/internal/usecase"
)

// Server wraps the MCP server with document-versioning functionality.
type Server struct {
	server *mcp.Server
	dbCtx  *database.Context
	uc     *usecase.Document
}

// NewServer creates a new MCP server instance. gen may be nil when no
// generation provider is configured; brs_implement then reports that.
func NewServer(gen generator.Generator) (*Server, error) {
	dbCtx, err := database.CreateDatabase("")
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "brs-agent",
		Version: "0.1.0",
	}, nil)

	s := &Server{
		server: mcpServer,
		dbCtx:  dbCtx,
		uc:     usecase.NewDocument(dbCtx, gen),
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	defer database.CloseDatabase(s.dbCtx)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "brs_create",
		Description: "Create a new BRS document record with no versions",
	}, s.handleCreate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "brs_initialize",
		Description: "Publish version 1 of an existing BRS document",
	}, s.handleInitialize)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "brs_implement",
		Description: "Apply a change request to a document and publish the result as a new version",
	}, s.handleImplement)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "brs_get",
		Description: "Retrieve a document version (latest if not specified)",
	}, s.handleGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "brs_list",
		Description: "List all BRS documents",
	}, s.handleList)
}

// Input/Output types for each tool

type CreateInput struct {
	FileName string `json:"file_name" jsonschema:"required,description=Unique name for the document"`
}

type CreateOutput struct {
	Message  string `json:"message"`
	FileName string `json:"file_name"`
}

type InitializeInput struct {
	FileName string `json:"file_name" jsonschema:"required,description=Name of an existing document"`
	Data     string `json:"data" jsonschema:"required,description=Full text of version 1"`
}

type InitializeOutput struct {
	Message       string `json:"message"`
	FileName      string `json:"file_name"`
	LatestVersion int64  `json:"latestVersion"`
}

type ImplementInput struct {
	FileName     string `json:"file_name" jsonschema:"required,description=Name of the document to update"`
	Overview     string `json:"overview" jsonschema:"required,description=Natural-language change request"`
	FileContents string `json:"file_contents" jsonschema:"required,description=Current full document text"`
}

type ImplementOutput struct {
	Message       string `json:"message"`
	LatestVersion int64  `json:"latestVersion"`
}

type GetInput struct {
	FileName string `json:"file_name" jsonschema:"required,description=Name of the document"`
	Version  *int64 `json:"version,omitempty" jsonschema:"description=Specific version to retrieve (latest if not specified)"`
}

type GetOutput struct {
	Content       string `json:"content"`
	Version       int64  `json:"version"`
	LatestVersion int64  `json:"latestVersion"`
}

type ListInput struct{}

type ListEntry struct {
	FileName      string `json:"file_name"`
	LatestVersion int64  `json:"latestVersion"`
	UpdatedAt     string `json:"updatedAt"`
}

type ListOutput struct {
	Documents []ListEntry `json:"documents"`
}

// Tool handlers

func (s *Server) handleCreate(ctx context.Context, req *mcp.CallToolRequest, input CreateInput) (*mcp.CallToolResult, CreateOutput, error) {
	if _, err := s.uc.Create(ctx, input.FileName); err != nil {
		return nil, CreateOutput{}, fmt.Errorf("failed to create document: %w", err)
	}

	return nil, CreateOutput{
		Message:  "Document created. Use brs_initialize to publish version 1.",
		FileName: input.FileName,
	}, nil
}

func (s *Server) handleInitialize(ctx context.Context, req *mcp.CallToolRequest, input InitializeInput) (*mcp.CallToolResult, InitializeOutput, error) {
	if err := s.uc.Initialize(ctx, input.FileName, input.Data); err != nil {
		return nil, InitializeOutput{}, fmt.Errorf("failed to initialize document: %w", err)
	}

	return nil, InitializeOutput{
		Message:       "The first version is now v1. Use brs_implement to publish subsequent versions.",
		FileName:      input.FileName,
		LatestVersion: 1,
	}, nil
}

func (s *Server) handleImplement(ctx context.Context, req *mcp.CallToolRequest, input ImplementInput) (*mcp.CallToolResult, ImplementOutput, error) {
	latest, err := s.uc.ImplementChanges(ctx, usecase.ImplementChangesInput{
		Overview:     input.Overview,
		FileContents: input.FileContents,
		FileName:     input.FileName,
	})
	if err != nil {
		return nil, ImplementOutput{}, fmt.Errorf("failed to implement changes: %w", err)
	}

	return nil, ImplementOutput{
		Message:       "Successfully updated the document",
		LatestVersion: latest,
	}, nil
}

func (s *Server) handleGet(ctx context.Context, req *mcp.CallToolRequest, input GetInput) (*mcp.CallToolResult, GetOutput, error) {
	record, err := s.uc.Get(ctx, input.FileName)
	if err != nil {
		return nil, GetOutput{}, fmt.Errorf("failed to get document: %w", err)
	}

	if !record.Versioned() {
		if record.Content != "" {
			return nil, GetOutput{Content: record.Content}, nil
		}
		return nil, GetOutput{}, fmt.Errorf("document %q has no versions yet", input.FileName)
	}

	version := record.Data.LatestVersion
	if input.Version != nil {
		version = *input.Version
	}

	content, err := s.uc.GetVersion(ctx, input.FileName, version)
	if err != nil {
		return nil, GetOutput{}, fmt.Errorf("failed to get version: %w", err)
	}

	return nil, GetOutput{
		Content:       content,
		Version:       version,
		LatestVersion: record.Data.LatestVersion,
	}, nil
}

func (s *Server) handleList(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
	records, err := s.uc.List(ctx)
	if err != nil {
		return nil, ListOutput{}, fmt.Errorf("failed to list documents: %w", err)
	}

	documents := make([]ListEntry, 0, len(records))
	for _, record := range records {
		entry := ListEntry{FileName: record.FileName}
		if record.Versioned() {
			entry.LatestVersion = record.Data.LatestVersion
		}
		if !record.UpdatedAt.IsZero() {
			entry.UpdatedAt = record.UpdatedAt.Format(time.RFC3339)
		}
		documents = append(documents, entry)
	}

	return nil, ListOutput{Documents: documents}, nil
}
