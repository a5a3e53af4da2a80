package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/acroford/brs-agent/internal/document"
	"github.com/acroford/brs-agent/internal/services"
	"github.com/acroford/brs-agent/internal/usecase"
)

// codeResponse is the {code, message} error/status shape used by the original
// API for validation failures and faults.
type codeResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// businessResponse carries business-level outcomes of the initialize
// operation. The original client expects success as the strings "true" and
// "false" here, and a guidance systemMessage aimed at the calling agent.
type businessResponse struct {
	Success       string `json:"success"`
	Message       string `json:"message"`
	SystemMessage string `json:"systemMessage"`
	FileName      string `json:"file_name"`
}

// notFoundResponse is the not-found outcome, with a boolean success flag
// unlike the business rejections above. Shape preserved for compatibility.
type notFoundResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) handleCreateFile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FileName string `json:"file_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, codeResponse{Code: 400, Message: "Invalid JSON payload"})
		return
	}
	if body.FileName == "" {
		writeJSON(w, http.StatusBadRequest, codeResponse{Code: 400, Message: "file_name is required"})
		return
	}

	if _, err := s.uc.Create(r.Context(), body.FileName); err != nil {
		if errors.Is(err, services.ErrExists) {
			writeJSON(w, http.StatusOK, businessResponse{
				Success:       "false",
				Message:       fmt.Sprintf("**%s** already exists", body.FileName),
				SystemMessage: "A file with this name already exists. Use write_initial_data or implement_edits on it instead.",
				FileName:      body.FileName,
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, codeResponse{Code: 500, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, businessResponse{
		Success:       "true",
		Message:       fmt.Sprintf("**%s** has been created", body.FileName),
		SystemMessage: "The file exists but has no versions yet. Use write_initial_data to create version 1.",
		FileName:      body.FileName,
	})
}

func (s *Server) handleWriteInitialData(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FileName string `json:"file_name"`
		Data     string `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, codeResponse{Code: 400, Message: "Invalid JSON payload"})
		return
	}
	if body.FileName == "" || body.Data == "" {
		writeJSON(w, http.StatusBadRequest, codeResponse{Code: 400, Message: "file_name and data are required"})
		return
	}

	err := s.uc.Initialize(r.Context(), body.FileName, body.Data)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, businessResponse{
			Success:       "true",
			Message:       fmt.Sprintf("**%s** has been successfully initialized", body.FileName),
			SystemMessage: "The first version is now v1. Use implement_edits to publish subsequent versions.",
			FileName:      body.FileName,
		})
	case errors.Is(err, services.ErrAlreadyInitialized):
		writeJSON(w, http.StatusOK, businessResponse{
			Success:       "false",
			Message:       fmt.Sprintf("**%s** is already initialized, please use implement_edits to create a new version", body.FileName),
			SystemMessage: "File already has some versions. Use implement_edits instead.",
			FileName:      body.FileName,
		})
	case errors.Is(err, services.ErrNotFound):
		writeJSON(w, http.StatusOK, notFoundResponse{Success: false, Message: "File not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, codeResponse{Code: 500, Message: err.Error()})
	}
}

func (s *Server) handlePublishNewVersion(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FileName        string `json:"file_name"`
		Data            string `json:"data"`
		ExpectedVersion *int64 `json:"expectedVersion"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, codeResponse{Code: 400, Message: "Invalid JSON payload"})
		return
	}
	if body.FileName == "" || body.Data == "" {
		writeJSON(w, http.StatusBadRequest, codeResponse{Code: 400, Message: "file_name and data are required"})
		return
	}

	latest, err := s.uc.Publish(r.Context(), body.FileName, body.Data, body.ExpectedVersion)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, struct {
			Code          int    `json:"code"`
			Message       string `json:"message"`
			LatestVersion int64  `json:"latestVersion"`
		}{200, "Successfully published new version", latest})
	case errors.Is(err, services.ErrNotFound):
		writeJSON(w, http.StatusNotFound, codeResponse{Code: 404, Message: "File not found"})
	case errors.Is(err, services.ErrNotInitialized):
		writeJSON(w, http.StatusBadRequest, codeResponse{
			Code:    400,
			Message: fmt.Sprintf("**%s** is not initialized, please use write_initial_data to create the first version", body.FileName),
		})
	case errors.Is(err, services.ErrVersionConflict):
		writeJSON(w, http.StatusConflict, codeResponse{Code: 409, Message: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, codeResponse{Code: 500, Message: err.Error()})
	}
}

func (s *Server) handleImplementOverview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Overview     string `json:"overview"`
		FileContents string `json:"file_contents"`
		FileName     string `json:"file_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, codeResponse{Code: 400, Message: "Invalid JSON payload"})
		return
	}
	if body.Overview == "" || body.FileContents == "" {
		writeJSON(w, http.StatusBadRequest, codeResponse{Code: 400, Message: "overview and file_contents are required"})
		return
	}

	latest, err := s.uc.ImplementChanges(r.Context(), usecase.ImplementChangesInput{
		Overview:     body.Overview,
		FileContents: body.FileContents,
		FileName:     body.FileName,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, struct {
			Code          int    `json:"code"`
			Message       string `json:"message"`
			LatestVersion int64  `json:"latestVersion"`
		}{200, "Successfully updated the document", latest})
	case errors.Is(err, usecase.ErrGeneratorUnavailable):
		writeJSON(w, http.StatusInternalServerError, codeResponse{Code: 500, Message: "Missing OpenAI API key"})
	default:
		// Generation, contract, and persistence failures all collapse into a
		// single failure outcome; the chat UI is the retry point.
		writeJSON(w, http.StatusInternalServerError, codeResponse{Code: 500, Message: err.Error()})
	}
}

// fetchRecord is the read shape consumed by the version navigator. Versioned
// documents expose the payload under data; legacy documents expose a bare
// content body.
type fetchRecord struct {
	ID       int64                   `json:"id"`
	FileName string                  `json:"file_name"`
	Data     *document.VersionedData `json:"data,omitempty"`
	Content  string                  `json:"content,omitempty"`
}

func (s *Server) handleRawFetch(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("file_name")
	if fileName == "" {
		writeJSON(w, http.StatusBadRequest, codeResponse{Code: 400, Message: "file_name is required"})
		return
	}

	record, err := s.uc.Get(r.Context(), fileName)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeJSON(w, http.StatusOK, notFoundResponse{Success: false, Message: "File not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, codeResponse{Code: 500, Message: err.Error()})
		return
	}

	result := fetchRecord{ID: record.ID, FileName: record.FileName}
	if record.Versioned() {
		result.Data = record.Data
	} else {
		result.Content = record.Content
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool        `json:"success"`
		Data    fetchRecord `json:"data"`
	}{true, result})
}

type listedFile struct {
	FileName      string `json:"file_name"`
	LatestVersion int64  `json:"latestVersion"`
	UpdatedAt     string `json:"updated_at"`
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	records, err := s.uc.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, codeResponse{Code: 500, Message: err.Error()})
		return
	}

	files := make([]listedFile, 0, len(records))
	for _, record := range records {
		entry := listedFile{FileName: record.FileName}
		if record.Versioned() {
			entry.LatestVersion = record.Data.LatestVersion
		}
		if !record.UpdatedAt.IsZero() {
			entry.UpdatedAt = record.UpdatedAt.UTC().Format(time.RFC3339)
		}
		files = append(files, entry)
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool         `json:"success"`
		Files   []listedFile `json:"files"`
	}{true, files})
}
