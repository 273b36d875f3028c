package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"stadslab/internal/importer"
	applog "stadslab/internal/log"
)

const maxUploadSize = 5 << 20 // 5 MiB

const (
	importStatusDone  = "done"
	importStatusError = "error"
)

type importResponse struct {
	Status      string                `json:"status"`
	File        string                `json:"file,omitempty"`
	Suggestions []importer.Suggestion `json:"suggestions"`
	Error       string                `json:"error,omitempty"`
}

// ImportPDF reads an uploaded supplier document and answers with product
// suggestions. Nothing is stored.
func ImportPDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		applog.Debug(r.Context(), "failed to parse import form", "error", err)
		writeImportError(w, http.StatusBadRequest, "", "Upload is te groot of ongeldig.")
		return
	}

	fileName, data, fileType, err := readUpload(r)
	if err != nil {
		applog.Error(r.Context(), "import upload read failed", "error", err)
		writeImportError(w, http.StatusBadRequest, fileName, "Kon het bestand niet lezen.")
		return
	}
	if len(data) == 0 {
		writeImportError(w, http.StatusBadRequest, fileName, "Kies een PDF-bestand.")
		return
	}
	if len(data) > maxUploadSize {
		writeImportError(w, http.StatusRequestEntityTooLarge, fileName, "Bestand is groter dan 5 MB.")
		return
	}

	text, err := deriveTextFromUpload(data, fileName, fileType)
	if err != nil {
		applog.Warn(r.Context(), "failed to extract text from upload", "file", fileName, "mime", fileType, "error", err)
		writeImportError(w, http.StatusUnprocessableEntity, fileName, "Kon geen tekst uit het document halen.")
		return
	}

	suggestions := importer.ParseSuggestions(text)
	if suggestions == nil {
		suggestions = []importer.Suggestion{}
	}
	applog.Info(r.Context(), "document imported", "file", fileName, "suggestions", len(suggestions))
	writeJSON(w, http.StatusOK, importResponse{Status: importStatusDone, File: fileName, Suggestions: suggestions})
}

func writeImportError(w http.ResponseWriter, status int, fileName, message string) {
	writeJSON(w, status, importResponse{
		Status:      importStatusError,
		File:        fileName,
		Suggestions: []importer.Suggestion{},
		Error:       message,
	})
}

func readUpload(r *http.Request) (string, []byte, string, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil, "", nil
		}
		return "", nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return header.Filename, nil, "", err
	}
	fileType := header.Header.Get("Content-Type")
	if fileType == "" {
		fileType = mimeTypeFromName(header.Filename)
	}
	return header.Filename, data, fileType, nil
}

// deriveTextFromUpload extracts PDF text, and accepts plain text as is.
func deriveTextFromUpload(data []byte, fileName, fileType string) (string, error) {
	if importer.IsPDF(fileName, fileType) {
		return importer.ExtractPDFText(data)
	}
	if strings.HasPrefix(fileType, "text/") {
		return string(data), nil
	}
	return "", fmt.Errorf("unsupported file type %q", fileType)
}

func mimeTypeFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".txt", ".csv":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
