// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
The admin CMS submits multipart forms (metadata fields + image files), so
this package also owns multipart parsing and file reading.
*/
package requestutil

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ardakose/boyama/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (UUID/Slug) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// # Multipart Forms

// ParseMultipart parses the request's multipart form, buffering file parts up
// to maxMemoryBytes in memory before spilling to disk.
//
// The per-file size ceilings are enforced later by the service layer so that
// violations surface as field-level validation errors rather than transport
// failures.
func ParseMultipart(request *http.Request, maxMemoryBytes int64) error {
	if err := request.ParseMultipartForm(maxMemoryBytes); err != nil {
		return validate.ErrInvalidMultipart
	}
	return nil
}

/*
ReadFile opens a multipart file header and returns its full contents along
with the declared content type.

The declared Content-Type header is what the MIME allow-list validates; the
derivation pipeline re-sniffs the actual bytes when decoding.
*/
func ReadFile(header *multipart.FileHeader) ([]byte, string, error) {
	file, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}

	contentType := header.Header.Get("Content-Type")
	return data, contentType, nil
}

// # Form Field Helpers

// FormValue returns a trimmed form field value.
func FormValue(request *http.Request, field string) string {
	return strings.TrimSpace(request.FormValue(field))
}

// FormInt parses an optional integer form field. A missing or malformed
// value yields nil.
func FormInt(request *http.Request, field string) *int {
	raw := FormValue(request, field)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// FormStrings splits a comma-separated form field into trimmed values.
// Empty segments are dropped.
func FormStrings(request *http.Request, field string) []string {
	raw := FormValue(request, field)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
