// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/easy-posting/middleware"
	"github.com/danielhkuo/easy-posting/models"
)

// Multipart parts beyond this stay on disk until read
const maxMemory = 8 << 20

// errTooLarge carries the limit that was exceeded
type errTooLarge struct {
	field string
	limit int64
}

func (e *errTooLarge) Error() string {
	return fmt.Sprintf("%s exceeds %s", e.field, humanize.Bytes(uint64(e.limit)))
}

// parseMultipart caps the body at limit and parses the form
func parseMultipart(w http.ResponseWriter, r *http.Request, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &errTooLarge{field: "request", limit: limit}
		}
		return err
	}
	return nil
}

// formBlob reads the file in field. A missing field returns nil, nil.
func formBlob(r *http.Request, field string, limit int64) (*models.Blob, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if header.Size > limit {
		return nil, &errTooLarge{field: field, limit: limit}
	}

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, &errTooLarge{field: field, limit: limit}
	}
	if len(data) == 0 {
		return nil, nil
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return &models.Blob{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// writeUploadError answers a failed multipart read
func writeUploadError(w http.ResponseWriter, err error) {
	var tooLarge *errTooLarge
	if errors.As(err, &tooLarge) {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "File too large: "+tooLarge.Error())
		return
	}
	middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
}
