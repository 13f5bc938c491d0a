package api

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medigital/site-backend/errs"
	"github.com/medigital/site-backend/storage"
)

// DefaultMaxUploadBytes caps a single uploaded file at 5 MiB unless
// MAX_UPLOAD_BYTES overrides it.
const DefaultMaxUploadBytes = 5 * 1024 * 1024

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	blobs     storage.BlobStore
	maxBytes  int64
}

func newUploadHandler(blobs storage.BlobStore, maxBytes int64) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blobs:     blobs,
		maxBytes:  maxBytes,
	}
}

// uploadAssets handles multipart uploads. A single part named "file" yields
// {"url": ...}; one or more parts named "files" yield {"urls": [...]}. Every
// part is size-checked before anything is written, so an oversized payload
// produces no blob-store write at all.
func (h uploadHandler) uploadAssets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(h.maxBytes + 1<<20); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed multipart request"))
			return
		}
		defer r.MultipartForm.RemoveAll()

		headers := r.MultipartForm.File["files"]
		multi := len(headers) > 0
		if !multi {
			headers = r.MultipartForm.File["file"]
		}
		if len(headers) == 0 {
			h.responder.WriteError(w, errs.NewValidationError("file", "no file provided"))
			return
		}

		type pendingUpload struct {
			path        string
			contentType string
			data        []byte
		}

		pending := make([]pendingUpload, 0, len(headers))
		for _, header := range headers {
			data, err := h.readPart(header)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			pending = append(pending, pendingUpload{
				path:        newObjectPath(header.Filename),
				contentType: partContentType(header),
				data:        data,
			})
		}

		urls := make([]string, 0, len(pending))
		for _, p := range pending {
			url, err := h.blobs.Upload(r.Context(), p.path, p.data, p.contentType)
			if err != nil {
				h.logger.Error().Err(err).Str("path", p.path).Msg("Failed to write upload to blob store")
				h.responder.WriteError(w, errs.NewStorageError("store uploaded asset", err))
				return
			}
			urls = append(urls, url)
		}

		w.WriteHeader(http.StatusCreated)
		if multi {
			h.responder.WriteJSON(w, map[string]any{"urls": urls})
			return
		}
		h.responder.WriteJSON(w, map[string]any{"url": urls[0]})
	}
}

// readPart reads one multipart file fully, enforcing the size cap.
func (h uploadHandler) readPart(header *multipart.FileHeader) ([]byte, *errs.ApiErr) {
	if header.Size > h.maxBytes {
		return nil, errs.NewPayloadTooLargeError(h.maxBytes)
	}

	file, err := header.Open()
	if err != nil {
		return nil, errs.NewBadRequestError("failed to read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		return nil, errs.NewBadRequestError("failed to read uploaded file")
	}
	if int64(len(data)) > h.maxBytes {
		return nil, errs.NewPayloadTooLargeError(h.maxBytes)
	}
	return data, nil
}

// newObjectPath assigns a collision-resistant storage path under the upload
// folder: millisecond timestamp + random suffix + original extension,
// defaulting to .png when the name carries none.
func newObjectPath(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".png"
	}
	return fmt.Sprintf("%s/%d-%s%s", storage.UploadFolder, time.Now().UnixMilli(), uuid.New(), ext)
}

func partContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return mime.TypeByExtension(filepath.Ext(header.Filename))
}
