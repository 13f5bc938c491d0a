package api

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medigital/site-backend/errs"
	"github.com/medigital/site-backend/storage"
)

type storageHandler struct {
	responder Responder
	logger    zerolog.Logger
	blobs     storage.BlobStore
}

func newStorageHandler(blobs storage.BlobStore) storageHandler {
	logger := log.With().Str("handlerName", "storageHandler").Logger()

	return storageHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blobs:     blobs,
	}
}

// listObjects lists stored assets, optionally under a prefix.
// Query params: ?prefix=uploads/ ?limit=50 (default 100).
func (h storageHandler) listObjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")

		limit := 100
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed <= 0 {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid limit"))
				return
			}
			limit = parsed
		}

		objects, err := h.blobs.List(r.Context(), prefix, limit)
		if err != nil {
			h.logger.Error().Err(err).Str("prefix", prefix).Msg("Failed to list storage objects")
			h.responder.WriteError(w, errs.NewStorageListError(err))
			return
		}

		if objects == nil {
			objects = []storage.Object{}
		}
		h.responder.WriteJSON(w, map[string]any{"files": objects})
	}
}
