package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/medigital/site-backend/errs"
	"github.com/medigital/site-backend/models"
	"github.com/medigital/site-backend/slug"
	"github.com/medigital/site-backend/storage"
)

// clientStore is the record-store surface the client handlers need.
// *database.ClientRepo satisfies it.
type clientStore interface {
	FindAll() ([]*models.ClientRecord, error)
	FindByID(id uuid.UUID) (*models.ClientRecord, error)
	FindBySlug(slug string) (*models.ClientRecord, error)
	SlugExists(slug string) (bool, error)
	Add(record *models.ClientRecord) error
	UpdateFields(id uuid.UUID, fields map[string]any) error
	Delete(id uuid.UUID) error
}

type clientHandler struct {
	responder Responder
	logger    zerolog.Logger
	clients   clientStore
	blobs     storage.BlobStore
}

func newClientHandler(clients clientStore, blobs storage.BlobStore) clientHandler {
	logger := log.With().Str("handlerName", "clientHandler").Logger()

	return clientHandler{
		responder: NewResponder(logger),
		logger:    logger,
		clients:   clients,
		blobs:     blobs,
	}
}

// clientPayload accepts both the snake_case column names and the camelCase
// names the older admin UI sends. resolve() folds every alias pair into the
// snake_case field exactly once; nothing downstream looks at aliases again.
// Pointer fields distinguish "absent" from "present but empty", which is what
// makes sparse updates work.
type clientPayload struct {
	ClientName      *string `json:"client_name"`
	ClientNameAlias *string `json:"clientName"`

	LogoURL      *string `json:"logo_url"`
	LogoURLAlias *string `json:"logoUrl"`

	BlogTitle      *string `json:"blog_title"`
	BlogTitleAlias *string `json:"blogTitle"`

	BlogSlug      *string `json:"blog_slug"`
	BlogSlugAlias *string `json:"blogSlug"`

	BlogBodyHTML      *string `json:"blog_body_html"`
	BlogBodyHTMLAlias *string `json:"blogBodyHtml"`

	BlogFeatureImage       *string `json:"blog_feature_image"`
	BlogFeatureImageURL    *string `json:"blogFeatureImageUrl"`
	BlogFeatureImageCamel  *string `json:"blogFeatureImage"`

	CTAText      *string `json:"cta_text"`
	CTATextAlias *string `json:"ctaText"`

	Images *[]string `json:"images"`
}

// firstSet returns the first non-nil value, preferring earlier arguments
// (snake_case before camelCase, matching the original wire precedence).
func firstSet(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// resolve folds alias fields into their canonical snake_case slot.
func (p *clientPayload) resolve() {
	p.ClientName = firstSet(p.ClientName, p.ClientNameAlias)
	p.LogoURL = firstSet(p.LogoURL, p.LogoURLAlias)
	p.BlogTitle = firstSet(p.BlogTitle, p.BlogTitleAlias)
	p.BlogSlug = firstSet(p.BlogSlug, p.BlogSlugAlias)
	p.BlogBodyHTML = firstSet(p.BlogBodyHTML, p.BlogBodyHTMLAlias)
	p.BlogFeatureImage = firstSet(p.BlogFeatureImage, p.BlogFeatureImageURL, p.BlogFeatureImageCamel)
	p.CTAText = firstSet(p.CTAText, p.CTATextAlias)
}

// listClients returns all client records, newest first. Public route.
func (h clientHandler) listClients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := h.clients.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "clients", err))
			return
		}

		if records == nil {
			records = []*models.ClientRecord{}
		}
		h.responder.WriteJSON(w, records)
	}
}

// getClientBySlug returns the record behind a public blog URL. Public route.
func (h clientHandler) getClientBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogSlug := chi.URLParam(r, "slug")
		if blogSlug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		record, err := h.clients.FindBySlug(blogSlug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "client", err))
			return
		}
		if record == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("client not found"))
			return
		}

		h.responder.WriteJSON(w, record)
	}
}

// createClient validates the payload, derives a unique slug, and inserts the
// record. The slug-existence check keeps the common case clean; the unique
// index on blog_slug is the real guard, and a constraint violation retries
// once with a fresh timestamp suffix.
func (h clientHandler) createClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload clientPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode client request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		payload.resolve()

		clientName := strings.TrimSpace(deref(payload.ClientName))
		blogTitle := strings.TrimSpace(deref(payload.BlogTitle))
		if clientName == "" {
			h.responder.WriteError(w, errs.NewValidationError("client_name", "client_name is required"))
			return
		}
		if blogTitle == "" {
			h.responder.WriteError(w, errs.NewValidationError("blog_title", "blog_title is required"))
			return
		}

		// A logo is required; fall back to the first gallery image when the
		// admin uploaded images but never set a logo explicitly.
		var images []string
		if payload.Images != nil {
			images = *payload.Images
		}
		logoURL := strings.TrimSpace(deref(payload.LogoURL))
		if logoURL == "" && len(images) > 0 {
			logoURL = images[0]
		}
		if logoURL == "" {
			h.responder.WriteError(w, errs.NewValidationError("logo_url", "a logo is required"))
			return
		}

		blogSlug := slug.Make(deref(payload.BlogSlug))
		if blogSlug == "" {
			blogSlug = slug.Make(blogTitle)
		}
		if blogSlug == "" {
			blogSlug = "post"
		}

		exists, err := h.clients.SlugExists(blogSlug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check slug for", "client", err))
			return
		}
		if exists {
			blogSlug = slug.WithSuffix(blogSlug, time.Now())
		}

		ctaText := strings.TrimSpace(deref(payload.CTAText))
		if ctaText == "" {
			ctaText = models.DefaultCTAText
		}

		record := models.ClientRecord{
			ClientName:       clientName,
			LogoURL:          logoURL,
			BlogTitle:        blogTitle,
			BlogSlug:         blogSlug,
			BlogBodyHTML:     deref(payload.BlogBodyHTML),
			BlogFeatureImage: payload.BlogFeatureImage,
			Images:           datatypes.JSONSlice[string](nonNil(images)),
			CTAText:          ctaText,
		}

		if err := h.clients.Add(&record); err != nil {
			if !errs.IsUniqueViolation(err) {
				h.responder.WriteError(w, wrapDatabaseError("create", "client", err))
				return
			}
			// Lost a slug race; retry once with a fresh suffix.
			record.BlogSlug = slug.WithSuffix(slug.Make(blogTitle), time.Now())
			if err := h.clients.Add(&record); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("create", "client", err))
				return
			}
		}

		h.logger.Info().
			Str("clientID", record.ID.String()).
			Str("blogSlug", record.BlogSlug).
			Str("actor", ctxGetAdminSubject(r.Context())).
			Msg("client created")

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, record)
	}
}

// updateClient applies a sparse update. Only keys present in the body are
// touched; a supplied slug is re-normalized, but a title change never
// rederives the slug (public URLs stay stable). Assets no longer referenced
// after the update are left in place on purpose: edits must not destroy
// blobs another field or a half-finished edit may still point at.
func (h clientHandler) updateClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, apiErr := parseClientID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		existing, err := h.clients.FindByID(clientID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "client", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("client not found"))
			return
		}

		var payload clientPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode client request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		payload.resolve()

		fields := map[string]any{}
		if payload.ClientName != nil {
			fields["client_name"] = *payload.ClientName
		}
		if payload.LogoURL != nil {
			fields["logo_url"] = *payload.LogoURL
		}
		if payload.BlogTitle != nil {
			fields["blog_title"] = *payload.BlogTitle
		}
		if payload.BlogSlug != nil {
			fields["blog_slug"] = slug.Make(*payload.BlogSlug)
		}
		if payload.BlogBodyHTML != nil {
			fields["blog_body_html"] = *payload.BlogBodyHTML
		}
		if payload.BlogFeatureImage != nil {
			fields["blog_feature_image"] = *payload.BlogFeatureImage
		}
		if payload.CTAText != nil {
			fields["cta_text"] = *payload.CTAText
		}
		if payload.Images != nil {
			fields["images"] = datatypes.JSONSlice[string](nonNil(*payload.Images))
		}

		if len(fields) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("no updatable fields in request"))
			return
		}

		if err := h.clients.UpdateFields(clientID, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFoundError("client not found"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("update", "client", err))
			return
		}

		updated, err := h.clients.FindByID(clientID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "client", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteClient removes the record and best-effort deletes its referenced
// assets. Asset cleanup never blocks the record deletion; the record write
// is the only outcome callers can rely on.
func (h clientHandler) deleteClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, apiErr := parseClientID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		record, err := h.clients.FindByID(clientID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "client", err))
			return
		}
		if record == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("client not found"))
			return
		}

		var paths []string
		for _, assetURL := range record.AssetURLs() {
			if p := h.blobs.PathFromURL(assetURL); p != "" {
				paths = append(paths, p)
			}
		}
		if len(paths) > 0 {
			if err := h.blobs.Remove(r.Context(), paths); err != nil {
				h.logger.Error().Err(err).
					Str("clientID", clientID.String()).
					Strs("paths", paths).
					Msg("asset cleanup failed; record deletion proceeds")
			}
		}

		if err := h.clients.Delete(clientID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "client", err))
			return
		}

		h.logger.Info().
			Str("clientID", clientID.String()).
			Str("actor", ctxGetAdminSubject(r.Context())).
			Msg("client deleted")

		h.responder.WriteJSON(w, record)
	}
}

func parseClientID(r *http.Request) (uuid.UUID, *errs.ApiErr) {
	idStr := chi.URLParam(r, "clientID")
	if idStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing clientID")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid clientID")
	}
	return id, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
