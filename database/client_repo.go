package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medigital/site-backend/models"
)

// UpdatableFields is the allow-list for sparse updates; request keys outside
// it are dropped before anything reaches the database.
var UpdatableFields = map[string]struct{}{
	"client_name":        {},
	"logo_url":           {},
	"blog_title":         {},
	"blog_slug":          {},
	"blog_body_html":     {},
	"blog_feature_image": {},
	"cta_text":           {},
	"images":             {},
}

type ClientRepo struct {
	db *gorm.DB
}

func NewClientRepo(db *gorm.DB) *ClientRepo {
	return &ClientRepo{db}
}

// FindAll returns all client records, newest first.
func (r *ClientRepo) FindAll() ([]*models.ClientRecord, error) {
	var records []*models.ClientRecord
	err := r.db.Order("created_at DESC").Find(&records).Error
	return records, err
}

// FindByID returns a record by its ID, or (nil, nil) when absent.
func (r *ClientRepo) FindByID(id uuid.UUID) (*models.ClientRecord, error) {
	var record models.ClientRecord
	err := r.db.First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindBySlug returns a record by its blog slug, or (nil, nil) when absent.
func (r *ClientRepo) FindBySlug(slug string) (*models.ClientRecord, error) {
	var record models.ClientRecord
	err := r.db.First(&record, "blog_slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// SlugExists reports whether any record already holds the given slug. The
// unique index on blog_slug remains the real guard; this check only keeps
// the common case from round-tripping through a constraint violation.
func (r *ClientRepo) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ClientRecord{}).Where("blog_slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Add inserts a new client record.
func (r *ClientRepo) Add(record *models.ClientRecord) error {
	return r.db.Create(record).Error
}

// UpdateFields applies a sparse column update. Keys outside UpdatableFields
// are ignored; an update that matches no row reports gorm.ErrRecordNotFound.
func (r *ClientRepo) UpdateFields(id uuid.UUID, fields map[string]any) error {
	filtered := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, ok := UpdatableFields[k]; ok {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	result := r.db.Model(&models.ClientRecord{}).Where("id = ?", id).Updates(filtered)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a client record by id.
func (r *ClientRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ClientRecord{}, "id = ?", id).Error
}
