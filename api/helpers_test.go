package api

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/medigital/site-backend/models"
	"github.com/medigital/site-backend/storage"
)

const testBucket = "client-assets"

// fakeClientStore is an in-memory clientStore for handler tests.
type fakeClientStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*models.ClientRecord
	order   []uuid.UUID

	addErr      error
	addErrOnce  error
	addCalls    int
	updateCalls int
}

func newFakeClientStore() *fakeClientStore {
	return &fakeClientStore{records: map[uuid.UUID]*models.ClientRecord{}}
}

func (f *fakeClientStore) FindAll() ([]*models.ClientRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.ClientRecord, 0, len(f.order))
	for i := len(f.order) - 1; i >= 0; i-- {
		out = append(out, f.records[f.order[i]])
	}
	return out, nil
}

func (f *fakeClientStore) FindByID(id uuid.UUID) (*models.ClientRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[id], nil
}

func (f *fakeClientStore) FindBySlug(slug string) (*models.ClientRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.BlogSlug == slug {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeClientStore) SlugExists(slug string) (bool, error) {
	rec, err := f.FindBySlug(slug)
	return rec != nil, err
}

func (f *fakeClientStore) Add(record *models.ClientRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	if f.addErr != nil {
		return f.addErr
	}
	if f.addErrOnce != nil {
		err := f.addErrOnce
		f.addErrOnce = nil
		return err
	}
	record.ID = uuid.New()
	record.CreatedAt = time.Now()
	clone := *record
	f.records[record.ID] = &clone
	f.order = append(f.order, record.ID)
	return nil
}

func (f *fakeClientStore) UpdateFields(id uuid.UUID, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	rec, ok := f.records[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range fields {
		switch key {
		case "client_name":
			rec.ClientName = value.(string)
		case "logo_url":
			rec.LogoURL = value.(string)
		case "blog_title":
			rec.BlogTitle = value.(string)
		case "blog_slug":
			rec.BlogSlug = value.(string)
		case "blog_body_html":
			rec.BlogBodyHTML = value.(string)
		case "blog_feature_image":
			s := value.(string)
			rec.BlogFeatureImage = &s
		case "cta_text":
			rec.CTAText = value.(string)
		case "images":
			rec.Images = value.(datatypes.JSONSlice[string])
		}
	}
	return nil
}

func (f *fakeClientStore) Delete(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

// fakeBlobStore records calls and maps URLs like the S3 store would.
type fakeBlobStore struct {
	mu      sync.Mutex
	uploads map[string][]byte
	removed [][]string

	uploadErr error
	removeErr error
	listErr   error
	objects   []storage.Object
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{uploads: map[string][]byte{}}
}

func (f *fakeBlobStore) Upload(_ context.Context, path string, data []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads[path] = data
	return "https://cdn.test/storage/v1/object/public/" + testBucket + "/" + path, nil
}

func (f *fakeBlobStore) Remove(_ context.Context, paths []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, paths)
	return f.removeErr
}

func (f *fakeBlobStore) List(_ context.Context, _ string, _ int) ([]storage.Object, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.objects, nil
}

func (f *fakeBlobStore) PathFromURL(rawURL string) string {
	return storage.PathFromPublicURL(rawURL, testBucket)
}

func (f *fakeBlobStore) removeCalls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.removed
}
