package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medigital/site-backend/storage"
)

func TestListObjects(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.objects = []storage.Object{
		{Name: "a.png", Path: "uploads/a.png", Size: 10, ContentType: "image/png"},
		{Name: "b.jpg", Path: "uploads/b.jpg", Size: 20, ContentType: "image/jpeg"},
	}
	h := newStorageHandler(blobs)

	req := httptest.NewRequest(http.MethodGet, "/storage/list?prefix=uploads/&limit=50", nil)
	rec := httptest.NewRecorder()
	h.listObjects()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Files []storage.Object `json:"files"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Files, 2)
	assert.Equal(t, "uploads/a.png", resp.Files[0].Path)
}

func TestListObjectsEmptyStore(t *testing.T) {
	h := newStorageHandler(newFakeBlobStore())

	req := httptest.NewRequest(http.MethodGet, "/storage/list", nil)
	rec := httptest.NewRecorder()
	h.listObjects()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"files":[]}`, rec.Body.String())
}

func TestListObjectsBadLimit(t *testing.T) {
	h := newStorageHandler(newFakeBlobStore())

	req := httptest.NewRequest(http.MethodGet, "/storage/list?limit=zero", nil)
	rec := httptest.NewRecorder()
	h.listObjects()(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListObjectsStoreFailure(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.listErr = assert.AnError
	h := newStorageHandler(blobs)

	req := httptest.NewRequest(http.MethodGet, "/storage/list", nil)
	rec := httptest.NewRecorder()
	h.listObjects()(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
