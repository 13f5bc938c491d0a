package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, field string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, data := range files {
		part, err := writer.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func doUpload(t *testing.T, h uploadHandler, field string, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, field, files)
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.uploadAssets()(rec, req)
	return rec
}

func TestUploadSingleFile(t *testing.T) {
	blobs := newFakeBlobStore()
	h := newUploadHandler(blobs, 1024)

	rec := doUpload(t, h, "file", map[string][]byte{"logo.png": []byte("png-bytes")})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Regexp(t, regexp.MustCompile(`/client-assets/uploads/\d+-[0-9a-f-]+\.png$`), resp.URL)
	assert.Len(t, blobs.uploads, 1)
}

func TestUploadMultipleFiles(t *testing.T) {
	blobs := newFakeBlobStore()
	h := newUploadHandler(blobs, 1024)

	rec := doUpload(t, h, "files", map[string][]byte{
		"a.png": []byte("aaa"),
		"b.jpg": []byte("bbb"),
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		URLs []string `json:"urls"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.URLs, 2)
	assert.Len(t, blobs.uploads, 2)
}

func TestUploadExtensionDefaultsToPNG(t *testing.T) {
	blobs := newFakeBlobStore()
	h := newUploadHandler(blobs, 1024)

	rec := doUpload(t, h, "file", map[string][]byte{"no-extension": []byte("data")})

	require.Equal(t, http.StatusCreated, rec.Code)
	for path := range blobs.uploads {
		assert.Regexp(t, regexp.MustCompile(`\.png$`), path)
	}
}

func TestUploadNoFile(t *testing.T) {
	h := newUploadHandler(newFakeBlobStore(), 1024)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("note", "not a file"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	h.uploadAssets()(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadTooLarge(t *testing.T) {
	blobs := newFakeBlobStore()
	h := newUploadHandler(blobs, 8)

	rec := doUpload(t, h, "file", map[string][]byte{"big.png": []byte("way more than eight bytes")})

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Empty(t, blobs.uploads, "oversized payload must not reach the blob store")
}

func TestUploadOversizedPartBlocksWholeBatch(t *testing.T) {
	blobs := newFakeBlobStore()
	h := newUploadHandler(blobs, 8)

	rec := doUpload(t, h, "files", map[string][]byte{
		"ok.png":  []byte("tiny"),
		"big.png": []byte("way more than eight bytes"),
	})

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Empty(t, blobs.uploads)
}

func TestUploadStorageFailure(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.uploadErr = assert.AnError
	h := newUploadHandler(blobs, 1024)

	rec := doUpload(t, h, "file", map[string][]byte{"logo.png": []byte("x")})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
