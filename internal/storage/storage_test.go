package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	appconfig "github.com/muhammadbalawal/MenuPlus-sub000/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	url, err := store.Upload(ctx, "scans/u1/a.png", bytes.NewReader([]byte("img")), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "memory://scans/u1/a.png", url)
	assert.Equal(t, "image/png", store.ContentType("scans/u1/a.png"))

	data, err := store.Download(ctx, "scans/u1/a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), data)

	require.NoError(t, store.Delete(ctx, "scans/u1/a.png"))
	_, err = store.Download(ctx, "scans/u1/a.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUploadMultipartFile(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("menu_image", "menu.jpg")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("jpeg-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	fh := req.MultipartForm.File["menu_image"][0]

	store := NewMemoryStore()
	_, err = UploadMultipartFile(context.Background(), store, "scans/u1/menu.jpg", fh)
	require.NoError(t, err)

	data, err := store.Download(context.Background(), "scans/u1/menu.jpg")
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestS3Store_AgainstFakeEndpoint(t *testing.T) {
	objects := map[string][]byte{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			buf := new(bytes.Buffer)
			_, _ = buf.ReadFrom(r.Body)
			objects[r.URL.Path] = buf.Bytes()
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			data, ok := objects[r.URL.Path]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`))
				return
			}
			_, _ = w.Write(data)
		case http.MethodDelete:
			delete(objects, r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	store, err := NewS3Store(context.Background(), appconfig.StorageConfig{
		Endpoint:      srv.URL,
		Region:        "auto",
		Bucket:        "menus",
		AccessKey:     "key",
		SecretKey:     "secret",
		PublicBaseURL: "https://cdn.example.com/",
		UsePathStyle:  true,
	})
	require.NoError(t, err)

	ctx := context.Background()
	url, err := store.Upload(ctx, "scans/u1/a.png", bytes.NewReader([]byte("png")), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/scans/u1/a.png", url)
	assert.Contains(t, objects, "/menus/scans/u1/a.png")

	data, err := store.Download(ctx, "scans/u1/a.png")
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	require.NoError(t, store.Delete(ctx, "scans/u1/a.png"))
	_, err = store.Download(ctx, "scans/u1/a.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), appconfig.StorageConfig{})
	assert.Error(t, err)
}
