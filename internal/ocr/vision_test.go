package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/muhammadbalawal/MenuPlus-sub000/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisionExtractor_FullTextAnnotation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		var req visionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Requests, 1)
		assert.Equal(t, "aW1n", req.Requests[0].Image.Content)
		assert.Equal(t, "TEXT_DETECTION", req.Requests[0].Features[0].Type)

		_, _ = w.Write([]byte(`{"responses":[{"fullTextAnnotation":{"text":"Soup 5.00\n\n Salad \n"}}]}`))
	}))
	defer srv.Close()

	v, err := NewVisionExtractor(srv.URL, "secret")
	require.NoError(t, err)

	lines, err := v.ExtractLines(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Soup 5.00", "Salad"}, lines)
}

func TestVisionExtractor_FallsBackToTextAnnotations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"responses":[{"textAnnotations":[{"description":"Ramen\nGyoza"},{"description":"Ramen"}]}]}`))
	}))
	defer srv.Close()

	v, err := NewVisionExtractor(srv.URL, "secret")
	require.NoError(t, err)

	lines, err := v.ExtractLines(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ramen", "Gyoza"}, lines)
}

func TestVisionExtractor_Errors(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
		}))
		defer srv.Close()

		v, _ := NewVisionExtractor(srv.URL, "bad")
		_, err := v.ExtractLines(context.Background(), []byte("img"))
		assert.ErrorContains(t, err, "403")
	})

	t.Run("per-image error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"responses":[{"error":{"code":3,"message":"Bad image data."}}]}`))
		}))
		defer srv.Close()

		v, _ := NewVisionExtractor(srv.URL, "k")
		_, err := v.ExtractLines(context.Background(), []byte("img"))
		assert.ErrorContains(t, err, "Bad image data.")
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewVisionExtractor("", "")
		assert.Error(t, err)
	})
}

func TestNewExtractor(t *testing.T) {
	e, err := NewExtractor(config.OCRConfig{Engine: "tesseract"})
	require.NoError(t, err)
	assert.IsType(t, &TesseractExtractor{}, e)

	e, err = NewExtractor(config.OCRConfig{Engine: "vision", VisionAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &VisionExtractor{}, e)

	_, err = NewExtractor(config.OCRConfig{Engine: "abbyy"})
	assert.Error(t, err)
}
