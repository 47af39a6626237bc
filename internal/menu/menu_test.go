package menu

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/muhammadbalawal/MenuPlus-sub000/internal/middleware"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newTestService() (*Service, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return NewService(NewInMemoryRepository(), store, zap.NewNop()), store
}

func TestSave_WithImage(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()

	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngHeader)
	m, err := service.Save(ctx, "user-1", SaveInput{
		MenuText:        "Pad Thai",
		SafeMenuContent: "Pad Thai (no peanuts)",
		ImageBase64:     encoded,
	})
	require.NoError(t, err)

	assert.Regexp(t, `^menus/user-1/[0-9a-f-]{36}\.png$`, m.ImageKey)
	assert.Equal(t, "memory://"+m.ImageKey, m.ImageURL)
	assert.Equal(t, "image/png", store.ContentType(m.ImageKey))

	data, err := store.Download(ctx, m.ImageKey)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestSave_Validation(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, err := service.Save(ctx, "user-1", SaveInput{MenuText: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Save(ctx, "user-1", SaveInput{MenuText: "Soup", ImageBase64: "%%%"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	plain := base64.StdEncoding.EncodeToString([]byte("just some text"))
	_, err = service.Save(ctx, "user-1", SaveInput{MenuText: "Soup", ImageBase64: plain})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetListDelete(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()

	clock := time.Date(2025, 11, 12, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	empty, err := service.List(ctx, "user-1")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	older, err := service.Save(ctx, "user-1", SaveInput{MenuText: "Soup"})
	require.NoError(t, err)
	newer, err := service.Save(ctx, "user-1", SaveInput{
		MenuText:    "Ramen",
		ImageBase64: base64.StdEncoding.EncodeToString(pngHeader),
	})
	require.NoError(t, err)
	_, err = service.Save(ctx, "user-2", SaveInput{MenuText: "Tacos"})
	require.NoError(t, err)

	menus, err := service.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, menus, 2)
	assert.Equal(t, newer.ID, menus[0].ID)
	assert.Equal(t, older.ID, menus[1].ID)

	_, err = service.Get(ctx, "user-2", older.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = service.Get(ctx, "user-1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, service.Delete(ctx, "user-2", newer.ID), ErrForbidden)
	require.NoError(t, service.Delete(ctx, "user-1", newer.ID))

	_, err = store.Download(ctx, newer.ImageKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = service.Get(ctx, "user-1", newer.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func setupMenuRouter(service *Service, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handler := NewHandler(service)
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.ContextUserID, userID)
		}
		c.Next()
	})
	r.POST("/menus", handler.Save)
	r.GET("/menus", handler.List)
	r.GET("/menus/:id", handler.Get)
	r.DELETE("/menus/:id", handler.Delete)
	return r
}

func TestHandler_MenuRoundTrip(t *testing.T) {
	service, _ := newTestService()
	r := setupMenuRouter(service, "user-1")

	body := `{"menu_text":"Pizza\nPasta","safe_menu_content":"Pizza","best_menu_content":"Pasta","full_menu_content":"All items"}`
	req := httptest.NewRequest(http.MethodPost, "/menus", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created Menu
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Pasta", created.BestMenuContent)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menus", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.ID)

	other := setupMenuRouter(service, "user-2")
	w = httptest.NewRecorder()
	other.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menus/"+created.ID, nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/menus/"+created.ID, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menus/"+created.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_SaveRequiresAuthAndText(t *testing.T) {
	service, _ := newTestService()

	req := httptest.NewRequest(http.MethodPost, "/menus", bytes.NewBufferString(`{"menu_text":"Soup"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	setupMenuRouter(service, "").ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/menus", bytes.NewBufferString(`{"menu_text":""}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	setupMenuRouter(service, "user-1").ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
