package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/muhammadbalawal/MenuPlus-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOnboarding struct {
	completed []string
	err       error
}

func (f *fakeOnboarding) CompleteOnboarding(ctx context.Context, userID string) error {
	f.completed = append(f.completed, userID)
	return f.err
}

func newTestService(t *testing.T) (*Service, *fakeOnboarding) {
	t.Helper()

	repo := NewInMemoryRepository()
	require.NoError(t, repo.UpsertLanguage(context.Background(), Language{ID: "en", Name: "English"}))
	require.NoError(t, repo.UpsertLanguage(context.Background(), Language{ID: "fr", Name: "French"}))

	onboarding := &fakeOnboarding{}
	return NewService(repo, onboarding, zap.NewNop()), onboarding
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Peanuts ", "", "peanuts", "Shellfish", "  "})
	assert.Equal(t, []string{"Peanuts", "Shellfish"}, got)

	assert.NotNil(t, NormalizeTags(nil))
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"vegan", "halal"}, SplitTags("vegan, halal,,"))
	assert.Empty(t, SplitTags(""))
}

func TestTagList_AcceptsArrayOrString(t *testing.T) {
	var req saveProfileRequest
	body := `{"allergies": ["nuts", " Nuts "], "dislikes": "olives, anchovies"}`

	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, TagList{"nuts"}, req.Allergies)
	assert.Equal(t, TagList{"olives", "anchovies"}, req.Dislikes)
}

func TestSave_CreatesThenUpdates(t *testing.T) {
	service, onboarding := newTestService(t)
	ctx := context.Background()

	p, err := service.Save(ctx, "user-1", SaveInput{
		PreferredLanguageID: "en",
		Allergies:           []string{"peanuts"},
		Preferences:         []string{"spicy"},
	})
	require.NoError(t, err)
	assert.Equal(t, "English", p.PreferredLanguageName)
	assert.Equal(t, []string{"user-1"}, onboarding.completed)

	_, err = service.Save(ctx, "user-1", SaveInput{
		PreferredLanguageID: "fr",
		DietaryRestrictions: []string{"vegetarian"},
	})
	require.NoError(t, err)

	stored, err := service.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "fr", stored.PreferredLanguageID)
	assert.Equal(t, "French", stored.Language())
	assert.Empty(t, stored.Allergies)
	assert.Equal(t, []string{"vegetarian"}, stored.DietaryRestrictions)
}

func TestSave_Validation(t *testing.T) {
	service, onboarding := newTestService(t)
	ctx := context.Background()

	_, err := service.Save(ctx, "user-1", SaveInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Save(ctx, "user-1", SaveInput{PreferredLanguageID: "xx"})
	assert.ErrorIs(t, err, ErrUnknownLanguage)

	assert.Empty(t, onboarding.completed)
}

func TestSave_OnboardingFailureDoesNotFailSave(t *testing.T) {
	service, onboarding := newTestService(t)
	onboarding.err = errors.New("db down")

	_, err := service.Save(context.Background(), "user-1", SaveInput{PreferredLanguageID: "en"})
	assert.NoError(t, err)
}

func TestGet_NotFound(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddLanguage(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	lang, err := service.AddLanguage(ctx, " ES ", "Spanish")
	require.NoError(t, err)
	assert.Equal(t, "es", lang.ID)

	languages, err := service.ListLanguages(ctx)
	require.NoError(t, err)
	assert.Len(t, languages, 3)
	assert.Equal(t, "English", languages[0].Name)

	_, err = service.AddLanguage(ctx, "", "Nothing")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func setupProfileRouter(t *testing.T, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	service, _ := newTestService(t)
	handler := NewHandler(service)

	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.ContextUserID, userID)
		}
		c.Next()
	})
	r.GET("/languages", handler.ListLanguages)
	r.GET("/profile", handler.Get)
	r.PUT("/profile", handler.Save)
	return r
}

func TestHandler_ProfileRoundTrip(t *testing.T) {
	r := setupProfileRouter(t, "user-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	body := `{"preferred_language_id":"en","allergies":"peanuts, shellfish","preferences":["sushi"]}`
	req := httptest.NewRequest(http.MethodPut, "/profile", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var p Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, []string{"peanuts", "shellfish"}, p.Allergies)
	assert.Equal(t, []string{"sushi"}, p.Preferences)
}

func TestHandler_UnknownLanguage(t *testing.T) {
	r := setupProfileRouter(t, "user-1")

	req := httptest.NewRequest(http.MethodPut, "/profile", bytes.NewBufferString(`{"preferred_language_id":"zz"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Unauthenticated(t *testing.T) {
	r := setupProfileRouter(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_ListLanguages(t *testing.T) {
	r := setupProfileRouter(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/languages", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "French")
}
