package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"heartmatch-backend/internal/models"
	"heartmatch-backend/internal/repository"
	"heartmatch-backend/internal/services"
	"heartmatch-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct{}

func (fakeUploader) Upload(_ context.Context, key, _ string, _ []byte) (*storage.Upload, error) {
	return &storage.Upload{Key: key, URL: "https://example.test/" + key, ExpiresAt: time.Now().Add(time.Minute)}, nil
}

type testAPI struct {
	t       *testing.T
	handler http.Handler
}

func newTestAPI(t *testing.T, uploader services.Uploader) *testAPI {
	t.Helper()
	store := repository.NewMemoryStore()
	users := services.NewUserService(store, "test-secret", time.Hour)
	svc := Services{
		Users:     users,
		Profiles:  services.NewProfileService(store),
		Discovery: services.NewDiscoveryService(store, store, 50),
		Swipes:    services.NewSwipeService(store, store),
		Matches:   services.NewMatchService(store, store),
		Export:    services.NewExportService(store, store, store, uploader),
	}
	return &testAPI{t: t, handler: NewRouter(svc, RouterOptions{RequestTimeout: 5 * time.Second})}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) register(email string) (string, string) {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/auth/register", "", CredentialsRequest{Email: email, Password: "long enough"})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp services.AuthResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.User.ID, resp.Token
}

func (a *testAPI) setupProfile(token, name, gender, lookingFor string, hobbies ...string) {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/profile", token, ProfileRequest{
		DisplayName: name,
		Age:         30,
		Gender:      gender,
		LookingFor:  lookingFor,
		Hobbies:     hobbies,
		Traits:      models.TraitVector{models.TraitHumorous: 4, models.TraitCreative: 2},
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, nil)
	rec := api.do(http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthCheckFailure(t *testing.T) {
	h := NewHealthHandler(func(context.Context) error { return errors.New("db down") })
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t, nil)
	api.register("ada@example.com")

	rec := api.do(http.MethodPost, "/api/v1/auth/register", "", CredentialsRequest{Email: "ada@example.com", Password: "long enough"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/auth/login", "", CredentialsRequest{Email: "ada@example.com", Password: "long enough"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[services.AuthResponse](t, rec).Token)

	rec = api.do(http.MethodPost, "/api/v1/auth/login", "", CredentialsRequest{Email: "ada@example.com", Password: "nope nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/auth/register", "", CredentialsRequest{Email: "x", Password: "long enough"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t, nil)
	for _, path := range []string{"/api/v1/profile", "/api/v1/discover", "/api/v1/matches"} {
		rec := api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
	rec := api.do(http.MethodGet, "/api/v1/discover", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileEndpoints(t *testing.T) {
	api := newTestAPI(t, nil)
	userID, token := api.register("ada@example.com")

	rec := api.do(http.MethodGet, "/api/v1/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Profile not found"}`, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/profile", token, ProfileRequest{DisplayName: "Ada", Age: 12, Gender: "female", LookingFor: "male"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	api.setupProfile(token, "Ada", "female", "male", "chess")

	rec = api.do(http.MethodPost, "/api/v1/profile", token, ProfileRequest{DisplayName: "Ada", Age: 30, Gender: "female", LookingFor: "male"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPut, "/api/v1/profile", token, ProfileRequest{
		DisplayName: "Ada L.", Age: 31, Gender: "female", LookingFor: "everyone", Hobbies: []string{"poetry"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode[models.Profile](t, rec)
	assert.Equal(t, userID, profile.ID)
	assert.Equal(t, "Ada L.", profile.DisplayName)
	assert.Equal(t, models.HobbySet{"poetry"}, profile.Hobbies)
}

func TestDiscoverSwipeMatchFlow(t *testing.T) {
	api := newTestAPI(t, nil)
	adaID, ada := api.register("ada@example.com")
	bobID, bob := api.register("bob@example.com")
	_, cy := api.register("cy@example.com")
	api.setupProfile(ada, "Ada", "female", "male", "chess", "jazz")
	api.setupProfile(bob, "Bob", "male", "female", "chess", "jazz")
	api.setupProfile(cy, "Cy", "male", "female", "golf")

	// requester without a profile
	_, dee := api.register("dee@example.com")
	rec := api.do(http.MethodGet, "/api/v1/discover", dee, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/discover", ada, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	disc := decode[DiscoverResponse](t, rec)
	require.Len(t, disc.Profiles, 2)
	assert.Equal(t, bobID, disc.Profiles[0].ID)
	assert.Equal(t, 70, disc.Profiles[0].CompatibilityScore)
	assert.Equal(t, 50, disc.Profiles[1].CompatibilityScore)

	rec = api.do(http.MethodGet, "/api/v1/profiles/"+bobID+"/compatibility", ada, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	compat := decode[services.Compatibility](t, rec)
	assert.Equal(t, 70, compat.Score)
	assert.Equal(t, []string{"chess", "jazz"}, compat.SharedHobbies)

	liked := true
	rec = api.do(http.MethodPost, "/api/v1/swipes", ada, SwipeRequest{SwipedID: bobID, Liked: &liked})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"match":false}`, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/swipes", ada, SwipeRequest{SwipedID: bobID, Liked: &liked})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/swipes", bob, SwipeRequest{SwipedID: adaID, Liked: &liked})
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[models.SwipeResult](t, rec)
	assert.True(t, result.Match)
	assert.NotEmpty(t, result.MatchID)

	// bob is no longer offered to ada
	rec = api.do(http.MethodGet, "/api/v1/discover", ada, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	disc = decode[DiscoverResponse](t, rec)
	require.Len(t, disc.Profiles, 1)
	assert.NotEqual(t, bobID, disc.Profiles[0].ID)

	rec = api.do(http.MethodGet, "/api/v1/matches", ada, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	matches := decode[MatchesResponse](t, rec)
	require.Len(t, matches.Matches, 1)
	assert.Equal(t, result.MatchID, matches.Matches[0].MatchID)
	assert.Equal(t, bobID, matches.Matches[0].Profile.ID)
}

func TestSwipeValidation(t *testing.T) {
	api := newTestAPI(t, nil)
	adaID, ada := api.register("ada@example.com")
	api.setupProfile(ada, "Ada", "female", "male")

	rec := api.do(http.MethodPost, "/api/v1/swipes", ada, map[string]any{"swiped_id": "someone"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/swipes", ada, map[string]any{"swiped_id": "someone", "liked": "yes"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/swipes", ada, map[string]any{"liked": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/swipes", ada, map[string]any{"swiped_id": adaID, "liked": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/swipes", ada, map[string]any{"swiped_id": "ghost", "liked": true})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportEndpoint(t *testing.T) {
	api := newTestAPI(t, fakeUploader{})
	userID, token := api.register("ada@example.com")

	rec := api.do(http.MethodPost, "/api/v1/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	upload := decode[storage.Upload](t, rec)
	assert.Contains(t, upload.Key, userID)

	disabled := newTestAPI(t, nil)
	_, token = disabled.register("bob@example.com")
	rec = disabled.do(http.MethodPost, "/api/v1/export", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{services.ErrUnauthenticated, http.StatusUnauthorized},
		{models.ErrProfileNotFound, http.StatusNotFound},
		{models.ErrNotFound, http.StatusNotFound},
		{services.ErrInvalidInput, http.StatusBadRequest},
		{models.ErrInvalidProfile, http.StatusBadRequest},
		{models.ErrAlreadySwiped, http.StatusConflict},
		{models.ErrProfileExists, http.StatusConflict},
		{models.ErrEmailTaken, http.StatusConflict},
		{services.ErrExportDisabled, http.StatusServiceUnavailable},
		{errors.New("db exploded"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, statusFor(tt.err), tt.err.Error())
	}
}
