package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"moviestore/catalog"
	"moviestore/category"
	"moviestore/entity"
	"moviestore/httpserver"
	"moviestore/movie"
	"moviestore/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = testJWTSecret
	return cfg
}

func signToken(tokenType string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  "admin",
		"type": tokenType,
		"jti":  "00000000-0000-0000-0000-000000000001",
		"exp":  time.Now().Add(1 * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(testJWTSecret))
}

func signTestToken() (string, error) {
	return signToken("access")
}

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) GetAll(ctx context.Context) ([]movie.Movie, error) {
	args := m.Called(ctx)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func (m *MockMovieService) GetByID(ctx context.Context, id int) (entity.Result[movie.Movie], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.Result[movie.Movie]), args.Error(1)
}

func (m *MockMovieService) Add(ctx context.Context, mv movie.Movie) (entity.Result[movie.Movie], error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(entity.Result[movie.Movie]), args.Error(1)
}

func (m *MockMovieService) Update(ctx context.Context, mv movie.Movie) (entity.Result[movie.Movie], error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(entity.Result[movie.Movie]), args.Error(1)
}

func (m *MockMovieService) Remove(ctx context.Context, mv movie.Movie) (entity.Reason, error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(entity.Reason), args.Error(1)
}

func (m *MockMovieService) GetMovieByCategory(ctx context.Context, categoryID int) ([]movie.Movie, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func (m *MockMovieService) Search(ctx context.Context, title string) ([]movie.Movie, error) {
	args := m.Called(ctx, title)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func (m *MockMovieService) SearchMovieWithCategory(ctx context.Context, term string) ([]movie.Movie, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func (m *MockMovieService) HasMoviesInCategory(ctx context.Context, categoryID int) (bool, error) {
	args := m.Called(ctx, categoryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMovieService) Close() error {
	return nil
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) GetAll(ctx context.Context) ([]category.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]category.Category), args.Error(1)
}

func (m *MockCategoryService) GetByID(ctx context.Context, id int) (entity.Result[category.Category], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.Result[category.Category]), args.Error(1)
}

func (m *MockCategoryService) Add(ctx context.Context, c category.Category) (entity.Result[category.Category], error) {
	args := m.Called(ctx, c)
	return args.Get(0).(entity.Result[category.Category]), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, c category.Category) (entity.Result[category.Category], error) {
	args := m.Called(ctx, c)
	return args.Get(0).(entity.Result[category.Category]), args.Error(1)
}

func (m *MockCategoryService) Remove(ctx context.Context, c category.Category) (entity.Reason, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(entity.Reason), args.Error(1)
}

func (m *MockCategoryService) Search(ctx context.Context, name string) ([]category.Category, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]category.Category), args.Error(1)
}

func (m *MockCategoryService) Close() error {
	return nil
}

// fakeScoper hands the same mocked services to every request and counts the
// scopes it opened.
type fakeScoper struct {
	services catalog.Services
	opened   int
}

func (f *fakeScoper) Scope(_ context.Context, fn func(catalog.Services) error) error {
	f.opened++
	return fn(f.services)
}

func newTestServer(t *testing.T) (*httpserver.Server, *MockMovieService, *MockCategoryService, *fakeScoper) {
	t.Helper()
	movies := new(MockMovieService)
	categories := new(MockCategoryService)
	scoper := &fakeScoper{services: catalog.Services{Movies: movies, Categories: categories}}

	server := httpserver.Default(testConfig())
	server.Catalog = scoper
	return server, movies, categories, scoper
}

func doRequest(t *testing.T, server *httpserver.Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	token, err := signTestToken()
	require.NoError(t, err)
	return doRequestWithToken(t, server, method, path, body, token)
}

func doRequestWithToken(t *testing.T, server *httpserver.Server, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}

type apiResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func decodeList[T any](t *testing.T, rec *httptest.ResponseRecorder) []T {
	t.Helper()
	var list struct {
		Data []T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(decodeAPIResponse(t, rec).Result, &list))
	return list.Data
}

func decodeResult[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(decodeAPIResponse(t, rec).Result, &v))
	return v
}
