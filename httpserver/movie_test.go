package httpserver_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"moviestore/category"
	"moviestore/entity"
	"moviestore/httpserver"
	"moviestore/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var releaseDate = time.Date(1999, 3, 31, 0, 0, 0, 0, time.UTC)

func matrixRequest() httpserver.MovieRequest {
	return httpserver.MovieRequest{
		CategoryID:  1,
		Title:       "The Matrix",
		Author:      "Wachowski",
		Description: "A hacker learns the truth",
		ReleaseDate: releaseDate,
	}
}

func TestListMovies(t *testing.T) {
	server, movies, _, _ := newTestServer(t)
	scifi := &category.Category{ID: 1, Name: "Sci-Fi"}
	movies.On("GetAll", mock.Anything).Return([]movie.Movie{
		{ID: 2, Title: "Alien", CategoryID: 1, Category: scifi},
		{ID: 1, Title: "The Matrix", CategoryID: 1, Category: scifi},
	}, nil).Once()

	response := doRequest(t, server, http.MethodGet, "/api/movies", nil)

	assert.Equal(t, http.StatusOK, response.Code)
	list := decodeList[movie.Movie](t, response)
	if assert.Len(t, list, 2) {
		assert.Equal(t, "Alien", list[0].Title)
		assert.Equal(t, "Sci-Fi", list[0].Category.Name)
	}
	movies.AssertExpectations(t)
}

func TestGetMovie(t *testing.T) {
	t.Run("should return the movie", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		movies.On("GetByID", mock.Anything, 1).
			Return(entity.Success(movie.Movie{ID: 1, Title: "The Matrix"}), nil).Once()

		response := doRequest(t, server, http.MethodGet, "/api/movies/1", nil)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, "The Matrix", decodeResult[movie.Movie](t, response).Title)
	})

	t.Run("should return 404 when absent", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		movies.On("GetByID", mock.Anything, 42).
			Return(entity.Rejected[movie.Movie](entity.NotFound), nil).Once()

		response := doRequest(t, server, http.MethodGet, "/api/movies/42", nil)

		assert.Equal(t, http.StatusNotFound, response.Code)
		assert.Equal(t, "100404", decodeAPIResponse(t, response).Code)
	})

	t.Run("should return 400 for a malformed id", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)

		response := doRequest(t, server, http.MethodGet, "/api/movies/abc", nil)

		assert.Equal(t, http.StatusBadRequest, response.Code)
		movies.AssertNotCalled(t, "GetByID")
	})

	t.Run("should return 500 on store failure", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		movies.On("GetByID", mock.Anything, 1).
			Return(entity.Result[movie.Movie]{}, errors.New("connection reset")).Once()

		response := doRequest(t, server, http.MethodGet, "/api/movies/1", nil)

		assert.Equal(t, http.StatusInternalServerError, response.Code)
		assert.Equal(t, "Internal server error", decodeAPIResponse(t, response).Message)
	})
}

func TestMoviesByCategory(t *testing.T) {
	t.Run("should list the movies of the category", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		movies.On("GetMovieByCategory", mock.Anything, 3).
			Return([]movie.Movie{{ID: 1, Title: "The Matrix", CategoryID: 3}}, nil).Once()

		response := doRequest(t, server, http.MethodGet, "/api/movies/by-category/3", nil)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Len(t, decodeList[movie.Movie](t, response), 1)
	})

	t.Run("should return 404 when the category is empty", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		movies.On("GetMovieByCategory", mock.Anything, 3).Return([]movie.Movie{}, nil).Once()

		response := doRequest(t, server, http.MethodGet, "/api/movies/by-category/3", nil)

		assert.Equal(t, http.StatusNotFound, response.Code)
	})
}

func TestSearchMovies(t *testing.T) {
	t.Run("should return matches", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		movies.On("Search", mock.Anything, "Matrix").
			Return([]movie.Movie{{ID: 1, Title: "The Matrix"}}, nil).Once()

		response := doRequest(t, server, http.MethodGet, "/api/movies/search/Matrix", nil)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Len(t, decodeList[movie.Movie](t, response), 1)
	})

	t.Run("should return 404 when nothing matches", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		movies.On("Search", mock.Anything, "zzz").Return([]movie.Movie{}, nil).Once()

		response := doRequest(t, server, http.MethodGet, "/api/movies/search/zzz", nil)

		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("should pass a whitespace term through as a substring", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		movies.On("Search", mock.Anything, " ").
			Return([]movie.Movie{{ID: 4, Title: "The Matrix"}}, nil).Once()

		response := doRequest(t, server, http.MethodGet, "/api/movies/search/%20", nil)

		assert.Equal(t, http.StatusOK, response.Code)
		movies.AssertExpectations(t)
	})

	t.Run("should pass a whitespace term to the category search", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		movies.On("SearchMovieWithCategory", mock.Anything, " ").
			Return([]movie.Movie{{ID: 4, Title: "The Matrix"}}, nil).Once()

		response := doRequest(t, server, http.MethodGet, "/api/movies/search-with-category/%20", nil)

		assert.Equal(t, http.StatusOK, response.Code)
		movies.AssertExpectations(t)
	})

	t.Run("should search across category", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		movies.On("SearchMovieWithCategory", mock.Anything, "Sci").
			Return([]movie.Movie{{ID: 1, Title: "The Matrix"}, {ID: 2, Title: "Alien"}}, nil).Once()

		response := doRequest(t, server, http.MethodGet, "/api/movies/search-with-category/Sci", nil)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Len(t, decodeList[movie.Movie](t, response), 2)
	})

	t.Run("should return 404 when nothing matches across category", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		movies.On("SearchMovieWithCategory", mock.Anything, "zzz").Return([]movie.Movie{}, nil).Once()

		response := doRequest(t, server, http.MethodGet, "/api/movies/search-with-category/zzz", nil)

		assert.Equal(t, http.StatusNotFound, response.Code)
	})
}

func TestAddMovie(t *testing.T) {
	t.Run("should return 201 with the stored movie", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		req := matrixRequest()
		stored := req.ToMovie()
		stored.ID = 7
		movies.On("Add", mock.Anything, req.ToMovie()).Return(entity.Success(stored), nil).Once()

		response := doRequest(t, server, http.MethodPost, "/api/movies", req)

		assert.Equal(t, http.StatusCreated, response.Code)
		assert.Equal(t, 7, decodeResult[movie.Movie](t, response).ID)
		movies.AssertExpectations(t)
	})

	t.Run("should ignore a client supplied id", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		req := matrixRequest()
		req.ID = 99
		expected := req.ToMovie()
		expected.ID = 0
		movies.On("Add", mock.Anything, expected).Return(entity.Success(movie.Movie{ID: 1}), nil).Once()

		response := doRequest(t, server, http.MethodPost, "/api/movies", req)

		assert.Equal(t, http.StatusCreated, response.Code)
		movies.AssertExpectations(t)
	})

	t.Run("should return 409 for a duplicate title", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		movies.On("Add", mock.Anything, mock.Anything).
			Return(entity.Rejected[movie.Movie](entity.Duplicate), nil).Once()

		response := doRequest(t, server, http.MethodPost, "/api/movies", matrixRequest())

		assert.Equal(t, http.StatusConflict, response.Code)
		assert.Equal(t, "100409", decodeAPIResponse(t, response).Code)
	})

	invalid := []struct {
		name   string
		mutate func(r *httpserver.MovieRequest)
	}{
		{"title too short", func(r *httpserver.MovieRequest) { r.Title = "A" }},
		{"title blank", func(r *httpserver.MovieRequest) { r.Title = "   " }},
		{"author missing", func(r *httpserver.MovieRequest) { r.Author = "" }},
		{"category missing", func(r *httpserver.MovieRequest) { r.CategoryID = 0 }},
		{"description too long", func(r *httpserver.MovieRequest) { r.Description = strings.Repeat("x", 351) }},
	}
	for _, tt := range invalid {
		t.Run("should return 400 when "+tt.name, func(t *testing.T) {
			server, movies, _, _ := newTestServer(t)
			req := matrixRequest()
			tt.mutate(&req)

			response := doRequest(t, server, http.MethodPost, "/api/movies", req)

			assert.Equal(t, http.StatusBadRequest, response.Code)
			assert.Equal(t, "100010", decodeAPIResponse(t, response).Code)
			movies.AssertNotCalled(t, "Add")
		})
	}
}

func TestUpdateMovie(t *testing.T) {
	t.Run("should return 200 with the movie", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		req := matrixRequest()
		req.ID = 1
		movies.On("Update", mock.Anything, req.ToMovie()).Return(entity.Success(req.ToMovie()), nil).Once()

		response := doRequest(t, server, http.MethodPut, "/api/movies/1", req)

		assert.Equal(t, http.StatusOK, response.Code)
		movies.AssertExpectations(t)
	})

	t.Run("should return 400 when ids differ", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		req := matrixRequest()
		req.ID = 2

		response := doRequest(t, server, http.MethodPut, "/api/movies/1", req)

		assert.Equal(t, http.StatusBadRequest, response.Code)
		movies.AssertNotCalled(t, "Update")
	})

	t.Run("should return 409 for a duplicate title", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		req := matrixRequest()
		req.ID = 1
		movies.On("Update", mock.Anything, req.ToMovie()).
			Return(entity.Rejected[movie.Movie](entity.Duplicate), nil).Once()

		response := doRequest(t, server, http.MethodPut, "/api/movies/1", req)

		assert.Equal(t, http.StatusConflict, response.Code)
	})

	t.Run("should return 404 when absent", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		req := matrixRequest()
		req.ID = 5
		movies.On("Update", mock.Anything, req.ToMovie()).
			Return(entity.Rejected[movie.Movie](entity.NotFound), nil).Once()

		response := doRequest(t, server, http.MethodPut, "/api/movies/5", req)

		assert.Equal(t, http.StatusNotFound, response.Code)
	})
}

func TestRemoveMovie(t *testing.T) {
	t.Run("should remove an existing movie", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		existing := movie.Movie{ID: 1, Title: "The Matrix"}
		movies.On("GetByID", mock.Anything, 1).Return(entity.Success(existing), nil).Once()
		movies.On("Remove", mock.Anything, existing).Return(entity.Ok, nil).Once()

		response := doRequest(t, server, http.MethodDelete, "/api/movies/1", nil)

		assert.Equal(t, http.StatusOK, response.Code)
		movies.AssertExpectations(t)
	})

	t.Run("should return 404 when absent", func(t *testing.T) {
		server, movies, _, _ := newTestServer(t)
		movies.On("GetByID", mock.Anything, 9).
			Return(entity.Rejected[movie.Movie](entity.NotFound), nil).Once()

		response := doRequest(t, server, http.MethodDelete, "/api/movies/9", nil)

		assert.Equal(t, http.StatusNotFound, response.Code)
		movies.AssertNotCalled(t, "Remove")
	})
}
