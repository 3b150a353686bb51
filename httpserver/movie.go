package httpserver

import (
	"net/http"
	"strconv"

	"moviestore/entity"
	"moviestore/errs"
	"moviestore/movie"

	"github.com/labstack/echo/v4"
)

var (
	errInvalidID     = errs.Errorf(errs.EINVALID, "invalid id")
	errIDMismatch    = errs.Errorf(errs.EINVALID, "path id does not match body id")
	errNoMoviesFound = errs.Errorf(errs.ENOTFOUND, "no movie was found")
	errMovieNotFound = errs.Errorf(errs.ENOTFOUND, "movie not found")
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.GET("/movies/:id", s.handleGetMovie)
	g.GET("/movies/by-category/:categoryId", s.handleMoviesByCategory)
	g.GET("/movies/search/:title", s.handleSearchMovies)
	g.GET("/movies/search-with-category/:term", s.handleSearchMoviesWithCategory)
	g.POST("/movies", s.handleAddMovie)
	g.PUT("/movies/:id", s.handleUpdateMovie)
	g.DELETE("/movies/:id", s.handleRemoveMovie)
}

func (s *Server) handleListMovies(c echo.Context) error {
	movies, err := services(c).Movies.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, movies)
}

func (s *Server) handleGetMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	res, err := services(c).Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !res.Ok() {
		return outcomeError(res.Reason, "movie")
	}
	return writeSuccess(c, http.StatusOK, res.Value)
}

// handleMoviesByCategory responds 404 when the category holds no movie.
func (s *Server) handleMoviesByCategory(c echo.Context) error {
	categoryID, err := pathID(c, "categoryId")
	if err != nil {
		return err
	}

	movies, err := services(c).Movies.GetMovieByCategory(c.Request().Context(), categoryID)
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		return errNoMoviesFound
	}
	return writeList(c, http.StatusOK, movies)
}

func (s *Server) handleSearchMovies(c echo.Context) error {
	title := c.Param("title")
	if title == "" {
		return movie.ErrInvalidQuery
	}

	movies, err := services(c).Movies.Search(c.Request().Context(), title)
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		return errNoMoviesFound
	}
	return writeList(c, http.StatusOK, movies)
}

func (s *Server) handleSearchMoviesWithCategory(c echo.Context) error {
	term := c.Param("term")
	if term == "" {
		return movie.ErrInvalidQuery
	}

	movies, err := services(c).Movies.SearchMovieWithCategory(c.Request().Context(), term)
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		return errNoMoviesFound
	}
	return writeList(c, http.StatusOK, movies)
}

func (s *Server) handleAddMovie(c echo.Context) error {
	var req MovieRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m := req.ToMovie()
	m.ID = 0
	res, err := services(c).Movies.Add(c.Request().Context(), m)
	if err != nil {
		return err
	}
	if !res.Ok() {
		return outcomeError(res.Reason, "movie")
	}
	return writeSuccess(c, http.StatusCreated, res.Value)
}

func (s *Server) handleUpdateMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req MovieRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.ID != id {
		return errIDMismatch
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := services(c).Movies.Update(c.Request().Context(), req.ToMovie())
	if err != nil {
		return err
	}
	if !res.Ok() {
		return outcomeError(res.Reason, "movie")
	}
	return writeSuccess(c, http.StatusOK, res.Value)
}

func (s *Server) handleRemoveMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	movies := services(c).Movies
	found, err := movies.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !found.Ok() {
		return errMovieNotFound
	}

	reason, err := movies.Remove(ctx, found.Value)
	if err != nil {
		return err
	}
	if reason != entity.Ok {
		return outcomeError(reason, "movie")
	}
	return writeSuccess(c, http.StatusOK, nil)
}

func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}
