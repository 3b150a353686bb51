package httpserver

import (
	"net/http"

	"moviestore/category"
	"moviestore/entity"
	"moviestore/errs"

	"github.com/labstack/echo/v4"
)

var (
	errNoCategoriesFound = errs.Errorf(errs.ENOTFOUND, "no category was found")
	errCategoryNotFound  = errs.Errorf(errs.ENOTFOUND, "category not found")
)

func (s *Server) RegisterCategoryRoutes(g *echo.Group) {
	g.GET("/categories", s.handleListCategories)
	g.GET("/categories/:id", s.handleGetCategory)
	g.GET("/categories/search/:name", s.handleSearchCategories)
	g.POST("/categories", s.handleAddCategory)
	g.PUT("/categories/:id", s.handleUpdateCategory)
	g.DELETE("/categories/:id", s.handleRemoveCategory)
}

func (s *Server) handleListCategories(c echo.Context) error {
	categories, err := services(c).Categories.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, categories)
}

func (s *Server) handleGetCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	res, err := services(c).Categories.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !res.Ok() {
		return outcomeError(res.Reason, "category")
	}
	return writeSuccess(c, http.StatusOK, res.Value)
}

func (s *Server) handleSearchCategories(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return category.ErrInvalidQuery
	}

	categories, err := services(c).Categories.Search(c.Request().Context(), name)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		return errNoCategoriesFound
	}
	return writeList(c, http.StatusOK, categories)
}

func (s *Server) handleAddCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cat := req.ToCategory()
	cat.ID = 0
	res, err := services(c).Categories.Add(c.Request().Context(), cat)
	if err != nil {
		return err
	}
	if !res.Ok() {
		return outcomeError(res.Reason, "category")
	}
	return writeSuccess(c, http.StatusCreated, res.Value)
}

func (s *Server) handleUpdateCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.ID != id {
		return errIDMismatch
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := services(c).Categories.Update(c.Request().Context(), req.ToCategory())
	if err != nil {
		return err
	}
	if !res.Ok() {
		return outcomeError(res.Reason, "category")
	}
	return writeSuccess(c, http.StatusOK, res.Value)
}

// handleRemoveCategory responds 400 while movies still reference the category.
func (s *Server) handleRemoveCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	categories := services(c).Categories
	found, err := categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !found.Ok() {
		return errCategoryNotFound
	}

	reason, err := categories.Remove(ctx, found.Value)
	if err != nil {
		return err
	}
	if reason != entity.Ok {
		return outcomeError(reason, "category")
	}
	return writeSuccess(c, http.StatusOK, nil)
}
