package httpserver

import (
	"time"

	"moviestore/category"
	"moviestore/movie"
)

type MovieRequest struct {
	ID          int       `json:"id"`
	CategoryID  int       `json:"categoryId" validate:"required,gt=0"`
	Title       string    `json:"title" validate:"required,notblank,min=2,max=150"`
	Author      string    `json:"author" validate:"required,notblank,min=2,max=150"`
	Description string    `json:"description" validate:"max=350"`
	ReleaseDate time.Time `json:"releaseDate"`
}

func (r MovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		ID:          r.ID,
		CategoryID:  r.CategoryID,
		Title:       r.Title,
		Author:      r.Author,
		Description: r.Description,
		ReleaseDate: r.ReleaseDate,
	}
}

type CategoryRequest struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"required,notblank,max=150"`
}

func (r CategoryRequest) ToCategory() category.Category {
	return category.Category{
		ID:   r.ID,
		Name: r.Name,
	}
}

type TokenRequest struct {
	Username string `json:"username" validate:"required,notblank,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required,notblank"`
}
