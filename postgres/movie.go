package postgres

import (
	"context"
	"time"

	"moviestore/category"
	"moviestore/entity"
	"moviestore/movie"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieModel represents the database model for movies.
// Description is nullable in the schema; an empty description is stored as NULL.
type MovieModel struct {
	ID          int            `gorm:"primaryKey"`
	Title       string         `gorm:"type:varchar(150);not null"`
	Author      string         `gorm:"type:varchar(150);not null"`
	Description *string        `gorm:"type:varchar(350)"`
	ReleaseDate time.Time      `gorm:"not null"`
	CategoryID  int            `gorm:"not null"`
	Category    *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

func (m MovieModel) toDomain() movie.Movie {
	mv := movie.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Author:      m.Author,
		ReleaseDate: m.ReleaseDate,
		CategoryID:  m.CategoryID,
	}
	if m.Description != nil {
		mv.Description = *m.Description
	}
	if m.Category != nil {
		c := m.Category.toDomain()
		mv.Category = &c
	}
	return mv
}

func toMovieModel(m movie.Movie) MovieModel {
	model := MovieModel{
		ID:          m.ID,
		Title:       m.Title,
		Author:      m.Author,
		ReleaseDate: m.ReleaseDate,
		CategoryID:  m.CategoryID,
	}
	if m.Description != "" {
		desc := m.Description
		model.Description = &desc
	}
	return model
}

// MovieRepository implements movie.Repository. Reads that return movies to
// callers load the category in the same query.
type MovieRepository struct {
	*Repository[movie.Movie, MovieModel]
}

// NewMovieRepository creates a movie repository bound to the session
func NewMovieRepository(s *Session) *MovieRepository {
	return &MovieRepository{
		Repository: NewRepository(s, toMovieModel),
	}
}

func (r *MovieRepository) withCategory(ctx context.Context) *gorm.DB {
	return r.db(ctx).Joins("Category")
}

// GetAll returns every movie with its category, ordered by title.
func (r *MovieRepository) GetAll(ctx context.Context) ([]movie.Movie, error) {
	return r.find(r.withCategory(ctx).Order(clause.OrderByColumn{
		Column: column(movie.FieldTitle),
	}))
}

func (r *MovieRepository) GetByID(ctx context.Context, id int) (*movie.Movie, error) {
	return r.first(r.withCategory(ctx), id)
}

func (r *MovieRepository) GetMovieByCategory(ctx context.Context, categoryID int) ([]movie.Movie, error) {
	return r.search(r.withCategory(ctx), entity.Eq(movie.FieldCategoryID, categoryID))
}

// SearchMovieWithCategory matches term against title, author, description
// and the category name.
func (r *MovieRepository) SearchMovieWithCategory(ctx context.Context, term string) ([]movie.Movie, error) {
	return r.search(r.withCategory(ctx), entity.Or(
		entity.Contains(movie.FieldTitle, term),
		entity.Contains(movie.FieldAuthor, term),
		entity.Contains(movie.FieldDescription, term),
		entity.Contains(movie.FieldCategoryName, term),
	))
}

var _ category.Repository = (*CategoryRepository)(nil)
var _ movie.Repository = (*MovieRepository)(nil)
