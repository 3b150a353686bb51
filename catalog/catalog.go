package catalog

import (
	"context"
	"errors"

	"moviestore/category"
	"moviestore/movie"
	"moviestore/postgres"

	"gorm.io/gorm"
)

// Services groups the movie and category services of one unit of work.
// Both share a single store session.
type Services struct {
	Movies     movie.Service
	Categories category.Service
}

// Close releases the shared session. Closing twice is harmless.
func (s Services) Close() error {
	return errors.Join(s.Movies.Close(), s.Categories.Close())
}

// Scoper runs fn against services bound to a fresh unit of work and releases
// it once fn returns.
type Scoper interface {
	Scope(ctx context.Context, fn func(Services) error) error
}

type Provider struct {
	db *gorm.DB
}

func NewProvider(db *gorm.DB) *Provider {
	return &Provider{db: db}
}

// Open builds services over a new session. Callers must Close them.
func (p *Provider) Open(ctx context.Context) (Services, error) {
	session, err := postgres.OpenSession(ctx, p.db)
	if err != nil {
		return Services{}, err
	}

	movies := movie.NewUsecase(postgres.NewMovieRepository(session))
	categories := category.NewUsecase(postgres.NewCategoryRepository(session), movies)

	return Services{
		Movies:     movies,
		Categories: categories,
	}, nil
}

func (p *Provider) Scope(ctx context.Context, fn func(Services) error) (err error) {
	services, err := p.Open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := services.Close(); err == nil {
			err = closeErr
		}
	}()

	return fn(services)
}
