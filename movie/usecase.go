package movie

import (
	"context"
	"errors"

	"moviestore/entity"
)

type Service interface {
	GetAll(ctx context.Context) ([]Movie, error)
	GetByID(ctx context.Context, id int) (entity.Result[Movie], error)
	Add(ctx context.Context, m Movie) (entity.Result[Movie], error)
	Update(ctx context.Context, m Movie) (entity.Result[Movie], error)
	Remove(ctx context.Context, m Movie) (entity.Reason, error)
	GetMovieByCategory(ctx context.Context, categoryID int) ([]Movie, error)
	Search(ctx context.Context, title string) ([]Movie, error)
	SearchMovieWithCategory(ctx context.Context, term string) ([]Movie, error)
	HasMoviesInCategory(ctx context.Context, categoryID int) (bool, error)
	Close() error
}

type Repository interface {
	entity.Repository[Movie]
	GetMovieByCategory(ctx context.Context, categoryID int) ([]Movie, error)
	SearchMovieWithCategory(ctx context.Context, term string) ([]Movie, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) GetAll(ctx context.Context) ([]Movie, error) {
	return uc.r.GetAll(ctx)
}

func (uc *Usecase) GetByID(ctx context.Context, id int) (entity.Result[Movie], error) {
	m, err := uc.r.GetByID(ctx, id)
	if err != nil {
		return entity.Result[Movie]{}, err
	}
	if m == nil {
		return entity.Rejected[Movie](entity.NotFound), nil
	}
	return entity.Success(*m), nil
}

func (uc *Usecase) Add(ctx context.Context, m Movie) (entity.Result[Movie], error) {
	existing, err := uc.r.Search(ctx, entity.Eq(FieldTitle, m.Title))
	if err != nil {
		return entity.Result[Movie]{}, err
	}
	if len(existing) > 0 {
		return entity.Rejected[Movie](entity.Duplicate), nil
	}

	created, err := uc.r.Add(ctx, m)
	if err != nil {
		return entity.Result[Movie]{}, err
	}
	return entity.Success(created), nil
}

func (uc *Usecase) Update(ctx context.Context, m Movie) (entity.Result[Movie], error) {
	existing, err := uc.r.Search(ctx, entity.And(
		entity.Eq(FieldTitle, m.Title),
		entity.Neq(FieldID, m.ID),
	))
	if err != nil {
		return entity.Result[Movie]{}, err
	}
	if len(existing) > 0 {
		return entity.Rejected[Movie](entity.Duplicate), nil
	}

	if err := uc.r.Update(ctx, m); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.Rejected[Movie](entity.NotFound), nil
		}
		return entity.Result[Movie]{}, err
	}
	return entity.Success(m), nil
}

func (uc *Usecase) Remove(ctx context.Context, m Movie) (entity.Reason, error) {
	if err := uc.r.Remove(ctx, m); err != nil {
		return entity.Ok, err
	}
	return entity.Ok, nil
}

func (uc *Usecase) GetMovieByCategory(ctx context.Context, categoryID int) ([]Movie, error) {
	return uc.r.GetMovieByCategory(ctx, categoryID)
}

// Search returns the movies whose title contains the given substring.
func (uc *Usecase) Search(ctx context.Context, title string) ([]Movie, error) {
	return uc.r.Search(ctx, entity.Contains(FieldTitle, title))
}

func (uc *Usecase) SearchMovieWithCategory(ctx context.Context, term string) ([]Movie, error) {
	return uc.r.SearchMovieWithCategory(ctx, term)
}

// HasMoviesInCategory implements [category.MovieLookup].
func (uc *Usecase) HasMoviesInCategory(ctx context.Context, categoryID int) (bool, error) {
	movies, err := uc.GetMovieByCategory(ctx, categoryID)
	if err != nil {
		return false, err
	}
	return len(movies) > 0, nil
}

func (uc *Usecase) Close() error {
	return uc.r.Close()
}
