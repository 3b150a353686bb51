package category

import (
	"context"
	"errors"

	"moviestore/entity"
)

type Service interface {
	GetAll(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id int) (entity.Result[Category], error)
	Add(ctx context.Context, c Category) (entity.Result[Category], error)
	Update(ctx context.Context, c Category) (entity.Result[Category], error)
	Remove(ctx context.Context, c Category) (entity.Reason, error)
	Search(ctx context.Context, name string) ([]Category, error)
	Close() error
}

type Repository interface {
	entity.Repository[Category]
}

// MovieLookup reports whether any movie references a category.
type MovieLookup interface {
	HasMoviesInCategory(ctx context.Context, categoryID int) (bool, error)
}

type Usecase struct {
	r      Repository
	movies MovieLookup
}

func NewUsecase(r Repository, movies MovieLookup) *Usecase {
	return &Usecase{
		r:      r,
		movies: movies,
	}
}

func (uc *Usecase) GetAll(ctx context.Context) ([]Category, error) {
	return uc.r.GetAll(ctx)
}

func (uc *Usecase) GetByID(ctx context.Context, id int) (entity.Result[Category], error) {
	c, err := uc.r.GetByID(ctx, id)
	if err != nil {
		return entity.Result[Category]{}, err
	}
	if c == nil {
		return entity.Rejected[Category](entity.NotFound), nil
	}
	return entity.Success(*c), nil
}

func (uc *Usecase) Add(ctx context.Context, c Category) (entity.Result[Category], error) {
	existing, err := uc.r.Search(ctx, entity.Eq(FieldName, c.Name))
	if err != nil {
		return entity.Result[Category]{}, err
	}
	if len(existing) > 0 {
		return entity.Rejected[Category](entity.Duplicate), nil
	}

	created, err := uc.r.Add(ctx, c)
	if err != nil {
		return entity.Result[Category]{}, err
	}
	return entity.Success(created), nil
}

func (uc *Usecase) Update(ctx context.Context, c Category) (entity.Result[Category], error) {
	existing, err := uc.r.Search(ctx, entity.And(
		entity.Eq(FieldName, c.Name),
		entity.Neq(FieldID, c.ID),
	))
	if err != nil {
		return entity.Result[Category]{}, err
	}
	if len(existing) > 0 {
		return entity.Rejected[Category](entity.Duplicate), nil
	}

	if err := uc.r.Update(ctx, c); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.Rejected[Category](entity.NotFound), nil
		}
		return entity.Result[Category]{}, err
	}
	return entity.Success(c), nil
}

// Remove deletes the category unless a movie still references it, in which
// case the category is kept and Blocked is returned.
func (uc *Usecase) Remove(ctx context.Context, c Category) (entity.Reason, error) {
	inUse, err := uc.movies.HasMoviesInCategory(ctx, c.ID)
	if err != nil {
		return entity.Ok, err
	}
	if inUse {
		return entity.Blocked, nil
	}

	if err := uc.r.Remove(ctx, c); err != nil {
		return entity.Ok, err
	}
	return entity.Ok, nil
}

func (uc *Usecase) Search(ctx context.Context, name string) ([]Category, error) {
	return uc.r.Search(ctx, entity.Contains(FieldName, name))
}

func (uc *Usecase) Close() error {
	return uc.r.Close()
}
