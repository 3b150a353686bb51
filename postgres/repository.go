package postgres

import (
	"context"
	"errors"

	"moviestore/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// record is a gorm model that maps back to its domain entity.
type record[T entity.Entity] interface {
	toDomain() T
}

// Repository implements [entity.Repository] for any entity T stored through
// the gorm model M.
type Repository[T entity.Entity, M record[T]] struct {
	session    *Session
	fromDomain func(T) M
}

func NewRepository[T entity.Entity, M record[T]](s *Session, fromDomain func(T) M) *Repository[T, M] {
	return &Repository[T, M]{
		session:    s,
		fromDomain: fromDomain,
	}
}

func (r *Repository[T, M]) db(ctx context.Context) *gorm.DB {
	return r.session.DB(ctx)
}

// Add inserts e; the returned entity carries the id assigned by the store.
func (r *Repository[T, M]) Add(ctx context.Context, e T) (T, error) {
	model := r.fromDomain(e)
	res := r.db(ctx).Omit(clause.Associations).Create(&model)
	if res.Error != nil {
		var zero T
		return zero, res.Error
	}
	r.session.track(res.RowsAffected)
	return model.toDomain(), nil
}

func (r *Repository[T, M]) GetAll(ctx context.Context) ([]T, error) {
	return r.find(r.db(ctx))
}

func (r *Repository[T, M]) GetByID(ctx context.Context, id int) (*T, error) {
	return r.first(r.db(ctx), id)
}

// Update replaces every column of the row identified by e.
func (r *Repository[T, M]) Update(ctx context.Context, e T) error {
	if e.GetID() == 0 {
		return entity.ErrNotFound
	}

	model := r.fromDomain(e)
	res := r.db(ctx).Select("*").Omit(clause.Associations).Updates(&model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	r.session.track(res.RowsAffected)
	return nil
}

func (r *Repository[T, M]) Remove(ctx context.Context, e T) error {
	if e.GetID() == 0 {
		return nil
	}

	model := r.fromDomain(e)
	res := r.db(ctx).Omit(clause.Associations).Delete(&model)
	if res.Error != nil {
		return res.Error
	}
	r.session.track(res.RowsAffected)
	return nil
}

func (r *Repository[T, M]) Search(ctx context.Context, p entity.Predicate) ([]T, error) {
	return r.search(r.db(ctx), p)
}

func (r *Repository[T, M]) SaveChanges(_ context.Context) (int64, error) {
	return r.session.SaveChanges(), nil
}

func (r *Repository[T, M]) Close() error {
	return r.session.Close()
}

func (r *Repository[T, M]) search(tx *gorm.DB, p entity.Predicate) ([]T, error) {
	expr, err := expression(p)
	if err != nil {
		return nil, err
	}
	return r.find(tx.Clauses(clause.Where{Exprs: []clause.Expression{expr}}))
}

func (r *Repository[T, M]) find(tx *gorm.DB) ([]T, error) {
	var models []M
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]T, len(models))
	for i, model := range models {
		entities[i] = model.toDomain()
	}
	return entities, nil
}

func (r *Repository[T, M]) first(tx *gorm.DB, id int) (*T, error) {
	var model M
	err := tx.Where(clause.Eq{Column: clause.PrimaryColumn, Value: id}).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	e := model.toDomain()
	return &e, nil
}
