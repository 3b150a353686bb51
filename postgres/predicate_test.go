package postgres

import (
	"testing"

	"moviestore/entity"
	"moviestore/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=dry password=dry dbname=dry sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func whereSQL(t *testing.T, db *gorm.DB, p entity.Predicate) string {
	t.Helper()
	expr, err := expression(p)
	require.NoError(t, err)
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var models []MovieModel
		return tx.Joins("Category").Clauses(clause.Where{Exprs: []clause.Expression{expr}}).Find(&models)
	})
}

func TestExpression(t *testing.T) {
	db := dryRunDB(t)

	tests := []struct {
		name      string
		predicate entity.Predicate
		contains  []string
	}{
		{
			name:      "eq",
			predicate: entity.Eq(movie.FieldTitle, "Heat"),
			contains:  []string{`"movies"."title" = 'Heat'`},
		},
		{
			name:      "neq",
			predicate: entity.Neq(movie.FieldID, 3),
			contains:  []string{`"movies"."id" <> 3`},
		},
		{
			name:      "contains is a strpos test",
			predicate: entity.Contains(movie.FieldTitle, "Mat"),
			contains:  []string{`strpos("movies"."title", 'Mat') > 0`},
		},
		{
			name:      "joined relation column",
			predicate: entity.Contains(movie.FieldCategoryName, "Sci"),
			contains:  []string{`strpos("Category"."name", 'Sci') > 0`},
		},
		{
			name: "and",
			predicate: entity.And(
				entity.Eq(movie.FieldTitle, "Heat"),
				entity.Neq(movie.FieldID, 3),
			),
			contains: []string{`"movies"."title" = 'Heat' AND "movies"."id" <> 3`},
		},
		{
			name: "or",
			predicate: entity.Or(
				entity.Eq(movie.FieldTitle, "Heat"),
				entity.Eq(movie.FieldTitle, "Ronin"),
			),
			contains: []string{`"movies"."title" = 'Heat' OR "movies"."title" = 'Ronin'`},
		},
		{
			name:      "empty and matches everything",
			predicate: entity.And(),
			contains:  []string{"WHERE TRUE"},
		},
		{
			name:      "empty or matches nothing",
			predicate: entity.Or(),
			contains:  []string{"WHERE FALSE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql := whereSQL(t, db, tt.predicate)
			for _, fragment := range tt.contains {
				assert.Contains(t, sql, fragment)
			}
		})
	}
}

func TestExpression_InvalidOperator(t *testing.T) {
	_, err := expression(entity.Predicate{Op: entity.Op(99)})
	assert.ErrorIs(t, err, ErrInvalidPredicate)

	_, err = expression(entity.And(entity.Eq("id", 1), entity.Predicate{}))
	assert.ErrorIs(t, err, ErrInvalidPredicate)
}

func TestColumn(t *testing.T) {
	assert.Equal(t, clause.Column{Table: clause.CurrentTable, Name: "title"}, column("title"))
	assert.Equal(t, clause.Column{Table: "Category", Name: "name"}, column("Category.name"))
}
