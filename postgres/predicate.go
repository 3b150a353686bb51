package postgres

import (
	"strings"

	"moviestore/entity"
	"moviestore/errs"

	"gorm.io/gorm/clause"
)

var ErrInvalidPredicate = errs.Errorf(errs.EINVALID, "postgres: invalid predicate")

// expression translates a predicate into a gorm clause expression.
// Contains uses strpos so the match stays case-sensitive and free of LIKE
// wildcards.
func expression(p entity.Predicate) (clause.Expression, error) {
	switch p.Op {
	case entity.OpEq:
		return clause.Eq{Column: column(p.Field), Value: p.Value}, nil
	case entity.OpNeq:
		return clause.Neq{Column: column(p.Field), Value: p.Value}, nil
	case entity.OpContains:
		return clause.Expr{
			SQL:  "strpos(?, ?) > 0",
			Vars: []interface{}{column(p.Field), p.Value},
		}, nil
	case entity.OpAnd, entity.OpOr:
		if len(p.Children) == 0 {
			if p.Op == entity.OpAnd {
				return clause.Expr{SQL: "TRUE"}, nil
			}
			return clause.Expr{SQL: "FALSE"}, nil
		}

		exprs := make([]clause.Expression, 0, len(p.Children))
		for _, child := range p.Children {
			expr, err := expression(child)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expr)
		}
		if p.Op == entity.OpAnd {
			return clause.And(exprs...), nil
		}
		return clause.Or(exprs...), nil
	}
	return nil, ErrInvalidPredicate
}

// column resolves a field name; "Relation.column" addresses a joined relation,
// anything else the queried table.
func column(field string) clause.Column {
	if relation, name, ok := strings.Cut(field, "."); ok {
		return clause.Column{Table: relation, Name: name}
	}
	return clause.Column{Table: clause.CurrentTable, Name: field}
}
