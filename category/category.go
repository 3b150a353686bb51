package category

import "moviestore/errs"

const (
	FieldID   = "id"
	FieldName = "name"

	MaxNameLength = 150
)

var ErrInvalidQuery = errs.Errorf(errs.EINVALID, "category: invalid search query")

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (c Category) GetID() int {
	return c.ID
}
