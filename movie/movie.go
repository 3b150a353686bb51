package movie

import (
	"time"

	"moviestore/category"
	"moviestore/errs"
)

// Store column names usable in predicates. FieldCategoryName addresses the
// joined category relation.
const (
	FieldID           = "id"
	FieldTitle        = "title"
	FieldAuthor       = "author"
	FieldDescription  = "description"
	FieldCategoryID   = "category_id"
	FieldCategoryName = "Category.name"

	MinTitleLength       = 2
	MaxTitleLength       = 150
	MaxDescriptionLength = 350
)

var ErrInvalidQuery = errs.Errorf(errs.EINVALID, "movie: invalid search query")

type Movie struct {
	ID          int                `json:"id"`
	Title       string             `json:"title"`
	Author      string             `json:"author"`
	Description string             `json:"description"`
	ReleaseDate time.Time          `json:"releaseDate"`
	CategoryID  int                `json:"categoryId"`
	Category    *category.Category `json:"category,omitempty"`
}

func (m Movie) GetID() int {
	return m.ID
}
