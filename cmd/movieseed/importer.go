package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"moviestore/catalog"
	"moviestore/category"
	"moviestore/entity"
	"moviestore/movie"

	"go.uber.org/zap"
)

var requiredColumns = []string{"title", "author", "description", "release_date", "category"}

type report struct {
	Imported          int
	Duplicates        int
	Invalid           int
	CategoriesCreated int
}

// importer feeds csv rows through the catalog services so the same title
// and name rules apply as for the HTTP API.
type importer struct {
	catalog catalog.Scoper
	log     *zap.SugaredLogger
	limit   int
}

func (imp *importer) Import(ctx context.Context, r io.Reader) (report, error) {
	var rep report

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	columns, err := parseHeader(reader)
	if err != nil {
		return rep, err
	}

	err = imp.catalog.Scope(ctx, func(services catalog.Services) error {
		categoryIDs := make(map[string]int)
		line := 1
		for imp.limit <= 0 || rep.Imported < imp.limit {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			line++
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}

			m, categoryName, err := parseRecord(record, columns)
			if err != nil {
				rep.Invalid++
				imp.log.Warnw("skip invalid row", "line", line, "error", err)
				continue
			}

			categoryID, created, err := resolveCategory(ctx, services.Categories, categoryIDs, categoryName)
			if err != nil {
				return err
			}
			if created {
				rep.CategoriesCreated++
			}
			m.CategoryID = categoryID

			res, err := services.Movies.Add(ctx, m)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			if res.Reason == entity.Duplicate {
				rep.Duplicates++
				imp.log.Debugw("skip duplicate title", "line", line, "title", m.Title)
				continue
			}
			rep.Imported++
		}
		return nil
	})
	return rep, err
}

// resolveCategory returns the id of the category named name, creating it on
// first use.
func resolveCategory(ctx context.Context, categories category.Service, cache map[string]int, name string) (int, bool, error) {
	if id, ok := cache[name]; ok {
		return id, false, nil
	}

	matches, err := categories.Search(ctx, name)
	if err != nil {
		return 0, false, err
	}
	for _, c := range matches {
		if c.Name == name {
			cache[name] = c.ID
			return c.ID, false, nil
		}
	}

	res, err := categories.Add(ctx, category.Category{Name: name})
	if err != nil {
		return 0, false, err
	}
	if !res.Ok() {
		return 0, false, fmt.Errorf("category %q: %s", name, res.Reason)
	}
	cache[name] = res.Value.ID
	return res.Value.ID, true, nil
}

func parseHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q in csv header", name)
		}
	}
	return columns, nil
}

func parseRecord(record []string, columns map[string]int) (movie.Movie, string, error) {
	field := func(name string) string {
		if i := columns[name]; i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	m := movie.Movie{
		Title:       field("title"),
		Author:      field("author"),
		Description: field("description"),
	}
	categoryName := field("category")
	titleLen, authorLen := utf8.RuneCountInString(m.Title), utf8.RuneCountInString(m.Author)

	switch {
	case titleLen < movie.MinTitleLength || titleLen > movie.MaxTitleLength:
		return m, "", fmt.Errorf("title length must be between %d and %d", movie.MinTitleLength, movie.MaxTitleLength)
	case authorLen < movie.MinTitleLength || authorLen > movie.MaxTitleLength:
		return m, "", fmt.Errorf("author length must be between %d and %d", movie.MinTitleLength, movie.MaxTitleLength)
	case utf8.RuneCountInString(m.Description) > movie.MaxDescriptionLength:
		return m, "", fmt.Errorf("description longer than %d", movie.MaxDescriptionLength)
	case categoryName == "" || utf8.RuneCountInString(categoryName) > category.MaxNameLength:
		return m, "", fmt.Errorf("category name is required and at most %d long", category.MaxNameLength)
	}

	releaseDate, err := time.Parse(time.DateOnly, field("release_date"))
	if err != nil {
		return m, "", fmt.Errorf("release_date: %w", err)
	}
	m.ReleaseDate = releaseDate

	return m, categoryName, nil
}
