package api

import (
	"net/http"
	"strconv"

	"github.com/Nathan-Omenge/recipe-management-api/internal/apperr"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page is one slice of a result sequence
type Page[T any] struct {
	Count        int  `json:"count"`
	Page         int  `json:"page"`
	PageSize     int  `json:"page_size"`
	NextPage     *int `json:"next_page"`
	PreviousPage *int `json:"previous_page"`
	Results      []T  `json:"results"`
}

// pageParams reads page and page_size from the query string
func pageParams(c *gin.Context) (int, int, error) {
	page, err := positiveQuery(c, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	size, err := positiveQuery(c, "page_size", defaultPageSize)
	if err != nil {
		return 0, 0, err
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size, nil
}

func positiveQuery(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperr.InvalidArgument("%s must be a positive integer", key)
	}
	return n, nil
}

// paginate slices items. A page past the end is NotFound, except the first
// page of an empty sequence.
func paginate[T any](items []T, page, size int) (*Page[T], error) {
	count := len(items)
	start := (page - 1) * size
	if start >= count && page > 1 {
		return nil, apperr.NotFound("invalid page")
	}
	end := start + size
	if end > count {
		end = count
	}

	p := &Page[T]{
		Count:    count,
		Page:     page,
		PageSize: size,
		Results:  items[start:end],
	}
	if p.Results == nil {
		p.Results = []T{}
	}
	if end < count {
		next := page + 1
		p.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		p.PreviousPage = &prev
	}
	return p, nil
}

// respondPage paginates items from the request's page params and writes them
func respondPage[T any](c *gin.Context, items []T) {
	page, size, err := pageParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	p, err := paginate(items, page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
