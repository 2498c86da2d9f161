package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// PageQuery is the common page/per_page query binding
type PageQuery struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

// Normalize clamps page and per_page into their accepted range
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 || q.PerPage > MaxPerPage {
		q.PerPage = DefaultPerPage
	}
}

// Offset returns the row offset for the current page
func (q *PageQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// PaginationMeta locates a page within the full result set
type PaginationMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPaginationMeta builds the meta block for a page of total rows
func NewPaginationMeta(page, perPage int, total int64) PaginationMeta {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return PaginationMeta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: int((total + int64(perPage) - 1) / int64(perPage)),
		HasNext:    int64(page*perPage) < total,
		HasPrev:    page > 1,
	}
}

// FormatValidationErrors turns binding errors into a field -> message map
func FormatValidationErrors(err error) interface{} {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(map[string]string, len(validationErrors))
		for _, fieldError := range validationErrors {
			fields[fieldError.Field()] = validationMessage(fieldError)
		}
		return fields
	}
	return err.Error()
}

func validationMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "gt":
		return "Value must be greater than " + fieldError.Param()
	case "gte":
		return "Value must be greater than or equal to " + fieldError.Param()
	case "lte":
		return "Value must be less than or equal to " + fieldError.Param()
	case "max":
		return "Value must be at most " + fieldError.Param()
	case "oneof":
		return "Value must be one of " + fieldError.Param()
	case "eth_addr":
		return "Value must be a hex address"
	default:
		return "Invalid value"
	}
}
