package api

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestPageQuery_Normalize(t *testing.T) {
	q := PageQuery{}
	q.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPerPage, q.PerPage)
	assert.Equal(t, 0, q.Offset())

	q = PageQuery{Page: 3, PerPage: 500}
	q.Normalize()
	assert.Equal(t, DefaultPerPage, q.PerPage)
	assert.Equal(t, 40, q.Offset())
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(2, 10, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = NewPaginationMeta(1, 10, 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}

func TestFormatValidationErrors(t *testing.T) {
	type req struct {
		Amount  uint64 `validate:"gt=0"`
		Outcome *uint8 `validate:"required"`
	}
	err := validator.New().Struct(req{})

	fields, ok := FormatValidationErrors(err).(map[string]string)
	assert.True(t, ok)
	assert.Equal(t, "Value must be greater than 0", fields["Amount"])
	assert.Equal(t, "This field is required", fields["Outcome"])

	assert.Equal(t, "plain", FormatValidationErrors(errors.New("plain")))
}
