package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name   string
		phone  string
		region string
		want   string
	}{
		{"local NG", "08031234567", "NG", "+2348031234567"},
		{"lowercase region", "0803 123 4567", "ng", "+2348031234567"},
		{"international ignores region", "+447911123456", "NG", "+447911123456"},
		{"local GB", "07911 123456", "GB", "+447911123456"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatPhone(tt.phone, tt.region)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatPhone_Invalid(t *testing.T) {
	_, err := FormatPhone("not a number", "NG")
	assert.Error(t, err)

	_, err = FormatPhone("123", "NG")
	assert.Error(t, err)
}
