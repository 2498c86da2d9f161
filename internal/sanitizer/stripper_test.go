package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLStripper(t *testing.T) {
	s := NewHTMLStripper()

	tests := []struct {
		in, want string
	}{
		{"Ada", "Ada"},
		{"<b>Ada</b>", "Ada"},
		{`<script>alert("x")</script>Ada`, "Ada"},
		{"O'Neil", "O'Neil"},
		{"Tom & Jerry", "Tom & Jerry"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.StripHTML(tt.in), tt.in)
	}
}

func TestHTMLStripper_KeepsEscapedTagsEscaped(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;", NewHTMLStripper().StripHTML("&lt;b&gt;"))
}
