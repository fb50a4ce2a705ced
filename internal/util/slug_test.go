package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":            "hello-world",
		"  Crème Brûlée!  ":      "creme-brulee",
		"Go 1.24: what's new?":   "go-1-24-what-s-new",
		"already-a-slug":         "already-a-slug",
		"multiple   ---  spaces": "multiple-spaces",
		"":                       "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
	assert.Equal(t, "日本語のブログ", Slugify("日本語のブログ"))
	assert.Equal(t, "नमस्ते-दुनिया", Slugify("नमस्ते दुनिया"))
	assert.Equal(t, "مرحبا-بالعالم", Slugify("مرحبا بالعالم!"))
	assert.Equal(t, "привет-мир", Slugify("Привет, Мир"))
	assert.Empty(t, Slugify("?!"))
}
