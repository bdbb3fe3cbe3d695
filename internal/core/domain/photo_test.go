package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPhotoFilename(t *testing.T) {
	now := time.Unix(0, 1700000000123456789)

	tests := []struct {
		name     string
		original string
		want     string
	}{
		{"Plain", "cat.png", "1700000000123456789-cat.png"},
		{"WithSpaces", "my cat.jpg", "1700000000123456789-my cat.jpg"},
		{"UnixPath", "../../etc/passwd", "1700000000123456789-passwd"},
		{"WindowsPath", `C:\Users\me\dog.png`, "1700000000123456789-dog.png"},
		{"Empty", "", "1700000000123456789-photo"},
		{"DotDot", "..", "1700000000123456789-photo"},
		{"TrailingSlash", "dir/", "1700000000123456789-dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PhotoFilename(tt.original, now))
		})
	}

	t.Run("DiffersByTime", func(t *testing.T) {
		a := PhotoFilename("a.png", now)
		b := PhotoFilename("a.png", now.Add(time.Microsecond))
		assert.NotEqual(t, a, b)
	})
}
