package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name     string
		location string
		bucket   string
		key      string
		ok       bool
	}{
		{"object", "s3://media/avatars/u1.png", "media", "avatars/u1.png", true},
		{"nested key", "s3://media/a/b/c", "media", "a/b/c", true},
		{"http url", "https://cdn.example.com/pic.png", "", "", false},
		{"no key", "s3://media", "", "", false},
		{"empty key", "s3://media/", "", "", false},
		{"empty bucket", "s3:///avatars/u1.png", "", "", false},
		{"empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, key, ok := ParseLocation(tt.location)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}
