package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImageObject(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		object  string
		wantErr bool
	}{
		{
			name:   "download url with token",
			url:    "https://firebasestorage.googleapis.com/v0/b/bucket/o/images%2Frecipes%2Fbread.jpg?alt=media&token=abc",
			object: "images/recipes/bread.jpg",
		},
		{
			name:   "no query string",
			url:    "https://firebasestorage.googleapis.com/v0/b/bucket/o/images%2Fbread.jpg",
			object: "images/bread.jpg",
		},
		{
			name:    "no object segment",
			url:     "https://example.com/images/bread.jpg",
			wantErr: true,
		},
		{
			name:    "empty object path",
			url:     "https://example.com/o/?alt=media",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			object, err := ParseImageObject(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.object, object)
		})
	}
}
