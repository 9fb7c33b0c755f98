package fs_test

import (
	"testing"

	"github.com/fwojciec/netkit/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilenameFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "last path segment",
			url:  "https://example.com/files/report.pdf",
			want: "report.pdf",
		},
		{
			name: "query string is ignored",
			url:  "https://example.com/archive.tar.gz?token=abc",
			want: "archive.tar.gz",
		},
		{
			name: "root path falls back to default",
			url:  "https://example.com/",
			want: fs.DefaultFilename,
		},
		{
			name: "empty path falls back to default",
			url:  "https://example.com",
			want: fs.DefaultFilename,
		},
		{
			name: "trailing slash falls back to default",
			url:  "https://example.com/files/",
			want: fs.DefaultFilename,
		},
		{
			name:    "invalid URL",
			url:     "://bad",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.FilenameFromURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
