// Package fs provides file-based storage for downloads.
package fs

import (
	"net/url"
	"path"
)

// DefaultFilename is used when a URL path names no file.
const DefaultFilename = "downloaded_file"

// FilenameFromURL derives a local file name from the last path segment of a
// URL. Example: https://example.com/files/report.pdf → report.pdf
func FilenameFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	// Root, trailing slash or empty path → DefaultFilename
	p := u.Path
	if p == "" || p[len(p)-1] == '/' {
		return DefaultFilename, nil
	}

	name := path.Base(p)
	switch name {
	case ".", "..", "/":
		return DefaultFilename, nil
	}
	return name, nil
}
