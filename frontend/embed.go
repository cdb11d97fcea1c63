package frontend

import (
	"embed"
	"io/fs"
	"net/http"
)

// FS embeds the onboarding page build artifacts
//
//go:embed all:dist
var FS embed.FS

// GetHTTPFS returns the embedded page filesystem for HTTP serving
func GetHTTPFS() (http.FileSystem, error) {
	sub, err := fs.Sub(FS, "dist")
	if err != nil {
		return nil, err
	}

	// index.html is the marker that the page has been built
	if _, err := fs.Stat(sub, "index.html"); err != nil {
		return nil, &fs.PathError{Op: "stat", Path: "index.html", Err: fs.ErrNotExist}
	}

	return http.FS(sub), nil
}
