package site

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/**
var staticFS embed.FS

// FS returns an http.FileSystem for the embedded student app.
func FS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Should never happen with a correctly embedded tree.
		// Expose the raw FS on error.
		return http.FS(staticFS)
	}
	return http.FS(sub)
}
