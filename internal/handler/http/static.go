package http

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// staticHandler serves the embedded assets (stylesheets and, later,
// scripts and images) from the binary itself.
func staticHandler() http.Handler {
	assets, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The subtree is embedded at compile time; a failure here is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return http.FileServer(http.FS(assets))
}
