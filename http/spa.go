package http

import (
	"io/fs"
	"net/http"
	"strings"
)

// entryDocument is the single-page application's entry point, served for
// every route path so client-side navigation needs no server route table.
const entryDocument = "index.html"

// AssetRouter serves the browser application. A path containing a '.' is
// treated as a concrete asset and served from the web root; every other
// path, and any asset that does not exist, resolves to the entry document.
type AssetRouter struct {
	assets fs.FS
}

// NewAssetRouter creates an AssetRouter over the given web root.
func NewAssetRouter(assets fs.FS) *AssetRouter {
	return &AssetRouter{assets: assets}
}

func (a *AssetRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")

	if path == "" || !strings.Contains(path, ".") {
		a.serveEntry(w, r)
		return
	}

	stat, err := fs.Stat(a.assets, path)
	if err != nil || stat.IsDir() {
		a.serveEntry(w, r)
		return
	}

	http.ServeFileFS(w, r, a.assets, path)
}

func (a *AssetRouter) serveEntry(w http.ResponseWriter, r *http.Request) {
	if _, err := fs.Stat(a.assets, entryDocument); err != nil {
		http.NotFound(w, r)
		return
	}

	// Rewrite the request path so ServeFileFS does not issue the
	// /index.html -> ./ redirect.
	req := r.Clone(r.Context())
	req.URL.Path = "/"
	http.ServeFileFS(w, req, a.assets, entryDocument)
}
