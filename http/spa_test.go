package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	picstashhttp "github.com/picstash/picstash/http"
)

func TestAssetRouter(t *testing.T) {
	assets := fstest.MapFS{
		"index.html":    {Data: []byte("<html>gallery</html>")},
		"assets/app.js": {Data: []byte("console.log('app')")},
	}
	router := picstashhttp.NewAssetRouter(assets)

	tests := []struct {
		name     string
		path     string
		wantBody string
	}{
		{name: "root serves entry document", path: "/", wantBody: "<html>gallery</html>"},
		{name: "client route serves entry document", path: "/dashboard", wantBody: "<html>gallery</html>"},
		{name: "nested client route serves entry document", path: "/albums/2023/summer", wantBody: "<html>gallery</html>"},
		{name: "existing asset is served", path: "/assets/app.js", wantBody: "console.log('app')"},
		{name: "missing asset falls back to entry document", path: "/assets/gone.css", wantBody: "<html>gallery</html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestAssetRouter_NoEntryDocument(t *testing.T) {
	router := picstashhttp.NewAssetRouter(fstest.MapFS{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
