// Package http provides the HTTP gateway for the picstash image store.
//
// The gateway is stateless; all state lives in the backing ObjectStore.
// It exposes a small JSON/binary contract under the /api prefix:
//
//	POST   /api/upload        multipart upload, field "file" required
//	GET    /api/images        list gallery views (optional limit/cursor)
//	GET    /api/images/{key}  raw bytes with long-lived public caching
//	DELETE /api/images/{key}  idempotent delete
//
// Every other path is handled by the AssetRouter, which serves the
// single-page application: concrete assets by path, the entry document
// for everything else.
//
// # Usage
//
//	handler := http.NewHandler(&http.HandlerConfig{
//	    MaxUploadSize: 32 << 20,
//	    Assets:        os.DirFS("./dist"),
//	}, gallery)
//	http.ListenAndServe(":8080", handler.Router())
//
// Error responses are JSON {"error": "..."} with the exception of the
// fetch 404, which is plain text.
package http
