package client

import "github.com/picstash/picstash"

// UploadOptions configures an upload operation.
type UploadOptions struct {
	LocalPath   string
	Filename    string            // optional, defaults to base of LocalPath
	ContentType string            // optional, auto-detect if empty
	Metadata    map[string]string // optional, sent as the metadata form field
}

// uploadResponse is the gateway's upload response body.
type uploadResponse struct {
	Success  bool     `json:"success"`
	ImageURL string   `json:"imageUrl"`
	ID       string   `json:"id"`
	Variants []string `json:"variants"`
}

// UploadResult represents the result of uploading a file.
type UploadResult struct {
	LocalPath string   `json:"local_path"`
	ID        string   `json:"id"`
	ImageURL  string   `json:"imageUrl"`
	Variants  []string `json:"variants"`
}

// ListOptions configures a list operation.
type ListOptions struct {
	Limit  int
	Cursor string
	All    bool // auto-paginate through all results
}

// ListResult contains gallery images returned by the server.
type ListResult struct {
	Images     []picstash.GalleryImage `json:"images"`
	NextCursor string                  `json:"nextCursor,omitempty"`
}

// DeleteOptions configures a delete operation.
type DeleteOptions struct {
	IDs []string
}

// DeleteResult represents the result of deleting a single image.
type DeleteResult struct {
	ID  string `json:"id"`
	Err error  `json:"-"` // nil on success
}

// DownloadOptions configures a download operation.
type DownloadOptions struct {
	ID        string
	LocalPath string // empty = derive from id, "-" = stdout
}

// DownloadResult represents the result of downloading an image.
type DownloadResult struct {
	ID          string `json:"id"`
	LocalPath   string `json:"local_path"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size_bytes"`
}
