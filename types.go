package picstash

import (
	"fmt"
	"strings"
)

// DefaultContentType is assumed for stored objects whose content type was
// not recorded at write time.
const DefaultContentType = "image/jpeg"

// PlaceholderDimensions is returned for every image; pixel dimensions are
// not computed from the payload.
const PlaceholderDimensions = "1200 x 800"

// ObjectInfo describes a stored object as reported by an ObjectStore.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// PutOptions carries optional parameters for ObjectStore.Put.
type PutOptions struct {
	ContentType string
	// Metadata holds small flat user metadata. Stores that cannot persist
	// it may drop it.
	Metadata map[string]string
}

// ListQuery selects a page of objects from a store. A zero Limit means no
// limit; Cursor is the opaque continuation token from a previous page.
type ListQuery struct {
	Limit  int
	Cursor string
}

// ObjectPage is one page of a store listing.
type ObjectPage struct {
	Items      []ObjectInfo
	NextCursor string
}

// UploadInput describes an incoming upload.
type UploadInput struct {
	Filename    string
	ContentType string
	Metadata    map[string]string
}

// GalleryImage is the presentation view of a stored object. Every field is
// derived from the object's key and store metadata; nothing is persisted
// separately.
type GalleryImage struct {
	ID         string `json:"id"`
	ImageURL   string `json:"imageUrl"`
	Title      string `json:"title"`
	UploadDate string `json:"uploadDate"`
	Size       string `json:"size"`
	Dimensions string `json:"dimensions"`
	Format     string `json:"format"`
}

// NewGalleryImage derives the presentation view for a stored object.
// origin is the scheme://host prefix used to build the fetch URL.
// Keys that do not follow the timestamp-filename scheme fall back to the
// raw key as title with an empty upload date.
func NewGalleryImage(info ObjectInfo, origin string) GalleryImage {
	title := info.Key
	uploadDate := ""
	if key, err := ParseObjectKey(info.Key); err == nil {
		title = key.Title()
		uploadDate = key.UploadDate()
	}

	return GalleryImage{
		ID:         info.Key,
		ImageURL:   ImageURL(origin, info.Key),
		Title:      title,
		UploadDate: uploadDate,
		Size:       FormatSize(info.Size),
		Dimensions: PlaceholderDimensions,
		Format:     FormatLabel(info.ContentType),
	}
}

// ImageURL builds the absolute fetch URL for a key.
func ImageURL(origin, key string) string {
	return strings.TrimSuffix(origin, "/") + "/api/images/" + key
}

// FormatSize renders a byte count as a fixed two-decimal megabyte string.
func FormatSize(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/(1024*1024))
}

// FormatLabel returns the uppercased subtype of a MIME content type, e.g.
// "image/png" -> "PNG". An empty content type is treated as DefaultContentType.
func FormatLabel(contentType string) string {
	if contentType == "" {
		contentType = DefaultContentType
	}
	if _, subtype, found := strings.Cut(contentType, "/"); found {
		// Strip any media type parameters, e.g. "image/svg+xml; charset=utf-8".
		subtype, _, _ = strings.Cut(subtype, ";")
		return strings.ToUpper(strings.TrimSpace(subtype))
	}
	return strings.ToUpper(contentType)
}
