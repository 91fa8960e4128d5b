// Package picstash provides the storage core for a small image-hosting
// service: a gateway over a key-value object store with per-object
// content-type metadata.
//
// The design deliberately keeps no metadata index. Each object's key is
// "{epochMillis}-{filename}", so the display title and upload date are
// derived from the key itself at listing time (see ObjectKey).
//
// # Key Components
//
//   - Gallery: the gateway service implementing upload, fetch, list, and
//     delete against an ObjectStore
//   - ObjectStore: adapter interface over the backing blob store
//     (memory, filesystem, and S3-compatible drivers are provided)
//   - ObjectKey: the parse/format pair for the timestamp-filename key scheme
//   - GalleryImage: the derived, transient presentation view of an object
//
// # Example Usage
//
//	store := memory.New()
//	gallery := picstash.NewGallery(store)
//
//	info, err := gallery.Upload(ctx, picstash.UploadInput{
//	    Filename:    "photo.png",
//	    ContentType: "image/png",
//	}, file)
//
// See the http package for the REST gateway and the memory, filesystem,
// and s3 packages for store drivers.
package picstash
