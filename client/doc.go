// Package client provides a typed client for the picstash gateway's HTTP
// contract: multipart upload, gallery listing, image download, and delete.
//
// # Basic Usage
//
//	cfg := &client.Config{Endpoint: "http://localhost:8787"}
//
//	c, err := client.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := c.Upload(ctx, client.UploadOptions{
//		LocalPath: "./photo.png",
//	})
//
// Configuration merges from file (~/.picstash/config.yaml), the
// PICSTASH_SERVER environment variable, and explicit values; see
// MergeConfig. Output formatting for CLI consumers is provided by
// NewFormatter.
package client
