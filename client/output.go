package client

import (
	"encoding/json"
	"fmt"
	"io"
)

// Formatter formats results for output.
type Formatter interface {
	FormatUpload(w io.Writer, result *UploadResult) error
	FormatDownload(w io.Writer, result *DownloadResult) error
	FormatDelete(w io.Writer, results []DeleteResult) error
	FormatList(w io.Writer, result *ListResult) error
	FormatError(w io.Writer, err error) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

func (f *HumanFormatter) FormatUpload(w io.Writer, result *UploadResult) error {
	if !f.Quiet {
		_, _ = fmt.Fprintf(w, "Uploaded: %s\n", result.LocalPath)
		_, _ = fmt.Fprintf(w, "  ID:  %s\n", result.ID)
		_, _ = fmt.Fprintf(w, "  URL: %s\n", result.ImageURL)
	}
	return nil
}

func (f *HumanFormatter) FormatDownload(w io.Writer, result *DownloadResult) error {
	if !f.Quiet {
		if result.LocalPath == "-" {
			_, _ = fmt.Fprintf(w, "Downloaded: %s\n", result.ID)
		} else {
			_, _ = fmt.Fprintf(w, "Downloaded: %s -> %s\n", result.ID, result.LocalPath)
		}
	}
	return nil
}

func (f *HumanFormatter) FormatDelete(w io.Writer, results []DeleteResult) error {
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			_, _ = fmt.Fprintf(w, "Error: %s - %v\n", r.ID, r.Err)
			continue
		}
		if !f.Quiet {
			_, _ = fmt.Fprintf(w, "Deleted: %s\n", r.ID)
		}
	}
	return nil
}

func (f *HumanFormatter) FormatList(w io.Writer, result *ListResult) error {
	if len(result.Images) == 0 {
		if !f.Quiet {
			_, _ = fmt.Fprintln(w, "No images found")
		}
		return nil
	}

	for i := range result.Images {
		img := &result.Images[i]
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", img.ID, img.Format, img.Size, img.UploadDate)
	}

	if result.NextCursor != "" && !f.Quiet {
		_, _ = fmt.Fprintf(w, "\nNext cursor: %s\n", result.NextCursor)
	}
	return nil
}

func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// JSONFormatter outputs machine-readable JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) FormatUpload(w io.Writer, result *UploadResult) error {
	return writeJSON(w, result)
}

func (f *JSONFormatter) FormatDownload(w io.Writer, result *DownloadResult) error {
	return writeJSON(w, result)
}

func (f *JSONFormatter) FormatDelete(w io.Writer, results []DeleteResult) error {
	type deleteJSON struct {
		ID      string `json:"id"`
		Deleted bool   `json:"deleted"`
		Error   string `json:"error,omitempty"`
	}

	out := make([]deleteJSON, 0, len(results))
	for i := range results {
		r := &results[i]
		item := deleteJSON{ID: r.ID, Deleted: r.Err == nil}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		out = append(out, item)
	}
	return writeJSON(w, out)
}

func (f *JSONFormatter) FormatList(w io.Writer, result *ListResult) error {
	return writeJSON(w, result)
}

func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	return writeJSON(w, map[string]string{"error": err.Error()})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
