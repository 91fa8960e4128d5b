package picstash

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ObjectKey identifies one stored object. The key doubles as the object's
// display metadata: a millisecond epoch prefix encodes the upload time and
// the remainder after the first '-' is the original filename. Because of
// this there is no separate metadata index; title and upload date are
// derived from the key at listing time.
type ObjectKey struct {
	uploadedAt time.Time
	filename   string
}

// NewObjectKey derives a key from the upload time and the original filename.
// The filename must pass ValidFilename.
func NewObjectKey(uploadedAt time.Time, filename string) (ObjectKey, error) {
	if err := ValidFilename(filename); err != nil {
		return ObjectKey{}, fmt.Errorf("derive key: %w", err)
	}
	return ObjectKey{uploadedAt: uploadedAt, filename: filename}, nil
}

// ParseObjectKey parses a key of the form "{epochMillis}-{filename}".
func ParseObjectKey(s string) (ObjectKey, error) {
	prefix, rest, found := strings.Cut(s, "-")
	if !found || rest == "" {
		return ObjectKey{}, fmt.Errorf("parse key %q: %w: missing timestamp separator", s, ErrInvalidInput)
	}

	millis, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return ObjectKey{}, fmt.Errorf("parse key %q: %w: non-numeric timestamp", s, ErrInvalidInput)
	}

	return ObjectKey{uploadedAt: time.UnixMilli(millis), filename: rest}, nil
}

// String formats the key as "{epochMillis}-{filename}".
func (k ObjectKey) String() string {
	return fmt.Sprintf("%d-%s", k.uploadedAt.UnixMilli(), k.filename)
}

// Title returns the original filename encoded in the key.
func (k ObjectKey) Title() string {
	return k.filename
}

// UploadDate returns the UTC calendar date of the upload, formatted as an
// ISO date with no time component.
func (k ObjectKey) UploadDate() string {
	return k.uploadedAt.UTC().Format(time.DateOnly)
}

// UploadedAt returns the upload time encoded in the key.
func (k ObjectKey) UploadedAt() time.Time {
	return k.uploadedAt
}

// ValidFilename validates that a filename can be safely embedded in an
// ObjectKey. It rejects names that:
//   - are empty or "." / ".."
//   - contain path separators
//   - contain null bytes, control characters, or DEL
//   - begin with a digit run followed by '-', which would be ambiguous
//     with the key's timestamp prefix when parsed back
func ValidFilename(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: invalid filename %q", ErrInvalidInput, name)
	}

	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: filename %q contains a path separator", ErrInvalidInput, name)
	}

	for _, r := range name {
		if r == 0 || r < 0x20 || r == 0x7f {
			return fmt.Errorf("%w: filename %q contains control characters", ErrInvalidInput, name)
		}
	}

	if ambiguousPrefix(name) {
		return fmt.Errorf("%w: filename %q starts with a numeric segment that is ambiguous with the timestamp prefix", ErrInvalidInput, name)
	}

	return nil
}

// ambiguousPrefix reports whether the name begins with one or more digits
// immediately followed by '-'. Such a name would be misread as the key's
// timestamp when the key is parsed.
func ambiguousPrefix(name string) bool {
	i := 0
	for i < len(name) && unicode.IsDigit(rune(name[i])) {
		i++
	}
	return i > 0 && i < len(name) && name[i] == '-'
}
