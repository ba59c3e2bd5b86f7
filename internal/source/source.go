// Package source reads and writes URL-addressed inputs and outputs.
//
// Plain paths are treated as local files; anything carrying a scheme
// (file://, mem://, s3://, gs://, ...) is delegated to viant/afs.
package source

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/KaramelBytes/termtable/internal/utils"
	"github.com/viant/afs"
)

// Error reports a failed read or write of a source.
type Error struct {
	Op  string // "read" or "write"
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var fs = afs.New()

// Read returns the full content at location.
func Read(ctx context.Context, location string) ([]byte, error) {
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, &Error{Op: "read", URL: location, Err: err}
	}
	slog.Debug("source read", "url", location, "bytes", len(data))
	return data, nil
}

// Write stores data at location. Local paths are written atomically.
func Write(ctx context.Context, location string, data []byte) error {
	var err error
	if hasScheme(location) {
		err = fs.Upload(ctx, location, 0o644, bytes.NewReader(data))
	} else {
		err = utils.SafeWriteFile(location, data)
	}
	if err != nil {
		return &Error{Op: "write", URL: location, Err: err}
	}
	slog.Debug("source written", "url", location, "bytes", len(data))
	return nil
}

// Ext returns the lower-cased extension of location, ignoring any query string.
func Ext(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	return strings.ToLower(path.Ext(location))
}

func hasScheme(location string) bool {
	return strings.Contains(location, "://")
}
