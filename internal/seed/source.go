package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"uamtta/internal/blob"
)

// Source yields a seed document.
type Source interface {
	// Load reads the document. Sources never modify what they read.
	Load(ctx context.Context) (Document, error)
	// String names the source for logs.
	String() string
}

// Close releases resources held by src when it holds any.
func Close(src Source) error {
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// FileSource reads a YAML or JSON document from the local filesystem.
type FileSource struct {
	Path   string
	Format Format // derived from the extension when empty
}

// Load reads the file.
func (s FileSource) Load(ctx context.Context) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(s.Path) // #nosec G304 -- operator supplied fixture path
	if err != nil {
		return Document{}, fmt.Errorf("read seed file: %w", err)
	}
	format := s.Format
	if format == FormatAuto {
		format = FormatFor(s.Path)
	}
	return Document{Name: s.Path, Format: format, Data: data}, nil
}

func (s FileSource) String() string { return "file:" + s.Path }

// BlobSource reads a document stored under Key in a blob store.
type BlobSource struct {
	Store blob.Store
	Key   string
}

// Load downloads the blob.
func (s BlobSource) Load(ctx context.Context) (Document, error) {
	info, rc, err := s.Store.Get(ctx, s.Key)
	if err != nil {
		return Document{}, fmt.Errorf("get seed blob: %w", err)
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	if err != nil {
		return Document{}, fmt.Errorf("read seed blob %s: %w", s.Key, err)
	}
	format := FormatFor(s.Key)
	if format == FormatAuto {
		format = formatForContentType(info.ContentType)
	}
	return Document{Name: s.Key, Format: format, Data: data}, nil
}

func (s BlobSource) String() string {
	return fmt.Sprintf("blob:%s/%s", s.Store.Driver(), s.Key)
}

func formatForContentType(ct string) Format {
	switch ct {
	case "application/json":
		return FormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml":
		return FormatYAML
	default:
		return FormatAuto
	}
}
