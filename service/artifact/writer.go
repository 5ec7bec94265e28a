package artifact

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// Writer persists generated artifact bytes. A write failure must never cost
// the caller the generated content: the bytes stay with the caller and the
// facade reports "generated but not filed" instead of failing the request.
type Writer struct {
	fs afs.Service
}

// NewWriter creates a writer.
func NewWriter() *Writer {
	return &Writer{fs: afs.New()}
}

// Write stores data at targetURL, creating missing parent folders
// defensively; a duplicate or retried request may arrive before the folder
// tree has been ensured.
func (w *Writer) Write(ctx context.Context, data []byte, targetURL string) error {
	parent, _ := url.Split(targetURL, file.Scheme)
	if exists, _ := w.fs.Exists(ctx, parent); !exists {
		if err := w.fs.Create(ctx, parent, file.DefaultDirOsMode, true); err != nil {
			return fmt.Errorf("failed to create parent folder %v: %w", parent, err)
		}
	}
	if err := w.fs.Upload(ctx, targetURL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write artifact %v: %w", targetURL, err)
	}
	return nil
}
