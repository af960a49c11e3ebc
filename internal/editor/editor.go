// Package editor connects generated content to the document being written.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Editor is the document surface the panel reads from and inserts into.
type Editor interface {
	ReadDocumentText(ctx context.Context) (string, error)
	InsertBlocks(ctx context.Context, segments []string) error
}

var blockSeparator = regexp.MustCompile(`\n{2,}`)

// SplitBlocks splits text on blank lines into trimmed, non-empty blocks.
func SplitBlocks(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var blocks []string
	for _, segment := range blockSeparator.Split(text, -1) {
		if segment = strings.TrimSpace(segment); segment != "" {
			blocks = append(blocks, segment)
		}
	}
	return blocks
}

// FileDocument uses a markdown file as the document. Inserted blocks are
// separated by one blank line. A missing file reads as an empty document.
type FileDocument struct {
	mu   sync.Mutex
	path string
}

var _ Editor = (*FileDocument)(nil)

// NewFileDocument creates a document backed by path.
func NewFileDocument(path string) (*FileDocument, error) {
	if path == "" {
		return nil, errors.New("document path is required")
	}
	return &FileDocument{path: path}, nil
}

// ReadDocumentText returns the document as written.
func (d *FileDocument) ReadDocumentText(_ context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.read()
}

// InsertBlocks appends segments to the end of the document. Existing text
// is kept byte for byte apart from trailing blank lines. The file is
// replaced atomically so readers never see a partial write.
func (d *FileDocument) InsertBlocks(_ context.Context, segments []string) error {
	var added []string
	for _, segment := range segments {
		if segment = strings.TrimSpace(segment); segment != "" {
			added = append(added, segment)
		}
	}
	if len(added) == 0 {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	existing, err := d.read()
	if err != nil {
		return err
	}

	var b strings.Builder
	if existing = strings.TrimRight(existing, "\r\n"); existing != "" {
		b.WriteString(existing)
		b.WriteString("\n\n")
	}
	b.WriteString(strings.Join(added, "\n\n"))
	b.WriteString("\n")

	return d.writeAtomic(b.String())
}

func (d *FileDocument) read() (string, error) {
	raw, err := os.ReadFile(d.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return string(raw), nil
}

func (d *FileDocument) writeAtomic(content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(d.path), "."+filepath.Base(d.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	if err := os.Rename(tmp.Name(), d.path); err != nil {
		return fmt.Errorf("failed to replace document: %w", err)
	}
	return nil
}
