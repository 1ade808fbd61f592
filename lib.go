// Package hwpmd converts Hangul Word Processor documents into a shared
// document model and renders them as Markdown or plain text.
//
// # Example Usage
//
//	doc, err := hwpmd.Parse("document.hwp")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := hwpmd.DefaultRegistry().Write(os.Stdout, doc, "markdown"); err != nil {
//		log.Fatal(err)
//	}
//
// Or in one step:
//
//	err := hwpmd.Convert("document.hwpx", "out/document.md", "markdown")
//
// For retrieval pipelines the Markdown can be split into overlapping chunks:
//
//	chunks, err := hwpmd.ConvertToChunks("document.hwp", hwpmd.DefaultChunkSize, hwpmd.DefaultChunkOverlap)
//
// # Supported Formats
//
// HWP v5 (.hwp): Binary format with OLE Compound File container
//   - Paragraph, heading and table extraction, nested tables included
//   - AES-128 ECB decryption for distribution documents
//   - PrvText fallback when no body text can be recovered
//
// HWPX (.hwpx): XML-based format with ZIP container
//   - Sections in manifest order
//   - Heading levels from outline levels and header.xml styles
//
// PDF (.pdf): plain paragraphs only.
//
// Section titles drawn as small tables ("1 | | Overview | ") become level-2
// headings in both HWP formats.
package hwpmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hanpama/hwpmd/document"
	"github.com/hanpama/hwpmd/internal/chunk"
)

type config struct {
	log *zap.Logger
}

func defaults() config {
	return config{log: zap.NewNop()}
}

// Option customises Parse, Convert and NewRegistry.
type Option func(*config)

// WithLogger sets the logger decoders report recoverable problems to.
// Default: no logging.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

func registryFor(opts []Option) *Registry {
	if len(opts) == 0 {
		return DefaultRegistry()
	}
	return NewRegistry(opts...)
}

// Parse decodes the file at path, choosing the parser by extension.
//
// Errors wrap document.ErrNotFound when path does not exist,
// document.ErrInvalidContainer when the file is not a readable container,
// and ErrUnsupportedFormat for unknown extensions.
func Parse(path string, opts ...Option) (*document.Document, error) {
	return registryFor(opts).Parse(path)
}

// Convert parses inPath and writes it to outPath in the named format,
// creating the parent directories of outPath. Nothing is written when
// parsing or rendering fails.
func Convert(inPath, outPath, format string, opts ...Option) error {
	r := registryFor(opts)
	w, err := r.Writer(format)
	if err != nil {
		return err
	}

	doc, err := r.Parse(inPath)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := w.Write(&buf, doc); err != nil {
		return fmt.Errorf("render %s: %w", inPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

// Chunk is one piece of a document's Markdown rendering. Metadata holds
// "source" (the input path) and "format" (the source format).
type Chunk struct {
	Text     string
	Metadata map[string]string
}

// Usual chunking parameters for ConvertToChunks.
const (
	DefaultChunkSize    = chunk.DefaultSize
	DefaultChunkOverlap = chunk.DefaultOverlap
)

// ErrInvalidChunkSize is returned by ConvertToChunks for a non-positive size
// or an overlap outside [0, size].
var ErrInvalidChunkSize = chunk.ErrInvalidSize

// ConvertToChunks parses path, renders it as Markdown and splits the result
// into chunks of at most size characters, consecutive chunks sharing up to
// overlap characters. Splits fall on paragraph, line and word boundaries
// before cutting inside a word. Invalid sizes are rejected before the file
// is read.
func ConvertToChunks(path string, size, overlap int, opts ...Option) ([]Chunk, error) {
	splitter, err := chunk.NewSplitter(size, overlap)
	if err != nil {
		return nil, err
	}

	r := registryFor(opts)
	doc, err := r.Parse(path)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.Write(&buf, doc, "markdown"); err != nil {
		return nil, fmt.Errorf("render %s: %w", path, err)
	}

	texts := splitter.Split(buf.String())
	chunks := make([]Chunk, 0, len(texts))
	for _, text := range texts {
		chunks = append(chunks, Chunk{
			Text: text,
			Metadata: map[string]string{
				"source": path,
				"format": doc.Metadata.SourceFormat,
			},
		})
	}
	return chunks, nil
}
