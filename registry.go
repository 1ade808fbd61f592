package hwpmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/hanpama/hwpmd/document"
	"github.com/hanpama/hwpmd/internal/hwpv5"
	"github.com/hanpama/hwpmd/internal/hwpx"
	"github.com/hanpama/hwpmd/internal/pdf"
	"github.com/hanpama/hwpmd/internal/render"
)

// ErrUnsupportedFormat is returned when no parser handles an input extension
// or no writer has the requested format name.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Parser decodes files with the extensions it declares.
type Parser interface {
	// Extensions returns the lowercase file extensions handled, with the
	// leading dot (".hwp").
	Extensions() []string
	Parse(path string) (*document.Document, error)
}

// Writer renders a document in one output format.
type Writer interface {
	FormatName() string
	FileExtension() string
	Write(w io.Writer, doc *document.Document) error
}

// Registry maps input extensions to parsers and format names to writers.
// The zero value is an empty registry. A Registry is not safe for
// concurrent registration; lookups may run concurrently once it is filled.
type Registry struct {
	parsers map[string]Parser
	writers map[string]Writer
}

// NewRegistry returns a registry holding the built-in parsers (.hwp, .hwpx,
// .pdf) and writers (markdown, text).
func NewRegistry(opts ...Option) *Registry {
	cfg := defaults()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Registry{}
	r.RegisterParser(hwpv5.NewParser(cfg.log))
	r.RegisterParser(hwpx.NewParser(cfg.log))
	r.RegisterParser(pdf.NewParser(cfg.log))
	r.RegisterWriter(render.NewMarkdownWriter())
	r.RegisterWriter(render.NewTextWriter())
	return r
}

// RegisterParser routes each of p's extensions to p, replacing any parser
// previously registered for it.
func (r *Registry) RegisterParser(p Parser) {
	if r.parsers == nil {
		r.parsers = make(map[string]Parser)
	}
	for _, ext := range p.Extensions() {
		r.parsers[strings.ToLower(ext)] = p
	}
}

// RegisterWriter routes w's format name to w.
func (r *Registry) RegisterWriter(w Writer) {
	if r.writers == nil {
		r.writers = make(map[string]Writer)
	}
	r.writers[strings.ToLower(w.FormatName())] = w
}

// Parse decodes path with the parser registered for its extension.
func (r *Registry) Parse(path string) (*document.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	p, ok := r.parsers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: input extension %q (supported: %s)",
			ErrUnsupportedFormat, ext, strings.Join(r.SupportedExtensions(), ", "))
	}
	return p.Parse(path)
}

// Writer returns the writer registered under format.
func (r *Registry) Writer(format string) (Writer, error) {
	w, ok := r.writers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w: output format %q (supported: %s)",
			ErrUnsupportedFormat, format, strings.Join(r.SupportedFormats(), ", "))
	}
	return w, nil
}

// Write renders doc to w in the named format.
func (r *Registry) Write(w io.Writer, doc *document.Document, format string) error {
	writer, err := r.Writer(format)
	if err != nil {
		return err
	}
	return writer.Write(w, doc)
}

// SupportedExtensions lists the registered input extensions, sorted.
func (r *Registry) SupportedExtensions() []string {
	return sortedKeys(r.parsers)
}

// SupportedFormats lists the registered output format names, sorted.
func (r *Registry) SupportedFormats() []string {
	return sortedKeys(r.writers)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// DefaultRegistry returns the process-wide registry, building it with the
// built-ins on first use.
func DefaultRegistry() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultRegistry == nil {
		defaultRegistry = NewRegistry()
	}
	return defaultRegistry
}

// ResetDefaultRegistry drops the process-wide registry so the next
// DefaultRegistry call builds a fresh one. Intended for tests.
func ResetDefaultRegistry() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRegistry = nil
}
