package hwpv5

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/richardlehane/mscfb"
	"github.com/richardlehane/msoleps"

	"github.com/hanpama/hwpmd/document"
)

// Stream names inside an HWP compound file.
const (
	streamFileHeader  = "FileHeader"
	streamDocInfo     = "DocInfo"
	streamPrvText     = "PrvText"
	streamSummaryInfo = "\x05HwpSummaryInformation"
)

func bodyTextStream(index int) string { return fmt.Sprintf("BodyText/Section%d", index) }
func viewTextStream(index int) string { return fmt.Sprintf("ViewText/Section%d", index) }

// Container gives access to the named streams of a compound file. Names use
// "/" between storages, e.g. "BodyText/Section0".
type Container interface {
	Exists(name string) bool
	Stream(name string) ([]byte, error)
}

// MemContainer is a Container held entirely in memory.
type MemContainer map[string][]byte

func (m MemContainer) Exists(name string) bool {
	_, ok := m[name]
	return ok
}

func (m MemContainer) Stream(name string) ([]byte, error) {
	b, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("stream %s not found", name)
	}
	return b, nil
}

// openOLE reads every stream of the compound file at path into memory. The
// file is closed before returning.
func openOLE(path string) (MemContainer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readOLE(f)
}

func readOLE(ra io.ReaderAt) (MemContainer, error) {
	doc, err := mscfb.New(ra)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", document.ErrInvalidContainer, err)
	}

	streams := make(MemContainer)
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		name := strings.Join(append(append([]string{}, entry.Path...), entry.Name), "/")
		data, err := io.ReadAll(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: read stream %s: %w", document.ErrInvalidContainer, name, err)
		}
		streams[name] = data
	}
	return streams, nil
}

// readSummary decodes the HwpSummaryInformation property set into md. It is
// best effort; unreadable property sets are ignored.
func readSummary(data []byte, md *document.Metadata) error {
	props := msoleps.New()
	if err := props.Reset(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("read summary information: %w", err)
	}
	for _, p := range props.Property {
		applySummaryProperty(md, p.Name, p.String())
	}
	return nil
}

func applySummaryProperty(md *document.Metadata, name, value string) {
	value = strings.TrimRight(value, "\x00")
	if name == "" || value == "" {
		return
	}
	switch strings.ToLower(name) {
	case "title":
		md.Title = value
	case "author":
		md.Author = value
	default:
		if md.Extra == nil {
			md.Extra = make(map[string]string)
		}
		md.Extra[name] = value
	}
}
