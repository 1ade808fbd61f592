// Package hwpx decodes HWPX documents: ZIP packages whose Contents/sectionN.xml
// parts hold the body as an element tree.
package hwpx

import (
	"archive/zip"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/hanpama/hwpmd/document"
)

// SourceFormat tags documents produced by this package.
const SourceFormat = "hwpx"

// Parser reads .hwpx files into documents.
type Parser struct {
	log *zap.Logger
}

// NewParser returns a Parser logging to log; nil disables logging.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log}
}

func (p *Parser) Extensions() []string { return []string{".hwpx"} }

// Parse reads the package at path. The archive is closed before returning.
func (p *Parser) Parse(path string) (*document.Document, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", document.ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open HWPX file %s: %w", document.ErrInvalidContainer, path, err)
	}
	defer zr.Close()

	return p.ParseArchive(&zr.Reader)
}

// ParseArchive decodes an already opened package. Sections that cannot be
// read or parsed are skipped.
func (p *Parser) ParseArchive(zr *zip.Reader) (*document.Document, error) {
	r := NewReader(zr, p.log)
	r.checkMimetype()

	doc := document.New(SourceFormat)
	if v, err := r.Version(); err == nil {
		doc.Metadata.Extra["version"] = v.String()
		if v.AppVersion != "" {
			doc.Metadata.Extra["appVersion"] = v.AppVersion
		}
	} else {
		p.log.Debug("version unavailable", zap.Error(err))
	}

	manifest := r.manifest()
	applyManifestMetadata(manifest, &doc.Metadata)

	w := &walker{styles: r.Styles()}
	for _, name := range r.SectionFiles(manifest) {
		section, err := r.readXML(name)
		if err != nil {
			p.log.Warn("section skipped", zap.String("file", name), zap.Error(err))
			continue
		}
		elements := w.section(section.Root())
		p.log.Debug("section decoded", zap.String("file", name), zap.Int("elements", len(elements)))
		doc.Append(elements...)
	}
	return doc, nil
}
