package hwpx

import (
	"archive/zip"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/hanpama/hwpmd/document"
	"github.com/hanpama/hwpmd/internal/outline"
)

const (
	mimetypeFile = "mimetype"
	mimetypeHWPX = "application/hwp+zip"
	versionFile  = "version.xml"
	headerFile   = "Contents/header.xml"
	contentsDir  = "Contents/"

	// style ids above this are ignored when building the style table
	maxStyleID = 1 << 16
)

var manifestFiles = []string{"Contents/content.hpf", "contents/content.hpf"}

// Version represents the HWPX format version from version.xml.
type Version struct {
	Major       int
	Minor       int
	Micro       int
	BuildNumber int
	XMLVersion  string
	AppVersion  string
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Micro, v.BuildNumber)
}

// Reader provides access to the parts of an HWPX package.
type Reader struct {
	zr    *zip.Reader
	files map[string]*zip.File
	log   *zap.Logger
}

// NewReader wraps an opened ZIP archive.
func NewReader(zr *zip.Reader, log *zap.Logger) *Reader {
	if log == nil {
		log = zap.NewNop()
	}
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}
	return &Reader{zr: zr, files: files, log: log}
}

func (r *Reader) has(name string) bool {
	_, ok := r.files[name]
	return ok
}

func (r *Reader) read(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("%s not found in package", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// readXML parses a package part into an element tree.
func (r *Reader) readXML(name string) (*etree.Document, error) {
	data, err := r.read(name)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("parse %s: no root element", name)
	}
	return doc, nil
}

// checkMimetype reports packages whose mimetype entry is missing or not
// HWPX. Such packages are still read.
func (r *Reader) checkMimetype() {
	data, err := r.read(mimetypeFile)
	if err != nil {
		r.log.Debug("package has no mimetype entry")
		return
	}
	if mt := strings.TrimSpace(string(data)); mt != mimetypeHWPX {
		r.log.Warn("unexpected package mimetype", zap.String("mimetype", mt))
	}
}

// Version reads version.xml.
func (r *Reader) Version() (Version, error) {
	doc, err := r.readXML(versionFile)
	if err != nil {
		return Version{}, err
	}
	root := doc.Root()
	return Version{
		Major:       intAttr(root, "major"),
		Minor:       intAttr(root, "minor"),
		Micro:       intAttr(root, "micro"),
		BuildNumber: intAttr(root, "buildNumber"),
		XMLVersion:  root.SelectAttrValue("xmlVersion", ""),
		AppVersion:  root.SelectAttrValue("appVersion", ""),
	}, nil
}

// manifest returns the parsed content.hpf, or nil when the package has none
// or it cannot be parsed.
func (r *Reader) manifest() *etree.Document {
	for _, name := range manifestFiles {
		if !r.has(name) {
			continue
		}
		doc, err := r.readXML(name)
		if err != nil {
			r.log.Debug("manifest unreadable", zap.String("file", name), zap.Error(err))
			return nil
		}
		return doc
	}
	return nil
}

// SectionFiles lists the section parts in reading order: as listed by the
// manifest when it names any, otherwise every entry whose name contains
// "section" and ends in .xml, sorted.
func (r *Reader) SectionFiles(manifest *etree.Document) []string {
	if manifest != nil {
		if sections := manifestSections(manifest.Root()); len(sections) > 0 {
			return sections
		}
		r.log.Debug("manifest lists no sections, scanning entry names")
	}

	var sections []string
	for _, f := range r.zr.File {
		if isSectionFile(f.Name) {
			sections = append(sections, f.Name)
		}
	}
	slices.Sort(sections)
	return sections
}

func manifestSections(root *etree.Element) []string {
	var sections []string
	for _, el := range descendants(root) {
		href := el.SelectAttrValue("href", "")
		if !strings.Contains(strings.ToLower(href), "section") || !strings.HasSuffix(href, ".xml") {
			continue
		}
		if !strings.HasPrefix(href, contentsDir) {
			href = contentsDir + href
		}
		if !slices.Contains(sections, href) {
			sections = append(sections, href)
		}
	}
	return sections
}

func isSectionFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "section") && strings.HasSuffix(lower, ".xml")
}

// applyManifestMetadata copies the title and creator of content.hpf.
func applyManifestMetadata(manifest *etree.Document, md *document.Metadata) {
	if manifest == nil {
		return
	}
	for _, el := range descendants(manifest.Root()) {
		text := strings.TrimSpace(el.Text())
		switch {
		case el.Tag == "title" && text != "" && md.Title == "":
			md.Title = text
		case el.Tag == "meta" && text != "":
			switch name := el.SelectAttrValue("name", ""); name {
			case "creator":
				md.Author = text
			case "":
			default:
				md.Extra[name] = text
			}
		}
	}
}

// Styles builds heading levels from the style list of header.xml, indexed
// by style id. A missing or unreadable header yields no styles.
func (r *Reader) Styles() outline.StyleLevels {
	if !r.has(headerFile) {
		return nil
	}
	doc, err := r.readXML(headerFile)
	if err != nil {
		r.log.Warn("header styles skipped", zap.Error(err))
		return nil
	}

	var levels outline.StyleLevels
	for _, el := range descendants(doc.Root()) {
		if el.Tag != "style" {
			continue
		}
		id, err := strconv.Atoi(el.SelectAttrValue("id", ""))
		if err != nil || id < 0 || id > maxStyleID {
			continue
		}
		if id >= len(levels) {
			levels = append(levels, make(outline.StyleLevels, id-len(levels)+1)...)
		}
		levels[id] = outline.HeadingLevelOf(el.SelectAttrValue("name", ""), el.SelectAttrValue("engName", ""))
	}
	return levels
}

func intAttr(el *etree.Element, key string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(el.SelectAttrValue(key, "")))
	return n
}

// descendants returns el and every element below it in document order.
func descendants(el *etree.Element) []*etree.Element {
	out := []*etree.Element{el}
	for _, child := range el.ChildElements() {
		out = append(out, descendants(child)...)
	}
	return out
}
