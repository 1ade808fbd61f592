package hwpmd

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hanpama/hwpmd/document"
)

func writeHWPX(t *testing.T, sections map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.hwpx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, body := range sections {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

const sampleSection = `<hs:sec xmlns:hs="urn:s" xmlns:hp="urn:p">` +
	`<hp:p><hp:pPr outlineLevel="1"/><hp:run><hp:t>개요</hp:t></hp:run></hp:p>` +
	`<hp:p><hp:run><hp:t>본문</hp:t></hp:run></hp:p>` +
	`</hs:sec>`

func TestParse(t *testing.T) {
	path := writeHWPX(t, map[string]string{"Contents/section0.xml": sampleSection})

	doc, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "hwpx", doc.Metadata.SourceFormat)
	assert.Equal(t, []document.Element{
		&document.Paragraph{Text: "개요", HeadingLevel: 1},
		&document.Paragraph{Text: "본문"},
	}, doc.Elements)
}

func TestConvert(t *testing.T) {
	in := writeHWPX(t, map[string]string{"Contents/section0.xml": sampleSection})
	out := filepath.Join(t.TempDir(), "nested", "dir", "doc.md")

	require.NoError(t, Convert(in, out, "markdown"))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "# 개요\n\n본문\n", string(data))
}

func TestConvertFailuresWriteNothing(t *testing.T) {
	in := writeHWPX(t, map[string]string{"Contents/section0.xml": sampleSection})
	out := filepath.Join(t.TempDir(), "doc.html")

	err := Convert(in, out, "html")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.NoFileExists(t, out)

	err = Convert(filepath.Join(t.TempDir(), "missing.hwp"), out, "text")
	assert.ErrorIs(t, err, document.ErrNotFound)
	assert.NoFileExists(t, out)
}

func TestWithLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	path := writeHWPX(t, map[string]string{
		"Contents/section0.xml": `<broken`,
		"Contents/section1.xml": sampleSection,
	})

	doc, err := Parse(path, WithLogger(zap.New(core)))
	require.NoError(t, err)
	assert.Len(t, doc.Elements, 2)
	assert.Equal(t, 1, logs.FilterMessage("section skipped").Len())
}

func TestConvertToChunks(t *testing.T) {
	path := writeHWPX(t, map[string]string{"Contents/section0.xml": sampleSection})

	chunks, err := ConvertToChunks(path, DefaultChunkSize, DefaultChunkOverlap)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "# 개요\n\n본문", chunks[0].Text)
	assert.Equal(t, map[string]string{"source": path, "format": "hwpx"}, chunks[0].Metadata)
}

func TestConvertToChunksOverlap(t *testing.T) {
	var words []string
	for i := range 20 {
		words = append(words, fmt.Sprintf("w%02d", i))
	}
	section := `<hs:sec xmlns:hs="urn:s" xmlns:hp="urn:p"><hp:p><hp:run><hp:t>` +
		strings.Join(words, " ") + `</hp:t></hp:run></hp:p></hs:sec>`
	path := writeHWPX(t, map[string]string{"Contents/section0.xml": section})

	chunks, err := ConvertToChunks(path, 20, 8)
	require.NoError(t, err)
	require.Len(t, chunks, 6)
	assert.Equal(t, "w00 w01 w02 w03 w04", chunks[0].Text)
	assert.Equal(t, "w03 w04 w05 w06 w07", chunks[1].Text)
	assert.Equal(t, "w15 w16 w17 w18 w19", chunks[5].Text)
}

func TestConvertToChunksInvalidSize(t *testing.T) {
	_, err := ConvertToChunks(filepath.Join(t.TempDir(), "missing.hwp"), 100, 200)
	assert.ErrorIs(t, err, ErrInvalidChunkSize)

	_, err = ConvertToChunks(filepath.Join(t.TempDir(), "missing.hwp"), 100, 20)
	assert.ErrorIs(t, err, document.ErrNotFound)
}
