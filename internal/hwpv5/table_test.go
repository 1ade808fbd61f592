package hwpv5

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanpama/hwpmd/document"
)

func decodeBody(t *testing.T, data []byte) []document.Element {
	t.Helper()
	return newBodyDecoder(nil, nil).extractElements(ParseRecords(data))
}

func cellTexts(t *testing.T, tbl *document.Table) [][]string {
	t.Helper()
	var out [][]string
	for _, r := range tbl.Rows {
		var row []string
		for _, c := range r.Cells {
			row = append(row, c.Text())
		}
		out = append(out, row)
	}
	return out
}

func TestTryParseTable2x2(t *testing.T) {
	data := concat(
		ctrlHeader(1, "tbl "),
		tableDef(2, 2, 2),
		cell(1, "A"), cell(1, "B"),
		cell(1, "C"), cell(1, "D"),
		paraHeader(0, 0),
	)
	c := NewRecordCursor(ParseRecords(data))
	tbl := newBodyDecoder(nil, nil).tryParseTable(c, 1)

	require.NotNil(t, tbl)
	require.Len(t, tbl.Rows, 2)
	for _, r := range tbl.Rows {
		require.Len(t, r.Cells, 2)
		for _, cl := range r.Cells {
			require.Len(t, cl.Content, 1)
		}
	}
	assert.Equal(t, [][]string{{"A", "B"}, {"C", "D"}}, cellTexts(t, tbl))

	// stops in front of the next paragraph
	next, ok := c.Peek()
	require.True(t, ok)
	assert.Equal(t, uint16(recTagParaHeader), next.Tag)
}

func TestExtractElementsWithTable(t *testing.T) {
	data := concat(
		paraHeader(0, 0), paraText(1, "before"),
		paraHeader(0, 0), markerText(1, ""),
		ctrlHeader(1, "tbl "), tableDef(2, 2, 2),
		cell(1, "A"), cell(1, "B"), cell(1, "C"), cell(1, "D"),
		paraHeader(0, 0), paraText(1, "after"),
	)
	els := decodeBody(t, data)
	require.Len(t, els, 3)

	assert.Equal(t, &document.Paragraph{Text: "before"}, els[0])
	tbl, ok := els[1].(*document.Table)
	require.True(t, ok)
	assert.Equal(t, [][]string{{"A", "B"}, {"C", "D"}}, cellTexts(t, tbl))
	assert.Equal(t, &document.Paragraph{Text: "after"}, els[2])
}

func TestTableGridIsAuthoritative(t *testing.T) {
	t.Run("extra cells dropped", func(t *testing.T) {
		data := concat(
			markerText(1, ""), ctrlHeader(1, "tbl "), tableDef(2, 1, 2),
			cell(1, "A"), cell(1, "B"), cell(1, "C"),
		)
		els := decodeBody(t, data)
		require.Len(t, els, 1)
		tbl := els[0].(*document.Table)
		assert.Equal(t, [][]string{{"A", "B"}}, cellTexts(t, tbl))
	})

	t.Run("missing cells left empty", func(t *testing.T) {
		data := concat(
			markerText(1, ""), ctrlHeader(1, "tbl "), tableDef(2, 2, 2),
			cell(1, "A"),
		)
		els := decodeBody(t, data)
		require.Len(t, els, 1)
		tbl := els[0].(*document.Table)
		assert.Equal(t, [][]string{{"A", ""}, {"", ""}}, cellTexts(t, tbl))
	})
}

func TestNestedTable(t *testing.T) {
	data := concat(
		markerText(1, ""), ctrlHeader(1, "tbl "), tableDef(2, 2, 2),
		cell(1, "A"),
		// cell B holds a 1x2 table
		listHeader(2), paraHeader(2, 0), markerText(3, ""),
		ctrlHeader(3, "tbl "), tableDef(4, 1, 2),
		cell(3, "x"), cell(3, "y"),
		cell(1, "C"), cell(1, "D"),
		paraHeader(0, 0), paraText(1, "after"),
	)
	els := decodeBody(t, data)
	require.Len(t, els, 2)

	outer, ok := els[0].(*document.Table)
	require.True(t, ok)
	assert.Equal(t, [][]string{{"A", ""}, {"C", "D"}}, cellTexts(t, outer))

	b := outer.Rows[0].Cells[1]
	require.Len(t, b.Content, 1)
	nested, ok := b.Content[0].(*document.Table)
	require.True(t, ok, "nested table must not be flattened")
	assert.Equal(t, [][]string{{"x", "y"}}, cellTexts(t, nested))

	assert.Equal(t, &document.Paragraph{Text: "after"}, els[1])
}

func TestInlineObjectInCellKeepsGrid(t *testing.T) {
	data := concat(
		markerText(1, ""), ctrlHeader(1, "tbl "), tableDef(2, 2, 2),
		cell(1, "A"),
		// cell B holds a picture, not a table
		listHeader(2), paraHeader(2, 0), markerText(3, "pic"),
		ctrlHeader(3, "gso "),
		cell(1, "C"), cell(1, "D"),
	)
	c := NewRecordCursor(ParseRecords(data))
	tbl := newBodyDecoder(nil, nil).tryParseTable(c, 1)
	require.NotNil(t, tbl)
	assert.Equal(t, [][]string{{"A", "pic"}, {"C", "D"}}, cellTexts(t, tbl))
}

func TestFindTableCtrlStopsAtEnclosingCell(t *testing.T) {
	c := NewRecordCursor(ParseRecords(concat(
		ctrlHeader(3, "gso "), cell(1, "next"),
	)))
	_, ok := findTableCtrl(c, 3)
	assert.False(t, ok)

	rec, ok := c.Peek()
	require.True(t, ok)
	assert.Equal(t, uint16(recTagListHeader), rec.Tag, "next cell list must stay unread")
}

func TestOneByOneTableUnwrapped(t *testing.T) {
	data := concat(
		markerText(1, ""), ctrlHeader(1, "tbl "), tableDef(2, 1, 1),
		listHeader(2),
		paraHeader(2, 0), paraText(3, "  framed  "),
		paraHeader(2, 0), markerText(3, ""),
		ctrlHeader(3, "tbl "), tableDef(4, 1, 2),
		cell(3, "x"), cell(3, "y"),
		paraHeader(0, 0),
	)
	els := decodeBody(t, data)
	require.Len(t, els, 2)
	assert.Equal(t, &document.Paragraph{Text: "framed"}, els[0])
	nested, ok := els[1].(*document.Table)
	require.True(t, ok)
	assert.Equal(t, [][]string{{"x", "y"}}, cellTexts(t, nested))
}

func TestSectionHeaderTableBecomesHeading(t *testing.T) {
	data := concat(
		markerText(1, ""), ctrlHeader(1, "tbl "), tableDef(2, 1, 4),
		cell(1, "1"),
		listHeader(2), paraHeader(2, 0),
		cell(1, "Overview"),
		listHeader(2), paraHeader(2, 0),
		paraHeader(0, 0),
	)
	els := decodeBody(t, data)
	require.Len(t, els, 1)
	assert.Equal(t, &document.Paragraph{Text: "1. Overview", HeadingLevel: 2}, els[0])
}

func TestSectionHeaderRejectedWithSecondRowText(t *testing.T) {
	data := concat(
		markerText(1, ""), ctrlHeader(1, "tbl "), tableDef(2, 2, 4),
		cell(1, "1"), listHeader(2), cell(1, "Overview"), listHeader(2),
		listHeader(2), cell(1, "note"), listHeader(2), listHeader(2),
		paraHeader(0, 0),
	)
	els := decodeBody(t, data)
	require.Len(t, els, 1)
	_, ok := els[0].(*document.Table)
	assert.True(t, ok)
}

func TestUnreconstructableTableFallsBackToText(t *testing.T) {
	t.Run("no table control", func(t *testing.T) {
		data := concat(
			paraHeader(0, 0), markerText(1, "Picture"),
			ctrlHeader(1, "gso "),
			paraHeader(0, 0), paraText(1, "next"),
		)
		els := decodeBody(t, data)
		assert.Equal(t, []document.Element{
			&document.Paragraph{Text: "Picture"},
			&document.Paragraph{Text: "next"},
		}, els)
	})

	t.Run("zero dimensions", func(t *testing.T) {
		data := concat(
			markerText(1, "empty"), ctrlHeader(1, "tbl "), tableDef(2, 0, 3),
			paraHeader(0, 0), paraText(1, "next"),
		)
		els := decodeBody(t, data)
		assert.Equal(t, []document.Element{
			&document.Paragraph{Text: "empty"},
			&document.Paragraph{Text: "next"},
		}, els)
	})

	t.Run("missing table record", func(t *testing.T) {
		data := concat(markerText(1, "x"), ctrlHeader(1, "tbl "))
		assert.Equal(t, []document.Element{&document.Paragraph{Text: "x"}}, decodeBody(t, data))
	})
}

func TestHeadingLevelFromStyle(t *testing.T) {
	dec := newBodyDecoder([]int{0, 1, 2}, nil)
	data := concat(
		paraHeader(0, 1), paraText(1, "Chapter"),
		paraHeader(0, 2), paraText(1, "Section"),
		paraHeader(0, 9), paraText(1, "Body"),
	)
	els := dec.extractElements(ParseRecords(data))
	assert.Equal(t, []document.Element{
		&document.Paragraph{Text: "Chapter", HeadingLevel: 1},
		&document.Paragraph{Text: "Section", HeadingLevel: 2},
		&document.Paragraph{Text: "Body"},
	}, els)
}
