package hwpv5

import (
	"encoding/binary"
	"strings"

	"go.uber.org/zap"

	"github.com/hanpama/hwpmd/document"
)

// maxTableCells bounds the grid allocated for a corrupt TABLE record.
const maxTableCells = 1 << 20

// tryParseTable reconstructs the table anchored by a PARA_TEXT record that
// carries an inline object marker. The cursor must sit just past that
// record; paraLevel is its level.
//
// It runs in three phases: find the "tbl " control inside the paragraph,
// read the grid size from the TABLE record, then collect cell contents up to
// the next paragraph at or above the control's level. It returns nil when the
// object is not a usable table; the cursor is not rewound.
func (d *bodyDecoder) tryParseTable(c *RecordCursor, paraLevel uint16) *document.Table {
	ctrlLevel, ok := findTableCtrl(c, paraLevel)
	if !ok {
		d.log.Debug("inline object is not a table", zap.Int("pos", c.Pos()))
		return nil
	}

	rows, cols := readTableDimensions(c)
	if rows == 0 || cols == 0 || rows*cols > maxTableCells {
		d.log.Debug("table control without usable dimensions",
			zap.Int("pos", c.Pos()), zap.Int("rows", rows), zap.Int("cols", cols))
		return nil
	}

	return d.collectTableCells(c, ctrlLevel, rows, cols)
}

// findTableCtrl consumes records up to and including the table CTRL_HEADER.
// It gives up at the next PARA_HEADER at or above paraLevel, or at a
// LIST_HEADER above it, which opens the next cell of an enclosing table.
func findTableCtrl(c *RecordCursor, paraLevel uint16) (uint16, bool) {
	for {
		rec, ok := c.Peek()
		if !ok {
			return 0, false
		}
		if rec.Tag == recTagCtrlHeader && len(rec.Data) >= 4 && rec.CtrlID() == ctrlIDTable {
			c.Advance()
			return rec.Level, true
		}
		if rec.Tag == recTagParaHeader && rec.Level <= paraLevel {
			return 0, false
		}
		if rec.Tag == recTagListHeader && rec.Level < paraLevel {
			return 0, false
		}
		c.Advance()
	}
}

// readTableDimensions reads row and column counts from the TABLE record
// directly following the control header.
func readTableDimensions(c *RecordCursor) (rows, cols int) {
	rec, ok := c.Peek()
	if !ok || rec.Tag != recTagTable {
		return 0, 0
	}
	c.Advance()
	if len(rec.Data) < 8 {
		return 0, 0
	}
	rows = int(binary.LittleEndian.Uint16(rec.Data[4:]))
	cols = int(binary.LittleEndian.Uint16(rec.Data[6:]))
	return rows, cols
}

// collectTableCells gathers one content list per cell LIST_HEADER and lays
// them out row-major on the rows x cols grid. Lists beyond the grid are
// dropped; missing ones leave empty cells.
func (d *bodyDecoder) collectTableCells(c *RecordCursor, ctrlLevel uint16, rows, cols int) *document.Table {
	var (
		cells   [][]document.CellContent
		current []document.CellContent
		inCell  bool
	)

	for {
		rec, ok := c.Peek()
		if !ok {
			break
		}
		// A paragraph or cell list at or above the control's level belongs
		// to an enclosing scope.
		if (rec.Tag == recTagParaHeader || rec.Tag == recTagListHeader) && rec.Level <= ctrlLevel {
			break
		}

		switch {
		case rec.Tag == recTagListHeader && rec.Level == ctrlLevel+1:
			if inCell {
				cells = append(cells, current)
			}
			current = nil
			inCell = true

		case rec.Tag == recTagParaText && inCell:
			if HasTableMarker(rec.Data) {
				c.Advance()
				if nested := d.tryParseTable(c, rec.Level); nested != nil {
					current = append(current, nested)
				} else if text := strings.TrimSpace(ExtractText(rec.Data)); text != "" {
					current = append(current, &document.Paragraph{Text: text})
				}
				continue
			}
			if text := strings.TrimSpace(ExtractText(rec.Data)); text != "" {
				current = append(current, &document.Paragraph{Text: text})
			}
		}
		c.Advance()
	}
	if inCell {
		cells = append(cells, current)
	}

	if len(cells) > rows*cols {
		d.log.Debug("dropping cells beyond declared grid",
			zap.Int("collected", len(cells)), zap.Int("capacity", rows*cols))
	}

	t := &document.Table{Rows: make([]*document.Row, 0, rows)}
	idx := 0
	for range rows {
		row := &document.Row{Cells: make([]*document.Cell, 0, cols)}
		for range cols {
			cell := &document.Cell{}
			if idx < len(cells) {
				cell.Content = cells[idx]
			}
			row.Cells = append(row.Cells, cell)
			idx++
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
