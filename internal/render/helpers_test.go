package render

import "github.com/hanpama/hwpmd/document"

func para(text string) *document.Paragraph { return &document.Paragraph{Text: text} }

func cellOf(items ...document.CellContent) *document.Cell {
	return &document.Cell{Content: items}
}

// table builds a table of single-paragraph cells; "" leaves a cell empty.
func table(rows ...[]string) *document.Table {
	t := &document.Table{}
	for _, texts := range rows {
		r := &document.Row{}
		for _, text := range texts {
			c := &document.Cell{}
			if text != "" {
				c.Content = append(c.Content, para(text))
			}
			r.Cells = append(r.Cells, c)
		}
		t.Rows = append(t.Rows, r)
	}
	return t
}

func docOf(els ...document.Element) *document.Document {
	doc := document.New("hwp")
	doc.Append(els...)
	return doc
}
