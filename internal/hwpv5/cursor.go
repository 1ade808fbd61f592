package hwpv5

// RecordCursor walks a record slice forward. Speculative parses that fail do
// not rewind it: whatever they inspected stays consumed.
type RecordCursor struct {
	recs []Record
	pos  int
}

// NewRecordCursor returns a cursor positioned at the first record.
func NewRecordCursor(recs []Record) *RecordCursor {
	return &RecordCursor{recs: recs}
}

// HasNext reports whether a record remains.
func (c *RecordCursor) HasNext() bool {
	return c.pos < len(c.recs)
}

// Peek returns the current record without consuming it.
func (c *RecordCursor) Peek() (Record, bool) {
	if !c.HasNext() {
		return Record{}, false
	}
	return c.recs[c.pos], true
}

// Advance consumes and returns the current record.
func (c *RecordCursor) Advance() (Record, bool) {
	rec, ok := c.Peek()
	if ok {
		c.pos++
	}
	return rec, ok
}

// Pos returns the index of the current record.
func (c *RecordCursor) Pos() int { return c.pos }

// SetPos moves the cursor to an absolute index.
func (c *RecordCursor) SetPos(pos int) {
	c.pos = max(0, min(pos, len(c.recs)))
}
