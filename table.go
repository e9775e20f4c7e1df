package pptxscene

import (
	"encoding/json"
	"strconv"
)

// TableElement is a table. Rows may hold different cell counts because of
// spans; merged cells are kept with their flags set.
type TableElement struct {
	BaseElement
	TableProperties
	Data       [][]TableCell `json:"data"`
	ColWidths  []float64     `json:"colWidths"`
	RowHeights []float64     `json:"rowHeights"`
}

// TableProperties is the resolved frame style of a table. Its border
// fields sit below the box so Width and Height name the table size.
type TableProperties struct {
	Border
}

// TableCell is one cell of a table.
type TableCell struct {
	Text      *TextBody `json:"text,omitempty"`
	RowSpan   int       `json:"rowSpan,omitempty"`
	ColSpan   int       `json:"colSpan,omitempty"`
	VMerge    bool      `json:"vMerge,omitempty"`
	HMerge    bool      `json:"hMerge,omitempty"`
	FillColor string    `json:"fillColor,omitempty"`
	FontColor string    `json:"fontColor,omitempty"`
	FontBold  bool      `json:"fontBold,omitempty"`
}

func (*TableElement) GetType() ElementType { return ElementTypeTable }

func (e *TableElement) MarshalJSON() ([]byte, error) {
	type alias TableElement
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		*alias
	}{e.GetType(), (*alias)(e)})
}

// GetCell returns the cell at row, col.
func (e *TableElement) GetCell(row, col int) (*TableCell, error) {
	if row < 0 || row >= len(e.Data) || col < 0 || col >= len(e.Data[row]) {
		return nil, errOutOfRange
	}
	return &e.Data[row][col], nil
}

// tableBanding selects the table style part of each cell from the table's
// enabled flags.
type tableBanding struct {
	style                      *xmlTableStyle
	firstRow, lastRow, bandRow bool
	firstCol, lastCol          bool
	rows                       int
}

func newTableBanding(tbl *xmlTable, style *xmlTableStyle) tableBanding {
	return tableBanding{
		style:    style,
		firstRow: xmlBool(tbl.TblPr.FirstRow),
		lastRow:  xmlBool(tbl.TblPr.LastRow),
		bandRow:  xmlBool(tbl.TblPr.BandRow),
		firstCol: xmlBool(tbl.TblPr.FirstCol),
		lastCol:  xmlBool(tbl.TblPr.LastCol),
		rows:     len(tbl.Rows),
	}
}

// tablePart is one table style part applied to a cell. Banded rows replace
// the whole-table fill even when their own part has none.
type tablePart struct {
	style     *xmlTablePartStyle
	resetFill bool
}

// parts returns the style parts that apply to a cell, lowest priority
// first: whole table, the header or band row, the total row, then the
// first or last column.
func (b tableBanding) parts(row, col, cols int) []tablePart {
	s := b.style
	if s == nil {
		return nil
	}
	parts := []tablePart{{style: s.WholeTbl}}
	header := row == 0 && b.firstRow
	switch {
	case header:
		parts = append(parts, tablePart{style: s.FirstRow})
	case b.bandRow:
		band := s.Band1H
		if row%2 == 0 {
			band = s.Band2H
		}
		parts = append(parts, tablePart{style: band, resetFill: true})
	}
	total := b.lastRow && row == b.rows-1
	if total {
		parts = append(parts, tablePart{style: s.LastRow})
	}
	// Header and total rows keep their own styling.
	if !header && !total {
		switch {
		case col == 0 && b.firstCol:
			parts = append(parts, tablePart{style: s.FirstCol})
		case col == cols-1 && b.lastCol:
			parts = append(parts, tablePart{style: s.LastCol})
		}
	}
	return parts
}

// tableStyle returns the style the table references, or the package
// default.
func (c *slideContext) tableStyle(tbl *xmlTable) *xmlTableStyle {
	if style, ok := c.pkg.tableStyles[tbl.TblPr.StyleID]; ok {
		return style
	}
	return c.pkg.tableStyles[c.pkg.defaultTableStyle]
}

// table converts a:tbl. Sizes are in child space; a parent group remaps
// them.
func (c *slideContext) table(tbl *xmlTable) *TableElement {
	out := &TableElement{
		TableProperties: TableProperties{
			Border: Border{Color: "#000000", Width: 1, Type: BorderSolid, StrokeDasharray: "0"},
		},
	}
	for _, col := range tbl.Grid.Cols {
		out.ColWidths = append(out.ColWidths, c.px(col.W))
	}
	banding := newTableBanding(tbl, c.tableStyle(tbl))

	out.Data = make([][]TableCell, 0, len(tbl.Rows))
	for r, row := range tbl.Rows {
		out.RowHeights = append(out.RowHeights, c.px(row.H))
		cells := make([]TableCell, 0, len(row.Cells))
		for col := range row.Cells {
			cells = append(cells, c.tableCell(&row.Cells[col], banding.parts(r, col, len(row.Cells))))
		}
		out.Data = append(out.Data, cells)
	}
	return out
}

func spanAttr(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// tableCell converts one a:tc. Cell-local fill and run properties win over
// the table style parts, which apply in order.
func (c *slideContext) tableCell(tc *xmlTableCell, parts []tablePart) TableCell {
	cell := TableCell{
		RowSpan: spanAttr(tc.RowSpan),
		ColSpan: spanAttr(tc.GridSpan),
		VMerge:  xmlBool(tc.VMerge),
		HMerge:  xmlBool(tc.HMerge),
	}
	if tc.TxBody != nil {
		cell.Text = c.standaloneStyle(tc.TxBody).composeText(tc.TxBody)
	}

	for _, p := range parts {
		if p.resetFill {
			cell.FillColor = ""
		}
		part := p.style
		if part == nil {
			continue
		}
		if ts := part.TcStyle; ts != nil {
			if v := c.tableStyleFill(ts); v != "" {
				cell.FillColor = v
			}
		}
		if tx := part.TcTxStyle; tx != nil {
			if v, ok := c.color(&tx.xmlColor); ok {
				cell.FontColor = v
			}
			if tx.B != "" {
				cell.FontBold = xmlBool(tx.B)
			}
		}
	}

	if tc.TcPr != nil {
		switch tc.TcPr.xmlFillProps.kind() {
		case fillSolid:
			if v, ok := c.color(tc.TcPr.SolidFill); ok {
				cell.FillColor = v
			}
		case fillNo:
			cell.FillColor = ColorNone
		}
	}
	if rPr := firstRunProps(tc.TxBody); rPr != nil {
		if rPr.SolidFill != nil {
			if v, ok := c.color(rPr.SolidFill); ok {
				cell.FontColor = v
			}
		}
		if rPr.B != "" {
			cell.FontBold = xmlBool(rPr.B)
		}
	}
	return cell
}

func (c *slideContext) tableStyleFill(ts *xmlTableCellStyle) string {
	if ts.Fill != nil {
		switch ts.Fill.kind() {
		case fillSolid:
			if v, ok := c.color(ts.Fill.SolidFill); ok {
				return v
			}
		case fillNo:
			return ColorNone
		}
	}
	if ts.FillRef != nil {
		if v, ok := c.color(&ts.FillRef.xmlColor); ok {
			return v
		}
	}
	return ""
}

// firstRunProps returns the properties of the first run in body.
func firstRunProps(body *xmlTextBody) *xmlRunProps {
	if body == nil {
		return nil
	}
	for _, p := range body.Paragraphs {
		for _, n := range p.Runs {
			if rPr := n.runProps(); rPr != nil {
				return rPr
			}
		}
	}
	return nil
}
