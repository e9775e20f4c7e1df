package pptxscene

// placeholderIndex looks up the shapes of a layout or master by shape id,
// placeholder idx and placeholder type. Only direct children of the shape
// tree are indexed; a later shape with the same key replaces an earlier one.
type placeholderIndex struct {
	byID   map[string]*xmlShape
	byIdx  map[string]*xmlShape
	byType map[string]*xmlShape
}

func newPlaceholderIndex(tree *xmlShapeTree) *placeholderIndex {
	idx := &placeholderIndex{
		byID:   map[string]*xmlShape{},
		byIdx:  map[string]*xmlShape{},
		byType: map[string]*xmlShape{},
	}
	if tree == nil {
		return idx
	}
	for _, node := range tree.Nodes {
		sp, ok := node.(*xmlShape)
		if !ok {
			continue
		}
		if id := sp.NvSpPr.CNvPr.ID; id != "" {
			idx.byID[id] = sp
		}
		ph := sp.NvSpPr.NvPr.Ph
		if ph == nil {
			continue
		}
		if ph.Idx != "" {
			idx.byIdx[ph.Idx] = sp
		}
		if ph.Type != "" {
			idx.byType[ph.Type] = sp
		}
	}
	return idx
}

func (idx *placeholderIndex) lookupID(id string) *xmlShape {
	if idx == nil {
		return nil
	}
	return idx.byID[id]
}

func (idx *placeholderIndex) lookupIdx(i string) *xmlShape {
	if idx == nil {
		return nil
	}
	return idx.byIdx[i]
}

func (idx *placeholderIndex) lookupType(t string) *xmlShape {
	if idx == nil {
		return nil
	}
	return idx.byType[t]
}

func isPlaceholder(sp *xmlShape) bool {
	return sp != nil && sp.NvSpPr.NvPr.Ph != nil
}

// placeholderType returns the declared placeholder type of sp.
func placeholderType(sp *xmlShape) string {
	if !isPlaceholder(sp) {
		return ""
	}
	return sp.NvSpPr.NvPr.Ph.Type
}

// inheritance is the layout and master counterpart of a slide shape, with
// the placeholder type the shape resolves to.
type inheritance struct {
	layout *xmlShape
	master *xmlShape
	phType string
	phIdx  string
}

// matchPlaceholder finds the layout and master shapes a slide shape inherits
// from. A declared type is matched by type, otherwise a declared idx by idx.
// A bare placeholder with neither falls back to the layout placeholder that
// has the same shape id.
// A type-less shape takes the text box pseudo type when it is a text box,
// else the type of its layout (then master) counterpart.
func matchPlaceholder(nv *xmlNonVisual, layout, master *placeholderIndex) inheritance {
	var in inheritance
	if ph := nv.NvPr.Ph; ph != nil {
		in.phType = ph.Type
		in.phIdx = ph.Idx
	}

	switch {
	case in.phType != "":
		in.layout = layout.lookupType(in.phType)
		in.master = master.lookupType(in.phType)
	case in.phIdx != "":
		in.layout = layout.lookupIdx(in.phIdx)
		in.master = master.lookupIdx(in.phIdx)
	case nv.NvPr.Ph != nil:
		if sp := layout.lookupID(nv.CNvPr.ID); isPlaceholder(sp) {
			in.layout = sp
		}
	}

	if in.phType == "" && nv.CNvSpPr != nil && xmlBool(nv.CNvSpPr.TxBox) {
		in.phType = placeholderTextBox
	}
	if in.phType == "" {
		in.phType = placeholderType(in.layout)
	}
	if in.phType == "" {
		in.phType = placeholderType(in.master)
	}
	// Body placeholders usually carry only an idx; their master counterpart
	// is found by the type inherited from the layout.
	if in.master == nil && in.phType != "" && in.phType != placeholderTextBox {
		in.master = master.lookupType(in.phType)
	}
	return in
}
