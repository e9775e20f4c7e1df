package pptxscene

import (
	"fmt"
	"log/slog"
	"strings"
)

// slideContext is the read-only state threaded through the conversion of
// one slide. Derived contexts are copies; nothing is shared mutably except
// the diagnostics sink of the slide.
type slideContext struct {
	pkg   *pptxPackage
	opts  Options
	chain *slideChain
	theme *Theme
	// part and rels identify the part whose shape tree is being visited.
	// Relationship ids found in the tree are resolved against rels only.
	part string
	rels *relationshipMap
	// groupFill is the fill of the innermost enclosing group, used by
	// shapes with a:grpFill.
	groupFill *xmlShapeProps
	diag      *diagnostics
}

func newSlideContext(pkg *pptxPackage, chain *slideChain, diag *diagnostics) *slideContext {
	return &slideContext{
		pkg:   pkg,
		opts:  pkg.opts,
		chain: chain,
		theme: chain.theme,
		part:  chain.slide.name,
		rels:  chain.slide.rels,
		diag:  diag,
	}
}

// inPart returns a copy of c that resolves relationships against part.
func (c *slideContext) inPart(part string, rels *relationshipMap) *slideContext {
	cp := *c
	cp.part = part
	cp.rels = rels
	return &cp
}

// inGroup returns a copy of c for the children of a group.
func (c *slideContext) inGroup(grpSpPr *xmlShapeProps) *slideContext {
	cp := *c
	if grpSpPr != nil && grpSpPr.kind() != fillNone {
		cp.groupFill = grpSpPr
	}
	return &cp
}

func (c *slideContext) factor() float64 {
	return c.opts.PositionScaleFactor
}

func (c *slideContext) px(emu int64) float64 {
	return toPixels(emu, c.opts.PositionScaleFactor)
}

// color resolves a color reference against the slide's theme.
func (c *slideContext) color(ref *xmlColor) (string, bool) {
	return resolveColor(ref, c.theme)
}

// lookup resolves a relationship id of the current part. A dangling id is
// recorded and reported as not found.
func (c *slideContext) lookup(id string) (Relationship, bool) {
	if id == "" {
		return Relationship{}, false
	}
	rel, err := c.rels.lookup(id)
	if err != nil {
		c.diag.recover(err)
		return Relationship{}, false
	}
	return rel, true
}

// lookupKind resolves id and checks that it points at one of kinds. A
// relationship of another kind is recorded as an unsupported variant.
func (c *slideContext) lookupKind(id string, kinds ...string) (Relationship, bool) {
	rel, ok := c.lookup(id)
	if !ok {
		return Relationship{}, false
	}
	for _, kind := range kinds {
		if rel.Kind == kind {
			return rel, true
		}
	}
	c.diag.recover(unsupportedVariant(c.part, fmt.Sprintf("relationship %s is %s, want %s", id, rel.Kind, strings.Join(kinds, " or "))))
	return Relationship{}, false
}

// masterTextStyles returns the master's p:txStyles, if any.
func (c *slideContext) masterTextStyles() *xmlTextStyles {
	if c.chain == nil || c.chain.master == nil {
		return nil
	}
	return c.chain.master.root.TxStyles
}

// diagnostics collects the recovered problems of one slide.
type diagnostics struct {
	slide    string
	log      *slog.Logger
	warnings []string
}

func newDiagnostics(slide string, log *slog.Logger) *diagnostics {
	return &diagnostics{slide: slide, log: log}
}

// recover records a non-fatal problem.
func (d *diagnostics) recover(err error) {
	if err == nil {
		return
	}
	d.warnings = append(d.warnings, err.Error())
	d.log.Debug("recovered element error", "slide", d.slide, "error", err)
}
