package pptxscene

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PathCommand is one segment of a Path: MoveTo, LineTo, CubicTo, QuadTo or
// ClosePath.
type PathCommand interface {
	appendTo(sb *strings.Builder)
	scale(sx, sy float64) PathCommand
}

type MoveTo struct{ X, Y float64 }
type LineTo struct{ X, Y float64 }
type CubicTo struct{ X1, Y1, X2, Y2, X, Y float64 }
type QuadTo struct{ X1, Y1, X, Y float64 }
type ClosePath struct{}

func (c MoveTo) appendTo(sb *strings.Builder) { writeCommand(sb, 'M', c.X, c.Y) }
func (c LineTo) appendTo(sb *strings.Builder) { writeCommand(sb, 'L', c.X, c.Y) }
func (c CubicTo) appendTo(sb *strings.Builder) {
	writeCommand(sb, 'C', c.X1, c.Y1, c.X2, c.Y2, c.X, c.Y)
}
func (c QuadTo) appendTo(sb *strings.Builder)  { writeCommand(sb, 'Q', c.X1, c.Y1, c.X, c.Y) }
func (ClosePath) appendTo(sb *strings.Builder) { sb.WriteByte('z') }

func (c MoveTo) scale(sx, sy float64) PathCommand { return MoveTo{c.X * sx, c.Y * sy} }
func (c LineTo) scale(sx, sy float64) PathCommand { return LineTo{c.X * sx, c.Y * sy} }
func (c CubicTo) scale(sx, sy float64) PathCommand {
	return CubicTo{c.X1 * sx, c.Y1 * sy, c.X2 * sx, c.Y2 * sy, c.X * sx, c.Y * sy}
}
func (c QuadTo) scale(sx, sy float64) PathCommand {
	return QuadTo{c.X1 * sx, c.Y1 * sy, c.X * sx, c.Y * sy}
}
func (c ClosePath) scale(float64, float64) PathCommand { return c }

// writeCommand writes "L1,2" or "C1,2 3,4 5,6".
func writeCommand(sb *strings.Builder, op byte, coords ...float64) {
	sb.WriteByte(op)
	for i := 0; i < len(coords); i += 2 {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(formatCoord(coords[i]))
		sb.WriteByte(',')
		sb.WriteString(formatCoord(coords[i+1]))
	}
}

func formatCoord(v float64) string {
	v = round2(v)
	if v == 0 {
		v = 0 // no "-0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Path is a custom outline in the element's own box.
type Path []PathCommand

// String returns SVG path data, e.g. "M0,0 L50,0 L50,50 z".
func (p Path) String() string {
	var sb strings.Builder
	for i, c := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		c.appendTo(&sb)
	}
	return sb.String()
}

func (p Path) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// Scale returns p with x scaled by sx and y by sy.
func (p Path) Scale(sx, sy float64) Path {
	if p == nil || (sx == 1 && sy == 1) {
		return p
	}
	out := make(Path, len(p))
	for i, c := range p {
		out[i] = c.scale(sx, sy)
	}
	return out
}

// pathBuilder converts custom geometry into a Path. Coordinates are in the
// declared path space until emitted.
type pathBuilder struct {
	guides map[string]float64
	part   string
	errs   []error
}

// buildCustomPath emits every a:path of geom scaled into a box of width x
// height output units. cx/cy are the shape extents in EMU for the built-in
// guides; factor scales paths that declare no size of their own.
func buildCustomPath(geom *xmlCustGeom, cx, cy int64, width, height, factor float64, part string) (Path, []error) {
	b := &pathBuilder{
		part: part,
		guides: map[string]float64{
			"l": 0, "t": 0,
			"w": float64(cx), "h": float64(cy),
			"r": float64(cx), "b": float64(cy),
			"wd2": float64(cx) / 2, "hd2": float64(cy) / 2,
		},
	}
	if geom.GdLst != nil {
		for _, gd := range geom.GdLst.Gd {
			fields := strings.Fields(gd.Fmla)
			if len(fields) == 2 && fields[0] == "val" {
				if v, err := strconv.ParseFloat(fields[1], 64); err == nil {
					b.guides[gd.Name] = v
					continue
				}
			}
			b.errs = append(b.errs, unsupportedVariant(part, fmt.Sprintf("guide formula %q", gd.Fmla)))
		}
	}

	var out Path
	for _, p := range geom.PathLst.Paths {
		sx, sy := factor, factor
		if p.W != 0 {
			sx = width / float64(p.W)
		}
		if p.H != 0 {
			sy = height / float64(p.H)
		}
		out = append(out, b.path(p).Scale(sx, sy)...)
		for _, name := range p.Unknown {
			b.errs = append(b.errs, unsupportedVariant(part, "path command "+name))
		}
	}
	return out, b.errs
}

// coord resolves a literal or a guide reference.
func (b *pathBuilder) coord(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}
	if v, ok := b.guides[s]; ok {
		return v, true
	}
	b.errs = append(b.errs, unsupportedVariant(b.part, fmt.Sprintf("guide reference %q", s)))
	return 0, false
}

func (b *pathBuilder) point(pt xmlPathPoint) (float64, float64, bool) {
	x, okX := b.coord(pt.X)
	y, okY := b.coord(pt.Y)
	return x, y, okX && okY
}

// path converts one a:path in document order, in its own declared space.
func (b *pathBuilder) path(p *xmlPath) Path {
	var out Path
	var penX, penY float64
	for _, cmd := range p.Commands {
		switch cmd := cmd.(type) {
		case *xmlMoveTo:
			if x, y, ok := b.point(cmd.Pt); ok {
				out = append(out, MoveTo{x, y})
				penX, penY = x, y
			}
		case *xmlLnTo:
			if x, y, ok := b.point(cmd.Pt); ok {
				out = append(out, LineTo{x, y})
				penX, penY = x, y
			}
		case *xmlCubicBezTo:
			if len(cmd.Pts) != 3 {
				b.errs = append(b.errs, unsupportedVariant(b.part, "cubicBezTo without three points"))
				continue
			}
			x1, y1, ok1 := b.point(cmd.Pts[0])
			x2, y2, ok2 := b.point(cmd.Pts[1])
			x, y, ok3 := b.point(cmd.Pts[2])
			if ok1 && ok2 && ok3 {
				out = append(out, CubicTo{x1, y1, x2, y2, x, y})
				penX, penY = x, y
			}
		case *xmlQuadBezTo:
			if len(cmd.Pts) != 2 {
				b.errs = append(b.errs, unsupportedVariant(b.part, "quadBezTo without two points"))
				continue
			}
			x1, y1, ok1 := b.point(cmd.Pts[0])
			x, y, ok2 := b.point(cmd.Pts[1])
			if ok1 && ok2 {
				out = append(out, QuadTo{x1, y1, x, y})
				penX, penY = x, y
			}
		case *xmlArcTo:
			wR, ok1 := b.coord(cmd.WR)
			hR, ok2 := b.coord(cmd.HR)
			st, ok3 := b.coord(cmd.StAng)
			sw, ok4 := b.coord(cmd.SwAng)
			if !(ok1 && ok2 && ok3 && ok4) {
				continue
			}
			var seg Path
			seg, penX, penY = arcPolyline(penX, penY, wR, hR, st/angleUnit, sw/angleUnit)
			out = append(out, seg...)
		case *xmlClose:
			out = append(out, ClosePath{})
		}
	}
	return out
}

// arcPolyline approximates an elliptical arc that starts at the pen point
// with line segments at whole-degree steps. Angles are in degrees. It
// returns the segments and the new pen point.
func arcPolyline(penX, penY, wR, hR, startDeg, sweepDeg float64) (Path, float64, float64) {
	st := startDeg * math.Pi / 180
	cx := penX - wR*math.Cos(st)
	cy := penY - hR*math.Sin(st)

	at := func(deg float64) (float64, float64) {
		rad := deg * math.Pi / 180
		return cx + wR*math.Cos(rad), cy + hR*math.Sin(rad)
	}

	var out Path
	end := startDeg + sweepDeg
	step := 1.0
	if sweepDeg < 0 {
		step = -1
	}
	steps := int(math.Floor(math.Abs(sweepDeg)))
	for i := 1; i <= steps; i++ {
		x, y := at(startDeg + float64(i)*step)
		out = append(out, LineTo{x, y})
	}
	if float64(steps) < math.Abs(sweepDeg) {
		x, y := at(end)
		out = append(out, LineTo{x, y})
	}
	x, y := at(end)
	return out, x, y
}
