package pptxscene

import (
	"encoding/json"
	"encoding/xml"
	"strings"

	"github.com/spf13/cast"
)

// ChartType names a chart family as it appears in the chart part, e.g.
// "barChart" or "doughnutChart".
type ChartType string

// Chart families.
const (
	ChartLine      ChartType = "lineChart"
	ChartLine3D    ChartType = "line3DChart"
	ChartBar       ChartType = "barChart"
	ChartBar3D     ChartType = "bar3DChart"
	ChartPie       ChartType = "pieChart"
	ChartPie3D     ChartType = "pie3DChart"
	ChartDoughnut  ChartType = "doughnutChart"
	ChartArea      ChartType = "areaChart"
	ChartArea3D    ChartType = "area3DChart"
	ChartScatter   ChartType = "scatterChart"
	ChartBubble    ChartType = "bubbleChart"
	ChartRadar     ChartType = "radarChart"
	ChartSurface   ChartType = "surfaceChart"
	ChartSurface3D ChartType = "surface3DChart"
	ChartStock     ChartType = "stockChart"
)

var chartFamilies = map[string]ChartType{
	string(ChartLine):      ChartLine,
	string(ChartLine3D):    ChartLine3D,
	string(ChartBar):       ChartBar,
	string(ChartBar3D):     ChartBar3D,
	string(ChartPie):       ChartPie,
	string(ChartPie3D):     ChartPie3D,
	string(ChartDoughnut):  ChartDoughnut,
	string(ChartArea):      ChartArea,
	string(ChartArea3D):    ChartArea3D,
	string(ChartScatter):   ChartScatter,
	string(ChartBubble):    ChartBubble,
	string(ChartRadar):     ChartRadar,
	string(ChartSurface):   ChartSurface,
	string(ChartSurface3D): ChartSurface3D,
	string(ChartStock):     ChartStock,
}

// ChartElement is a chart frame with its cached data.
type ChartElement struct {
	BaseElement
	ChartType ChartType `json:"chartType"`
	Title     string    `json:"title,omitempty"`
	Data      ChartData `json:"data"`
	// Family specific extras, set only when the chart declares them.
	BarDir   string `json:"barDir,omitempty"`
	Grouping string `json:"grouping,omitempty"`
	HoleSize string `json:"holeSize,omitempty"`
	Marker   *bool  `json:"marker,omitempty"`
	Style    string `json:"style,omitempty"`
}

func (*ChartElement) GetType() ElementType { return ElementTypeChart }

func (e *ChartElement) MarshalJSON() ([]byte, error) {
	type alias ChartElement
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		*alias
	}{e.GetType(), (*alias)(e)})
}

// ChartData is the series payload of a chart: CategorySeries for
// category/value series, XYRows for series with parallel X and Y values.
type ChartData interface {
	chartData()
}

// ChartPoint is one value of a category series. X is the point index.
type ChartPoint struct {
	X int     `json:"x"`
	Y float64 `json:"y"`
}

// ChartSeries is a category/value series.
type ChartSeries struct {
	Key     string         `json:"key"`
	Values  []ChartPoint   `json:"values"`
	XLabels map[int]string `json:"xlabels"`
}

// CategorySeries holds one entry per series.
type CategorySeries []ChartSeries

// XYRows holds two rows per series: all X values, then all Y values.
type XYRows [][]float64

func (CategorySeries) chartData() {}
func (XYRows) chartData()         {}

// --- chart part decode ---

type xmlChartSpace struct {
	Chart struct {
		Title    *xmlChartTitle `xml:"title"`
		PlotArea xmlPlotArea    `xml:"plotArea"`
	} `xml:"chart"`
}

type xmlChartTitle struct {
	Tx *struct {
		Rich *xmlTextBody `xml:"rich"`
	} `xml:"tx"`
}

// xmlPlotArea keeps the chart groups of a plot area in document order.
// Unknown holds the names of unrecognized *Chart children.
type xmlPlotArea struct {
	Groups  []*xmlChartGroup
	Unknown []string
}

type xmlChartGroup struct {
	Type         ChartType   `xml:"-"`
	BarDir       *xmlVal     `xml:"barDir"`
	Grouping     *xmlVal     `xml:"grouping"`
	HoleSize     *xmlVal     `xml:"holeSize"`
	Marker       *xmlVal     `xml:"marker"`
	ScatterStyle *xmlVal     `xml:"scatterStyle"`
	RadarStyle   *xmlVal     `xml:"radarStyle"`
	Series       []xmlSeries `xml:"ser"`
}

type xmlSeries struct {
	Tx   *xmlChartData `xml:"tx"`
	Cat  *xmlChartData `xml:"cat"`
	Val  *xmlChartData `xml:"val"`
	XVal *xmlChartData `xml:"xVal"`
	YVal *xmlChartData `xml:"yVal"`
}

// xmlChartData is a data reference with its cached points.
type xmlChartData struct {
	StrRef *struct {
		Cache xmlChartCache `xml:"strCache"`
	} `xml:"strRef"`
	NumRef *struct {
		Cache xmlChartCache `xml:"numCache"`
	} `xml:"numRef"`
	StrLit *xmlChartCache `xml:"strLit"`
	NumLit *xmlChartCache `xml:"numLit"`
	V      string         `xml:"v"`
}

type xmlChartCache struct {
	Pts []xmlChartPoint `xml:"pt"`
}

type xmlChartPoint struct {
	Idx string `xml:"idx,attr"`
	V   string `xml:"v"`
}

func (p *xmlPlotArea) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			family, ok := chartFamilies[el.Name.Local]
			if !ok {
				if strings.HasSuffix(el.Name.Local, "Chart") {
					p.Unknown = append(p.Unknown, el.Name.Local)
				}
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			g := &xmlChartGroup{Type: family}
			if err := d.DecodeElement(g, &el); err != nil {
				return err
			}
			p.Groups = append(p.Groups, g)
		case xml.EndElement:
			return nil
		}
	}
}

// points returns the cached points of a reference, string or numeric.
func (d *xmlChartData) points() []xmlChartPoint {
	switch {
	case d == nil:
		return nil
	case d.StrRef != nil:
		return d.StrRef.Cache.Pts
	case d.NumRef != nil:
		return d.NumRef.Cache.Pts
	case d.StrLit != nil:
		return d.StrLit.Pts
	case d.NumLit != nil:
		return d.NumLit.Pts
	}
	return nil
}

// isXY reports whether the series is plotted against numeric X values.
func (s *xmlSeries) isXY() bool {
	return s.XVal != nil || s.YVal != nil
}

// isXY reports whether any series of the group is an X/Y series. The rest
// of the group is then read as X/Y too.
func (g *xmlChartGroup) isXY() bool {
	for i := range g.Series {
		if g.Series[i].isXY() {
			return true
		}
	}
	return false
}

// xyRows returns the X and Y rows of one series. Y falls back to the value
// reference, and X to the 1-based point positions when absent.
func (s *xmlSeries) xyRows() (xs, ys []float64) {
	yRef := s.YVal
	if yRef == nil {
		yRef = s.Val
	}
	ys = numbers(yRef.points())
	if s.XVal != nil {
		return numbers(s.XVal.points()), ys
	}
	xs = make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	return xs, ys
}

// numbers converts cached values leniently. Points that are not numbers
// are skipped.
func numbers(pts []xmlChartPoint) []float64 {
	out := make([]float64, 0, len(pts))
	for _, pt := range pts {
		v, err := cast.ToFloat64E(strings.TrimSpace(pt.V))
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func pointIndex(idx string, fallback int) int {
	i, err := cast.ToIntE(idx)
	if err != nil {
		return fallback
	}
	return i
}

// extract builds the data of a chart group.
func (g *xmlChartGroup) extract() ChartData {
	if g.isXY() {
		rows := make(XYRows, 0, 2*len(g.Series))
		for i := range g.Series {
			xs, ys := g.Series[i].xyRows()
			rows = append(rows, xs, ys)
		}
		return rows
	}

	out := make(CategorySeries, 0, len(g.Series))
	for i := range g.Series {
		s := &g.Series[i]
		series := ChartSeries{Key: cast.ToString(i), Values: []ChartPoint{}, XLabels: map[int]string{}}
		if s.Tx != nil {
			if pts := s.Tx.points(); len(pts) > 0 {
				series.Key = pts[0].V
			} else if s.Tx.V != "" {
				series.Key = s.Tx.V
			}
		}
		for j, pt := range s.Cat.points() {
			series.XLabels[pointIndex(pt.Idx, j)] = pt.V
		}
		for j, pt := range s.Val.points() {
			y, err := cast.ToFloat64E(strings.TrimSpace(pt.V))
			if err != nil {
				continue
			}
			series.Values = append(series.Values, ChartPoint{X: pointIndex(pt.Idx, j), Y: y})
		}
		out = append(out, series)
	}
	return out
}

func valOf(v *xmlVal) string {
	if v == nil {
		return ""
	}
	return v.Val
}

// applyExtras copies the family specific attributes of g onto e.
func (g *xmlChartGroup) applyExtras(e *ChartElement) {
	switch g.Type {
	case ChartLine:
		e.Grouping = valOf(g.Grouping)
		if g.Marker != nil {
			marker := g.Marker.Val == "" || xmlBool(g.Marker.Val)
			e.Marker = &marker
		}
	case ChartLine3D, ChartArea, ChartArea3D:
		e.Grouping = valOf(g.Grouping)
	case ChartBar, ChartBar3D:
		e.Grouping = valOf(g.Grouping)
		e.BarDir = valOf(g.BarDir)
	case ChartDoughnut:
		e.HoleSize = valOf(g.HoleSize)
	case ChartScatter:
		e.Style = valOf(g.ScatterStyle)
	case ChartRadar:
		e.Style = valOf(g.RadarStyle)
	case ChartPie, ChartPie3D, ChartBubble, ChartSurface, ChartSurface3D, ChartStock:
	}
}

func chartTitle(t *xmlChartTitle) string {
	if t == nil || t.Tx == nil || t.Tx.Rich == nil {
		return ""
	}
	var lines []string
	for _, p := range t.Tx.Rich.Paragraphs {
		var sb strings.Builder
		for _, n := range p.Runs {
			switch n := n.(type) {
			case *xmlRun:
				sb.WriteString(n.T)
			case *xmlField:
				sb.WriteString(n.T)
			case *xmlBreak:
				sb.WriteByte('\n')
			}
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

// chart converts a chart frame. The chart part is read through the
// frame's relationship; a missing or malformed part leaves the data empty.
func (c *slideContext) chart(frame *xmlGraphicFrame) *ChartElement {
	out := &ChartElement{Data: CategorySeries{}}
	ref := frame.Graphic.Data.Chart
	if ref == nil {
		return out
	}
	rel, ok := c.lookupKind(ref.ID, relChart)
	if !ok {
		return out
	}
	var space xmlChartSpace
	if err := c.pkg.decodePart(rel.Target, &space); err != nil {
		c.diag.recover(err)
		return out
	}
	out.Title = chartTitle(space.Chart.Title)

	groups := space.Chart.PlotArea.Groups
	if len(groups) == 0 {
		c.diag.recover(unsupportedVariant(rel.Target, "chart family "+strings.Join(space.Chart.PlotArea.Unknown, ", ")))
		return out
	}
	// Combo charts keep the first family.
	g := groups[0]
	out.ChartType = g.Type
	out.Data = g.extract()
	g.applyExtras(out)
	return out
}
