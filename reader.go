package pptxscene

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Reader is the interface for presentation readers.
type Reader interface {
	Read(path string) (*Document, error)
	ReadFromReader(r io.ReaderAt, size int64) (*Document, error)
}

// ReaderType represents the input format.
type ReaderType string

const (
	ReaderPowerPoint2007 ReaderType = "PowerPoint2007"
)

// ctSlide is the content type that enumerates slide parts.
const ctSlide = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"

const (
	contentTypesPart     = "[Content_Types].xml"
	presentationPart     = "ppt/presentation.xml"
	presentationRelsPart = "ppt/_rels/presentation.xml.rels"
)

// NewReader creates a reader for the given format.
func NewReader(format ReaderType, opts ...Option) (Reader, error) {
	switch format {
	case ReaderPowerPoint2007:
		o := DefaultOptions()
		for _, opt := range opts {
			opt(&o)
		}
		if err := o.Validate(); err != nil {
			return nil, err
		}
		return &PPTXReader{opts: o}, nil
	default:
		return nil, fmt.Errorf("unsupported reader format: %s", format)
	}
}

// PPTXReader reads PPTX files into scene documents.
type PPTXReader struct {
	opts Options
}

// zipIndex builds a map from file name to *zip.File for O(1) lookups.
func zipIndex(zr *zip.Reader) map[string]*zip.File {
	m := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		m[f.Name] = f
	}
	return m
}

// Read reads a presentation from a file path.
func (r *PPTXReader) Read(path string) (*Document, error) {
	return r.ReadContext(context.Background(), path)
}

// ReadContext is Read with a context bounding slide conversion.
func (r *PPTXReader) ReadContext(ctx context.Context, path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return r.ReadFromReaderContext(ctx, f, info.Size())
}

// ReadFromReader reads a presentation from an io.ReaderAt.
func (r *PPTXReader) ReadFromReader(reader io.ReaderAt, size int64) (*Document, error) {
	return r.ReadFromReaderContext(context.Background(), reader, size)
}

// ReadFromReaderContext is ReadFromReader with a context bounding slide
// conversion.
func (r *PPTXReader) ReadFromReaderContext(ctx context.Context, reader io.ReaderAt, size int64) (*Document, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid reader size: %d", size)
	}
	if size > int64(maxZipTotalSize) {
		return nil, fmt.Errorf("file size %d exceeds maximum allowed (%d bytes)", size, maxZipTotalSize)
	}

	zr, err := zip.NewReader(reader, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}

	if len(zr.File) > maxZipEntries {
		return nil, fmt.Errorf("zip archive contains too many entries (%d > %d)", len(zr.File), maxZipEntries)
	}

	pkg, err := openPackage(zr, r.opts)
	if err != nil {
		return nil, err
	}
	return pkg.convert(ctx)
}

// maxZipEntrySize is the maximum allowed size for a single file extracted from a ZIP.
// This prevents zip bomb attacks. 50 MB is generous for any legitimate PPTX part.
const maxZipEntrySize = 50 << 20 // 50 MB

// maxZipTotalSize is the cumulative limit for all extracted content from a single ZIP.
const maxZipTotalSize = 200 << 20 // 200 MB

// maxZipEntries is the maximum number of files allowed in a ZIP archive.
const maxZipEntries = 10000

var (
	errPartNotFound    = errors.New("part not found")
	errExtractionLimit = errors.New("cumulative extraction limit exceeded")
)

// pptxPackage is an opened presentation package. Everything reachable from
// it is read-only once openPackage returns, except the caches.
type pptxPackage struct {
	zr    *zip.Reader
	files map[string]*zip.File
	opts  Options
	log   *slog.Logger

	slides      []string
	size        Size
	layout      string
	theme       *Theme
	tableStyles map[string]*xmlTableStyle

	// defaultTableStyle is the styleId used by tables without their own.
	defaultTableStyle string

	themes    sync.Map // part name -> *Theme
	media     sync.Map // part name -> *mediaBlob
	parts     sync.Map // part name -> *slidePart, layouts and masters only
	counted   sync.Map // part name -> struct{}, parts charged to extracted
	extracted atomic.Int64
}

func openPackage(zr *zip.Reader, opts Options) (*pptxPackage, error) {
	p := &pptxPackage{
		zr:    zr,
		files: zipIndex(zr),
		opts:  opts,
		log:   opts.logger(),
	}

	slides, err := p.readSlideList()
	if err != nil {
		return nil, err
	}
	p.slides = slides

	var pres xmlPresentationForRead
	if err := p.decodePart(presentationPart, &pres); err != nil {
		return nil, err
	}
	if pres.SldSz != nil {
		p.size = Size{
			Width:  toPixels(pres.SldSz.CX, opts.PositionScaleFactor),
			Height: toPixels(pres.SldSz.CY, opts.PositionScaleFactor),
		}
		p.layout = layoutName(pres.SldSz.Type, pres.SldSz.CX, pres.SldSz.CY)
	}

	presRels, err := p.readRelationships(presentationPart)
	if err != nil {
		return nil, err
	}

	p.theme = emptyTheme()
	if rel, ok := presRels.ofKind(relTheme); ok {
		theme, err := p.loadTheme(rel.Target)
		if err != nil {
			return nil, err
		}
		p.theme = theme
	} else {
		p.log.Warn("package has no theme, scheme colors will not resolve", "part", presentationPart)
	}

	p.tableStyles = map[string]*xmlTableStyle{}
	if rel, ok := presRels.ofKind(relTableStyles); ok && p.has(rel.Target) {
		var list xmlTableStyleList
		if err := p.decodePart(rel.Target, &list); err != nil {
			p.log.Debug("table styles unreadable", "part", rel.Target, "error", err)
		} else {
			p.defaultTableStyle = list.Def
			for i := range list.Styles {
				style := &list.Styles[i]
				p.tableStyles[style.ID] = style
			}
		}
	}
	return p, nil
}

var slideNumberPattern = regexp.MustCompile(`(\d+)\.xml$`)

// readSlideList returns the slide part names from the content-type manifest,
// ordered by their numeric suffix.
func (p *pptxPackage) readSlideList() ([]string, error) {
	var types xmlContentTypes
	if err := p.decodePart(contentTypesPart, &types); err != nil {
		return nil, err
	}
	var slides []string
	for _, o := range types.Overrides {
		if o.ContentType == ctSlide {
			slides = append(slides, strings.TrimPrefix(o.PartName, "/"))
		}
	}
	sort.SliceStable(slides, func(i, j int) bool {
		ni, iok := slideNumber(slides[i])
		nj, jok := slideNumber(slides[j])
		if iok && jok && ni != nj {
			return ni < nj
		}
		return slides[i] < slides[j]
	})
	return slides, nil
}

func slideNumber(part string) (int, bool) {
	m := slideNumberPattern.FindStringSubmatch(part)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

func (p *pptxPackage) has(name string) bool {
	_, ok := p.files[name]
	return ok
}

// readPart returns the bytes of a part, enforcing the per-entry and
// cumulative extraction limits.
func (p *pptxPackage) readPart(name string) ([]byte, error) {
	f, ok := p.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errPartNotFound, name)
	}
	if f.UncompressedSize64 > maxZipEntrySize {
		return nil, fmt.Errorf("file %s exceeds maximum allowed size (%d bytes)", name, maxZipEntrySize)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s in zip: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, int64(maxZipEntrySize)+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from zip: %w", name, err)
	}
	if int64(len(data)) > int64(maxZipEntrySize) {
		return nil, fmt.Errorf("file %s actual size exceeds maximum allowed size", name)
	}
	// Each part is charged once, however often it is read.
	if _, seen := p.counted.LoadOrStore(name, struct{}{}); !seen {
		if p.extracted.Add(int64(len(data))) > maxZipTotalSize {
			return nil, errExtractionLimit
		}
	}
	return data, nil
}

// decodePart reads a part and decodes it into v. Any failure is a
// MalformedPart for that part.
func (p *pptxPackage) decodePart(name string, v any) error {
	data, err := p.readPart(name)
	if err != nil {
		return malformedPart(name, err)
	}
	if err := newPartDecoder(data).Decode(v); err != nil {
		return malformedPart(name, err)
	}
	return nil
}

// slidePart is a decoded slide, layout or master with its relationships and
// placeholder index.
type slidePart struct {
	name  string
	rels  *relationshipMap
	root  *xmlSlideForRead
	index *placeholderIndex
}

func (p *pptxPackage) loadSlidePart(name string) (*slidePart, error) {
	var root xmlSlideForRead
	if err := p.decodePart(name, &root); err != nil {
		return nil, err
	}
	rels, err := p.readRelationships(name)
	if err != nil {
		return nil, err
	}
	return &slidePart{
		name:  name,
		rels:  rels,
		root:  &root,
		index: newPlaceholderIndex(&root.CSld.SpTree),
	}, nil
}

// loadSharedPart loads a layout or master once per document. The cached
// part is never mutated, so slides converting in parallel share it.
func (p *pptxPackage) loadSharedPart(name string) (*slidePart, error) {
	if v, ok := p.parts.Load(name); ok {
		return v.(*slidePart), nil
	}
	part, err := p.loadSlidePart(name)
	if err != nil {
		return nil, err
	}
	v, _ := p.parts.LoadOrStore(name, part)
	return v.(*slidePart), nil
}
