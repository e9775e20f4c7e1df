package pptxscene

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// mediaBlob is a loaded media part. Immutable once cached.
type mediaBlob struct {
	mime    string
	dataURI string
	width   int
	height  int
}

// loadMedia reads a media part once per document. The data URI is only
// built when media is embedded. Failures are not cached, so a later
// request re-reads the part.
func (p *pptxPackage) loadMedia(part string) (*mediaBlob, error) {
	if m, ok := p.media.Load(part); ok {
		return m.(*mediaBlob), nil
	}
	data, err := p.readPart(part)
	if err != nil {
		return nil, malformedPart(part, err)
	}
	blob := &mediaBlob{mime: detectMimeType(part, data)}
	if p.opts.EmbedMedia {
		blob.dataURI = "data:" + blob.mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	}
	if strings.HasPrefix(blob.mime, "image/") {
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			blob.width, blob.height = cfg.Width, cfg.Height
		}
	}
	m, _ := p.media.LoadOrStore(part, blob)
	return m.(*mediaBlob), nil
}

// detectMimeType sniffs the content, falling back to the extension when the
// content is not recognized (EMF, WMF and other vector formats).
func detectMimeType(name string, data []byte) string {
	mt := mimetype.Detect(data)
	switch {
	case mt.Is("application/octet-stream"), mt.Is("text/plain"), mt.Is("application/zip"):
		return guessMimeType(name)
	}
	return mt.String()
}

func guessMimeType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".svg":
		return "image/svg+xml"
	case ".wmf":
		return "image/x-wmf"
	case ".emf":
		return "image/x-emf"
	case ".tiff", ".tif":
		return "image/tiff"
	case ".wdp":
		return "image/vnd.ms-photo"
	case ".webp":
		return "image/webp"
	case ".mp4", ".m4v":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".wmv":
		return "video/x-ms-wmv"
	case ".avi":
		return "video/x-msvideo"
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/mp4"
	case ".wma":
		return "audio/x-ms-wma"
	default:
		return "application/octet-stream"
	}
}

// mediaSource returns what an element should reference for rel: the
// verbatim target of external links, a data: URI when media is embedded,
// else the part name. An unreadable part yields "".
func (c *slideContext) mediaSource(rel Relationship) string {
	if rel.External {
		return rel.Target
	}
	if !c.opts.EmbedMedia {
		return rel.Target
	}
	blob, err := c.pkg.loadMedia(rel.Target)
	if err != nil {
		c.diag.recover(err)
		return ""
	}
	return blob.dataURI
}

// naturalSize returns the pixel size of an image part, or zeros.
func (c *slideContext) naturalSize(rel Relationship) (int, int) {
	if rel.External {
		return 0, 0
	}
	blob, err := c.pkg.loadMedia(rel.Target)
	if err != nil {
		return 0, 0
	}
	return blob.width, blob.height
}
