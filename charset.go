package pptxscene

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newPartDecoder returns an XML decoder over a part's bytes. A leading BOM
// selects UTF-8 or UTF-16 and is stripped; other declared encodings are
// resolved through the HTML charset registry.
func newPartDecoder(data []byte) *xml.Decoder {
	d := xml.NewDecoder(partReader(data))
	d.CharsetReader = partCharsetReader
	return d
}

func partCharsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-16", "utf-16le", "utf-16be", "unicode", "utf8":
		// Already transcoded to UTF-8 by the BOM funnel.
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}

// partReader strips a BOM and transcodes UTF-16 content to UTF-8.
func partReader(data []byte) io.Reader {
	return transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}
