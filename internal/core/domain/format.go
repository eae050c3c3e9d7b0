package domain

import (
	"net/url"
	"path"
	"sort"
	"strings"
)

// Format names an RDF serialization. It holds either a short file-extension
// label ("ttl") or a canonical serialization name ("turtle").
type Format string

// Canonical serialization names.
const (
	FormatUnknown  Format = ""
	FormatRDFXML   Format = "rdf-xml"
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "n-triples"
)

// formatTable is the one label/name table used by detection, conversion and
// destination naming. The first row for a canonical name is its extension.
var formatTable = []struct {
	label     Format
	canonical Format
}{
	{"xml", FormatRDFXML},
	{"ttl", FormatTurtle},
	{"nt", FormatNTriples},
	{"n3", FormatNTriples},
	{"ntriples", FormatNTriples},
}

// extensionFormats maps lower-case file extensions to the label they are detected as.
var extensionFormats = map[string]Format{
	".ntriples": "ntriples",
	".nt":       "nt",
	".n3":       "n3",
	".ttl":      "ttl",
	".xml":      "xml",
	".rdf":      "xml",
}

// Canonical maps a short label to its serialization name.
// Labels outside the table are returned unchanged.
func (f Format) Canonical() Format {
	normalised := Format(strings.ToLower(strings.TrimSpace(string(f))))
	for _, row := range formatTable {
		if row.label == normalised {
			return row.canonical
		}
	}
	return normalised
}

// Extension maps a serialization name to the short label used as file
// extension. Names outside the table are returned unchanged.
func (f Format) Extension() string {
	canonical := f.Canonical()
	for _, row := range formatTable {
		if row.canonical == canonical {
			return string(row.label)
		}
	}
	return string(canonical)
}

// IsKnown reports whether the format maps to one of the canonical names.
func (f Format) IsKnown() bool {
	switch f.Canonical() {
	case FormatRDFXML, FormatTurtle, FormatNTriples:
		return true
	default:
		return false
	}
}

// String returns the format as written.
func (f Format) String() string {
	return string(f)
}

// SameSerialization reports whether a and b name the same serialization,
// e.g. "ttl" and "turtle".
func SameSerialization(a, b Format) bool {
	return a.Canonical() == b.Canonical()
}

// FormatFromPath infers a format label from the extension of a local path or
// URL. It returns FormatUnknown for unrecognised extensions.
func FormatFromPath(location string) Format {
	p := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		p = u.Path
	}
	return extensionFormats[strings.ToLower(path.Ext(p))]
}

// Extensions returns every file extension, without the dot, that
// FormatFromPath recognises or Extension produces.
func Extensions() []string {
	exts := make([]string, 0, len(extensionFormats))
	for ext := range extensionFormats {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	sort.Strings(exts)
	return exts
}
