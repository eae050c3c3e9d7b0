// Package rdf implements the triple codec on top of github.com/knakk/rdf.
//
// Turtle, N-Triples and RDF/XML can be parsed. Turtle and N-Triples can be
// serialized; the library has no RDF/XML encoder.
package rdf

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/knakk/rdf"

	"github.com/custodia-labs/octopus/internal/core/domain"
	"github.com/custodia-labs/octopus/internal/core/ports/driven"
	"github.com/custodia-labs/octopus/internal/logger"
)

// Ensure Codec implements the interface.
var _ driven.TripleCodec = (*Codec)(nil)

// Codec parses and serializes RDF graphs.
type Codec struct{}

// NewCodec creates a codec.
func NewCodec() *Codec {
	return &Codec{}
}

var parsers = map[domain.Format]rdf.Format{
	domain.FormatTurtle:   rdf.Turtle,
	domain.FormatNTriples: rdf.NTriples,
	domain.FormatRDFXML:   rdf.RDFXML,
}

var serializers = map[domain.Format]rdf.Format{
	domain.FormatTurtle:   rdf.Turtle,
	domain.FormatNTriples: rdf.NTriples,
}

// CanParse reports whether format can be read.
func (c *Codec) CanParse(format domain.Format) bool {
	_, ok := parsers[format.Canonical()]
	return ok
}

// CanSerialize reports whether format can be written.
func (c *Codec) CanSerialize(format domain.Format) bool {
	_, ok := serializers[format.Canonical()]
	return ok
}

// Parse returns a lazy sequence of the statements in r.
func (c *Codec) Parse(r io.Reader, format domain.Format, base string) (driven.StatementSequence, error) {
	f, ok := parsers[format.Canonical()]
	if !ok {
		return nil, fmt.Errorf("%w: no parser for %q", domain.ErrUnsupportedFormat, format)
	}

	dec := rdf.NewTripleDecoder(r, f)
	if base != "" && f != rdf.NTriples {
		iri, err := rdf.NewIRI(base)
		if err != nil {
			logger.Debug("Ignoring base IRI %q: %v", base, err)
		} else if err := dec.SetOption(rdf.Base, iri); err != nil {
			return nil, err
		}
	}

	return &tripleSequence{dec: dec}, nil
}

// Serialize drains seq into w and returns the number of statements written.
func (c *Codec) Serialize(w io.Writer, seq driven.StatementSequence, format domain.Format) (int, error) {
	f, ok := serializers[format.Canonical()]
	if !ok {
		return 0, fmt.Errorf("%w: no serializer for %q", domain.ErrUnsupportedFormat, format)
	}

	enc := rdf.NewTripleEncoder(w, f)
	count := 0
	for {
		stmt, err := seq.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, err
		}

		triple, err := decodeStatement(stmt)
		if err != nil {
			return count, err
		}
		if err := enc.Encode(triple); err != nil {
			return count, err
		}
		count++
	}

	if err := enc.Close(); err != nil {
		return count, err
	}
	return count, nil
}

// tripleSequence adapts a decoder to a statement sequence.
type tripleSequence struct {
	dec rdf.TripleDecoder
}

func (s *tripleSequence) Next() (domain.Statement, error) {
	triple, err := s.dec.Decode()
	if err != nil {
		return "", err
	}
	return encodeStatement(triple), nil
}

// encodeStatement renders a triple as a single N-Triples line without the newline.
func encodeStatement(t rdf.Triple) domain.Statement {
	return domain.Statement(strings.TrimSuffix(t.Serialize(rdf.NTriples), "\n"))
}

// decodeStatement parses a single N-Triples line.
func decodeStatement(stmt domain.Statement) (rdf.Triple, error) {
	dec := rdf.NewTripleDecoder(strings.NewReader(string(stmt)+"\n"), rdf.NTriples)
	triple, err := dec.Decode()
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("invalid statement %q: %w", stmt, err)
	}
	return triple, nil
}
