package driven

import (
	"io"

	"github.com/custodia-labs/octopus/internal/core/domain"
)

// StatementSequence yields parsed statements one at a time.
type StatementSequence interface {
	// Next returns the next statement, or io.EOF when the input is exhausted.
	Next() (domain.Statement, error)
}

// TripleCodec parses and serializes RDF graphs.
// Formats are passed as canonical names (see domain.Format.Canonical).
type TripleCodec interface {
	// CanParse reports whether a parser exists for format.
	CanParse(format domain.Format) bool

	// CanSerialize reports whether a serializer exists for format.
	CanSerialize(format domain.Format) bool

	// Parse returns a lazy statement sequence over r.
	// base resolves relative IRIs; it may be empty.
	Parse(r io.Reader, format domain.Format, base string) (StatementSequence, error)

	// Serialize drains seq into w and returns the number of statements written.
	Serialize(w io.Writer, seq StatementSequence, format domain.Format) (int, error)
}
