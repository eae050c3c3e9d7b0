package domain

// Statement is one RDF triple in canonical N-Triples form,
// e.g. `<http://a> <http://b> "c" .`. Two statements are equal when their
// strings are equal, so a graph compares as a set of Statements.
type Statement string

// String returns the N-Triples line.
func (s Statement) String() string {
	return string(s)
}
