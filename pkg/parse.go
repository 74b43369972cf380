// Package toml implements a streaming, single-pass parser for TOML v1.0.0 documents. It produces
// a generic in-memory tree of objects, arrays and scalars (see [Value]) suitable for downstream
// consumption as application configuration; it does not itself adapt that tree into any particular
// host configuration framework.
package toml

import (
	"io"
)

// Parse reads a complete TOML v1.0.0 document from a string and returns its value tree. Parsing
// is synchronous: the call owns its own lexer and builder tree for its duration, and returns only
// once the whole document has been consumed or a fatal error is found. No partial tree is
// returned on error.
func Parse(input string) (*Value, error) {
	p := newParser(input)
	return p.parse()
}

// ParseReader reads a complete TOML v1.0.0 document from r and returns its value tree. The whole
// stream is read into memory up front; there is no incremental variant that returns a partial
// tree for documents too large to buffer.
func ParseReader(r io.Reader) (*Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}
