package markdown

import (
	"fmt"
	"io"
)

// Parse converts Markdown source into a document tree. Malformed input
// degrades to literal text; Parse never fails.
func Parse(source string) Document {
	return Document{
		Blocks:   ParseBlocks(Preprocess(source)),
		Metadata: map[string]string{},
	}
}

// ParseBytes is Parse for a byte slice.
func ParseBytes(source []byte) Document {
	return Parse(string(source))
}

// ParseReader reads r to EOF and parses the result. The only possible
// error is the one returned by r.
func ParseReader(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read markdown source: %w", err)
	}
	return ParseBytes(data), nil
}
