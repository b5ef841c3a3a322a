// Package fs loads markdown sources from disk or streams and hands the
// parser a decoded UTF-8 string.
package fs

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/unicode/norm"
)

// ErrBinaryInput is returned when the input does not look like text.
var ErrBinaryInput = errors.New("input looks like binary data")

// StdinName is the conventional path meaning standard input.
const StdinName = "-"

// Options controls how raw bytes become parser input.
type Options struct {
	// Normalize applies Unicode NFC before parsing.
	Normalize bool
}

// Source is a decoded markdown input.
type Source struct {
	Name       string
	Text       string
	Encoding   Encoding
	Size       int
	Normalized bool
}

// Load reads a source from path, or from stdin when path is StdinName.
func Load(path string, opts Options) (Source, error) {
	if path == StdinName {
		return Read("<stdin>", os.Stdin, opts)
	}
	f, err := os.Open(path)
	if err != nil {
		return Source{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Read(path, f, opts)
}

// Read decodes a source from r. The name is used for extension checks and
// error messages only.
func Read(name string, r io.Reader, opts Options) (Source, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Source{}, fmt.Errorf("read %s: %w", name, err)
	}
	return FromBytes(name, content, opts)
}

// FromBytes decodes already loaded content.
func FromBytes(name string, content []byte, opts Options) (Source, error) {
	if !LooksLikeText(name, content) {
		return Source{}, fmt.Errorf("%s: %w", name, ErrBinaryInput)
	}
	text, enc, err := Decode(content)
	if err != nil {
		return Source{}, fmt.Errorf("decode %s as %s: %w", name, enc, err)
	}
	src := Source{
		Name:     name,
		Text:     text,
		Encoding: enc,
		Size:     len(content),
	}
	if opts.Normalize && !norm.NFC.IsNormalString(text) {
		src.Text = norm.NFC.String(text)
		src.Normalized = true
	}
	return src, nil
}
