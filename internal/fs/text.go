package fs

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

const (
	sniffSampleSize              = 4096
	nonPrintableThresholdPercent = 30
)

// Encoding names the byte encoding a source was decoded from.
type Encoding int

const (
	EncodingUTF8 Encoding = iota
	EncodingUTF8BOM
	EncodingUTF16LE
	EncodingUTF16BE
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8BOM:
		return "utf-8-bom"
	case EncodingUTF16LE:
		return "utf-16le"
	case EncodingUTF16BE:
		return "utf-16be"
	default:
		return "utf-8"
	}
}

// Extensions that are never markdown, checked before any content sniffing.
var binaryExtensions = map[string]struct{}{
	".7z":    {},
	".bin":   {},
	".docx":  {},
	".exe":   {},
	".gif":   {},
	".gz":    {},
	".jpeg":  {},
	".jpg":   {},
	".pdf":   {},
	".png":   {},
	".so":    {},
	".tar":   {},
	".wasm":  {},
	".woff2": {},
	".zip":   {},
}

// LooksLikeText reports whether content can be fed to the parser. The name,
// when set, short-circuits obvious binary extensions.
func LooksLikeText(name string, content []byte) bool {
	if hasBinaryExtension(name) {
		return false
	}
	if len(content) == 0 {
		return true
	}

	sample := content
	if len(sample) > sniffSampleSize {
		sample = sample[:sniffSampleSize]
	}

	if detectEncoding(sample) != EncodingUTF8 {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	if utf8.Valid(sample) {
		return true
	}

	printable := 0
	for _, b := range sample {
		if isCommonTextByte(b) {
			printable++
		}
	}
	if printable == 0 {
		return false
	}
	nonPrintable := len(sample) - printable
	return nonPrintable*100/len(sample) < nonPrintableThresholdPercent
}

func hasBinaryExtension(name string) bool {
	if name == "" {
		return false
	}
	_, ok := binaryExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f':
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	case b >= 0x80:
		return true
	default:
		return false
	}
}

func detectEncoding(sample []byte) Encoding {
	switch {
	case bytes.HasPrefix(sample, []byte{0xEF, 0xBB, 0xBF}):
		return EncodingUTF8BOM
	case bytes.HasPrefix(sample, []byte{0xFF, 0xFE}):
		return EncodingUTF16LE
	case bytes.HasPrefix(sample, []byte{0xFE, 0xFF}):
		return EncodingUTF16BE
	default:
		return EncodingUTF8
	}
}

// Decode converts content to a UTF-8 string, stripping a UTF-8 BOM and
// transcoding BOM-marked UTF-16. Invalid UTF-8 is passed through untouched;
// the parser tolerates it.
func Decode(content []byte) (string, Encoding, error) {
	enc := detectEncoding(content)
	switch enc {
	case EncodingUTF8BOM:
		return string(content[3:]), enc, nil
	case EncodingUTF16LE:
		s, err := decodeUTF16(content, unicode.LittleEndian)
		return s, enc, err
	case EncodingUTF16BE:
		s, err := decodeUTF16(content, unicode.BigEndian)
		return s, enc, err
	default:
		return string(content), enc, nil
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) (string, error) {
	out, err := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder().Bytes(content)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
