package markdown

// Document is the root of a parsed tree. It is never mutated after Parse
// returns it.
type Document struct {
	Blocks []Block
	// Metadata is reserved and always empty.
	Metadata map[string]string
}

// Headings returns the document's top-level and nested headings in source order.
func (d Document) Headings() []Heading {
	var out []Heading
	Walk(d, VisitorFuncs{
		Block: func(b Block, _ int) bool {
			if h, ok := b.(Heading); ok {
				out = append(out, h)
			}
			return true
		},
	})
	return out
}

// Block is a block-level element. The concrete type is one of Heading,
// Paragraph, CodeBlock, List, Blockquote, HorizontalRule or HTMLBlock.
type Block interface {
	Kind() BlockKind
}

type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockCode
	BlockList
	BlockBlockquote
	BlockHorizontalRule
	BlockHTML
)

var blockKindNames = [...]string{
	BlockParagraph:      "paragraph",
	BlockHeading:        "heading",
	BlockCode:           "code_block",
	BlockList:           "list",
	BlockBlockquote:     "blockquote",
	BlockHorizontalRule: "horizontal_rule",
	BlockHTML:           "html_block",
}

func (k BlockKind) String() string {
	if k < 0 || int(k) >= len(blockKindNames) {
		return "unknown"
	}
	return blockKindNames[k]
}

// Heading is an ATX heading; Level is always within 1..6.
type Heading struct {
	Level   int
	Content []Inline
}

func (Heading) Kind() BlockKind { return BlockHeading }

type Paragraph struct {
	Content []Inline
}

func (Paragraph) Kind() BlockKind { return BlockParagraph }

// CodeBlock holds the raw lines between two fences joined by "\n". Info is
// empty when the opening fence carried no info string.
type CodeBlock struct {
	Info    string
	Content string
}

func (CodeBlock) Kind() BlockKind { return BlockCode }

// List always has at least one item.
type List struct {
	Items []ListItem
	Type  ListType
}

func (List) Kind() BlockKind { return BlockList }

// Ordered reports whether the list uses numbered markers.
func (l List) Ordered() bool {
	_, ok := l.Type.(Ordered)
	return ok
}

// ListItem content is a single Paragraph and Tight is always true for
// parsed documents.
type ListItem struct {
	Content []Block
	Tight   bool
}

type Blockquote struct {
	Content []Block
}

func (Blockquote) Kind() BlockKind { return BlockBlockquote }

type HorizontalRule struct{}

func (HorizontalRule) Kind() BlockKind { return BlockHorizontalRule }

// HTMLBlock is part of the model for consumers that build trees by hand.
// The parser never produces it.
type HTMLBlock struct {
	Content string
}

func (HTMLBlock) Kind() BlockKind { return BlockHTML }

// ListType is either Unordered or Ordered.
type ListType interface {
	listType()
}

// Unordered lists use one of '-', '*' or '+'.
type Unordered struct {
	Marker rune
}

func (Unordered) listType() {}

// Ordered lists carry the first item's number and its delimiter ('.' or ')').
type Ordered struct {
	Start     int
	Delimiter rune
}

func (Ordered) listType() {}

// Inline is a span-level element. The concrete type is one of Text,
// Emphasis, Strong, Code, Link, Image, HTMLInline, SoftBreak or HardBreak.
type Inline interface {
	Kind() InlineKind
}

type InlineKind int

const (
	InlineText InlineKind = iota
	InlineEmphasis
	InlineStrong
	InlineCode
	InlineLink
	InlineImage
	InlineHTML
	InlineSoftBreak
	InlineHardBreak
)

var inlineKindNames = [...]string{
	InlineText:      "text",
	InlineEmphasis:  "emphasis",
	InlineStrong:    "strong",
	InlineCode:      "code",
	InlineLink:      "link",
	InlineImage:     "image",
	InlineHTML:      "html_inline",
	InlineSoftBreak: "soft_break",
	InlineHardBreak: "hard_break",
}

func (k InlineKind) String() string {
	if k < 0 || int(k) >= len(inlineKindNames) {
		return "unknown"
	}
	return inlineKindNames[k]
}

type Text struct {
	Value string
}

func (Text) Kind() InlineKind { return InlineText }

type Emphasis struct {
	Content []Inline
}

func (Emphasis) Kind() InlineKind { return InlineEmphasis }

type Strong struct {
	Content []Inline
}

func (Strong) Kind() InlineKind { return InlineStrong }

// Code is a code span; Value is taken verbatim from the source.
type Code struct {
	Value string
}

func (Code) Kind() InlineKind { return InlineCode }

// Link titles are empty when absent.
type Link struct {
	Text  []Inline
	URL   string
	Title string
}

func (Link) Kind() InlineKind { return InlineLink }

type Image struct {
	Alt   []Inline
	URL   string
	Title string
}

func (Image) Kind() InlineKind { return InlineImage }

// HTMLInline is never produced by the parser.
type HTMLInline struct {
	Value string
}

func (HTMLInline) Kind() InlineKind { return InlineHTML }

type SoftBreak struct{}

func (SoftBreak) Kind() InlineKind { return InlineSoftBreak }

type HardBreak struct{}

func (HardBreak) Kind() InlineKind { return InlineHardBreak }
