package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kk-code-lab/mdtree/markdown"
	"gopkg.in/yaml.v3"
)

// Format names a structured export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Node is the serialisable form of a tree node.
type Node struct {
	Type      string `json:"type" yaml:"type"`
	Level     int    `json:"level,omitempty" yaml:"level,omitempty"`
	Value     string `json:"value,omitempty" yaml:"value,omitempty"`
	Info      string `json:"info,omitempty" yaml:"info,omitempty"`
	URL       string `json:"url,omitempty" yaml:"url,omitempty"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Marker    string `json:"marker,omitempty" yaml:"marker,omitempty"`
	Start     *int   `json:"start,omitempty" yaml:"start,omitempty"`
	Delimiter string `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
	Tight     *bool  `json:"tight,omitempty" yaml:"tight,omitempty"`
	Children  []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Export writes doc to w in the requested format.
func Export(w io.Writer, doc markdown.Document, format Format) error {
	root := ToNode(doc)
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(root); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(root); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// ToNode converts doc into its serialisable form.
func ToNode(doc markdown.Document) Node {
	return Node{Type: "document", Children: blockNodes(doc.Blocks)}
}

func blockNodes(blocks []markdown.Block) []Node {
	if len(blocks) == 0 {
		return nil
	}
	nodes := make([]Node, 0, len(blocks))
	for _, block := range blocks {
		nodes = append(nodes, blockNode(block))
	}
	return nodes
}

func blockNode(block markdown.Block) Node {
	node := Node{Type: block.Kind().String()}
	switch b := block.(type) {
	case markdown.Heading:
		node.Level = b.Level
		node.Children = inlineNodes(b.Content)
	case markdown.Paragraph:
		node.Children = inlineNodes(b.Content)
	case markdown.CodeBlock:
		node.Info = b.Info
		node.Value = b.Content
	case markdown.List:
		switch t := b.Type.(type) {
		case markdown.Ordered:
			start := t.Start
			node.Start = &start
			node.Delimiter = string(t.Delimiter)
		case markdown.Unordered:
			node.Marker = string(t.Marker)
		}
		for _, item := range b.Items {
			tight := item.Tight
			node.Children = append(node.Children, Node{
				Type:     "list_item",
				Tight:    &tight,
				Children: blockNodes(item.Content),
			})
		}
	case markdown.Blockquote:
		node.Children = blockNodes(b.Content)
	case markdown.HTMLBlock:
		node.Value = b.Content
	}
	return node
}

func inlineNodes(nodes []markdown.Inline) []Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		node := Node{Type: n.Kind().String()}
		switch n := n.(type) {
		case markdown.Text:
			node.Value = n.Value
		case markdown.Code:
			node.Value = n.Value
		case markdown.HTMLInline:
			node.Value = n.Value
		case markdown.Emphasis:
			node.Children = inlineNodes(n.Content)
		case markdown.Strong:
			node.Children = inlineNodes(n.Content)
		case markdown.Link:
			node.URL, node.Title = n.URL, n.Title
			node.Children = inlineNodes(n.Text)
		case markdown.Image:
			node.URL, node.Title = n.URL, n.Title
			node.Children = inlineNodes(n.Alt)
		}
		out = append(out, node)
	}
	return out
}
