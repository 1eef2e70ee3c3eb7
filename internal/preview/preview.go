// Package preview derives the one-line list title of a memo.
package preview

import (
	"context"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	tree_sitter_markdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"

	"github.com/kobzarvs/tatememo/internal/grapheme"
)

// Empty is the title of a blank memo.
const Empty = "(empty)"

// Titler parses memos with the markdown block grammar. Safe for concurrent
// use; parses are serialized on one parser.
type Titler struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

func NewTitler() *Titler {
	p := sitter.NewParser()
	p.SetLanguage(tree_sitter_markdown.GetLanguage())
	return &Titler{parser: p}
}

var (
	defaultOnce   sync.Once
	defaultTitler *Titler
)

// Title uses a shared Titler.
func Title(text string) string {
	defaultOnce.Do(func() { defaultTitler = NewTitler() })
	return defaultTitler.Title(text)
}

// Title returns the heading text when the memo opens with a heading,
// otherwise its first non-empty line.
func (t *Titler) Title(text string) string {
	lines := splitLines(text)
	firstRow, firstLine := firstNonEmptyLine(lines)
	if firstRow < 0 {
		return Empty
	}
	// The grammar only breaks rows at "\n", so parse the rejoined lines.
	if heading := t.leadingHeading(strings.Join(lines, "\n"), firstRow); heading != "" {
		return heading
	}
	return firstLine
}

func (t *Titler) leadingHeading(text string, row int) string {
	source := []byte(text)
	t.mu.Lock()
	tree, err := t.parser.ParseCtx(context.Background(), nil, source)
	t.mu.Unlock()
	if err != nil || tree == nil {
		return ""
	}
	defer tree.Close()

	node := firstHeading(tree.RootNode())
	if node == nil || int(node.StartPoint().Row) != row {
		return ""
	}
	switch node.Type() {
	case "atx_heading":
		if inline := findNamedChild(node, "inline"); inline != nil {
			return trimClosing(strings.TrimSpace(inline.Content(source)))
		}
		return trimATX(node.Content(source))
	case "setext_heading":
		content := node.Content(source)
		if i := strings.IndexAny(content, "\r\n"); i >= 0 {
			content = content[:i]
		}
		return strings.TrimSpace(content)
	}
	return ""
}

// firstHeading walks named nodes in document order.
func firstHeading(root *sitter.Node) *sitter.Node {
	if root == nil {
		return nil
	}
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		switch n.Type() {
		case "atx_heading", "setext_heading":
			return n
		}
		childCount := int(n.NamedChildCount())
		for i := childCount - 1; i >= 0; i-- {
			if child := n.NamedChild(i); child != nil {
				stack = append(stack, child)
			}
		}
	}
	return nil
}

func findNamedChild(node *sitter.Node, kind string) *sitter.Node {
	childCount := int(node.NamedChildCount())
	for i := 0; i < childCount; i++ {
		child := node.NamedChild(i)
		if child != nil && child.Type() == kind {
			return child
		}
	}
	return nil
}

func trimATX(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "#")
	return trimClosing(strings.TrimSpace(line))
}

// trimClosing drops an optional closing "###" run. It only counts when
// separated by a space, so "C#" keeps its hash.
func trimClosing(s string) string {
	trimmed := strings.TrimRight(s, "#")
	if trimmed == s {
		return s
	}
	if trimmed == "" {
		return ""
	}
	if strings.HasSuffix(trimmed, " ") || strings.HasSuffix(trimmed, "\t") {
		return strings.TrimSpace(trimmed)
	}
	return s
}

// splitLines breaks text at every line-break unit the layout breaks at.
func splitLines(text string) []string {
	var lines []string
	var b strings.Builder
	for _, unit := range grapheme.Split(text) {
		if grapheme.IsLineBreak(unit) {
			lines = append(lines, b.String())
			b.Reset()
			continue
		}
		b.WriteString(unit)
	}
	return append(lines, b.String())
}

func firstNonEmptyLine(lines []string) (int, string) {
	for row, line := range lines {
		if s := strings.TrimSpace(line); s != "" {
			return row, s
		}
	}
	return -1, ""
}
