// Package outline builds, flattens, and parses the nested outline
// representation used by the host's block tree. Serialization works on an
// in-memory node tree so the algorithm is testable without any host I/O;
// a separate materialize step issues the actual block writes.
package outline

import "strings"

// Node is one outline block with its ordered children.
type Node struct {
	Text     string
	Children []*Node
}

// Line is one flattened outline line with its nesting depth relative to
// the container.
type Line struct {
	Text   string
	Indent int
}

// Flatten walks the tree depth-first and returns one Line per node.
func Flatten(root *Node) []Line {
	var out []Line
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		out = append(out, Line{Text: n.Text, Indent: depth})
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return out
}

// RenderBlockText renders the tree the way the host displays copied
// blocks: one line per node, tab-indented, each prefixed with "- ".
func RenderBlockText(root *Node) string {
	lines := Flatten(root)
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat("\t", l.Indent))
		b.WriteString("- ")
		b.WriteString(l.Text)
	}
	return b.String()
}

// ParseLines rebuilds a node forest from indented text. The indent level
// of a line is the column of its first non-whitespace character; a stack
// of open nodes tracks where each new line attaches.
func ParseLines(text string) []*Node {
	type frame struct {
		node  *Node
		level int
	}
	root := &Node{}
	stack := []frame{{node: root, level: -1}}

	for _, rawLine := range strings.Split(text, "\n") {
		if strings.TrimSpace(rawLine) == "" {
			continue
		}
		level := indentLevel(rawLine)
		text := strings.TrimSpace(rawLine)
		text = strings.TrimPrefix(text, "- ")

		for len(stack) > 1 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		n := &Node{Text: text}
		parent := stack[len(stack)-1].node
		parent.Children = append(parent.Children, n)
		stack = append(stack, frame{node: n, level: level})
	}
	return root.Children
}

// indentLevel returns the index of the first non-whitespace character.
func indentLevel(line string) int {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return len(line)
}
