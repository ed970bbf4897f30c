/*
Package text implements the textual representation of trees: a
line-oriented document with one line per branch and per leaf.

A branch line is the name of the attribute the parent node tests
followed by the rule that selects the child, with no separator in
between: Outlook=sunny, Temperature<=2.50, Humidity>70.00. A leaf
line is a bare class label. Lines appear in depth-first preorder
and children keep their declared order, which classification
relies on. Each line is indented with one tab per depth level;
the indentation is cosmetic and ignored when reading, structure
is recovered from the rule syntax alone: a line that names a
different attribute than the node being read closes that node.
*/
package text

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pbanos/sapling/attribute"
	"github.com/pbanos/sapling/tree"
)

const indentMarker = "\t"

/*
Write takes an io.Writer and a tree and writes the textual
representation of the tree to the writer. It returns an error if the
tree is nil or degenerate or the writer fails.
*/
func Write(w io.Writer, t *tree.Tree) error {
	if t == nil || t.Root == nil {
		return fmt.Errorf("cannot write a nil tree")
	}
	return writeNode(w, t.Root, 0)
}

func writeNode(w io.Writer, n *tree.Node, depth int) error {
	indent := strings.Repeat(indentMarker, depth)
	if n.Leaf() {
		if _, err := fmt.Fprintf(w, "%s%s\n", indent, n.Class); err != nil {
			return fmt.Errorf("writing tree: %v", err)
		}
		return nil
	}
	for _, child := range n.Children {
		if child.Rule == nil {
			return fmt.Errorf("writing tree: node testing %s has a child without a rule", n.Attribute)
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", indent, n.Attribute, child.Rule); err != nil {
			return fmt.Errorf("writing tree: %v", err)
		}
		if err := writeNode(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

/*
Read takes an io.Reader with the textual representation of a tree and
returns the tree it describes or an error. The reconstruction relies on
the rule syntax only: every line containing a comparator declares a
branch under the attribute it names, every other line is a leaf class
for the deepest open node. Reading fails on documents with lines that
cannot belong to the tree they describe.
*/
func Read(r io.Reader) (*tree.Tree, error) {
	d, err := newDecoder(r)
	if err != nil {
		return nil, err
	}
	root := &tree.Node{}
	if err := d.decode(root); err != nil {
		return nil, err
	}
	if d.pos < len(d.lines) {
		line := d.lines[d.pos]
		return nil, fmt.Errorf("line %d: unexpected %q: tree is already complete", line.number, line.text)
	}
	return tree.New(root), nil
}

// decoder reads a tree out of its lines moving a single cursor
// forward, never backward. Each Read call builds its own decoder:
// no state survives a reconstruction.
type decoder struct {
	lines []decoderLine
	pos   int
}

type decoderLine struct {
	text   string
	number int
}

func newDecoder(r io.Reader) (*decoder, error) {
	var lines []decoderLine
	var number int
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		number++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		lines = append(lines, decoderLine{text, number})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading tree: %v", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("cannot read a tree from an empty document")
	}
	return &decoder{lines: lines}, nil
}

/*
decode fills the given node from the lines at the cursor. Rule lines
naming the node's attribute open one child each, in document order, and
decode recurses into every child right after appending it. A rule line
naming a different attribute makes decode return without moving the
cursor, so the caller can resume on that exact line. A class line turns
the node into a leaf, consuming the line.
*/
func (d *decoder) decode(n *tree.Node) error {
	for d.pos < len(d.lines) {
		line := d.lines[d.pos]
		name, rule, err := splitRule(line.text)
		if err != nil {
			return fmt.Errorf("line %d: %v", line.number, err)
		}
		if rule == nil {
			if !n.Leaf() {
				return fmt.Errorf("line %d: unexpected class %q for a node already testing %s", line.number, line.text, n.Attribute)
			}
			n.Class = line.text
			d.pos++
			return nil
		}
		if n.Attribute == "" {
			n.Attribute = name
		} else if n.Attribute != name {
			return nil
		}
		child := &tree.Node{Rule: rule}
		n.Children = append(n.Children, child)
		d.pos++
		if err := d.decode(child); err != nil {
			return err
		}
		if child.Leaf() && child.Class == "" {
			return fmt.Errorf("line %d: branch %q has no subtree", line.number, line.text)
		}
	}
	return nil
}

/*
splitRule takes the text of a line and classifies it by its comparator:
a line containing > declares a greater-than branch, otherwise one
containing < declares a less-or-equal branch, otherwise one containing =
declares an equality branch, and a line with no comparator is a leaf
class, reported as a nil rule. For branch lines it returns the attribute
name before the comparator and the parsed rule after it.
*/
func splitRule(text string) (string, attribute.Rule, error) {
	var idx int
	switch {
	case strings.ContainsRune(text, '>'):
		idx = strings.IndexByte(text, '>')
	case strings.ContainsRune(text, '<'):
		idx = strings.IndexByte(text, '<')
	case strings.ContainsRune(text, '='):
		idx = strings.IndexByte(text, '=')
	default:
		return "", nil, nil
	}
	name := text[:idx]
	if name == "" {
		return "", nil, fmt.Errorf("rule %q names no attribute", text)
	}
	rule, err := attribute.ParseRule(text[idx:])
	if err != nil {
		return "", nil, err
	}
	return name, rule, nil
}
