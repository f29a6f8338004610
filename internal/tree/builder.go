package tree

import (
	"fmt"
	"log"
	"strings"

	"github.com/alexvargashn/doc23/internal/schema"
)

// StructureError reports text that does not conform to the declared
// hierarchy. It aborts the whole build: a tree with a silently dropped or
// reparented branch would corrupt downstream document semantics (legal
// numbering, citations), so structural integrity is all-or-nothing.
type StructureError struct {
	Line   int    // 1-based input line number
	Level  string // level whose marker was found
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("line %d: level %q: %s", e.Line, e.Level, e.Reason)
}

// Builder scans text line by line and grows a Node tree according to its
// schema. A Builder carries no state between builds; one instance may run
// any number of sequential builds, and independent builders may run
// concurrently against a shared Schema.
type Builder struct {
	schema *schema.Schema
	logger *log.Logger
}

// NewBuilder returns a Builder for the given validated schema.
func NewBuilder(s *schema.Schema) *Builder {
	return &Builder{schema: s}
}

// NewBuilderWithLogger returns a Builder that emits per-line diagnostics to
// the given sink. A nil logger is equivalent to NewBuilder.
func NewBuilderWithLogger(s *schema.Schema, logger *log.Logger) *Builder {
	return &Builder{schema: s, logger: logger}
}

// frame is one entry of the active path: an open node tagged with its level.
// The synthetic root frame has root == true and a zero level.
type frame struct {
	node  *Node
	level schema.Level
	root  bool

	// blankSeen records whether a blank line occurred since the node's
	// title line; it separates description text from paragraph entries.
	blankSeen bool
	// paraOpen records whether the last seen line continued a paragraph.
	paraOpen bool
}

// Build consumes the full text and returns the completed root Node, or a
// *StructureError if any line's marker cannot attach to the active path.
// No partial tree is returned on failure.
func (b *Builder) Build(text string) (*Node, error) {
	root := &Node{LevelName: b.schema.RootName()}
	stack := []frame{{node: root, root: true}}

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		lineNo := i + 1

		m, ok := Classify(b.schema, line)
		if !ok {
			b.freeText(stack, line)
			continue
		}

		// Pop the active path until the matched level's declared
		// parent is on top (the root frame for parentless levels).
		for len(stack) > 1 && !stack[len(stack)-1].root && stack[len(stack)-1].level.Name != m.Level.Parent {
			stack = stack[:len(stack)-1]
		}
		top := &stack[len(stack)-1]
		if m.Level.Parent != "" && (top.root || top.level.Name != m.Level.Parent) {
			return nil, &StructureError{
				Line:   lineNo,
				Level:  m.Level.Name,
				Reason: fmt.Sprintf("orphan section: parent %q is not open", m.Level.Parent),
			}
		}

		node := newNode(m, line)
		top.node.Children = append(top.node.Children, node)
		f := frame{node: node, level: m.Level}
		// An inline description captured from the heading line closes the
		// description span: later free text goes straight to paragraphs.
		if m.Level.ParagraphField != "" && node.Description != "" {
			f.blankSeen = true
		}
		stack = append(stack, f)

		if b.logger != nil {
			b.logger.Printf("line %d: opened %s %q (depth %d)", lineNo, m.Level.Name, node.Title, len(stack)-1)
		}
	}

	// The active path is discarded; all nodes stay attached.
	return root, nil
}

// newNode creates a node for a matched level. The first capture group feeds
// the title (the whole line if the pattern captured nothing); any remaining
// groups are joined and seed the description straight from the heading line.
func newNode(m Match, line string) *Node {
	n := &Node{LevelName: m.Level.Name}
	switch len(m.Groups) {
	case 0:
		n.Title = line
	case 1:
		n.Title = m.Groups[0]
	default:
		n.Title = m.Groups[0]
		n.Description = strings.TrimSpace(strings.Join(m.Groups[1:], " "))
	}
	return n
}

// freeText routes a non-marker line into the innermost open node. Under the
// synthetic root (before any level has opened) such lines are pre-structure
// noise and are discarded; callers needing preamble capture must declare a
// top-level marker for it.
func (b *Builder) freeText(stack []frame, line string) {
	top := &stack[len(stack)-1]

	if line == "" {
		top.blankSeen = true
		top.paraOpen = false
		return
	}
	if top.root {
		return
	}

	if top.level.ParagraphField != "" && top.blankSeen {
		if top.paraOpen {
			top.node.appendToLastParagraph(line)
		} else {
			top.node.Paragraphs = append(top.node.Paragraphs, line)
			top.paraOpen = true
		}
		return
	}
	top.node.appendDescription(line)
}
