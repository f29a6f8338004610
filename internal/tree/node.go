// Package tree builds a hierarchical document tree from flat text by
// classifying lines against a validated schema, and prunes the finished tree
// into a JSON-compatible mapping.
package tree

// Node is one instance of a schema level found in the document. Nodes are
// exclusively owned by their parent and carry no upward reference; upward
// traversal during a build uses the builder's transient stack.
type Node struct {
	// LevelName is the schema level that produced this node, or the
	// schema's root name for the synthetic root.
	LevelName string

	// Title is the text captured by the level pattern's first group.
	Title string

	// Description holds free text accumulated before the first paragraph
	// boundary, or all free text for non-paragraph levels.
	Description string

	// Paragraphs holds discrete paragraph entries, populated only for
	// paragraph-collecting levels.
	Paragraphs []string

	// Children holds nested nodes in document order.
	Children []*Node
}

// appendDescription adds a free-text line to the description, space-joined.
func (n *Node) appendDescription(line string) {
	if n.Description == "" {
		n.Description = line
		return
	}
	n.Description += " " + line
}

// appendToLastParagraph continues the most recent paragraph entry.
func (n *Node) appendToLastParagraph(line string) {
	last := len(n.Paragraphs) - 1
	n.Paragraphs[last] += " " + line
}
