package tree

import "github.com/alexvargashn/doc23/internal/schema"

// Prune renders a completed tree as a nested JSON-compatible mapping keyed by
// each level's declared field names, dropping empty descriptions, empty
// paragraph lists and empty children lists. It is a pure transform: the tree
// is not modified, no error is possible, and pruning its own output again
// yields the same result.
func Prune(root *Node, s *schema.Schema) map[string]any {
	body := map[string]any{
		s.DescriptionField(): root.Description,
		s.SectionsField():    renderChildren(root.Children, s),
	}
	out := pruneEmpty(map[string]any{s.RootName(): body})
	m, _ := out.(map[string]any)
	if m == nil {
		// Even a fully empty document keeps its root key.
		m = map[string]any{s.RootName(): map[string]any{}}
	} else if _, ok := m[s.RootName()]; !ok {
		m[s.RootName()] = map[string]any{}
	}
	return m
}

func renderChildren(children []*Node, s *schema.Schema) []any {
	out := make([]any, 0, len(children))
	for _, c := range children {
		out = append(out, render(c, s))
	}
	return out
}

// render maps one node onto its level's declared field names. Levels without
// their own description or sections field fall back to the schema defaults so
// accumulated content is never silently lost.
func render(n *Node, s *schema.Schema) map[string]any {
	lv, _ := s.Lookup(n.LevelName)

	descField := lv.DescriptionField
	if descField == "" {
		descField = s.DescriptionField()
	}
	sectionsField := lv.SectionsField
	if sectionsField == "" {
		sectionsField = s.SectionsField()
	}

	out := map[string]any{
		lv.TitleField: n.Title,
		descField:     n.Description,
	}
	if lv.ParagraphField != "" {
		out[lv.ParagraphField] = paragraphsAsAny(n.Paragraphs)
	}
	if len(n.Children) > 0 || !lv.Leaf {
		out[sectionsField] = renderChildren(n.Children, s)
	}
	return out
}

func paragraphsAsAny(paragraphs []string) []any {
	out := make([]any, 0, len(paragraphs))
	for _, p := range paragraphs {
		out = append(out, p)
	}
	return out
}

// pruneEmpty recursively drops empty strings, empty sequences and empty
// mappings. Applying it to its own output is a no-op.
func pruneEmpty(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if p := pruneEmpty(item); p != nil {
				out[k] = p
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			if p := pruneEmpty(item); p != nil {
				out = append(out, p)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case string:
		if val == "" {
			return nil
		}
		return val
	default:
		return val
	}
}
