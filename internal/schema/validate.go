package schema

import (
	"fmt"
	"regexp"
)

// ConfigError reports a structurally invalid schema. It is raised at schema
// construction time, before any text is processed, and indicates a
// configuration defect the caller must fix.
type ConfigError struct {
	Level  string // offending level name, if any
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Level != "" {
		return fmt.Sprintf("invalid schema: level %q: %s", e.Level, e.Reason)
	}
	return fmt.Sprintf("invalid schema: %s", e.Reason)
}

// validate checks structural soundness and compiles patterns. Checks run in a
// fixed order and the first violation is returned.
func (s *Schema) validate() error {
	// 1. Every parent reference must resolve to a declared level.
	for _, lv := range s.levels {
		if lv.Parent == "" {
			continue
		}
		if _, ok := s.index[lv.Parent]; !ok {
			return &ConfigError{Level: lv.Name, Reason: fmt.Sprintf("unknown parent %q", lv.Parent)}
		}
	}

	// 2. The parent graph must be acyclic.
	if name, ok := s.findCycle(); ok {
		return &ConfigError{Level: name, Reason: "cyclic hierarchy"}
	}

	// 3. At least one level must be a root.
	hasRoot := false
	for _, lv := range s.levels {
		if lv.Parent == "" {
			hasRoot = true
			break
		}
	}
	if !hasRoot {
		return &ConfigError{Reason: "no root level: every level declares a parent"}
	}

	// 4. Every pattern must compile. Patterns are anchored to the whole
	// line so a level marker cannot hide inside body text.
	for i, lv := range s.levels {
		re, err := regexp.Compile("^(?:" + lv.Pattern + ")$")
		if err != nil {
			return &ConfigError{Level: lv.Name, Reason: fmt.Sprintf("invalid pattern: %v", err)}
		}
		s.compiled[i] = re
	}

	// 5. Within a level, output field names must not collide.
	for _, lv := range s.levels {
		if err := checkFieldCollision(lv); err != nil {
			return err
		}
	}
	return nil
}

// findCycle walks parent links depth-first with a visiting set and returns a
// level on a cycle, if any.
func (s *Schema) findCycle() (string, bool) {
	const (
		unseen = iota
		visiting
		done
	)
	state := make(map[string]int, len(s.levels))

	var walk func(name string) (string, bool)
	walk = func(name string) (string, bool) {
		switch state[name] {
		case visiting:
			return name, true
		case done:
			return "", false
		}
		state[name] = visiting
		lv := s.levels[s.index[name]]
		if lv.Parent != "" {
			if bad, found := walk(lv.Parent); found {
				return bad, true
			}
		}
		state[name] = done
		return "", false
	}

	for _, lv := range s.levels {
		if bad, found := walk(lv.Name); found {
			return bad, true
		}
	}
	return "", false
}

func checkFieldCollision(lv Level) error {
	if lv.TitleField == "" {
		return &ConfigError{Level: lv.Name, Reason: "title field cannot be empty"}
	}
	seen := map[string]bool{lv.TitleField: true}
	for _, f := range []string{lv.DescriptionField, lv.ParagraphField} {
		if f == "" {
			continue
		}
		if seen[f] {
			return &ConfigError{Level: lv.Name, Reason: fmt.Sprintf("field collision: %q used twice", f)}
		}
		seen[f] = true
	}
	return nil
}
