package css

import (
	"fmt"
	"io"
	"strings"
)

// Declaration is a single "property: value" pair. Value text is kept as
// written (whitespace between tokens normalized to single spaces), the
// transformer never rewrites it in place.
type Declaration struct {
	Property string
	Value    string
}

// IsCustomProperty reports whether the declaration defines a CSS custom
// property (--name).
func (d Declaration) IsCustomProperty() bool {
	return strings.HasPrefix(d.Property, "--")
}

// Rule is a selector with its ordered declarations. Grouped selectors
// ("h1, h2") are kept raw and unsplit so generated siblings share the exact
// selector text.
type Rule struct {
	Selector string
	Decls    []Declaration
}

// GetProperty returns the last declaration for a property, if any.
func (r *Rule) GetProperty(name string) (Declaration, bool) {
	for i := len(r.Decls) - 1; i >= 0; i-- {
		if r.Decls[i].Property == name {
			return r.Decls[i], true
		}
	}
	return Declaration{}, false
}

// AtRule is an @-rule. Block at-rules (@media, @supports) own ordered child
// items, statement at-rules (@import, @charset) carry a prelude only.
type AtRule struct {
	Name    string // including leading "@"
	Prelude string // condition or statement text after the name
	Block   bool
	Items   []Item
}

// Item is a single node in a stylesheet or inside a block at-rule.
// Exactly one of the fields is non-nil.
type Item struct {
	Rule    *Rule
	AtRule  *AtRule
	Decl    *Declaration // top-level custom property declared outside any rule
	Comment *string      // raw comment text including delimiters
}

// Stylesheet is an ordered document tree that serializes back to canonical
// CSS text. Canonical output is a fixed point: parsing and serializing it
// again yields byte-identical text.
type Stylesheet struct {
	Items []Item
}

const indentUnit = "  "

// WriteTo writes the stylesheet in canonical form, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := writeItems(cw, s.Items, "")
	return cw.n, err
}

// String returns the canonical CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	writeItems(&countingWriter{w: &sb}, s.Items, "") //nolint:errcheck
	return sb.String()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

func writeItems(w io.Writer, items []Item, indent string) error {
	for i, item := range items {
		if i > 0 {
			if _, err := fmt.Fprint(w, "\n"); err != nil {
				return err
			}
		}
		if err := writeItem(w, item, indent); err != nil {
			return err
		}
	}
	return nil
}

func writeItem(w io.Writer, item Item, indent string) error {
	switch {
	case item.Rule != nil:
		return writeRule(w, item.Rule, indent)
	case item.AtRule != nil:
		return writeAtRule(w, item.AtRule, indent)
	case item.Decl != nil:
		_, err := fmt.Fprintf(w, "%s%s: %s;\n", indent, item.Decl.Property, item.Decl.Value)
		return err
	case item.Comment != nil:
		_, err := fmt.Fprintf(w, "%s%s\n", indent, *item.Comment)
		return err
	}
	return nil
}

func writeRule(w io.Writer, rule *Rule, indent string) error {
	if _, err := fmt.Fprintf(w, "%s%s {\n", indent, rule.Selector); err != nil {
		return err
	}
	for _, d := range rule.Decls {
		if _, err := fmt.Fprintf(w, "%s%s%s: %s;\n", indent, indentUnit, d.Property, d.Value); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s}\n", indent)
	return err
}

func writeAtRule(w io.Writer, at *AtRule, indent string) error {
	if !at.Block {
		if len(at.Prelude) > 0 {
			_, err := fmt.Fprintf(w, "%s%s %s;\n", indent, at.Name, at.Prelude)
			return err
		}
		_, err := fmt.Fprintf(w, "%s%s;\n", indent, at.Name)
		return err
	}

	if len(at.Prelude) > 0 {
		if _, err := fmt.Fprintf(w, "%s%s %s {\n", indent, at.Name, at.Prelude); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintf(w, "%s%s {\n", indent, at.Name); err != nil {
		return err
	}
	if err := writeItems(w, at.Items, indent+indentUnit); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s}\n", indent)
	return err
}
