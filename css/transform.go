package css

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"oklchify/oklch"
)

// ErrAlreadyProcessed signals that the document already carries generated
// blocks and was left untouched.
var ErrAlreadyProcessed = errors.New("document already processed")

// aggregateSelector scopes the block collecting top-level custom properties.
const aggregateSelector = ":root"

// Transformer pairs every rule holding hex color declarations with a sibling
// rule of oklch() equivalents gated behind @supports. Originals are never
// touched, so capable consumers pick the perceptual values and everything
// else falls back to hex.
type Transformer struct {
	log     *zap.Logger
	convert oklch.ConvertFunc
}

// NewTransformer creates a transformer using the given converter.
func NewTransformer(convert oklch.ConvertFunc, log *zap.Logger) *Transformer {
	if log == nil {
		log = zap.NewNop()
	}
	if convert == nil {
		convert = oklch.ConvertValue
	}
	return &Transformer{log: log.Named("css-transform"), convert: convert}
}

// Transform mutates sheet in place and returns the number of declarations
// converted. A document that already contains a generated gate anywhere
// returns ErrAlreadyProcessed and stays untouched. Zero conversions with a
// nil error means there was nothing to do.
func (t *Transformer) Transform(sheet *Stylesheet) (int, error) {
	if containsGate(sheet.Items) {
		return 0, ErrAlreadyProcessed
	}

	// Read pass: decide every insertion before mutating anything.
	plan := make(map[*Rule][]Declaration)
	t.collectRules(sheet.Items, plan)
	topLevel := t.collectTopLevel(sheet.Items)

	if len(plan) == 0 && len(topLevel) == 0 {
		return 0, nil
	}

	// Mutation pass: rebuild item lists, inserting each gate block right
	// after its source rule within the same container.
	converted := 0
	sheet.Items = insertGates(sheet.Items, plan, &converted)

	if len(topLevel) > 0 {
		converted += len(topLevel)
		sheet.Items = append(sheet.Items, gateItem(aggregateSelector, topLevel))
	}

	t.log.Debug("Transformed stylesheet", zap.Int("rules", len(plan)), zap.Int("rootProperties", len(topLevel)), zap.Int("converted", converted))
	return converted, nil
}

// isGate reports whether the at-rule is one of our generated @supports
// containers. Detection matches the canonical condition text exactly.
func isGate(at *AtRule) bool {
	return at.Block && at.Name == "@supports" && strings.TrimSpace(at.Prelude) == oklch.SupportsCondition
}

func containsGate(items []Item) bool {
	for _, item := range items {
		if item.AtRule == nil {
			continue
		}
		if isGate(item.AtRule) || containsGate(item.AtRule.Items) {
			return true
		}
	}
	return false
}

// collectRules records the eligible set of every rule reachable outside a
// gate container. Rules under a gate were generated by an earlier run and
// are never re-collected.
func (t *Transformer) collectRules(items []Item, plan map[*Rule][]Declaration) {
	for _, item := range items {
		switch {
		case item.Rule != nil:
			if eligible := t.eligibleSet(item.Rule); len(eligible) > 0 {
				plan[item.Rule] = eligible
			}
		case item.AtRule != nil && item.AtRule.Block && !isGate(item.AtRule):
			t.collectRules(item.AtRule.Items, plan)
		}
	}
}

// eligibleSet maps a rule's hex declarations through the converter, keeping
// declaration order. Conversion failures are logged and dropped, a partial
// group is still generated.
func (t *Transformer) eligibleSet(rule *Rule) []Declaration {
	var out []Declaration
	for _, d := range rule.Decls {
		if !oklch.IsHexColor(d.Value) {
			continue
		}
		value, ok := t.convert(strings.TrimSpace(d.Value))
		if !ok {
			t.log.Warn("Unable to convert color, skipping declaration", zap.String("selector", rule.Selector), zap.String("property", d.Property), zap.String("value", d.Value))
			continue
		}
		out = append(out, Declaration{Property: d.Property, Value: value})
	}
	return out
}

// collectTopLevel converts eligible declarations sitting directly at the
// document root - custom properties declared outside any selector.
func (t *Transformer) collectTopLevel(items []Item) []Declaration {
	var out []Declaration
	for _, item := range items {
		if item.Decl == nil || !oklch.IsHexColor(item.Decl.Value) {
			continue
		}
		value, ok := t.convert(strings.TrimSpace(item.Decl.Value))
		if !ok {
			t.log.Warn("Unable to convert color, skipping top-level declaration", zap.String("property", item.Decl.Property), zap.String("value", item.Decl.Value))
			continue
		}
		out = append(out, Declaration{Property: item.Decl.Property, Value: value})
	}
	return out
}

// insertGates rebuilds an item list, placing a gate block immediately after
// every planned rule. Containers are processed recursively so nested rules
// get their gate inside the same container, never hoisted to the root.
func insertGates(items []Item, plan map[*Rule][]Declaration, converted *int) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.AtRule != nil && item.AtRule.Block && !isGate(item.AtRule) {
			item.AtRule.Items = insertGates(item.AtRule.Items, plan, converted)
		}
		out = append(out, item)
		if item.Rule != nil {
			if decls, ok := plan[item.Rule]; ok {
				*converted += len(decls)
				out = append(out, gateItem(item.Rule.Selector, decls))
			}
		}
	}
	return out
}

func gateItem(selector string, decls []Declaration) Item {
	return Item{AtRule: &AtRule{
		Name:    "@supports",
		Prelude: oklch.SupportsCondition,
		Block:   true,
		Items: []Item{{Rule: &Rule{
			Selector: selector,
			Decls:    decls,
		}}},
	}}
}
