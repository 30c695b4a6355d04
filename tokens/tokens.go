// Package tokens rewrites design-token tables embedded in program source -
// nested key/value mappings of quoted strings - adding a feature-gated key
// with oklch() equivalents for every hex color entry.
//
// Unlike the css package this works on raw text with search heuristics and
// never builds a syntax tree. It assumes one mapping literal per file and
// conventional one-tab indentation; unusual formatting can misplace the
// generated block.
package tokens

import (
	"bytes"
	"errors"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"oklchify/oklch"
)

// GateKey is the literal key the generated mapping is stored under. Its
// presence anywhere in a document marks the document as processed.
const GateKey = "@supports " + oklch.SupportsCondition

// generatedComment is the fixed explanatory line written above the block.
const generatedComment = "// OKLCH equivalents generated from the hex values above, do not edit."

// indentUnit matches the conventional indentation of token tables.
const indentUnit = "\t"

var (
	// ErrAlreadyProcessed signals the gate key already exists in the document.
	ErrAlreadyProcessed = errors.New("document already processed")
	// ErrNothingToDo signals no eligible hex entries were found.
	ErrNothingToDo = errors.New("no hex color entries found")
	// ErrNoInsertionPoint signals the splice anchor could not be located.
	ErrNoInsertionPoint = errors.New("unable to locate insertion point")
)

// pairPattern matches 'key': 'value' shaped entries with single or double
// quotes. Eligibility of the value is checked separately.
var pairPattern = regexp.MustCompile(`['"]([^'"]+)['"]\s*:\s*['"]([^'"]*)['"]`)

// Transform returns a copy of src with the generated block spliced in. On
// any returned error src is to be left untouched; ErrAlreadyProcessed and
// ErrNothingToDo are no-op conditions rather than failures.
func Transform(src []byte, convert oklch.ConvertFunc, log *zap.Logger) ([]byte, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if convert == nil {
		convert = oklch.ConvertValue
	}
	log = log.Named("tokens-transform")

	// Pure substring check, no parsing. The exact key literal is written by
	// us, so its presence means an earlier run already succeeded.
	if bytes.Contains(src, []byte(GateKey)) {
		return nil, ErrAlreadyProcessed
	}

	// Scan for eligible pairs. On duplicate keys the last occurrence wins;
	// lastHex remembers the final eligible hex literal in scan order, it
	// anchors the insertion offset below.
	converted := make(map[string]string)
	var lastHex string
	for _, m := range pairPattern.FindAllSubmatch(src, -1) {
		key, value := string(m[1]), string(m[2])
		if !oklch.IsHexColor(value) {
			continue
		}
		hex := strings.TrimSpace(value)
		out, ok := convert(hex)
		if !ok {
			log.Warn("Unable to convert color, skipping entry", zap.String("key", key), zap.String("value", value))
			continue
		}
		converted[key] = out
		lastHex = hex
	}
	if len(converted) == 0 {
		return nil, ErrNothingToDo
	}

	// Entries are emitted in ascending key order - a deliberate
	// normalization for reproducible diffs.
	keys := make([]string, 0, len(converted))
	for k := range converted {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	block := composeBlock(keys, converted)

	offset, err := insertionOffset(src, lastHex)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(src)+len(block))
	out = append(out, src[:offset]...)
	out = append(out, block...)
	out = append(out, src[offset:]...)

	log.Debug("Transformed token table", zap.Int("entries", len(keys)), zap.Int("offset", offset))
	return out, nil
}

// composeBlock renders the gated mapping one nesting level deeper than the
// enclosing table: blank line, comment, opener, sorted entries, closer.
func composeBlock(keys []string, converted map[string]string) string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(indentUnit + generatedComment + "\n")
	sb.WriteString(indentUnit + "'" + GateKey + "': {\n")
	for _, k := range keys {
		sb.WriteString(indentUnit + indentUnit + "'" + k + "': '" + converted[k] + "',\n")
	}
	sb.WriteString(indentUnit + "},\n")
	return sb.String()
}

// insertionOffset finds where the block goes: after the line holding the
// last raw occurrence of the anchor hex literal. A closing brace on that
// same line moves the offset just before the brace so the block still lands
// inside the mapping.
func insertionOffset(src []byte, lastHex string) (int, error) {
	idx := bytes.LastIndex(src, []byte(lastHex))
	if idx < 0 {
		return 0, ErrNoInsertionPoint
	}

	rel := bytes.IndexByte(src[idx:], '\n')
	if rel < 0 {
		// Anchor sits on the final unterminated line.
		if brace := bytes.IndexByte(src[idx:], '}'); brace >= 0 {
			return idx + brace, nil
		}
		return len(src), nil
	}

	lineEnd := idx + rel
	if brace := bytes.IndexByte(src[idx:lineEnd], '}'); brace >= 0 {
		return idx + brace, nil
	}
	return lineEnd + 1, nil
}
