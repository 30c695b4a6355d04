// Package css parses stylesheets into an ordered, content-preserving tree
// and serializes the tree back to canonical text.
package css

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into Stylesheet trees.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text. The optional source parameter identifies what is
// being parsed (for debug logging). A malformed stylesheet returns an error
// and no tree - the caller is expected to leave the source untouched.
func (p *Parser) Parse(data []byte, source ...string) (*Stylesheet, error) {
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	items, err := p.parseItems(parser, true)
	if err != nil {
		return nil, err
	}
	return &Stylesheet{Items: items}, nil
}

// parseItems consumes grammar events until end of input (top level) or the
// end of the enclosing block at-rule.
func (p *Parser) parseItems(parser *css.Parser, topLevel bool) ([]Item, error) {
	items := make([]Item, 0)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			err := parser.Err()
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("malformed stylesheet: %w", err)
			}
			// An unterminated block hits EOF below the top level, the
			// collected items still form a usable tree.
			return items, nil

		case css.EndAtRuleGrammar:
			if topLevel {
				p.log.Debug("Stray at-rule terminator, ignoring")
				continue
			}
			return items, nil

		case css.CommentGrammar:
			c := string(data)
			items = append(items, Item{Comment: &c})

		case css.AtRuleGrammar:
			// Statement at-rule without a block (@import, @charset).
			items = append(items, Item{AtRule: &AtRule{
				Name:    string(data),
				Prelude: joinPrelude(parser.Values()),
			}})

		case css.BeginAtRuleGrammar:
			at := &AtRule{
				Name:    string(data),
				Prelude: joinPrelude(parser.Values()),
				Block:   true,
			}
			children, err := p.parseItems(parser, false)
			if err != nil {
				return nil, err
			}
			at.Items = children
			p.log.Debug("Parsed at-rule block", zap.String("name", at.Name), zap.String("prelude", at.Prelude), zap.Int("items", len(at.Items)))
			items = append(items, Item{AtRule: at})

		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			rule := &Rule{Selector: selectorText(data, parser.Values())}
			if gt == css.BeginRulesetGrammar {
				if err := p.parseDeclarations(parser, rule); err != nil {
					return nil, err
				}
			}
			items = append(items, Item{Rule: rule})

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			// Declaration outside any rule - a top-level custom property.
			items = append(items, Item{Decl: &Declaration{
				Property: string(data),
				Value:    joinTokens(parser.Values()),
			}})
		}
	}
}

// parseDeclarations collects declarations until the end of the ruleset.
func (p *Parser) parseDeclarations(parser *css.Parser, rule *Rule) error {
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			err := parser.Err()
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("malformed rule %q: %w", rule.Selector, err)
			}
			return nil

		case css.EndRulesetGrammar:
			return nil

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			rule.Decls = append(rule.Decls, Declaration{
				Property: string(data),
				Value:    joinTokens(parser.Values()),
			})
		}
	}
}

// selectorText builds the raw selector from token data, with whitespace runs
// collapsed to single spaces. Grouped selectors are deliberately not split.
func selectorText(data []byte, values []css.Token) string {
	tokens := make([]css.Token, 0, len(values)+1)
	if len(data) > 0 {
		tokens = append(tokens, css.Token{TokenType: css.IdentToken, Data: data})
	}
	tokens = append(tokens, values...)
	return joinTokens(tokens)
}

// joinTokens concatenates token data, collapsing whitespace runs to single
// spaces and trimming the ends. Custom property values arrive as raw tokens
// that may carry their own surrounding whitespace, hence the final trim.
func joinTokens(tokens []css.Token) string {
	return join(tokens, false)
}

// joinPrelude joins at-rule prelude tokens. The tokenizer swallows the
// whitespace between a colon and a following function token, so a colon in a
// prelude always gets a space after it: "(color:oklch(0 0 0))" and
// "(color: oklch(0 0 0))" both normalize to the latter. Gate detection and
// the serialized fixed point rely on this. Selectors must not use this join,
// a pseudo-class colon stays tight.
func joinPrelude(tokens []css.Token) string {
	return join(tokens, true)
}

func join(tokens []css.Token, spaceAfterColon bool) string {
	var sb strings.Builder
	pendingSpace := false
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			pendingSpace = sb.Len() > 0
			continue
		}
		if pendingSpace {
			sb.WriteByte(' ')
			pendingSpace = false
		}
		sb.Write(t.Data)
		if spaceAfterColon && t.TokenType == css.ColonToken {
			pendingSpace = true
		}
	}
	return strings.TrimSpace(sb.String())
}
