// Package css extracts rendering engine text defaults from a deck
// stylesheet. Only a small dialect is understood: simple element and class
// selectors that map onto slide content kinds, carrying the font properties
// the autofit machinery cares about. Everything outside the dialect is
// skipped with a debug diagnostic, never an error - the stylesheet mostly
// targets host side rendering and is not authored for this engine.
package css

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Style holds the recognized font properties for one content kind. Zero
// fields mean "not set".
type Style struct {
	FontFamily    string
	FontSizePT    float64
	FontWeight    int
	LineHeightPct float64 // 100 is single spacing
}

func (s *Style) merge(o Style) {
	if len(o.FontFamily) != 0 {
		s.FontFamily = o.FontFamily
	}
	if o.FontSizePT > 0 {
		s.FontSizePT = o.FontSizePT
	}
	if o.FontWeight > 0 {
		s.FontWeight = o.FontWeight
	}
	if o.LineHeightPct > 0 {
		s.LineHeightPct = o.LineHeightPct
	}
}

// Defaults are per content kind style seeds for the rendering engine.
type Defaults struct {
	Title    Style
	Subtitle Style
	Body     Style
	Notes    Style
}

// target maps a selector onto the style it seeds, nil when the selector
// addresses nothing the engine renders.
func (d *Defaults) target(sel string) *Style {
	switch strings.ToLower(strings.TrimSpace(sel)) {
	case ".title", "h1":
		return &d.Title
	case ".subtitle", "h2":
		return &d.Subtitle
	case ".body", "body", "p":
		return &d.Body
	case ".notes":
		return &d.Notes
	}
	return nil
}

// Parser parses stylesheets into engine defaults.
type Parser struct {
	log *zap.Logger
}

func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css")}
}

// Parse extracts defaults from stylesheet text. Later rules win over
// earlier ones per property, matching cascade expectations.
func (p *Parser) Parse(data []byte) *Defaults {
	d := &Defaults{}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	var pending []string
	for {
		gt, _, tok := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				p.log.Debug("stylesheet parse stopped", zap.Error(err))
			}
			return d

		case css.BeginAtRuleGrammar:
			p.skipAtRuleBlock(parser)

		case css.QualifiedRuleGrammar:
			pending = append(pending, selectorNames(tok, parser.Values())...)

		case css.BeginRulesetGrammar:
			pending = append(pending, selectorNames(tok, parser.Values())...)
			style := p.parseDeclarations(parser)
			for _, sel := range pending {
				if t := d.target(sel); t != nil {
					t.merge(style)
				} else {
					p.log.Debug("selector does not address slide content, skipping", zap.String("selector", sel))
				}
			}
			pending = nil
		}
	}
}

// selectorNames rebuilds selector text from token data and splits grouped
// selectors.
func selectorNames(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var out []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		if s = strings.TrimSpace(s); len(s) != 0 {
			out = append(out, s)
		}
	}
	return out
}

// parseDeclarations consumes declarations until the ruleset ends, keeping
// the recognized font properties.
func (p *Parser) parseDeclarations(parser *css.Parser) Style {
	var style Style
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return style

		case css.DeclarationGrammar:
			name := strings.ToLower(string(data))
			values := parser.Values()
			switch name {
			case "font-family":
				style.FontFamily = firstFamily(values)
			case "font-size":
				if pt, ok := p.fontSizePT(values); ok {
					style.FontSizePT = pt
				}
			case "font-weight":
				if w, ok := fontWeight(values); ok {
					style.FontWeight = w
				}
			case "line-height":
				if pct, ok := p.lineHeightPct(values); ok {
					style.LineHeightPct = pct
				}
			}
		}
	}
}

// firstFamily returns the first family of a font-family list, unquoted.
// Multi word families arrive as several ident tokens and are rejoined.
func firstFamily(values []css.Token) string {
	var parts []string
	for _, v := range values {
		switch v.TokenType {
		case css.CommaToken:
			return unquote(strings.Join(parts, " "))
		case css.StringToken, css.IdentToken:
			parts = append(parts, string(v.Data))
		}
	}
	return unquote(strings.Join(parts, " "))
}

func (p *Parser) fontSizePT(values []css.Token) (float64, bool) {
	for _, v := range values {
		if v.TokenType != css.DimensionToken {
			continue
		}
		num, unit := parseDimension(string(v.Data))
		switch unit {
		case "pt":
			return num, num > 0
		case "px":
			return num * 72 / 96, num > 0
		}
		p.log.Debug("unsupported font-size unit, skipping", zap.String("value", string(v.Data)))
		return 0, false
	}
	return 0, false
}

func fontWeight(values []css.Token) (int, bool) {
	for _, v := range values {
		switch v.TokenType {
		case css.NumberToken:
			if n, err := strconv.Atoi(string(v.Data)); err == nil && n > 0 {
				return n, true
			}
		case css.IdentToken:
			switch strings.ToLower(string(v.Data)) {
			case "bold":
				return 700, true
			case "normal":
				return 400, true
			}
		}
	}
	return 0, false
}

func (p *Parser) lineHeightPct(values []css.Token) (float64, bool) {
	for _, v := range values {
		switch v.TokenType {
		case css.NumberToken:
			// unitless multiplier
			if n, err := strconv.ParseFloat(string(v.Data), 64); err == nil && n > 0 {
				return n * 100, true
			}
		case css.PercentageToken:
			if n, err := strconv.ParseFloat(strings.TrimSuffix(string(v.Data), "%"), 64); err == nil && n > 0 {
				return n, true
			}
		case css.DimensionToken:
			p.log.Debug("unsupported line-height unit, skipping", zap.String("value", string(v.Data)))
			return 0, false
		}
	}
	return 0, false
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseDimension extracts numeric value and unit from a dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}
	if numEnd == 0 {
		return 0, ""
	}
	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	return num, strings.ToLower(s[numEnd:])
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
