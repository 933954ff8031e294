package css

import "strings"

// CombinatorKind discriminates how a compound selector relates to the one
// before it in a selector chain.
type CombinatorKind uint8

const (
	CombinatorDescendant CombinatorKind = iota // "a b"
	CombinatorChild                            // "a > b"
	CombinatorAdjacent                         // "a + b"
	CombinatorSibling                          // "a ~ b"
)

// AttrOp discriminates an attribute-selector comparison.
type AttrOp uint8

const (
	AttrExists    AttrOp = iota // [attr]
	AttrEquals                  // [attr=v]
	AttrIncludes                // [attr~=v]
	AttrDash                    // [attr|=v]
	AttrPrefix                  // [attr^=v]
	AttrSuffix                  // [attr$=v]
	AttrSubstring                // [attr*=v]
)

type AttrSelector struct {
	Name  string
	Op    AttrOp
	Value string
}

// CompoundSelector is one type+class+id+attr+pseudo cluster, e.g. "div.card#x:hover".
type CompoundSelector struct {
	Type       string // "" means no type constraint; "*" is the universal selector
	Classes    []string
	ID         string
	Attrs      []AttrSelector
	Pseudo     []string // "hover", "first-child", "last-child", "link", "visited"
	NthChild   *NthExpr // set when Pseudo contains "nth-child"
	Combinator CombinatorKind
}

// NthExpr is the parsed form of nth-child(an+b).
type NthExpr struct {
	A, B int
}

// Selector is a chain of compound selectors; Selector[0] has no meaningful
// Combinator (it is the leftmost ancestor), each subsequent entry's
// Combinator relates it to the previous entry.
type Selector []CompoundSelector

// Declaration is one "property: value" pair.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Rule is a selector list sharing one declaration block.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
	SourceOrder  int
}

// Stylesheet is an ordered list of rules.
type Stylesheet struct {
	Rules []Rule
}

// Parse parses a stylesheet. Malformed rules are skipped rather than
// aborting the whole parse; Parse never panics.
func Parse(src string) Stylesheet {
	p := &parser{toks: tokenizeAll(src)}
	var sheet Stylesheet
	order := 0
	for !p.atEnd() {
		p.skipWS()
		if p.atEnd() {
			break
		}
		if p.peek().Kind == TokenAtKeyword {
			p.skipAtRule()
			continue
		}
		rule, ok := p.parseRule(order)
		if ok {
			sheet.Rules = append(sheet.Rules, rule)
			order++
		}
	}
	return sheet
}

// ParseDeclarations parses a bare declaration list (no selector, no
// braces), matching an inline style="..." attribute's grammar.
func ParseDeclarations(src string) []Declaration {
	p := &parser{toks: tokenizeAll(src)}
	return p.parseDeclarationList(false)
}

func tokenizeAll(src string) []Token {
	tz := NewTokenizer(src)
	var toks []Token
	for {
		tok := tz.Next()
		if tok.Kind == TokenEOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

type parser struct {
	toks []Token
	pos  int
}

func (p *parser) atEnd() bool  { return p.pos >= len(p.toks) }
func (p *parser) peek() Token {
	if p.atEnd() {
		return Token{Kind: TokenEOF}
	}
	return p.toks[p.pos]
}
func (p *parser) advance() Token {
	tok := p.peek()
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

func (p *parser) skipWS() {
	for !p.atEnd() && p.peek().Kind == TokenWhitespace {
		p.pos++
	}
}

// skipAtRule discards tokens until the end of an at-rule: either a
// terminating ';' at the top level, or a balanced {...} block.
func (p *parser) skipAtRule() {
	depth := 0
	for !p.atEnd() {
		tok := p.advance()
		switch tok.Kind {
		case TokenLBrace:
			depth++
		case TokenRBrace:
			depth--
			if depth <= 0 {
				return
			}
		case TokenSemicolon:
			if depth == 0 {
				return
			}
		}
	}
}

func (p *parser) parseRule(order int) (Rule, bool) {
	selectorToks := p.collectUntil(TokenLBrace)
	if p.atEnd() {
		return Rule{}, false
	}
	p.advance() // consume '{'

	selectors := parseSelectorList(selectorToks)
	decls := p.parseDeclarationList(true)
	if selectors == nil {
		return Rule{}, false
	}
	return Rule{Selectors: selectors, Declarations: decls, SourceOrder: order}, true
}

// collectUntil returns the tokens up to (not including) the next token of
// kind stop, advancing past them; stops at EOF too.
func (p *parser) collectUntil(stop TokenKind) []Token {
	var out []Token
	for !p.atEnd() && p.peek().Kind != stop {
		out = append(out, p.advance())
	}
	return out
}

// parseDeclarationList parses "prop: value; prop2: value2 !important" up to
// a closing '}' (if expectBrace) or to EOF.
func (p *parser) parseDeclarationList(expectBrace bool) []Declaration {
	var decls []Declaration
	for !p.atEnd() {
		p.skipWS()
		if p.atEnd() {
			break
		}
		if expectBrace && p.peek().Kind == TokenRBrace {
			p.advance()
			break
		}
		if p.peek().Kind == TokenSemicolon {
			p.advance()
			continue
		}
		propToks := p.collectUntil(TokenColon)
		if p.atEnd() {
			break
		}
		p.advance() // ':'
		prop := joinIdent(propToks)
		if prop == "" {
			continue
		}
		var valToks []Token
		for !p.atEnd() && p.peek().Kind != TokenSemicolon && !(expectBrace && p.peek().Kind == TokenRBrace) {
			valToks = append(valToks, p.advance())
		}
		value, important := renderValue(valToks)
		decls = append(decls, Declaration{Property: strings.ToLower(prop), Value: value, Important: important})
	}
	return decls
}

func joinIdent(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		if t.Kind == TokenWhitespace {
			continue
		}
		b.WriteString(tokenText(t))
	}
	return strings.TrimSpace(b.String())
}

func tokenText(t Token) string {
	switch t.Kind {
	case TokenIdent, TokenString, TokenURL:
		return t.Text
	case TokenHash:
		return "#" + t.Text
	case TokenDelim:
		return string(t.Delim)
	default:
		return ""
	}
}

// renderValue reassembles a declaration's value tokens into a string,
// stripping a trailing "!important" and reporting whether it was present.
func renderValue(toks []Token) (string, bool) {
	important := false
	n := len(toks)
	for n > 0 && toks[n-1].Kind == TokenWhitespace {
		n--
	}
	if n >= 2 {
		last := toks[n-1]
		prev := toks[n-2]
		if last.Kind == TokenIdent && strings.EqualFold(last.Text, "important") && prev.Kind == TokenDelim && prev.Delim == '!' {
			important = true
			n -= 2
			for n > 0 && toks[n-1].Kind == TokenWhitespace {
				n--
			}
		}
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		t := toks[i]
		switch t.Kind {
		case TokenWhitespace:
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
		case TokenIdent:
			b.WriteString(t.Text)
		case TokenString:
			b.WriteByte('"')
			b.WriteString(t.Text)
			b.WriteByte('"')
		case TokenURL:
			b.WriteString("url(")
			b.WriteString(t.Text)
			b.WriteByte(')')
		case TokenHash:
			b.WriteByte('#')
			b.WriteString(t.Text)
		case TokenNumber:
			b.WriteString(formatFloat(t.Num))
		case TokenPercentage:
			b.WriteString(formatFloat(t.Num))
			b.WriteByte('%')
		case TokenDimension:
			b.WriteString(formatFloat(t.Num))
			b.WriteString(t.Unit)
		case TokenFunction:
			b.WriteString(t.Text)
			b.WriteByte('(')
		case TokenComma:
			b.WriteString(", ")
		case TokenLParen:
			b.WriteByte('(')
		case TokenRParen:
			b.WriteByte(')')
		case TokenDelim:
			b.WriteByte(t.Delim)
		}
	}
	return strings.TrimSpace(b.String()), important
}

func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return itoa(int64(f))
	}
	// limited precision is fine for a layout engine's computed-value use
	s := itoa(int64(f * 1000))
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for len(s) < 4 {
		s = "0" + s
	}
	whole := s[:len(s)-3]
	frac := strings.TrimRight(s[len(s)-3:], "0")
	out := whole
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// parseSelectorList splits on top-level commas and parses each selector
// chain; returns nil if nothing usable was found.
func parseSelectorList(toks []Token) []Selector {
	var groups [][]Token
	var cur []Token
	for _, t := range toks {
		if t.Kind == TokenComma {
			groups = append(groups, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	groups = append(groups, cur)

	var out []Selector
	for _, g := range groups {
		sel := parseSelectorChain(g)
		if len(sel) > 0 {
			out = append(out, sel)
		}
	}
	return out
}

func parseSelectorChain(toks []Token) Selector {
	// strip leading/trailing whitespace
	for len(toks) > 0 && toks[0].Kind == TokenWhitespace {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].Kind == TokenWhitespace {
		toks = toks[:len(toks)-1]
	}
	if len(toks) == 0 {
		return nil
	}

	var chain Selector
	i := 0
	pendingCombinator := CombinatorDescendant
	sawComponent := false
	explicitCombinator := false

	flushWhitespaceAsDescendant := func() {
		if sawComponent && !explicitCombinator {
			pendingCombinator = CombinatorDescendant
		}
	}

	for i < len(toks) {
		t := toks[i]
		switch {
		case t.Kind == TokenWhitespace:
			flushWhitespaceAsDescendant()
			i++
		case t.Kind == TokenDelim && t.Delim == '>':
			pendingCombinator = CombinatorChild
			explicitCombinator = true
			i++
		case t.Kind == TokenDelim && t.Delim == '+':
			pendingCombinator = CombinatorAdjacent
			explicitCombinator = true
			i++
		case t.Kind == TokenDelim && t.Delim == '~':
			pendingCombinator = CombinatorSibling
			explicitCombinator = true
			i++
		default:
			comp, consumed := parseCompound(toks[i:])
			if consumed == 0 {
				return chain
			}
			comp.Combinator = pendingCombinator
			chain = append(chain, comp)
			sawComponent = true
			explicitCombinator = false
			pendingCombinator = CombinatorDescendant
			i += consumed
		}
	}
	return chain
}

func parseCompound(toks []Token) (CompoundSelector, int) {
	var comp CompoundSelector
	i := 0
	for i < len(toks) {
		t := toks[i]
		switch {
		case t.Kind == TokenIdent && comp.Type == "" && i == 0:
			comp.Type = t.Text
			i++
		case t.Kind == TokenDelim && t.Delim == '*' && comp.Type == "" && i == 0:
			comp.Type = "*"
			i++
		case t.Kind == TokenHash:
			comp.ID = t.Text
			i++
		case t.Kind == TokenDelim && t.Delim == '.':
			i++
			if i < len(toks) && toks[i].Kind == TokenIdent {
				comp.Classes = append(comp.Classes, toks[i].Text)
				i++
			}
		case t.Kind == TokenColon:
			i++
			if i >= len(toks) {
				break
			}
			if toks[i].Kind == TokenFunction && strings.EqualFold(toks[i].Text, "nth-child") {
				i++
				var inner []Token
				depth := 1
				for i < len(toks) && depth > 0 {
					if toks[i].Kind == TokenLParen {
						depth++
					} else if toks[i].Kind == TokenRParen {
						depth--
						if depth == 0 {
							i++
							break
						}
					}
					inner = append(inner, toks[i])
					i++
				}
				comp.Pseudo = append(comp.Pseudo, "nth-child")
				expr := parseNth(inner)
				comp.NthChild = &expr
			} else if toks[i].Kind == TokenIdent {
				comp.Pseudo = append(comp.Pseudo, strings.ToLower(toks[i].Text))
				i++
			}
		case t.Kind == TokenLBracket:
			attr, consumed := parseAttrSelector(toks[i:])
			comp.Attrs = append(comp.Attrs, attr)
			i += consumed
		default:
			return comp, i
		}
	}
	return comp, i
}

func parseAttrSelector(toks []Token) (AttrSelector, int) {
	var a AttrSelector
	i := 0
	if i < len(toks) && toks[i].Kind == TokenLBracket {
		i++
	}
	if i < len(toks) && toks[i].Kind == TokenIdent {
		a.Name = toks[i].Text
		i++
	}
	op := AttrExists
	switch {
	case i < len(toks) && toks[i].Kind == TokenDelim && toks[i].Delim == '=':
		op = AttrEquals
		i++
	case i+1 < len(toks) && toks[i].Kind == TokenDelim && toks[i+1].Kind == TokenDelim && toks[i+1].Delim == '=':
		switch toks[i].Delim {
		case '~':
			op = AttrIncludes
		case '|':
			op = AttrDash
		case '^':
			op = AttrPrefix
		case '$':
			op = AttrSuffix
		case '*':
			op = AttrSubstring
		}
		i += 2
	}
	if op != AttrExists && i < len(toks) {
		if toks[i].Kind == TokenString || toks[i].Kind == TokenIdent {
			a.Value = toks[i].Text
			i++
		}
	}
	a.Op = op
	for i < len(toks) && toks[i].Kind != TokenRBracket {
		i++
	}
	if i < len(toks) {
		i++ // consume ']'
	}
	return a, i
}

// parseNth parses "an+b" forms: "odd", "even", "N", "aN", "aN+b", "aN-b".
func parseNth(toks []Token) NthExpr {
	var b strings.Builder
	for _, t := range toks {
		if t.Kind == TokenWhitespace {
			continue
		}
		switch t.Kind {
		case TokenIdent:
			b.WriteString(t.Text)
		case TokenDimension:
			b.WriteString(formatFloat(t.Num))
			b.WriteString(t.Unit)
		case TokenNumber:
			b.WriteString(formatFloat(t.Num))
		case TokenDelim:
			b.WriteByte(t.Delim)
		}
	}
	s := strings.ToLower(strings.TrimSpace(b.String()))
	switch s {
	case "odd":
		return NthExpr{A: 2, B: 1}
	case "even":
		return NthExpr{A: 2, B: 0}
	}
	// forms: "b", "an", "an+b", "an-b", "n", "-n", "n+b"
	nIdx := strings.IndexByte(s, 'n')
	if nIdx < 0 {
		return NthExpr{A: 0, B: int(parseFloat(s))}
	}
	aPart := s[:nIdx]
	a := 1
	switch aPart {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		a = int(parseFloat(aPart))
	}
	rest := strings.TrimSpace(s[nIdx+1:])
	b2 := 0
	if rest != "" {
		b2 = int(parseFloat(strings.ReplaceAll(rest, " ", "")))
	}
	return NthExpr{A: a, B: b2}
}
