package css

import "testing"

func TestTokenizerBasicTokens(t *testing.T) {
	toks := tokenizeAll(`div.card#x { color: #fff; width: 50%; margin: 1.5em; }`)
	var kinds []TokenKind
	for _, tk := range toks {
		if tk.Kind == TokenWhitespace {
			continue
		}
		kinds = append(kinds, tk.Kind)
	}
	want := []TokenKind{
		TokenIdent, TokenDelim, TokenIdent, TokenHash, TokenLBrace,
		TokenIdent, TokenColon, TokenHash, TokenSemicolon,
		TokenIdent, TokenColon, TokenPercentage, TokenSemicolon,
		TokenIdent, TokenColon, TokenDimension, TokenSemicolon,
		TokenRBrace,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(kinds), kinds, len(want))
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("token %d = %v, want %v", i, kinds[i], k)
		}
	}
}

func TestTokenizerStringAndFunction(t *testing.T) {
	toks := tokenizeAll(`content: "hi"; background: url(foo.png);`)
	var foundString, foundURL bool
	for _, tk := range toks {
		if tk.Kind == TokenString && tk.Text == "hi" {
			foundString = true
		}
		if tk.Kind == TokenURL && tk.Text == "foo.png" {
			foundURL = true
		}
	}
	if !foundString || !foundURL {
		t.Errorf("foundString=%v foundURL=%v", foundString, foundURL)
	}
}

func TestTokenizerNeverPanicsOnMalformedInput(t *testing.T) {
	inputs := []string{
		"", "{", "}", "/*", "\"unterminated", "url(", "@", "#", "123px%%",
		"div { color: ", "/* comment without end",
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("tokenizing %q panicked: %v", in, r)
				}
			}()
			tokenizeAll(in)
		}()
	}
}

func TestTokenizerSkipsComments(t *testing.T) {
	toks := tokenizeAll("a /* comment */ b")
	var idents []string
	for _, tk := range toks {
		if tk.Kind == TokenIdent {
			idents = append(idents, tk.Text)
		}
	}
	if len(idents) != 2 || idents[0] != "a" || idents[1] != "b" {
		t.Errorf("idents = %v", idents)
	}
}
