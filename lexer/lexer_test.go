package lexer

import (
	"testing"
)

func kindsOf(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeSimpleLine(t *testing.T) {
	tokens, err := Tokenize("", "! B3LYP def2-SVP\n")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []Kind{Bang, Whitespace, Word, Whitespace, Word, Minus, Word, Newline}
	got := kindsOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		src  string
		kind Kind
	}{
		{"42", Integer},
		{"1.5", Float},
		{".5", Float},
		{"3.", Float},
		{"1e-3", Float},
		{"2.0D+02", Float},
		{"1.0e5", Float},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tokens, err := Tokenize("", tt.src)
			if err != nil {
				t.Fatalf("Tokenize failed: %v", err)
			}
			if len(tokens) != 1 {
				t.Fatalf("expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Kind != tt.kind || tokens[0].Value != tt.src {
				t.Errorf("expected %s %q, got %s %q", tt.kind, tt.src, tokens[0].Kind, tokens[0].Value)
			}
		})
	}
}

func TestTokenizeOperators(t *testing.T) {
	tokens, err := Tokenize("", "<=>===!=<>=")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []Kind{LessEqual, GreaterEqual, Equal, NotEqual, Less, GreaterEqual}
	got := kindsOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestTokenizeQuotedStrings(t *testing.T) {
	tokens, err := Tokenize("", `"guess file.gbw" "open`)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if tokens[0].Kind != QuotedString || tokens[0].Value != `"guess file.gbw"` {
		t.Errorf("expected quoted string, got %s %q", tokens[0].Kind, tokens[0].Value)
	}
	// an unterminated quote is left for the parser to report
	if tokens[2].Kind != Unknown || tokens[2].Value != `"` {
		t.Errorf("expected unknown '\"', got %s %q", tokens[2].Kind, tokens[2].Value)
	}
}

func TestTokenizeCommentsAndUnknown(t *testing.T) {
	tokens, err := Tokenize("", "x # note\n$")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []Kind{Word, Whitespace, Comment, Newline, Unknown}
	got := kindsOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if tokens[2].Value != "# note" {
		t.Errorf("expected comment '# note', got %q", tokens[2].Value)
	}
	if tokens[4].Kind != Unknown {
		t.Errorf("expected unknown token, got %s", tokens[4].Kind)
	}
}

func TestWordStartsWithLetter(t *testing.T) {
	tokens, err := Tokenize("", "_x x_1")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []Kind{Unknown, Word, Whitespace, Word}
	got := kindsOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if tokens[3].Value != "x_1" {
		t.Errorf("expected word x_1, got %q", tokens[3].Value)
	}
}

func TestTokenizeMatchesAll(t *testing.T) {
	src := "%scf\n  MaxIter 10 # cap\nend\n"
	tokens, err := Tokenize("", src)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	i := 0
	for tok := range All("", src) {
		if i >= len(tokens) || tokens[i] != tok {
			t.Fatalf("token %d differs: %+v", i, tok)
		}
		i++
	}
	if i != len(tokens) {
		t.Errorf("expected %d tokens from All, got %d", len(tokens), i)
	}
}

func TestTokenPositions(t *testing.T) {
	tokens, err := Tokenize("", "%scf\n  MaxIter 10\nend")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	var maxIter, end Token
	for _, tok := range tokens {
		switch tok.Value {
		case "MaxIter":
			maxIter = tok
		case "end":
			end = tok
		}
	}
	if maxIter.Line != 2 || maxIter.Col != 3 {
		t.Errorf("expected MaxIter at 2:3, got %s", maxIter.Pos())
	}
	if end.Line != 3 || end.Col != 1 {
		t.Errorf("expected end at 3:1, got %s", end.Pos())
	}
	if got := maxIter.End(); got.Offset != maxIter.Offset+len("MaxIter") || got.Col != 10 {
		t.Errorf("unexpected end position %+v", got)
	}
}

func TestTokenEndAcrossNewline(t *testing.T) {
	tok := Token{Kind: Newline, Value: "\r\n", Offset: 4, Line: 1, Col: 5}
	end := tok.End()
	if end.Line != 2 || end.Col != 1 || end.Offset != 6 {
		t.Errorf("expected 2:1 at offset 6, got %+v", end)
	}
}

func TestAdjacent(t *testing.T) {
	tokens, err := Tokenize("", "def2-SVP x")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if !tokens[0].Adjacent(tokens[1]) || !tokens[1].Adjacent(tokens[2]) {
		t.Error("expected def2, '-' and SVP to be adjacent")
	}
	if tokens[2].Adjacent(tokens[4]) {
		t.Error("expected SVP and x to be separated")
	}
}

func TestAllIsRestartable(t *testing.T) {
	seq := All("", "! Opt\n%maxcore 100\n")
	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	first, second := count(), count()
	if first == 0 || first != second {
		t.Errorf("expected equal non-zero counts, got %d and %d", first, second)
	}

	n := 0
	for tok := range seq {
		n++
		if tok.Kind == Percent {
			break
		}
	}
	if n != 5 {
		t.Errorf("expected to stop after 5 tokens, got %d", n)
	}
}

func TestTokenStream(t *testing.T) {
	ts, err := NewTokenStream("", "a = 1")
	if err != nil {
		t.Fatalf("NewTokenStream failed: %v", err)
	}
	if ts.Current().Value != "a" {
		t.Fatalf("expected a, got %q", ts.Current().Value)
	}
	mark := ts.Mark()
	ts.Next()
	ts.SkipWhitespaceAndComments()
	if !ts.Match(Assign, Less) {
		t.Fatalf("expected '=', got %s", ts.Current().Kind)
	}
	if p := ts.Peek(2); p == nil || p.Value != "1" {
		t.Errorf("expected to peek 1, got %v", p)
	}
	if _, err := ts.Consume(Integer); err == nil {
		t.Error("expected Consume to fail on '='")
	}
	ts.Rewind(mark)
	if ts.Current().Value != "a" {
		t.Errorf("expected Rewind to return to a, got %q", ts.Current().Value)
	}
	for !ts.IsAtEnd() {
		ts.Next()
	}
	if ts.Current() != nil || ts.EOF().Offset != 5 {
		t.Errorf("expected end of stream at offset 5, got %+v", ts.EOF())
	}
	ts.Rewind(0)
	if ts.Current().Value != "a" {
		t.Errorf("expected Rewind(0) to restart, got %q", ts.Current().Value)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Kind
	}{
		{"H", Element},
		{"Cl", Element},
		{"MaxIter", Word},
		{"12", Integer},
		{"1-3", Integer},
		{"-2", Integer},
		{"-1.5", Float},
		{"1.0e-5", Float},
		{"def2-TZVP", String},
		{"6-31G", File},
		{"../mol.xyz", File},
		{`"x y"`, QuotedString},
		{"a b", Unknown},
	}
	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q): expected %s, got %s", tt.text, tt.want, got)
		}
	}
}
