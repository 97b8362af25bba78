package lexer

import (
	"testing"

	"github.com/dryscript/drython/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSplitsOnSemicolon(t *testing.T) {
	em := errs.NewManager()
	lines := Normalize("x=1;y=2", em)
	require.False(t, em.HasErrors())
	require.Len(t, lines, 2)
	assert.Equal(t, "x=1", lines[0].Text)
	assert.Equal(t, "y=2", lines[1].Text)
}

func TestNormalizeDropsWhitespaceOutsideLiterals(t *testing.T) {
	em := errs.NewManager()
	lines := Normalize("x = 1 + 2", em)
	require.Len(t, lines, 1)
	assert.Equal(t, "x=1+2", lines[0].Text)
}

func TestNormalizePreservesLiteralWhitespace(t *testing.T) {
	em := errs.NewManager()
	lines := Normalize(`s = "a b c"`, em)
	require.Len(t, lines, 1)
	assert.Equal(t, `s="a b c"`, lines[0].Text)
}

func TestNormalizeBlankLinesKeepSlot(t *testing.T) {
	em := errs.NewManager()
	lines := Normalize("x=1\n\ny=2\n", em)
	require.Len(t, lines, 3)
	assert.Equal(t, "x=1", lines[0].Text)
	assert.Equal(t, "", lines[1].Text)
	assert.Equal(t, "y=2", lines[2].Text)
}

func TestNormalizeLineContinuation(t *testing.T) {
	em := errs.NewManager()
	lines := Normalize("x = 1 + \\\n2", em)
	require.False(t, em.HasErrors())
	require.Len(t, lines, 1)
	assert.Equal(t, "x=1+2", lines[0].Text)
}

func TestNormalizeUnclosedStringIsParseError(t *testing.T) {
	em := errs.NewManager()
	Normalize(`s = "unterminated`, em)
	require.True(t, em.HasErrors())
	first, _ := em.First()
	assert.Equal(t, errs.ParseKind, first.Kind)
}

func TestNormalizeRoundTripPrefix(t *testing.T) {
	em := errs.NewManager()
	lines := Normalize("x=1\ny=2", em)
	for i, l := range lines {
		assert.Equal(t, i+1, l.Number)
		assert.Contains(t, l.WithPrefix(), ")"+l.Text)
	}
}

func TestNormalizeSemicolonThenNewline(t *testing.T) {
	em := errs.NewManager()
	lines := Normalize("x=1;y=2\nz=3", em)
	require.False(t, em.HasErrors())
	require.Len(t, lines, 3)
	assert.Equal(t, "x=1", lines[0].Text)
	assert.Equal(t, "y=2", lines[1].Text)
	assert.Equal(t, "z=3", lines[2].Text)
	// both statements of the first physical line carry its number
	assert.Equal(t, 1, lines[0].Number)
	assert.Equal(t, 1, lines[1].Number)
	assert.Equal(t, 2, lines[2].Number)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		Name     string
		Input    string
		Expected Kind
	}{
		{"blank", "", KindNone},
		{"line comment", "//hello", KindComment},
		{"hash comment", "#hello", KindComment},
		{"simple assignment", "x=1", KindAssignment},
		{"compound assignment", "x+=1", KindAssignment},
		{"increment", "x++", KindAssignment},
		{"decrement", "x--", KindAssignment},
		{"function header", "f(a,b):", KindFunction},
		{"call", "print(x)", KindCall},
		{"call with nested call", "print(g(x),y)", KindCall},
		{"return", "return x+1", KindReturn},
		{"if", "ifx>0:", KindIf},
		{"elif", "elifx==0:", KindElif},
		{"elseif synonym", "elseifx==0:", KindElif},
		{"else", "else:", KindElse},
		{"loop", "loop:", KindLoop},
		{"loop with condition", "loopx<10:", KindLoop},
		{"break", "break", KindBreak},
		{"continue", "continue", KindContinue},
		{"end", "end", KindEnd},
		{"use library", "usemath", KindLibrary},
		{"import library", "importmath", KindLibrary},
		{"using library", "usingmath", KindLibrary},
		{"break keyword is whole-line only", "breakdown=1", KindAssignment},
		{"end keyword is whole-line only", "ending=2", KindAssignment},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			got, err := Classify(c.Input)
			require.NoError(t, err)
			assert.Equal(t, c.Expected, got)
		})
	}
}

func TestClassifyUnrecognizedCharacter(t *testing.T) {
	_, err := Classify("x~y")
	assert.Error(t, err)
}

func TestLibraryName(t *testing.T) {
	assert.Equal(t, "math", LibraryName("use math"))
	assert.Equal(t, "vector", LibraryName("import vector"))
	assert.Equal(t, "math", LibraryName("usingmath"))
	assert.Equal(t, "collection", LibraryName("includecollection"))
}
