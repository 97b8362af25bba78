package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallLineNoArgs(t *testing.T) {
	name, args, err := ParseCallLine("print()")
	require.NoError(t, err)
	assert.Equal(t, "print", name)
	assert.Empty(t, args)
}

func TestParseCallLineArgs(t *testing.T) {
	name, args, err := ParseCallLine("add(1,2)")
	require.NoError(t, err)
	assert.Equal(t, "add", name)
	assert.Equal(t, []string{"1", "2"}, args)
}

func TestParseCallLineNestedCommas(t *testing.T) {
	name, args, err := ParseCallLine("f([1,2],g(3,4))")
	require.NoError(t, err)
	assert.Equal(t, "f", name)
	assert.Equal(t, []string{"[1,2]", "g(3,4)"}, args)
}

func TestParseCallLineMissingParen(t *testing.T) {
	_, _, err := ParseCallLine("f(1,2")
	assert.Error(t, err)
}
