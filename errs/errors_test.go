package errs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorDisplayFormat(t *testing.T) {
	cases := []struct {
		Name     string
		Err      Error
		Expected string
	}{
		{
			"parse error has no function clause",
			Parse(4, "unexpected token"),
			"Drython Parse Error: Line [4] - unexpected token",
		},
		{
			"runtime error with function",
			Runtime("main", 12, "undefined variable 'x'"),
			"Drython Runtime Error: Function ['main'] Line [12] - undefined variable 'x'",
		},
		{
			"script-type error",
			ScriptType(1, "unknown script type"),
			"Drython Script-type Error: Line [1] - unknown script type",
		},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expected, c.Err.Error())
		})
	}
}

func TestManagerQueueOrder(t *testing.T) {
	m := NewManager()
	assert.False(t, m.HasErrors())

	m.Push(Parse(1, "first"))
	m.Push(Runtime("f", 2, "second"))
	assert.True(t, m.HasErrors())

	errs := m.Errors()
	assert.Len(t, errs, 2)
	assert.Equal(t, "first", errs[0].Message)
	assert.Equal(t, "second", errs[1].Message)

	first, ok := m.First()
	assert.True(t, ok)
	assert.Equal(t, "first", first.Message)

	m.Clear()
	assert.False(t, m.HasErrors())
	_, ok = m.First()
	assert.False(t, ok)
}
