package order

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTerminal(t *testing.T, script string) (*Session, string) {
	t.Helper()
	s := newTestSession()
	var out bytes.Buffer
	term := NewTerminal(s, "Test Pizza", strings.NewReader(script), &out)
	require.NoError(t, term.Run(context.Background()))
	return s, out.String()
}

func TestTerminal_Scenario(t *testing.T) {
	s, out := runTerminal(t, "add 2 2\nadd 1\npay Credit Card\nquit\n")

	assert.Contains(t, out, "Welcome to Test Pizza")
	assert.Contains(t, out, "  1. Margherita - $6.00")
	assert.Contains(t, out, "  1. Pepperoni x2 = $16.00\nTotal: $16.00")
	assert.Contains(t, out, "  2. Margherita x1 = $6.00\nTotal: $22.00")
	assert.Contains(t, out, "[Payment] Paid $22.00 successfully via Credit Card\nOrder: (empty)\nTotal: $0.00")
	assert.True(t, strings.HasSuffix(out, "Bye.\n"))
	assert.Empty(t, s.View().Lines)
}

func TestTerminal_InvalidAddIsSilent(t *testing.T) {
	s, out := runTerminal(t, "add 1 0\nadd 9 1\nadd x 1\nadd\n")

	assert.Empty(t, s.View().Lines)
	assert.NotContains(t, out, "error")
	assert.Equal(t, 5, strings.Count(out, "Total: $0.00"))
}

func TestTerminal_UnknownMethodPaysCash(t *testing.T) {
	_, out := runTerminal(t, "add 1 1\npay Bitcoin\n")
	assert.Contains(t, out, "Paid $6.00 successfully via Cash")
}

func TestTerminal_ClearAndHelp(t *testing.T) {
	s, out := runTerminal(t, "add 2 1\nclear\nhelp\nmethods\nbogus\n")

	assert.Empty(t, s.View().Lines)
	assert.Contains(t, out, "pay [method]")
	assert.Contains(t, out, "  Mobile Pay\n")
	assert.Contains(t, out, `Unknown command "bogus"`)
}
