package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler_Output(t *testing.T) {
	var out bytes.Buffer
	h := NewTextHandler(strings.NewReader(""), &out, WithTextHandlerRenderer(func(s string) (string, error) {
		return "Rendered: " + s, nil
	}))

	require.NoError(t, h.Output(context.Background(), Event{Type: EventReply, Text: "Witamy"}))
	require.NoError(t, h.Output(context.Background(), Event{Type: EventSystem, Text: "info"}))

	assert.Contains(t, out.String(), "Rendered: Witamy")
	assert.Contains(t, out.String(), "[System] info")
	assert.NotContains(t, out.String(), "Rendered: info")
}

func TestTextHandler_Input(t *testing.T) {
	var out bytes.Buffer
	h := NewTextHandler(strings.NewReader("\n   \nlatte\x07\n"+strings.Repeat("x", DefaultMaxInputSize+1)+"\nespresso"), &out, WithPrompt("? "))
	ctx := context.Background()

	got, err := h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "latte", got)

	got, err = h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "espresso", got)
	assert.Contains(t, out.String(), "Błąd:")
	assert.Contains(t, out.String(), "? ")

	_, err = h.Input(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestTextHandler_InputCanceled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	h := NewTextHandler(pr, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.Input(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJSONHandler_Input(t *testing.T) {
	var out bytes.Buffer
	input := "\"latte\"\n{\"message\":\"mocha\"}\nplain text\n" + strings.Repeat("a", DefaultMaxInputSize+1) + "\n"
	h := NewJSONHandler(strings.NewReader(input), &out)
	ctx := context.Background()

	for _, want := range []string{"latte", "mocha", "plain text"} {
		got, err := h.Input(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := h.Input(ctx)
	assert.ErrorIs(t, err, io.EOF)
	assert.Contains(t, out.String(), `"type":"error"`)
}

func TestConfirmationMiddleware(t *testing.T) {
	var out bytes.Buffer
	h := NewTextHandler(strings.NewReader("t\nnie\n"), &out)
	confirm := ConfirmationMiddleware(h)
	ctx := context.Background()

	ok, err := confirm(ctx, "/reset")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = confirm(ctx, "/reset")
	require.NoError(t, err)
	assert.False(t, ok)

	chained := MultiInterceptor(AutoApproveMiddleware(), func(context.Context, string) (bool, error) { return false, nil })
	ok, err = chained(ctx, "/clearlog")
	require.NoError(t, err)
	assert.False(t, ok)
}
