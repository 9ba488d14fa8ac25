package runner_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/kawiarnia"
	"github.com/aretw0/kawiarnia/pkg/adapters/heuristic"
	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/aretw0/kawiarnia/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssistant(t *testing.T) *kawiarnia.Assistant {
	t.Helper()
	a, err := kawiarnia.New(heuristic.New(nil))
	require.NoError(t, err)
	return a
}

func TestRunner_TextConversation(t *testing.T) {
	a := newAssistant(t)
	in := strings.NewReader(strings.Join([]string{
		"Dodaj do koszyka latte, duże",
		"/cart",
		"Podsumuj zamówienie",
		"/log",
		"/quit",
		"never read",
	}, "\n") + "\n")
	var out bytes.Buffer

	r := runner.NewRunner(
		runner.WithSessionID("t1"),
		runner.WithInputHandler(runner.NewTextHandler(in, &out)),
	)
	require.NoError(t, r.Run(context.Background(), a))

	text := out.String()
	assert.Contains(t, text, runner.DefaultGreeting)
	assert.Contains(t, text, "Dodałem latte L do koszyka")
	assert.Contains(t, text, "- latte L (bez dodatków, standardowe) - 17 zł")
	assert.Contains(t, text, "🎉 Dziękuję za zamówienie!")
	assert.Contains(t, text, "Orders completed: 1")

	report, err := a.ActivityLog(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Metrics.OrdersCompleted)
}

func TestRunner_ResetAsksForConfirmation(t *testing.T) {
	a := newAssistant(t)
	ctx := context.Background()
	_, err := a.SubmitMessage(ctx, "t1", "Dodaj do koszyka espresso, małe")
	require.NoError(t, err)

	in := strings.NewReader("/reset\nn\n/reset\ntak\n")
	var out bytes.Buffer
	r := runner.NewRunner(
		runner.WithSessionID("t1"),
		runner.WithInputHandler(runner.NewTextHandler(in, &out)),
	)
	require.NoError(t, r.Run(ctx, a))

	text := out.String()
	assert.Contains(t, text, "Czy na pewno wykonać /reset?")
	assert.Contains(t, text, "Anulowano.")
	assert.Contains(t, text, "Rozmowa wyczyszczona.")

	cart, err := a.CartSummary(ctx, "t1")
	require.NoError(t, err)
	assert.Zero(t, cart.ItemCount)
}

func TestRunner_ResumeGreetsWithLastReply(t *testing.T) {
	a := newAssistant(t)
	ctx := context.Background()
	reply, err := a.SubmitMessage(ctx, "t1", "Poproszę latte")
	require.NoError(t, err)

	var out bytes.Buffer
	r := runner.NewRunner(
		runner.WithSessionID("t1"),
		runner.WithInputHandler(runner.NewTextHandler(strings.NewReader(""), &out)),
	)
	require.NoError(t, r.Run(ctx, a))
	assert.Contains(t, out.String(), reply)
	assert.NotContains(t, out.String(), runner.DefaultGreeting)
}

func TestRunner_JSONHeadless(t *testing.T) {
	a := newAssistant(t)
	in := strings.NewReader(`"Dodaj do koszyka espresso, małe"` + "\n" +
		`{"message": "/clearlog"}` + "\n" +
		"/nope\n")
	var out bytes.Buffer

	r := runner.NewRunner(
		runner.WithHeadless(true),
		runner.WithInputHandler(runner.NewJSONHandler(in, &out)),
	)
	require.NoError(t, r.Run(context.Background(), a))
	require.NotEmpty(t, r.SessionID)

	var events []runner.Event
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var ev runner.Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		events = append(events, ev)
	}
	require.Len(t, events, 3)
	assert.Equal(t, runner.EventReply, events[0].Type)
	assert.Contains(t, events[0].Text, "Dodałem espresso S do koszyka")
	assert.Equal(t, runner.EventSystem, events[1].Type)
	assert.Equal(t, "Dziennik aktywności wyczyszczony.", events[1].Text)
	assert.Contains(t, events[2].Text, "Nieznane polecenie")
}

func TestRunner_StopsOnCancel(t *testing.T) {
	a := newAssistant(t)
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		r := runner.NewRunner(runner.WithHeadless(true), runner.WithInputHandler(runner.NewTextHandler(pr, &bytes.Buffer{})))
		done <- r.Run(ctx, a)
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestEvents(t *testing.T) {
	ev := runner.CartEvent("s", domain.CartSummary{})
	assert.Equal(t, "Koszyk jest pusty.", ev.Text)

	ev = runner.CartEvent("s", domain.CartSummary{
		Items:     []domain.CartItem{{Drink: "mocha", Size: domain.SizeMedium, Customizations: []string{"cukier"}, Price: domain.PLN(16)}},
		Total:     domain.PLN(16),
		ItemCount: 1,
	})
	assert.Contains(t, ev.Text, "- mocha M (cukier, standardowe) - 16 zł")

	ev = runner.LogEvent("s", domain.ActivityReport{})
	assert.True(t, strings.HasPrefix(ev.Text, "```\nOrders completed: 0"))
}
