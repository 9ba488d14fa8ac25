package runner

import (
	"fmt"
	"strings"

	"github.com/aretw0/kawiarnia"
	"github.com/aretw0/kawiarnia/internal/runtime"
	"github.com/aretw0/kawiarnia/pkg/domain"
)

// ReplyEvent presents a turn.
func ReplyEvent(turn *kawiarnia.Turn) Event {
	return Event{Type: EventReply, SessionID: turn.SessionID, Text: turn.Reply, Data: turn}
}

// CartEvent presents a cart as a markdown list.
func CartEvent(sessionID string, cart domain.CartSummary) Event {
	var b strings.Builder
	if cart.ItemCount == 0 {
		b.WriteString("Koszyk jest pusty.")
	} else {
		fmt.Fprintf(&b, "**Koszyk** (%d, razem %s)\n\n", cart.ItemCount, cart.Total)
		for _, item := range cart.Items {
			b.WriteString(runtime.ItemLine(item))
			b.WriteString("\n")
		}
	}
	return Event{Type: EventCart, SessionID: sessionID, Text: b.String(), Data: cart}
}

// LogEvent presents an activity report as a preformatted block.
func LogEvent(sessionID string, report domain.ActivityReport) Event {
	return Event{
		Type:      EventLog,
		SessionID: sessionID,
		Text:      "```\n" + strings.TrimRight(report.Text(), "\n") + "\n```",
		Data:      report,
	}
}

// MenuEvent presents the menu.
func MenuEvent(menu string) Event {
	return Event{Type: EventMenu, Text: menu}
}
