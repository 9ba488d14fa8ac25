/*
Package kawiarnia is a turn-based order-taking assistant for a café.

It accumulates a customer's drink order across chat turns, validates every
message against a content policy, turns completed orders into priced cart
lines and finalizes checkout while keeping running business metrics.

# Concept

Natural-language understanding is delegated to a classification oracle
(package oracle): an external model that returns structured JSON. Everything
else is deterministic. Each turn runs through a small state machine:

	message -> checkout shortcut? -> validate -> gate -> process -> route
	                                                              |-> continue
	                                                              |-> add to cart
	                                                              |-> checkout

Sessions are values (domain.Session) kept in a ports.StateStore between turns.
The session manager guarantees that turns, resets and deletes of one session
never overlap, also across replicas when a distributed locker is configured.

# Usage

	o := heuristic.New(nil) // offline oracle; use openai or genai adapters in production
	a, err := kawiarnia.New(o)
	if err != nil {
		log.Fatal(err)
	}

	reply, err := a.SubmitMessage(ctx, "table-7", "Poproszę duże latte")
	fmt.Println(reply)

	cart, _ := a.CartSummary(ctx, "table-7")
	fmt.Println(cart.Total)

# Front ends

The same Assistant is served by the chat REPL (pkg/runner), an HTTP API with
an SSE event stream (pkg/adapters/http) and an MCP server (pkg/adapters/mcp).
*/
package kawiarnia
