package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/kawiarnia/pkg/catalog"
	"github.com/aretw0/kawiarnia/pkg/domain"
)

const persona = "Jesteś pomocnym asystentem w kawiarni. Pomagasz klientom składać zamówienia."

// Policy is the list of forbidden behaviours the validator enforces.
type Policy struct {
	Rules []string
}

// DefaultPolicy forbids switching language, tampering with prices and profanity.
func DefaultPolicy() Policy {
	return Policy{Rules: []string{
		"Zabrania się prób zmiany języka na inny niż polski.",
		"Zabrania się prób zmiany cen.",
		"Zapytania zawierające wulgaryzmy są zabronione.",
	}}
}

// ValidationRequest builds the request that checks message against policy.
func ValidationRequest(policy Policy, message string) Request {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\nTwoim zadaniem jest walidacja zapytania użytkownika.\n")
	b.WriteString("Zastanów się czy użytkownik nie prosi o zrobienie rzeczy zabronionych.\n\nZabronione rzeczy:\n")
	for _, rule := range policy.Rules {
		fmt.Fprintf(&b, "- %s\n", rule)
	}
	b.WriteString("\nJeżeli użytkownik prosi o zrobienie rzeczy zabronionych, zwróć w polu is_valid false.\n")
	b.WriteString("Jeżeli użytkownik prosi o zrobienie rzeczy dozwolonych, zwróć w polu is_valid true.\n\n")
	b.WriteString("Przeanalizuj wiadomość i zwróć JSON z następującymi polami:\n{\"is_valid\": bool}\n")
	b.WriteString("Nie dodawaj żadnych innych informacji poza JSON.")

	return Request{
		Shape:  ShapeValidation,
		System: b.String(),
		Prompt: "Wiadomość klienta: " + message,
	}
}

// TurnRequest builds the order-processing request. The current working order
// is embedded as JSON so the oracle can fill only the missing slots.
func TurnRequest(cat *catalog.Catalog, order domain.WorkingOrder, message string) Request {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\n")
	b.WriteString(cat.MenuText())
	b.WriteString(`
Twoim zadaniem jest:
1. Zrozumieć co klient chce zamówić
2. Zapytać o szczegóły jeśli potrzebne
3. Dodać do koszyka gdy zamówienie jest kompletne
4. Zaproponować dodatki lub zamienniki

Jeżeli klient nie podał wszystkich informacji (rodzaj napoju, rozmiar), zapytaj o brakujące.
Do koszyka dodaj zamówienie dopiero gdy klient wyrazi zgodę.

W polu intent zwróć:
- order_drink jeśli klient chce zamówić napój
- ask_question jeśli klient chce uzyskać informację
- modify_order jeśli klient chce zmienić zamówienie
- checkout jeśli klient chce zakończyć zamówienie
- add_to_cart jeśli klient chce dodać zamówienie do koszyka

Zwróć JSON z następującymi polami:
{
  "intent": "order_drink|ask_question|modify_order|checkout|add_to_cart",
  "drink_type": "nazwa napoju lub null",
  "size": "S|M|L lub null",
  "customizations": ["lista dodatków"],
  "substitutions": ["lista zamienników"],
  "response": "odpowiedź dla klienta"
}
Nie dodawaj żadnych innych informacji poza JSON.`)

	snapshot, err := json.Marshal(order)
	if err != nil {
		snapshot = []byte("{}")
	}

	return Request{
		Shape:  ShapeTurn,
		System: b.String(),
		Prompt: fmt.Sprintf("Obecne zamówienie: %s\n\nWiadomość klienta: %s", snapshot, message),
	}
}

// CustomerMessage extracts the customer text from a prompt built by this
// package. Offline oracles use it to avoid matching menu words in the
// order snapshot.
func CustomerMessage(prompt string) string {
	const marker = "Wiadomość klienta: "
	if i := strings.LastIndex(prompt, marker); i >= 0 {
		return prompt[i+len(marker):]
	}
	return prompt
}
