package runtime

import (
	"fmt"
	"strings"

	"github.com/aretw0/kawiarnia/pkg/domain"
)

// Customer-facing messages.
const (
	MsgFallback      = "Przepraszam, nie zrozumiałem. Czy możesz powtórzyć?"
	MsgRejected      = "Przepraszam, nie mogę pomóc w tej sprawie. Chętnie za to przyjmę zamówienie na napoje z naszego menu."
	MsgEmptyCart     = "Koszyk jest pusty. Czy chciałbyś coś zamówić?"
	MsgInternalError = "Przepraszam, wystąpił błąd."
)

var slotNames = map[string]string{
	"drink_type": "rodzaj napoju",
	"size":       "rozmiar (S, M lub L)",
}

func incompleteMessage(missing []string) string {
	names := make([]string, 0, len(missing))
	for _, m := range missing {
		if n, ok := slotNames[m]; ok {
			names = append(names, n)
		} else {
			names = append(names, m)
		}
	}
	return fmt.Sprintf("Zanim dodam zamówienie do koszyka, potrzebuję jeszcze: %s.", strings.Join(names, ", "))
}

func addedMessage(item domain.CartItem) string {
	return fmt.Sprintf("Dodałem %s %s do koszyka. Cena: %s. Co jeszcze chciałbyś zamówić?", item.Drink, item.Size, item.Price)
}

// ItemLine renders one cart line of the checkout summary.
func ItemLine(item domain.CartItem) string {
	customizations := "bez dodatków"
	if len(item.Customizations) > 0 {
		customizations = strings.Join(item.Customizations, ", ")
	}
	substitutions := "standardowe"
	if len(item.Substitutions) > 0 {
		substitutions = strings.Join(item.Substitutions, ", ")
	}
	return fmt.Sprintf("- %s %s (%s, %s) - %s", item.Drink, item.Size, customizations, substitutions, item.Price)
}

func summaryMessage(cart domain.Cart) string {
	var b strings.Builder
	b.WriteString("🎉 Dziękuję za zamówienie! Oto podsumowanie:\n\n")
	for _, item := range cart.Items {
		b.WriteString(ItemLine(item))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n💰 Łączna kwota: %s\n\n", cart.Total)
	b.WriteString("Zamówienie zostanie przygotowane za kilka minut. Miłego dnia! ☕")
	return b.String()
}

func cartAuditLine(cart domain.Cart) string {
	return fmt.Sprintf("Koszyk: %d przedmiotów, %s", len(cart.Items), cart.Total)
}
