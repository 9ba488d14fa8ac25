// Package heuristic implements an offline classification oracle driven by
// keyword matching against the catalog. It needs no network and is
// deterministic, which makes it the oracle of the demo mode and of the
// acceptance suite.
package heuristic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/aretw0/kawiarnia/pkg/catalog"
	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/aretw0/kawiarnia/pkg/oracle"
)

var (
	// Stems that make a message invalid under the default policy.
	profanity   = []string{"kurw", "chuj", "pierdol", "jeban", "fuck", "shit"}
	priceTamper = [][]string{{"zmie", "cen"}, {"obniż", "cen"}, {"obniz", "cen"}, {"za", "darmo"}, {"rabat"}}
	langSwitch  = [][]string{{"english"}, {"angielsk"}, {"deutsch"}, {"niemieck"}, {"speak"}}

	checkoutStems = [][]string{{"podsumuj"}, {"zapła"}, {"płac"}, {"rachun"}, {"to", "wszystko"}}
	cartStems     = [][]string{{"koszyk"}, {"dodaj"}, {"zatwierd"}}
	modifyStems   = [][]string{{"zmie"}, {"zamiast"}, {"jednak"}}
	menuStems     = [][]string{{"menu"}, {"jakie"}, {"napoj"}, {"co", "macie"}, {"oferta"}}
	priceStems    = [][]string{{"ile"}, {"cena"}, {"kosztuj"}}

	sizeStems = map[domain.Size][]string{
		domain.SizeSmall:  {"mał", "mala", "maly", "male"},
		domain.SizeMedium: {"średn", "sredn"},
		domain.SizeLarge:  {"duż", "duz"},
	}
)

// Oracle is a keyword oracle over a catalog.
type Oracle struct {
	catalog *catalog.Catalog
}

// New creates a heuristic oracle. A nil catalog selects the default menu.
func New(cat *catalog.Catalog) *Oracle {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Oracle{catalog: cat}
}

// Classify implements oracle.Oracle.
func (o *Oracle) Classify(ctx context.Context, req oracle.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	msg := oracle.CustomerMessage(req.Prompt)
	tokens := tokenize(msg)

	switch req.Shape {
	case oracle.ShapeValidation:
		return fmt.Sprintf(`{"is_valid": %t}`, o.valid(tokens)), nil
	case oracle.ShapeTurn:
		data, err := json.Marshal(o.turn(tokens, currentOrder(req.Prompt)))
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("heuristic: unsupported shape %q", req.Shape)
	}
}

func (o *Oracle) valid(tokens []string) bool {
	for _, stem := range profanity {
		if hasStem(tokens, stem) {
			return false
		}
	}
	return !matchAny(tokens, priceTamper) && !matchAny(tokens, langSwitch)
}

type turnPayload struct {
	Intent         string   `json:"intent"`
	Drink          *string  `json:"drink_type"`
	Size           *string  `json:"size"`
	Customizations []string `json:"customizations"`
	Substitutions  []string `json:"substitutions"`
	Response       string   `json:"response"`
}

func (o *Oracle) turn(tokens []string, current domain.WorkingOrder) turnPayload {
	p := turnPayload{Customizations: []string{}, Substitutions: []string{}}

	drink := o.findDrink(tokens)
	size := findSize(tokens)
	subs, replaced := o.findSubstitutions(tokens)
	addons := o.findAddons(tokens, replaced)
	p.Customizations = append(p.Customizations, addons...)
	p.Substitutions = append(p.Substitutions, subs...)
	if drink != "" {
		p.Drink = &drink
	}
	if size != "" {
		s := string(size)
		p.Size = &s
	}
	slots := drink != "" || size != "" || len(addons) > 0 || len(subs) > 0

	merged := current.Merge(domain.OrderUpdate{Drink: p.Drink, Size: &size, Customizations: addons, Substitutions: subs})

	switch {
	case matchAny(tokens, checkoutStems):
		p.Intent = domain.IntentCheckout.String()
		p.Response = "Podsumowuję zamówienie."
	case matchAny(tokens, cartStems) || hasToken(tokens, "tak"):
		p.Intent = domain.IntentAddToCart.String()
		p.Response = "Dodaję do koszyka."
	case matchAny(tokens, menuStems) && drink == "":
		p.Intent = domain.IntentAskQuestion.String()
		p.Response = "Oto nasze menu:\n\n" + o.catalog.MenuText()
	case matchAny(tokens, priceStems) && drink != "":
		p.Intent = domain.IntentAskQuestion.String()
		p.Response = o.priceReply(drink)
	case slots && matchAny(tokens, modifyStems):
		p.Intent = domain.IntentModifyOrder.String()
		p.Response = o.orderReply(merged, subs)
	case slots:
		p.Intent = domain.IntentOrderDrink.String()
		p.Response = o.orderReply(merged, subs)
	default:
		p.Intent = domain.IntentAskQuestion.String()
		p.Response = "Chętnie pomogę! Co mogę podać? Zapytaj o menu, jeśli chcesz zobaczyć nasze napoje."
	}
	return p
}

func (o *Oracle) orderReply(order domain.WorkingOrder, subs []string) string {
	var b strings.Builder
	for _, s := range subs {
		if canonical, ok := o.catalog.Canonical(s); ok {
			fmt.Fprintf(&b, "Podam %s zamiast: %s. ", s, canonical)
		}
	}
	switch {
	case order.Drink == "":
		b.WriteString("Jaki napój podać?")
	case order.Size == "":
		fmt.Fprintf(&b, "%s, świetny wybór! Jaki rozmiar: S (%s), M (%s) czy L (%s)?",
			capitalize(order.Drink),
			o.catalog.SizeName(domain.SizeSmall), o.catalog.SizeName(domain.SizeMedium), o.catalog.SizeName(domain.SizeLarge))
	default:
		price := o.catalog.Price(order.Drink, order.Size, order.Customizations)
		fmt.Fprintf(&b, "Zamówienie: %s %s", order.Drink, order.Size)
		if len(order.Customizations) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(order.Customizations, ", "))
		}
		fmt.Fprintf(&b, ", cena %s. Czy dodać do koszyka?", price)
	}
	return b.String()
}

func (o *Oracle) priceReply(drink string) string {
	prices := o.catalog.Prices(drink)
	parts := make([]string, 0, len(prices))
	for _, size := range domain.Sizes {
		if p, ok := prices[size]; ok {
			parts = append(parts, fmt.Sprintf("%s %s", size, p))
		}
	}
	return fmt.Sprintf("%s kosztuje: %s.", capitalize(drink), strings.Join(parts, ", "))
}

// findDrink returns the catalog drink whose name matches the most words.
func (o *Oracle) findDrink(tokens []string) string {
	best, bestWords := "", 0
	for _, drink := range o.catalog.Drinks() {
		words := strings.Fields(drink)
		if len(words) > bestWords && matchPhrase(tokens, drink, 4, 2) {
			best, bestWords = drink, len(words)
		}
	}
	return best
}

func (o *Oracle) findSubstitutions(tokens []string) ([]string, map[string]bool) {
	var found []string
	replaced := make(map[string]bool)
	for _, name := range o.catalog.Substitutions() {
		if matchPhrase(tokens, name, 3, 3) {
			found = append(found, name)
			if canonical, ok := o.catalog.Canonical(name); ok {
				replaced[canonical] = true
			}
		}
	}
	return found, replaced
}

func (o *Oracle) findAddons(tokens []string, replaced map[string]bool) []string {
	var found []string
	for _, name := range o.catalog.Addons() {
		if replaced[name] {
			continue
		}
		if matchPhrase(tokens, name, 3, 3) {
			found = append(found, name)
		}
	}
	return found
}

func findSize(tokens []string) domain.Size {
	for _, size := range domain.Sizes {
		for _, stem := range sizeStems[size] {
			if hasStem(tokens, stem) {
				return size
			}
		}
		for _, t := range tokens {
			if t == strings.ToLower(string(size)) {
				return size
			}
		}
	}
	return ""
}

// currentOrder reads the order snapshot embedded in a turn prompt.
func currentOrder(prompt string) domain.WorkingOrder {
	const marker = "Obecne zamówienie: "
	i := strings.Index(prompt, marker)
	if i < 0 {
		return domain.WorkingOrder{}
	}
	rest := prompt[i+len(marker):]
	if j := strings.Index(rest, "\n"); j >= 0 {
		rest = rest[:j]
	}
	var order domain.WorkingOrder
	if err := json.Unmarshal([]byte(rest), &order); err != nil {
		return domain.WorkingOrder{}
	}
	return order
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// stem keeps the first max(min, n-cut) runes of word.
func stem(word string, min, cut int) string {
	r := []rune(word)
	n := len(r) - cut
	if n < min {
		n = min
	}
	if n > len(r) {
		n = len(r)
	}
	return string(r[:n])
}

func hasStem(tokens []string, s string) bool {
	for _, t := range tokens {
		if strings.HasPrefix(t, s) {
			return true
		}
	}
	return false
}

func hasToken(tokens []string, word string) bool {
	for _, t := range tokens {
		if t == word {
			return true
		}
	}
	return false
}

// matchPhrase reports whether every word of phrase appears, stemmed, among tokens.
func matchPhrase(tokens []string, phrase string, min, cut int) bool {
	words := strings.Fields(strings.ToLower(phrase))
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !hasStem(tokens, stem(w, min, cut)) {
			return false
		}
	}
	return true
}

func matchAny(tokens []string, groups [][]string) bool {
	for _, group := range groups {
		all := true
		for _, s := range group {
			if !hasStem(tokens, s) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
