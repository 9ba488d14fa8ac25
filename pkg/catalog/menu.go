package catalog

import (
	"fmt"
	"strings"

	"github.com/aretw0/kawiarnia/pkg/domain"
)

// MenuText renders the menu as markdown. The same text is shown to customers
// and embedded in the turn prompt.
func (c *Catalog) MenuText() string {
	var b strings.Builder
	b.WriteString("**Dostępne napoje:**\n")
	for _, cat := range c.categories {
		label := cat.Label
		if label == "" {
			label = cat.Name
		}
		fmt.Fprintf(&b, "- %s: %s\n", label, strings.Join(cat.Drinks, ", "))
	}

	sizes := make([]string, 0, len(c.sizeNames))
	for _, size := range domain.Sizes {
		if name, ok := c.sizeNames[size]; ok {
			sizes = append(sizes, fmt.Sprintf("%s (%s)", size, name))
		}
	}
	fmt.Fprintf(&b, "\n**Rozmiary:** %s\n", strings.Join(sizes, ", "))
	fmt.Fprintf(&b, "\n**Dodatki:** %s\n", strings.Join(c.addonOrder, ", "))
	fmt.Fprintf(&b, "\n**Zamienniki:** %s\n", strings.Join(c.subOrder, ", "))
	return b.String()
}

// PriceList renders every priced drink with its sizes, for prompts that need
// the oracle to quote prices.
func (c *Catalog) PriceList() string {
	var b strings.Builder
	for _, drink := range c.Drinks() {
		row := c.prices[drink]
		parts := make([]string, 0, len(row))
		for _, size := range domain.Sizes {
			if price, ok := row[size]; ok {
				parts = append(parts, fmt.Sprintf("%s %s", size, price))
			}
		}
		fmt.Fprintf(&b, "- %s: %s\n", drink, strings.Join(parts, ", "))
	}
	return b.String()
}
