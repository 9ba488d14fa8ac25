package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/kawiarnia/pkg/domain"
)

// defaultFallbackPrice is 10 zł, charged for a drink/size pair missing from
// the price table when the Spec sets no FallbackPrice.
const defaultFallbackPrice domain.Money = 1000

// Category groups drinks for the menu.
type Category struct {
	Name   string
	Label  string
	Drinks []string
}

// Catalog is the immutable price and menu table. All lookups are read-only
// and return copies, so a Catalog can be shared by every session.
type Catalog struct {
	prices        map[string]map[domain.Size]domain.Money
	addons        map[string]domain.Money
	addonOrder    []string
	substitutions map[string]string
	subOrder      []string
	sizeNames     map[domain.Size]string
	categories    []Category
	fallback      domain.Money
}

// Spec is the mutable description a Catalog is built from.
type Spec struct {
	Prices        map[string]map[domain.Size]domain.Money
	Addons        []Addon
	Substitutions []Substitution
	SizeNames     map[domain.Size]string
	Categories    []Category
	// FallbackPrice prices unlisted drinks; zero means 10 zł.
	FallbackPrice domain.Money
}

// Addon is a priced extra.
type Addon struct {
	Name  string
	Price domain.Money
}

// Substitution maps an alternative ingredient to the one it replaces.
type Substitution struct {
	Name      string
	Canonical string
}

// New builds a Catalog from spec. Drink and addon names are matched
// case-insensitively.
func New(spec Spec) (*Catalog, error) {
	c := &Catalog{
		prices:        make(map[string]map[domain.Size]domain.Money, len(spec.Prices)),
		addons:        make(map[string]domain.Money, len(spec.Addons)),
		substitutions: make(map[string]string, len(spec.Substitutions)),
		sizeNames:     make(map[domain.Size]string, len(spec.SizeNames)),
		fallback:      spec.FallbackPrice,
	}
	if c.fallback < 0 {
		return nil, fmt.Errorf("catalog: negative fallback price")
	}
	if c.fallback == 0 {
		c.fallback = defaultFallbackPrice
	}

	for drink, sizes := range spec.Prices {
		key := normalize(drink)
		if key == "" {
			return nil, fmt.Errorf("catalog: empty drink name")
		}
		table := make(map[domain.Size]domain.Money, len(sizes))
		for size, price := range sizes {
			if price < 0 {
				return nil, fmt.Errorf("catalog: negative price for %s %s", drink, size)
			}
			table[size] = price
		}
		c.prices[key] = table
	}

	for _, a := range spec.Addons {
		key := normalize(a.Name)
		if key == "" {
			return nil, fmt.Errorf("catalog: empty addon name")
		}
		if a.Price < 0 {
			return nil, fmt.Errorf("catalog: negative price for addon %s", a.Name)
		}
		if _, dup := c.addons[key]; !dup {
			c.addonOrder = append(c.addonOrder, a.Name)
		}
		c.addons[key] = a.Price
	}

	for _, s := range spec.Substitutions {
		key := normalize(s.Name)
		if key == "" {
			return nil, fmt.Errorf("catalog: empty substitution name")
		}
		if _, dup := c.substitutions[key]; !dup {
			c.subOrder = append(c.subOrder, s.Name)
		}
		c.substitutions[key] = s.Canonical
	}

	for size, name := range spec.SizeNames {
		c.sizeNames[size] = name
	}

	for _, cat := range spec.Categories {
		c.categories = append(c.categories, Category{
			Name:   cat.Name,
			Label:  cat.Label,
			Drinks: append([]string(nil), cat.Drinks...),
		})
	}

	return c, nil
}

// BasePrice returns the price of drink in size, or the fallback price when the
// pair is not in the table. The second result reports whether it was found.
func (c *Catalog) BasePrice(drink string, size domain.Size) (domain.Money, bool) {
	if sizes, ok := c.prices[normalize(drink)]; ok {
		if price, ok := sizes[size]; ok {
			return price, true
		}
	}
	return c.fallback, false
}

// FallbackPrice is the base price of drinks missing from the table.
func (c *Catalog) FallbackPrice() domain.Money {
	return c.fallback
}

// AddonPrice returns the surcharge for addon; unknown addons are free.
func (c *Catalog) AddonPrice(addon string) domain.Money {
	return c.addons[normalize(addon)]
}

// Price computes the price of a line: base price plus every addon surcharge.
func (c *Catalog) Price(drink string, size domain.Size, customizations []string) domain.Money {
	price, _ := c.BasePrice(drink, size)
	for _, addon := range customizations {
		price += c.AddonPrice(addon)
	}
	return price
}

// Canonical maps a substitution onto the ingredient it replaces.
func (c *Catalog) Canonical(substitution string) (string, bool) {
	v, ok := c.substitutions[normalize(substitution)]
	return v, ok
}

// SizeName returns the display name of a size, falling back to the code.
func (c *Catalog) SizeName(size domain.Size) string {
	if name, ok := c.sizeNames[size]; ok {
		return name
	}
	return string(size)
}

// Categories returns the drink listing grouped by category.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{Name: cat.Name, Label: cat.Label, Drinks: append([]string(nil), cat.Drinks...)}
	}
	return out
}

// Drinks returns every drink that has a price, sorted by name.
func (c *Catalog) Drinks() []string {
	out := make([]string, 0, len(c.prices))
	for d := range c.prices {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Addons returns addon names in declaration order.
func (c *Catalog) Addons() []string {
	return append([]string(nil), c.addonOrder...)
}

// Substitutions returns substitution names in declaration order.
func (c *Catalog) Substitutions() []string {
	return append([]string(nil), c.subOrder...)
}

// Prices returns a copy of the price row of drink.
func (c *Catalog) Prices(drink string) map[domain.Size]domain.Money {
	row := c.prices[normalize(drink)]
	out := make(map[domain.Size]domain.Money, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
