package catalog

import "github.com/aretw0/kawiarnia/pkg/domain"

func row(s, m, l float64) map[domain.Size]domain.Money {
	return map[domain.Size]domain.Money{
		domain.SizeSmall:  domain.PLN(s),
		domain.SizeMedium: domain.PLN(m),
		domain.SizeLarge:  domain.PLN(l),
	}
}

// DefaultSpec is the house menu.
func DefaultSpec() Spec {
	return Spec{
		Prices: map[string]map[domain.Size]domain.Money{
			"espresso":    row(8, 10, 12),
			"americano":   row(10, 12, 14),
			"cappuccino":  row(12, 14, 16),
			"latte":       row(13, 15, 17),
			"flat white":  row(13, 15, 17),
			"czarna":      row(8, 10, 12),
			"zielona":     row(8, 10, 12),
			"owocowa":     row(9, 11, 13),
			"earl grey":   row(9, 11, 13),
			"frappuccino": row(15, 17, 19),
			"smoothie":    row(16, 18, 20),
			"lemoniada":   row(12, 14, 16),
		},
		Addons: []Addon{
			{Name: "mleko", Price: domain.PLN(1)},
			{Name: "śmietanka", Price: domain.PLN(1)},
			{Name: "cukier", Price: 0},
			{Name: "syrop waniliowy", Price: domain.PLN(2)},
			{Name: "syrop karmelowy", Price: domain.PLN(2)},
			{Name: "syrop czekoladowy", Price: domain.PLN(2)},
		},
		Substitutions: []Substitution{
			{Name: "mleko migdałowe", Canonical: "mleko"},
			{Name: "mleko sojowe", Canonical: "mleko"},
			{Name: "mleko kokosowe", Canonical: "mleko"},
			{Name: "słodzik", Canonical: "cukier"},
		},
		SizeNames: map[domain.Size]string{
			domain.SizeSmall:  "mały",
			domain.SizeMedium: "średni",
			domain.SizeLarge:  "duży",
		},
		Categories: []Category{
			{Name: "kawa", Label: "☕ Kawa", Drinks: []string{"espresso", "americano", "cappuccino", "latte", "flat white"}},
			{Name: "herbata", Label: "🍵 Herbata", Drinks: []string{"czarna", "zielona", "owocowa", "earl grey"}},
			{Name: "napoje zimne", Label: "🥤 Napoje zimne", Drinks: []string{"frappuccino", "smoothie", "lemoniada"}},
		},
	}
}

// Default returns the house catalog.
func Default() *Catalog {
	c, err := New(DefaultSpec())
	if err != nil {
		panic(err) // static table
	}
	return c
}
