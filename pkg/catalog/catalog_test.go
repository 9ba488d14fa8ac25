package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/kawiarnia/pkg/catalog"
	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_BasePrice(t *testing.T) {
	c := catalog.Default()

	price, ok := c.BasePrice("espresso", domain.SizeSmall)
	assert.True(t, ok)
	assert.Equal(t, domain.PLN(8), price)

	price, ok = c.BasePrice("Latte", domain.SizeLarge)
	assert.True(t, ok, "lookup is case-insensitive")
	assert.Equal(t, domain.PLN(17), price)
}

func TestBasePrice_UnknownDefaultsToTen(t *testing.T) {
	c := catalog.Default()

	price, ok := c.BasePrice("mocha", domain.SizeMedium)
	assert.False(t, ok)
	assert.Equal(t, domain.PLN(10), price)

	price, ok = c.BasePrice("espresso", domain.Size("XL"))
	assert.False(t, ok)
	assert.Equal(t, domain.PLN(10), price)
}

func TestBasePrice_FallbackFromSpec(t *testing.T) {
	c, err := catalog.Parse([]byte(`
prices:
  espresso: {S: 8}
fallback_price: 7.5
`))
	require.NoError(t, err)

	price, ok := c.BasePrice("mocha", domain.SizeSmall)
	assert.False(t, ok)
	assert.Equal(t, domain.PLN(7.5), price)
	assert.Equal(t, domain.PLN(7.5), c.FallbackPrice())
	assert.Equal(t, domain.PLN(10), catalog.Default().FallbackPrice(), "catalogs do not share the fallback")

	_, err = catalog.New(catalog.Spec{FallbackPrice: -1})
	assert.Error(t, err)
}

func TestAddonPrice(t *testing.T) {
	c := catalog.Default()
	assert.Equal(t, domain.PLN(1), c.AddonPrice("mleko"))
	assert.Equal(t, domain.PLN(2), c.AddonPrice("syrop waniliowy"))
	assert.Equal(t, domain.Money(0), c.AddonPrice("cukier"))
	assert.Equal(t, domain.Money(0), c.AddonPrice("złoto jadalne"))
}

func TestPrice(t *testing.T) {
	c := catalog.Default()
	assert.Equal(t, domain.PLN(9), c.Price("espresso", domain.SizeSmall, []string{"mleko"}))
	assert.Equal(t, domain.PLN(12), c.Price("czarna", domain.SizeMedium, []string{"cukier", "syrop waniliowy"}))
	assert.Equal(t, domain.PLN(10), c.Price("unknown", domain.SizeSmall, []string{"unknown addon"}))
}

func TestCanonicalAndSizeName(t *testing.T) {
	c := catalog.Default()

	canonical, ok := c.Canonical("mleko sojowe")
	assert.True(t, ok)
	assert.Equal(t, "mleko", canonical)

	_, ok = c.Canonical("mleko owsiane")
	assert.False(t, ok)

	assert.Equal(t, "duży", c.SizeName(domain.SizeLarge))
	assert.Equal(t, "XL", c.SizeName(domain.Size("XL")))
}

func TestCategories_ReturnsCopies(t *testing.T) {
	c := catalog.Default()
	cats := c.Categories()
	require.Len(t, cats, 3)
	assert.Equal(t, "kawa", cats[0].Name)

	cats[0].Drinks[0] = "tampered"
	assert.Equal(t, "espresso", c.Categories()[0].Drinks[0])
}

func TestMenuText(t *testing.T) {
	menu := catalog.Default().MenuText()
	assert.Contains(t, menu, "**Dostępne napoje:**")
	assert.Contains(t, menu, "- ☕ Kawa: espresso, americano, cappuccino, latte, flat white")
	assert.Contains(t, menu, "- 🍵 Herbata: czarna, zielona, owocowa, earl grey")
	assert.Contains(t, menu, "**Rozmiary:** S (mały), M (średni), L (duży)")
	assert.Contains(t, menu, "**Dodatki:** mleko, śmietanka, cukier, syrop waniliowy, syrop karmelowy, syrop czekoladowy")
	assert.Contains(t, menu, "**Zamienniki:** mleko migdałowe, mleko sojowe, mleko kokosowe, słodzik")
}

func TestPriceList(t *testing.T) {
	list := catalog.Default().PriceList()
	assert.Contains(t, list, "- espresso: S 8 zł, M 10 zł, L 12 zł")
}

func TestNew_RejectsNegativePrices(t *testing.T) {
	_, err := catalog.New(catalog.Spec{
		Prices: map[string]map[domain.Size]domain.Money{"espresso": {domain.SizeSmall: -1}},
	})
	assert.Error(t, err)

	_, err = catalog.New(catalog.Spec{Addons: []catalog.Addon{{Name: "mleko", Price: -1}}})
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.yaml")
	content := `
prices:
  mocha: {S: 11, M: 13.5, L: 15}
addons:
  - name: bita śmietana
    price: 2.5
substitutions:
  - name: mleko owsiane
    canonical: mleko
sizes:
  S: mały
  M: średni
  L: duży
categories:
  - name: kawa
    label: "☕ Kawa"
    drinks: [mocha]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := catalog.Load(path)
	require.NoError(t, err)

	price, ok := c.BasePrice("mocha", domain.SizeMedium)
	assert.True(t, ok)
	assert.Equal(t, domain.PLN(13.5), price)
	assert.Equal(t, domain.PLN(2.5), c.AddonPrice("bita śmietana"))
	assert.Equal(t, domain.PLN(13.5), c.Price("mocha", domain.SizeSmall, []string{"bita śmietana", "cukier"}))
	assert.Contains(t, c.MenuText(), "- ☕ Kawa: mocha")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"no prices", "addons: []"},
		{"bad size", "prices:\n  mocha: {XL: 10}"},
		{"unknown field", "prices:\n  mocha: {S: 10}\nhappy_hour: true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
