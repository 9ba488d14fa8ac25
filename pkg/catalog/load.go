package catalog

import (
	"bytes"
	"fmt"
	"os"

	"github.com/aretw0/kawiarnia/pkg/domain"
	"gopkg.in/yaml.v3"
)

// fileSpec is the on-disk shape of a catalog. Prices are in złoty.
type fileSpec struct {
	Prices        map[string]map[string]float64 `yaml:"prices"`
	Addons        []fileAddon                   `yaml:"addons"`
	Substitutions []fileSubstitution            `yaml:"substitutions"`
	Sizes         map[string]string             `yaml:"sizes"`
	Categories    []fileCategory                `yaml:"categories"`
	FallbackPrice float64                       `yaml:"fallback_price"`
}

type fileAddon struct {
	Name  string  `yaml:"name"`
	Price float64 `yaml:"price"`
}

type fileSubstitution struct {
	Name      string `yaml:"name"`
	Canonical string `yaml:"canonical"`
}

type fileCategory struct {
	Name   string   `yaml:"name"`
	Label  string   `yaml:"label"`
	Drinks []string `yaml:"drinks"`
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog. Unknown fields are rejected.
func Parse(data []byte) (*Catalog, error) {
	var fs fileSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fs); err != nil {
		return nil, fmt.Errorf("invalid catalog yaml: %w", err)
	}
	if len(fs.Prices) == 0 {
		return nil, fmt.Errorf("catalog has no prices")
	}

	spec := Spec{
		Prices:        make(map[string]map[domain.Size]domain.Money, len(fs.Prices)),
		SizeNames:     make(map[domain.Size]string, len(fs.Sizes)),
		FallbackPrice: domain.PLN(fs.FallbackPrice),
	}
	for drink, sizes := range fs.Prices {
		row := make(map[domain.Size]domain.Money, len(sizes))
		for raw, price := range sizes {
			size, err := domain.ParseSize(raw)
			if err != nil {
				return nil, fmt.Errorf("drink %q: %w", drink, err)
			}
			row[size] = domain.PLN(price)
		}
		spec.Prices[drink] = row
	}
	for _, a := range fs.Addons {
		spec.Addons = append(spec.Addons, Addon{Name: a.Name, Price: domain.PLN(a.Price)})
	}
	for _, s := range fs.Substitutions {
		spec.Substitutions = append(spec.Substitutions, Substitution{Name: s.Name, Canonical: s.Canonical})
	}
	for raw, name := range fs.Sizes {
		size, err := domain.ParseSize(raw)
		if err != nil {
			return nil, fmt.Errorf("sizes: %w", err)
		}
		spec.SizeNames[size] = name
	}
	for _, cat := range fs.Categories {
		spec.Categories = append(spec.Categories, Category(cat))
	}
	return New(spec)
}
