// Package catalog holds the shop's fixed content: products, categories, reviews
// and store details, shipped inside the binary as YAML.
package catalog

import (
	_ "embed"
	"fmt"

	"optic-storefront/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

type Data struct {
	Store      domain.StoreInfo  `yaml:"store"`
	Categories []domain.Category `yaml:"categories"`
	Products   []domain.Product  `yaml:"products"`
	Reviews    []domain.Review   `yaml:"reviews"`
}

// Load parses the embedded catalog.
func Load() (*Data, error) {
	return Parse(embedded)
}

// Parse decodes a catalog document and checks product ids are unique.
func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	seen := make(map[string]struct{}, len(data.Products))
	for i, p := range data.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog product %d: missing id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("catalog product %q: duplicate id", p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Currency == "" {
			data.Products[i].Currency = domain.DefaultCurrency.String()
		}
	}
	return &data, nil
}
