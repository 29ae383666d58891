package service

import (
	"strings"

	"github.com/starloomhq/starloom/internal/product/domain"
)

var products = []domain.Product{
	{
		Key:         "basic",
		Name:        "Basic Reading",
		Price:       999,
		Description: "Discover your core personality and life path",
		Tier:        "basic",
	},
	{
		Key:         "detailed",
		Name:        "Detailed Analysis",
		Price:       1999,
		Description: "Deep dive into your soul's journey",
		Tier:        "detailed",
	},
	{
		Key:         "comprehensive",
		Name:        "Comprehensive Reading",
		Price:       2999,
		Description: "Complete relationship compatibility analysis",
		Tier:        "comprehensive",
	},
}

type Catalog struct {
	byName map[string]domain.Product
}

func New() domain.Catalog {
	byName := make(map[string]domain.Product, len(products)*2)
	for _, p := range products {
		byName[normalize(p.Name)] = p
		byName[p.Key] = p
	}
	return &Catalog{byName: byName}
}

func (c *Catalog) Resolve(name string) (domain.Product, error) {
	p, ok := c.byName[normalize(name)]
	if !ok {
		return domain.Product{}, domain.ErrUnknownProduct
	}
	return p, nil
}

func (c *Catalog) List() []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}

func normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
