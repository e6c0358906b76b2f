package catalog

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

var (
	fakeNames  = []string{"Hat", "Pants", "Shirt", "Apple", "Banana", "Pots", "Towels", "Ford", "Chevy", "Hammer", "Wrench"}
	fakePrices = []string{"0.50", "5.99", "12.50", "59.95", "87.00", "120.50", "999.99"}
)

// productFactory builds random but reproducible products.
type productFactory struct {
	rng *rand.Rand
}

func newProductFactory(seed uint64) *productFactory {
	return &productFactory{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (f *productFactory) next() Product {
	cats := Categories()
	return Product{
		Name:        fakeNames[f.rng.IntN(len(fakeNames))],
		Description: "generated for tests",
		Price:       decimal.RequireFromString(fakePrices[f.rng.IntN(len(fakePrices))]),
		Available:   f.rng.IntN(2) == 0,
		Category:    cats[f.rng.IntN(len(cats))],
	}
}

func (f *productFactory) batch(n int) []Product {
	out := make([]Product, n)
	for i := range out {
		out[i] = f.next()
	}
	return out
}
