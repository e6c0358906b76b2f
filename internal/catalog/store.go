package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Filter narrows a listing to one attribute. The zero Filter matches every
// product; when several fields are set, the first non-nil one in declaration
// order wins.
type Filter struct {
	Name      *string
	Category  *Category
	Available *bool
	Price     *decimal.Decimal
}

func (f Filter) Match(p Product) bool {
	switch {
	case f.Name != nil:
		return p.Name == *f.Name
	case f.Category != nil:
		return p.Category == *f.Category
	case f.Available != nil:
		return p.Available == *f.Available
	case f.Price != nil:
		return p.Price.Equal(*f.Price)
	default:
		return true
	}
}

// Store is the relational collaborator behind the product operations. Each
// call is one implicit transaction.
type Store interface {
	Ping(ctx context.Context) error
	Insert(ctx context.Context, p Product) (int64, error)
	Update(ctx context.Context, id int64, p Product) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (Product, bool, error)
	List(ctx context.Context, f Filter) ([]Product, error)
}
