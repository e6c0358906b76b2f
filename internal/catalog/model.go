package catalog

import "context"

// Create inserts a transient product and assigns the store generated id.
// On failure p keeps a nil ID.
func (p *Product) Create(ctx context.Context, st Store) error {
	if err := p.Validate(); err != nil {
		return err
	}

	id, err := st.Insert(ctx, *p)
	if err != nil {
		return err
	}
	p.ID = &id
	return nil
}

// Update writes the current field values to the row with p's id. It does not
// check that the row exists; callers that need a 404 look the product up first.
func (p *Product) Update(ctx context.Context, st Store) error {
	if p.ID == nil {
		return validationErr("Update called with empty ID field")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return st.Update(ctx, *p.ID, *p)
}

func (p *Product) Delete(ctx context.Context, st Store) error {
	if p.ID == nil {
		return validationErr("Delete called with empty ID field")
	}
	return st.Delete(ctx, *p.ID)
}

// All returns every persisted product ordered by id.
func All(ctx context.Context, st Store) ([]Product, error) {
	return st.List(ctx, Filter{})
}

// Find returns nil without an error when no product has the id.
func Find(ctx context.Context, st Store, id int64) (*Product, error) {
	p, ok, err := st.Get(ctx, id)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func FindByName(ctx context.Context, st Store, name string) ([]Product, error) {
	return st.List(ctx, Filter{Name: &name})
}

func FindByCategory(ctx context.Context, st Store, c Category) ([]Product, error) {
	return st.List(ctx, Filter{Category: &c})
}

func FindByAvailability(ctx context.Context, st Store, available bool) ([]Product, error) {
	return st.List(ctx, Filter{Available: &available})
}

// FindByPrice matches on decimal value, so "12.5", "12.50" and " 12.50 " all
// select the same rows.
func FindByPrice(ctx context.Context, st Store, price string) ([]Product, error) {
	d, err := ParsePrice(price)
	if err != nil {
		return nil, err
	}
	return st.List(ctx, Filter{Price: &d})
}
