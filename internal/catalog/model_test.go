package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeCases runs the same checks against every Store implementation that is
// available in the current environment.
func storeCases(t *testing.T, fn func(t *testing.T, st Store)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) { fn(t, NewMemStore()) })
	t.Run("postgres", func(t *testing.T) { fn(t, newTestPostgresStore(t)) })
}

func createBatch(t *testing.T, st Store, n int, seed uint64) []Product {
	t.Helper()

	products := newProductFactory(seed).batch(n)
	for i := range products {
		require.NoError(t, products[i].Create(context.Background(), st))
	}
	return products
}

func TestModel_CreateAssignsID(t *testing.T) {
	storeCases(t, func(t *testing.T, st Store) {
		ctx := context.Background()

		products, err := All(ctx, st)
		require.NoError(t, err)
		require.Empty(t, products)

		p := fedora()
		require.NoError(t, p.Create(ctx, st))
		require.NotNil(t, p.ID)

		products, err = All(ctx, st)
		require.NoError(t, err)
		require.Len(t, products, 1)

		got := products[0]
		assert.Equal(t, *p.ID, *got.ID)
		assert.Equal(t, p.Name, got.Name)
		assert.Equal(t, p.Description, got.Description)
		assert.True(t, p.Price.Equal(got.Price))
		assert.Equal(t, p.Available, got.Available)
		assert.Equal(t, p.Category, got.Category)
	})
}

func TestModel_CreateRejectsInvalid(t *testing.T) {
	storeCases(t, func(t *testing.T, st Store) {
		p := fedora()
		p.Name = ""

		err := p.Create(context.Background(), st)
		requireValidation(t, err, "Invalid product: missing name")
		assert.Nil(t, p.ID)

		products, err := All(context.Background(), st)
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestModel_Find(t *testing.T) {
	storeCases(t, func(t *testing.T, st Store) {
		ctx := context.Background()
		p := fedora()
		require.NoError(t, p.Create(ctx, st))

		got, err := Find(ctx, st, *p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, p.Name, got.Name)
		assert.True(t, p.Price.Equal(got.Price))

		missing, err := Find(ctx, st, *p.ID+1)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestModel_Update(t *testing.T) {
	storeCases(t, func(t *testing.T, st Store) {
		ctx := context.Background()
		p := fedora()
		require.NoError(t, p.Create(ctx, st))
		id := *p.ID

		p.Description = "testing"
		require.NoError(t, p.Update(ctx, st))
		assert.Equal(t, id, *p.ID)

		products, err := All(ctx, st)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, id, *products[0].ID)
		assert.Equal(t, "testing", products[0].Description)
	})
}

func TestModel_UpdateWithoutID(t *testing.T) {
	storeCases(t, func(t *testing.T, st Store) {
		p := fedora()
		require.NoError(t, p.Create(context.Background(), st))

		p.ID = nil
		requireValidation(t, p.Update(context.Background(), st), "Update called with empty ID field")
	})
}

func TestModel_UpdateMissingRowIsSilent(t *testing.T) {
	storeCases(t, func(t *testing.T, st Store) {
		ctx := context.Background()
		p := fedora()
		id := int64(1 << 40)
		p.ID = &id

		require.NoError(t, p.Update(ctx, st))

		got, err := Find(ctx, st, id)
		require.NoError(t, err)
		assert.Nil(t, got, "update must not create rows")
	})
}

func TestModel_Delete(t *testing.T) {
	storeCases(t, func(t *testing.T, st Store) {
		ctx := context.Background()
		p := fedora()
		require.NoError(t, p.Create(ctx, st))

		require.NoError(t, p.Delete(ctx, st))
		products, err := All(ctx, st)
		require.NoError(t, err)
		assert.Empty(t, products)

		require.NoError(t, p.Delete(ctx, st), "second delete is a no-op")

		var transient Product
		requireValidation(t, transient.Delete(ctx, st), "Delete called with empty ID field")
	})
}

func TestModel_ListAll(t *testing.T) {
	storeCases(t, func(t *testing.T, st Store) {
		createBatch(t, st, 5, 2)

		products, err := All(context.Background(), st)
		require.NoError(t, err)
		require.Len(t, products, 5)
		for i := 1; i < len(products); i++ {
			assert.Less(t, *products[i-1].ID, *products[i].ID)
		}
	})
}

func TestModel_FindByName(t *testing.T) {
	storeCases(t, func(t *testing.T, st Store) {
		ctx := context.Background()
		products := createBatch(t, st, 5, 3)
		name := products[0].Name

		want := 0
		for _, p := range products {
			if p.Name == name {
				want++
			}
		}

		found, err := FindByName(ctx, st, name)
		require.NoError(t, err)
		require.Len(t, found, want)
		for _, p := range found {
			assert.Equal(t, name, p.Name)
		}
	})
}

func TestModel_FindByAvailability(t *testing.T) {
	storeCases(t, func(t *testing.T, st Store) {
		ctx := context.Background()
		products := createBatch(t, st, 10, 4)
		available := products[0].Available

		want := 0
		for _, p := range products {
			if p.Available == available {
				want++
			}
		}

		found, err := FindByAvailability(ctx, st, available)
		require.NoError(t, err)
		require.Len(t, found, want)
		for _, p := range found {
			assert.Equal(t, available, p.Available)
		}
	})
}

func TestModel_FindByCategory(t *testing.T) {
	storeCases(t, func(t *testing.T, st Store) {
		ctx := context.Background()
		products := createBatch(t, st, 10, 5)
		category := products[0].Category

		want := 0
		for _, p := range products {
			if p.Category == category {
				want++
			}
		}

		found, err := FindByCategory(ctx, st, category)
		require.NoError(t, err)
		require.Len(t, found, want)
		for _, p := range found {
			assert.Equal(t, category, p.Category)
		}
	})
}

func TestModel_FindByPrice(t *testing.T) {
	storeCases(t, func(t *testing.T, st Store) {
		ctx := context.Background()
		products := createBatch(t, st, 10, 6)
		price := products[0].Price

		want := 0
		for _, p := range products {
			if p.Price.Equal(price) {
				want++
			}
		}

		exact, err := FindByPrice(ctx, st, price.String())
		require.NoError(t, err)
		require.Len(t, exact, want)
		for _, p := range exact {
			assert.True(t, price.Equal(p.Price))
		}

		for _, text := range []string{FormatPrice(price) + " ", " " + FormatPrice(price), "\t" + price.String() + "\n"} {
			padded, err := FindByPrice(ctx, st, text)
			require.NoError(t, err)
			assert.Equal(t, ids(exact), ids(padded), "price text %q", text)
		}

		_, err = FindByPrice(ctx, st, "cheap")
		assert.True(t, IsValidation(err))
	})
}

func ids(products []Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = *p.ID
	}
	return out
}
