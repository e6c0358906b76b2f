package fixtures_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ProductStore/internal/catalog"
	"ProductStore/internal/fixtures"
)

const table = `
| name    | description   | price  | available | category |
| Hat     | A red fedora  | 59.95  | True      | CLOTHS   |
| Shoes   | Blue shoes    | 120.50 | False     | CLOTHS   |
| Big Mac | 1/4 lb burger | 5.99   | True      | FOOD     |
`

func newCatalog(t *testing.T) (*httptest.Server, catalog.Store) {
	t.Helper()

	st := catalog.NewMemStore()
	h := catalog.NewHandler(&catalog.Server{Store: st}, catalog.HTTPDeps{Log: zap.NewNop(), Service: "catalog"})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts, st
}

func TestLoader_Load(t *testing.T) {
	ts, st := newCatalog(t)
	ctx := context.Background()

	stale := catalog.Product{Name: "Stale", Category: catalog.CategoryTools}
	require.NoError(t, stale.Create(ctx, st))

	rows, err := fixtures.ReadTable(strings.NewReader(table))
	require.NoError(t, err)

	l := fixtures.NewLoader(ts.URL+"/", zap.NewNop())
	ids, err := l.Load(ctx, rows)
	require.NoError(t, err)
	require.Len(t, ids, 3)

	all, err := catalog.All(ctx, st)
	require.NoError(t, err)
	require.Len(t, all, 3)

	for i, p := range all {
		assert.Equal(t, ids[i], *p.ID)
		assert.Equal(t, rows[i].Name, p.Name)
		assert.Equal(t, rows[i].Category, p.Category.String())
	}
	assert.Equal(t, "120.50", catalog.FormatPrice(all[1].Price))
	assert.False(t, all[1].Available)
}

func TestLoader_ResetEmpty(t *testing.T) {
	ts, _ := newCatalog(t)

	n, err := fixtures.NewLoader(ts.URL, nil).Reset(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoader_RejectedRow(t *testing.T) {
	ts, st := newCatalog(t)

	rows := []fixtures.Row{
		{Name: "Hat", Description: "A red fedora", Price: "59.95", Available: "true", Category: "CLOTHS"},
		{Name: "Spoon", Description: "Silver", Price: "2.00", Available: "true", Category: "CUTLERY"},
	}

	ids, err := fixtures.NewLoader(ts.URL, nil).Load(context.Background(), rows)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fixtures.ErrUnexpectedStatus))
	assert.Len(t, ids, 1)

	all, err := catalog.All(context.Background(), st)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLoader_ListFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "boom"})
	}))
	t.Cleanup(ts.Close)

	_, err := fixtures.NewLoader(ts.URL, nil).Reset(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, fixtures.ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "boom")
}
