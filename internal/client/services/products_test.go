package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/warrantyguard/internal/client/client"
	"github.com/dmitrijs2005/warrantyguard/internal/common"
	"github.com/dmitrijs2005/warrantyguard/internal/warranty"
)

func setupRepos(t *testing.T) *client.Repositories {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return client.NewRepositories(db)
}

func newProductService(t *testing.T) *productService {
	t.Helper()
	svc := NewProductService(setupRepos(t).Products).(*productService)
	n := 0
	svc.newID = func() (string, error) {
		n++
		return fmt.Sprintf("id-%d", n), nil
	}
	return svc
}

func draft(name, serial string) warranty.Draft {
	return warranty.Draft{Name: name, SerialNumber: serial, PurchaseDate: "2024-01-15", WarrantyMonths: "12", Category: "electronics"}
}

func names(ps []warranty.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestProductService_Add(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	p, err := svc.Add(ctx, draft("TV", "SN-1"))
	require.NoError(t, err)
	assert.Equal(t, "id-1", p.ID)

	_, err = svc.Add(ctx, draft("Phone", "SN-2"))
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Phone", "TV"}, names(list))
}

func TestProductService_Add_Invalid(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	bad := draft("TV", "")
	bad.WarrantyMonths = "abc"

	_, err := svc.Add(ctx, bad)
	var verr *warranty.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "warrantyMonths", verr.Field)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductService_Add_IDFailure(t *testing.T) {
	svc := newProductService(t)
	svc.newID = func() (string, error) { return "", errors.New("no entropy") }

	_, err := svc.Add(context.Background(), draft("TV", ""))
	require.Error(t, err)
}

func TestProductService_Remove(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	require.NoError(t, svc.Remove(ctx, "absent"), "remove on empty store")

	a, err := svc.Add(ctx, draft("TV", ""))
	require.NoError(t, err)
	_, err = svc.Add(ctx, draft("Phone", ""))
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "absent"))
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2, "absent id leaves the store unchanged")

	require.NoError(t, svc.Remove(ctx, a.ID))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Phone"}, names(list))

	_, err = svc.Get(ctx, a.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestProductService_Search(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	for _, d := range []warranty.Draft{
		draft("Samsung TV", "SN-AAA"),
		draft("iPhone", "F2LXK"),
		draft("Kulkas", "tv-fridge-01"),
		draft("Mesin Cuci", "MC-9"),
	} {
		_, err := svc.Add(ctx, d)
		require.NoError(t, err)
	}

	tests := []struct {
		term string
		want []string
	}{
		{term: "", want: []string{"Mesin Cuci", "Kulkas", "iPhone", "Samsung TV"}},
		{term: "   ", want: []string{"Mesin Cuci", "Kulkas", "iPhone", "Samsung TV"}},
		{term: "tv", want: []string{"Kulkas", "Samsung TV"}},
		{term: "IPHONE", want: []string{"iPhone"}},
		{term: "f2lx", want: []string{"iPhone"}},
		{term: "cuci", want: []string{"Mesin Cuci"}},
		{term: "nothing", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := svc.Search(ctx, tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestProductService_ReplaceAll(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, draft("Local", ""))
	require.NoError(t, err)

	date := warranty.Date{Year: 2023, Month: time.March, Day: 1}
	valid := []warranty.Product{
		{ID: "r1", Name: "Restored 1", PurchaseDate: date, WarrantyMonths: 24, Category: warranty.CategoryGadget},
		{ID: "r2", Name: "Restored 2", PurchaseDate: date, WarrantyMonths: 6, Category: warranty.CategoryOther},
	}

	t.Run("invalid record leaves store unchanged", func(t *testing.T) {
		bad := append([]warranty.Product{}, valid...)
		bad[1].Name = ""
		var verr *warranty.ValidationError
		require.ErrorAs(t, svc.ReplaceAll(ctx, bad), &verr)

		list, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Local"}, names(list))
	})

	t.Run("duplicate ids rejected", func(t *testing.T) {
		dup := []warranty.Product{valid[0], valid[0]}
		var verr *warranty.ValidationError
		require.ErrorAs(t, svc.ReplaceAll(ctx, dup), &verr)
		assert.Equal(t, "id", verr.Field)
	})

	t.Run("swaps whole list", func(t *testing.T) {
		require.NoError(t, svc.ReplaceAll(ctx, valid))
		list, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, valid, list)
	})
}
