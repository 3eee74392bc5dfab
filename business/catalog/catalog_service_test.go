package catalog_test

import (
	"context"
	"testing"

	"dinesmart/business/catalog"
	"dinesmart/domain"
	psqlRepo "dinesmart/internal/repository/postgres"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.Restaurant{},
		&domain.MenuItem{},
	))

	return db
}

func newService(t *testing.T) (*catalog.CatalogService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	svc := catalog.NewCatalogService(
		psqlRepo.NewRestaurantRepository(db),
		psqlRepo.NewMenuRepository(db),
	)
	return svc, db
}

func ptr[T any](v T) *T { return &v }

func TestUpsertOwnRestaurant_CreatesThenUpdates(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.UpsertOwnRestaurant(ctx, 7, catalog.RestaurantProfile{
		Name:     "Warung Pagi",
		Contact:  "0811",
		Cuisines: "Indonesian",
		Image:    "/uploads/a.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), created.SellerID)
	assert.Equal(t, domain.RestaurantActive, created.Status)

	updated, err := svc.UpsertOwnRestaurant(ctx, 7, catalog.RestaurantProfile{
		Name:    "Warung Malam",
		Contact: "0822",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Warung Malam", updated.Name)
	assert.Equal(t, "/uploads/a.jpg", updated.Image, "empty image keeps the old one")
}

func TestUpsertOwnRestaurant_RequiresName(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.UpsertOwnRestaurant(context.Background(), 7, catalog.RestaurantProfile{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOwnMenu_NoRestaurantYet(t *testing.T) {
	svc, _ := newService(t)

	menu, err := svc.OwnMenu(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, menu)
}

func TestAddMenuItem(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.UpsertOwnRestaurant(ctx, 7, catalog.RestaurantProfile{Name: "Warung"})
	require.NoError(t, err)

	item, err := svc.AddMenuItem(ctx, 7, catalog.MenuItemInput{
		Name:         "Rendang",
		PriceRegular: 6.50,
		PriceLarge:   9.00,
		Stock:        20,
	})
	require.NoError(t, err)
	assert.True(t, item.IsAvailable)
	assert.Equal(t, 20, item.Stock)

	menu, err := svc.OwnMenu(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, menu, 1)
}

func TestAddMenuItem_Validation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.UpsertOwnRestaurant(ctx, 7, catalog.RestaurantProfile{Name: "Warung"})
	require.NoError(t, err)

	_, err = svc.AddMenuItem(ctx, 7, catalog.MenuItemInput{PriceRegular: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.AddMenuItem(ctx, 7, catalog.MenuItemInput{Name: "Free", PriceRegular: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.AddMenuItem(ctx, 7, catalog.MenuItemInput{Name: "Neg", PriceRegular: 5, Stock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddMenuItem_WithoutRestaurant(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.AddMenuItem(context.Background(), 7, catalog.MenuItemInput{
		Name:         "Rendang",
		PriceRegular: 6.50,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateMenuItem_PartialPatch(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.UpsertOwnRestaurant(ctx, 7, catalog.RestaurantProfile{Name: "Warung"})
	require.NoError(t, err)

	item, err := svc.AddMenuItem(ctx, 7, catalog.MenuItemInput{
		Name:         "Rendang",
		PriceRegular: 6.50,
		Stock:        20,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateMenuItem(ctx, 7, item.ID, catalog.MenuItemPatch{
		Stock:       ptr(5),
		IsAvailable: ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, updated.Stock)
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, "Rendang", updated.Name, "untouched fields stay")
	assert.InDelta(t, 6.50, updated.PriceRegular, 0.001)
}

func TestUpdateMenuItem_ForeignItemReadsAsNotFound(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.UpsertOwnRestaurant(ctx, 7, catalog.RestaurantProfile{Name: "Mine"})
	require.NoError(t, err)
	_, err = svc.UpsertOwnRestaurant(ctx, 8, catalog.RestaurantProfile{Name: "Theirs"})
	require.NoError(t, err)

	theirs, err := svc.AddMenuItem(ctx, 8, catalog.MenuItemInput{Name: "Soto", PriceRegular: 3})
	require.NoError(t, err)

	_, err = svc.UpdateMenuItem(ctx, 7, theirs.ID, catalog.MenuItemPatch{Stock: ptr(0)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.DeleteMenuItem(ctx, 7, theirs.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestaurantMenu_OnlyAvailableItems(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	restaurant, err := svc.UpsertOwnRestaurant(ctx, 7, catalog.RestaurantProfile{Name: "Warung"})
	require.NoError(t, err)

	_, err = svc.AddMenuItem(ctx, 7, catalog.MenuItemInput{Name: "Shown", PriceRegular: 3})
	require.NoError(t, err)
	hidden, err := svc.AddMenuItem(ctx, 7, catalog.MenuItemInput{Name: "Hidden", PriceRegular: 3})
	require.NoError(t, err)

	_, err = svc.UpdateMenuItem(ctx, 7, hidden.ID, catalog.MenuItemPatch{IsAvailable: ptr(false)})
	require.NoError(t, err)

	menu, err := svc.RestaurantMenu(ctx, restaurant.ID)
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "Shown", menu[0].Name)

	require.NoError(t, db.Model(&domain.Restaurant{}).Where("id = ?", restaurant.ID).
		Update("status", domain.RestaurantInactive).Error)

	_, err = svc.RestaurantMenu(ctx, restaurant.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActiveRestaurants(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	_, err := svc.UpsertOwnRestaurant(ctx, 7, catalog.RestaurantProfile{Name: "Open"})
	require.NoError(t, err)
	closed, err := svc.UpsertOwnRestaurant(ctx, 8, catalog.RestaurantProfile{Name: "Closed"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&domain.Restaurant{}).Where("id = ?", closed.ID).
		Update("status", domain.RestaurantInactive).Error)

	active, err := svc.ActiveRestaurants(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Open", active[0].Name)
}
