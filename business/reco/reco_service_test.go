package reco_test

import (
	"context"
	"testing"

	"dinesmart/business/reco"
	"dinesmart/domain"
	psqlRepo "dinesmart/internal/repository/postgres"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*reco.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Restaurant{}, &domain.MenuItem{}))

	return reco.NewService(psqlRepo.NewMenuRepository(db)), db
}

var nextSeller uint

func seed(t *testing.T, db *gorm.DB, restaurantStatus, name string, ordersCount int, available bool) {
	t.Helper()

	nextSeller++
	restaurant := domain.Restaurant{SellerID: nextSeller, Name: name + " place", Status: restaurantStatus}
	require.NoError(t, db.Create(&restaurant).Error)
	require.NoError(t, db.Create(&domain.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         name,
		PriceRegular: 5,
		OrdersCount:  ordersCount,
		IsAvailable:  available,
	}).Error)
}

func TestPopular_RanksByOrdersCount(t *testing.T) {
	svc, db := newService(t)

	seed(t, db, domain.RestaurantActive, "Satay", 30, true)
	seed(t, db, domain.RestaurantActive, "Soto", 50, true)
	seed(t, db, domain.RestaurantActive, "Hidden", 90, false)
	seed(t, db, domain.RestaurantInactive, "Closed", 80, true)

	recs, err := svc.Popular(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 2, "unavailable items and inactive restaurants are excluded")
	assert.Equal(t, "Soto", recs[0].Name)
	assert.Equal(t, 50, recs[0].OrdersCount)
	assert.Equal(t, "Satay", recs[1].Name)
}

func TestPopular_DefaultAndExplicitLimit(t *testing.T) {
	svc, db := newService(t)

	for i := 0; i < 12; i++ {
		seed(t, db, domain.RestaurantActive, string(rune('a'+i)), i, true)
	}

	recs, err := svc.Popular(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, recs, 10, "limit defaults to 10")

	recs, err = svc.Popular(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}
