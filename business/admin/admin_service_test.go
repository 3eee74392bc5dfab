package admin_test

import (
	"context"
	"testing"
	"time"

	"dinesmart/business/admin"
	"dinesmart/domain"
	psqlRepo "dinesmart/internal/repository/postgres"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*admin.AdminService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Restaurant{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.AdminLog{},
	))

	svc := admin.NewAdminService(
		psqlRepo.NewUserRepository(db),
		psqlRepo.NewRestaurantRepository(db),
		psqlRepo.NewOrdersRepository(db),
		psqlRepo.NewAdminLogRepository(db),
	)
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, name, role, status string) domain.User {
	t.Helper()

	user := domain.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hash",
		Role:     role,
		Status:   status,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestUsers_PasswordsAreScrubbed(t *testing.T) {
	svc, db := newService(t)

	seedUser(t, db, "ana", domain.RoleCustomer, domain.StatusApproved)
	seedUser(t, db, "budi", domain.RoleSeller, domain.StatusPending)

	users, err := svc.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}
}

func TestApproveSeller_WritesAuditLog(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	adminUser := seedUser(t, db, "root", domain.RoleAdmin, domain.StatusApproved)
	seller := seedUser(t, db, "budi", domain.RoleSeller, domain.StatusPending)

	require.NoError(t, svc.ApproveSeller(ctx, adminUser.ID, seller.ID))

	var updated domain.User
	require.NoError(t, db.First(&updated, seller.ID).Error)
	assert.Equal(t, domain.StatusApproved, updated.Status)

	var logs []domain.AdminLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.ActionApprovedSeller, logs[0].Action)
	assert.Equal(t, adminUser.ID, logs[0].AdminID)
	require.NotNil(t, logs[0].TargetUserID)
	assert.Equal(t, seller.ID, *logs[0].TargetUserID)
}

func TestApproveSeller_CustomerIdReadsAsNotFound(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	adminUser := seedUser(t, db, "root", domain.RoleAdmin, domain.StatusApproved)
	customer := seedUser(t, db, "ana", domain.RoleCustomer, domain.StatusApproved)

	err := svc.ApproveSeller(ctx, adminUser.ID, customer.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var logCount int64
	require.NoError(t, db.Model(&domain.AdminLog{}).Count(&logCount).Error)
	assert.Zero(t, logCount, "failed mutation writes no audit entry")
}

func TestRejectSeller(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	adminUser := seedUser(t, db, "root", domain.RoleAdmin, domain.StatusApproved)
	seller := seedUser(t, db, "budi", domain.RoleSeller, domain.StatusPending)

	require.NoError(t, svc.RejectSeller(ctx, adminUser.ID, seller.ID))

	var updated domain.User
	require.NoError(t, db.First(&updated, seller.ID).Error)
	assert.Equal(t, domain.StatusRejected, updated.Status)
}

func TestSuspendAndReactivate(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	adminUser := seedUser(t, db, "root", domain.RoleAdmin, domain.StatusApproved)
	customer := seedUser(t, db, "ana", domain.RoleCustomer, domain.StatusApproved)

	require.NoError(t, svc.SuspendUser(ctx, adminUser.ID, customer.ID))

	var suspended domain.User
	require.NoError(t, db.First(&suspended, customer.ID).Error)
	assert.Equal(t, domain.StatusSuspended, suspended.Status)

	require.NoError(t, svc.ReactivateUser(ctx, adminUser.ID, customer.ID))

	var reactivated domain.User
	require.NoError(t, db.First(&reactivated, customer.ID).Error)
	assert.Equal(t, domain.StatusApproved, reactivated.Status)

	var logs []domain.AdminLog
	require.NoError(t, db.Order("id").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.ActionSuspendedUser, logs[0].Action)
	assert.Equal(t, domain.ActionReactivatedUser, logs[1].Action)
}

func TestSuspendUnknownUser(t *testing.T) {
	svc, db := newService(t)

	adminUser := seedUser(t, db, "root", domain.RoleAdmin, domain.StatusApproved)

	err := svc.SuspendUser(context.Background(), adminUser.ID, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnalyticsCounts(t *testing.T) {
	svc, db := newService(t)

	seller := seedUser(t, db, "budi", domain.RoleSeller, domain.StatusApproved)
	seedUser(t, db, "ana", domain.RoleCustomer, domain.StatusApproved)

	require.NoError(t, db.Create(&domain.Restaurant{SellerID: seller.ID, Name: "Warung"}).Error)
	require.NoError(t, db.Create(&domain.Order{CustomerID: 2, SellerID: seller.ID, RestaurantID: 1, Status: domain.OrderPending}).Error)

	analytics, err := svc.Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), analytics.TotalUsers)
	assert.Equal(t, int64(1), analytics.TotalRestaurants)
	assert.Equal(t, int64(1), analytics.TotalOrders)
}

func TestOrders_JoinedView(t *testing.T) {
	svc, db := newService(t)

	seller := seedUser(t, db, "budi", domain.RoleSeller, domain.StatusApproved)
	customer := seedUser(t, db, "ana", domain.RoleCustomer, domain.StatusApproved)

	restaurant := domain.Restaurant{SellerID: seller.ID, Name: "Warung"}
	require.NoError(t, db.Create(&restaurant).Error)
	require.NoError(t, db.Create(&domain.Order{
		CustomerID:   customer.ID,
		SellerID:     seller.ID,
		RestaurantID: restaurant.ID,
		Status:       domain.OrderPending,
		TotalAmount:  12.5,
	}).Error)

	rows, err := svc.Orders(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ana@example.com", rows[0].CustomerEmail)
	assert.Equal(t, "budi@example.com", rows[0].SellerEmail)
	assert.Equal(t, "Warung", rows[0].RestaurantName)
}

func TestRevenueTrend_CompletedOrdersPerMonth(t *testing.T) {
	svc, db := newService(t)

	mk := func(status string, total float64, created time.Time) {
		require.NoError(t, db.Create(&domain.Order{
			CustomerID: 1, SellerID: 2, RestaurantID: 1,
			Status: status, TotalAmount: total, CreatedAt: created,
		}).Error)
	}

	jan := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)

	mk(domain.OrderCompleted, 10, jan)
	mk(domain.OrderCompleted, 5, jan.AddDate(0, 0, 7))
	mk(domain.OrderCompleted, 20, feb)
	mk(domain.OrderCancelled, 99, feb)
	mk(domain.OrderPending, 50, feb)

	trend, err := svc.RevenueTrend(context.Background())
	require.NoError(t, err)
	require.Len(t, trend, 2)
	assert.Equal(t, domain.MonthlyRevenue{Month: "2026-01", Revenue: 15}, trend[0])
	assert.Equal(t, domain.MonthlyRevenue{Month: "2026-02", Revenue: 20}, trend[1])
}

func TestCSVExports(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	adminUser := seedUser(t, db, "root", domain.RoleAdmin, domain.StatusApproved)
	seller := seedUser(t, db, "budi", domain.RoleSeller, domain.StatusPending)
	require.NoError(t, svc.ApproveSeller(ctx, adminUser.ID, seller.ID))

	users, err := svc.UsersCSV(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, []string{"id", "name", "email", "role", "status", "created_at"}, users[0])
	assert.Equal(t, "budi@example.com", users[2][2])

	logs, err := svc.LogsCSV(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.ActionApprovedSeller, logs[1][1])
	assert.Equal(t, "root@example.com", logs[1][3])

	orders, err := svc.OrdersCSV(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1, "header only when there are no orders")
}
