package admin

import (
	"context"
	"time"

	"dinesmart/domain"
	"dinesmart/pkg/logger"
)

type UserRepository interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	UpdateStatus(ctx context.Context, id uint, status string, roleFilter string) error
	Count(ctx context.Context) (int64, error)
}

type RestaurantRepository interface {
	Count(ctx context.Context) (int64, error)
}

type OrdersRepository interface {
	Count(ctx context.Context) (int64, error)
	FindAllJoined(ctx context.Context) ([]domain.AdminOrderRow, error)
	FindCompleted(ctx context.Context) ([]domain.Order, error)
}

type AdminLogRepository interface {
	Append(ctx context.Context, entry *domain.AdminLog) error
	FindAllJoined(ctx context.Context) ([]domain.AdminLogRow, error)
}

// Analytics is the dashboard counters block.
type Analytics struct {
	TotalUsers       int64 `json:"total_users"`
	TotalRestaurants int64 `json:"total_restaurants"`
	TotalOrders      int64 `json:"total_orders"`
}

type AdminService struct {
	userRepo       UserRepository
	restaurantRepo RestaurantRepository
	ordersRepo     OrdersRepository
	logRepo        AdminLogRepository
}

func NewAdminService(
	userRepo UserRepository,
	restaurantRepo RestaurantRepository,
	ordersRepo OrdersRepository,
	logRepo AdminLogRepository,
) *AdminService {
	return &AdminService{
		userRepo:       userRepo,
		restaurantRepo: restaurantRepo,
		ordersRepo:     ordersRepo,
		logRepo:        logRepo,
	}
}

func (s *AdminService) Users(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, nil
}

// ApproveSeller moves a PENDING seller to APPROVED. The role filter is part
// of the update, so a customer id reads as not found.
func (s *AdminService) ApproveSeller(ctx context.Context, adminID, sellerID uint) error {
	if err := s.userRepo.UpdateStatus(ctx, sellerID, domain.StatusApproved, domain.RoleSeller); err != nil {
		return err
	}

	s.logAction(ctx, adminID, domain.ActionApprovedSeller, sellerID)
	return nil
}

func (s *AdminService) RejectSeller(ctx context.Context, adminID, sellerID uint) error {
	if err := s.userRepo.UpdateStatus(ctx, sellerID, domain.StatusRejected, domain.RoleSeller); err != nil {
		return err
	}

	s.logAction(ctx, adminID, domain.ActionRejectedSeller, sellerID)
	return nil
}

func (s *AdminService) SuspendUser(ctx context.Context, adminID, userID uint) error {
	if err := s.userRepo.UpdateStatus(ctx, userID, domain.StatusSuspended, ""); err != nil {
		return err
	}

	s.logAction(ctx, adminID, domain.ActionSuspendedUser, userID)
	return nil
}

func (s *AdminService) ReactivateUser(ctx context.Context, adminID, userID uint) error {
	if err := s.userRepo.UpdateStatus(ctx, userID, domain.StatusApproved, ""); err != nil {
		return err
	}

	s.logAction(ctx, adminID, domain.ActionReactivatedUser, userID)
	return nil
}

// logAction appends the audit entry fire-and-forget: a broken log sink must
// never undo a mutation that already happened.
func (s *AdminService) logAction(ctx context.Context, adminID uint, action string, targetUserID uint) {
	entry := domain.AdminLog{
		AdminID:      adminID,
		Action:       action,
		TargetUserID: &targetUserID,
	}
	if err := s.logRepo.Append(ctx, &entry); err != nil {
		logger.Warn("Admin log append failed", "action", action, "error", err)
	}
}

func (s *AdminService) Analytics(ctx context.Context) (Analytics, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return Analytics{}, err
	}
	restaurants, err := s.restaurantRepo.Count(ctx)
	if err != nil {
		return Analytics{}, err
	}
	orders, err := s.ordersRepo.Count(ctx)
	if err != nil {
		return Analytics{}, err
	}

	return Analytics{
		TotalUsers:       users,
		TotalRestaurants: restaurants,
		TotalOrders:      orders,
	}, nil
}

func (s *AdminService) Orders(ctx context.Context) ([]domain.AdminOrderRow, error) {
	return s.ordersRepo.FindAllJoined(ctx)
}

func (s *AdminService) Logs(ctx context.Context) ([]domain.AdminLogRow, error) {
	return s.logRepo.FindAllJoined(ctx)
}

// RevenueTrend sums completed-order revenue per calendar month, oldest first.
func (s *AdminService) RevenueTrend(ctx context.Context) ([]domain.MonthlyRevenue, error) {
	completed, err := s.ordersRepo.FindCompleted(ctx)
	if err != nil {
		return nil, err
	}

	byMonth := map[string]float64{}
	var months []string
	for _, order := range completed {
		month := order.CreatedAt.Format("2006-01")
		if _, seen := byMonth[month]; !seen {
			months = append(months, month)
		}
		byMonth[month] += order.TotalAmount
	}

	trend := make([]domain.MonthlyRevenue, 0, len(months))
	for _, month := range months {
		trend = append(trend, domain.MonthlyRevenue{Month: month, Revenue: byMonth[month]})
	}

	return trend, nil
}

/* CSV export: the admin handler streams these as text/csv attachments. */

func (s *AdminService) UsersCSV(ctx context.Context) ([][]string, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	records := [][]string{{"id", "name", "email", "role", "status", "created_at"}}
	for _, u := range users {
		records = append(records, []string{
			formatUint(u.ID), u.Name, u.Email, u.Role, u.Status, u.CreatedAt.Format(time.RFC3339),
		})
	}

	return records, nil
}

func (s *AdminService) OrdersCSV(ctx context.Context) ([][]string, error) {
	rows, err := s.ordersRepo.FindAllJoined(ctx)
	if err != nil {
		return nil, err
	}

	records := [][]string{{"id", "status", "total_amount", "created_at", "customer_email", "restaurant_name", "seller_email"}}
	for _, o := range rows {
		records = append(records, []string{
			formatUint(o.ID), o.Status, formatAmount(o.TotalAmount), o.CreatedAt.Format(time.RFC3339),
			o.CustomerEmail, o.RestaurantName, o.SellerEmail,
		})
	}

	return records, nil
}

func (s *AdminService) LogsCSV(ctx context.Context) ([][]string, error) {
	rows, err := s.logRepo.FindAllJoined(ctx)
	if err != nil {
		return nil, err
	}

	records := [][]string{{"id", "action", "created_at", "admin_email", "target_user_email"}}
	for _, l := range rows {
		records = append(records, []string{
			formatUint(l.ID), l.Action, l.CreatedAt.Format(time.RFC3339), l.AdminEmail, l.TargetUserEmail,
		})
	}

	return records, nil
}
