package rest

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"dinesmart/business/admin"
	"dinesmart/domain"
	"dinesmart/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type AdminService interface {
	Users(ctx context.Context) ([]domain.User, error)
	ApproveSeller(ctx context.Context, adminID, sellerID uint) error
	RejectSeller(ctx context.Context, adminID, sellerID uint) error
	SuspendUser(ctx context.Context, adminID, userID uint) error
	ReactivateUser(ctx context.Context, adminID, userID uint) error
	Analytics(ctx context.Context) (admin.Analytics, error)
	Orders(ctx context.Context) ([]domain.AdminOrderRow, error)
	Logs(ctx context.Context) ([]domain.AdminLogRow, error)
	RevenueTrend(ctx context.Context) ([]domain.MonthlyRevenue, error)
	UsersCSV(ctx context.Context) ([][]string, error)
	OrdersCSV(ctx context.Context) ([][]string, error)
	LogsCSV(ctx context.Context) ([][]string, error)
}

type AdminHandler struct {
	adminService AdminService
	timeout      time.Duration
}

func NewAdminHandler(adminService AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		timeout:      10 * time.Second,
	}
}

func (h *AdminHandler) GetUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	users, err := h.adminService.Users(ctx)
	if err != nil {
		logger.Error("Failed to fetch users", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(users))
}

func (h *AdminHandler) ApproveSeller(c echo.Context) error {
	return h.moderate(c, h.adminService.ApproveSeller, "Seller approved")
}

func (h *AdminHandler) RejectSeller(c echo.Context) error {
	return h.moderate(c, h.adminService.RejectSeller, "Seller rejected")
}

func (h *AdminHandler) SuspendUser(c echo.Context) error {
	return h.moderate(c, h.adminService.SuspendUser, "User suspended")
}

func (h *AdminHandler) ReactivateUser(c echo.Context) error {
	return h.moderate(c, h.adminService.ReactivateUser, "User reactivated")
}

func (h *AdminHandler) moderate(c echo.Context, action func(ctx context.Context, adminID, userID uint) error, message string) error {
	adminID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := action(ctx, adminID, uint(userID)); err != nil {
		logger.Error("Failed to update user status", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(message))
}

func (h *AdminHandler) GetAnalytics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	analytics, err := h.adminService.Analytics(ctx)
	if err != nil {
		logger.Error("Failed to compute analytics", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(analytics))
}

func (h *AdminHandler) GetOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rows, err := h.adminService.Orders(ctx)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rows))
}

func (h *AdminHandler) GetLogs(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rows, err := h.adminService.Logs(ctx)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rows))
}

func (h *AdminHandler) GetRevenueTrend(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	trend, err := h.adminService.RevenueTrend(ctx)
	if err != nil {
		logger.Error("Failed to compute revenue trend", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(trend))
}

func (h *AdminHandler) ExportUsers(c echo.Context) error {
	return h.exportCSV(c, h.adminService.UsersCSV, "users.csv")
}

func (h *AdminHandler) ExportOrders(c echo.Context) error {
	return h.exportCSV(c, h.adminService.OrdersCSV, "orders.csv")
}

func (h *AdminHandler) ExportLogs(c echo.Context) error {
	return h.exportCSV(c, h.adminService.LogsCSV, "logs.csv")
}

func (h *AdminHandler) exportCSV(c echo.Context, rows func(ctx context.Context) ([][]string, error), filename string) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	records, err := rows(ctx)
	if err != nil {
		logger.Error("Failed to build export", err)
		return writeError(c, err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(records); err != nil {
		logger.Error("Failed to encode export", err)
		return writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
