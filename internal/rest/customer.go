package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"dinesmart/business/orders"
	"dinesmart/business/reco"
	"dinesmart/domain"
	"dinesmart/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type BrowseService interface {
	ActiveRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	RestaurantMenu(ctx context.Context, restaurantID uint) ([]domain.MenuItem, error)
}

type CustomerOrdersService interface {
	PlaceOrder(ctx context.Context, customerID, restaurantID uint, lines []orders.CartLine) (domain.Order, error)
	CustomerOrders(ctx context.Context, customerID uint) ([]domain.Order, error)
}

type RecoService interface {
	Popular(ctx context.Context, limit int) ([]reco.Recommendation, error)
}

type CustomerHandler struct {
	browseService BrowseService
	ordersService CustomerOrdersService
	recoService   RecoService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewCustomerHandler(browseService BrowseService, ordersService CustomerOrdersService, recoService RecoService) *CustomerHandler {
	return &CustomerHandler{
		browseService: browseService,
		ordersService: ordersService,
		recoService:   recoService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type PlaceOrderRequest struct {
	RestaurantID uint               `json:"restaurant_id" validate:"required"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderItemRequest struct {
	MenuItemID uint   `json:"menu_item_id" validate:"required"`
	Portion    string `json:"portion" validate:"omitempty,oneof=regular large"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

func (h *CustomerHandler) GetRestaurants(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	restaurants, err := h.browseService.ActiveRestaurants(ctx)
	if err != nil {
		logger.Error("Failed to fetch restaurants", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(restaurants))
}

func (h *CustomerHandler) GetRestaurantMenu(c echo.Context) error {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid restaurant id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	menu, err := h.browseService.RestaurantMenu(ctx, uint(restaurantID))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(menu))
}

func (h *CustomerHandler) PlaceOrder(c echo.Context) error {
	var req PlaceOrderRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate order", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	customerID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	lines := make([]orders.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, orders.CartLine{
			MenuItemID: item.MenuItemID,
			Portion:    item.Portion,
			Quantity:   item.Quantity,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.PlaceOrder(ctx, customerID, req.RestaurantID, lines)
	if err != nil {
		logger.Error("Failed to place order", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

func (h *CustomerHandler) GetMyOrders(c echo.Context) error {
	customerID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	myOrders, err := h.ordersService.CustomerOrders(ctx, customerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(myOrders))
}

func (h *CustomerHandler) GetRecommendations(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.recoService.Popular(ctx, limit)
	if err != nil {
		logger.Error("Failed to fetch recommendations", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}
