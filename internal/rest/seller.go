package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"dinesmart/business/catalog"
	"dinesmart/domain"
	"dinesmart/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CatalogService interface {
	OwnRestaurant(ctx context.Context, sellerID uint) (domain.Restaurant, error)
	UpsertOwnRestaurant(ctx context.Context, sellerID uint, profile catalog.RestaurantProfile) (domain.Restaurant, error)
	OwnMenu(ctx context.Context, sellerID uint) ([]domain.MenuItem, error)
	AddMenuItem(ctx context.Context, sellerID uint, input catalog.MenuItemInput) (domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, sellerID, itemID uint, patch catalog.MenuItemPatch) (domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, sellerID, itemID uint) error
	MenuStock(ctx context.Context, sellerID uint) ([]domain.MenuItem, error)
}

type SellerOrdersService interface {
	SellerOrders(ctx context.Context, sellerID uint) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, sellerID, orderID uint, newStatus string) (domain.Order, error)
}

type ImageRepository interface {
	Save(file io.Reader, originalName string) (string, error)
}

type SellerHandler struct {
	catalogService CatalogService
	ordersService  SellerOrdersService
	imageRepo      ImageRepository
	validator      *validator.Validate
	timeout        time.Duration
}

func NewSellerHandler(catalogService CatalogService, ordersService SellerOrdersService, imageRepo ImageRepository) *SellerHandler {
	return &SellerHandler{
		catalogService: catalogService,
		ordersService:  ordersService,
		imageRepo:      imageRepo,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *SellerHandler) GetRestaurant(c echo.Context) error {
	sellerID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	restaurant, err := h.catalogService.OwnRestaurant(ctx, sellerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(restaurant))
}

// SaveRestaurant creates the seller's restaurant on first save and updates it
// afterwards. Accepts multipart form data so the profile image can ride along.
func (h *SellerHandler) SaveRestaurant(c echo.Context) error {
	sellerID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	profile := catalog.RestaurantProfile{
		Name:     c.FormValue("name"),
		Contact:  c.FormValue("contact"),
		Address:  c.FormValue("address"),
		Cuisines: c.FormValue("cuisines"),
	}
	if profile.Name == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "name is required"})
	}

	imageURL, err := h.saveUploadedImage(c)
	if err != nil {
		logger.Error("Failed to store restaurant image", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid image upload"})
	}
	profile.Image = imageURL

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	restaurant, err := h.catalogService.UpsertOwnRestaurant(ctx, sellerID, profile)
	if err != nil {
		logger.Error("Failed to save restaurant", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(restaurant))
}

func (h *SellerHandler) GetMenu(c echo.Context) error {
	sellerID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	menu, err := h.catalogService.OwnMenu(ctx, sellerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(menu))
}

func (h *SellerHandler) AddMenuItem(c echo.Context) error {
	sellerID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	input := catalog.MenuItemInput{Name: c.FormValue("name")}
	if input.Name == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "name is required"})
	}

	priceRegular, err := strconv.ParseFloat(c.FormValue("price_regular"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid price_regular"})
	}
	input.PriceRegular = priceRegular

	if raw := c.FormValue("price_large"); raw != "" {
		priceLarge, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid price_large"})
		}
		input.PriceLarge = priceLarge
	}

	if raw := c.FormValue("stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil || stock < 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid stock"})
		}
		input.Stock = stock
	}

	imageURL, err := h.saveUploadedImage(c)
	if err != nil {
		logger.Error("Failed to store menu item image", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid image upload"})
	}
	input.Image = imageURL

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.catalogService.AddMenuItem(ctx, sellerID, input)
	if err != nil {
		logger.Error("Failed to add menu item", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(item))
}

// UpdateMenuItem applies a partial update: only the form fields that were
// actually sent are touched.
func (h *SellerHandler) UpdateMenuItem(c echo.Context) error {
	sellerID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid menu item id"})
	}

	patch, err := h.bindMenuItemPatch(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.catalogService.UpdateMenuItem(ctx, sellerID, uint(itemID), patch)
	if err != nil {
		logger.Error("Failed to update menu item", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(item))
}

func (h *SellerHandler) DeleteMenuItem(c echo.Context) error {
	sellerID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid menu item id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.catalogService.DeleteMenuItem(ctx, sellerID, uint(itemID)); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Menu item deleted successfully"))
}

func (h *SellerHandler) GetOrders(c echo.Context) error {
	sellerID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sellerOrders, err := h.ordersService.SellerOrders(ctx, sellerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(sellerOrders))
}

func (h *SellerHandler) UpdateOrderStatus(c echo.Context) error {
	sellerID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order id"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.UpdateStatus(ctx, sellerID, uint(orderID), req.Status)
	if err != nil {
		logger.Error("Failed to update order status", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func (h *SellerHandler) GetAnalytics(c echo.Context) error {
	sellerID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.catalogService.MenuStock(ctx, sellerID)
	if err != nil {
		return writeError(c, err)
	}

	type itemStat struct {
		MenuItemID  uint   `json:"menu_item_id"`
		Name        string `json:"name"`
		Stock       int    `json:"stock"`
		OrdersCount int    `json:"orders_count"`
	}

	stats := make([]itemStat, 0, len(items))
	for _, item := range items {
		stats = append(stats, itemStat{
			MenuItemID:  item.ID,
			Name:        item.Name,
			Stock:       item.Stock,
			OrdersCount: item.OrdersCount,
		})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stats))
}

func (h *SellerHandler) bindMenuItemPatch(c echo.Context) (catalog.MenuItemPatch, error) {
	var patch catalog.MenuItemPatch

	if raw, sent := formField(c, "name"); sent {
		patch.Name = &raw
	}
	if raw, sent := formField(c, "price_regular"); sent {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return patch, fmt.Errorf("invalid price_regular")
		}
		patch.PriceRegular = &price
	}
	if raw, sent := formField(c, "price_large"); sent {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return patch, fmt.Errorf("invalid price_large")
		}
		patch.PriceLarge = &price
	}
	if raw, sent := formField(c, "stock"); sent {
		stock, err := strconv.Atoi(raw)
		if err != nil || stock < 0 {
			return patch, fmt.Errorf("invalid stock")
		}
		patch.Stock = &stock
	}
	if raw, sent := formField(c, "is_available"); sent {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			return patch, fmt.Errorf("invalid is_available")
		}
		patch.IsAvailable = &available
	}

	imageURL, err := h.saveUploadedImage(c)
	if err != nil {
		return patch, fmt.Errorf("invalid image upload")
	}
	if imageURL != "" {
		patch.Image = &imageURL
	}

	return patch, nil
}

// formField tells absent fields apart from fields sent with an empty value.
func formField(c echo.Context, name string) (string, bool) {
	if err := c.Request().ParseMultipartForm(32 << 20); err != nil {
		if err := c.Request().ParseForm(); err != nil {
			return "", false
		}
	}
	values, ok := c.Request().Form[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (h *SellerHandler) saveUploadedImage(c echo.Context) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	return h.imageRepo.Save(src, fileHeader.Filename)
}
