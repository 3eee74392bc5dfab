package catalog

import (
	"context"
	"errors"
	"fmt"

	"dinesmart/domain"
	"dinesmart/pkg/logger"
)

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *domain.Restaurant) error
	FindByID(ctx context.Context, id uint) (domain.Restaurant, error)
	FindBySellerID(ctx context.Context, sellerID uint) (domain.Restaurant, error)
	FindAllActive(ctx context.Context) ([]domain.Restaurant, error)
	Update(ctx context.Context, restaurant *domain.Restaurant) error
}

type MenuRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	FindByID(ctx context.Context, id uint) (domain.MenuItem, error)
	FindByRestaurantID(ctx context.Context, restaurantID uint) ([]domain.MenuItem, error)
	FindAvailableByRestaurantID(ctx context.Context, restaurantID uint) ([]domain.MenuItem, error)
	UpdateFields(ctx context.Context, id, restaurantID uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id, restaurantID uint) error
}

// RestaurantProfile is the seller-editable part of a restaurant.
type RestaurantProfile struct {
	Name     string
	Contact  string
	Address  string
	Cuisines string
	Image    string
}

// MenuItemInput creates a new item. Prices are per portion.
type MenuItemInput struct {
	Name         string
	PriceRegular float64
	PriceLarge   float64
	Stock        int
	Image        string
}

// MenuItemPatch is a partial update: nil means leave unchanged.
type MenuItemPatch struct {
	Name         *string
	PriceRegular *float64
	PriceLarge   *float64
	Stock        *int
	IsAvailable  *bool
	Image        *string
}

type CatalogService struct {
	restaurantRepo RestaurantRepository
	menuRepo       MenuRepository
}

func NewCatalogService(restaurantRepo RestaurantRepository, menuRepo MenuRepository) *CatalogService {
	return &CatalogService{
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
	}
}

/* seller side */

func (s *CatalogService) OwnRestaurant(ctx context.Context, sellerID uint) (domain.Restaurant, error) {
	return s.restaurantRepo.FindBySellerID(ctx, sellerID)
}

// UpsertOwnRestaurant creates the seller's restaurant on first save and
// updates it afterwards. The seller id comes from the authenticated identity,
// never from the request body.
func (s *CatalogService) UpsertOwnRestaurant(ctx context.Context, sellerID uint, profile RestaurantProfile) (domain.Restaurant, error) {
	if profile.Name == "" {
		return domain.Restaurant{}, fmt.Errorf("%w: restaurant name is required", domain.ErrInvalidInput)
	}

	existing, err := s.restaurantRepo.FindBySellerID(ctx, sellerID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.Restaurant{}, err
		}

		restaurant := domain.Restaurant{
			SellerID: sellerID,
			Name:     profile.Name,
			Contact:  profile.Contact,
			Address:  profile.Address,
			Cuisines: profile.Cuisines,
			Image:    profile.Image,
			Status:   domain.RestaurantActive,
		}
		if err := s.restaurantRepo.Create(ctx, &restaurant); err != nil {
			return domain.Restaurant{}, err
		}

		logger.Info("restaurant created", "restaurant_id", restaurant.ID, "seller_id", sellerID)
		return restaurant, nil
	}

	existing.Name = profile.Name
	existing.Contact = profile.Contact
	existing.Address = profile.Address
	existing.Cuisines = profile.Cuisines
	if profile.Image != "" {
		existing.Image = profile.Image
	}

	if err := s.restaurantRepo.Update(ctx, &existing); err != nil {
		return domain.Restaurant{}, err
	}

	return existing, nil
}

func (s *CatalogService) OwnMenu(ctx context.Context, sellerID uint) ([]domain.MenuItem, error) {
	restaurant, err := s.restaurantRepo.FindBySellerID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.MenuItem{}, nil
		}
		return nil, err
	}

	return s.menuRepo.FindByRestaurantID(ctx, restaurant.ID)
}

func (s *CatalogService) AddMenuItem(ctx context.Context, sellerID uint, input MenuItemInput) (domain.MenuItem, error) {
	if input.Name == "" {
		return domain.MenuItem{}, fmt.Errorf("%w: item name is required", domain.ErrInvalidInput)
	}
	if input.PriceRegular <= 0 {
		return domain.MenuItem{}, fmt.Errorf("%w: regular price must be greater than 0", domain.ErrInvalidInput)
	}
	if input.Stock < 0 {
		return domain.MenuItem{}, fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidInput)
	}

	restaurant, err := s.restaurantRepo.FindBySellerID(ctx, sellerID)
	if err != nil {
		return domain.MenuItem{}, err
	}

	item := domain.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         input.Name,
		PriceRegular: input.PriceRegular,
		PriceLarge:   input.PriceLarge,
		Stock:        input.Stock,
		Image:        input.Image,
		IsAvailable:  true,
	}

	if err := s.menuRepo.Create(ctx, &item); err != nil {
		return domain.MenuItem{}, err
	}

	return item, nil
}

// UpdateMenuItem applies a partial update. Ownership is re-derived here from
// the acting seller, never trusted from the request: the update is scoped to
// the seller's own restaurant id, so a foreign item id matches nothing.
func (s *CatalogService) UpdateMenuItem(ctx context.Context, sellerID, itemID uint, patch MenuItemPatch) (domain.MenuItem, error) {
	restaurant, err := s.restaurantRepo.FindBySellerID(ctx, sellerID)
	if err != nil {
		return domain.MenuItem{}, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		if *patch.Name == "" {
			return domain.MenuItem{}, fmt.Errorf("%w: item name cannot be empty", domain.ErrInvalidInput)
		}
		updates["name"] = *patch.Name
	}
	if patch.PriceRegular != nil {
		if *patch.PriceRegular <= 0 {
			return domain.MenuItem{}, fmt.Errorf("%w: regular price must be greater than 0", domain.ErrInvalidInput)
		}
		updates["price_regular"] = *patch.PriceRegular
	}
	if patch.PriceLarge != nil {
		updates["price_large"] = *patch.PriceLarge
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return domain.MenuItem{}, fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidInput)
		}
		updates["stock"] = *patch.Stock
	}
	if patch.IsAvailable != nil {
		updates["is_available"] = *patch.IsAvailable
	}
	if patch.Image != nil && *patch.Image != "" {
		updates["image"] = *patch.Image
	}

	if err := s.menuRepo.UpdateFields(ctx, itemID, restaurant.ID, updates); err != nil {
		return domain.MenuItem{}, err
	}

	item, err := s.menuRepo.FindByID(ctx, itemID)
	if err != nil {
		return domain.MenuItem{}, err
	}
	if item.RestaurantID != restaurant.ID {
		return domain.MenuItem{}, domain.ErrNotFound
	}

	return item, nil
}

func (s *CatalogService) DeleteMenuItem(ctx context.Context, sellerID, itemID uint) error {
	restaurant, err := s.restaurantRepo.FindBySellerID(ctx, sellerID)
	if err != nil {
		return err
	}

	return s.menuRepo.Delete(ctx, itemID, restaurant.ID)
}

// MenuStock is the seller analytics view: current stock and popularity per item.
func (s *CatalogService) MenuStock(ctx context.Context, sellerID uint) ([]domain.MenuItem, error) {
	return s.OwnMenu(ctx, sellerID)
}

/* customer side */

func (s *CatalogService) ActiveRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return s.restaurantRepo.FindAllActive(ctx)
}

func (s *CatalogService) RestaurantMenu(ctx context.Context, restaurantID uint) ([]domain.MenuItem, error) {
	restaurant, err := s.restaurantRepo.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant.Status != domain.RestaurantActive {
		return nil, domain.ErrNotFound
	}

	return s.menuRepo.FindAvailableByRestaurantID(ctx, restaurant.ID)
}
