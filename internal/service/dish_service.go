package service

import (
	"github.com/pr-poehali-dev/food-delivery-django/internal/repositories"
	"github.com/pr-poehali-dev/food-delivery-django/models"
	"github.com/pr-poehali-dev/food-delivery-django/pkg/logger"
)

// defaultDishImage is used when a created dish carries no image of its own.
const defaultDishImage = "/placeholder.svg"

// CreateDishRequest carries the dish fields read from a POST body.
// Pointer fields distinguish absent from zero; absent fields reach the
// store as NULL.
type CreateDishRequest struct {
	Title       *string  `json:"title"`
	Ingredients *string  `json:"ingredients"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
}

// UpdateDishRequest carries the dish fields read from a PUT body. The
// update is a full-field overwrite, not a partial patch: absent fields
// overwrite with NULL.
type UpdateDishRequest struct {
	Title       *string  `json:"title"`
	Ingredients *string  `json:"ingredients"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
}

// DishServiceInterface defines dish business operations
type DishServiceInterface interface {
	ListDishes() ([]models.Dish, error)
	CreateDish(req CreateDishRequest) (*models.Dish, error)
	UpdateDish(id string, req UpdateDishRequest) (*models.Dish, error)
	DeleteDish(id string) error
}

type DishService struct {
	dishRepo repositories.DishRepositoryInterface
	logger   *logger.Logger
}

func NewDishService(dishRepo repositories.DishRepositoryInterface, log *logger.Logger) *DishService {
	return &DishService{
		dishRepo: dishRepo,
		logger:   log.WithComponent("dish_service"),
	}
}

// ListDishes returns all available dishes, newest first
func (s *DishService) ListDishes() ([]models.Dish, error) {
	return s.dishRepo.GetAvailable()
}

// CreateDish inserts a new dish, substituting the placeholder image when
// none was supplied
func (s *DishService) CreateDish(req CreateDishRequest) (*models.Dish, error) {
	image := req.Image
	if image == nil {
		placeholder := defaultDishImage
		image = &placeholder
	}

	dish := &models.Dish{
		Title:       req.Title,
		Ingredients: req.Ingredients,
		Price:       req.Price,
		Image:       image,
		Category:    req.Category,
	}

	return s.dishRepo.Create(dish)
}

// UpdateDish overwrites every mutable field of the dish. Returns
// (nil, nil) when no dish matched the id.
func (s *DishService) UpdateDish(id string, req UpdateDishRequest) (*models.Dish, error) {
	dish := &models.Dish{
		Title:       req.Title,
		Ingredients: req.Ingredients,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
	}

	return s.dishRepo.Update(id, dish)
}

// DeleteDish soft-deletes the dish so existing order items keep their
// reference
func (s *DishService) DeleteDish(id string) error {
	return s.dishRepo.SoftDelete(id)
}
