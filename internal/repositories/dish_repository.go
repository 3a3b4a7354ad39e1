package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/pr-poehali-dev/food-delivery-django/models"
	"github.com/pr-poehali-dev/food-delivery-django/pkg/database"
	"github.com/pr-poehali-dev/food-delivery-django/pkg/logger"
)

// DishRepositoryInterface defines dish storage operations
type DishRepositoryInterface interface {
	GetAvailable() ([]models.Dish, error)
	Create(dish *models.Dish) (*models.Dish, error)
	Update(id string, dish *models.Dish) (*models.Dish, error)
	SoftDelete(id string) error
}

type DishRepository struct {
	logger *logger.Logger
	db     *database.DB
}

func NewDishRepository(log *logger.Logger, db *database.DB) *DishRepository {
	return &DishRepository{
		logger: log.WithComponent("dish_repository"),
		db:     db,
	}
}

const dishColumns = "id, title, ingredients, price, image, category, is_available, created_at"

// GetAvailable returns every dish that has not been soft-deleted,
// newest first. Soft-deleted rows stay in the table but never appear
// through this query.
func (r *DishRepository) GetAvailable() ([]models.Dish, error) {
	query := `
        SELECT ` + dishColumns + `
        FROM dishes
        WHERE is_available = true
        ORDER BY created_at DESC
    `

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Failed to query dishes", "error", err)
		return nil, fmt.Errorf("failed to query dishes: %v", err)
	}
	defer rows.Close()

	dishes := []models.Dish{}
	for rows.Next() {
		var dish models.Dish
		if err := scanDish(rows.Scan, &dish); err != nil {
			r.logger.Error("Failed to scan dish row", "error", err)
			return nil, fmt.Errorf("failed to scan dish: %v", err)
		}
		dishes = append(dishes, dish)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Dish row iteration failed", "error", err)
		return nil, fmt.Errorf("failed to read dishes: %v", err)
	}

	r.logger.Debug("Fetched available dishes", "count", len(dishes))
	return dishes, nil
}

// Create inserts a dish and returns the stored row. Absent fields insert
// as NULL; the schema's constraints decide whether that is acceptable.
func (r *DishRepository) Create(dish *models.Dish) (*models.Dish, error) {
	query := `
        INSERT INTO dishes (title, ingredients, price, image, category)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + dishColumns

	var created models.Dish
	row := r.db.QueryRow(query, dish.Title, dish.Ingredients, dish.Price, dish.Image, dish.Category)
	if err := scanDish(row.Scan, &created); err != nil {
		r.logPQError("Failed to insert dish", err)
		return nil, fmt.Errorf("failed to insert dish: %v", err)
	}

	r.logger.Info("Created dish", "dish_id", created.ID)
	return &created, nil
}

// Update overwrites every mutable field of the dish, writing NULL for
// fields absent from the request. Returns (nil, nil) when no row matched.
func (r *DishRepository) Update(id string, dish *models.Dish) (*models.Dish, error) {
	query := `
        UPDATE dishes
        SET title = $1, ingredients = $2, price = $3, image = $4, category = $5
        WHERE id = $6
        RETURNING ` + dishColumns

	var updated models.Dish
	row := r.db.QueryRow(query, dish.Title, dish.Ingredients, dish.Price, dish.Image, dish.Category, id)
	if err := scanDish(row.Scan, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Warn("Dish update matched no rows", "dish_id", id)
			return nil, nil
		}
		r.logPQError("Failed to update dish", err)
		return nil, fmt.Errorf("failed to update dish: %v", err)
	}

	r.logger.Info("Updated dish", "dish_id", updated.ID)
	return &updated, nil
}

// SoftDelete hides a dish from listings without removing the row, so
// historical order_items keep a valid reference. No existence check.
func (r *DishRepository) SoftDelete(id string) error {
	query := `UPDATE dishes SET is_available = false WHERE id = $1`

	if _, err := r.db.Exec(query, id); err != nil {
		r.logPQError("Failed to soft-delete dish", err)
		return fmt.Errorf("failed to delete dish: %v", err)
	}

	r.logger.Info("Soft-deleted dish", "dish_id", id)
	return nil
}

func scanDish(scan func(...interface{}) error, dish *models.Dish) error {
	return scan(
		&dish.ID,
		&dish.Title,
		&dish.Ingredients,
		&dish.Price,
		&dish.Image,
		&dish.Category,
		&dish.IsAvailable,
		&dish.CreatedAt,
	)
}

func (r *DishRepository) logPQError(msg string, err error) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		r.logger.Error(msg, "error", err, "pq_code", string(pqErr.Code), "constraint", pqErr.Constraint)
		return
	}
	r.logger.Error(msg, "error", err)
}
