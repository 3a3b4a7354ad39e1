package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/pr-poehali-dev/food-delivery-django/models"
	"github.com/pr-poehali-dev/food-delivery-django/pkg/database"
	"github.com/pr-poehali-dev/food-delivery-django/pkg/logger"
)

// OrderRepositoryInterface defines order storage operations
type OrderRepositoryInterface interface {
	GetAllWithItems() ([]models.OrderWithItems, error)
	Create(order *models.Order, items []models.OrderItemInput) (*models.Order, error)
	UpdateStatus(id string, status *string) (*models.Order, error)
}

type OrderRepository struct {
	logger *logger.Logger
	db     *database.DB
}

func NewOrderRepository(log *logger.Logger, db *database.DB) *OrderRepository {
	return &OrderRepository{
		logger: log.WithComponent("order_repository"),
		db:     db,
	}
}

const orderColumns = "id, customer_name, customer_phone, customer_email, delivery_address, total_price, order_type, status, created_at, updated_at"

// GetAllWithItems returns every order newest first, each with its line
// items aggregated into a JSON array. The FILTER clause keeps the
// left join from producing a null placeholder for itemless orders, so
// they come back with an empty items array.
func (r *OrderRepository) GetAllWithItems() ([]models.OrderWithItems, error) {
	query := `
        SELECT o.id, o.customer_name, o.customer_phone, o.customer_email, o.delivery_address,
               o.total_price, o.order_type, o.status, o.created_at, o.updated_at,
               COALESCE(
                   json_agg(
                       json_build_object(
                           'id', oi.id,
                           'dish_title', oi.dish_title,
                           'quantity', oi.quantity,
                           'price', oi.price
                       )
                   ) FILTER (WHERE oi.id IS NOT NULL), '[]'::json
               ) AS items
        FROM orders o
        LEFT JOIN order_items oi ON o.id = oi.order_id
        GROUP BY o.id
        ORDER BY o.created_at DESC
    `

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Failed to query orders", "error", err)
		return nil, fmt.Errorf("failed to query orders: %v", err)
	}
	defer rows.Close()

	orders := []models.OrderWithItems{}
	for rows.Next() {
		var order models.OrderWithItems
		var itemsJSON []byte

		err := rows.Scan(
			&order.ID,
			&order.CustomerName,
			&order.CustomerPhone,
			&order.CustomerEmail,
			&order.DeliveryAddress,
			&order.TotalPrice,
			&order.OrderType,
			&order.Status,
			&order.CreatedAt,
			&order.UpdatedAt,
			&itemsJSON,
		)
		if err != nil {
			r.logger.Error("Failed to scan order row", "error", err)
			return nil, fmt.Errorf("failed to scan order: %v", err)
		}

		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			r.logger.Error("Failed to decode aggregated order items", "error", err, "order_id", order.ID)
			return nil, fmt.Errorf("failed to decode order items: %v", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Order row iteration failed", "error", err)
		return nil, fmt.Errorf("failed to read orders: %v", err)
	}

	r.logger.Debug("Fetched orders with items", "count", len(orders))
	return orders, nil
}

// Create inserts the order and all of its line items in one transaction
// with a single commit at the end. A failed item insert rolls back the
// order insert too, so an orphaned order never becomes visible.
func (r *OrderRepository) Create(order *models.Order, items []models.OrderItemInput) (*models.Order, error) {
	insertOrder := `
        INSERT INTO orders (customer_name, customer_phone, customer_email, delivery_address, total_price, order_type)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + orderColumns

	insertItem := `
        INSERT INTO order_items (order_id, dish_id, dish_title, quantity, price)
        VALUES ($1, $2, $3, $4, $5)
    `

	var created models.Order
	err := r.db.ExecuteInTransaction(func(tx *sql.Tx) error {
		row := tx.QueryRow(insertOrder,
			order.CustomerName,
			order.CustomerPhone,
			order.CustomerEmail,
			order.DeliveryAddress,
			order.TotalPrice,
			order.OrderType,
		)

		err := row.Scan(
			&created.ID,
			&created.CustomerName,
			&created.CustomerPhone,
			&created.CustomerEmail,
			&created.DeliveryAddress,
			&created.TotalPrice,
			&created.OrderType,
			&created.Status,
			&created.CreatedAt,
			&created.UpdatedAt,
		)
		if err != nil {
			r.logPQError("Failed to insert order", err)
			return fmt.Errorf("failed to insert order: %v", err)
		}

		for _, item := range items {
			if _, err := tx.Exec(insertItem, created.ID, item.DishID, item.DishTitle, item.Quantity, item.Price); err != nil {
				r.logPQError("Failed to insert order item", err)
				return fmt.Errorf("failed to insert order item: %v", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Created order", "order_id", created.ID, "item_count", len(items))
	return &created, nil
}

// UpdateStatus writes the supplied status verbatim and refreshes
// updated_at. Returns (nil, nil) when no row matched.
func (r *OrderRepository) UpdateStatus(id string, status *string) (*models.Order, error) {
	query := `
        UPDATE orders
        SET status = $1, updated_at = CURRENT_TIMESTAMP
        WHERE id = $2
        RETURNING ` + orderColumns

	var updated models.Order
	row := r.db.QueryRow(query, status, id)
	err := row.Scan(
		&updated.ID,
		&updated.CustomerName,
		&updated.CustomerPhone,
		&updated.CustomerEmail,
		&updated.DeliveryAddress,
		&updated.TotalPrice,
		&updated.OrderType,
		&updated.Status,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Warn("Order status update matched no rows", "order_id", id)
			return nil, nil
		}
		r.logPQError("Failed to update order status", err)
		return nil, fmt.Errorf("failed to update order status: %v", err)
	}

	r.logger.Info("Updated order status", "order_id", updated.ID)
	return &updated, nil
}

func (r *OrderRepository) logPQError(msg string, err error) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		r.logger.Error(msg, "error", err, "pq_code", string(pqErr.Code), "constraint", pqErr.Constraint)
		return
	}
	r.logger.Error(msg, "error", err)
}
