package service

import (
	"github.com/pr-poehali-dev/food-delivery-django/internal/repositories"
	"github.com/pr-poehali-dev/food-delivery-django/models"
	"github.com/pr-poehali-dev/food-delivery-django/pkg/logger"
)

// defaultOrderType is used when a created order does not state one.
const defaultOrderType = "delivery"

// CreateOrderRequest carries the order fields and line items read from
// a POST body.
type CreateOrderRequest struct {
	CustomerName    *string                 `json:"customer_name"`
	CustomerPhone   *string                 `json:"customer_phone"`
	CustomerEmail   *string                 `json:"customer_email"`
	DeliveryAddress *string                 `json:"delivery_address"`
	TotalPrice      *float64                `json:"total_price"`
	OrderType       *string                 `json:"order_type"`
	Items           []models.OrderItemInput `json:"items"`
}

// UpdateOrderStatusRequest carries the status read from a PUT body. Any
// string is accepted and written verbatim; transition rules live with
// external callers or schema constraints, not here.
type UpdateOrderStatusRequest struct {
	Status *string `json:"status"`
}

// OrderServiceInterface defines order business operations
type OrderServiceInterface interface {
	ListOrders() ([]models.OrderWithItems, error)
	CreateOrder(req CreateOrderRequest) (*models.Order, error)
	UpdateOrderStatus(id string, req UpdateOrderStatusRequest) (*models.Order, error)
}

type OrderService struct {
	orderRepo repositories.OrderRepositoryInterface
	logger    *logger.Logger
}

func NewOrderService(orderRepo repositories.OrderRepositoryInterface, log *logger.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		logger:    log.WithComponent("order_service"),
	}
}

// ListOrders returns all orders with their aggregated items, newest first
func (s *OrderService) ListOrders() ([]models.OrderWithItems, error) {
	return s.orderRepo.GetAllWithItems()
}

// CreateOrder inserts an order and its line items as one atomic unit,
// applying the customer_email and order_type defaults
func (s *OrderService) CreateOrder(req CreateOrderRequest) (*models.Order, error) {
	email := req.CustomerEmail
	if email == nil {
		empty := ""
		email = &empty
	}

	orderType := req.OrderType
	if orderType == nil {
		fallback := defaultOrderType
		orderType = &fallback
	}

	items := req.Items
	if items == nil {
		items = []models.OrderItemInput{}
	}

	order := &models.Order{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   email,
		DeliveryAddress: req.DeliveryAddress,
		TotalPrice:      req.TotalPrice,
		OrderType:       orderType,
	}

	return s.orderRepo.Create(order, items)
}

// UpdateOrderStatus writes the new status and refreshes updated_at.
// Returns (nil, nil) when no order matched the id.
func (s *OrderService) UpdateOrderStatus(id string, req UpdateOrderStatusRequest) (*models.Order, error) {
	return s.orderRepo.UpdateStatus(id, req.Status)
}
