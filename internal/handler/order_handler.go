package handler

import (
	"net/http"

	"github.com/pr-poehali-dev/food-delivery-django/internal/service"
	"github.com/pr-poehali-dev/food-delivery-django/models"
	"github.com/pr-poehali-dev/food-delivery-django/pkg/logger"
)

// Orders are never deleted, so DELETE stays off the preflight list.
const orderAllowMethods = "GET, POST, PUT, OPTIONS"

// OrderHandler dispatches order requests by HTTP method
type OrderHandler struct {
	orderService service.OrderServiceInterface
	logger       *logger.Logger
}

func NewOrderHandler(orderService service.OrderServiceInterface, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       log.WithComponent("order_handler"),
	}
}

// Handle routes a request envelope to the matching order operation.
// OPTIONS short-circuits before any store access.
func (h *OrderHandler) Handle(req models.Request) models.Response {
	switch req.HTTPMethod {
	case http.MethodOptions:
		return preflightResponse(orderAllowMethods)
	case http.MethodGet:
		return h.listOrders()
	case http.MethodPost:
		return h.createOrder(req)
	case http.MethodPut:
		return h.updateOrderStatus(req)
	default:
		h.logger.Warn("Unsupported method for orders", "method", req.HTTPMethod)
		return errorResponse(http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *OrderHandler) listOrders() models.Response {
	orders, err := h.orderService.ListOrders()
	if err != nil {
		h.logger.Error("Failed to list orders", "error", err)
		return errorResponse(http.StatusInternalServerError, "Failed to fetch orders")
	}

	if orders == nil {
		orders = []models.OrderWithItems{}
	}

	return jsonResponse(http.StatusOK, orders)
}

func (h *OrderHandler) createOrder(req models.Request) models.Response {
	var createReq service.CreateOrderRequest
	if err := parseBody(req, &createReq); err != nil {
		h.logger.Warn("Invalid request body for create order", "error", err)
		return errorResponse(http.StatusBadRequest, "Invalid request body")
	}

	order, err := h.orderService.CreateOrder(createReq)
	if err != nil {
		h.logger.Error("Failed to create order", "error", err)
		return errorResponse(http.StatusInternalServerError, "Failed to create order")
	}

	// The response carries the order row only; items are visible
	// through the listing.
	return jsonResponse(http.StatusCreated, order)
}

func (h *OrderHandler) updateOrderStatus(req models.Request) models.Response {
	id := req.PathParams["id"]

	var updateReq service.UpdateOrderStatusRequest
	if err := parseBody(req, &updateReq); err != nil {
		h.logger.Warn("Invalid request body for update order status", "error", err)
		return errorResponse(http.StatusBadRequest, "Invalid request body")
	}

	order, err := h.orderService.UpdateOrderStatus(id, updateReq)
	if err != nil {
		h.logger.Error("Failed to update order status", "order_id", id, "error", err)
		return errorResponse(http.StatusInternalServerError, "Failed to update order")
	}

	if order == nil {
		return jsonResponse(http.StatusOK, struct{}{})
	}

	return jsonResponse(http.StatusOK, order)
}
