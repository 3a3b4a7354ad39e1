package handler

import (
	"net/http"

	"github.com/pr-poehali-dev/food-delivery-django/internal/service"
	"github.com/pr-poehali-dev/food-delivery-django/models"
	"github.com/pr-poehali-dev/food-delivery-django/pkg/logger"
)

const dishAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"

// DishHandler dispatches dish requests by HTTP method
type DishHandler struct {
	dishService service.DishServiceInterface
	logger      *logger.Logger
}

func NewDishHandler(dishService service.DishServiceInterface, log *logger.Logger) *DishHandler {
	return &DishHandler{
		dishService: dishService,
		logger:      log.WithComponent("dish_handler"),
	}
}

// Handle routes a request envelope to the matching dish operation.
// OPTIONS short-circuits before any store access.
func (h *DishHandler) Handle(req models.Request) models.Response {
	switch req.HTTPMethod {
	case http.MethodOptions:
		return preflightResponse(dishAllowMethods)
	case http.MethodGet:
		return h.listDishes()
	case http.MethodPost:
		return h.createDish(req)
	case http.MethodPut:
		return h.updateDish(req)
	case http.MethodDelete:
		return h.deleteDish(req)
	default:
		h.logger.Warn("Unsupported method for dishes", "method", req.HTTPMethod)
		return errorResponse(http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *DishHandler) listDishes() models.Response {
	dishes, err := h.dishService.ListDishes()
	if err != nil {
		h.logger.Error("Failed to list dishes", "error", err)
		return errorResponse(http.StatusInternalServerError, "Failed to fetch dishes")
	}

	if dishes == nil {
		dishes = []models.Dish{}
	}

	return jsonResponse(http.StatusOK, dishes)
}

func (h *DishHandler) createDish(req models.Request) models.Response {
	var createReq service.CreateDishRequest
	if err := parseBody(req, &createReq); err != nil {
		h.logger.Warn("Invalid request body for create dish", "error", err)
		return errorResponse(http.StatusBadRequest, "Invalid request body")
	}

	dish, err := h.dishService.CreateDish(createReq)
	if err != nil {
		h.logger.Error("Failed to create dish", "error", err)
		return errorResponse(http.StatusInternalServerError, "Failed to create dish")
	}

	return jsonResponse(http.StatusCreated, dish)
}

func (h *DishHandler) updateDish(req models.Request) models.Response {
	id := req.PathParams["id"]

	var updateReq service.UpdateDishRequest
	if err := parseBody(req, &updateReq); err != nil {
		h.logger.Warn("Invalid request body for update dish", "error", err)
		return errorResponse(http.StatusBadRequest, "Invalid request body")
	}

	dish, err := h.dishService.UpdateDish(id, updateReq)
	if err != nil {
		h.logger.Error("Failed to update dish", "dish_id", id, "error", err)
		return errorResponse(http.StatusInternalServerError, "Failed to update dish")
	}

	// No match is not an error here: callers get 200 with an empty
	// object and distinguish by body emptiness.
	if dish == nil {
		return jsonResponse(http.StatusOK, struct{}{})
	}

	return jsonResponse(http.StatusOK, dish)
}

func (h *DishHandler) deleteDish(req models.Request) models.Response {
	id := req.PathParams["id"]

	if err := h.dishService.DeleteDish(id); err != nil {
		h.logger.Error("Failed to delete dish", "dish_id", id, "error", err)
		return errorResponse(http.StatusInternalServerError, "Failed to delete dish")
	}

	return jsonResponse(http.StatusOK, map[string]bool{"success": true})
}
