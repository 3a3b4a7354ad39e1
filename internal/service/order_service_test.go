package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pr-poehali-dev/food-delivery-django/models"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) GetAllWithItems() ([]models.OrderWithItems, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderWithItems), args.Error(1)
}

func (m *mockOrderRepo) Create(order *models.Order, items []models.OrderItemInput) (*models.Order, error) {
	args := m.Called(order, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderRepo) UpdateStatus(id string, status *string) (*models.Order, error) {
	args := m.Called(id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func TestOrderService_CreateOrder_Defaults(t *testing.T) {
	repo := new(mockOrderRepo)
	repo.On("Create",
		mock.MatchedBy(func(order *models.Order) bool {
			return order.CustomerEmail != nil && *order.CustomerEmail == "" &&
				order.OrderType != nil && *order.OrderType == "delivery"
		}),
		mock.MatchedBy(func(items []models.OrderItemInput) bool {
			return items != nil && len(items) == 0
		}),
	).Return(&models.Order{ID: 1}, nil)

	svc := NewOrderService(repo, testLogger())
	_, err := svc.CreateOrder(CreateOrderRequest{
		CustomerName:    strPtr("A"),
		CustomerPhone:   strPtr("1"),
		DeliveryAddress: strPtr("X"),
		TotalPrice:      floatPtr(20),
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestOrderService_CreateOrder_KeepsExplicitValues(t *testing.T) {
	items := []models.OrderItemInput{{DishID: 1, DishTitle: "Pasta", Quantity: 2, Price: 10}}

	repo := new(mockOrderRepo)
	repo.On("Create",
		mock.MatchedBy(func(order *models.Order) bool {
			return *order.CustomerEmail == "a@b.c" && *order.OrderType == "takeaway"
		}),
		items,
	).Return(&models.Order{ID: 1}, nil)

	svc := NewOrderService(repo, testLogger())
	_, err := svc.CreateOrder(CreateOrderRequest{
		CustomerName:  strPtr("A"),
		CustomerEmail: strPtr("a@b.c"),
		OrderType:     strPtr("takeaway"),
		Items:         items,
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatus_VerbatimStatus(t *testing.T) {
	// Any string is accepted; no transition checking in this layer
	repo := new(mockOrderRepo)
	repo.On("UpdateStatus", "5", mock.MatchedBy(func(status *string) bool {
		return status != nil && *status == "weird-made-up-status"
	})).Return(&models.Order{ID: 5}, nil)

	svc := NewOrderService(repo, testLogger())
	_, err := svc.UpdateOrderStatus("5", UpdateOrderStatusRequest{Status: strPtr("weird-made-up-status")})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatus_NoMatchPassesThrough(t *testing.T) {
	repo := new(mockOrderRepo)
	repo.On("UpdateStatus", "404", mock.Anything).Return(nil, nil)

	svc := NewOrderService(repo, testLogger())
	order, err := svc.UpdateOrderStatus("404", UpdateOrderStatusRequest{Status: strPtr("cooking")})

	assert.NoError(t, err)
	assert.Nil(t, order)
}

func TestOrderService_ListOrders_PassesThrough(t *testing.T) {
	expected := []models.OrderWithItems{{Order: models.Order{ID: 1}, Items: []models.OrderItemView{}}}

	repo := new(mockOrderRepo)
	repo.On("GetAllWithItems").Return(expected, nil)

	svc := NewOrderService(repo, testLogger())
	orders, err := svc.ListOrders()

	assert.NoError(t, err)
	assert.Equal(t, expected, orders)
}
