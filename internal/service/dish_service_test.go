package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pr-poehali-dev/food-delivery-django/models"
	"github.com/pr-poehali-dev/food-delivery-django/pkg/logger"
)

type mockDishRepo struct {
	mock.Mock
}

func (m *mockDishRepo) GetAvailable() ([]models.Dish, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Dish), args.Error(1)
}

func (m *mockDishRepo) Create(dish *models.Dish) (*models.Dish, error) {
	args := m.Called(dish)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dish), args.Error(1)
}

func (m *mockDishRepo) Update(id string, dish *models.Dish) (*models.Dish, error) {
	args := m.Called(id, dish)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dish), args.Error(1)
}

func (m *mockDishRepo) SoftDelete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.LevelError, Format: "text", Output: "stderr"})
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestDishService_CreateDish_DefaultsImage(t *testing.T) {
	repo := new(mockDishRepo)
	repo.On("Create", mock.MatchedBy(func(dish *models.Dish) bool {
		return dish.Image != nil && *dish.Image == "/placeholder.svg"
	})).Return(&models.Dish{ID: 1}, nil)

	svc := NewDishService(repo, testLogger())
	_, err := svc.CreateDish(CreateDishRequest{
		Title:       strPtr("Pasta"),
		Ingredients: strPtr("flour"),
		Price:       floatPtr(10),
		Category:    strPtr("main"),
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDishService_CreateDish_KeepsExplicitImage(t *testing.T) {
	repo := new(mockDishRepo)
	repo.On("Create", mock.MatchedBy(func(dish *models.Dish) bool {
		return dish.Image != nil && *dish.Image == "/pasta.png"
	})).Return(&models.Dish{ID: 1}, nil)

	svc := NewDishService(repo, testLogger())
	_, err := svc.CreateDish(CreateDishRequest{
		Title: strPtr("Pasta"),
		Image: strPtr("/pasta.png"),
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDishService_CreateDish_AbsentFieldsStayNil(t *testing.T) {
	repo := new(mockDishRepo)
	repo.On("Create", mock.MatchedBy(func(dish *models.Dish) bool {
		return dish.Title == nil && dish.Price == nil && dish.Category == nil
	})).Return(&models.Dish{ID: 1}, nil)

	svc := NewDishService(repo, testLogger())
	_, err := svc.CreateDish(CreateDishRequest{})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDishService_UpdateDish_NoImageDefault(t *testing.T) {
	// A full-replace update must not substitute the placeholder: an
	// absent image overwrites with NULL.
	repo := new(mockDishRepo)
	repo.On("Update", "3", mock.MatchedBy(func(dish *models.Dish) bool {
		return dish.Image == nil
	})).Return(&models.Dish{ID: 3}, nil)

	svc := NewDishService(repo, testLogger())
	_, err := svc.UpdateDish("3", UpdateDishRequest{Title: strPtr("Soup")})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDishService_UpdateDish_NoMatchPassesThrough(t *testing.T) {
	repo := new(mockDishRepo)
	repo.On("Update", "999", mock.Anything).Return(nil, nil)

	svc := NewDishService(repo, testLogger())
	dish, err := svc.UpdateDish("999", UpdateDishRequest{})

	assert.NoError(t, err)
	assert.Nil(t, dish)
}

func TestDishService_DeleteDish(t *testing.T) {
	repo := new(mockDishRepo)
	repo.On("SoftDelete", "7").Return(nil)

	svc := NewDishService(repo, testLogger())
	assert.NoError(t, svc.DeleteDish("7"))
	repo.AssertExpectations(t)
}
