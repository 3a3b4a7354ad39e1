package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/food-delivery-django/models"
)

var orderTestColumns = []string{
	"id", "customer_name", "customer_phone", "customer_email", "delivery_address",
	"total_price", "order_type", "status", "created_at", "updated_at",
}

func testOrderInput() (*models.Order, []models.OrderItemInput) {
	order := &models.Order{
		CustomerName:    strPtr("A"),
		CustomerPhone:   strPtr("1"),
		CustomerEmail:   strPtr(""),
		DeliveryAddress: strPtr("X"),
		TotalPrice:      floatPtr(20),
		OrderType:       strPtr("delivery"),
	}
	items := []models.OrderItemInput{
		{DishID: 1, DishTitle: "Pasta", Quantity: 2, Price: 10},
	}
	return order, items
}

func orderRow(ts time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(orderTestColumns).
		AddRow(5, "A", "1", "", "X", 20.0, "delivery", "pending", ts, ts)
}

func TestOrderRepository_Create_CommitsOnceAfterAllInserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(testLogger(), db)

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	order, items := testOrderInput()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders \(customer_name, customer_phone, customer_email, delivery_address, total_price, order_type\)`).
		WithArgs("A", "1", "", "X", 20.0, "delivery").
		WillReturnRows(orderRow(ts))
	mock.ExpectExec(`INSERT INTO order_items \(order_id, dish_id, dish_title, quantity, price\)`).
		WithArgs(5, 1, "Pasta", 2, 10.0).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	created, err := repo.Create(order, items)

	require.NoError(t, err)
	assert.Equal(t, 5, created.ID)
	assert.Equal(t, "pending", *created.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_RollsBackWhenItemInsertFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(testLogger(), db)

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	order, items := testOrderInput()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WillReturnRows(orderRow(ts))
	mock.ExpectExec(`INSERT INTO order_items`).
		WillReturnError(errors.New(`pq: insert or update on table "order_items" violates foreign key constraint`))
	mock.ExpectRollback()

	created, err := repo.Create(order, items)

	// The order insert must not survive a failed item insert
	assert.Error(t, err)
	assert.Nil(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_RollsBackWhenOrderInsertFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(testLogger(), db)

	order, items := testOrderInput()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WillReturnError(errors.New("pq: null value in column violates not-null constraint"))
	mock.ExpectRollback()

	created, err := repo.Create(order, items)

	assert.Error(t, err)
	assert.Nil(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_NoItems(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(testLogger(), db)

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	order, _ := testOrderInput()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WillReturnRows(orderRow(ts))
	mock.ExpectCommit()

	created, err := repo.Create(order, []models.OrderItemInput{})

	require.NoError(t, err)
	assert.Equal(t, 5, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetAllWithItems(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(testLogger(), db)

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	listColumns := append(append([]string{}, orderTestColumns...), "items")

	mock.ExpectQuery(`SELECT (.+) FROM orders o\s+LEFT JOIN order_items oi ON o.id = oi.order_id`).
		WillReturnRows(sqlmock.NewRows(listColumns).
			AddRow(5, "A", "1", "", "X", 20.0, "delivery", "pending", ts, ts,
				[]byte(`[{"id":11,"dish_title":"Pasta","quantity":2,"price":10}]`)).
			AddRow(6, "B", "2", "", "Y", 0.0, "takeaway", "pending", ts, ts,
				[]byte(`[]`)))

	orders, err := repo.GetAllWithItems()

	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, 5, orders[0].ID)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Pasta", orders[0].Items[0].DishTitle)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)

	// Itemless orders come back with an empty items array, not [null]
	assert.Equal(t, 6, orders[1].ID)
	assert.NotNil(t, orders[1].Items)
	assert.Empty(t, orders[1].Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetAllWithItems_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(testLogger(), db)

	listColumns := append(append([]string{}, orderTestColumns...), "items")
	mock.ExpectQuery(`SELECT (.+) FROM orders o`).
		WillReturnRows(sqlmock.NewRows(listColumns))

	orders, err := repo.GetAllWithItems()

	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(testLogger(), db)

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(`UPDATE orders\s+SET status = \$1, updated_at = CURRENT_TIMESTAMP\s+WHERE id = \$2`).
		WithArgs("cooking", "5").
		WillReturnRows(sqlmock.NewRows(orderTestColumns).
			AddRow(5, "A", "1", "", "X", 20.0, "delivery", "cooking", ts, ts.Add(time.Hour)))

	order, err := repo.UpdateStatus("5", strPtr("cooking"))

	require.NoError(t, err)
	assert.Equal(t, "cooking", *order.Status)
	assert.True(t, order.UpdatedAt.After(order.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateStatus_NoMatchReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(testLogger(), db)

	mock.ExpectQuery(`UPDATE orders`).
		WillReturnError(sql.ErrNoRows)

	order, err := repo.UpdateStatus("404", strPtr("cooking"))

	assert.NoError(t, err)
	assert.Nil(t, order)
}
