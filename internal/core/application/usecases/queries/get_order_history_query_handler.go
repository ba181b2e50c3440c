package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads the transition ledger of one order from
// the database. Uses direct SQL for read performance; the ledger is never
// reconstructed into domain aggregates on the read path.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for order history queries.
// Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query to retrieve the order's transition history.
// Returns transitions oldest first; an order with no recorded transitions
// yields an empty slice, not an error.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	history := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			created_at
		FROM process_records
		WHERE order_id = ?
		ORDER BY created_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status int
		var createdAt time.Time

		err = rows.Scan(&status, &createdAt)
		if err != nil {
			return nil, err
		}

		history = append(history, GetOrderHistoryQueryResponse{
			Status:    order.Status(status),
			CreatedAt: createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
