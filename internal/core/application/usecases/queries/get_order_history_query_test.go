package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderHistoryQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOrderHistoryQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetOrderHistoryQuery_InvalidOrderID(t *testing.T) {
	_, err := queries.NewGetOrderHistoryQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetOrderHistoryQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderHistoryQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderHistoryQueryIsNotConstructed)
}
