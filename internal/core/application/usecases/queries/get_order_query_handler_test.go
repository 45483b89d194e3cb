package queries_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	t.Run("valid id", func(t *testing.T) {
		id := kernel.NewUUID()
		query, err := queries.NewGetOrderQuery(id)
		require.NoError(t, err)
		assert.True(t, query.OrderID().IsEqual(id))
		assert.NoError(t, query.Validate())
	})

	t.Run("zero id", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(kernel.UUID{})
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("zero value query", func(t *testing.T) {
		var query queries.GetOrderQuery
		assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("maps the order to its view", func(t *testing.T) {
		r := newReaders(t)
		o := shippedOrder(t)
		r.orders.On("Get", mock.Anything, o.ID()).Return(o, nil)

		query, err := queries.NewGetOrderQuery(o.ID())
		require.NoError(t, err)

		view, err := queries.NewGetOrderQueryHandler(r).Handle(ctx, query)
		require.NoError(t, err)
		assert.True(t, view.ID.IsEqual(o.ID()))
		assert.Equal(t, order.Shipped, view.Status)
		assert.Equal(t, int64(179900), view.TotalMinor)
		assert.Equal(t, "DTDC", view.Carrier)
		assert.Equal(t, "T123", view.TrackingID)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "stole-02", view.Items[0].ProductID)
		assert.Equal(t, int64(89950), view.Items[0].UnitPriceMinor)
		require.NotNil(t, view.ShippedAt)
		assert.Nil(t, view.DeliveredAt)
	})

	t.Run("unknown order", func(t *testing.T) {
		r := newReaders(t)
		id := kernel.NewUUID()
		r.orders.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("order", id))

		query, err := queries.NewGetOrderQuery(id)
		require.NoError(t, err)

		_, err = queries.NewGetOrderQueryHandler(r).Handle(ctx, query)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("query not constructed", func(t *testing.T) {
		r := newReaders(t)
		_, err := queries.NewGetOrderQueryHandler(r).Handle(ctx, queries.GetOrderQuery{})
		assert.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
		r.orders.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}
