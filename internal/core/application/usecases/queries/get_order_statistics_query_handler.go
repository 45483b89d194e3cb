package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
)

// GetOrderStatisticsQueryHandler reads the facts of every order and folds them
// into a snapshot. A full scan is acceptable at the store sizes this service
// runs at.
type GetOrderStatisticsQueryHandler struct {
	readers    ReaderFactory
	aggregator services.StatisticsAggregator
	clock      kernel.Clock
}

func NewGetOrderStatisticsQueryHandler(
	readers ReaderFactory,
	aggregator services.StatisticsAggregator,
	clock kernel.Clock,
) GetOrderStatisticsQueryHandler {
	return GetOrderStatisticsQueryHandler{
		readers:    readers,
		aggregator: aggregator,
		clock:      clock,
	}
}

func (h GetOrderStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatisticsQuery,
) (StatisticsView, error) {
	if err := query.Validate(); err != nil {
		return StatisticsView{}, err
	}

	facts, err := h.readers.Create().OrderRepository().ListFacts(ctx)
	if err != nil {
		return StatisticsView{}, err
	}

	return NewStatisticsView(h.aggregator.Aggregate(facts, h.clock.Now())), nil
}
