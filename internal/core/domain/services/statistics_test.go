package services_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(t *testing.T, minor int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(minor)
	require.NoError(t, err)
	return m
}

func TestStatisticsAggregator_Aggregate(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 2025-03-14 15:00 IST
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	midnight := time.Date(2025, 3, 14, 0, 0, 0, 0, ist)

	t.Run("should count today, revenue and buckets in one pass", func(t *testing.T) {
		// Given
		facts := []services.OrderFacts{
			{Status: order.Paid, TotalAmount: amount(t, 100000), CreatedAt: midnight},
			{Status: order.Cancelled, TotalAmount: amount(t, 50000), CreatedAt: midnight.Add(2 * time.Hour)},
			{Status: order.Delivered, TotalAmount: amount(t, 70000), CreatedAt: midnight.Add(-time.Nanosecond)},
			{Status: order.Shipped, TotalAmount: kernel.Money{}, CreatedAt: midnight.Add(time.Hour)},
			{Status: order.Pending, TotalAmount: amount(t, 1), CreatedAt: midnight.Add(-48 * time.Hour)},
		}
		aggregator := services.NewStatisticsAggregator(ist)

		// When
		s := aggregator.Aggregate(facts, now)

		// Then
		assert.Equal(t, 5, s.Total)
		assert.Equal(t, 3, s.TodayCount)
		assert.Equal(t, int64(150000), s.TodayRevenue.MinorUnits())
		assert.Equal(t, int64(100000), s.TodayNetRevenue.MinorUnits())
		assert.Equal(t, 1, s.Pending)
		assert.Equal(t, 1, s.Paid)
		assert.Equal(t, 0, s.InPacking)
		assert.Equal(t, 0, s.Packed)
		assert.Equal(t, 1, s.Shipped)
		assert.Equal(t, 1, s.Delivered)
		assert.Equal(t, 1, s.Cancelled)
	})

	t.Run("should use the configured time zone for midnight", func(t *testing.T) {
		// 23:00 UTC on the 13th is already the 14th in IST.
		createdAt := time.Date(2025, 3, 13, 23, 0, 0, 0, time.UTC)
		facts := []services.OrderFacts{{Status: order.Paid, TotalAmount: amount(t, 10), CreatedAt: createdAt}}

		inIST := services.NewStatisticsAggregator(ist).Aggregate(facts, now)
		inUTC := services.NewStatisticsAggregator(nil).Aggregate(facts, now)

		assert.Equal(t, 1, inIST.TodayCount)
		assert.Equal(t, 0, inUTC.TodayCount)
	})

	t.Run("should return zeros for no orders", func(t *testing.T) {
		s := services.NewStatisticsAggregator(ist).Aggregate(nil, now)

		assert.Equal(t, services.Snapshot{}, s)
	})

	t.Run("should keep buckets summing to total", func(t *testing.T) {
		var facts []services.OrderFacts
		for _, status := range order.AllStatuses() {
			facts = append(facts, services.OrderFacts{Status: status, CreatedAt: now})
		}

		s := services.NewStatisticsAggregator(ist).Aggregate(facts, now)

		sum := s.Pending + s.Paid + s.InPacking + s.Packed + s.Shipped + s.Delivered + s.Cancelled
		assert.Equal(t, s.Total, sum)
		assert.Equal(t, len(order.AllStatuses()), s.TodayCount)
	})

	t.Run("should cap revenue at the largest amount", func(t *testing.T) {
		facts := []services.OrderFacts{
			{Status: order.Paid, TotalAmount: kernel.MaxMoney(), CreatedAt: now},
			{Status: order.Paid, TotalAmount: amount(t, 500), CreatedAt: now},
			{Status: order.Cancelled, TotalAmount: amount(t, 700), CreatedAt: now},
		}

		s := services.NewStatisticsAggregator(ist).Aggregate(facts, now)

		assert.Equal(t, 3, s.TodayCount)
		assert.Equal(t, kernel.MaxMoney(), s.TodayRevenue)
		assert.Equal(t, kernel.MaxMoney(), s.TodayNetRevenue)
	})
}

func TestStatisticsAggregator_StartOfDay(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	start := services.NewStatisticsAggregator(ist).StartOfDay(time.Date(2025, 3, 13, 20, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, ist), start)
}
