package services

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderFacts is the projection of an order the statistics need. Stores list
// these instead of whole aggregates.
type OrderFacts struct {
	Status      order.Status
	TotalAmount kernel.Money
	CreatedAt   time.Time
}

// Snapshot is the dashboard view of the order book at one instant.
type Snapshot struct {
	Total int

	TodayCount int
	// TodayRevenue sums the totals of every order created today, cancelled ones included.
	TodayRevenue kernel.Money
	// TodayNetRevenue is TodayRevenue without cancelled orders.
	TodayNetRevenue kernel.Money

	Pending   int
	Paid      int
	InPacking int
	Packed    int
	Shipped   int
	Delivered int
	Cancelled int
}

// StatisticsAggregator folds order facts into a Snapshot.
//
// Business rules:
//   - Every order lands in exactly one status bucket; orders with an unknown status
//     still count towards Total but in no bucket
//   - "Today" starts at local midnight in the configured location, inclusive
//   - Missing totals are stored as zero and contribute nothing to revenue
//   - Revenue sums saturate at kernel.MaxMoney instead of overflowing
//
// Example usage:
//
//	loc, _ := time.LoadLocation("Asia/Kolkata")
//	aggregator := services.NewStatisticsAggregator(loc)
//	snapshot := aggregator.Aggregate(facts, clock.Now())
type StatisticsAggregator struct {
	location *time.Location
}

// NewStatisticsAggregator creates an aggregator that computes "today" in loc.
// A nil loc means UTC.
func NewStatisticsAggregator(loc *time.Location) StatisticsAggregator {
	if loc == nil {
		loc = time.UTC
	}
	return StatisticsAggregator{location: loc}
}

// StartOfDay returns local midnight of the day containing now.
func (a StatisticsAggregator) StartOfDay(now time.Time) time.Time {
	local := now.In(a.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.location)
}

// Aggregate computes the snapshot in a single pass over facts.
func (a StatisticsAggregator) Aggregate(facts []OrderFacts, now time.Time) Snapshot {
	startOfDay := a.StartOfDay(now)

	var s Snapshot
	for _, f := range facts {
		s.Total++

		if !f.CreatedAt.Before(startOfDay) {
			s.TodayCount++
			s.TodayRevenue = addSaturating(s.TodayRevenue, f.TotalAmount)
			if f.Status != order.Cancelled {
				s.TodayNetRevenue = addSaturating(s.TodayNetRevenue, f.TotalAmount)
			}
		}

		if bucket := s.bucket(f.Status); bucket != nil {
			*bucket++
		}
	}
	return s
}

func addSaturating(sum, amount kernel.Money) kernel.Money {
	total, err := sum.Add(amount)
	if err != nil {
		return kernel.MaxMoney()
	}
	return total
}

func (s *Snapshot) bucket(status order.Status) *int {
	switch status {
	case order.Pending:
		return &s.Pending
	case order.Paid:
		return &s.Paid
	case order.InPacking:
		return &s.InPacking
	case order.Packed:
		return &s.Packed
	case order.Shipped:
		return &s.Shipped
	case order.Delivered:
		return &s.Delivered
	case order.Cancelled:
		return &s.Cancelled
	default:
		return nil
	}
}
