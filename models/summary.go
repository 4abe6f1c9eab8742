package models

// Summary is the rollup over every record matching a query's predicate.
type Summary struct {
	TotalUnits    Number `json:"totalUnits"`
	TotalAmount   Number `json:"totalAmount"`
	TotalDiscount Number `json:"totalDiscount"`
	TotalOrders   int64  `json:"totalOrders"`
	NetRevenue    Number `json:"netRevenue"`
}

// Add folds r into the summary.
func (s *Summary) Add(r *SaleRecord) {
	s.TotalUnits += r.Quantity
	s.TotalAmount += r.TotalAmount
	s.TotalDiscount += r.DiscountPercentage
	s.TotalOrders++
	s.NetRevenue += r.FinalAmount
}
