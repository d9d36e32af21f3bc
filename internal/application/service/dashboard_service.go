package service

import (
	"context"
	"sort"

	"github.com/bizbooks/bizbooks-api/internal/domain/entity"
	"github.com/bizbooks/bizbooks-api/internal/domain/enum"
	"github.com/bizbooks/bizbooks-api/internal/domain/repository"
	"github.com/bizbooks/bizbooks-api/pkg/gst"
)

// DashboardService derives summary statistics from the full transaction set
type DashboardService struct {
	transactionRepo repository.TransactionRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(transactionRepo repository.TransactionRepository) *DashboardService {
	return &DashboardService{transactionRepo: transactionRepo}
}

// DashboardStats represents the headline numbers on the dashboard.
type DashboardStats struct {
	TotalRevenue         float64 `json:"totalRevenue"`
	TotalPurchases       float64 `json:"totalPurchases"`
	TotalSales           int     `json:"totalSales"`
	TotalPurchaseEntries int     `json:"totalPurchaseEntries"`
	Profit               float64 `json:"profit"`
	TotalTransactions    int     `json:"totalTransactions"`
}

// MonthlyPoint is one bucket of the monthly overview chart.
type MonthlyPoint struct {
	Month     string  `json:"month"`
	Sales     float64 `json:"sales"`
	Purchases float64 `json:"purchases"`
}

// DashboardData is the full dashboard payload.
type DashboardData struct {
	Stats       DashboardStats `json:"stats"`
	MonthlyData []MonthlyPoint `json:"monthlyData"`
}

// GetDashboard fetches every transaction and aggregates it.
func (s *DashboardService) GetDashboard(ctx context.Context) (*DashboardData, error) {
	transactions, err := s.transactionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		Stats:       ComputeStats(transactions),
		MonthlyData: MonthlyOverview(transactions),
	}, nil
}

// ComputeStats sums the transaction set. Revenue and purchases are
// tax-inclusive; profit is the difference of the base amounts. Malformed
// amounts on legacy rows count as zero rather than failing the dashboard.
func ComputeStats(transactions []entity.Transaction) DashboardStats {
	stats := DashboardStats{TotalTransactions: len(transactions)}

	var baseRevenue, basePurchases float64
	for _, t := range transactions {
		switch t.Type {
		case enum.TransactionTypeSale:
			stats.TotalSales++
			stats.TotalRevenue += gst.AmountOrZero(t.AmountWithGST)
			baseRevenue += gst.AmountOrZero(t.Amount)
		case enum.TransactionTypePurchase:
			stats.TotalPurchaseEntries++
			stats.TotalPurchases += gst.AmountOrZero(t.AmountWithGST)
			basePurchases += gst.AmountOrZero(t.Amount)
		}
	}

	stats.Profit = baseRevenue - basePurchases
	return stats
}

// MonthlyOverview groups tax-inclusive amounts by month label, falling back
// to a label derived from the date for rows missing one. Buckets are
// ordered by the earliest transaction date they contain.
func MonthlyOverview(transactions []entity.Transaction) []MonthlyPoint {
	type bucket struct {
		point    MonthlyPoint
		earliest int64
	}

	buckets := make(map[string]*bucket)
	order := make([]string, 0)

	for _, t := range transactions {
		month := t.Month
		if month == "" {
			month = entity.MonthLabel(t.Date)
		}

		b, ok := buckets[month]
		if !ok {
			b = &bucket{point: MonthlyPoint{Month: month}, earliest: t.Date.Unix()}
			buckets[month] = b
			order = append(order, month)
		}
		if t.Date.Unix() < b.earliest {
			b.earliest = t.Date.Unix()
		}

		switch t.Type {
		case enum.TransactionTypeSale:
			b.point.Sales += gst.AmountOrZero(t.AmountWithGST)
		case enum.TransactionTypePurchase:
			b.point.Purchases += gst.AmountOrZero(t.AmountWithGST)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return buckets[order[i]].earliest < buckets[order[j]].earliest
	})

	points := make([]MonthlyPoint, 0, len(buckets))
	for _, month := range order {
		points = append(points, buckets[month].point)
	}
	return points
}
