package services

import (
	"bookStore/entities"
	"bookStore/repository"

	"github.com/shopspring/decimal"
)

type StatsService struct {
	br repository.BookRepository
	or repository.OrderRepository
}

func NewStatsService(bookRepo repository.BookRepository, orderRepo repository.OrderRepository) StatsService {
	return StatsService{
		br: bookRepo,
		or: orderRepo,
	}
}

func (ss *StatsService) GetAdminStats() (stats entities.AdminStats, err error) {
	total, trending, err := ss.br.CountBooks()
	if err != nil {
		return
	}
	oStats, err := ss.or.GetOrderStats()
	if err != nil {
		return
	}
	stats.TotalBooks = total
	stats.TrendingBooks = trending
	stats.TrendingBooksPercentage = decimal.Zero
	if total > 0 {
		stats.TrendingBooksPercentage = decimal.NewFromInt(int64(trending)).
			Mul(decimal.NewFromInt(100)).
			DivRound(decimal.NewFromInt(int64(total)), 2)
	}
	stats.TotalOrders = oStats.TotalOrders
	stats.TotalSales = oStats.TotalSales
	stats.OrdersByStatus = oStats.OrdersByStatus
	return
}
