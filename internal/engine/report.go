package engine

import (
	"log/slog"

	"github.com/talgya/pawnshop/internal/ledger"
	"github.com/talgya/pawnshop/internal/shop"
)

// logDailyReport writes the end-of-day summary.
func logDailyReport(ds ledger.DailyStats, money, inventory int) {
	slog.Info("day ended",
		"day", ds.Day,
		"arrived", ds.Arrived,
		"talked", ds.Talked,
		"never_talked", ds.NeverTalked,
		"purchases", len(ds.Purchases),
		"sales", len(ds.Sales),
		"left", len(ds.Departures),
		"money", shop.FormatMoney(money),
		"inventory", inventory,
	)
	for _, d := range ds.Purchases {
		slog.Info("  bought", "day", ds.Day, "customer", d.CustomerName, "item", d.Item, "price", shop.FormatMoney(d.Price))
	}
	for _, d := range ds.Sales {
		profit := 0
		if d.Profit != nil {
			profit = *d.Profit
		}
		slog.Info("  sold", "day", ds.Day, "customer", d.CustomerName, "item", d.Item,
			"price", shop.FormatMoney(d.Price), "profit", shop.FormatMoney(profit))
	}
	for _, d := range ds.Departures {
		slog.Info("  left", "day", ds.Day, "customer", d.CustomerName, "reason", d.Reason)
	}
}

// logFinalReport writes the end-of-game summary.
func logFinalReport(res Result) {
	fs := res.Stats
	slog.Info("game over",
		"reason", res.Reason,
		"days_played", res.DaysPlayed,
		"ticks", res.Ticks,
		"starting_money", shop.FormatMoney(res.StartingMoney),
		"final_money", shop.FormatMoney(res.FinalMoney),
		"profit", shop.FormatMoney(res.Profit),
		"trades", res.TotalTrades,
	)
	slog.Info("customer summary",
		"total", fs.TotalCustomers,
		"talked", fs.Talked,
		"never_talked", fs.NeverTalked,
		"left", fs.CustomersLeft,
		"purchases", fs.PurchaseCount,
		"sales", fs.SaleCount,
		"spent", shop.FormatMoney(fs.Spent),
		"revenue", shop.FormatMoney(fs.Revenue),
		"sales_profit", shop.FormatMoney(fs.TotalProfit),
	)

	counts := make(map[ledger.InteractionClass]int)
	for _, in := range fs.Interactions {
		counts[in.Class]++
	}
	slog.Info("interactions",
		"deal_made", counts[ledger.InteractionDealMade],
		"left_without_deal", counts[ledger.InteractionLeftWithoutDeal],
		"talked_no_outcome", counts[ledger.InteractionTalkedNoOutcome],
		"never_talked", counts[ledger.InteractionNeverTalked],
	)
}
