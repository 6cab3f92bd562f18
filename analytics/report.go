// Package analytics derives the per-branch sales report from the order
// log: revenue, quantity, best and worst sellers, ingredient usage and
// the resulting inventory cost and profit. Pure computation, no state.
package analytics

import (
	"time"

	"mug-life-api/catalog"
	"mug-life-api/models"
)

// Window selects the reporting period ending at the report time.
type Window string

const (
	WindowDaily   Window = "daily"
	WindowWeekly  Window = "weekly"
	WindowMonthly Window = "monthly"
)

// ParseWindow maps a request string onto a window, defaulting to daily.
func ParseWindow(s string) Window {
	switch Window(s) {
	case WindowWeekly:
		return WindowWeekly
	case WindowMonthly:
		return WindowMonthly
	default:
		return WindowDaily
	}
}

// ItemSales is the cup count and revenue for one drink.
type ItemSales struct {
	Item     string  `json:"item"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// IngredientTotals is the aggregate draw across the reported orders.
type IngredientTotals struct {
	Beans int `json:"coffee_beans_g"`
	Milk  int `json:"milk_ml"`
	Sugar int `json:"sugar_g"`
	Cups  int `json:"cups"`
}

// Report is the computed sales summary for one branch and window.
type Report struct {
	Branch        models.Branch    `json:"branch"`
	Window        Window           `json:"window"`
	OrderCount    int              `json:"order_count"`
	TotalRevenue  float64          `json:"total_revenue"`
	TotalQuantity int              `json:"total_quantity"`
	ByItem        []ItemSales      `json:"by_item"`
	BestSeller    string           `json:"best_seller,omitempty"`
	WorstSeller   string           `json:"worst_seller,omitempty"`
	Ingredients   IngredientTotals `json:"ingredients"`
	InventoryCost float64          `json:"inventory_cost"`
	Profit        float64          `json:"profit"`
}

func windowStart(w Window, now time.Time) time.Time {
	switch w {
	case WindowWeekly:
		return now.AddDate(0, 0, -7)
	case WindowMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
}

// Build computes the report over the given orders. Orders outside the
// window and fully discounted (zero-priced) orders are excluded from
// revenue, matching the original report's accounting.
func Build(orders []models.Order, branch models.Branch, window Window, now time.Time) Report {
	report := Report{Branch: branch, Window: window}
	start := windowStart(window, now)

	byItem := make(map[string]*ItemSales)
	for _, order := range orders {
		if order.Branch != branch || order.CreatedAt.Before(start) || order.CreatedAt.After(now) {
			continue
		}
		if order.FinalPrice <= 0 {
			continue
		}
		report.OrderCount++
		report.TotalRevenue += order.FinalPrice

		for _, line := range order.Lines {
			report.TotalQuantity += line.Quantity

			sales, ok := byItem[line.Item]
			if !ok {
				sales = &ItemSales{Item: line.Item}
				byItem[line.Item] = sales
			}
			sales.Quantity += line.Quantity
			sales.Revenue += line.LineTotal

			ing, ok := catalog.IngredientsOf(line.Item, line.Size)
			if !ok {
				continue
			}
			report.Ingredients.Beans += ing.Beans * line.Quantity
			report.Ingredients.Milk += ing.Milk * line.Quantity
			report.Ingredients.Sugar += ing.Sugar * line.Quantity
			report.Ingredients.Cups += line.Quantity
			for _, addOn := range line.AddOns {
				switch addOn {
				case catalog.AddOnExtraMilk:
					report.Ingredients.Milk += catalog.ExtraMilkPerCup * line.Quantity
				case catalog.AddOnExtraSugar:
					report.Ingredients.Sugar += catalog.ExtraSugarPerCup * line.Quantity
				}
			}
		}
	}

	for _, item := range catalog.Items() {
		if sales, ok := byItem[item]; ok {
			report.ByItem = append(report.ByItem, *sales)
		}
	}
	for _, sales := range report.ByItem {
		if report.BestSeller == "" || sales.Quantity > quantityOf(report.ByItem, report.BestSeller) {
			report.BestSeller = sales.Item
		}
		if report.WorstSeller == "" || sales.Quantity < quantityOf(report.ByItem, report.WorstSeller) {
			report.WorstSeller = sales.Item
		}
	}

	report.InventoryCost = ingredientCost(report.Ingredients)
	report.Profit = report.TotalRevenue - report.InventoryCost
	if report.Profit < 0 {
		report.Profit = 0
	}
	return report
}

func quantityOf(sales []ItemSales, item string) int {
	for _, s := range sales {
		if s.Item == item {
			return s.Quantity
		}
	}
	return 0
}

// ingredientCost prices the aggregate draw at restock rates.
func ingredientCost(t IngredientTotals) float64 {
	var cost float64
	if c, ok := catalog.RestockCost(models.ResourceCoffeeBeans, t.Beans); ok {
		cost += c
	}
	if c, ok := catalog.RestockCost(models.ResourceMilk, t.Milk); ok {
		cost += c
	}
	if c, ok := catalog.RestockCost(models.ResourceSugar, t.Sugar); ok {
		cost += c
	}
	if c, ok := catalog.RestockCost(models.ResourceCups, t.Cups); ok {
		cost += c
	}
	return cost
}
