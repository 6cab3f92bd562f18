// Package catalog holds the fixed menu reference data: drink prices,
// add-on charges, per-cup ingredient usage, restock unit prices, the
// weekday special table and preparation times. Nothing here mutates.
package catalog

import (
	"time"

	"mug-life-api/models"
)

// Ingredients is the per-cup draw for one drink/size combination.
// Beans and sugar in grams, milk in milliliters.
type Ingredients struct {
	Beans int `json:"coffee_beans"`
	Milk  int `json:"milk"`
	Sugar int `json:"sugar"`
}

// Add-on names as they appear on the menu.
const (
	AddOnExtraSugar = "Extra sugar"
	AddOnExtraMilk  = "Extra milk"
)

// Extra ingredient draw per cup when an add-on is selected.
const (
	ExtraMilkPerCup  = 30 // ml
	ExtraSugarPerCup = 5  // g
)

var menu = map[string]map[models.Size]float64{
	"Americano":         {models.SizeSmall: 3.75, models.SizeMedium: 5.00, models.SizeLarge: 7.50},
	"Cappuccino":        {models.SizeSmall: 5.00, models.SizeMedium: 6.50, models.SizeLarge: 8.00},
	"Latte":             {models.SizeSmall: 5.25, models.SizeMedium: 6.75, models.SizeLarge: 8.25},
	"Caramel Macchiato": {models.SizeSmall: 4.50, models.SizeMedium: 7.00, models.SizeLarge: 9.50},
}

var addOnPrices = map[string]float64{
	AddOnExtraSugar: 0.70,
	AddOnExtraMilk:  0.90,
}

var usage = map[string]map[models.Size]Ingredients{
	"Americano": {
		models.SizeSmall:  {Beans: 9, Milk: 10, Sugar: 5},
		models.SizeMedium: {Beans: 12, Milk: 10, Sugar: 5},
		models.SizeLarge:  {Beans: 15, Milk: 10, Sugar: 5},
	},
	"Cappuccino": {
		models.SizeSmall:  {Beans: 9, Milk: 60, Sugar: 5},
		models.SizeMedium: {Beans: 12, Milk: 80, Sugar: 5},
		models.SizeLarge:  {Beans: 15, Milk: 100, Sugar: 5},
	},
	"Latte": {
		models.SizeSmall:  {Beans: 9, Milk: 100, Sugar: 5},
		models.SizeMedium: {Beans: 12, Milk: 150, Sugar: 5},
		models.SizeLarge:  {Beans: 15, Milk: 200, Sugar: 5},
	},
	"Caramel Macchiato": {
		models.SizeSmall:  {Beans: 9, Milk: 90, Sugar: 5},
		models.SizeMedium: {Beans: 12, Milk: 130, Sugar: 5},
		models.SizeLarge:  {Beans: 15, Milk: 180, Sugar: 5},
	},
}

// Restock unit prices. Beans, milk and sugar are priced per 100 units;
// cups per piece.
var restockPrices = map[models.Resource]float64{
	models.ResourceCoffeeBeans: 1.20,
	models.ResourceMilk:        0.70,
	models.ResourceSugar:       0.20,
	models.ResourceCups:        0.02,
}

// DailySpecial is a weekday-indexed automatic discount. An empty Item
// means the rate applies to every drink.
type DailySpecial struct {
	Offer string  `json:"offer"`
	Item  string  `json:"item,omitempty"`
	Rate  float64 `json:"rate"`
}

var specials = map[time.Weekday]DailySpecial{
	time.Monday:    {Offer: "20% off on all Americano!", Item: "Americano", Rate: 0.20},
	time.Tuesday:   {Offer: "30% off on all Cappuccino!", Item: "Cappuccino", Rate: 0.30},
	time.Wednesday: {Offer: "40% off on all Latte!", Item: "Latte", Rate: 0.40},
	time.Thursday:  {Offer: "50% off on all Caramel Macchiato!", Item: "Caramel Macchiato", Rate: 0.50},
	time.Friday:    {Offer: "15% off on all coffees!", Rate: 0.15},
	time.Saturday:  {Offer: "15% off on all coffees!", Rate: 0.15},
	time.Sunday:    {Offer: "15% off on all coffees!", Rate: 0.15},
}

var prepTimes = map[models.Size]time.Duration{
	models.SizeSmall:  120 * time.Second,
	models.SizeMedium: 180 * time.Second,
	models.SizeLarge:  300 * time.Second,
}

// AddOnPrepTime is added once per selected add-on per line.
const AddOnPrepTime = 30 * time.Second

// Items returns the drink names in menu order.
func Items() []string {
	return []string{"Americano", "Cappuccino", "Latte", "Caramel Macchiato"}
}

// Sizes returns the three cup sizes smallest first.
func Sizes() []models.Size {
	return []models.Size{models.SizeSmall, models.SizeMedium, models.SizeLarge}
}

// AddOns returns the available add-on names.
func AddOns() []string {
	return []string{AddOnExtraSugar, AddOnExtraMilk}
}

// PriceOf looks up the unit price for a drink at a size.
func PriceOf(item string, size models.Size) (float64, bool) {
	sizes, ok := menu[item]
	if !ok {
		return 0, false
	}
	price, ok := sizes[size]
	return price, ok
}

// AddOnPrice looks up the unit price of an add-on.
func AddOnPrice(name string) (float64, bool) {
	price, ok := addOnPrices[name]
	return price, ok
}

// IngredientsOf looks up the per-cup ingredient draw for a drink at a size.
func IngredientsOf(item string, size models.Size) (Ingredients, bool) {
	sizes, ok := usage[item]
	if !ok {
		return Ingredients{}, false
	}
	ing, ok := sizes[size]
	return ing, ok
}

// RestockUnitPrice returns the restock price for a resource: per 100 g/ml
// for ingredients, per piece for cups.
func RestockUnitPrice(resource models.Resource) (float64, bool) {
	price, ok := restockPrices[resource]
	return price, ok
}

// RestockCost computes the cost of adding amount units of a resource.
func RestockCost(resource models.Resource, amount int) (float64, bool) {
	price, ok := restockPrices[resource]
	if !ok {
		return 0, false
	}
	if resource == models.ResourceCups {
		return float64(amount) * price, true
	}
	return float64(amount) / 100 * price, true
}

// SpecialFor returns the automatic discount in force on a weekday.
func SpecialFor(day time.Weekday) DailySpecial {
	return specials[day]
}

// PrepTime estimates the preparation time for one line: the per-size base
// plus a fixed surcharge per selected add-on. Quantity does not factor in;
// the estimate is per line, not per cup.
func PrepTime(size models.Size, addOnCount int) time.Duration {
	return prepTimes[size] + time.Duration(addOnCount)*AddOnPrepTime
}

// Menu returns the full price table keyed by drink then size.
func Menu() map[string]map[models.Size]float64 {
	out := make(map[string]map[models.Size]float64, len(menu))
	for item, sizes := range menu {
		inner := make(map[models.Size]float64, len(sizes))
		for size, price := range sizes {
			inner[size] = price
		}
		out[item] = inner
	}
	return out
}

// AddOnMenu returns the add-on price table.
func AddOnMenu() map[string]float64 {
	out := make(map[string]float64, len(addOnPrices))
	for name, price := range addOnPrices {
		out[name] = price
	}
	return out
}
