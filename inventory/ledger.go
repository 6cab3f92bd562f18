// Package inventory tracks per-branch stock for the four resource kinds
// and the append-only restock audit log. All stock mutation goes through
// a per-branch mutex so an availability check and its deduction cannot
// interleave with another order or a restock on the same branch.
package inventory

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"mug-life-api/catalog"
	"mug-life-api/models"
)

// Stock is the current counts for one branch. Counts never go negative.
type Stock struct {
	CoffeeBeans int `json:"coffee_beans"`
	Milk        int `json:"milk"`
	Sugar       int `json:"sugar"`
	Cups        int `json:"cups"`
}

func (s Stock) get(r models.Resource) int {
	switch r {
	case models.ResourceCoffeeBeans:
		return s.CoffeeBeans
	case models.ResourceMilk:
		return s.Milk
	case models.ResourceSugar:
		return s.Sugar
	case models.ResourceCups:
		return s.Cups
	}
	return 0
}

func (s *Stock) add(r models.Resource, n int) {
	switch r {
	case models.ResourceCoffeeBeans:
		s.CoffeeBeans += n
	case models.ResourceMilk:
		s.Milk += n
	case models.ResourceSugar:
		s.Sugar += n
	case models.ResourceCups:
		s.Cups += n
	}
}

// Opening stock for every branch.
const (
	initialBeans = 1000
	initialMilk  = 1000
	initialSugar = 1000
	initialCups  = 500
)

// Low-stock alert thresholds.
const (
	lowIngredientThreshold = 200
	lowCupsThreshold       = 20
)

type branchState struct {
	mu    sync.Mutex
	stock Stock
}

// Ledger holds the mutable stock for all branches plus the restock log.
type Ledger struct {
	branches map[models.Branch]*branchState

	histMu  sync.Mutex
	history []models.RestockEntry
}

// NewLedger seeds every branch with the standard opening stock.
func NewLedger() *Ledger {
	l := &Ledger{branches: make(map[models.Branch]*branchState)}
	for _, b := range models.AllBranches() {
		l.branches[b] = &branchState{stock: Stock{
			CoffeeBeans: initialBeans,
			Milk:        initialMilk,
			Sugar:       initialSugar,
			Cups:        initialCups,
		}}
	}
	return l
}

// draw is the total resource requirement of one cart line: base usage
// times quantity plus the fixed extra usage for selected add-ons.
func draw(line models.CartLine) (map[models.Resource]int, error) {
	ing, ok := catalog.IngredientsOf(line.Item, line.Size)
	if !ok {
		return nil, fmt.Errorf("no ingredient table for %s (%s)", line.Item, line.Size)
	}
	req := map[models.Resource]int{
		models.ResourceCoffeeBeans: ing.Beans * line.Quantity,
		models.ResourceMilk:        ing.Milk * line.Quantity,
		models.ResourceSugar:       ing.Sugar * line.Quantity,
		models.ResourceCups:        line.Quantity,
	}
	for _, addOn := range line.AddOns {
		switch addOn {
		case catalog.AddOnExtraMilk:
			req[models.ResourceMilk] += catalog.ExtraMilkPerCup * line.Quantity
		case catalog.AddOnExtraSugar:
			req[models.ResourceSugar] += catalog.ExtraSugarPerCup * line.Quantity
		}
	}
	return req, nil
}

// requirement sums the draw of several lines.
func requirement(lines []models.CartLine) (map[models.Resource]int, error) {
	total := make(map[models.Resource]int, 4)
	for _, line := range lines {
		req, err := draw(line)
		if err != nil {
			return nil, err
		}
		for r, n := range req {
			total[r] += n
		}
	}
	return total, nil
}

// shortfall reports the first resource, in ledger order, whose stock
// cannot cover the requirement.
func shortfall(stock Stock, req map[models.Resource]int) (models.Resource, bool) {
	for _, r := range models.AllResources() {
		if stock.get(r) < req[r] {
			return r, true
		}
	}
	return "", false
}

// CheckAvailability reports whether a single line can be fulfilled from
// current branch stock, naming the first insufficient resource otherwise.
func (l *Ledger) CheckAvailability(branch models.Branch, item string, size models.Size, quantity int, addOns []string) (bool, models.Resource) {
	bs, ok := l.branches[branch]
	if !ok {
		return false, ""
	}
	req, err := draw(models.CartLine{Item: item, Size: size, Quantity: quantity, AddOns: addOns})
	if err != nil {
		return false, ""
	}
	bs.mu.Lock()
	defer bs.mu.Unlock()
	if r, short := shortfall(bs.stock, req); short {
		return false, r
	}
	return true, ""
}

// ReserveAndDeduct checks the combined requirement of all lines and, only
// if every resource is covered, deducts the whole draw under the branch
// lock. A failed order deducts nothing.
func (l *Ledger) ReserveAndDeduct(branch models.Branch, lines []models.CartLine) error {
	bs, ok := l.branches[branch]
	if !ok {
		return fmt.Errorf("unknown branch %q", branch)
	}
	req, err := requirement(lines)
	if err != nil {
		return err
	}
	bs.mu.Lock()
	defer bs.mu.Unlock()
	if r, short := shortfall(bs.stock, req); short {
		return &InsufficientStockError{Branch: branch, Resource: r}
	}
	for r, n := range req {
		bs.stock.add(r, -n)
	}
	return nil
}

// Restock increases a branch's stock and appends an audit entry.
// The cost is charged per 100 g/ml for ingredients and per piece for cups.
func (l *Ledger) Restock(branch models.Branch, resource models.Resource, amount int) (models.RestockEntry, error) {
	bs, ok := l.branches[branch]
	if !ok {
		return models.RestockEntry{}, fmt.Errorf("unknown branch %q", branch)
	}
	if amount <= 0 {
		return models.RestockEntry{}, fmt.Errorf("restock amount must be positive, got %d", amount)
	}
	cost, ok := catalog.RestockCost(resource, amount)
	if !ok {
		return models.RestockEntry{}, fmt.Errorf("unknown resource %q", resource)
	}

	bs.mu.Lock()
	bs.stock.add(resource, amount)
	newLevel := bs.stock.get(resource)
	bs.mu.Unlock()

	entry := models.RestockEntry{
		Branch:   branch,
		Resource: resource,
		Amount:   amount,
		Cost:     cost,
		Time:     time.Now(),
	}
	l.histMu.Lock()
	l.history = append(l.history, entry)
	l.histMu.Unlock()

	logrus.WithFields(logrus.Fields{
		"branch":   branch,
		"resource": resource,
		"amount":   amount,
		"cost":     cost,
		"level":    newLevel,
	}).Info("inventory restocked")

	return entry, nil
}

// Snapshot returns a copy of a branch's current stock.
func (l *Ledger) Snapshot(branch models.Branch) (Stock, bool) {
	bs, ok := l.branches[branch]
	if !ok {
		return Stock{}, false
	}
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.stock, true
}

// History returns a copy of the restock audit log, oldest first.
func (l *Ledger) History() []models.RestockEntry {
	l.histMu.Lock()
	defer l.histMu.Unlock()
	out := make([]models.RestockEntry, len(l.history))
	copy(out, l.history)
	return out
}

// Alert flags a resource that has fallen below its restock threshold.
type Alert struct {
	Resource models.Resource `json:"resource"`
	Level    int             `json:"level"`
	Unit     string          `json:"unit"`
}

func unitOf(r models.Resource) string {
	switch r {
	case models.ResourceMilk:
		return "ml"
	case models.ResourceCups:
		return "units"
	default:
		return "g"
	}
}

// LowStock lists the branch resources currently under their thresholds.
func (l *Ledger) LowStock(branch models.Branch) []Alert {
	stock, ok := l.Snapshot(branch)
	if !ok {
		return nil
	}
	var alerts []Alert
	for _, r := range models.AllResources() {
		threshold := lowIngredientThreshold
		if r == models.ResourceCups {
			threshold = lowCupsThreshold
		}
		if level := stock.get(r); level < threshold {
			alerts = append(alerts, Alert{Resource: r, Level: level, Unit: unitOf(r)})
		}
	}
	return alerts
}

// Average per-cup draw used for the capacity estimate.
const (
	avgBeansPerCup = 12
	avgMilkPerCup  = 80
	avgSugarPerCup = 5
)

// EstimateCups approximates how many more cups a branch can serve from
// current stock, using average per-cup usage.
func (l *Ledger) EstimateCups(branch models.Branch) int {
	stock, ok := l.Snapshot(branch)
	if !ok {
		return 0
	}
	est := stock.CoffeeBeans / avgBeansPerCup
	if byMilk := stock.Milk / avgMilkPerCup; byMilk < est {
		est = byMilk
	}
	if bySugar := stock.Sugar / avgSugarPerCup; bySugar < est {
		est = bySugar
	}
	if stock.Cups < est {
		est = stock.Cups
	}
	return est
}

// InvoiceText renders the restock history as a plain-text tabular invoice
// with a grand total.
func (l *Ledger) InvoiceText(now time.Time) string {
	entries := l.History()

	var b strings.Builder
	b.WriteString("Mug Life Restock Invoice\n")
	fmt.Fprintf(&b, "Date: %s\n", now.Format("2006-01-02 15:04:05"))
	rule := strings.Repeat("-", 72) + "\n"
	b.WriteString(rule)
	fmt.Fprintf(&b, "| %-12s | %-17s | %-8s | %-9s | %-19s |\n", "Branch", "Item", "Amount", "Cost (RM)", "Time")
	b.WriteString(rule)

	var total float64
	for _, e := range entries {
		total += e.Cost
		fmt.Fprintf(&b, "| %-12s | %-17s | %-8d | RM%-7.2f | %-19s |\n",
			e.Branch, e.Resource, e.Amount, e.Cost, e.Time.Format("2006-01-02 15:04:05"))
	}
	b.WriteString(rule)
	fmt.Fprintf(&b, "Total Cost: RM%.2f\n", total)
	return b.String()
}
