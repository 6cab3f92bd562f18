package orders

import (
	"fmt"
	"strings"

	"mug-life-api/models"
)

// BuildReceipt renders the plain-text receipt for a committed order,
// one line per cart entry plus the discount breakdown.
func BuildReceipt(order models.Order) string {
	var b strings.Builder
	rule := "==========================\n"
	b.WriteString(rule)
	b.WriteString("   Mug Life Coffee Shop\n")
	b.WriteString(rule)
	fmt.Fprintf(&b, "Order Number: %d\n", order.Number)
	fmt.Fprintf(&b, "Customer Name: %s\n", order.Customer)
	fmt.Fprintf(&b, "Branch: %s\n", order.Branch)
	b.WriteString(rule)
	for _, line := range order.Lines {
		addOns := "None"
		if len(line.AddOns) > 0 {
			addOns = strings.Join(line.AddOns, ", ")
		}
		fmt.Fprintf(&b, "%d x %s %s (Add-ons: %s)  RM%.2f\n",
			line.Quantity, title(string(line.Size)), line.Item, addOns, line.LineTotal)
	}
	b.WriteString(rule)
	fmt.Fprintf(&b, "Subtotal: RM%.2f\n", order.Subtotal)
	if order.DailyDiscount > 0 {
		fmt.Fprintf(&b, "Daily Special: -RM%.2f\n", order.DailyDiscount)
	}
	if order.CouponDiscount > 0 {
		fmt.Fprintf(&b, "Coupon (%s): -RM%.2f\n", order.CouponCode, order.CouponDiscount)
	}
	if order.LoyaltyDiscount > 0 {
		fmt.Fprintf(&b, "Loyalty (%d pts): -RM%.2f\n", order.PointsRedeemed, order.LoyaltyDiscount)
	}
	fmt.Fprintf(&b, "Total Price: RM%.2f\n", order.FinalPrice)
	fmt.Fprintf(&b, "Order Time: %s\n", order.CreatedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(rule)
	b.WriteString("Thank you for your purchase!\n")
	return b.String()
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
