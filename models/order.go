package models

import "time"

// OrderStatus represents all possible states of a coffee order
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "Placed"
	StatusBeingProcessed OrderStatus = "Being Processed"
	StatusReady          OrderStatus = "Ready"
	StatusPickedUp       OrderStatus = "Picked Up"
)

// Size is one of the three fixed cup sizes.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Resource names one of the four stocked ingredient kinds.
// Beans and sugar are tracked in grams, milk in milliliters, cups in units.
type Resource string

const (
	ResourceCoffeeBeans Resource = "coffee_beans"
	ResourceMilk        Resource = "milk"
	ResourceSugar       Resource = "sugar"
	ResourceCups        Resource = "cups"
)

// AllResources returns the resource kinds in ledger order.
func AllResources() []Resource {
	return []Resource{ResourceCoffeeBeans, ResourceMilk, ResourceSugar, ResourceCups}
}

// CartLine is one drink entry in a cart. UnitPrice is snapshotted at the
// time the line is added, including add-on charges.
type CartLine struct {
	Item      string   `json:"item"`
	Size      Size     `json:"size"`
	Quantity  int      `json:"quantity"`
	AddOns    []string `json:"add_ons,omitempty"`
	UnitPrice float64  `json:"unit_price"`
	LineTotal float64  `json:"line_total"`
}

// Cart is a mutable, not-yet-committed set of lines for one customer.
type Cart struct {
	ID        string     `json:"id"`
	Customer  string     `json:"customer"`
	Lines     []CartLine `json:"lines"`
	CreatedAt time.Time  `json:"created_at"`
}

// PaymentMethod selects how an order is paid for.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "Cash"
	PaymentCreditCard PaymentMethod = "Credit Card"
	PaymentDebitCard  PaymentMethod = "Debit Card"
)

// CardDetails carries the structural card fields validated at confirmation.
// Nothing is charged; validation is shape-only.
type CardDetails struct {
	Number   string `json:"number"`
	Holder   string `json:"holder"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
	CVV      string `json:"cvv"`
}

// Payment is the payment selection submitted with a confirmation.
type Payment struct {
	Method PaymentMethod `json:"method"`
	Card   *CardDetails  `json:"card,omitempty"`
}

// Order is a committed cart. Created together with its inventory
// deduction; line items are immutable from then on.
type Order struct {
	Number          int         `json:"order_number"`
	Customer        string      `json:"customer"`
	Branch          Branch      `json:"branch"`
	Lines           []CartLine  `json:"lines"`
	Subtotal        float64     `json:"subtotal"`
	DailyDiscount   float64     `json:"daily_discount"`
	CouponCode      string      `json:"coupon_code,omitempty"`
	CouponDiscount  float64     `json:"coupon_discount"`
	PointsRedeemed  int         `json:"points_redeemed"`
	LoyaltyDiscount float64     `json:"loyalty_discount"`
	FinalPrice      float64     `json:"final_price"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Coupon is a flat-amount discount code valid through its expiry date.
type Coupon struct {
	Code      string    `json:"code"`
	Discount  float64   `json:"discount"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CouponUsage records one redemption of a coupon against an order.
type CouponUsage struct {
	Code        string    `json:"code"`
	OrderNumber int       `json:"order_number"`
	Discount    float64   `json:"discount"`
	UsedAt      time.Time `json:"used_at"`
}

// RestockEntry is one append-only audit row of a branch restock.
type RestockEntry struct {
	Branch   Branch    `json:"branch"`
	Resource Resource  `json:"resource"`
	Amount   int       `json:"amount"`
	Cost     float64   `json:"cost"`
	Time     time.Time `json:"time"`
}

// Feedback is one customer feedback submission tied to a branch.
type Feedback struct {
	Name          string    `json:"name"`
	Item          string    `json:"item"`
	CoffeeRating  int       `json:"coffee_rating"`
	ServiceRating int       `json:"service_rating"`
	Comments      string    `json:"comments,omitempty"`
	Branch        Branch    `json:"branch"`
	SubmittedAt   time.Time `json:"submitted_at"`
}
