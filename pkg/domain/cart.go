package domain

// CartItem is a committed, priced order line. Its slices are snapshots
// taken when the line was created and are never mutated afterwards.
type CartItem struct {
	Drink          string   `json:"drink"`
	Size           Size     `json:"size"`
	Customizations []string `json:"customizations"`
	Substitutions  []string `json:"substitutions"`
	Price          Money    `json:"price"`
}

// Cart holds committed lines. Total always equals the sum of item prices.
type Cart struct {
	Items []CartItem `json:"items"`
	Total Money      `json:"total"`
}

// Add returns a new cart with item appended and the total incremented.
func (c Cart) Add(item CartItem) Cart {
	next := c.Clone()
	next.Items = append(next.Items, item)
	next.Total += item.Price
	return next
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy of the cart.
func (c Cart) Clone() Cart {
	next := Cart{Total: c.Total}
	if c.Items != nil {
		next.Items = make([]CartItem, len(c.Items))
		for i, item := range c.Items {
			item.Customizations = cloneStrings(item.Customizations)
			item.Substitutions = cloneStrings(item.Substitutions)
			next.Items[i] = item
		}
	}
	return next
}

// Summary projects the cart for front ends.
func (c Cart) Summary() CartSummary {
	items := c.Clone().Items
	if items == nil {
		items = []CartItem{}
	}
	return CartSummary{
		Items:     items,
		Total:     c.Total,
		ItemCount: len(c.Items),
	}
}

// CartSummary is the read model returned by the session API.
type CartSummary struct {
	Items     []CartItem `json:"items"`
	Total     Money      `json:"total"`
	ItemCount int        `json:"item_count"`
}

// Metrics are the running business counters of a session.
// They survive resets and only ever grow.
type Metrics struct {
	OrdersCompleted int   `json:"orders_completed"`
	TotalRevenue    Money `json:"total_revenue"`
}

// Record returns metrics with one more completed order worth total.
func (m Metrics) Record(total Money) Metrics {
	return Metrics{
		OrdersCompleted: m.OrdersCompleted + 1,
		TotalRevenue:    m.TotalRevenue + total,
	}
}
