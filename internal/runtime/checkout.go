package runtime

import (
	"fmt"

	"github.com/aretw0/kawiarnia/pkg/domain"
)

// Checkout finalizes the cart: it appends the itemized summary, records the
// order in the metrics, then empties the cart and the working order.
// An empty cart yields the empty-cart message and domain.ErrEmptyCart; the
// cart, order and metrics are left as they were.
func Checkout(s domain.Session) (domain.Session, error) {
	if s.Cart.IsEmpty() {
		next := s.Say(MsgEmptyCart)
		return next.Audit(fmt.Sprintf("checkout: %s | %s", MsgEmptyCart, cartAuditLine(next.Cart))), domain.ErrEmptyCart
	}

	summary := summaryMessage(s.Cart)
	next := s.Say(summary)
	next.Metrics = s.Metrics.Record(s.Cart.Total)
	next.Cart = domain.Cart{}
	next.Order = domain.WorkingOrder{}
	next = next.Audit(fmt.Sprintf("checkout: %d items, %s | %s", len(s.Cart.Items), s.Cart.Total, cartAuditLine(next.Cart)))
	return next, nil
}
