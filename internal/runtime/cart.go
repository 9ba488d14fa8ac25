package runtime

import (
	"fmt"

	"github.com/aretw0/kawiarnia/pkg/catalog"
	"github.com/aretw0/kawiarnia/pkg/domain"
)

// AddToCart commits the working order as a priced cart line and clears the
// order. Without a drink and a size it returns domain.ErrIncompleteOrder and
// a session that only gains a clarification message.
func AddToCart(s domain.Session, cat *catalog.Catalog) (domain.Session, domain.CartItem, error) {
	s = s.Audit(fmt.Sprintf("add_to_cart(%s)", orderJSON(s.Order)))

	if missing := s.Order.Missing(); len(missing) > 0 {
		return s.Say(incompleteMessage(missing)), domain.CartItem{}, fmt.Errorf("%w: missing %v", domain.ErrIncompleteOrder, missing)
	}

	order := s.Order.Clone()
	item := domain.CartItem{
		Drink:          order.Drink,
		Size:           order.Size,
		Customizations: nonNil(order.Customizations),
		Substitutions:  nonNil(order.Substitutions),
		Price:          cat.Price(order.Drink, order.Size, order.Customizations),
	}

	next := s
	next.Cart = s.Cart.Add(item)
	next.Order = domain.WorkingOrder{}
	next = next.Audit(cartAuditLine(next.Cart))
	return next.Say(addedMessage(item)), item, nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
