package discount

import (
	"context"
	"strings"
	"time"

	"storefront/internal/domain"
)

// UsageReader answers usage-cap queries against the usage ledger. The
// engine only reads; usage is recorded when an order is actually placed,
// never during evaluation.
type UsageReader interface {
	TotalUses(ctx context.Context, discountID int64) (int, error)
	CustomerUses(ctx context.Context, discountID int64, phone string) (int, error)
}

// Input carries everything one evaluation needs. Discounts is the
// store's configured set (active flag and date window are re-checked
// here against Now); Code is the customer-entered code, if any.
type Input struct {
	Lines         []domain.CartLine
	Discounts     []domain.Discount
	Code          string
	CustomerPhone string
	Now           time.Time
	Usage         UsageReader
}

// Evaluate prices a cart against the store's discounts. It applies at
// most one amount-bearing automatic discount (highest amount, lowest id
// on ties), stacked additively with at most one code discount, capped to
// the subtotal. A qualifying free-delivery discount sets FreeDelivery
// without affecting the totals.
//
// Any failure of an entered code (no match, window, minimum, caps)
// returns domain.ErrInvalidCode together with the cart priced at plain
// subtotal so checkout can continue without the code. Evaluation has no
// side effects and unmet automatic discounts are silently skipped.
func Evaluate(ctx context.Context, in Input) (domain.PricedCart, error) {
	cart := domain.PricedCart{Lines: in.Lines}
	for _, l := range in.Lines {
		cart.Subtotal += l.Total()
	}
	cart.Total = cart.Subtotal
	if len(in.Lines) == 0 {
		return cart, nil
	}

	var qty int64
	for _, l := range in.Lines {
		qty += int64(l.Quantity)
	}

	active := make([]domain.Discount, 0, len(in.Discounts))
	for _, d := range in.Discounts {
		if d.ActiveAt(in.Now) {
			active = append(active, d)
		}
	}

	var codeApplied *domain.AppliedDiscount
	if code := strings.ToUpper(strings.TrimSpace(in.Code)); code != "" {
		var match *domain.Discount
		for i := range active {
			if active[i].Type == domain.DiscountCode && active[i].Code == code {
				match = &active[i]
				break
			}
		}
		if match == nil {
			return cart, domain.ErrInvalidCode
		}
		amount, ok, err := amountFor(ctx, *match, in, cart.Subtotal, qty)
		if err != nil {
			return cart, err
		}
		if !ok || amount <= 0 {
			return cart, domain.ErrInvalidCode
		}
		codeApplied = &domain.AppliedDiscount{
			DiscountID: match.ID,
			Name:       match.Name,
			Type:       match.Type,
			Code:       match.Code,
			Amount:     amount,
		}
	}

	var best *domain.AppliedDiscount
	var freeDelivery *domain.AppliedDiscount
	for i := range active {
		d := active[i]
		if !d.IsAutomatic() {
			continue
		}
		amount, ok, err := amountFor(ctx, d, in, cart.Subtotal, qty)
		if err != nil {
			return cart, err
		}
		if !ok {
			continue
		}
		if d.Type == domain.DiscountFreeDelivery {
			if freeDelivery == nil || d.ID < freeDelivery.DiscountID {
				freeDelivery = &domain.AppliedDiscount{DiscountID: d.ID, Name: d.Name, Type: d.Type}
			}
			continue
		}
		if amount <= 0 {
			continue
		}
		if best == nil || amount > best.Amount || (amount == best.Amount && d.ID < best.DiscountID) {
			best = &domain.AppliedDiscount{DiscountID: d.ID, Name: d.Name, Type: d.Type, Amount: amount}
		}
	}

	if best != nil {
		cart.Applied = append(cart.Applied, *best)
		cart.DiscountAmount += best.Amount
	}
	if codeApplied != nil {
		cart.Applied = append(cart.Applied, *codeApplied)
		cart.DiscountAmount += codeApplied.Amount
	}
	if freeDelivery != nil {
		cart.Applied = append(cart.Applied, *freeDelivery)
		cart.FreeDelivery = true
	}
	if cart.DiscountAmount > cart.Subtotal {
		cart.DiscountAmount = cart.Subtotal
	}
	cart.Total = cart.Subtotal - cart.DiscountAmount
	return cart, nil
}

// amountFor runs the eligibility chain for one candidate: minimum
// requirement gate, scope resolution, type-specific amount, usage caps,
// amount caps. ok=false means "does not apply", never an error.
func amountFor(ctx context.Context, d domain.Discount, in Input, subtotal, qty int64) (int64, bool, error) {
	switch d.MinRequirement {
	case domain.MinAmount:
		if subtotal < d.MinValue {
			return 0, false, nil
		}
	case domain.MinQuantity:
		if qty < d.MinValue {
			return 0, false, nil
		}
	}

	var raw int64
	switch d.Type {
	case domain.DiscountBuyXGetY:
		raw = buyXGetYAmount(d, in.Lines)
		if raw == 0 {
			return 0, false, nil
		}
	case domain.DiscountBundle:
		base, ok := bundleBase(d, in.Lines)
		if !ok {
			return 0, false, nil
		}
		raw = valueAmount(d, base)
	case domain.DiscountFreeDelivery:
		raw = 0
	default:
		base := eligibleBase(d, in.Lines, subtotal)
		if base == 0 {
			return 0, false, nil
		}
		raw = valueAmount(d, base)
	}

	if d.MaxTotalUses != nil && in.Usage != nil {
		n, err := in.Usage.TotalUses(ctx, d.ID)
		if err != nil {
			return 0, false, err
		}
		if n >= *d.MaxTotalUses {
			return 0, false, nil
		}
	}
	if d.MaxPerCustomer != nil && in.CustomerPhone != "" && in.Usage != nil {
		n, err := in.Usage.CustomerUses(ctx, d.ID, in.CustomerPhone)
		if err != nil {
			return 0, false, err
		}
		if n >= *d.MaxPerCustomer {
			return 0, false, nil
		}
	}

	if d.MaxTotalAmount != nil && raw > *d.MaxTotalAmount {
		raw = *d.MaxTotalAmount
	}
	if raw > subtotal {
		raw = subtotal
	}
	return raw, true, nil
}

// valueAmount computes the discount against an eligible base. Percentage
// truncates toward zero so the customer is never charged more than the
// nominal percentage implies; fixed never exceeds the base itself.
func valueAmount(d domain.Discount, base int64) int64 {
	switch d.ValueType {
	case domain.ValuePercentage:
		return base * d.Value / 100
	case domain.ValueFixed:
		if d.Value > base {
			return base
		}
		return d.Value
	default:
		return 0
	}
}

func eligibleBase(d domain.Discount, lines []domain.CartLine, subtotal int64) int64 {
	switch d.AppliesTo {
	case domain.AppliesToProducts:
		targets := idSet(d.TargetProductIDs)
		var base int64
		for _, l := range lines {
			if targets[l.ProductID] {
				base += l.Total()
			}
		}
		return base
	case domain.AppliesToCategories:
		targets := idSet(d.TargetCategoryIDs)
		var base int64
		for _, l := range lines {
			if l.CategoryID != nil && targets[*l.CategoryID] {
				base += l.Total()
			}
		}
		return base
	default:
		return subtotal
	}
}

// buyXGetYAmount counts qualifying buy units and makes one get unit free
// per buy unit, capped by the get quantity actually in the cart. Free
// units are granted against get lines in cart order at each line's own
// unit price.
func buyXGetYAmount(d domain.Discount, lines []domain.CartLine) int64 {
	buys := idSet(d.BuyProductIDs)
	gets := idSet(d.GetProductIDs)

	var buyUnits int
	for _, l := range lines {
		if buys[l.ProductID] {
			buyUnits += l.Quantity
		}
	}
	if buyUnits == 0 {
		return 0
	}

	free := buyUnits
	var amount int64
	for _, l := range lines {
		if free == 0 {
			break
		}
		if !gets[l.ProductID] {
			continue
		}
		n := l.Quantity
		if n > free {
			n = free
		}
		amount += int64(n) * l.UnitPrice
		free -= n
	}
	return amount
}

// bundleBase requires at least one unit of every bundle member in the
// cart; the base is the bundle lines' combined total.
func bundleBase(d domain.Discount, lines []domain.CartLine) (int64, bool) {
	if len(d.TargetProductIDs) == 0 {
		return 0, false
	}
	quantities := make(map[int64]int, len(lines))
	for _, l := range lines {
		quantities[l.ProductID] += l.Quantity
	}
	for _, id := range d.TargetProductIDs {
		if quantities[id] == 0 {
			return 0, false
		}
	}
	members := idSet(d.TargetProductIDs)
	var base int64
	for _, l := range lines {
		if members[l.ProductID] {
			base += l.Total()
		}
	}
	return base, true
}

func idSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
