package pricing

import (
	"fmt"
	"math"
)

// Travel fee tiers, upper bounds inclusive.
const (
	FreeTravelMiles  = 15.0
	NearTravelMiles  = 30.0
	FarTravelMiles   = 50.0
	NearTravelFee    = int64(4900)
	FarTravelFee     = int64(9900)
	basisPointsScale = int64(10000)
)

type options struct {
	taxBps       int64
	depositBps   int64
	surchargeBps int64
}

type Option func(*options)

func WithTaxRate(rate float64) Option {
	return func(o *options) { o.taxBps = basisPoints(rate) }
}

func WithDepositRate(rate float64) Option {
	return func(o *options) { o.depositBps = basisPoints(rate) }
}

func WithSurchargeRate(rate float64) Option {
	return func(o *options) { o.surchargeBps = basisPoints(rate) }
}

// basisPoints converts a fractional rate (0.08) to integer basis points (800).
func basisPoints(rate float64) int64 {
	return int64(math.Round(rate * float64(basisPointsScale)))
}

func (o options) validate() error {
	for _, bps := range []int64{o.taxBps, o.depositBps, o.surchargeBps} {
		if bps < 0 || bps > basisPointsScale {
			return ErrInvalidRate
		}
	}
	return nil
}

// CalculatePricing builds the price breakdown for in. It is deterministic and has no side effects.
func CalculatePricing(in Input, opts ...Option) (*Result, error) {
	o := options{
		taxBps:       basisPoints(DefaultTaxRate),
		depositBps:   basisPoints(DefaultDepositRate),
		surchargeBps: basisPoints(DefaultSurchargeRate),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	travelFee, err := CalculateTravelFee(in.DistanceMiles)
	if err != nil {
		return nil, err
	}

	r := &Result{PackagePrice: in.Package.BasePriceCents}
	r.LineItems = append(r.LineItems, LineItem{Name: in.Package.Name, PriceCents: r.PackagePrice, Kind: KindPackage})

	for _, a := range in.Addons {
		r.AddonsPrice += a.PriceCents
		r.LineItems = append(r.LineItems, LineItem{Name: a.Name, PriceCents: a.PriceCents, Kind: KindAddon})
	}

	if in.IsGlowNight && in.Package.SupportsEveningSurcharge {
		r.EveningSurcharge = applyRate(r.PackagePrice, o.surchargeBps)
	}
	if r.EveningSurcharge > 0 {
		r.LineItems = append(r.LineItems, LineItem{Name: "Evening surcharge", PriceCents: r.EveningSurcharge, Kind: KindSurcharge})
	}

	r.Subtotal = r.PackagePrice + r.AddonsPrice + r.EveningSurcharge

	r.TravelFee = travelFee
	if r.TravelFee > 0 {
		r.LineItems = append(r.LineItems, LineItem{
			Name:       fmt.Sprintf("Travel fee (%.1f mi)", in.DistanceMiles),
			PriceCents: r.TravelFee,
			Kind:       KindTravel,
		})
	}

	r.Tax = applyRate(r.Subtotal+r.TravelFee, o.taxBps)
	r.LineItems = append(r.LineItems, LineItem{Name: "Tax", PriceCents: r.Tax, Kind: KindTax})

	r.Total = r.Subtotal + r.TravelFee + r.Tax
	r.DepositAmount = ceilRate(r.Total, o.depositBps)
	r.BalanceAmount = r.Total - r.DepositAmount

	return r, nil
}

// CalculateTravelFee maps a distance to its tier fee. Beyond the last tier the address is not served.
func CalculateTravelFee(distanceMiles float64) (int64, error) {
	switch {
	case math.IsNaN(distanceMiles) || distanceMiles < 0:
		return 0, ErrInvalidDistance
	case distanceMiles <= FreeTravelMiles:
		return 0, nil
	case distanceMiles <= NearTravelMiles:
		return NearTravelFee, nil
	case distanceMiles <= FarTravelMiles:
		return FarTravelFee, nil
	default:
		return 0, ErrOutOfServiceArea
	}
}

// CalculateTax rounds half up to the nearest cent.
func CalculateTax(amountCents int64, rate float64) int64 {
	return applyRate(amountCents, basisPoints(rate))
}

// CalculateDeposit rounds up so the deposit never undershoots the rate.
func CalculateDeposit(totalCents int64, rate float64) int64 {
	return ceilRate(totalCents, basisPoints(rate))
}

// CalculateEveningSurcharge rounds to the nearest cent.
func CalculateEveningSurcharge(packagePriceCents int64, rate float64) int64 {
	return applyRate(packagePriceCents, basisPoints(rate))
}

func applyRate(amount, bps int64) int64 {
	return (amount*bps + basisPointsScale/2) / basisPointsScale
}

func ceilRate(amount, bps int64) int64 {
	return (amount*bps + basisPointsScale - 1) / basisPointsScale
}
