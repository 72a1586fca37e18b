package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	starterParty = Package{Name: "Starter Party", BasePriceCents: 29900}
	glowParty    = Package{Name: "Glow Night Party", BasePriceCents: 39900, SupportsEveningSurcharge: true}
	extraTime    = Addon{Name: "Extra 30 minutes", PriceCents: 9900}
	fogMachine   = Addon{Name: "Fog machine", PriceCents: 2500}
)

func TestCalculatePricing_StarterScenario(t *testing.T) {
	r, err := CalculatePricing(Input{
		Package:       starterParty,
		Addons:        []Addon{extraTime},
		DistanceMiles: 25,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(29900), r.PackagePrice)
	assert.Equal(t, int64(9900), r.AddonsPrice)
	assert.Equal(t, int64(39800), r.Subtotal)
	assert.Equal(t, int64(0), r.EveningSurcharge)
	assert.Equal(t, int64(4900), r.TravelFee)
	assert.Equal(t, int64(3576), r.Tax)
	assert.Equal(t, int64(48276), r.Total)
	assert.Equal(t, int64(14483), r.DepositAmount)
	assert.Equal(t, int64(33793), r.BalanceAmount)

	kinds := make([]Kind, len(r.LineItems))
	for i, li := range r.LineItems {
		kinds[i] = li.Kind
	}
	assert.Equal(t, []Kind{KindPackage, KindAddon, KindTravel, KindTax}, kinds)
}

func TestCalculatePricing_Invariants(t *testing.T) {
	inputs := []Input{
		{Package: starterParty},
		{Package: starterParty, Addons: []Addon{extraTime, fogMachine}, DistanceMiles: 14.99},
		{Package: glowParty, Addons: []Addon{fogMachine}, DistanceMiles: 30, IsGlowNight: true},
		{Package: glowParty, DistanceMiles: 50, IsGlowNight: false},
		{Package: Package{Name: "Odd", BasePriceCents: 12345}, Addons: []Addon{{Name: "x", PriceCents: 1}}, DistanceMiles: 49.99},
	}

	for _, in := range inputs {
		r, err := CalculatePricing(in)
		require.NoError(t, err)

		assert.Equal(t, r.PackagePrice+r.AddonsPrice+r.EveningSurcharge, r.Subtotal)
		assert.Equal(t, r.Subtotal+r.TravelFee+r.Tax, r.Total)
		assert.Equal(t, r.Total-r.DepositAmount, r.BalanceAmount)

		var sum int64
		for _, li := range r.LineItems {
			sum += li.PriceCents
		}
		assert.Equal(t, r.Total, sum, "line items add up to the total")
		assert.Equal(t, KindTax, r.LineItems[len(r.LineItems)-1].Kind)

		again, err := CalculatePricing(in)
		require.NoError(t, err)
		assert.Equal(t, r, again)
	}
}

func TestCalculatePricing_EveningSurcharge(t *testing.T) {
	t.Run("applied for supporting package on glow night", func(t *testing.T) {
		r, err := CalculatePricing(Input{Package: glowParty, IsGlowNight: true})
		require.NoError(t, err)
		assert.Equal(t, int64(5985), r.EveningSurcharge)
		assert.Equal(t, KindSurcharge, r.LineItems[1].Kind)
	})

	t.Run("not applied without the flag", func(t *testing.T) {
		r, err := CalculatePricing(Input{Package: glowParty})
		require.NoError(t, err)
		assert.Zero(t, r.EveningSurcharge)
	})

	t.Run("not applied for regular packages", func(t *testing.T) {
		r, err := CalculatePricing(Input{Package: starterParty, IsGlowNight: true})
		require.NoError(t, err)
		assert.Zero(t, r.EveningSurcharge)
		for _, li := range r.LineItems {
			assert.NotEqual(t, KindSurcharge, li.Kind)
		}
	})
}

func TestCalculatePricing_AddonOrder(t *testing.T) {
	r, err := CalculatePricing(Input{Package: starterParty, Addons: []Addon{fogMachine, extraTime}})
	require.NoError(t, err)
	require.Len(t, r.LineItems, 4)
	assert.Equal(t, "Fog machine", r.LineItems[1].Name)
	assert.Equal(t, "Extra 30 minutes", r.LineItems[2].Name)
}

func TestCalculatePricing_OutOfArea(t *testing.T) {
	_, err := CalculatePricing(Input{Package: starterParty, DistanceMiles: 50.01})
	assert.ErrorIs(t, err, ErrOutOfServiceArea)
}

func TestCalculatePricing_Options(t *testing.T) {
	r, err := CalculatePricing(Input{Package: starterParty},
		WithTaxRate(0.06), WithDepositRate(0.5))
	require.NoError(t, err)
	assert.Equal(t, int64(1794), r.Tax)
	assert.Equal(t, int64(15847), r.DepositAmount)

	_, err = CalculatePricing(Input{Package: starterParty}, WithTaxRate(1.5))
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestCalculateTravelFee(t *testing.T) {
	tests := []struct {
		miles float64
		fee   int64
	}{
		{0, 0},
		{15, 0},
		{15.01, 4900},
		{30, 4900},
		{30.01, 9900},
		{50, 9900},
	}
	for _, tt := range tests {
		fee, err := CalculateTravelFee(tt.miles)
		require.NoError(t, err)
		assert.Equal(t, tt.fee, fee, "distance %v", tt.miles)
	}

	_, err := CalculateTravelFee(50.01)
	assert.ErrorIs(t, err, ErrOutOfServiceArea)
	_, err = CalculateTravelFee(-1)
	assert.ErrorIs(t, err, ErrInvalidDistance)
}

func TestCalculateTravelFee_Monotonic(t *testing.T) {
	var prev int64
	for d := 0.0; d <= 50; d += 0.25 {
		fee, err := CalculateTravelFee(d)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, fee, prev)
		prev = fee
	}
}

func TestRounding(t *testing.T) {
	assert.Equal(t, int64(9688), CalculateDeposit(32292, 0.3))
	assert.Equal(t, int64(2392), CalculateTax(29900, 0.08))
	// 0.5 cent rounds up
	assert.Equal(t, int64(1), CalculateTax(625, 0.0008))
	assert.Equal(t, int64(5985), CalculateEveningSurcharge(39900, 0.15))
	assert.Equal(t, int64(0), CalculateDeposit(0, 0.3))
}
