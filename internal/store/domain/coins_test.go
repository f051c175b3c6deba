package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDenomination(t *testing.T) {
	t.Parallel()

	for _, coin := range []int64{5, 10, 20, 50, 100} {
		assert.NoError(t, ValidateDenomination(coin))
	}

	for _, coin := range []int64{0, 1, 3, 15, 25, 200, -5} {
		err := ValidateDenomination(coin)
		assert.ErrorIs(t, err, &InvalidDenominationError{})

		var denominationErr *InvalidDenominationError
		require.ErrorAs(t, err, &denominationErr)
		assert.Equal(t, coin, denominationErr.Coin)
	}
}

func TestMakeChange_Examples(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name     string
		amount   int64
		expected []int64
	}

	tests := []testCase{
		{name: "zero", amount: 0, expected: []int64{}},
		{name: "single coin", amount: 50, expected: []int64{50}},
		{name: "thirty", amount: 30, expected: []int64{20, 10}},
		{name: "one eighty five", amount: 185, expected: []int64{100, 50, 20, 10, 5}},
		{name: "forty", amount: 40, expected: []int64{20, 20}},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			change, err := MakeChange(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, change)
		})
	}
}

func TestMakeChange_Unrepresentable(t *testing.T) {
	t.Parallel()

	for _, amount := range []int64{-5, 1, 7, 103} {
		change, err := MakeChange(amount)
		assert.ErrorIs(t, err, &UnrepresentableAmountError{})
		assert.Nil(t, change)
	}
}

func TestMakeChange_SumsAndDescends(t *testing.T) {
	t.Parallel()

	for amount := int64(0); amount <= 100; amount += 5 {
		change, err := MakeChange(amount)
		require.NoError(t, err)

		var sum int64
		for i, coin := range change {
			sum += coin
			assert.Contains(t, Denominations, coin)
			if i > 0 {
				assert.LessOrEqual(t, coin, change[i-1], "amount %d", amount)
			}
		}
		assert.Equal(t, amount, sum)
	}
}

func TestMakeChange_MinimalCoinCount(t *testing.T) {
	t.Parallel()

	const limit = 500

	// fewest[a] is the true minimum number of coins for a, by dynamic programming.
	fewest := make([]int, limit+1)
	for a := 1; a <= limit; a++ {
		fewest[a] = -1
		for _, coin := range Denominations {
			c := int(coin)
			if c > a || fewest[a-c] < 0 {
				continue
			}
			if fewest[a] < 0 || fewest[a-c]+1 < fewest[a] {
				fewest[a] = fewest[a-c] + 1
			}
		}
	}

	for amount := 0; amount <= limit; amount += 5 {
		change, err := MakeChange(int64(amount))
		require.NoError(t, err)
		assert.Len(t, change, fewest[amount], "amount %d", amount)
	}
}
