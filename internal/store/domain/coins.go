package domain

import (
	"fmt"
	"slices"
)

// Denominations are the accepted coins in cents, largest first.
var Denominations = []int64{100, 50, 20, 10, 5}

const smallestCoin = 5

func ValidateDenomination(coin int64) error {
	if !slices.Contains(Denominations, coin) {
		return &InvalidDenominationError{
			Msg:  fmt.Sprintf("coin %d is not accepted, use one of %v", coin, Denominations),
			Coin: coin,
		}
	}

	return nil
}

func IsValidMoney(amount int64) bool {
	return amount >= 0 && amount%smallestCoin == 0
}

// MakeChange splits amount into the fewest coins. Greedy is optimal for this coin set.
func MakeChange(amount int64) ([]int64, error) {
	if !IsValidMoney(amount) {
		return nil, &UnrepresentableAmountError{
			Msg:    fmt.Sprintf("amount %d cannot be paid out in coins", amount),
			Amount: amount,
		}
	}

	change := make([]int64, 0)
	for _, coin := range Denominations {
		for amount >= coin {
			change = append(change, coin)
			amount -= coin
		}
	}

	return change, nil
}
