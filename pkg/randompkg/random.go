// Package randompkg provides functionality for generating random application common items.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/go-wallet/ledger-engine/pkg/moneypkg"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Int64Between generates a random integer between min and max.
func Int64Between(min, max int64) int64 {
	return min + Intn(int(max-min))
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// MinorUnitsBetween generates a random amount of money in minor units between min and max.
func MinorUnitsBetween(min, max int64) int64 {
	return Int64Between(min, max)
}

// AmountBetween generates a random decimal amount string between min and max minor units.
func AmountBetween(min, max int64) string {
	return moneypkg.FromMinorUnits(MinorUnitsBetween(min, max))
}

// ReferenceID generates a random caller correlation token.
func ReferenceID() string {
	return fmt.Sprintf("ref-%s", String(12))
}

// Description generates a random free-text transaction reason.
func Description() string {
	return fmt.Sprintf("order #%d", Intn(100_000))
}
