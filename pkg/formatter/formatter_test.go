package formatter

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-12,000", FormatNumber(-12000))
}

func TestEther(t *testing.T) {
	wei, _ := new(big.Int).SetString("1500000000000000000", 10)
	assert.Equal(t, "1.5000", Ether(wei, 4))
	assert.Equal(t, "0.00", Ether(nil, 2))
}

func TestParseEther(t *testing.T) {
	wei, err := ParseEther("0.5")
	assert.NoError(t, err)
	assert.Equal(t, "500000000000000000", wei.String())

	_, err = ParseEther("abc")
	assert.Error(t, err)
	_, err = ParseEther("0.0000000000000000001")
	assert.Error(t, err)
}

func TestDisplayHandle(t *testing.T) {
	assert.Equal(t, "@vibe.opn", DisplayHandle("vibe", ".opn"))
	assert.Equal(t, "@vibe.opn", DisplayHandle("@vibe.opn", ".opn"))
	assert.Equal(t, "", DisplayHandle("  ", ".opn"))
}

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "0x1234...abcd", ShortAddress("0x1234567890abcdef1234567890abcdef1234abcd"))
	assert.Equal(t, "0x12", ShortAddress("0x12"))
}
