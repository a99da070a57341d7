package formatter

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// FormatNumber converts an integer to a string with commas as thousands separators.
// Example: 1234567 -> "1,234,567"
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		s = s[1:]
	}

	le := len(s)
	if le <= 3 {
		if n < 0 {
			return "-" + s
		}
		return s
	}

	sepCount := (le - 1) / 3
	res := make([]byte, le+sepCount)

	j := len(res) - 1
	for i := le - 1; i >= 0; i-- {
		res[j] = s[i]
		j--
		if (le-i)%3 == 0 && i > 0 {
			res[j] = ','
			j--
		}
	}

	if n < 0 {
		return "-" + string(res)
	}
	return string(res)
}

var weiPerEther = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

// Ether renders a wei amount as a decimal ether string with the given precision.
// Example: Ether(1500000000000000000, 4) -> "1.5000"
func Ether(wei *big.Int, decimals int) string {
	if wei == nil {
		wei = new(big.Int)
	}
	f := new(big.Float).SetPrec(256).SetInt(wei)
	f.Quo(f, weiPerEther)
	return f.Text('f', decimals)
}

var weiPerEtherRat = new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

// ParseEther converts a decimal ether amount to wei.
// Example: ParseEther("0.5") -> 500000000000000000
func ParseEther(s string) (*big.Int, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	r.Mul(r, weiPerEtherRat)
	if !r.IsInt() {
		return nil, fmt.Errorf("amount %q has more than 18 decimals", s)
	}
	return new(big.Int).Set(r.Num()), nil
}

// ShortAddress abbreviates a hex address: 0x1234...abcd
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// DisplayHandle renders a claimed handle with the network suffix, e.g. "@vibe.opn".
func DisplayHandle(handle, suffix string) string {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if handle == "" {
		return ""
	}
	if suffix != "" && !strings.HasSuffix(handle, suffix) {
		handle += suffix
	}
	return "@" + handle
}

// EscapeMarkdownV2 escapes special characters in Markdown V2 format
func EscapeMarkdownV2(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			sb.WriteRune('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
