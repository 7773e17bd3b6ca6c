package output

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const satsPerBTC = 100_000_000

// Sats renders an amount as "1,234 sats".
func Sats(sats int64) string {
	return groupThousands(sats) + " sats"
}

// BTC renders satoshis as a fixed eight-decimal bitcoin amount.
func BTC(sats int64) string {
	sign := ""
	if sats < 0 {
		sign = "-"
		sats = -sats
	}
	return fmt.Sprintf("%s%d.%08d BTC", sign, sats/satsPerBTC, sats%satsPerBTC)
}

// USD renders dollars with cents and thousands separators.
func USD(v float64) string {
	cents := int64(math.Round(v * 100))
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(cents/100), cents%100)
}

// SignedSats renders a history amount with an explicit sign.
func SignedSats(sats int64) string {
	if sats > 0 {
		return "+" + Sats(sats)
	}
	return Sats(sats)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}
