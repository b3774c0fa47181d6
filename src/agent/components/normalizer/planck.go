package normalizer

import (
	"math"
	"strconv"
	"strings"
)

// Sentinels returned by FormatPlanck for absent or malformed input.
const (
	PlanckNA      = "N/A"
	PlanckInvalid = "Invalid Format"
)

// FormatPlanck converts a smallest-unit amount (a decimal digit string,
// "Planck-style") into a human-scaled decimal string: comma-grouped
// integer part, trailing zeros trimmed. nil and empty input yield "N/A";
// non-numeric input yields "Invalid Format". Works on digit strings of any
// size; nothing is parsed into a float.
func FormatPlanck(value any, decimals int) string {
	digits, ok := digitString(value)
	if !ok {
		if value == nil || digits == "" {
			return PlanckNA
		}
		return PlanckInvalid
	}
	if digits == "" {
		return PlanckNA
	}

	if decimals <= 0 {
		return groupThousands(strings.TrimLeft(digits, "0"))
	}

	var intPart, fracPart string
	if len(digits) <= decimals {
		intPart = "0"
		fracPart = strings.Repeat("0", decimals-len(digits)) + digits
	} else {
		intPart = digits[:len(digits)-decimals]
		fracPart = digits[len(digits)-decimals:]
	}

	intPart = strings.TrimLeft(intPart, "0")
	fracPart = strings.TrimRight(fracPart, "0")

	out := groupThousands(intPart)
	if fracPart != "" {
		out += "." + fracPart
	}
	return out
}

// digitString reduces supported inputs to a plain decimal digit string.
func digitString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return "", false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return s, false
			}
		}
		return s, true
	case float64:
		if v < 0 || v != math.Trunc(v) {
			return "x", false
		}
		return strconv.FormatFloat(v, 'f', 0, 64), true
	case int:
		if v < 0 {
			return "x", false
		}
		return strconv.Itoa(v), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	}
	return "x", false
}

func groupThousands(digits string) string {
	if digits == "" {
		return "0"
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
