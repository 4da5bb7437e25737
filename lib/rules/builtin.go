package rules

import (
	"math"
	"net/mail"
	"net/netip"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

func builtins() map[string]Func {
	return map[string]Func{
		// numeric
		"minValue":      numeric(func(v, c float64) bool { return v >= c }),
		"maxValue":      numeric(func(v, c float64) bool { return v <= c }),
		"isDivisibleBy": numeric(divisible),
		"isInt":         isInt,
		"isFloat":       isFloat,
		"isDecimal":     isFloat,
		"isNumeric":     isNumeric,

		// length, case and pattern
		"minLength":      length(func(n, c int) bool { return n >= c }),
		"maxLength":      length(func(n, c int) bool { return n <= c }),
		"isLength":       length(func(n, c int) bool { return n == c }),
		"isUppercase":    text(func(s string) bool { return s == strings.ToUpper(s) }),
		"isLowercase":    text(func(s string) bool { return s == strings.ToLower(s) }),
		"isAlpha":        text(allRunes(unicode.IsLetter)),
		"isAlphanumeric": text(allRunes(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) })),
		"matches":        matches,
		"contains":       contains,
		"equals":         equals,

		// formats
		"isEmail":      text(isEmail),
		"isURL":        text(isURL),
		"isCreditCard": text(isCreditCard),
		"isHexColor":   text(hexColor.MatchString),
		"isIP":         isIP,
		"isPort":       isPort,

		// cross-field
		"eqTarget":  eqTarget,
		"neqTarget": neqTarget,
		"gtTarget":  targetCompare(func(c int) bool { return c > 0 }),
		"gteTarget": targetCompare(func(c int) bool { return c >= 0 }),
		"ltTarget":  targetCompare(func(c int) bool { return c < 0 }),
		"lteTarget": targetCompare(func(c int) bool { return c <= 0 }),
	}
}

func numeric(cmp func(value, criteria float64) bool) Func {
	return func(_ Values, value any, criteria any) bool {
		v, ok := toFloat(value)
		if !ok {
			return false
		}
		c, ok := toFloat(criteria)
		if !ok {
			return false
		}
		return cmp(v, c)
	}
}

func length(cmp func(n, criteria int) bool) Func {
	return func(_ Values, value any, criteria any) bool {
		c, ok := toInt(criteria)
		if !ok {
			return false
		}
		return cmp(utf8.RuneCountInString(toString(value)), c)
	}
}

func text(pred func(string) bool) Func {
	return func(_ Values, value any, _ any) bool {
		return pred(toString(value))
	}
}

func allRunes(pred func(rune) bool) func(string) bool {
	return func(s string) bool {
		if s == "" {
			return false
		}
		for _, r := range s {
			if !pred(r) {
				return false
			}
		}
		return true
	}
}

var (
	intPattern     = regexp.MustCompile(`^[-+]?(0|[1-9][0-9]*)$`)
	floatPattern   = regexp.MustCompile(`^[-+]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][-+]?[0-9]+)?$`)
	numericPattern = regexp.MustCompile(`^[-+]?[0-9]+$`)
	hexColor       = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
)

func isInt(_ Values, value any, _ any) bool {
	switch n := value.(type) {
	case float64:
		return n == math.Trunc(n)
	case float32:
		return float64(n) == math.Trunc(float64(n))
	case string:
		return intPattern.MatchString(n)
	}
	_, ok := toFloat(value)
	return ok
}

func isFloat(_ Values, value any, _ any) bool {
	if s, ok := value.(string); ok {
		return floatPattern.MatchString(s)
	}
	_, ok := toFloat(value)
	return ok
}

func isNumeric(_ Values, value any, _ any) bool {
	if s, ok := value.(string); ok {
		return numericPattern.MatchString(s)
	}
	f, ok := toFloat(value)
	return ok && f == math.Trunc(f)
}

// patterns caches compiled regular expressions keyed by source. Compilation
// is the only state shared between evaluations and does not affect results.
var patterns sync.Map

func compile(expr string) (*regexp.Regexp, bool) {
	if re, ok := patterns.Load(expr); ok {
		return re.(*regexp.Regexp), true
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, false
	}
	patterns.Store(expr, re)
	return re, true
}

func matches(_ Values, value any, criteria any) bool {
	var re *regexp.Regexp
	switch c := criteria.(type) {
	case *regexp.Regexp:
		re = c
	case string:
		var ok bool
		if re, ok = compile(c); !ok {
			return false
		}
	default:
		return false
	}
	return re.MatchString(toString(value))
}

func contains(_ Values, value any, criteria any) bool {
	return strings.Contains(toString(value), toString(criteria))
}

func equals(_ Values, value any, criteria any) bool {
	return toString(value) == toString(criteria)
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndex(s, "@")
	domain := s[at+1:]
	return at > 0 && strings.Contains(domain, ".") && !strings.HasSuffix(domain, ".")
}

func isURL(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ftp":
	default:
		return false
	}
	host := u.Hostname()
	return host != "" && (host == "localhost" || strings.Contains(host, ".") || isIPAddr(host))
}

func isIPAddr(s string) bool {
	_, err := netip.ParseAddr(s)
	return err == nil
}

// isCreditCard applies the Luhn checksum to 13-19 digits; spaces and dashes
// are ignored.
func isCreditCard(s string) bool {
	digits := make([]int, 0, len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r == ' ' || r == '-':
		default:
			return false
		}
	}
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func isIP(_ Values, value any, criteria any) bool {
	addr, err := netip.ParseAddr(toString(value))
	if err != nil || addr.Zone() != "" {
		return false
	}
	switch version, _ := toInt(criteria); version {
	case 4:
		return addr.Is4()
	case 6:
		return addr.Is6() && !addr.Is4In6()
	default:
		return true
	}
}

func isPort(_ Values, value any, _ any) bool {
	if !isInt(nil, value, nil) {
		return false
	}
	n, ok := toFloat(value)
	return ok && n >= 0 && n <= 65535
}

// divisible tolerates the rounding error of decimal divisors, so 0.3 is
// divisible by 0.1.
func divisible(v, c float64) bool {
	if c == 0 {
		return false
	}
	q := v / c
	return math.Abs(q-math.Round(q)) < 1e-9
}

// eqTarget compares values as text. Confirmation fields must match what was
// typed, so "0123" and "123" differ even though both parse as numbers.
func eqTarget(values Values, value any, criteria any) bool {
	target, ok := criteria.(string)
	if !ok {
		return false
	}
	other, ok := values[target]
	if !ok || other == nil {
		return false
	}
	return toString(value) == toString(other)
}

func neqTarget(values Values, value any, criteria any) bool {
	target, ok := criteria.(string)
	if !ok {
		return false
	}
	other, ok := values[target]
	if !ok || other == nil {
		return true
	}
	return toString(value) != toString(other)
}
