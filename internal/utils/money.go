package utils

import (
    "errors"
    "fmt"
    "strconv"
    "strings"
)

// Prices travel over the wire as exact decimal strings with at most two
// fractional digits ("2000", "2000.5", "2000.50") and are stored as
// integer cents.  Integer arithmetic keeps price × nights × quantity
// exact; binary floating point is never involved.

// ErrBadAmount is returned when a price string is not a valid
// non-negative decimal with at most two fractional digits.
var ErrBadAmount = errors.New("invalid amount")

// ParseAmount converts a decimal price string into cents.
func ParseAmount(s string) (int64, error) {
    s = strings.TrimSpace(s)
    if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
        return 0, ErrBadAmount
    }
    whole := s
    frac := ""
    if i := strings.IndexByte(s, '.'); i >= 0 {
        whole, frac = s[:i], s[i+1:]
    }
    if whole == "" || len(frac) > 2 {
        return 0, ErrBadAmount
    }
    w, err := strconv.ParseInt(whole, 10, 64)
    if err != nil {
        return 0, ErrBadAmount
    }
    cents := w * 100
    if frac != "" {
        // pad "5" to "50" so tenths are not read as hundredths
        if len(frac) == 1 {
            frac += "0"
        }
        f, err := strconv.ParseInt(frac, 10, 64)
        if err != nil {
            return 0, ErrBadAmount
        }
        cents += f
    }
    return cents, nil
}

// FormatCents renders cents as a decimal string with exactly two
// fractional digits, e.g. 1200000 -> "12000.00".
func FormatCents(c int64) string {
    sign := ""
    if c < 0 {
        sign = "-"
        c = -c
    }
    return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
