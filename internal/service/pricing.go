package service

import "time"

// Nights returns the number of nights between two calendar dates, i.e.
// the whole-day difference checkOut - checkIn.  Both times are treated
// as pure dates; any time-of-day component is discarded before the
// subtraction so that zone offsets can never shift the count.
func Nights(checkIn, checkOut time.Time) int64 {
	in := dateOnly(checkIn)
	out := dateOnly(checkOut)
	return int64(out.Sub(in) / (24 * time.Hour))
}

// TotalPriceCents computes nightly price × nights × quantity using
// integer cents.  The multiplication is exact; there is no rounding
// step because cents already carry the currency's full 2-decimal
// precision.
func TotalPriceCents(nightlyCents int64, nights int64, quantity uint32) int64 {
	return nightlyCents * nights * int64(quantity)
}

// dateOnly truncates a time to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
