// Package medfloat implements the IEEE 11073 medical device float
// formats carried by health characteristics.
//
// Unlike IEEE 754 these are sign-magnitude decimal formats: a two's
// complement mantissa scaled by a two's complement power-of-ten
// exponent. The top five mantissa codes on each width are reserved
// sentinels (NaN, +Inf, -Inf, "not at this resolution", reserved) and
// are checked before any arithmetic, both on decode and encode.
//
// The package also carries the related 7-byte date_time layout used by
// measurement timestamps, whose all-zero encoding means "unknown".
package medfloat
