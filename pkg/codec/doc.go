// Package codec implements the stateless fixed-width binary primitive
// codec every characteristic layout is built from.
//
// Reads take (buffer, offset, width) and fail with ErrInsufficientData
// when the field runs past the buffer. Appends follow the
// encoding/binary Append* convention and reject values that do not fit
// the requested width and signedness with ErrValueRange instead of
// wrapping; that check is the primary defense against silently writing
// corrupted values to a device.
package codec
