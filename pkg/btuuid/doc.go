// Package btuuid implements the Bluetooth identifier value type.
//
// Identifiers come in three sizes: 16-bit and 32-bit assigned numbers,
// which live on the Bluetooth base UUID, and free-standing 128-bit
// vendor UUIDs. The canonical form is always the full 128-bit value;
// Parse accepts every spelling the specification dataset uses (bare hex,
// 0x-prefixed hex, long form) and Short recovers the assigned number.
package btuuid
