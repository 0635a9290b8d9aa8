// Package characteristics implements decoders and encoders for the
// adopted GATT characteristics the library ships with. Simple scalar
// characteristics are built on the scaled template; composite ones
// such as Temperature Measurement, Heart Rate Measurement and
// Aggregate carry their own flag-driven layouts.
package characteristics
