// Package gattkit decodes and encodes GATT characteristic values. It
// wires the embedded specification dataset and the builtin decoder set
// into a shared registry and exposes the parse, batch, build and
// resolution operations on top of it.
//
// The package-level functions operate on the shared default registry.
// Callers needing isolated registries (own dataset, own decoder set)
// use pkg/registry and pkg/gatt directly.
package gattkit

import (
	"sync"

	"github.com/gattkit/gattkit-go/pkg/btuuid"
	"github.com/gattkit/gattkit-go/pkg/characteristics"
	"github.com/gattkit/gattkit-go/pkg/gatt"
	"github.com/gattkit/gattkit-go/pkg/registry"
)

var (
	defaultOnce sync.Once
	defaultReg  *registry.Registry
)

// Default returns the shared registry: the embedded specification
// dataset plus every builtin decoder. The dataset itself is not loaded
// until the registry is first used.
func Default() *registry.Registry {
	defaultOnce.Do(func() {
		defaultReg = registry.New(registry.Options{
			Classes: characteristics.Builtin(),
		})
	})
	return defaultReg
}

// resolveID maps an identifier spelling to its UUID and bound decoder.
func resolveID(reg *registry.Registry, id string) (btuuid.UUID, gatt.Characteristic, error) {
	if m, ok := reg.Lookup(id); ok {
		if ch, ok := reg.ResolveClass(m.UUID); ok {
			return m.UUID, ch, nil
		}
		return m.UUID, nil, gatt.Errorf(gatt.KindUUIDResolution, "no decoder bound for %s", m.UUID)
	}
	// A well-formed UUID with no metadata entry may still carry a
	// decoder, registered custom without metadata aliases.
	if u, err := btuuid.Parse(id); err == nil {
		if ch, ok := reg.ResolveClass(u); ok {
			return u, ch, nil
		}
		return u, nil, gatt.Errorf(gatt.KindUUIDResolution, "no decoder registered for %s", u)
	}
	return btuuid.UUID{}, nil, gatt.Errorf(gatt.KindUUIDResolution, "cannot resolve %q", id)
}

func resolutionFailure(u btuuid.UUID, raw []byte, err error) *gatt.Result {
	res := &gatt.Result{UUID: u, Kind: gatt.KindUUIDResolution, Message: err.Error()}
	if raw != nil {
		res.Raw = make([]byte, len(raw))
		copy(res.Raw, raw)
	}
	return res
}

// Parse decodes one characteristic value. id accepts every spelling
// the registry knows: "0x2A19", "2A19", the 128-bit form, the display
// name, or the specification identifier. An unresolvable id yields a
// failed result, not an error, matching how batch entries fail.
func Parse(id string, raw []byte, ctx *gatt.Context, opts gatt.ParseOptions) *gatt.Result {
	_, ch, err := resolveID(Default(), id)
	if err != nil {
		u, _ := btuuid.Parse(id)
		return resolutionFailure(u, raw, err)
	}
	return gatt.Parse(ch, raw, ctx, opts)
}

// ParseBatch decodes a set of characteristic values together,
// honoring declared dependencies between them. Results are keyed by
// the caller's identifier spellings. A dependency cycle fails the
// whole batch; every other failure stays on its own entry.
func ParseBatch(batch map[string][]byte, ctx *gatt.Context, opts gatt.ParseOptions) (map[string]*gatt.Result, error) {
	reg := Default()
	results := make(map[string]*gatt.Result, len(batch))
	byUUID := make(map[btuuid.UUID][]byte, len(batch))
	ids := make(map[btuuid.UUID]string, len(batch))

	for id, raw := range batch {
		u, _, err := resolveID(reg, id)
		if err != nil {
			results[id] = resolutionFailure(u, raw, err)
			continue
		}
		byUUID[u] = raw
		ids[u] = id
	}

	decoded, err := gatt.ParseBatch(reg, byUUID, ctx, opts)
	if err != nil {
		return nil, err
	}
	for u, res := range decoded {
		results[ids[u]] = res
	}
	return results, nil
}

// Build encodes a domain value into the characteristic's byte layout.
// The value is validated against the declared constraints before any
// bytes are produced.
func Build(id string, value any) ([]byte, error) {
	_, ch, err := resolveID(Default(), id)
	if err != nil {
		return nil, err
	}
	return gatt.Build(ch, value)
}

// ResolveMetadata returns the metadata behind any registered
// identifier or alias spelling. A miss is an expected outcome and is
// reported by the bool, never by an error.
func ResolveMetadata(idOrAlias string) (registry.Metadata, bool) {
	return Default().Lookup(idOrAlias)
}

// RegisterCustom binds a decoder and metadata in the default
// registry's custom namespace. Identifiers already present fail with
// registry.ErrCollision unless override is set.
func RegisterCustom(ch gatt.Characteristic, meta registry.Metadata, override bool) error {
	return Default().RegisterCustom(ch, meta, override)
}
