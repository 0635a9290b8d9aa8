package registry

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gattkit/gattkit-go/pkg/btuuid"
	"github.com/gattkit/gattkit-go/pkg/gatt"
	"github.com/gattkit/gattkit-go/pkg/log"
	"github.com/gattkit/gattkit-go/pkg/specdata"
	"github.com/gattkit/gattkit-go/pkg/version"
)

// ErrCollision reports a custom registration whose identifier already
// exists without override being set.
var ErrCollision = errors.New("identifier already registered")

// Metadata describes one characteristic as published by the
// specification dataset. Entries are immutable once loaded.
type Metadata struct {
	// UUID is the canonical identity.
	UUID btuuid.UUID

	// Name is the display name ("Battery Level").
	Name string

	// Identifier is the specification identifier string
	// ("org.bluetooth.characteristic.battery_level").
	Identifier string

	// Unit is the physical unit symbol, if any.
	Unit string

	// Type is the logical value type.
	Type gatt.ValueKind

	// Properties lists supported protocol operations.
	Properties []string

	// Custom marks entries registered at runtime rather than loaded
	// from the dataset.
	Custom bool
}

// Options configures a Registry.
type Options struct {
	// Dataset supplies the specification dataset. Nil uses the
	// embedded snapshot. A failing dataset degrades to an empty spec
	// namespace instead of an error.
	Dataset func() (*specdata.RawDataset, error)

	// Classes are the decoder instances to bind to dataset entries at
	// load time, matched by UUID.
	Classes []gatt.Characteristic

	// Logger receives registry events. Nil disables logging.
	Logger log.Logger
}

// customSet is the runtime registration namespace. It is replaced
// wholesale under the registry mutex so readers can load it without
// locking.
type customSet struct {
	meta    map[btuuid.UUID]Metadata
	classes map[btuuid.UUID]gatt.Characteristic
	aliases map[string]btuuid.UUID
}

// Registry is the process-wide map from identifier/alias to metadata
// and decoder class. The specification dataset is loaded exactly once,
// on first use: the first caller performs the load while concurrent
// callers block on the mutex, and every later read is lock-free.
type Registry struct {
	opts Options

	loaded atomic.Bool
	mu     sync.Mutex

	// Written once during load, read-only afterwards.
	meta    map[btuuid.UUID]Metadata
	classes map[btuuid.UUID]gatt.Characteristic
	aliases map[string]btuuid.UUID

	custom atomic.Pointer[customSet]
}

// New creates a Registry. The dataset is not touched until first use.
func New(opts Options) *Registry {
	r := &Registry{opts: opts}
	r.custom.Store(&customSet{})
	return r
}

// ensureLoaded performs the one-time dataset load. Double-checked: the
// hot path is a single atomic read.
func (r *Registry) ensureLoaded() {
	if r.loaded.Load() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded.Load() {
		return
	}
	r.load()
	r.loaded.Store(true)
}

func (r *Registry) load() {
	logger := log.OrNoop(r.opts.Logger)
	r.meta = make(map[btuuid.UUID]Metadata)
	r.classes = make(map[btuuid.UUID]gatt.Characteristic)
	r.aliases = make(map[string]btuuid.UUID)

	loadFn := r.opts.Dataset
	if loadFn == nil {
		loadFn = specdata.Builtin
	}
	ds, err := loadFn()
	if err != nil {
		// Degrade to an empty spec namespace; custom registrations
		// still work.
		logger.Log(log.Event{
			Timestamp: time.Now(),
			Category:  log.CategoryRegistryWarning,
			Message:   "specification dataset unavailable: " + err.Error(),
		})
		ds = &specdata.RawDataset{}
	}

	if ds.Version != "" && !version.Supported(ds.Version) {
		logger.Log(log.Event{
			Timestamp: time.Now(),
			Category:  log.CategoryRegistryWarning,
			Message:   "dataset version " + ds.Version + " is older than " + version.Minimum + " or malformed",
		})
	}

	for _, raw := range ds.Characteristics {
		u, err := btuuid.Parse(raw.UUID)
		if err != nil {
			logger.Log(log.Event{
				Timestamp: time.Now(),
				Category:  log.CategoryRegistryWarning,
				Message:   "skipping dataset entry with bad uuid " + raw.UUID + ": " + err.Error(),
			})
			continue
		}
		m := Metadata{
			UUID:       u,
			Name:       raw.Name,
			Identifier: raw.Identifier,
			Unit:       raw.Unit,
			Type:       parseValueKind(raw.Type),
			Properties: raw.Properties,
		}
		r.meta[u] = m
		registerAliases(r.aliases, m)
	}

	for _, ch := range r.opts.Classes {
		r.classes[ch.UUID()] = ch
	}

	logger.Log(log.Event{
		Timestamp: time.Now(),
		Category:  log.CategoryRegistryLoad,
		OK:        true,
		Message:   "specification dataset loaded",
		Entries:   len(r.meta),
	})
}

// registerAliases records every published spelling of m under its
// canonical identifier. This name bridging happens once, at load time;
// runtime resolution only ever consults the finished map.
func registerAliases(aliases map[string]btuuid.UUID, m Metadata) {
	put := func(s string) {
		if s == "" {
			return
		}
		key := btuuid.NormalizeAlias(s)
		if _, exists := aliases[key]; !exists {
			aliases[key] = m.UUID
		}
	}
	put(m.UUID.Canonical())
	put(m.UUID.String())
	if _, ok := m.UUID.Short(); ok {
		put(strings.TrimPrefix(m.UUID.String(), "0x"))
	}
	put(m.Name)
	put(m.Identifier)
	if i := strings.LastIndexByte(m.Identifier, '.'); i >= 0 {
		put(m.Identifier[i+1:])
	}
}

// Resolve returns the metadata for a canonical identifier. A miss is
// an expected outcome for arbitrary external input and returns false,
// never an error.
func (r *Registry) Resolve(u btuuid.UUID) (Metadata, bool) {
	r.ensureLoaded()
	if cs := r.custom.Load(); cs != nil {
		if m, ok := cs.meta[u]; ok {
			return m, true
		}
	}
	m, ok := r.meta[u]
	return m, ok
}

// Lookup resolves any registered spelling: canonical UUID forms, hex
// with or without prefix, display name, specification identifier, or
// snake_case short name.
func (r *Registry) Lookup(idOrAlias string) (Metadata, bool) {
	r.ensureLoaded()
	if u, err := btuuid.Parse(idOrAlias); err == nil {
		if m, ok := r.Resolve(u); ok {
			return m, true
		}
	}
	key := btuuid.NormalizeAlias(idOrAlias)
	if cs := r.custom.Load(); cs != nil {
		if u, ok := cs.aliases[key]; ok {
			return r.Resolve(u)
		}
	}
	if u, ok := r.aliases[key]; ok {
		return r.Resolve(u)
	}
	return Metadata{}, false
}

// ResolveClass returns the decoder for u, if one is bound. It
// implements gatt.Resolver.
func (r *Registry) ResolveClass(u btuuid.UUID) (gatt.Characteristic, bool) {
	r.ensureLoaded()
	if cs := r.custom.Load(); cs != nil {
		if ch, ok := cs.classes[u]; ok {
			return ch, true
		}
	}
	ch, ok := r.classes[u]
	return ch, ok
}

// UUIDs returns all registered canonical identifiers, spec and custom.
func (r *Registry) UUIDs() []btuuid.UUID {
	r.ensureLoaded()
	cs := r.custom.Load()
	out := make([]btuuid.UUID, 0, len(r.meta)+len(cs.meta))
	for u := range r.meta {
		out = append(out, u)
	}
	for u := range cs.meta {
		if _, dup := r.meta[u]; !dup {
			out = append(out, u)
		}
	}
	return out
}

// RegisterCustom binds a decoder and metadata to an identifier in the
// custom namespace. Registration fails with ErrCollision when the
// identifier already exists (in the spec set or a previous custom
// registration) and override is false; with override it shadows the
// existing entry.
func (r *Registry) RegisterCustom(ch gatt.Characteristic, meta Metadata, override bool) error {
	r.ensureLoaded()
	if ch == nil {
		return errors.New("nil characteristic")
	}
	u := ch.UUID()
	if meta.UUID.IsZero() {
		meta.UUID = u
	}
	if meta.UUID != u {
		return errors.New("metadata uuid does not match characteristic uuid")
	}
	meta.Custom = true

	r.mu.Lock()
	defer r.mu.Unlock()

	cs := r.custom.Load()
	_, inSpec := r.meta[u]
	_, inCustom := cs.meta[u]
	if (inSpec || inCustom) && !override {
		return gatt.WrapError(gatt.KindCollision, ErrCollision)
	}

	next := &customSet{
		meta:    make(map[btuuid.UUID]Metadata, len(cs.meta)+1),
		classes: make(map[btuuid.UUID]gatt.Characteristic, len(cs.classes)+1),
		aliases: make(map[string]btuuid.UUID, len(cs.aliases)+2),
	}
	for k, v := range cs.meta {
		next.meta[k] = v
	}
	for k, v := range cs.classes {
		next.classes[k] = v
	}
	for k, v := range cs.aliases {
		next.aliases[k] = v
	}
	next.meta[u] = meta
	next.classes[u] = ch
	registerAliases(next.aliases, meta)
	r.custom.Store(next)

	log.OrNoop(r.opts.Logger).Log(log.Event{
		Timestamp: time.Now(),
		Category:  log.CategoryRegistryLoad,
		OK:        true,
		UUID:      u.String(),
		Name:      meta.Name,
		Message:   "custom characteristic registered",
	})
	return nil
}

func parseValueKind(s string) gatt.ValueKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "float":
		return gatt.ValueFloat
	case "int":
		return gatt.ValueInt
	case "uint":
		return gatt.ValueUint
	case "bool":
		return gatt.ValueBool
	case "string":
		return gatt.ValueString
	case "bytes":
		return gatt.ValueBytes
	case "time":
		return gatt.ValueTime
	case "struct":
		return gatt.ValueStruct
	default:
		return gatt.ValueAny
	}
}
