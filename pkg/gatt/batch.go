package gatt

import (
	"sort"
	"strings"

	"github.com/gattkit/gattkit-go/pkg/btuuid"
)

// Resolver supplies decoder instances for identifiers. The registry
// implements it; tests use small fakes.
type Resolver interface {
	// ResolveClass returns the characteristic decoder for u, if known.
	ResolveClass(u btuuid.UUID) (Characteristic, bool)
}

// ParseBatch decodes every entry of batch, honoring declared
// dependencies: entries whose required dependencies are satisfied
// decode first and their results extend the context seen by dependents.
//
// A dependency cycle among batch members is a structural error: it is
// detected before any decoding starts and fails the whole batch. Every
// other failure is isolated to its own entry; in particular a required
// dependency missing from both batch and context fails only the
// dependent with KindMissingDependency.
func ParseBatch(r Resolver, batch map[btuuid.UUID][]byte, ctx *Context, opts ParseOptions) (map[btuuid.UUID]*Result, error) {
	members := make(map[btuuid.UUID]Characteristic, len(batch))
	results := make(map[btuuid.UUID]*Result, len(batch))

	for u := range batch {
		ch, ok := r.ResolveClass(u)
		if !ok {
			res := newResult(nil, batch[u])
			res.UUID = u
			res.fail(Errorf(KindUUIDResolution, "no decoder registered for %s", u))
			results[u] = res
			continue
		}
		members[u] = ch
	}

	order, err := dependencyOrder(members)
	if err != nil {
		return nil, err
	}

	// Working context: starts from the caller's context and grows with
	// each successful decode.
	work := &Context{values: make(map[btuuid.UUID]*Result)}
	if ctx != nil {
		for u := range ctx.values {
			work.put(u, ctx.values[u])
		}
	}

	for _, u := range order {
		ch := members[u]
		res := decodeMember(ch, batch[u], work, opts)
		results[u] = res
		if res.OK {
			work.put(u, res)
		}
	}
	return results, nil
}

func decodeMember(ch Characteristic, raw []byte, ctx *Context, opts ParseOptions) *Result {
	for _, dep := range ch.Dependencies().Required {
		if _, err := RequireDependency(ctx, dep); err != nil {
			return newResult(ch, raw).fail(err)
		}
	}
	return Parse(ch, raw, ctx, opts)
}

// dependencyOrder topologically sorts the batch members over the
// dependency edges that stay inside the batch. Ready members are
// processed in sorted identifier order so the result is deterministic
// regardless of map iteration.
func dependencyOrder(members map[btuuid.UUID]Characteristic) ([]btuuid.UUID, error) {
	// pending counts unresolved in-batch deps; dependents maps a dep
	// to the members waiting on it.
	pending := make(map[btuuid.UUID]int, len(members))
	dependents := make(map[btuuid.UUID][]btuuid.UUID)
	for u, ch := range members {
		count := 0
		deps := ch.Dependencies()
		for _, dep := range append(append([]btuuid.UUID{}, deps.Required...), deps.Optional...) {
			if _, inBatch := members[dep]; inBatch {
				count++
				dependents[dep] = append(dependents[dep], u)
			}
		}
		pending[u] = count
	}

	ready := make([]btuuid.UUID, 0, len(members))
	for u, n := range pending {
		if n == 0 {
			ready = append(ready, u)
		}
	}
	sortUUIDs(ready)

	order := make([]btuuid.UUID, 0, len(members))
	for len(ready) > 0 {
		u := ready[0]
		ready = ready[1:]
		order = append(order, u)

		var freed []btuuid.UUID
		for _, dep := range dependents[u] {
			pending[dep]--
			if pending[dep] == 0 {
				freed = append(freed, dep)
			}
		}
		if len(freed) > 0 {
			ready = append(ready, freed...)
			sortUUIDs(ready)
		}
	}

	if len(order) < len(members) {
		var stuck []string
		for u, n := range pending {
			if n > 0 {
				stuck = append(stuck, u.String())
			}
		}
		sort.Strings(stuck)
		return nil, Errorf(KindDependencyCycle,
			"dependency cycle among %s", strings.Join(stuck, ", "))
	}
	return order, nil
}

func sortUUIDs(us []btuuid.UUID) {
	sort.Slice(us, func(i, j int) bool { return us[i].Canonical() < us[j].Canonical() })
}
