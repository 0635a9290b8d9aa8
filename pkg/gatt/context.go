package gatt

import (
	"fmt"
	"sort"

	"github.com/gattkit/gattkit-go/pkg/btuuid"
)

// Tracer collects ordered human-readable parse steps. A nil Tracer
// discards everything, so tracing costs nothing unless enabled.
type Tracer struct {
	steps []string
}

// Stepf records one trace step.
func (t *Tracer) Stepf(format string, args ...any) {
	if t == nil {
		return
	}
	t.steps = append(t.steps, fmt.Sprintf(format, args...))
}

// Steps returns the recorded steps in order.
func (t *Tracer) Steps() []string {
	if t == nil {
		return nil
	}
	return t.steps
}

// Context carries previously decoded characteristic values into a
// dependent characteristic's decode, plus the optional tracer. The
// zero value and nil are both valid empty contexts.
type Context struct {
	tracer *Tracer
	values map[btuuid.UUID]*Result
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{}
}

// Value returns the decoded result for u, if present.
func (c *Context) Value(u btuuid.UUID) (*Result, bool) {
	if c == nil || c.values == nil {
		return nil, false
	}
	r, ok := c.values[u]
	return r, ok
}

// UUIDs returns the identifiers present in the context, sorted.
func (c *Context) UUIDs() []btuuid.UUID {
	if c == nil {
		return nil
	}
	out := make([]btuuid.UUID, 0, len(c.values))
	for u := range c.values {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Canonical() < out[j].Canonical() })
	return out
}

// With returns a copy of c extended with the given result. The
// receiver is unchanged.
func (c *Context) With(u btuuid.UUID, r *Result) *Context {
	next := &Context{}
	if c != nil {
		next.tracer = c.tracer
		next.values = make(map[btuuid.UUID]*Result, len(c.values)+1)
		for k, v := range c.values {
			next.values[k] = v
		}
	} else {
		next.values = make(map[btuuid.UUID]*Result, 1)
	}
	next.values[u] = r
	return next
}

// Tracef records a trace step when tracing is enabled.
func (c *Context) Tracef(format string, args ...any) {
	if c == nil {
		return
	}
	c.tracer.Stepf(format, args...)
}

// withTracer returns a shallow copy of c carrying t.
func (c *Context) withTracer(t *Tracer) *Context {
	next := &Context{tracer: t}
	if c != nil {
		next.values = c.values
	}
	return next
}

// put inserts in place. Batch decoding owns its working context and
// extends it without copying.
func (c *Context) put(u btuuid.UUID, r *Result) {
	if c.values == nil {
		c.values = make(map[btuuid.UUID]*Result)
	}
	c.values[u] = r
}
