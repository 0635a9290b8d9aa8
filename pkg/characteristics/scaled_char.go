package characteristics

import (
	"github.com/gattkit/gattkit-go/pkg/btuuid"
	"github.com/gattkit/gattkit-go/pkg/gatt"
	"github.com/gattkit/gattkit-go/pkg/scaled"
)

// scaledChar is the shared implementation behind every plain numeric
// characteristic: one fixed-width scaled integer field, optionally
// with a raw sentinel meaning "value is not known".
type scaledChar struct {
	gatt.Base
	tmpl    scaled.Template
	unknown *uint64
}

func newScaledChar(u uint16, name string, tmpl scaled.Template, c gatt.Constraints) *scaledChar {
	if c.ExactLength == 0 {
		c.ExactLength = tmpl.Width
	}
	if c.Kind == gatt.ValueAny {
		c.Kind = gatt.ValueFloat
	}
	return &scaledChar{
		Base: gatt.Base{CharUUID: btuuid.From16(u), CharName: name, Constr: c},
		tmpl: tmpl,
	}
}

// withUnknown declares a raw wire value that decodes to "absent".
func (c *scaledChar) withUnknown(raw uint64) *scaledChar {
	c.unknown = &raw
	return c
}

func (c *scaledChar) Decode(buf []byte, ctx *gatt.Context) (any, error) {
	if c.unknown != nil {
		raw, err := rawField(buf, c.tmpl)
		if err != nil {
			return nil, err
		}
		if raw == *c.unknown {
			ctx.Tracef("%s: raw %#x means value not known", c.CharName, raw)
			return nil, nil
		}
	}
	v, err := c.tmpl.Decode(buf, 0)
	if err != nil {
		return nil, err
	}
	ctx.Tracef("%s: %v", c.CharName, v)
	return v, nil
}

func (c *scaledChar) Encode(value any) ([]byte, error) {
	v, ok := toFloat(value)
	if !ok {
		return nil, gatt.Errorf(gatt.KindTypeMismatch, "%T is not numeric", value)
	}
	return c.tmpl.Encode(v)
}
