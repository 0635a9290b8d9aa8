package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gattkit/gattkit-go/pkg/btuuid"
	"github.com/gattkit/gattkit-go/pkg/gatt"
	"github.com/gattkit/gattkit-go/pkg/specdata"
)

type stubChar struct {
	gatt.Base
}

func (s *stubChar) Decode(buf []byte, ctx *gatt.Context) (any, error) {
	return buf[0], nil
}

func newStub(u uint16, name string) *stubChar {
	return &stubChar{Base: gatt.Base{
		CharUUID: btuuid.From16(u),
		CharName: name,
		Constr:   gatt.Constraints{ExactLength: 1},
	}}
}

func TestLazyLoad(t *testing.T) {
	require := require.New(t)

	calls := 0
	r := New(Options{Dataset: func() (*specdata.RawDataset, error) {
		calls++
		return specdata.Builtin()
	}})
	require.Zero(calls, "dataset must not load before first use")

	_, ok := r.Resolve(btuuid.From16(0x2A19))
	require.True(ok)
	require.Equal(1, calls)

	// Further reads never reload.
	r.Lookup("battery level")
	r.ResolveClass(btuuid.From16(0x2A19))
	require.Equal(1, calls)
}

func TestLoadOnceUnderContention(t *testing.T) {
	require := require.New(t)

	calls := 0
	r := New(Options{Dataset: func() (*specdata.RawDataset, error) {
		calls++
		return specdata.Builtin()
	}})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Resolve(btuuid.From16(0x2A6E))
		}()
	}
	wg.Wait()
	require.Equal(1, calls, "concurrent first use must load exactly once")
}

// Every registered spelling of an identifier must converge on the same
// metadata.
func TestAliasConvergence(t *testing.T) {
	require := require.New(t)
	r := New(Options{})

	canonical, ok := r.Resolve(btuuid.From16(0x2A19))
	require.True(ok)

	for _, alias := range []string{
		"2A19",
		"0x2a19",
		"00002a19-0000-1000-8000-00805f9b34fb",
		"Battery Level",
		"battery_level",
		"org.bluetooth.characteristic.battery_level",
	} {
		m, ok := r.Lookup(alias)
		require.True(ok, "alias %q did not resolve", alias)
		require.Equal(canonical, m, "alias %q diverged", alias)
	}
}

func TestResolveMiss(t *testing.T) {
	r := New(Options{})
	if _, ok := r.Resolve(btuuid.From16(0xFFFF)); ok {
		t.Error("unknown identifier resolved")
	}
	if _, ok := r.Lookup("no such characteristic"); ok {
		t.Error("unknown alias resolved")
	}
}

func TestDatasetDegradation(t *testing.T) {
	require := require.New(t)

	r := New(Options{Dataset: func() (*specdata.RawDataset, error) {
		return nil, errors.New("dataset file corrupted")
	}})

	// Spec namespace is empty but the registry still works.
	_, ok := r.Resolve(btuuid.From16(0x2A19))
	require.False(ok)

	custom := newStub(0x2A19, "Battery Level")
	require.NoError(r.RegisterCustom(custom, Metadata{Name: "Battery Level"}, false))

	m, ok := r.Resolve(custom.UUID())
	require.True(ok)
	require.True(m.Custom)

	ch, ok := r.ResolveClass(custom.UUID())
	require.True(ok)
	require.Same(gatt.Characteristic(custom), ch)
}

func TestRegisterCustomCollision(t *testing.T) {
	require := require.New(t)
	r := New(Options{})

	// 0x2A19 exists in the spec set.
	custom := newStub(0x2A19, "Vendor Battery")

	err := r.RegisterCustom(custom, Metadata{Name: "Vendor Battery"}, false)
	require.Error(err)
	require.Equal(gatt.KindCollision, gatt.Classify(err))
	require.ErrorIs(err, ErrCollision)

	// Same call with override succeeds and shadows the spec entry.
	require.NoError(r.RegisterCustom(custom, Metadata{Name: "Vendor Battery"}, true))

	m, ok := r.Resolve(custom.UUID())
	require.True(ok)
	require.Equal("Vendor Battery", m.Name)
	require.True(m.Custom)
}

func TestCustomNamespaceSeparate(t *testing.T) {
	require := require.New(t)
	r := New(Options{})

	vendor := &stubChar{Base: gatt.Base{
		CharUUID: btuuid.MustParse("6e400002-b5a3-f393-e0a9-e50e24dcca9e"),
		CharName: "Command RX",
		Constr:   gatt.Constraints{ExactLength: 1},
	}}
	require.NoError(r.RegisterCustom(vendor, Metadata{Name: "Command RX"}, false))

	m, ok := r.Lookup("Command RX")
	require.True(ok)
	require.Equal(vendor.UUID(), m.UUID)

	// Registering the same vendor UUID again without override collides.
	err := r.RegisterCustom(vendor, Metadata{Name: "Command RX"}, false)
	require.Equal(gatt.KindCollision, gatt.Classify(err))
}

func TestClassesBoundAtLoad(t *testing.T) {
	require := require.New(t)

	ch := newStub(0x2A19, "Battery Level")
	r := New(Options{Classes: []gatt.Characteristic{ch}})

	got, ok := r.ResolveClass(btuuid.From16(0x2A19))
	require.True(ok)
	require.Same(gatt.Characteristic(ch), got)

	// Metadata for the same identifier comes from the dataset.
	m, ok := r.Resolve(btuuid.From16(0x2A19))
	require.True(ok)
	require.Equal("Battery Level", m.Name)
	require.False(m.Custom)
}
