// SPDX-License-Identifier: MIT
package labels_test

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/beamsplitter"
	"github.com/katalvlaran/lvmesh/clements"
	"github.com/katalvlaran/lvmesh/cmatrix"
	"github.com/katalvlaran/lvmesh/labels"
)

func interferometer(t *testing.T, n int, seed int64) *clements.Interferometer {
	t.Helper()
	u, err := cmatrix.RandomUnitary(n, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	it, err := clements.Clements(u)
	require.NoError(t, err)

	return it
}

func identityInterferometer(t *testing.T, n int) *clements.Interferometer {
	t.Helper()
	id, err := cmatrix.Identity(n)
	require.NoError(t, err)
	it, err := clements.Clements(id)
	require.NoError(t, err)

	return it
}

func mapper(t *testing.T, n int, v labels.Variant) *labels.Mapper {
	t.Helper()
	p, err := labels.DefaultProfile(n, v)
	require.NoError(t, err)
	m, err := labels.NewMapper(p)
	require.NoError(t, err)

	return m
}

func TestPosition(t *testing.T) {
	p := labels.Position{Column: 2, Row: 0}
	assert.Equal(t, "C1", p.Label())
	m1, m2 := p.Modes()
	assert.Equal(t, [2]int{0, 1}, [2]int{m1, m2})

	p = labels.Position{Column: 1, Row: 3}
	m1, m2 = p.Modes()
	assert.Equal(t, [2]int{7, 8}, [2]int{m1, m2})
	assert.True(t, p.Wrap(8))
	assert.False(t, labels.Position{Column: 0, Row: 3}.Wrap(8))
}

func TestParseLabel(t *testing.T) {
	cases := []struct {
		in      string
		n       int
		want    labels.Position
		wantErr bool
	}{
		{"A1", 8, labels.Position{Column: 0, Row: 0}, false},
		{"H4", 8, labels.Position{Column: 7, Row: 3}, false},
		{"L6", 12, labels.Position{Column: 11, Row: 5}, false},
		{"I1", 8, labels.Position{}, true},
		{"A5", 8, labels.Position{}, true},
		{"A0", 8, labels.Position{}, true},
		{"A-1", 8, labels.Position{}, true},
		{"a1", 8, labels.Position{}, true},
		{"A", 8, labels.Position{}, true},
		{"", 8, labels.Position{}, true},
	}
	for _, tc := range cases {
		got, err := labels.ParseLabel(tc.in, tc.n)
		if tc.wantErr {
			assert.ErrorIs(t, err, labels.ErrBadLabel, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestTableFor(t *testing.T) {
	for _, n := range labels.SupportedSizes {
		for _, v := range []labels.Variant{labels.DecompositionOrder, labels.PhysicalLayout} {
			tbl, err := labels.TableFor(n, v)
			require.NoError(t, err)
			assert.Equal(t, n, tbl.Size())
			assert.Equal(t, v, tbl.Variant())
			require.Equal(t, n*(n-1)/2, tbl.Len())

			seen := map[string]bool{}
			for k, l := range tbl.Labels() {
				assert.False(t, seen[l], "duplicate %s", l)
				seen[l] = true
				assert.False(t, tbl.Position(k).Wrap(n), l)
				idx, ok := tbl.Index(l)
				assert.True(t, ok)
				assert.Equal(t, k, idx)
			}
		}
	}

	_, err := labels.TableFor(5, labels.DecompositionOrder)
	assert.ErrorIs(t, err, labels.ErrUnsupportedSize)
	_, err = labels.TableFor(8, labels.Variant(7))
	assert.ErrorIs(t, err, labels.ErrUnknownVariant)
}

func TestTableFor_KnownOrders(t *testing.T) {
	dec, err := labels.TableFor(4, labels.DecompositionOrder)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2", "B1", "C1", "C2", "D1"}, dec.Labels())

	phys, err := labels.TableFor(8, labels.PhysicalLayout)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2", "A3", "A4", "B1", "B2", "B3", "C1"}, phys.Labels()[:8])
}

func TestDefaultProfile(t *testing.T) {
	p, err := labels.DefaultProfile(8, labels.DecompositionOrder)
	require.NoError(t, err)
	assert.Len(t, p.DenyList, 11)
	assert.True(t, p.Denied("F3"))
	assert.False(t, p.Denied("F2"))
	assert.Empty(t, p.PhaseCorrections)

	p, err = labels.DefaultProfile(8, labels.PhysicalLayout)
	require.NoError(t, err)
	assert.NotEmpty(t, p.PhaseCorrections)

	p, err = labels.DefaultProfile(4, labels.DecompositionOrder)
	require.NoError(t, err)
	assert.Equal(t, []string{"B2", "D2"}, p.SortedDenyList())

	_, err = labels.DefaultProfile(10, labels.DecompositionOrder)
	assert.ErrorIs(t, err, labels.ErrUnsupportedSize)
}

func TestProfile_HeaterFor(t *testing.T) {
	p := labels.Profile{Size: 4, Heaters: map[string]labels.Heater{"A1": {Theta: "h0", Phi: "h1"}}}
	assert.Equal(t, labels.Heater{Theta: "h0", Phi: "h1"}, p.HeaterFor("A1"))
	assert.Equal(t, labels.Heater{Theta: "C1.theta", Phi: "C1.phi"}, p.HeaterFor("C1"))
}

func TestDecodeProfile(t *testing.T) {
	yml := []byte(`
size: 6
variant: physical
deny_list: [B3, D3, F3]
phase_corrections:
  A1: 0.5
heaters:
  A1: {theta: ch00, phi: ch01}
`)
	p, err := labels.DecodeProfile(yml, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, 6, p.Size)
	assert.Equal(t, labels.PhysicalLayout, p.Variant)
	assert.Equal(t, []string{"B3", "D3", "F3"}, p.DenyList)
	assert.Equal(t, 0.5, p.PhaseCorrections["A1"])
	assert.Equal(t, "ch01", p.Heaters["A1"].Phi)

	js, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(js), `"variant":"physical"`)
	back, err := labels.DecodeProfile(js, ".json")
	require.NoError(t, err)
	assert.Equal(t, p, back)

	_, err = labels.DecodeProfile([]byte("size: 6\nvariant: diagonal\n"), ".yml")
	assert.ErrorIs(t, err, labels.ErrUnknownVariant)
	_, err = labels.DecodeProfile([]byte("size: 6\ndeny_list: [Z9]\n"), ".yml")
	assert.ErrorIs(t, err, labels.ErrBadLabel)
	_, err = labels.DecodeProfile([]byte(`{"size": 7}`), ".json")
	assert.ErrorIs(t, err, labels.ErrUnsupportedSize)
}

func TestFormatAngle(t *testing.T) {
	cases := map[float64]string{
		0:           "0",
		-0.0000001:  "0",
		0.5:         "0.5",
		1.23456789:  "1.234568",
		1.9999999:   "0",
		1.999999:    "1.999999",
		2.0:         "0",
		1.000000049: "1",
	}
	for in, want := range cases {
		assert.Equal(t, want, labels.FormatAngle(in), "%v", in)
	}
}

func TestMapInterferometer_Deterministic(t *testing.T) {
	m := mapper(t, 8, labels.DecompositionOrder)
	it := interferometer(t, 8, 3)

	a, err := m.MapInterferometer(it)
	require.NoError(t, err)
	b, err := m.MapInterferometer(it)
	require.NoError(t, err)
	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, ja, jb)
}

func TestMapInterferometer_DenyListOverrides(t *testing.T) {
	m := mapper(t, 8, labels.DecompositionOrder)
	for seed := int64(1); seed <= 5; seed++ {
		cm, err := m.MapInterferometer(interferometer(t, 8, seed))
		require.NoError(t, err)
		assert.Len(t, cm, 32)
		for _, l := range m.Profile().DenyList {
			require.Contains(t, cm, l)
			assert.Equal(t, labels.BypassTheta, cm[l].Theta, l)
			assert.Equal(t, labels.BypassPhi, cm[l].Phi, l)
		}
	}
}

func TestMapInterferometer_Identity8(t *testing.T) {
	m := mapper(t, 8, labels.DecompositionOrder)
	cm, err := m.MapInterferometer(identityInterferometer(t, 8))
	require.NoError(t, err)

	denied := 0
	for _, l := range cm.Labels() {
		s := cm[l]
		assert.Equal(t, labels.Arms[:], s.Arms)
		if m.Denied(l) {
			denied++
			assert.Equal(t, "2", s.Theta, l)
			assert.Equal(t, "0", s.Phi, l)
			continue
		}
		assert.Equal(t, "0", s.Theta, l)
	}
	assert.Equal(t, 11, denied)
}

func TestMapPhysical_MatchesDecompositionOrder(t *testing.T) {
	it := interferometer(t, 6, 11)
	dec := mapper(t, 6, labels.DecompositionOrder)
	phys := mapper(t, 6, labels.PhysicalLayout)

	want, err := dec.MapInterferometer(it)
	require.NoError(t, err)
	got, err := phys.Map(it)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMapPhysical_PhaseCorrections(t *testing.T) {
	it := interferometer(t, 4, 2)
	p, err := labels.DefaultProfile(4, labels.PhysicalLayout)
	require.NoError(t, err)
	p.PhaseCorrections = map[string]float64{"A1": 0.5}
	m, err := labels.NewMapper(p)
	require.NoError(t, err)

	flat, err := m.PhysicalAngles(it)
	require.NoError(t, err)
	cm, err := m.MapPhysical(flat)
	require.NoError(t, err)

	// A1 is the first physical position.
	_, phiChip := beamsplitter.ToChip(flat[0], flat[1])
	want := labels.FormatAngle(beamsplitter.WrapUnitsOfPi(phiChip + 0.5))
	assert.Equal(t, want, cm["A1"].Phi)

	plain, err := mapper(t, 4, labels.DecompositionOrder).MapInterferometer(it)
	require.NoError(t, err)
	assert.Equal(t, plain["A2"], cm["A2"])
}

func TestMapper_Errors(t *testing.T) {
	m := mapper(t, 8, labels.DecompositionOrder)

	_, err := m.MapInterferometer(nil)
	assert.ErrorIs(t, err, labels.ErrNilInterferometer)
	_, err = m.MapInterferometer(interferometer(t, 6, 1))
	assert.ErrorIs(t, err, labels.ErrSizeMismatch)

	it := interferometer(t, 8, 1)
	it.BeamSplitters[0].Mode1, it.BeamSplitters[0].Mode2 = 2, 3
	_, err = m.MapInterferometer(it)
	assert.ErrorIs(t, err, labels.ErrLayoutMismatch)

	_, err = m.MapPhysical(make([]float64, 3))
	assert.ErrorIs(t, err, labels.ErrLayoutMismatch)

	_, err = labels.NewMapper(labels.Profile{Size: 3})
	assert.ErrorIs(t, err, labels.ErrUnsupportedSize)
}

func TestChannelMapping_Angles(t *testing.T) {
	cm := labels.ChannelMapping{"A1": {Theta: "0.25", Phi: "1.5"}, "B1": {Theta: "x", Phi: "0"}}
	th, ph, err := cm.Angles("A1")
	require.NoError(t, err)
	assert.Equal(t, 0.25, th)
	assert.Equal(t, 1.5, ph)

	_, _, err = cm.Angles("C1")
	assert.ErrorIs(t, err, labels.ErrUnknownLabel)
	_, _, err = cm.Angles("B1")
	assert.Error(t, err)
	assert.Equal(t, []string{"A1", "B1"}, cm.Labels())
}
