// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/calibration"
	"github.com/katalvlaran/lvmesh/labels"
	"github.com/katalvlaran/lvmesh/pipeline"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "meshctl version 0.1.0\n", out)
}

func TestDecompose_Identity(t *testing.T) {
	path := writeFile(t, "u.json", unitaryFile{Re: [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}})

	out, err := run(t, "decompose", "--unitary", path, "--size", "4")
	require.NoError(t, err)

	var cm labels.ChannelMapping
	require.NoError(t, json.Unmarshal([]byte(out), &cm))
	assert.Len(t, cm, 8)
	assert.Equal(t, "0", cm["A1"].Theta)
	assert.Equal(t, labels.BypassTheta, cm["B2"].Theta)
}

func TestDecompose_Errors(t *testing.T) {
	_, err := run(t, "decompose")
	assert.Error(t, err)

	bad := writeFile(t, "u.json", unitaryFile{Re: [][]float64{{1, 0}, {0, 1}}, Im: [][]float64{{0}}})
	_, err = run(t, "decompose", "--unitary", bad, "--size", "4")
	assert.Error(t, err)

	two := writeFile(t, "u.json", unitaryFile{Re: [][]float64{{1, 0}, {0, 1}}})
	_, err = run(t, "decompose", "--unitary", two, "--size", "4")
	assert.Error(t, err)
}

func TestCalibrateThenCurrents(t *testing.T) {
	truthR := calibration.Resistance{A: 2e-4, C: 0.8, D: 0.01}
	truthP := calibration.Phase{Amplitude: 0.5, Omega: 0.3, PhaseOffset: 0.4, Offset: 0.6, IO: calibration.Cross}
	sweep := calibration.Sweep{IO: calibration.Cross}
	for k := 0; k <= 160; k++ {
		cur := 8 * float64(k) / 160
		sweep.CurrentmA = append(sweep.CurrentmA, cur)
		sweep.VoltageV = append(sweep.VoltageV, truthR.Voltage(cur))
	}
	for _, p := range sweep.HeatingPower() {
		sweep.OpticalPower = append(sweep.OpticalPower, truthP.OpticalPower(p))
	}
	sweepPath := writeFile(t, "sweep.json", sweep)
	storePath := filepath.Join(t.TempDir(), "store.yaml")

	out, err := run(t, "calibrate", "--sweep", sweepPath, "--channel", "A1.theta", "--out", storePath)
	require.NoError(t, err)
	var fitted map[string]calibration.Channel
	require.NoError(t, json.Unmarshal([]byte(out), &fitted))
	require.Contains(t, fitted, "A1.theta")
	assert.InDelta(t, truthP.Omega, fitted["A1.theta"].Phase.Omega, 1e-6)

	store, err := calibration.LoadStore(storePath)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1.theta"}, store.IDs())

	reqPath := writeFile(t, "req.json", []pipeline.Request{
		{Channel: "A1.theta", TargetPi: 1},
		{Channel: "B1.theta", TargetPi: 1},
	})
	out, err = run(t, "currents", "--requests", reqPath, "--calibration", storePath)
	require.NoError(t, err)

	var plan pipeline.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	require.Len(t, plan.Applied, 1)
	require.Len(t, plan.Failed, 1)
	assert.Equal(t, "B1.theta", plan.Failed[0].Channel)
	assert.False(t, math.IsNaN(plan.Applied[0].CurrentmA))
	assert.Greater(t, plan.Applied[0].CurrentmA, 0.0)
}

func TestCurrents_FlagErrors(t *testing.T) {
	_, err := run(t, "currents", "--calibration", "x.yaml")
	assert.Error(t, err)

	_, err = run(t, "currents", "--mapping", "a", "--requests", "b", "--calibration", "x.yaml")
	assert.Error(t, err)
}
