package preset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-cha/drumsynth/pkg/framework/param"
)

func testRegistry(t *testing.T) *param.Registry {
	t.Helper()
	reg := param.NewRegistry()
	require.NoError(t, reg.Add(
		param.GainParameter(0, "gain", "Gain", -30, 6, -6).Build(),
		param.FrequencyParameter(1, "tone", "Tone", 100, 5000, 500).Build(),
		param.New(2, "Tension").Key("tension").Range(5, 200).Step(1).Default(44).Build(),
		param.New(3, "Internal").Build(),
	))
	return reg
}

func TestFromRegistrySkipsUnkeyed(t *testing.T) {
	p := FromRegistry("init", testRegistry(t))

	assert.Equal(t, "init", p.Name)
	assert.Len(t, p.Params, 3)
	assert.InDelta(t, -6, p.Params["gain"], 1e-9)
	assert.InDelta(t, 500, p.Params["tone"], 1e-9)
	assert.Equal(t, 44.0, p.Params["tension"])
}

func TestSaveLoadApply(t *testing.T) {
	reg := testRegistry(t)
	mustKey(t, reg, "gain").SetPlainValue(-12)
	mustKey(t, reg, "tension").SetPlainValue(100)

	path := filepath.Join(t.TempDir(), "kits", "deep.yaml")
	require.NoError(t, FromRegistry("deep", reg).Save(path))

	fresh := testRegistry(t)
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "deep", p.Name)
	require.NoError(t, p.Apply(fresh))

	assert.InDelta(t, -12, mustKey(t, fresh, "gain").GetPlainValue(), 1e-9)
	assert.Equal(t, 100.0, mustKey(t, fresh, "tension").GetPlainValue())
	assert.InDelta(t, 500, mustKey(t, fresh, "tone").GetPlainValue(), 1e-9)
}

func TestMarshalSortsKeys(t *testing.T) {
	p := &Preset{Name: "x", Params: map[string]float64{"b": 2, "a": 1}}
	data, err := p.Marshal()
	require.NoError(t, err)
	assert.Equal(t, "name: x\nparams:\n  a: 1\n  b: 2\n", string(data))
}

func TestApplyUnknownKey(t *testing.T) {
	reg := testRegistry(t)
	p := &Preset{Name: "odd", Params: map[string]float64{"gain": 0, "wobble": 1}}

	err := p.Apply(reg)
	require.ErrorIs(t, err, param.ErrUnknownParameter)
	assert.Contains(t, err.Error(), "wobble")
	assert.InDelta(t, 0, mustKey(t, reg, "gain").GetPlainValue(), 1e-9, "known keys still applied")
}

func TestApplyClamps(t *testing.T) {
	reg := testRegistry(t)
	p := &Preset{Params: map[string]float64{"gain": 50, "tension": 1}}
	require.NoError(t, p.Apply(reg))

	assert.Equal(t, 6.0, mustKey(t, reg, "gain").GetPlainValue())
	assert.Equal(t, 5.0, mustKey(t, reg, "tension").GetPlainValue())
}

func TestLoadDefaultsName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tight-snare.yaml")
	require.NoError(t, os.WriteFile(path, []byte("params:\n  gain: -3\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tight-snare", p.Name)

	require.NoError(t, os.WriteFile(path, []byte("params: [1, 2"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.yaml")
	require.NoError(t, (&Preset{Name: "v1", Params: map[string]float64{"gain": -6}}).Save(path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := NewWatcher(path, nil).Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, (&Preset{Name: "v2", Params: map[string]float64{"gain": 3}}).Save(path))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case p := <-updates:
			require.NotNil(t, p)
			if p.Name != "v2" {
				continue
			}
			assert.Equal(t, 3.0, p.Params["gain"])

			cancel()
			for range updates {
			}
			return
		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}
}

func mustKey(t *testing.T, reg *param.Registry, key string) *param.Parameter {
	t.Helper()
	p, err := reg.GetByKey(key)
	require.NoError(t, err)
	return p
}
