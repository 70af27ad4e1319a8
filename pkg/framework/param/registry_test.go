package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.AddUnit(1, "Impact")

	require.NoError(t, r.Add(
		LevelParameter(10, "tr_level", "Level", 0.8).InGroup(1).Build(),
		GainParameter(0, "gain", "Gain", -30, 6, -6).Build(),
	))

	assert.Equal(t, int32(2), r.Count())
	assert.Equal(t, uint32(10), r.GetByIndex(0).ID)
	assert.Equal(t, uint32(0), r.GetByIndex(1).ID)
	assert.Nil(t, r.GetByIndex(2))

	p, err := r.GetByKey("tr_level")
	require.NoError(t, err)
	assert.Same(t, r.Get(10), p)

	_, err = r.GetByKey("nope")
	assert.ErrorIs(t, err, ErrUnknownParameter)

	assert.Len(t, r.InUnit(1), 1)
	assert.Len(t, r.InUnit(RootUnitID), 1)
	assert.Equal(t, []Unit{{ID: 0, Name: "Root"}, {ID: 1, Name: "Impact"}}, r.Units())
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(New(1, "a").Key("a").Build()))

	assert.Error(t, r.Add(New(1, "b").Key("b").Build()), "duplicate id")
	assert.Error(t, r.Add(New(2, "c").Key("a").Build()), "duplicate key")
}

func TestRegistryResetAll(t *testing.T) {
	r := NewRegistry()
	p := LevelParameter(1, "lvl", "Level", 0.3).Build()
	require.NoError(t, r.Add(p))

	p.SetPlainValue(1)
	r.ResetAll()
	assert.InDelta(t, 0.3, p.GetPlainValue(), 1e-12)
}
