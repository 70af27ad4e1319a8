package state

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-cha/drumsynth/pkg/framework/param"
)

func newRegistry(t *testing.T) *param.Registry {
	t.Helper()
	r := param.NewRegistry()
	require.NoError(t, r.Add(
		param.New(0, "Gain").Key("gain").Range(-30, 6).Default(-6).Build(),
		param.New(1, "Level").Key("level").Range(0, 1).Default(0.8).Build(),
	))
	return r
}

func TestSaveLoadRoundTrip(t *testing.T) {
	src := newRegistry(t)
	src.Get(0).SetValue(0.25)
	src.Get(1).SetValue(0.9)

	var buf bytes.Buffer
	require.NoError(t, NewManager(src).Save(&buf))
	assert.Equal(t, Magic, string(buf.Bytes()[:len(Magic)]))

	dst := newRegistry(t)
	require.NoError(t, NewManager(dst).Load(&buf))
	assert.Equal(t, 0.25, dst.Get(0).GetValue())
	assert.Equal(t, 0.9, dst.Get(1).GetValue())
}

func TestLoadIgnoresUnknownIDs(t *testing.T) {
	wide := newRegistry(t)
	require.NoError(t, wide.Add(param.New(7, "Extra").Key("extra").Build()))
	wide.Get(1).SetValue(0.1)

	var buf bytes.Buffer
	require.NoError(t, NewManager(wide).Save(&buf))

	narrow := newRegistry(t)
	require.NoError(t, NewManager(narrow).Load(&buf))
	assert.Equal(t, 0.1, narrow.Get(1).GetValue())
}

func TestLoadTruncatedLeavesRegistryUntouched(t *testing.T) {
	src := newRegistry(t)
	src.Get(0).SetValue(0.9)
	src.Get(1).SetValue(0.9)

	var buf bytes.Buffer
	require.NoError(t, NewManager(src).Save(&buf))
	// magic, version and count, then one (id, value) entry
	cut := len(Magic) + 8 + 12

	dst := newRegistry(t)
	dst.Get(0).SetValue(0.1)
	dst.Get(1).SetValue(0.1)

	tests := []struct {
		name string
		blob []byte
	}{
		{"after first entry", buf.Bytes()[:cut]},
		{"inside second entry", buf.Bytes()[:cut+5]},
		{"before custom marker", buf.Bytes()[:buf.Len()-4]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewManager(dst).Load(bytes.NewReader(tt.blob))
			require.Error(t, err)
			assert.Equal(t, 0.1, dst.Get(0).GetValue())
			assert.Equal(t, 0.1, dst.Get(1).GetValue())
		})
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	err := NewManager(newRegistry(t)).Load(bytes.NewReader([]byte("VST3GO\x01\x00\x00\x00")))
	assert.ErrorIs(t, err, ErrInvalidFormat)

	err = NewManager(newRegistry(t)).Load(bytes.NewReader([]byte("DR")))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(Magic)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, Version+1))

	err := NewManager(newRegistry(t)).Load(&buf)
	assert.ErrorIs(t, err, ErrVersionTooNew)
}

func TestCustomState(t *testing.T) {
	src := newRegistry(t)
	m := NewManager(src)
	m.SetCustomState(func(w io.Writer) error {
		return binary.Write(w, binary.LittleEndian, uint8(36))
	}, nil)

	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))

	var got uint8
	dst := NewManager(newRegistry(t))
	dst.SetCustomState(nil, func(r io.Reader) error {
		return binary.Read(r, binary.LittleEndian, &got)
	})
	require.NoError(t, dst.Load(&buf))
	assert.Equal(t, uint8(36), got)
}
