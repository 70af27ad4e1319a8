package plugin

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUIDGeneration(t *testing.T) {
	info := Info{ID: "com.mycompany.newplugin"}

	uid1 := info.UID()
	uid2 := info.UID()
	assert.Equal(t, uid1, uid2, "UID generation must be deterministic")

	parsed := uuid.UUID(uid1)
	assert.Equal(t, uuid.Version(5), parsed.Version())
}

func TestUIDUniqueness(t *testing.T) {
	plugins := []string{
		"com.company1.plugin1",
		"com.company1.plugin2",
		"com.company2.plugin1",
		"com.different.name",
	}

	uids := make(map[[16]byte]string)
	for _, pluginID := range plugins {
		uid := Info{ID: pluginID}.UID()
		existing, exists := uids[uid]
		assert.False(t, exists, "UID collision between %s and %s", pluginID, existing)
		uids[uid] = pluginID
	}
}

func TestClassIDOverride(t *testing.T) {
	var classID [16]byte
	copy(classID[:], "rchadrumsynth000")

	info := Info{ID: "com.r-cha.dev.drum-synth", ClassID: classID}
	assert.Equal(t, classID, info.UID())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		info    Info
		wantErr bool
	}{
		{"complete", Info{ID: "com.example.plugin", Name: "Example", Version: "1.0.0"}, false},
		{"empty ID", Info{Name: "Example", Version: "1.0.0"}, true},
		{"empty name", Info{ID: "com.example.plugin", Version: "1.0.0"}, true},
		{"no version", Info{ID: "com.example.plugin", Name: "Example"}, true},
		{"bad subcategory", Info{ID: "a", Name: "b", Version: "1", SubCategories: []string{"Synth|Drum"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.info.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubCategoryString(t *testing.T) {
	info := Info{SubCategories: []string{"Instrument", "Synth", "Drum"}}
	assert.Equal(t, "Instrument|Synth|Drum", info.SubCategoryString())
}
