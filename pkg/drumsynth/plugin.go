package drumsynth

import (
	"github.com/r-cha/drumsynth/pkg/framework/plugin"
)

// Version is the plugin version reported to hosts.
var Version = "0.1.0"

// Plugin describes the drum synth to hosts
type Plugin struct{}

// GetInfo returns plugin metadata
func (Plugin) GetInfo() plugin.Info {
	var classID [16]byte
	copy(classID[:], "rchadrumsynth000")

	return plugin.Info{
		ID:            "com.r-cha.dev.drum-synth",
		Name:          "Drum Synth",
		Version:       Version,
		Vendor:        "r-cha",
		Email:         "info@archasolutions.com",
		Category:      "Instrument",
		ClassID:       classID,
		SubCategories: []string{"Instrument", "Synth", "Drum"},
	}
}

// CreateProcessor creates a new instance of the audio processor
func (Plugin) CreateProcessor() plugin.Processor {
	return New()
}
