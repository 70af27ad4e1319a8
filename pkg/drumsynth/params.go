package drumsynth

import (
	"github.com/r-cha/drumsynth/pkg/framework/param"
)

// Parameter IDs. Saved state refers to these, so never renumber them.
const (
	ParamGain uint32 = iota

	ParamImpactAttack
	ParamImpactHold
	ParamImpactDecay
	ParamImpactRelease
	ParamImpactLevel
	ParamImpactEQFreq
	ParamImpactEQGain
	ParamImpactEQQ

	ParamTension
	ParamFeedback
	ParamDamping
	ParamResonatorLevel
	ParamResonatorEQFreq
	ParamResonatorEQGain
	ParamResonatorEQQ

	ParamSnareAttack
	ParamSnareDecay
	ParamSnareLevel
	ParamSnareEQFreq
	ParamSnareEQGain
	ParamSnareEQQ

	numParams
)

// Parameter groups, shown as sections in the editor.
const (
	UnitMaster int32 = iota + 1
	UnitImpact
	UnitTuning
	UnitSnare
)

func registerParameters(r *param.Registry) error {
	r.AddUnit(UnitMaster, "Master")
	r.AddUnit(UnitImpact, "Impact")
	r.AddUnit(UnitTuning, "Tuning")
	r.AddUnit(UnitSnare, "Snare")

	return r.Add(
		param.GainParameter(ParamGain, "gain", "Gain", -30, 6, -6).
			InGroup(UnitMaster).Build(),

		param.SecondsParameter(ParamImpactAttack, "tr_attack", "Attack", 0.0001, 0.01, 0.0005).
			ShortName("Atk").InGroup(UnitImpact).Build(),
		param.SecondsParameter(ParamImpactHold, "tr_hold", "Hold", 0, 0.01, 0).
			ShortName("Hld").InGroup(UnitImpact).Build(),
		param.SecondsParameter(ParamImpactDecay, "tr_decay", "Decay", 0.01, 0.03, 0.02).
			ShortName("Dec").InGroup(UnitImpact).Build(),
		param.SecondsParameter(ParamImpactRelease, "tr_release", "Release", 0.01, 0.03, 0.015).
			ShortName("Rel").InGroup(UnitImpact).Build(),
		param.LevelParameter(ParamImpactLevel, "tr_level", "Level", 0.8).
			ShortName("Lvl").InGroup(UnitImpact).Build(),
		param.FrequencyParameter(ParamImpactEQFreq, "tr_eq_freq", "Tone", 100, 5000, 500).
			ShortName("F").InGroup(UnitImpact).Build(),
		param.EQGainParameter(ParamImpactEQGain, "tr_eq_gain", "Tone Gain", -12, 12, 3).
			ShortName("G").InGroup(UnitImpact).Build(),
		param.QParameter(ParamImpactEQQ, "tr_eq_q", "Tone Width", 0.1, 10, 1).
			ShortName("Q").InGroup(UnitImpact).Build(),

		param.New(ParamTension, "Tension").
			Key("res_delay_samples").
			ShortName("Ten").
			Range(5, 200).
			Step(1).
			Default(44).
			Unit("samples").
			Formatter(param.SamplesFormatter, param.SamplesParser).
			InGroup(UnitTuning).
			Build(),
		param.LinearParameter(ParamFeedback, "res_feedback", "Sustain", -0.99, -0.3, -0.7).
			ShortName("Sus").InGroup(UnitTuning).Build(),
		param.LinearParameter(ParamDamping, "res_damping", "Damping", 0.1, 0.9, 0.5).
			ShortName("Dmp").InGroup(UnitTuning).Build(),
		param.LevelParameter(ParamResonatorLevel, "res_level", "Level", 0.8).
			ShortName("Lvl").InGroup(UnitTuning).Build(),
		param.FrequencyParameter(ParamResonatorEQFreq, "res_eq_freq", "Tone", 100, 5000, 800).
			ShortName("F").InGroup(UnitTuning).Build(),
		param.EQGainParameter(ParamResonatorEQGain, "res_eq_gain", "Tone Gain", -12, 12, 0).
			ShortName("G").InGroup(UnitTuning).Build(),
		param.QParameter(ParamResonatorEQQ, "res_eq_q", "Tone Width", 0.1, 10, 1).
			ShortName("Q").InGroup(UnitTuning).Build(),

		param.SecondsParameter(ParamSnareAttack, "snare_attack", "Attack", 0.0001, 0.01, 0.001).
			ShortName("Atk").InGroup(UnitSnare).Build(),
		param.SecondsParameter(ParamSnareDecay, "snare_decay", "Decay", 0.01, 0.5, 0.1).
			ShortName("Dec").InGroup(UnitSnare).Build(),
		param.LevelParameter(ParamSnareLevel, "snare_level", "Level", 0.3).
			ShortName("Lvl").InGroup(UnitSnare).Build(),
		param.FrequencyParameter(ParamSnareEQFreq, "snare_eq_freq", "Tone", 500, 10000, 2000).
			ShortName("F").InGroup(UnitSnare).Build(),
		param.EQGainParameter(ParamSnareEQGain, "snare_eq_gain", "Tone Gain", 0, 12, 6).
			ShortName("G").InGroup(UnitSnare).Build(),
		param.QParameter(ParamSnareEQQ, "snare_eq_q", "Tone Width", 0.1, 5, 1).
			ShortName("Q").InGroup(UnitSnare).Build(),
	)
}
