// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

// Effect is a cue emitted by the controller, e.g. for a key click or a bell.
type Effect int

const (
	EffectSubmit Effect = iota
	EffectNotFound
	EffectClear
	EffectComplete
	EffectAmbiguous
	EffectRecall
)

// String returns a short name for logs.
func (e Effect) String() string {
	switch e {
	case EffectSubmit:
		return "submit"
	case EffectNotFound:
		return "not_found"
	case EffectClear:
		return "clear"
	case EffectComplete:
		return "complete"
	case EffectAmbiguous:
		return "ambiguous"
	case EffectRecall:
		return "recall"
	default:
		return "unknown"
	}
}

// Effects receives cues from the controller. Implementations must not call
// back into the controller.
type Effects interface {
	Play(Effect)
}

// EffectsFunc adapts a function to Effects.
type EffectsFunc func(Effect)

// Play calls f(e).
func (f EffectsFunc) Play(e Effect) { f(e) }

// NopEffects discards every cue.
type NopEffects struct{}

// Play does nothing.
func (NopEffects) Play(Effect) {}
