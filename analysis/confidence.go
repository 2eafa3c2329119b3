package analysis

import "github.com/dilm-seo/ia-analyste/types"

// ConfidencePolicy recalibrates a raw confidence score before it is
// placed on a signal. Which curve is "correct" varies between
// deployments, so the policy is injected rather than fixed.
type ConfidencePolicy interface {
	Recalibrate(raw float64, impact types.Impact) float64
}

// ClampPolicy bounds confidence to [0,1] and changes nothing else.
// This is the default.
type ClampPolicy struct{}

func (ClampPolicy) Recalibrate(raw float64, _ types.Impact) float64 {
	return clamp(raw)
}

// ImpactBandPolicy biases confidence toward impact-conditioned bands:
// scores land in [0.6, 0.95], values above 0.9 are pulled back toward
// it, and anything but high impact caps the result at 0.8.
type ImpactBandPolicy struct{}

func (ImpactBandPolicy) Recalibrate(raw float64, impact types.Impact) float64 {
	value := clamp(raw)
	if value > 0.9 {
		value = 0.9 + (value-0.9)*0.5
	}
	if impact != types.ImpactHigh && value > 0.8 {
		value = 0.8
	}
	if value < 0.6 {
		value = 0.6
	}
	if value > 0.95 {
		value = 0.95
	}
	return value
}
