package quality

import appconfig "github.com/AJaySi/AI-Writer-sub015/internal/config"

// Thresholds holds the named score cutoffs used by the gates. Injected
// rather than hard-coded so tests can tighten or loosen them.
type Thresholds struct {
	Acceptable float64
	Good       float64
	Excellent  float64
}

// DefaultThresholds returns the standard 0.7/0.8/0.9 table.
func DefaultThresholds() Thresholds {
	return Thresholds{Acceptable: 0.7, Good: 0.8, Excellent: 0.9}
}

// ThresholdsFromConfig builds thresholds from the daemon configuration.
func ThresholdsFromConfig(cfg appconfig.QualityConfig) Thresholds {
	return Thresholds{
		Acceptable: cfg.Acceptable,
		Good:       cfg.Good,
		Excellent:  cfg.Excellent,
	}
}

// Label classifies a score against the threshold table.
func (t Thresholds) Label(score float64) string {
	switch {
	case score >= t.Excellent:
		return "excellent"
	case score >= t.Good:
		return "good"
	case score >= t.Acceptable:
		return "acceptable"
	default:
		return "poor"
	}
}

// clamp bounds a score to [0, 1].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
