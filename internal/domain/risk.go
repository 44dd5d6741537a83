package domain

import "fmt"

// RiskLevel classifies a day's new-case count.
type RiskLevel string

const (
	RiskMinimal RiskLevel = "minimal"
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
)

// RiskThresholds are the new-case counts above which a day is classified
// into the next level. Levels are exclusive lower bounds.
type RiskThresholds struct {
	Low    int64
	Medium int64
	High   int64
}

// DefaultRiskThresholds returns the documented defaults.
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{Low: 100, Medium: 500, High: 1000}
}

// Validate requires strictly increasing, non-negative thresholds.
func (t RiskThresholds) Validate() error {
	if t.Low < 0 {
		return fmt.Errorf("low threshold must be >= 0, got %d: %w", t.Low, ErrInvalidConfig)
	}
	if t.Medium <= t.Low || t.High <= t.Medium {
		return fmt.Errorf("thresholds must be strictly increasing (low=%d medium=%d high=%d): %w",
			t.Low, t.Medium, t.High, ErrInvalidConfig)
	}
	return nil
}

// Classify maps a new-case count onto a risk level.
func (t RiskThresholds) Classify(newCases int64) RiskLevel {
	switch {
	case newCases > t.High:
		return RiskHigh
	case newCases > t.Medium:
		return RiskMedium
	case newCases > t.Low:
		return RiskLow
	default:
		return RiskMinimal
	}
}
