package pbp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Variant describes the period structure of one sport code.
type Variant struct {
	Code              string
	RegulationPeriods int
	PeriodLength      float64
	OvertimeLength    float64
}

var (
	// MensVariant plays two 20 minute halves.
	MensVariant = Variant{Code: "MBB", RegulationPeriods: 2, PeriodLength: 1200, OvertimeLength: 300}
	// WomensVariant plays four 10 minute quarters.
	WomensVariant = Variant{Code: "WBB", RegulationPeriods: 4, PeriodLength: 600, OvertimeLength: 300}
)

// VariantFor resolves a sport code such as "MBB" or "WBB".
func VariantFor(code string) (Variant, error) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case MensVariant.Code:
		return MensVariant, nil
	case WomensVariant.Code:
		return WomensVariant, nil
	}
	return Variant{}, fmt.Errorf("unknown sport code %q", code)
}

// RegulationLength is the length of a game without overtime, in seconds.
func (v Variant) RegulationLength() float64 {
	return float64(v.RegulationPeriods) * v.PeriodLength
}

// IsOvertime reports whether the period is past regulation.
func (v Variant) IsOvertime(period int) bool {
	return period > v.RegulationPeriods
}

// Elapsed converts the countdown clock of a period into seconds since tip-off.
func (v Variant) Elapsed(period int, remaining float64) float64 {
	var elapsed float64
	if period <= v.RegulationPeriods {
		elapsed = float64(period-1)*v.PeriodLength + (v.PeriodLength - remaining)
	} else {
		ot := period - v.RegulationPeriods
		elapsed = v.RegulationLength() + float64(ot-1)*v.OvertimeLength + (v.OvertimeLength - remaining)
	}
	return math.Round(elapsed*100) / 100
}

// ParseClock reads a countdown clock written as MM:SS, MM:SS:cc or MM:SS.cc
// and returns the seconds remaining.
func ParseClock(clock string) (float64, error) {
	clock = strings.TrimSpace(clock)
	parts := strings.Split(clock, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("malformed clock %q", clock)
	}

	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock %q: %w", clock, err)
	}
	seconds, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed clock %q: %w", clock, err)
	}
	total := float64(minutes)*60 + seconds

	if len(parts) == 3 {
		centis, err := strconv.Atoi(parts[2])
		if err != nil {
			return 0, fmt.Errorf("malformed clock %q: %w", clock, err)
		}
		total += float64(centis) / 100
	}
	if total < 0 {
		return 0, fmt.Errorf("negative clock %q", clock)
	}
	return total, nil
}
