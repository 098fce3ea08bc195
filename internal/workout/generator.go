package workout

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is matched by every configuration error returned by Generate
var ErrInvalidConfiguration = errors.New("invalid configuration")

// InvalidConfigError describes which field made a configuration unusable
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return "invalid configuration: " + e.Field + " " + e.Reason
}

func (e *InvalidConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// Upper bounds keep the block arithmetic in Generate far from overflow
const (
	MaxWorkMinutes    = 24 * 60
	MaxSegmentSeconds = 24 * 60 * 60
)

// Validate reports the first problem that would stop Generate from producing a plan
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"warmup_seconds", c.WarmupSeconds},
		{"high_seconds", c.HighSeconds},
		{"low_seconds", c.LowSeconds},
		{"intervals_per_block", c.IntervalsPerBlock},
		{"block_break_seconds", c.BlockBreakSeconds},
		{"cooldown_seconds", c.CooldownSeconds},
	}
	for _, f := range fields {
		if f.value < 0 {
			return &InvalidConfigError{Field: f.name, Reason: fmt.Sprintf("must not be negative (got %d)", f.value)}
		}
	}
	if c.WorkMinutes <= 0 {
		return &InvalidConfigError{Field: "work_minutes", Reason: fmt.Sprintf("must be positive (got %d)", c.WorkMinutes)}
	}
	if c.WorkMinutes > MaxWorkMinutes {
		return &InvalidConfigError{Field: "work_minutes", Reason: fmt.Sprintf("must be at most %d (got %d)", MaxWorkMinutes, c.WorkMinutes)}
	}
	for _, f := range fields {
		limit := MaxSegmentSeconds
		if f.name == "intervals_per_block" {
			// A block never holds more pairs than there are seconds of work
			limit = c.WorkMinutes * 60
		}
		if f.value > limit {
			return &InvalidConfigError{Field: f.name, Reason: fmt.Sprintf("must be at most %d (got %d)", limit, f.value)}
		}
	}

	cycle := c.HighSeconds + c.LowSeconds
	blockTotal := cycle*c.IntervalsPerBlock + c.BlockBreakSeconds
	if blockTotal == 0 {
		return &InvalidConfigError{Field: "block", Reason: "has zero length (high, low and block break durations are all 0 or there are no intervals)"}
	}

	// With no break to absorb it, leftover time shorter than a cycle never drains.
	if c.BlockBreakSeconds == 0 {
		leftover := (c.WorkMinutes * 60) % blockTotal
		if cycle > 0 {
			leftover %= cycle
		}
		if leftover > 0 {
			return &InvalidConfigError{
				Field:  "block_break_seconds",
				Reason: fmt.Sprintf("is 0 so the final %ds of work time cannot be filled by whole %ds high/low cycles", leftover, cycle),
			}
		}
	}
	return nil
}

// Generate turns a configuration into the ordered segment plan.
// Zero-length segments are left out. The summed high, low and break time
// always equals WorkMinutes*60; a final partial block is padded with a
// truncated break to get there.
func Generate(cfg Config) (Plan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	plan := make(Plan, 0, estimateSegments(cfg))
	push := func(label string, seconds int, kind Kind) {
		if seconds > 0 {
			plan = append(plan, Segment{Label: label, DurationSeconds: seconds, Kind: kind})
		}
	}

	push(LabelWarmup, cfg.WarmupSeconds, KindWarmup)

	remaining := cfg.WorkMinutes * 60
	cycle := cfg.HighSeconds + cfg.LowSeconds
	blockWork := cycle * cfg.IntervalsPerBlock
	blockTotal := blockWork + cfg.BlockBreakSeconds

	for remaining > 0 {
		if remaining >= blockTotal {
			for k := 0; k < cfg.IntervalsPerBlock; k++ {
				push(LabelHigh, cfg.HighSeconds, KindHigh)
				push(LabelLow, cfg.LowSeconds, KindLow)
			}
			push(LabelBreak, cfg.BlockBreakSeconds, KindBreak)
			remaining -= blockTotal
			continue
		}

		// Partial block: whole pairs that fit, then whatever break time is left.
		for k := 0; k < cfg.IntervalsPerBlock && remaining >= cycle; k++ {
			push(LabelHigh, cfg.HighSeconds, KindHigh)
			push(LabelLow, cfg.LowSeconds, KindLow)
			remaining -= cycle
			if cycle == 0 {
				break
			}
		}
		if remaining == 0 {
			break
		}
		if cfg.BlockBreakSeconds == 0 {
			// Validate rules this out, guard against looping forever regardless.
			return nil, &InvalidConfigError{Field: "block_break_seconds", Reason: "cannot absorb the remaining work time"}
		}
		// Leftover shorter than a cycle drains as back to back breaks.
		b := min(cfg.BlockBreakSeconds, remaining)
		push(LabelBreak, b, KindBreak)
		remaining -= b
	}

	push(LabelCooldown, cfg.CooldownSeconds, KindCooldown)
	return plan, nil
}

func estimateSegments(cfg Config) int {
	cycle := cfg.HighSeconds + cfg.LowSeconds
	if cycle <= 0 {
		return 4
	}
	return 2*(cfg.WorkMinutes*60/cycle) + 4
}
