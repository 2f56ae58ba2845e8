package cycle

import (
	"fmt"
	"time"

	"github.com/tylum123/gendercare-admin/internal/domain"
)

// Phase is the position inside a menstrual cycle.
type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulation  Phase = "ovulation"
	PhaseLuteal     Phase = "luteal"
)

// Accepted input ranges
const (
	MinCycleLength  = 21
	MaxCycleLength  = 45
	MinPeriodLength = 1
	MaxPeriodLength = 10

	// lutealDays is the usual distance from ovulation to the next period.
	lutealDays = 14
)

const day = 24 * time.Hour

// Prediction is the calendar derived from one recorded period.
type Prediction struct {
	DayOfCycle      int       `json:"dayOfCycle"`
	Phase           Phase     `json:"phase"`
	CurrentStart    time.Time `json:"currentCycleStart"`
	NextPeriodStart time.Time `json:"nextPeriodStart"`
	NextPeriodEnd   time.Time `json:"nextPeriodEnd"`
	Ovulation       time.Time `json:"ovulationDate"`
	FertileStart    time.Time `json:"fertileWindowStart"`
	FertileEnd      time.Time `json:"fertileWindowEnd"`
	DaysUntilPeriod int       `json:"daysUntilNextPeriod"`
}

// InFertileWindow reports whether t falls inside the fertile window.
func (p Prediction) InFertileWindow(t time.Time) bool {
	d := truncate(t)
	return !d.Before(p.FertileStart) && !d.After(p.FertileEnd)
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / day)
}

// Predict projects the current cycle forward from the start of the last
// recorded period. Dates are treated as calendar days.
func Predict(lastPeriodStart time.Time, cycleLength, periodLength int, today time.Time) (Prediction, error) {
	fields := map[string]string{}
	if cycleLength < MinCycleLength || cycleLength > MaxCycleLength {
		fields["cycleLength"] = fmt.Sprintf("Cycle length must be between %d and %d days", MinCycleLength, MaxCycleLength)
	}
	if periodLength < MinPeriodLength || periodLength > MaxPeriodLength {
		fields["periodLength"] = fmt.Sprintf("Period length must be between %d and %d days", MinPeriodLength, MaxPeriodLength)
	}
	if lastPeriodStart.IsZero() {
		fields["lastPeriodStart"] = "Last period start is required"
	}

	start := truncate(lastPeriodStart)
	now := truncate(today)
	if len(fields) == 0 && now.Before(start) {
		fields["lastPeriodStart"] = "Last period start cannot be in the future"
	}
	if len(fields) > 0 {
		return Prediction{}, domain.NewValidationError(fields)
	}

	elapsed := daysBetween(start, now)
	cycles := elapsed / cycleLength
	current := start.AddDate(0, 0, cycles*cycleLength)
	dayOfCycle := elapsed%cycleLength + 1

	next := current.AddDate(0, 0, cycleLength)
	ovulation := next.AddDate(0, 0, -lutealDays)

	p := Prediction{
		DayOfCycle:      dayOfCycle,
		CurrentStart:    current,
		NextPeriodStart: next,
		NextPeriodEnd:   next.AddDate(0, 0, periodLength-1),
		Ovulation:       ovulation,
		FertileStart:    ovulation.AddDate(0, 0, -5),
		FertileEnd:      ovulation.AddDate(0, 0, 1),
		DaysUntilPeriod: daysBetween(now, next),
	}

	ovulationDay := daysBetween(current, ovulation) + 1
	switch {
	case dayOfCycle <= periodLength:
		p.Phase = PhaseMenstrual
	case dayOfCycle >= ovulationDay-1 && dayOfCycle <= ovulationDay+1:
		p.Phase = PhaseOvulation
	case dayOfCycle < ovulationDay:
		p.Phase = PhaseFollicular
	default:
		p.Phase = PhaseLuteal
	}
	return p, nil
}
