package availability

// Reason причина, по которой слот недоступен
type Reason string

const (
	ReasonAvailable       Reason = "available"
	ReasonMissingDate     Reason = "missing_date"
	ReasonWeekdayDisabled Reason = "weekday_disabled"
	ReasonOutsideNotice   Reason = "outside_notice_window"
	ReasonSlotFull        Reason = "slot_full"
	ReasonConflictOverlap Reason = "conflict_overlap"
)

// Verdict результат проверки; Reason указывает на первую не пройденную проверку
type Verdict struct {
	Available  bool
	Reason     Reason
	ConflictID int64 // только для ReasonConflictOverlap
}

func available() Verdict {
	return Verdict{Available: true, Reason: ReasonAvailable}
}

func rejected(reason Reason) Verdict {
	return Verdict{Reason: reason}
}

// CapacityPolicy правило сравнения занятых мест с max_spots
type CapacityPolicy int

const (
	// CapacityInclusive занято <= max_spots: на границе допускается ещё одна запись
	CapacityInclusive CapacityPolicy = iota
	// CapacityStrict занято < max_spots
	CapacityStrict
)

func (p CapacityPolicy) admits(taken, maxSpots int) bool {
	if p == CapacityStrict {
		return taken < maxSpots
	}
	return taken <= maxSpots
}
