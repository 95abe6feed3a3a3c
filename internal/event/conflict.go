package event

import "time"

// IntervalConflicts reproduces the conflict rule applied when a malleable
// event is moved into [newStart, newEnd) against one fixed event
// [fixedStart, fixedEnd). A conflict exists when:
//
//	(a) the new interval starts inside the fixed one, or
//	(b) the new interval ends inside the fixed one, or
//	(c) the new interval fully contains the fixed one.
//
// The symmetric containment case (fixed contains new) looks missing but is
// already covered by clause (a): if the fixed event strictly contains the
// new interval, the new start necessarily lands inside it. The three-clause
// form is kept verbatim for behavioral compatibility; see the property test.
func IntervalConflicts(fixedStart, fixedEnd, newStart, newEnd time.Time) bool {
	startsInside := !newStart.Before(fixedStart) && newStart.Before(fixedEnd)
	endsInside := newEnd.After(fixedStart) && !newEnd.After(fixedEnd)
	containsFixed := !fixedStart.Before(newStart) && !fixedEnd.After(newEnd)
	return startsInside || endsInside || containsFixed
}
