package core

// Timer represents a millisecond deadline polled from the boot loop
type Timer struct {
	Deadline uint64
	Handler  func(*Timer) uint8
	Next     *Timer
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

var (
	timerList *Timer
)

// ScheduleTimer adds a timer to the schedule
func ScheduleTimer(t *Timer) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	insertTimer(t)
}

// ScheduleAfter arms t to fire ms milliseconds from now
func ScheduleAfter(t *Timer, ms uint64) {
	t.Deadline = NowMs() + ms
	ScheduleTimer(t)
}

// CancelTimer removes t from the schedule if present
func CancelTimer(t *Timer) bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	for p := &timerList; *p != nil; p = &(*p).Next {
		if *p == t {
			*p = t.Next
			t.Next = nil
			return true
		}
	}
	return false
}

// insertTimer inserts a timer in sorted order by Deadline.
// Timers with equal deadlines fire in insertion order.
func insertTimer(t *Timer) {
	if timerList == nil || t.Deadline < timerList.Deadline {
		t.Next = timerList
		timerList = t
		return
	}

	current := timerList
	for current.Next != nil && current.Next.Deadline <= t.Deadline {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

// TimerDispatch runs every timer whose Deadline is at or before now
func TimerDispatch(now uint64) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	for timerList != nil && timerList.Deadline <= now {
		timer := timerList
		timerList = timer.Next
		timer.Next = nil // Clear Next pointer to avoid circular references

		prev := timer.Deadline
		result := timer.Handler(timer)

		// A late periodic timer runs again in this pass until it catches
		// up; a reschedule that does not advance Deadline is dropped
		if result == SF_RESCHEDULE && timer.Deadline > prev {
			insertTimer(timer)
		}
	}
}
