package core

import "testing"

func TestTimerDispatchOrder(t *testing.T) {
	resetClockState(t)

	var fired []int
	handler := func(id int) func(*Timer) uint8 {
		return func(*Timer) uint8 {
			fired = append(fired, id)
			return SF_DONE
		}
	}

	ScheduleTimer(&Timer{Deadline: 30, Handler: handler(3)})
	ScheduleTimer(&Timer{Deadline: 10, Handler: handler(1)})
	ScheduleTimer(&Timer{Deadline: 20, Handler: handler(2)})
	ScheduleTimer(&Timer{Deadline: 20, Handler: handler(22)})

	TimerDispatch(5)
	if len(fired) != 0 {
		t.Fatalf("Timers fired early: %v", fired)
	}

	TimerDispatch(20)
	expected := []int{1, 2, 22}
	if len(fired) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, fired)
	}
	for i := range expected {
		if fired[i] != expected[i] {
			t.Errorf("Expected %v, got %v", expected, fired)
			break
		}
	}

	TimerDispatch(100)
	if len(fired) != 4 || fired[3] != 3 {
		t.Errorf("Expected last timer to fire, got %v", fired)
	}
	if timerList != nil {
		t.Error("Timer list not empty")
	}
}

func TestTimerReschedule(t *testing.T) {
	resetClockState(t)

	count := 0
	periodic := &Timer{Deadline: 10}
	periodic.Handler = func(tm *Timer) uint8 {
		count++
		tm.Deadline += 10
		return SF_RESCHEDULE
	}
	ScheduleTimer(periodic)

	TimerDispatch(35)
	if count != 3 {
		t.Errorf("Expected 3 runs up to 35 ms, got %d", count)
	}
	if timerList != periodic || periodic.Deadline != 40 {
		t.Errorf("Expected timer rescheduled at 40, got %d", periodic.Deadline)
	}
}

func TestTimerRescheduleCatchesUp(t *testing.T) {
	resetClockState(t)

	var runs []uint64
	periodic := &Timer{Deadline: 1000}
	periodic.Handler = func(tm *Timer) uint8 {
		runs = append(runs, tm.Deadline)
		tm.Deadline += 1000
		return SF_RESCHEDULE
	}
	other := 0
	ScheduleTimer(periodic)
	ScheduleTimer(&Timer{Deadline: 2500, Handler: func(*Timer) uint8 { other++; return SF_DONE }})

	// One dispatch after a long stall, as with a second-resolution clock
	TimerDispatch(4000)

	expected := []uint64{1000, 2000, 3000, 4000}
	if len(runs) != len(expected) {
		t.Fatalf("Expected runs at %v, got %v", expected, runs)
	}
	for i := range expected {
		if runs[i] != expected[i] {
			t.Errorf("Expected runs at %v, got %v", expected, runs)
			break
		}
	}
	if other != 1 {
		t.Errorf("Expected the one-shot timer to fire once, got %d", other)
	}
	if timerList != periodic || periodic.Deadline != 5000 {
		t.Errorf("Expected timer rescheduled at 5000, got %d", periodic.Deadline)
	}
}

func TestTimerRescheduleWithoutAdvanceIsDropped(t *testing.T) {
	resetClockState(t)

	count := 0
	ScheduleTimer(&Timer{Deadline: 10, Handler: func(*Timer) uint8 {
		count++
		return SF_RESCHEDULE
	}})

	TimerDispatch(10)
	if count != 1 {
		t.Errorf("Expected one run, got %d", count)
	}
	if timerList != nil {
		t.Error("Timer that did not advance its deadline stayed scheduled")
	}
}

func TestCancelTimer(t *testing.T) {
	resetClockState(t)

	a := &Timer{Deadline: 10, Handler: func(*Timer) uint8 { return SF_DONE }}
	b := &Timer{Deadline: 20, Handler: func(*Timer) uint8 {
		t.Error("Cancelled timer fired")
		return SF_DONE
	}}
	ScheduleTimer(a)
	ScheduleTimer(b)

	if !CancelTimer(b) {
		t.Error("CancelTimer returned false for scheduled timer")
	}
	if CancelTimer(b) {
		t.Error("CancelTimer returned true for unscheduled timer")
	}
	TimerDispatch(100)
}

func TestScheduleAfter(t *testing.T) {
	resetClockState(t)
	now := fakeClock(t)
	*now = 500

	fired := false
	tm := &Timer{Handler: func(*Timer) uint8 { fired = true; return SF_DONE }}
	ScheduleAfter(tm, 250)

	if tm.Deadline != 750 {
		t.Errorf("Expected deadline 750, got %d", tm.Deadline)
	}

	*now = 749
	ProcessTimers()
	if fired {
		t.Error("Timer fired before deadline")
	}

	*now = 750
	ProcessTimers()
	if !fired {
		t.Error("Timer did not fire at deadline")
	}
}

func TestMillisleep(t *testing.T) {
	resetClockState(t)

	now := uint64(1000)
	reads := 0
	InstallClock(NewFallbackClock(func() uint64 {
		reads++
		now++
		return now
	}))

	Millisleep(20)

	if now < 1020 {
		t.Errorf("Returned after %d ms", now-1000)
	}
	if GetTime() < 1021 {
		t.Errorf("GetTime went backwards: %d", GetTime())
	}
	if reads > 25 {
		t.Errorf("Expected about 21 clock reads, got %d", reads)
	}
}
