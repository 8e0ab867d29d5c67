package app

// VisibleCount returns how many of total items are shown elapsed ticks into a
// reveal where item i appears at tick i*step. A negative elapsed means the
// reveal has not started.
func VisibleCount(elapsed, total, step int) int {
	if total <= 0 || elapsed < 0 {
		return 0
	}
	if step <= 0 {
		return total
	}
	return min(total, elapsed/step+1)
}

// bootDone is the tick where the boot sequence completes.
func bootDone(total int, t timings) int {
	return max(total*t.bootStep, t.bootMin)
}

// briefingDone is the tick where the last briefing line appears.
func briefingDone(total int, t timings) int {
	if total == 0 {
		return 0
	}
	return t.briefingDelay + (total-1)*t.briefingStep
}
