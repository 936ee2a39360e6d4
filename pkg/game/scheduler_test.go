package game

import "testing"

func TestSchedulerOneShot(t *testing.T) {
	s := NewScheduler()
	fired := 0
	id := s.Schedule(ScopePage, "once", 1.0, func() { fired++ })

	s.Update(0.5)
	if fired != 0 {
		t.Fatalf("fired too early")
	}
	if !s.IsPending(id) {
		t.Error("task should still be pending")
	}

	s.Update(0.5)
	s.Update(5)
	if fired != 1 {
		t.Errorf("expected one-shot to fire once, fired %d", fired)
	}
	if s.IsPending(id) {
		t.Error("task should no longer be pending")
	}
}

func TestSchedulerRepeating(t *testing.T) {
	tests := []struct {
		name   string
		steps  []float64
		expect int
	}{
		{"逐帧推进", []float64{0.5, 0.5, 0.5, 0.5}, 2},
		{"大步长补齐", []float64{3.0}, 3},
		{"不足一个周期", []float64{0.9}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler()
			fired := 0
			s.ScheduleRepeating(ScopePage, "tick", 1.0, func() { fired++ })
			for _, dt := range tt.steps {
				s.Update(dt)
			}
			if fired != tt.expect {
				t.Errorf("fired %d times, want %d", fired, tt.expect)
			}
		})
	}
}

// TestSchedulerSplitDeadline 延迟被拆成多次 Update 时恰好在到期那一帧触发
func TestSchedulerSplitDeadline(t *testing.T) {
	frames := func(n int, dt float64) []float64 {
		steps := make([]float64, n)
		for i := range steps {
			steps[i] = dt
		}
		return steps
	}

	tests := []struct {
		name  string
		delay float64
		steps []float64
		fire  bool
	}{
		{"4 秒拆成 3.9 + 0.1", 4.0, []float64{3.9, 0.1}, true},
		{"4 秒按 60fps 推进", 4.0, frames(240, 1.0/60), true},
		{"4 秒差一帧", 4.0, frames(239, 1.0/60), false},
		{"3.5 秒拆成三段", 3.5, []float64{1.2, 1.2, 1.1}, true},
		{"3.5 秒拆成五段", 3.5, frames(5, 0.7), true},
		{"1 秒拆成三等份", 1.0, frames(3, 1.0/3), true},
		{"差 1 毫秒不触发", 4.0, []float64{3.9, 0.099}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler()
			fired := false
			s.Schedule(ScopePage, "deadline", tt.delay, func() { fired = true })
			for _, dt := range tt.steps {
				s.Update(dt)
			}
			if fired != tt.fire {
				t.Errorf("fired = %v, want %v", fired, tt.fire)
			}
		})
	}
}

func TestSchedulerRepeatingInvalidInterval(t *testing.T) {
	s := NewScheduler()
	if id := s.ScheduleRepeating(ScopePage, "bad", 0, func() {}); id != 0 {
		t.Errorf("expected 0 for non-positive interval, got %d", id)
	}
	if id := s.ScheduleRepeating(ScopePage, "tiny", 1e-12, func() {}); id != 0 {
		t.Errorf("expected 0 for sub-nanosecond interval, got %d", id)
	}
	if id := s.Schedule(ScopePage, "nil", 1, nil); id != 0 {
		t.Errorf("expected 0 for nil callback, got %d", id)
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	id := s.Schedule(ScopePage, "once", 1.0, func() { fired = true })

	if !s.Cancel(id) {
		t.Error("Cancel should report a pending task")
	}
	if s.Cancel(id) {
		t.Error("second Cancel should report false")
	}
	s.Update(2)
	if fired {
		t.Error("cancelled task fired")
	}
}

func TestSchedulerCancelScope(t *testing.T) {
	s := NewScheduler()
	scope := Scope("scene:TEST")
	var fired []string
	s.Schedule(scope, "a", 1, func() { fired = append(fired, "a") })
	s.ScheduleRepeating(scope, "b", 1, func() { fired = append(fired, "b") })
	s.Schedule(ScopePage, "c", 1, func() { fired = append(fired, "c") })

	if n := s.CancelScope(scope); n != 2 {
		t.Errorf("CancelScope cancelled %d, want 2", n)
	}
	if s.Pending(scope) != 0 {
		t.Error("scope should have no pending tasks")
	}
	s.Update(1)
	if len(fired) != 1 || fired[0] != "c" {
		t.Errorf("unexpected fired tasks: %v", fired)
	}
}

// TestSchedulerCallbackMutation 回调中取消其它任务、加入新任务
func TestSchedulerCallbackMutation(t *testing.T) {
	s := NewScheduler()
	var order []string
	var second TaskID
	s.Schedule(ScopePage, "first", 1, func() {
		order = append(order, "first")
		s.Cancel(second)
		s.Schedule(ScopePage, "third", 0, func() { order = append(order, "third") })
	})
	second = s.Schedule(ScopePage, "second", 1, func() { order = append(order, "second") })

	s.Update(1)
	if len(order) != 1 || order[0] != "first" {
		t.Fatalf("after first update: %v", order)
	}
	// 新加入的任务在下一次 Update 触发
	s.Update(0)
	if len(order) != 2 || order[1] != "third" {
		t.Errorf("after second update: %v", order)
	}
}

func TestSchedulerCancelAll(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.Schedule(ScopePage, "a", 1, func() { fired = true })
	s.ScheduleRepeating(SceneScope(0), "b", 1, func() { fired = true })
	s.CancelAll()
	s.Update(10)
	if fired {
		t.Error("no task should fire after CancelAll")
	}
}

func TestSchedulerNegativeDelta(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.Schedule(ScopePage, "a", 1, func() { fired = true })
	s.Update(-5)
	s.Update(0.99)
	if fired {
		t.Error("negative delta must not rewind or advance time")
	}
}
