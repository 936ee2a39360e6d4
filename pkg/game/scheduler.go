package game

import (
	"math"
	"time"

	"github.com/decker502/stay/pkg/types"
)

// Scope 计时任务的归属范围
// 场景切换时旧场景的 Scope 会被整体取消，避免计时器在过期状态上触发
type Scope string

// ScopePage 整个访问期间有效的任务（例如 warmth 重新计算）
const ScopePage Scope = "page"

// SceneScope 返回场景专属的 Scope
func SceneScope(s types.Scene) Scope {
	return Scope("scene:" + s.String())
}

// deadlineSlack 剩余时间不超过它即视为到期
// 逐帧换算成纳秒时每帧至多有 0.5ns 的舍入误差
const deadlineSlack = time.Microsecond

// toDuration 秒转为纳秒精度的 Duration
func toDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// TaskID 计时任务的唯一标识，0 保留为无效ID
type TaskID uint64

type scheduledTask struct {
	id        TaskID
	scope     Scope
	name      string
	remaining time.Duration // 距离下次触发的时间
	interval  time.Duration // >0 表示重复任务
	fn        func()
	done      bool
}

// Scheduler 单线程计时任务调度器
//
// 时间只通过 Update(deltaTime) 推进（与 TimerComponent 一样逐帧累积，内部换算为纳秒），
// 因此同样的调用序列总是得到同样的触发顺序。
// 回调在 Update 内同步执行，可以在回调里继续 Schedule / Cancel。
type Scheduler struct {
	nextID TaskID
	tasks  []*scheduledTask
}

// NewScheduler 创建一个空的调度器
func NewScheduler() *Scheduler {
	return &Scheduler{nextID: 1}
}

// Schedule 在 delay 秒后执行一次 fn
func (s *Scheduler) Schedule(scope Scope, name string, delay float64, fn func()) TaskID {
	return s.add(scope, name, delay, 0, fn)
}

// ScheduleRepeating 每隔 interval 秒执行一次 fn，直到被取消
// interval <= 0 时不创建任务，返回 0
func (s *Scheduler) ScheduleRepeating(scope Scope, name string, interval float64, fn func()) TaskID {
	if interval <= 0 || toDuration(interval) <= 0 {
		return 0
	}
	return s.add(scope, name, interval, interval, fn)
}

func (s *Scheduler) add(scope Scope, name string, delay, interval float64, fn func()) TaskID {
	if fn == nil {
		return 0
	}
	id := s.nextID
	s.nextID++
	s.tasks = append(s.tasks, &scheduledTask{
		id:        id,
		scope:     scope,
		name:      name,
		remaining: toDuration(delay),
		interval:  toDuration(interval),
		fn:        fn,
	})
	return id
}

// Cancel 取消指定任务，返回任务是否仍在等待
func (s *Scheduler) Cancel(id TaskID) bool {
	for _, t := range s.tasks {
		if t.id == id && !t.done {
			t.done = true
			return true
		}
	}
	return false
}

// CancelScope 取消某个 Scope 下的全部任务，返回取消数量
func (s *Scheduler) CancelScope(scope Scope) int {
	n := 0
	for _, t := range s.tasks {
		if t.scope == scope && !t.done {
			t.done = true
			n++
		}
	}
	return n
}

// CancelAll 取消全部任务（卸载时调用）
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.done = true
	}
	s.tasks = s.tasks[:0]
}

// Pending 返回某个 Scope 下仍在等待的任务数
func (s *Scheduler) Pending(scope Scope) int {
	n := 0
	for _, t := range s.tasks {
		if t.scope == scope && !t.done {
			n++
		}
	}
	return n
}

// IsPending 检查任务是否仍在等待
func (s *Scheduler) IsPending(id TaskID) bool {
	for _, t := range s.tasks {
		if t.id == id {
			return !t.done
		}
	}
	return false
}

// Update 推进 deltaTime 秒并执行到期任务
// 本次 Update 中新加入的任务不会被推进
func (s *Scheduler) Update(deltaTime float64) {
	if deltaTime < 0 {
		deltaTime = 0
	}

	step := toDuration(deltaTime)

	snapshot := make([]*scheduledTask, len(s.tasks))
	copy(snapshot, s.tasks)

	for _, t := range snapshot {
		if t.done {
			continue
		}
		t.remaining -= step
		if t.remaining > deadlineSlack {
			continue
		}

		if t.interval <= 0 {
			// 先标记完成，回调里可以用同名任务重新调度
			t.done = true
			t.fn()
			continue
		}

		// 重复任务：大步长时补齐错过的触发
		for t.remaining <= deadlineSlack && !t.done {
			t.fn()
			t.remaining += t.interval
		}
	}

	s.compact()
}

func (s *Scheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}
