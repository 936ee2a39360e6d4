package game

import "time"

// TimeOnPageFactor 根据停留时间计算 [0,1] 的暖度因子
// limit <= 0 时视为已满
func TimeOnPageFactor(elapsed, limit time.Duration) float64 {
	if limit <= 0 {
		return 1.0
	}
	if elapsed <= 0 {
		return 0.0
	}
	f := float64(elapsed) / float64(limit)
	if f > 1.0 {
		return 1.0
	}
	return f
}

// WarmthTracker 保存页面加载时间与最近一次计算出的暖度
// 暖度只用于装饰（颜色、动画速度），不参与任何场景切换判断
type WarmthTracker struct {
	loadedAt time.Time
	limit    time.Duration
	factor   float64
}

// NewWarmthTracker 以页面加载时间创建暖度追踪器
func NewWarmthTracker(loadedAt time.Time, limit time.Duration) *WarmthTracker {
	return &WarmthTracker{loadedAt: loadedAt, limit: limit}
}

// Recompute 按当前时间重新计算暖度
// 时钟回拨时保持原值，保证单调不减
func (w *WarmthTracker) Recompute(now time.Time) float64 {
	f := TimeOnPageFactor(now.Sub(w.loadedAt), w.limit)
	if f > w.factor {
		w.factor = f
	}
	return w.factor
}

// Factor 返回最近一次计算的暖度
func (w *WarmthTracker) Factor() float64 {
	return w.factor
}

// LoadedAt 返回页面加载时间
func (w *WarmthTracker) LoadedAt() time.Time {
	return w.loadedAt
}
