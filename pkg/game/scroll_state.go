package game

// ScrollMode 页面滚动模式
type ScrollMode int

const (
	// ScrollLocked 锁定，不可滚动（除 Phase2 / EndGamePopup 之外的全部场景）
	ScrollLocked ScrollMode = iota
	// ScrollFree 自由纵向滚动，无横向滚动
	ScrollFree
)

// String 返回滚动模式名称
func (m ScrollMode) String() string {
	if m == ScrollFree {
		return "free"
	}
	return "locked"
}

// ScrollState 页面滚动状态
// 只有 SceneController 可以修改，其余组件拿到的都是副本
type ScrollState struct {
	Mode           ScrollMode
	Offset         float64 // 当前纵向偏移（像素或行）
	MaxOffset      float64 // 最大偏移，由渲染层根据内容高度提供
	ClosingOffset  float64 // 结尾段落开始的偏移
	ClosingReached bool    // 是否已经滚动到结尾段落
	extentKnown    bool
}

func (s *ScrollState) lock() {
	s.Mode = ScrollLocked
	s.Offset = 0
}

func (s *ScrollState) unlock() {
	s.Mode = ScrollFree
}

// setExtent 更新内容范围，偏移超出时夹紧
func (s *ScrollState) setExtent(maxOffset, closingOffset float64) {
	if maxOffset < 0 {
		maxOffset = 0
	}
	if closingOffset < 0 {
		closingOffset = 0
	}
	if closingOffset > maxOffset {
		closingOffset = maxOffset
	}
	s.MaxOffset = maxOffset
	s.ClosingOffset = closingOffset
	s.extentKnown = true
	s.Offset = clamp(s.Offset, 0, s.MaxOffset)
	s.refreshClosing()
}

// scrollBy 在自由模式下滚动 delta，返回实际偏移
func (s *ScrollState) scrollBy(delta float64) float64 {
	if s.Mode != ScrollFree {
		return s.Offset
	}
	s.Offset = clamp(s.Offset+delta, 0, s.MaxOffset)
	s.refreshClosing()
	return s.Offset
}

// refreshClosing 结尾段落一旦到达就保持已到达
func (s *ScrollState) refreshClosing() {
	if s.extentKnown && s.Mode == ScrollFree && s.Offset >= s.ClosingOffset {
		s.ClosingReached = true
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
