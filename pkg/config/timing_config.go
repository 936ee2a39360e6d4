package config

import "time"

// 叙事计时配置
// 所有场景计时器都以秒为单位，由 Scheduler.Update(deltaTime) 推进
const (
	// TransitionToScrollDelay TransitionToScroll 自动进入 Phase2 的延迟（秒）
	TransitionToScrollDelay = 4.0

	// LoyaltyRevealDelay Loyalty 场景中 "Deep down..." 按钮出现前的展示时间（秒）
	// 与淡入动画的延迟一致，之前的点击被忽略
	LoyaltyRevealDelay = 3.5

	// ReassuranceDuration "I'm not sure" 之后安慰文字的显示时长（秒）
	ReassuranceDuration = 4.0

	// HeadspaceDuration headspace 方块文字的显示时长（秒）
	HeadspaceDuration = 3.0

	// CornerMessageDuration 角落交互点消息的显示时长（秒）
	CornerMessageDuration = 2.5

	// MicroMessageInterval Phase2 中微消息出现的间隔（秒）
	MicroMessageInterval = 12.0

	// MicroMessageDuration 微消息的显示时长（秒）
	MicroMessageDuration = 4.0

	// PopupResponseDuration 弹窗次选项回应的显示时长（秒）
	PopupResponseDuration = 3.0

	// WarmthTickInterval TimeOnPageFactor 的重新计算间隔（秒）
	WarmthTickInterval = 1.0
)

// WarmthCap TimeOnPageFactor 达到 1.0 所需的停留时间
const WarmthCap = 10 * time.Minute

// 安心滑块取值范围
const (
	AssuranceMin     = 0
	AssuranceMax     = 100
	AssuranceDefault = 50
)

// ClampAssurance 将滑块值限制在 [AssuranceMin, AssuranceMax]
func ClampAssurance(value int) int {
	if value < AssuranceMin {
		return AssuranceMin
	}
	if value > AssuranceMax {
		return AssuranceMax
	}
	return value
}
