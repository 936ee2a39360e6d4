package types

import "strings"

// Trigger 标识触发场景推进的控件或计时器
type Trigger int

const (
	// TriggerUnknown 未识别的触发
	TriggerUnknown Trigger = iota
	// TriggerContinue Entry 的 "Continue"
	TriggerContinue
	// TriggerProgressionTap 点击当前短句
	TriggerProgressionTap
	// TriggerYes "Yes"
	TriggerYes
	// TriggerNo "No" / "Not yet"
	TriggerNo
	// TriggerDeepDown Loyalty 的 "Deep down..."
	TriggerDeepDown
	// TriggerNotSure Affirmation 的 "I'm not sure"
	TriggerNotSure
	// TriggerSceneTimer 场景计时器到期
	TriggerSceneTimer
	// TriggerOneLastThing Phase2 结尾的 "one last thing"
	TriggerOneLastThing
	// TriggerPopupPrimary 弹窗当前步骤的主选项
	TriggerPopupPrimary
	// TriggerPopupSecondary 弹窗当前步骤的次选项（只影响文字）
	TriggerPopupSecondary
	// TriggerPopupDismiss 关闭弹窗回到 Phase2
	TriggerPopupDismiss
)

var triggerNames = map[Trigger]string{
	TriggerContinue:       "continue",
	TriggerProgressionTap: "tap",
	TriggerYes:            "yes",
	TriggerNo:             "no",
	TriggerDeepDown:       "deep-down",
	TriggerNotSure:        "not-sure",
	TriggerSceneTimer:     "timer",
	TriggerOneLastThing:   "one-last-thing",
	TriggerPopupPrimary:   "popup-primary",
	TriggerPopupSecondary: "popup-secondary",
	TriggerPopupDismiss:   "popup-dismiss",
}

// String 返回触发的脚本名称
func (t Trigger) String() string {
	if name, ok := triggerNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTrigger 将脚本名称解析为触发（用于 verify_story）
func ParseTrigger(name string) Trigger {
	key := strings.ToLower(strings.TrimSpace(name))
	for t, n := range triggerNames {
		if n == key {
			return t
		}
	}
	return TriggerUnknown
}
