// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "strings"

// Scene 标识当前占满屏幕的叙事视图
// 按叙事顺序排列，EndGamePopup 概念上覆盖在 Phase2 之上
type Scene int

const (
	// SceneEntry 开场（"Hey ... can you stay for a minute?"）
	SceneEntry Scene = iota
	// SceneProgression 逐条展示的短句
	SceneProgression
	// SceneQuestion1 第一个 Yes/No 问题
	SceneQuestion1
	// SceneLoyalty 忠诚陈述
	SceneLoyalty
	// SceneAffirmation 确认问题
	SceneAffirmation
	// SceneTransitionToScroll 自动过渡到长滚动页
	SceneTransitionToScroll
	// ScenePhase2 长滚动内容
	ScenePhase2
	// SceneEndGamePopup Phase2 结尾的弹窗序列
	SceneEndGamePopup
)

// AllScenes 按叙事顺序返回全部场景
func AllScenes() []Scene {
	return []Scene{
		SceneEntry,
		SceneProgression,
		SceneQuestion1,
		SceneLoyalty,
		SceneAffirmation,
		SceneTransitionToScroll,
		ScenePhase2,
		SceneEndGamePopup,
	}
}

// String 返回场景的字符串表示
func (s Scene) String() string {
	switch s {
	case SceneEntry:
		return "ENTRY"
	case SceneProgression:
		return "PROGRESSION"
	case SceneQuestion1:
		return "QUESTION_1"
	case SceneLoyalty:
		return "LOYALTY"
	case SceneAffirmation:
		return "AFFIRMATION"
	case SceneTransitionToScroll:
		return "TRANSITION_TO_SCROLL"
	case ScenePhase2:
		return "PHASE_2"
	case SceneEndGamePopup:
		return "END_GAME_POPUP"
	default:
		return "UNKNOWN"
	}
}

// Scrollable 返回该场景下页面是否允许自由纵向滚动
func (s Scene) Scrollable() bool {
	return s == ScenePhase2 || s == SceneEndGamePopup
}

// ParseScene 将字符串解析为场景（大小写不敏感，接受 "phase2" 与 "PHASE_2"）
func ParseScene(name string) (Scene, bool) {
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for _, s := range AllScenes() {
		if s.String() == key || strings.ReplaceAll(s.String(), "_", "") == key {
			return s, true
		}
	}
	return SceneEntry, false
}
