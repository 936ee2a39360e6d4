package game

import (
	"log"

	"github.com/decker502/stay/pkg/config"
	"github.com/decker502/stay/pkg/types"
)

// ScrollBy 在自由滚动模式下滚动，锁定时无效果
// 返回滚动后的偏移
func (c *SceneController) ScrollBy(delta float64) float64 {
	return c.scroll.scrollBy(delta)
}

// SetScrollExtent 由渲染层在布局后报告内容范围
//
// 参数：
//
//	maxOffset - 最大可滚动偏移
//	closingOffset - 结尾段落进入视野时的偏移
func (c *SceneController) SetScrollExtent(maxOffset, closingOffset float64) {
	c.scroll.setExtent(maxOffset, closingOffset)
}

// HoldLine 按住模糊句子 index，只有当前按住的一句清晰
func (c *SceneController) HoldLine(index int) {
	if c.scene != types.ScenePhase2 {
		return
	}
	if index < 0 || index >= len(c.story.Phase2.BlurredLines) {
		return
	}
	c.heldLine = index
}

// ReleaseLine 松开模糊句子
func (c *SceneController) ReleaseLine() { c.heldLine = -1 }

// HeldLine 返回当前按住的模糊句子，-1 表示没有
func (c *SceneController) HeldLine() int { return c.heldLine }

// SetHoldingAgreement 按住 "Hold if you agree"
// 按住期间背景变暖、光晕增强
func (c *SceneController) SetHoldingAgreement(holding bool) {
	if c.scene != types.ScenePhase2 {
		holding = false
	}
	c.holdingAgreement = holding
}

// HoldingAgreement 返回是否正在按住同意按钮
func (c *SceneController) HoldingAgreement() bool { return c.holdingAgreement }

// SelectHeadspace 选择 headspace 方块，显示对应句子 3 秒后自动清除
func (c *SceneController) SelectHeadspace(id string) bool {
	if c.scene != types.ScenePhase2 {
		return false
	}
	line, ok := c.story.HeadspaceLine(id)
	if !ok {
		log.Printf("[SceneController] Unknown headspace %q", id)
		return false
	}
	// 先替换旧消息（旧消息的 onHide 会清空选择），再记录新的选择
	c.showTransient(SlotHeadspace, line, config.HeadspaceDuration, func() {
		c.activeHeadspace = ""
	})
	c.activeHeadspace = id
	return true
}

// ActiveHeadspace 返回当前选中的 headspace 方块
func (c *SceneController) ActiveHeadspace() string { return c.activeHeadspace }

// SetCuriosity 设置 "Still curious?" 的选择
func (c *SceneController) SetCuriosity(state CuriosityState) {
	if c.scene != types.ScenePhase2 {
		return
	}
	if state < CuriosityIdle || state > CuriosityGood {
		return
	}
	c.curiosity = state
}

// Curiosity 返回 "Still curious?" 的选择
func (c *SceneController) Curiosity() CuriosityState { return c.curiosity }

// SetAssurance 设置安心滑块的值（夹紧到 0..100）
func (c *SceneController) SetAssurance(value int) int {
	if c.scene != types.ScenePhase2 {
		return c.assurance
	}
	c.assurance = config.ClampAssurance(value)
	return c.assurance
}

// Assurance 返回安心滑块的值
func (c *SceneController) Assurance() int { return c.assurance }

// AssuranceText 返回滑块当前值对应的文字
func (c *SceneController) AssuranceText() string {
	return c.story.AssuranceText(c.assurance)
}

// CornersVisible 角落交互点在过渡页之外的场景都可用
func (c *SceneController) CornersVisible() bool {
	return c.started && c.scene != types.SceneTransitionToScroll && len(c.story.Corners) > 0
}

// TapCorner 点击角落交互点，短暂显示对应消息
func (c *SceneController) TapCorner(id string) bool {
	if !c.CornersVisible() {
		return false
	}
	msg, ok := c.story.CornerMessage(id)
	if !ok {
		return false
	}
	c.showTransient(SlotCorner, msg, config.CornerMessageDuration, nil)
	return true
}

// TogglePaused 暂停/恢复背景动画
func (c *SceneController) TogglePaused() bool {
	c.paused = !c.paused
	log.Printf("[SceneController] Background paused=%v", c.paused)
	return c.paused
}

// ToggleDimmed 调暗/恢复背景
func (c *SceneController) ToggleDimmed() bool {
	c.dimmed = !c.dimmed
	log.Printf("[SceneController] Background dimmed=%v", c.dimmed)
	return c.dimmed
}

// SetReducedMotion 切换减少动态效果
func (c *SceneController) SetReducedMotion(enabled bool) { c.reducedMotion = enabled }
