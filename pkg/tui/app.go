// Package tui 在终端中运行同一个叙事控制器
//
// 只有事件循环所在的 goroutine 访问控制器；计时 goroutine 只负责投递
// tcell 中断事件，由事件循环把经过的时间交给控制器。
package tui

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/stay/pkg/game"
	"github.com/decker502/stay/pkg/types"
	"github.com/gdamore/tcell/v2"
)

// DefaultTickInterval 计时中断的间隔
const DefaultTickInterval = 50 * time.Millisecond

// maxFrameDelta 单次中断推进的最长时间（秒），避免挂起后一次跳过多个计时器
const maxFrameDelta = 0.25

// sliderStep 左右键调整滑块的步长
const sliderStep = 5

// App 终端前端
type App struct {
	screen     tcell.Screen
	controller *game.SceneController
	renderer   *renderer
	interval   time.Duration

	content content
	focus   int
	last    time.Time
}

// New 创建并初始化终端屏幕
func New(controller *game.SceneController) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewWithScreen(screen, controller), nil
}

// NewWithScreen 使用已初始化的屏幕（测试时传入 SimulationScreen）
func NewWithScreen(screen tcell.Screen, controller *game.SceneController) *App {
	a := &App{
		screen:     screen,
		controller: controller,
		renderer:   newRenderer(screen),
		interval:   DefaultTickInterval,
		focus:      -1,
		last:       time.Now(),
	}
	a.refresh()
	return a
}

// Run 事件循环，按 q 或 Ctrl-C 退出
func (a *App) Run() error {
	defer a.screen.Fini()

	quit := make(chan struct{})
	defer close(quit)
	go a.tick(quit)

	for {
		a.draw()

		switch ev := a.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventInterrupt:
			a.step(ev.When())
		case *tcell.EventKey:
			if !a.handle(keyToAction(ev)) {
				log.Printf("[TUI] Quit requested")
				return nil
			}
		}
	}
}

// tick 定时投递中断事件，不触碰控制器
func (a *App) tick(quit <-chan struct{}) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			postTick(a.screen)
		}
	}
}

// eventPoster tcell.Screen 中投递事件的部分
type eventPoster interface {
	PostEvent(ev tcell.Event) error
}

// postTick 投递一次计时中断
// 队列满时丢弃这一拍并记录，下一拍会补上经过的时间
func postTick(p eventPoster) bool {
	if err := p.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		log.Printf("[TUI] Dropped tick: %v", err)
		return false
	}
	return true
}

// step 推进控制器计时器与背景动画
func (a *App) step(now time.Time) {
	dt := now.Sub(a.last).Seconds()
	a.last = now
	if dt <= 0 {
		return
	}
	a.advance(min(dt, maxFrameDelta))
}

func (a *App) advance(dt float64) {
	a.controller.Update(dt)
	a.renderer.advance(dt * a.controller.DerivedVisualParams().Speed)
}

// refresh 重新生成内容并报告 Phase2 的滚动范围（以行计）
func (a *App) refresh() {
	w, _ := a.screen.Size()
	c := a.controller
	if c.Scene() != types.ScenePhase2 {
		a.focus = -1
	}
	a.content = buildContent(c, w-4, a.focus)
	if a.focus >= len(a.content.Focusables) {
		a.focus = -1
		a.content = buildContent(c, w-4, a.focus)
	}
	if a.content.Scrollable {
		viewH := a.renderer.viewHeight()
		c.SetScrollExtent(float64(len(a.content.Rows)-viewH), float64(a.content.ClosingRow-viewH/2))
	}
}

func (a *App) draw() {
	a.refresh()
	a.renderer.draw(a.controller, a.content)
}

// handle 执行一个操作，返回 false 表示退出
func (a *App) handle(action Action) bool {
	c := a.controller
	story := c.Story()
	viewH := float64(a.renderer.viewHeight())

	switch action {
	case ActionQuit:
		return false

	case ActionPrimary:
		if ref, ok := a.focused(); ok {
			c.ToggleCard(ref.Group, ref.ID)
			break
		}
		if trigger, ok := c.PrimaryTrigger(); ok {
			c.Advance(trigger)
		}

	case ActionSecondary:
		if trigger, ok := c.SecondaryTrigger(); ok {
			c.Advance(trigger)
		}

	case ActionDismiss:
		if c.Scene() == types.SceneEndGamePopup {
			c.Advance(types.TriggerPopupDismiss)
		} else {
			a.focus = -1
		}

	case ActionScrollUp:
		c.ScrollBy(-1)
	case ActionScrollDown:
		c.ScrollBy(1)
	case ActionPageUp:
		c.ScrollBy(-viewH)
	case ActionPageDown:
		c.ScrollBy(viewH)

	case ActionFocusNext, ActionFocusPrev:
		a.moveFocus(action == ActionFocusNext)

	case ActionOneLastThing:
		c.Advance(types.TriggerOneLastThing)

	case ActionHoldAgree:
		// 终端没有按键释放事件，按一次切换
		c.SetHoldingAgreement(!c.HoldingAgreement())

	case ActionHoldLine:
		next := c.HeldLine() + 1
		if next >= len(story.Phase2.BlurredLines) {
			c.ReleaseLine()
		} else {
			c.HoldLine(next)
		}

	case ActionSliderDown:
		c.SetAssurance(c.Assurance() - sliderStep)
	case ActionSliderUp:
		c.SetAssurance(c.Assurance() + sliderStep)

	case ActionCuriousLittle:
		c.SetCuriosity(game.CuriosityLittle)
	case ActionCuriousGood:
		c.SetCuriosity(game.CuriosityGood)

	case ActionTapCorner:
		if len(story.Corners) > 0 {
			c.TapCorner(story.Corners[0].ID)
		}

	case ActionPause:
		c.TogglePaused()
	case ActionDim:
		c.ToggleDimmed()

	default:
		if action >= ActionHeadspace1 {
			if i := int(action - ActionHeadspace1); i < len(story.Phase2.Headspace) {
				c.SelectHeadspace(story.Phase2.Headspace[i].ID)
			}
		}
	}

	a.refresh()
	return true
}

func (a *App) focused() (cardRef, bool) {
	if a.controller.Scene() != types.ScenePhase2 || a.focus < 0 || a.focus >= len(a.content.Focusables) {
		return cardRef{}, false
	}
	return a.content.Focusables[a.focus], true
}

// moveFocus Tab / Shift-Tab 在卡片之间移动，并滚动到可见位置
func (a *App) moveFocus(forward bool) {
	n := len(a.content.Focusables)
	if a.controller.Scene() != types.ScenePhase2 || n == 0 {
		return
	}
	switch {
	case a.focus < 0 && forward:
		a.focus = 0
	case a.focus < 0:
		a.focus = n - 1
	case forward:
		a.focus = (a.focus + 1) % n
	default:
		a.focus = (a.focus - 1 + n) % n
	}

	rowIdx := a.content.FocusRows[a.focus]
	offset := int(a.controller.Scroll().Offset)
	viewH := a.renderer.viewHeight()
	if rowIdx < offset || rowIdx >= offset+viewH {
		a.controller.ScrollBy(float64(rowIdx - offset - viewH/3))
	}
}

// Focus 返回当前聚焦卡片的下标，-1 表示无
func (a *App) Focus() int { return a.focus }
