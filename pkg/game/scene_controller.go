package game

import (
	"log"
	"time"

	"github.com/decker502/stay/pkg/config"
	"github.com/decker502/stay/pkg/types"
)

// SceneChangeListener 场景切换回调（音效、日志等观察者）
type SceneChangeListener func(from, to types.Scene)

// CuriosityState "Still curious?" 的选择
type CuriosityState int

const (
	CuriosityIdle CuriosityState = iota
	CuriosityLittle
	CuriosityGood
)

// NoButtonStyle Question1 中 "No" 按钮随拒绝次数缩小、变淡
type NoButtonStyle struct {
	Label   string
	Scale   float64
	Opacity float64
}

// SceneController 叙事状态机
//
// 唯一的写入者：当前场景、各场景子状态、卡片展开状态、滚动模式、计时器。
// 所有操作都在调用方线程（UI 线程）同步完成，不是并发安全的。
// 视觉层只通过 DerivedVisualParams() 读取快照。
type SceneController struct {
	story     *config.StoryConfig
	palette   config.Palette
	clock     Clock
	scheduler *Scheduler
	warmth    *WarmthTracker
	listeners []SceneChangeListener

	started bool
	scene   types.Scene

	progressionCursor int
	refusals          int
	loyaltyReady      bool
	cards             *CardRevealState
	scroll            ScrollState
	popupCursor       int
	popupCompleted    bool

	transients       map[TransientSlot]*transientMessage
	activeHeadspace  string
	heldLine         int
	holdingAgreement bool
	curiosity        CuriosityState
	assurance        int
	microIndex       int

	paused        bool
	dimmed        bool
	reducedMotion bool
}

// Option 场景控制器选项
type Option func(*SceneController)

// WithClock 替换时钟（测试用）
func WithClock(clock Clock) Option {
	return func(c *SceneController) { c.clock = clock }
}

// WithPalette 替换调色板
func WithPalette(p config.Palette) Option {
	return func(c *SceneController) { c.palette = p }
}

// WithReducedMotion 始终放慢背景动画
func WithReducedMotion(enabled bool) Option {
	return func(c *SceneController) { c.reducedMotion = enabled }
}

// NewSceneController 创建场景控制器，调用 Start() 之后才会响应触发
func NewSceneController(story *config.StoryConfig, opts ...Option) *SceneController {
	c := &SceneController{
		story:      story,
		palette:    config.DefaultPalette(),
		clock:      SystemClock(),
		scheduler:  NewScheduler(),
		transients: make(map[TransientSlot]*transientMessage),
		heldLine:   -1,
		assurance:  config.AssuranceDefault,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnSceneChange 注册场景切换回调
func (c *SceneController) OnSceneChange(fn SceneChangeListener) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

// Start 初始化：Scene = Entry，计数归零，卡片全部收起，记录页面加载时间
// 再次调用等同于页面刷新
func (c *SceneController) Start() {
	c.scheduler.CancelAll()
	c.transients = make(map[TransientSlot]*transientMessage)

	c.started = true
	c.scene = types.SceneEntry
	c.progressionCursor = 0
	c.refusals = 0
	c.loyaltyReady = false
	c.cards = NewCardRevealState()
	c.scroll = ScrollState{}
	c.scroll.lock()
	c.popupCursor = 0
	c.popupCompleted = false
	c.activeHeadspace = ""
	c.heldLine = -1
	c.holdingAgreement = false
	c.curiosity = CuriosityIdle
	c.assurance = config.AssuranceDefault
	c.microIndex = 0

	c.warmth = NewWarmthTracker(c.clock.Now(), config.WarmthCap)
	c.scheduler.ScheduleRepeating(ScopePage, "warmth", config.WarmthTickInterval, func() {
		c.warmth.Recompute(c.clock.Now())
	})

	log.Printf("[SceneController] Started at %s", types.SceneEntry)
}

// Shutdown 取消全部计时器（卸载时调用）
func (c *SceneController) Shutdown() {
	c.scheduler.CancelAll()
	log.Printf("[SceneController] Shutdown, all timers cancelled")
}

// Update 推进计时器，deltaTime 以秒为单位
func (c *SceneController) Update(deltaTime float64) {
	if !c.started {
		return
	}
	c.scheduler.Update(deltaTime)
}

// Advance 唯一修改当前场景的入口
// 未识别或当前场景不接受的触发不产生任何效果
//
// 返回：
//   - types.Scene: 处理触发之后的场景
func (c *SceneController) Advance(trigger types.Trigger) types.Scene {
	if !c.started {
		log.Printf("[SceneController] Ignoring %s before Start()", trigger)
		return c.scene
	}

	handled := true
	switch c.scene {
	case types.SceneEntry:
		handled = trigger == types.TriggerContinue
		if handled {
			c.enterScene(types.SceneProgression)
		}

	case types.SceneProgression:
		handled = trigger == types.TriggerProgressionTap
		if handled {
			if c.progressionCursor < len(c.story.Progression.Messages)-1 {
				c.progressionCursor++
			} else {
				c.enterScene(types.SceneQuestion1)
			}
		}

	case types.SceneQuestion1:
		switch trigger {
		case types.TriggerYes:
			c.enterScene(types.SceneLoyalty)
		case types.TriggerNo:
			c.RecordRefusal()
		default:
			handled = false
		}

	case types.SceneLoyalty:
		handled = trigger == types.TriggerDeepDown && c.loyaltyReady
		if handled {
			c.enterScene(types.SceneAffirmation)
		}

	case types.SceneAffirmation:
		switch trigger {
		case types.TriggerYes:
			c.enterScene(types.SceneTransitionToScroll)
		case types.TriggerNotSure:
			c.showTransient(SlotReassurance, c.story.Affirmation.Reassurance, config.ReassuranceDuration, nil)
		default:
			handled = false
		}

	case types.SceneTransitionToScroll:
		handled = trigger == types.TriggerSceneTimer
		if handled {
			c.enterScene(types.ScenePhase2)
		}

	case types.ScenePhase2:
		handled = trigger == types.TriggerOneLastThing && c.OneLastThingAvailable()
		if handled {
			c.enterScene(types.SceneEndGamePopup)
		}

	case types.SceneEndGamePopup:
		handled = c.advancePopup(trigger)

	default:
		handled = false
	}

	if !handled {
		log.Printf("[SceneController] Ignoring trigger %s in scene %s", trigger, c.scene)
	}
	return c.scene
}

// advancePopup 处理弹窗内的触发
func (c *SceneController) advancePopup(trigger types.Trigger) bool {
	steps := c.story.EndGame.Steps
	switch trigger {
	case types.TriggerPopupPrimary:
		if c.popupCursor < len(steps)-1 {
			c.popupCursor++
			c.hideTransient(SlotPopupResponse)
			return true
		}
		c.popupCompleted = true
		log.Printf("[SceneController] End-game sequence completed")
		c.enterScene(types.ScenePhase2)
		return true

	case types.TriggerPopupSecondary:
		if c.popupCursor < len(steps) {
			c.showTransient(SlotPopupResponse, steps[c.popupCursor].Response, config.PopupResponseDuration, nil)
		}
		return true

	case types.TriggerPopupDismiss:
		c.enterScene(types.ScenePhase2)
		return true
	}
	return false
}

// enterScene 切换场景并执行进入副作用
// 旧场景的计时器与短暂消息全部取消；滚动模式只在这里改变
func (c *SceneController) enterScene(next types.Scene) {
	prev := c.scene
	cancelled := c.scheduler.CancelScope(SceneScope(prev))
	c.clearTransients()
	c.scene = next

	if next.Scrollable() {
		c.scroll.unlock()
	} else {
		c.scroll.lock()
	}

	scope := SceneScope(next)
	switch next {
	case types.SceneProgression:
		c.progressionCursor = 0

	case types.SceneQuestion1:
		c.refusals = 0

	case types.SceneLoyalty:
		c.loyaltyReady = false
		c.scheduler.Schedule(scope, "loyalty-reveal", config.LoyaltyRevealDelay, func() {
			c.loyaltyReady = true
		})

	case types.SceneTransitionToScroll:
		c.scheduler.Schedule(scope, "auto-advance", config.TransitionToScrollDelay, func() {
			c.Advance(types.TriggerSceneTimer)
		})

	case types.ScenePhase2:
		if c.cards == nil {
			c.cards = NewCardRevealState()
		}
		c.heldLine = -1
		c.holdingAgreement = false
		if len(c.story.Micro) > 0 {
			c.scheduler.ScheduleRepeating(scope, "micro", config.MicroMessageInterval, c.showNextMicro)
		}

	case types.SceneEndGamePopup:
		c.popupCursor = 0
		c.heldLine = -1
		c.holdingAgreement = false
	}

	log.Printf("[SceneController] %s -> %s (cancelled %d timers, scroll %s)", prev, next, cancelled, c.scroll.Mode)
	for _, fn := range c.listeners {
		fn(prev, next)
	}
}

// DebugJump 直接进入指定场景（-scene 调试参数）
// 经过与正常切换相同的进入副作用
func (c *SceneController) DebugJump(scene types.Scene) {
	if !c.started {
		c.Start()
	}
	// 同场景跳转视为重新进入，计时器重新开始
	c.enterScene(scene)
}

// RecordRefusal 记录一次 "No"，只在 Question1 中有效
func (c *SceneController) RecordRefusal() {
	if c.scene != types.SceneQuestion1 {
		return
	}
	c.refusals++
}

// ToggleCard 翻转卡片展开状态
// 未知组或ID视为调用方错误：记录日志并忽略
//
// 返回：
//   - bool: 翻转后是否展开
func (c *SceneController) ToggleCard(group types.CardGroup, id string) bool {
	if !c.scene.Scrollable() || c.cards == nil {
		log.Printf("[SceneController] ToggleCard(%s, %s) outside Phase2 ignored", group, id)
		return false
	}
	if !c.story.HasCard(group, id) {
		log.Printf("[SceneController] ToggleCard: unknown card %s/%s", group, id)
		return c.cards.IsExpanded(group, id)
	}
	return c.cards.Toggle(group, id)
}

// DerivedVisualParams 返回当前的视觉参数快照，没有副作用
func (c *SceneController) DerivedVisualParams() VisualParams {
	return DeriveVisualParams(VisualInputs{
		Scene:            c.scene,
		Warmth:           c.TimeOnPageFactor(),
		Paused:           c.paused,
		Dimmed:           c.dimmed,
		ReducedMotion:    c.reducedMotion,
		HoldingAgreement: c.holdingAgreement,
	}, c.palette)
}

// ---------------------------------------------------------------------------
// 短暂消息
// ---------------------------------------------------------------------------

func (c *SceneController) showTransient(slot TransientSlot, text string, duration float64, onHide func()) {
	if text == "" {
		return
	}
	c.hideTransient(slot)
	msg := &transientMessage{text: text, onHide: onHide}
	msg.task = c.scheduler.Schedule(SceneScope(c.scene), "transient", duration, func() {
		if c.transients[slot] == msg {
			c.hideTransient(slot)
		}
	})
	c.transients[slot] = msg
}

func (c *SceneController) hideTransient(slot TransientSlot) {
	msg, ok := c.transients[slot]
	if !ok {
		return
	}
	delete(c.transients, slot)
	c.scheduler.Cancel(msg.task)
	if msg.onHide != nil {
		msg.onHide()
	}
}

func (c *SceneController) clearTransients() {
	for slot := range c.transients {
		c.hideTransient(slot)
	}
}

// Transient 返回某个位置当前显示的短暂消息
func (c *SceneController) Transient(slot TransientSlot) (string, bool) {
	msg, ok := c.transients[slot]
	if !ok {
		return "", false
	}
	return msg.text, true
}

func (c *SceneController) showNextMicro() {
	if len(c.story.Micro) == 0 {
		return
	}
	text := c.story.Micro[c.microIndex%len(c.story.Micro)]
	c.microIndex++
	c.showTransient(SlotMicro, text, config.MicroMessageDuration, nil)
}

// ---------------------------------------------------------------------------
// 只读访问
// ---------------------------------------------------------------------------

// Story 返回叙事内容
func (c *SceneController) Story() *config.StoryConfig { return c.story }

// Palette 返回视觉层调色板
func (c *SceneController) Palette() config.Palette { return c.palette }

// Scene 返回当前场景
func (c *SceneController) Scene() types.Scene { return c.scene }

// Started 返回是否已调用 Start()
func (c *SceneController) Started() bool { return c.started }

// ProgressionCursor 返回 Progression 当前短句索引
func (c *SceneController) ProgressionCursor() int { return c.progressionCursor }

// ProgressionText 返回 Progression 当前短句
func (c *SceneController) ProgressionText() string {
	msgs := c.story.Progression.Messages
	if c.progressionCursor < 0 || c.progressionCursor >= len(msgs) {
		return ""
	}
	return msgs[c.progressionCursor]
}

// RefusalCount 返回 "No" 的次数
func (c *SceneController) RefusalCount() int { return c.refusals }

// QuestionText 返回 Question1 当前显示的文字
// 0 次拒绝显示原问题，之后显示 rebuttals[(n-1) mod N]
func (c *SceneController) QuestionText() string {
	if c.refusals == 0 {
		return c.story.Question1.Prompt
	}
	rebuttals := c.story.Question1.Rebuttals
	return rebuttals[(c.refusals-1)%len(rebuttals)]
}

// NoButton 返回 "No" 按钮的文字与缩放
func (c *SceneController) NoButton() NoButtonStyle {
	n := float64(c.refusals)
	label := c.story.Question1.NoLabel
	if c.refusals > 0 {
		label = c.story.Question1.NoLabelAfter
	}
	return NoButtonStyle{
		Label:   label,
		Scale:   maxFloat(config.NoButtonMinScale, 1-n*config.NoButtonScaleStep),
		Opacity: maxFloat(config.NoButtonMinOpacity, 1-n*config.NoButtonOpacityStep),
	}
}

// LoyaltyReady 返回 "Deep down..." 是否已经可以点击
func (c *SceneController) LoyaltyReady() bool { return c.loyaltyReady }

// Scroll 返回滚动状态副本
func (c *SceneController) Scroll() ScrollState { return c.scroll }

// IsCardExpanded 检查卡片是否展开
func (c *SceneController) IsCardExpanded(group types.CardGroup, id string) bool {
	return c.cards != nil && c.cards.IsExpanded(group, id)
}

// ExpandedCards 返回组内展开的卡片ID
func (c *SceneController) ExpandedCards(group types.CardGroup) []string {
	if c.cards == nil {
		return nil
	}
	return c.cards.Expanded(group)
}

// PopupCursor 返回弹窗当前步骤索引
func (c *SceneController) PopupCursor() int { return c.popupCursor }

// PopupStep 返回弹窗当前步骤
func (c *SceneController) PopupStep() (config.PopupStep, bool) {
	steps := c.story.EndGame.Steps
	if c.scene != types.SceneEndGamePopup || c.popupCursor >= len(steps) {
		return config.PopupStep{}, false
	}
	return steps[c.popupCursor], true
}

// PopupCompleted 返回结尾弹窗序列是否已走完
func (c *SceneController) PopupCompleted() bool { return c.popupCompleted }

// OneLastThingAvailable "one last thing" 只在滚动到结尾段落后、序列未完成时提供
func (c *SceneController) OneLastThingAvailable() bool {
	return c.scene == types.ScenePhase2 && c.scroll.ClosingReached && !c.popupCompleted
}

// TimeOnPageFactor 返回最近一次计算的暖度
func (c *SceneController) TimeOnPageFactor() float64 {
	if c.warmth == nil {
		return 0
	}
	return c.warmth.Factor()
}

// ElapsedOnPage 返回自页面加载以来的时间
func (c *SceneController) ElapsedOnPage() time.Duration {
	if c.warmth == nil {
		return 0
	}
	return c.clock.Now().Sub(c.warmth.LoadedAt())
}

// Paused 返回背景动画是否暂停
func (c *SceneController) Paused() bool { return c.paused }

// Dimmed 返回背景是否调暗
func (c *SceneController) Dimmed() bool { return c.dimmed }

// PendingTimers 返回某个 Scope 下的等待任务数（调试与测试）
func (c *SceneController) PendingTimers(scope Scope) int { return c.scheduler.Pending(scope) }

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// PrimaryTrigger 返回当前场景主操作（Enter / 空格）对应的触发
// 没有可用主操作时返回 false
func (c *SceneController) PrimaryTrigger() (types.Trigger, bool) {
	switch c.scene {
	case types.SceneEntry:
		return types.TriggerContinue, true
	case types.SceneProgression:
		return types.TriggerProgressionTap, true
	case types.SceneQuestion1, types.SceneAffirmation:
		return types.TriggerYes, true
	case types.SceneLoyalty:
		return types.TriggerDeepDown, c.loyaltyReady
	case types.ScenePhase2:
		return types.TriggerOneLastThing, c.OneLastThingAvailable()
	case types.SceneEndGamePopup:
		return types.TriggerPopupPrimary, true
	}
	return types.TriggerUnknown, false
}

// SecondaryTrigger 返回当前场景次操作对应的触发（"No" / "I'm not sure" / 弹窗次选项）
func (c *SceneController) SecondaryTrigger() (types.Trigger, bool) {
	switch c.scene {
	case types.SceneQuestion1:
		return types.TriggerNo, true
	case types.SceneAffirmation:
		return types.TriggerNotSure, true
	case types.SceneEndGamePopup:
		if step, ok := c.PopupStep(); ok && step.Secondary != "" {
			return types.TriggerPopupSecondary, true
		}
	}
	return types.TriggerUnknown, false
}
