package scenes

import (
	"log"

	"github.com/decker502/stay/pkg/config"
	"github.com/decker502/stay/pkg/game"
	"github.com/decker502/stay/pkg/types"
	"github.com/decker502/stay/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// NarrativeOptions NarrativeScene 的可选依赖
// 未设置的字段使用 Ebitengine 默认实现
type NarrativeOptions struct {
	Audio    *game.AudioManager
	Pointer  utils.PointerInput
	Keyboard utils.KeyboardInput
	Fonts    *FontSet
	Visual   *VisualLayer
	Width    float64
	Height   float64
	Mobile   bool
}

// NarrativeScene 全部叙事场景共用的 Ebitengine 场景
//
// 每帧：推进控制器计时器 -> 生成布局 -> 分发指针与键盘 -> 推进背景。
// 控制器是叙事状态的唯一写入者，这里只把输入翻译成控制器操作。
type NarrativeScene struct {
	controller *game.SceneController
	audio      *game.AudioManager
	visual     *VisualLayer
	fonts      *FontSet

	pointer  *utils.PointerTracker
	keyboard utils.KeyboardInput
	router   pointerRouter

	width, height float64
	mobile        bool

	layout       overlayLayout
	lastScene    types.Scene
	lastStep     stepKey
	sceneElapsed float64
	stepElapsed  float64

	dragging bool
	dragY    int
}

// stepKey 场景内 "当前一步" 的标识，变化时重新淡入
type stepKey struct {
	progression int
	refusals    int
	popup       int
}

// NewNarrativeScene 创建叙事场景
// controller 必须已经 Start()
func NewNarrativeScene(controller *game.SceneController, opts NarrativeOptions) *NarrativeScene {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = config.GameWindowWidth, config.GameWindowHeight
	}
	if opts.Pointer == nil {
		opts.Pointer = utils.NewEbitenPointerInput()
	}
	if opts.Keyboard == nil {
		opts.Keyboard = utils.NewEbitenKeyboardInput()
	}
	if opts.Fonts == nil {
		opts.Fonts = LoadFonts()
	}

	s := &NarrativeScene{
		controller: controller,
		audio:      opts.Audio,
		visual:     opts.Visual,
		fonts:      opts.Fonts,
		pointer:    utils.NewPointerTracker(opts.Pointer),
		keyboard:   opts.Keyboard,
		width:      opts.Width,
		height:     opts.Height,
		mobile:     opts.Mobile,
		lastScene:  controller.Scene(),
		lastStep:   currentStep(controller),
	}
	s.relayout()
	return s
}

func currentStep(c *game.SceneController) stepKey {
	return stepKey{progression: c.ProgressionCursor(), refusals: c.RefusalCount(), popup: c.PopupCursor()}
}

func (s *NarrativeScene) env() layoutEnv {
	return layoutEnv{
		W:            s.width,
		H:            s.height,
		Fonts:        s.fonts,
		SceneElapsed: s.sceneElapsed,
		StepElapsed:  s.stepElapsed,
		Mobile:       s.mobile,
	}
}

// relayout 根据控制器当前状态重新生成布局，并把内容范围报告给控制器
func (s *NarrativeScene) relayout() {
	s.layout = buildOverlay(s.controller, s.env())
	if s.controller.Scene().Scrollable() && s.layout.ContentHeight > 0 {
		s.controller.SetScrollExtent(s.layout.ContentHeight-s.height, s.layout.ClosingTop-s.height*0.6)
	}
}

// Update 每帧调用
func (s *NarrativeScene) Update(deltaTime float64) {
	c := s.controller
	c.Update(deltaTime)
	s.trackStep(deltaTime)
	s.relayout()

	frame := s.pointer.Update()
	consumed := s.router.route(frame, s.layout.Widgets)
	s.handleDrag(frame, consumed)
	s.handleKeys()

	// 输入可能改变了场景，重新布局保证 Draw 看到最新状态
	s.trackStep(0)
	s.relayout()

	params := c.DerivedVisualParams()
	if s.visual != nil {
		s.visual.Update(deltaTime, params)
	}
	if s.audio != nil {
		s.audio.UpdateWarmth(params.Warmth)
	}
}

// trackStep 场景或步骤变化时重置淡入计时
func (s *NarrativeScene) trackStep(deltaTime float64) {
	c := s.controller
	if scene := c.Scene(); scene != s.lastScene {
		s.lastScene = scene
		s.sceneElapsed, s.stepElapsed = 0, 0
		s.router.cancel()
		s.dragging = false
	}
	if step := currentStep(c); step != s.lastStep {
		s.lastStep = step
		s.stepElapsed = 0
	}
	s.sceneElapsed += deltaTime
	s.stepElapsed += deltaTime
}

// handleDrag 在 Phase2 空白处拖动即滚动（触摸屏）
func (s *NarrativeScene) handleDrag(frame utils.PointerFrame, consumed bool) {
	if s.controller.Scroll().Mode != game.ScrollFree || s.controller.Scene() != types.ScenePhase2 {
		s.dragging = false
		return
	}
	switch {
	case frame.JustPressed && !consumed:
		s.dragging, s.dragY = true, frame.Y
	case frame.Pressed && s.dragging:
		s.controller.ScrollBy(float64(s.dragY - frame.Y))
		s.dragY = frame.Y
	case !frame.Pressed:
		s.dragging = false
	}
}

func (s *NarrativeScene) handleKeys() {
	c := s.controller
	k := s.keyboard

	if k.JustPressed(ebiten.KeyEnter) || k.JustPressed(ebiten.KeySpace) {
		if trigger, ok := c.PrimaryTrigger(); ok {
			c.Advance(trigger)
		}
	}
	if k.JustPressed(ebiten.KeyN) {
		if trigger, ok := c.SecondaryTrigger(); ok {
			c.Advance(trigger)
		}
	}
	if k.JustPressed(ebiten.KeyEscape) && c.Scene() == types.SceneEndGamePopup {
		c.Advance(types.TriggerPopupDismiss)
	}
	if k.JustPressed(ebiten.KeyP) {
		log.Printf("[NarrativeScene] Paused: %v", c.TogglePaused())
	}
	if k.JustPressed(ebiten.KeyD) {
		log.Printf("[NarrativeScene] Dimmed: %v", c.ToggleDimmed())
	}
	if k.JustPressed(ebiten.KeyM) && s.audio != nil {
		log.Printf("[NarrativeScene] Muted: %v", s.audio.ToggleMuted())
	}

	if c.Scene() != types.ScenePhase2 {
		return
	}
	// 按住 H 相当于按住 "Hold if you agree"
	if k.JustPressed(ebiten.KeyH) {
		c.SetHoldingAgreement(true)
	} else if c.HoldingAgreement() && !k.Pressed(ebiten.KeyH) && !s.router.isActive("agreement") {
		c.SetHoldingAgreement(false)
	}

	_, wy := k.Wheel()
	delta := -wy * config.ScrollWheelStep
	if k.Pressed(ebiten.KeyArrowDown) {
		delta += config.ScrollKeyStep / 4
	}
	if k.Pressed(ebiten.KeyArrowUp) {
		delta -= config.ScrollKeyStep / 4
	}
	if k.JustPressed(ebiten.KeyPageDown) {
		delta += s.height * 0.8
	}
	if k.JustPressed(ebiten.KeyPageUp) {
		delta -= s.height * 0.8
	}
	if delta != 0 {
		c.ScrollBy(delta)
	}
}

// Draw 绘制背景与界面
func (s *NarrativeScene) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	params := s.controller.DerivedVisualParams()
	if s.visual != nil {
		s.visual.Draw(screen, params)
	} else {
		screen.Fill(s.controller.Palette().Background)
	}
	drawOverlay(screen, s.layout, s.fonts, s.router.active)
}

// Dispose 场景被替换或程序退出时释放资源
func (s *NarrativeScene) Dispose() {
	s.router.cancel()
	s.controller.Shutdown()
	if s.visual != nil {
		s.visual.Dispose()
	}
}

// Controller 返回场景控制器
func (s *NarrativeScene) Controller() *game.SceneController { return s.controller }
