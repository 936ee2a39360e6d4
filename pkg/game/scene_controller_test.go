package game

import (
	"testing"
	"time"

	"github.com/decker502/stay/pkg/config"
	"github.com/decker502/stay/pkg/types"
)

// driveToPhase2 按正常流程从 Entry 走到 Phase2
func driveToPhase2(t *testing.T, c *SceneController) {
	t.Helper()
	c.Advance(types.TriggerContinue)
	for i := 0; i < len(c.Story().Progression.Messages); i++ {
		c.Advance(types.TriggerProgressionTap)
	}
	c.Advance(types.TriggerYes)
	c.Update(config.LoyaltyRevealDelay)
	c.Advance(types.TriggerDeepDown)
	c.Advance(types.TriggerYes)
	c.Update(config.TransitionToScrollDelay)
	if c.Scene() != types.ScenePhase2 {
		t.Fatalf("expected Phase2, got %s", c.Scene())
	}
}

func TestSceneControllerStart(t *testing.T) {
	c, _ := newStartedController(t)

	if c.Scene() != types.SceneEntry {
		t.Errorf("Scene = %s, want ENTRY", c.Scene())
	}
	if c.ProgressionCursor() != 0 || c.RefusalCount() != 0 || c.PopupCursor() != 0 {
		t.Error("counters should start at 0")
	}
	for _, g := range types.AllCardGroups() {
		if len(c.ExpandedCards(g)) != 0 {
			t.Errorf("group %s should start collapsed", g)
		}
	}
	if c.Scroll().Mode != ScrollLocked {
		t.Error("Entry should be scroll locked")
	}
	if c.TimeOnPageFactor() != 0 {
		t.Errorf("warmth should start at 0, got %v", c.TimeOnPageFactor())
	}
}

func TestSceneControllerIgnoresTriggersBeforeStart(t *testing.T) {
	c := NewSceneController(testStory(t), WithClock(newFakeClock()))
	if got := c.Advance(types.TriggerContinue); got != types.SceneEntry {
		t.Errorf("Advance before Start moved to %s", got)
	}
	c.Update(10) // 不应 panic
}

// TestScenarioA Entry -> Progression -> Question1 -> (No, No, Yes) -> Loyalty
func TestScenarioA(t *testing.T) {
	c, _ := newStartedController(t)
	rebuttals := c.Story().Question1.Rebuttals

	if got := c.Advance(types.TriggerContinue); got != types.SceneProgression {
		t.Fatalf("continue -> %s, want PROGRESSION", got)
	}
	if c.ProgressionCursor() != 0 {
		t.Fatalf("cursor = %d, want 0", c.ProgressionCursor())
	}

	c.Advance(types.TriggerProgressionTap)
	c.Advance(types.TriggerProgressionTap)
	if c.Scene() != types.SceneProgression || c.ProgressionCursor() != 2 {
		t.Fatalf("after two taps: scene=%s cursor=%d", c.Scene(), c.ProgressionCursor())
	}
	if got := c.Advance(types.TriggerProgressionTap); got != types.SceneQuestion1 {
		t.Fatalf("third tap -> %s, want QUESTION_1", got)
	}
	if c.QuestionText() != c.Story().Question1.Prompt {
		t.Error("no refusals yet: prompt expected")
	}

	c.Advance(types.TriggerNo)
	// 第二次按 "No" 时屏幕上显示的是 rebuttals[0]
	if c.QuestionText() != rebuttals[0] {
		t.Errorf("after first No: %q, want %q", c.QuestionText(), rebuttals[0])
	}
	c.Advance(types.TriggerNo)
	if c.QuestionText() != rebuttals[1] {
		t.Errorf("after second No: %q, want %q", c.QuestionText(), rebuttals[1])
	}

	if got := c.Advance(types.TriggerYes); got != types.SceneLoyalty {
		t.Fatalf("yes -> %s, want LOYALTY", got)
	}
	if c.RefusalCount() != 2 {
		t.Errorf("RefusalCount = %d, want 2", c.RefusalCount())
	}
}

func TestRebuttalCycling(t *testing.T) {
	c, _ := newStartedController(t)
	c.DebugJump(types.SceneQuestion1)
	rebuttals := c.Story().Question1.Rebuttals

	for n := 1; n <= 3*len(rebuttals)+1; n++ {
		c.Advance(types.TriggerNo)
		want := rebuttals[(n-1)%len(rebuttals)]
		if got := c.QuestionText(); got != want {
			t.Fatalf("after %d refusals: %q, want %q", n, got, want)
		}
	}
	if c.Scene() != types.SceneQuestion1 {
		t.Errorf("No must not change scene, got %s", c.Scene())
	}
}

func TestNoButtonStyle(t *testing.T) {
	tests := []struct {
		name        string
		refusals    int
		wantLabel   string
		wantScale   float64
		wantOpacity float64
	}{
		{"初始", 0, "No", 1, 1},
		{"一次", 1, "Not yet", 0.85, 0.9},
		{"缩放下限", 10, "Not yet", 0.4, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newStartedController(t)
			c.DebugJump(types.SceneQuestion1)
			for i := 0; i < tt.refusals; i++ {
				c.Advance(types.TriggerNo)
			}
			s := c.NoButton()
			if s.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", s.Label, tt.wantLabel)
			}
			if diff := s.Scale - tt.wantScale; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Scale = %v, want %v", s.Scale, tt.wantScale)
			}
			if diff := s.Opacity - tt.wantOpacity; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Opacity = %v, want %v", s.Opacity, tt.wantOpacity)
			}
		})
	}
}

func TestRecordRefusalOutsideQuestion(t *testing.T) {
	c, _ := newStartedController(t)
	c.RecordRefusal()
	if c.RefusalCount() != 0 {
		t.Error("RecordRefusal outside Question1 must be ignored")
	}
}

func TestLoyaltyRevealDelay(t *testing.T) {
	c, _ := newStartedController(t)
	c.DebugJump(types.SceneLoyalty)

	c.Advance(types.TriggerDeepDown)
	if c.Scene() != types.SceneLoyalty {
		t.Fatal("Deep down must be ignored before the reveal delay")
	}
	c.Update(config.LoyaltyRevealDelay)
	if !c.LoyaltyReady() {
		t.Fatal("LoyaltyReady should be true after the delay")
	}
	if got := c.Advance(types.TriggerDeepDown); got != types.SceneAffirmation {
		t.Errorf("deep down -> %s, want AFFIRMATION", got)
	}
}

// TestScenarioB 卡片组之间互不影响
func TestScenarioB(t *testing.T) {
	c, _ := newStartedController(t)
	driveToPhase2(t, c)

	if !c.ToggleCard(types.CardGroupNotice, "pres") {
		t.Fatal("notice/pres should expand")
	}
	if !c.IsCardExpanded(types.CardGroupNotice, "pres") {
		t.Fatal("notice/pres should show content")
	}
	if c.ToggleCard(types.CardGroupNotice, "pres") {
		t.Fatal("second toggle should collapse")
	}
	if c.IsCardExpanded(types.CardGroupNotice, "pres") {
		t.Error("notice/pres should be back to title view")
	}

	c.ToggleCard(types.CardGroupNotice, "pres")
	c.ToggleCard(types.CardGroupPromise, "listen")
	if !c.IsCardExpanded(types.CardGroupNotice, "pres") {
		t.Error("promise toggle must not affect notice group")
	}
	if !c.IsCardExpanded(types.CardGroupPromise, "listen") {
		t.Error("promise/listen should be expanded")
	}
}

func TestToggleCardContractViolations(t *testing.T) {
	c, _ := newStartedController(t)
	if c.ToggleCard(types.CardGroupNotice, "pres") {
		t.Error("ToggleCard outside Phase2 should be a no-op")
	}

	driveToPhase2(t, c)
	if c.ToggleCard(types.CardGroupNotice, "missing") {
		t.Error("unknown id should be a no-op")
	}
	if c.ToggleCard(types.CardGroup("bogus"), "pres") {
		t.Error("unknown group should be a no-op")
	}
}

// TestScenarioC 过渡页无需操作自动进入 Phase2
func TestScenarioC(t *testing.T) {
	c, _ := newStartedController(t)
	c.DebugJump(types.SceneTransitionToScroll)

	c.Update(config.TransitionToScrollDelay - 0.1)
	if c.Scene() != types.SceneTransitionToScroll {
		t.Fatalf("advanced too early to %s", c.Scene())
	}
	c.Update(0.1)
	if c.Scene() != types.ScenePhase2 {
		t.Errorf("Scene = %s, want PHASE_2", c.Scene())
	}
	if c.Scroll().Mode != ScrollFree {
		t.Error("Phase2 should be free scrolling")
	}
}

// TestSceneTimersSplitAcrossUpdates 过渡与 Loyalty 的延迟拆成多次 Update 也按时触发
func TestSceneTimersSplitAcrossUpdates(t *testing.T) {
	t.Run("过渡页 60fps", func(t *testing.T) {
		c, _ := newStartedController(t)
		c.DebugJump(types.SceneTransitionToScroll)
		frames := int(config.TransitionToScrollDelay * 60)
		for i := 0; i < frames-1; i++ {
			c.Update(1.0 / 60)
		}
		if c.Scene() != types.SceneTransitionToScroll {
			t.Fatalf("advanced one frame early to %s", c.Scene())
		}
		c.Update(1.0 / 60)
		if c.Scene() != types.ScenePhase2 {
			t.Errorf("Scene = %s after %d frames, want PHASE_2", c.Scene(), frames)
		}
	})

	t.Run("Loyalty 分三段", func(t *testing.T) {
		c, _ := newStartedController(t)
		c.DebugJump(types.SceneLoyalty)
		c.Update(1.2)
		c.Update(1.2)
		if c.LoyaltyReady() {
			t.Fatal("LoyaltyReady too early")
		}
		c.Update(1.1)
		if !c.LoyaltyReady() {
			t.Fatal("LoyaltyReady should be true once 3.5s have elapsed")
		}
		if got := c.Advance(types.TriggerDeepDown); got != types.SceneAffirmation {
			t.Errorf("deep down -> %s, want AFFIRMATION", got)
		}
	})
}

func TestTransitionTimerCancelledOnEarlyExit(t *testing.T) {
	c, _ := newStartedController(t)
	c.DebugJump(types.SceneTransitionToScroll)
	c.Update(1)
	c.DebugJump(types.SceneEntry)

	if n := c.PendingTimers(SceneScope(types.SceneTransitionToScroll)); n != 0 {
		t.Errorf("transition timers still pending: %d", n)
	}
	c.Update(10)
	if c.Scene() != types.SceneEntry {
		t.Errorf("stale transition timer fired: scene=%s", c.Scene())
	}
}

// TestScrollModePerScene 进入每个场景后滚动模式正确
func TestScrollModePerScene(t *testing.T) {
	for _, scene := range types.AllScenes() {
		t.Run(scene.String(), func(t *testing.T) {
			c, _ := newStartedController(t)
			driveToPhase2(t, c)
			c.SetScrollExtent(1000, 800)
			c.ScrollBy(300)

			c.DebugJump(scene)
			s := c.Scroll()
			if scene == types.ScenePhase2 || scene == types.SceneEndGamePopup {
				if s.Mode != ScrollFree {
					t.Errorf("%s should be free scrolling", scene)
				}
				return
			}
			if s.Mode != ScrollLocked {
				t.Errorf("%s should be locked", scene)
			}
			if s.Offset != 0 {
				t.Errorf("%s should reset offset to 0, got %v", scene, s.Offset)
			}
			if c.ScrollBy(50) != 0 {
				t.Errorf("%s must not scroll while locked", scene)
			}
		})
	}
}

func TestScrollClamping(t *testing.T) {
	c, _ := newStartedController(t)
	driveToPhase2(t, c)
	c.SetScrollExtent(500, 400)

	if got := c.ScrollBy(-100); got != 0 {
		t.Errorf("negative scroll should clamp to 0, got %v", got)
	}
	if got := c.ScrollBy(10000); got != 500 {
		t.Errorf("scroll should clamp to max, got %v", got)
	}
	c.SetScrollExtent(200, 150)
	if got := c.Scroll().Offset; got != 200 {
		t.Errorf("shrinking extent should clamp offset, got %v", got)
	}
}

// TestDeterministicReplay 同样的触发序列总是得到同样的结果
func TestDeterministicReplay(t *testing.T) {
	script := []types.Trigger{
		types.TriggerContinue, types.TriggerYes, types.TriggerProgressionTap,
		types.TriggerProgressionTap, types.TriggerNo, types.TriggerProgressionTap,
		types.TriggerNo, types.TriggerNo, types.TriggerNotSure, types.TriggerYes,
		types.TriggerDeepDown, types.TriggerSceneTimer,
	}
	run := func() (types.Scene, int, string) {
		c, _ := newStartedController(t)
		for _, tr := range script {
			c.Advance(tr)
			c.Update(1.0 / 60)
		}
		return c.Scene(), c.RefusalCount(), c.QuestionText()
	}

	s1, r1, q1 := run()
	for i := 0; i < 5; i++ {
		s2, r2, q2 := run()
		if s1 != s2 || r1 != r2 || q1 != q2 {
			t.Fatalf("replay %d diverged: (%s,%d,%q) vs (%s,%d,%q)", i, s1, r1, q1, s2, r2, q2)
		}
	}
}

func TestUnrecognizedTriggersAreNoOps(t *testing.T) {
	tests := []struct {
		scene   types.Scene
		trigger types.Trigger
	}{
		{types.SceneEntry, types.TriggerYes},
		{types.SceneEntry, types.TriggerUnknown},
		{types.SceneProgression, types.TriggerContinue},
		{types.SceneQuestion1, types.TriggerNotSure},
		{types.SceneLoyalty, types.TriggerYes},
		{types.SceneAffirmation, types.TriggerNo},
		{types.SceneTransitionToScroll, types.TriggerContinue},
		{types.ScenePhase2, types.TriggerYes},
		{types.ScenePhase2, types.TriggerOneLastThing},
		{types.SceneEndGamePopup, types.TriggerYes},
	}
	for _, tt := range tests {
		t.Run(tt.scene.String()+"/"+tt.trigger.String(), func(t *testing.T) {
			c, _ := newStartedController(t)
			c.DebugJump(tt.scene)
			if got := c.Advance(tt.trigger); got != tt.scene {
				t.Errorf("trigger %s moved %s to %s", tt.trigger, tt.scene, got)
			}
		})
	}
}

func TestReassuranceTimer(t *testing.T) {
	t.Run("显示后自动隐藏", func(t *testing.T) {
		c, _ := newStartedController(t)
		c.DebugJump(types.SceneAffirmation)
		c.Advance(types.TriggerNotSure)

		if text, ok := c.Transient(SlotReassurance); !ok || text != c.Story().Affirmation.Reassurance {
			t.Fatalf("reassurance not shown: %q %v", text, ok)
		}
		if c.Scene() != types.SceneAffirmation {
			t.Fatal("not sure must not change scene")
		}
		c.Update(config.ReassuranceDuration - 0.1)
		if _, ok := c.Transient(SlotReassurance); !ok {
			t.Fatal("reassurance hidden too early")
		}
		c.Update(0.2)
		if _, ok := c.Transient(SlotReassurance); ok {
			t.Error("reassurance should hide after its duration")
		}
	})

	t.Run("重复点击重新计时", func(t *testing.T) {
		c, _ := newStartedController(t)
		c.DebugJump(types.SceneAffirmation)
		c.Advance(types.TriggerNotSure)
		c.Update(3)
		c.Advance(types.TriggerNotSure)
		c.Update(3)
		if _, ok := c.Transient(SlotReassurance); !ok {
			t.Fatal("second press should restart the hide timer")
		}
		c.Update(1.1)
		if _, ok := c.Transient(SlotReassurance); ok {
			t.Error("reassurance should be hidden")
		}
	})

	t.Run("离开场景取消", func(t *testing.T) {
		c, _ := newStartedController(t)
		c.DebugJump(types.SceneAffirmation)
		c.Advance(types.TriggerNotSure)
		c.Advance(types.TriggerYes)

		if _, ok := c.Transient(SlotReassurance); ok {
			t.Error("reassurance must not survive a scene change")
		}
		if n := c.PendingTimers(SceneScope(types.SceneAffirmation)); n != 0 {
			t.Errorf("affirmation timers still pending: %d", n)
		}
	})
}

func TestEndGamePopupFlow(t *testing.T) {
	c, _ := newStartedController(t)
	driveToPhase2(t, c)
	steps := c.Story().EndGame.Steps

	if c.OneLastThingAvailable() {
		t.Fatal("one last thing should wait for the closing section")
	}
	c.SetScrollExtent(1000, 800)
	c.ScrollBy(900)
	if !c.OneLastThingAvailable() {
		t.Fatal("one last thing should be available after scrolling to the end")
	}

	if got := c.Advance(types.TriggerOneLastThing); got != types.SceneEndGamePopup {
		t.Fatalf("one last thing -> %s", got)
	}
	if step, ok := c.PopupStep(); !ok || step.Prompt != steps[0].Prompt {
		t.Fatalf("PopupStep = %+v %v", step, ok)
	}

	c.Advance(types.TriggerPopupSecondary)
	if text, ok := c.Transient(SlotPopupResponse); !ok || text != steps[0].Response {
		t.Errorf("secondary response = %q %v", text, ok)
	}
	if c.PopupCursor() != 0 {
		t.Error("secondary choice must not advance the popup")
	}

	for i := 1; i < len(steps); i++ {
		c.Advance(types.TriggerPopupPrimary)
		if c.PopupCursor() != i {
			t.Fatalf("cursor = %d, want %d", c.PopupCursor(), i)
		}
	}
	if _, ok := c.Transient(SlotPopupResponse); ok {
		t.Error("response should clear when advancing")
	}

	if got := c.Advance(types.TriggerPopupPrimary); got != types.ScenePhase2 {
		t.Fatalf("last primary -> %s, want PHASE_2", got)
	}
	if !c.PopupCompleted() {
		t.Error("sequence should be completed")
	}
	if c.OneLastThingAvailable() {
		t.Error("one last thing should not be offered after completion")
	}
	if c.Scroll().Mode != ScrollFree {
		t.Error("Phase2 should be free scrolling after the popup")
	}
}

func TestEndGamePopupDismiss(t *testing.T) {
	c, _ := newStartedController(t)
	driveToPhase2(t, c)
	c.SetScrollExtent(100, 50)
	c.ScrollBy(100)

	c.Advance(types.TriggerOneLastThing)
	c.Advance(types.TriggerPopupPrimary)
	c.Advance(types.TriggerPopupDismiss)

	if c.Scene() != types.ScenePhase2 || c.PopupCompleted() {
		t.Fatalf("dismiss: scene=%s completed=%v", c.Scene(), c.PopupCompleted())
	}
	c.Advance(types.TriggerOneLastThing)
	if c.PopupCursor() != 0 {
		t.Errorf("reopening should restart at step 0, got %d", c.PopupCursor())
	}
}

func TestHeadspaceAutoClear(t *testing.T) {
	c, _ := newStartedController(t)
	driveToPhase2(t, c)

	if c.SelectHeadspace("missing") {
		t.Error("unknown headspace should be rejected")
	}
	if !c.SelectHeadspace("calm") {
		t.Fatal("SelectHeadspace failed")
	}
	if c.ActiveHeadspace() != "calm" {
		t.Errorf("ActiveHeadspace = %q", c.ActiveHeadspace())
	}
	c.SelectHeadspace("hopeful")
	if text, _ := c.Transient(SlotHeadspace); text != "hopeful line" {
		t.Errorf("headspace line = %q", text)
	}
	c.Update(config.HeadspaceDuration)
	if c.ActiveHeadspace() != "" {
		t.Error("headspace should clear after its duration")
	}
	if _, ok := c.Transient(SlotHeadspace); ok {
		t.Error("headspace line should be hidden")
	}
}

func TestMicroMessagesCycle(t *testing.T) {
	c, _ := newStartedController(t)
	driveToPhase2(t, c)

	c.Update(config.MicroMessageInterval)
	if text, ok := c.Transient(SlotMicro); !ok || text != "m1" {
		t.Fatalf("first micro = %q %v", text, ok)
	}
	c.Update(config.MicroMessageDuration)
	if _, ok := c.Transient(SlotMicro); ok {
		t.Fatal("micro message should hide")
	}
	c.Update(config.MicroMessageInterval - config.MicroMessageDuration)
	if text, _ := c.Transient(SlotMicro); text != "m2" {
		t.Errorf("second micro = %q", text)
	}

	c.DebugJump(types.SceneEntry)
	if n := c.PendingTimers(SceneScope(types.ScenePhase2)); n != 0 {
		t.Errorf("micro timer survived scene change: %d", n)
	}
}

func TestCornerNodes(t *testing.T) {
	c, _ := newStartedController(t)
	if !c.TapCorner("top-left") {
		t.Fatal("corner should work on Entry")
	}
	if text, _ := c.Transient(SlotCorner); text != "hi" {
		t.Errorf("corner message = %q", text)
	}
	c.Update(config.CornerMessageDuration)
	if _, ok := c.Transient(SlotCorner); ok {
		t.Error("corner message should clear itself")
	}

	c.DebugJump(types.SceneTransitionToScroll)
	if c.CornersVisible() || c.TapCorner("top-left") {
		t.Error("corners are hidden during the transition")
	}
}

func TestPhase2Interactions(t *testing.T) {
	c, _ := newStartedController(t)
	driveToPhase2(t, c)

	c.HoldLine(1)
	if c.HeldLine() != 1 {
		t.Errorf("HeldLine = %d", c.HeldLine())
	}
	c.HoldLine(99)
	if c.HeldLine() != 1 {
		t.Error("out of range index should be ignored")
	}
	c.ReleaseLine()
	if c.HeldLine() != -1 {
		t.Error("ReleaseLine should clear")
	}

	c.SetHoldingAgreement(true)
	if c.DerivedVisualParams().WarmOverlay == 0 {
		t.Error("holding agreement should warm the overlay")
	}
	c.SetHoldingAgreement(false)

	c.SetCuriosity(CuriosityGood)
	if c.Curiosity() != CuriosityGood {
		t.Error("curiosity not set")
	}

	tests := []struct {
		value int
		want  int
		text  string
	}{
		{-10, 0, "low"},
		{49, 49, "low"},
		{50, 50, "mid"},
		{95, 95, "high"},
		{150, 100, "high"},
	}
	for _, tt := range tests {
		if got := c.SetAssurance(tt.value); got != tt.want {
			t.Errorf("SetAssurance(%d) = %d, want %d", tt.value, got, tt.want)
		}
		if got := c.AssuranceText(); got != tt.text {
			t.Errorf("AssuranceText at %d = %q, want %q", tt.value, got, tt.text)
		}
	}
}

func TestWarmthThroughController(t *testing.T) {
	c, clock := newStartedController(t)

	clock.Advance(5 * time.Minute)
	c.Update(config.WarmthTickInterval)
	if got := c.TimeOnPageFactor(); got != 0.5 {
		t.Errorf("factor after 5 minutes = %v, want 0.5", got)
	}
	if got := c.DerivedVisualParams().Warmth; got != 0.5 {
		t.Errorf("visual warmth = %v", got)
	}

	clock.Advance(time.Hour)
	c.Update(config.WarmthTickInterval)
	if got := c.TimeOnPageFactor(); got != 1 {
		t.Errorf("factor should clamp at 1, got %v", got)
	}
	if c.ElapsedOnPage() != time.Hour+5*time.Minute {
		t.Errorf("ElapsedOnPage = %v", c.ElapsedOnPage())
	}
}

func TestSceneChangeListenerAndShutdown(t *testing.T) {
	c, _ := newStartedController(t)
	var seen []types.Scene
	c.OnSceneChange(func(from, to types.Scene) { seen = append(seen, to) })

	c.Advance(types.TriggerContinue)
	c.Advance(types.TriggerYes) // 未识别，不通知
	if len(seen) != 1 || seen[0] != types.SceneProgression {
		t.Errorf("listener saw %v", seen)
	}

	c.DebugJump(types.SceneTransitionToScroll)
	c.Shutdown()
	c.Update(10)
	if c.Scene() != types.SceneTransitionToScroll {
		t.Error("timers must not fire after Shutdown")
	}
	if c.PendingTimers(ScopePage) != 0 {
		t.Error("page timers should be cancelled")
	}
}

func TestPauseAndDim(t *testing.T) {
	c, _ := newStartedController(t)
	if !c.TogglePaused() || !c.DerivedVisualParams().IsPaused {
		t.Error("TogglePaused should pause")
	}
	if !c.ToggleDimmed() || c.DerivedVisualParams().Dim != 0.5 {
		t.Error("ToggleDimmed should dim")
	}
	c.TogglePaused()
	c.ToggleDimmed()
	p := c.DerivedVisualParams()
	if p.IsPaused || p.Dim != 1 {
		t.Errorf("toggles should restore: %+v", p)
	}
}

func TestPrimaryAndSecondaryTriggers(t *testing.T) {
	tests := []struct {
		scene         types.Scene
		wantPrimary   types.Trigger
		primaryOK     bool
		wantSecondary types.Trigger
		secondaryOK   bool
	}{
		{types.SceneEntry, types.TriggerContinue, true, types.TriggerUnknown, false},
		{types.SceneProgression, types.TriggerProgressionTap, true, types.TriggerUnknown, false},
		{types.SceneQuestion1, types.TriggerYes, true, types.TriggerNo, true},
		{types.SceneLoyalty, types.TriggerDeepDown, false, types.TriggerUnknown, false},
		{types.SceneAffirmation, types.TriggerYes, true, types.TriggerNotSure, true},
		{types.SceneTransitionToScroll, types.TriggerUnknown, false, types.TriggerUnknown, false},
		{types.ScenePhase2, types.TriggerOneLastThing, false, types.TriggerUnknown, false},
		{types.SceneEndGamePopup, types.TriggerPopupPrimary, true, types.TriggerPopupSecondary, true},
	}
	for _, tt := range tests {
		t.Run(tt.scene.String(), func(t *testing.T) {
			c, _ := newStartedController(t)
			c.DebugJump(tt.scene)
			p, ok := c.PrimaryTrigger()
			if p != tt.wantPrimary || ok != tt.primaryOK {
				t.Errorf("PrimaryTrigger = (%s, %v), want (%s, %v)", p, ok, tt.wantPrimary, tt.primaryOK)
			}
			s, ok := c.SecondaryTrigger()
			if s != tt.wantSecondary || ok != tt.secondaryOK {
				t.Errorf("SecondaryTrigger = (%s, %v), want (%s, %v)", s, ok, tt.wantSecondary, tt.secondaryOK)
			}
		})
	}
}
