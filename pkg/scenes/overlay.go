package scenes

import (
	"github.com/decker502/stay/pkg/config"
	"github.com/decker502/stay/pkg/game"
	"github.com/decker502/stay/pkg/types"
)

// buildOverlay 根据控制器状态生成当前帧的界面布局
// 只读取控制器；控件回调在之后的输入处理阶段才会修改控制器
func buildOverlay(c *game.SceneController, env layoutEnv) overlayLayout {
	b := newLayoutBuilder(env)
	story := c.Story()

	switch c.Scene() {
	case types.SceneEntry:
		y := env.H * 0.36
		y = b.centered(story.Personalize(story.Entry.Greeting), roleTitle, y, b.fade(0.2, 1.2), colorText)
		y = b.centered(story.Personalize(story.Entry.Subtitle), roleItalic, y+8, b.fade(0.9, 1.2), colorTextMuted)
		b.buttonRow(y+40, buttonSpec{id: "continue", label: story.Entry.ContinueLabel, primary: true, onTap: func() {
			c.Advance(types.TriggerContinue)
		}})
		b.cue(story.Entry.Cue, b.fade(1.6, 1))

	case types.SceneProgression:
		b.out.Widgets = append(b.out.Widgets, widget{
			ID: "progression", Kind: widgetSurface, Bounds: rect{W: env.W, H: env.H},
			OnTap: func() { c.Advance(types.TriggerProgressionTap) },
		})
		b.centered(story.Personalize(c.ProgressionText()), roleHeading, env.H*0.42, b.fadeStep(0, 0.8), colorText)
		b.cue(story.Progression.Cue, b.fade(1, 1))

	case types.SceneQuestion1:
		y := b.centered(story.Personalize(c.QuestionText()), roleHeading, env.H*0.34, b.fadeStep(0, 0.8), colorText)
		no := c.NoButton()
		b.buttonRow(y+48,
			buttonSpec{id: "yes", label: story.Question1.YesLabel, primary: true, onTap: func() {
				c.Advance(types.TriggerYes)
			}},
			buttonSpec{id: "no", label: no.Label, scale: no.Scale, opacity: no.Opacity, onTap: func() {
				c.Advance(types.TriggerNo)
			}},
		)
		b.cue(story.Question1.Cue, b.fade(1, 1))

	case types.SceneLoyalty:
		y := b.centered(story.Personalize(story.Loyalty.Quote), roleItalic, env.H*0.24, b.fade(0.2, 1.2), colorTextMuted)
		y += 24
		for i, line := range story.Loyalty.Lines {
			y = b.centered(story.Personalize(line), roleHeading, y, b.fade(1.0+float64(i)*0.7, 0.8), colorText)
		}
		if c.LoyaltyReady() {
			b.buttonRow(y+36, buttonSpec{id: "deep-down", label: story.Loyalty.ButtonLabel, primary: true, onTap: func() {
				c.Advance(types.TriggerDeepDown)
			}})
		}
		b.cue(story.Loyalty.Cue, b.fade(config.LoyaltyRevealDelay, 1))

	case types.SceneAffirmation:
		y := b.centered(story.Personalize(story.Affirmation.Prompt), roleHeading, env.H*0.32, b.fade(0.2, 1), colorText)
		y = b.buttonRow(y+40,
			buttonSpec{id: "yes", label: story.Affirmation.YesLabel, primary: true, onTap: func() {
				c.Advance(types.TriggerYes)
			}},
			buttonSpec{id: "not-sure", label: story.Affirmation.NotSureLabel, onTap: func() {
				c.Advance(types.TriggerNotSure)
			}},
		)
		if text, ok := c.Transient(game.SlotReassurance); ok {
			b.centered(story.Personalize(text), roleItalic, y+28, b.fadeStep(0, 0.5), colorAccent)
		}
		b.cue(story.Affirmation.Cue, b.fade(1, 1))

	case types.SceneTransitionToScroll:
		b.centered(story.Personalize(story.Transition.Line), roleHeading, env.H*0.42, b.fade(0.3, 1.5), colorText)
		b.cue(story.Transition.Cue, b.fade(1.5, 1))

	case types.ScenePhase2:
		buildPhase2(b, c, true)
		if text, ok := c.Transient(game.SlotMicro); ok {
			b.centered(story.Personalize(text), roleItalic, env.H-72, b.fadeStep(0, 0.6)*0.8, colorTextMuted)
		}

	case types.SceneEndGamePopup:
		buildPhase2(b, c, false)
		buildPopup(b, c)
	}

	buildCorners(b, c)
	return b.out
}

// buildPopup 结尾弹窗
func buildPopup(b *layoutBuilder, c *game.SceneController) {
	step, ok := c.PopupStep()
	if !ok {
		return
	}
	env := b.env
	b.out.ScrimAlpha = 0.55

	pw := minFloat(config.PopupWidth, env.W-32)
	bounds := rect{X: (env.W - pw) / 2, Y: (env.H - config.PopupHeight) / 2, W: pw, H: config.PopupHeight}
	b.out.Panels = append(b.out.Panels, panel{Bounds: bounds, Alpha: 1})

	// 弹窗打开时下层内容不可交互
	b.out.Widgets = b.out.Widgets[:0]
	b.out.Widgets = append(b.out.Widgets, widget{ID: "popup-scrim", Kind: widgetSurface, Bounds: rect{W: env.W, H: env.H}})

	y := b.centered(step.Prompt, roleHeading, bounds.Y+36, b.fadeStep(0, 0.5), colorText)
	specs := []buttonSpec{{id: "popup-primary", label: step.Primary, primary: true, onTap: func() {
		c.Advance(types.TriggerPopupPrimary)
	}}}
	if step.Secondary != "" {
		specs = append(specs, buttonSpec{id: "popup-secondary", label: step.Secondary, onTap: func() {
			c.Advance(types.TriggerPopupSecondary)
		}})
	}
	y = b.buttonRow(maxFloat(y+24, bounds.Y+bounds.H-env.buttonHeight()-72), specs...)
	if text, ok := c.Transient(game.SlotPopupResponse); ok {
		b.centered(text, roleSmall, y+14, 1, colorAccent)
	}

	b.out.Widgets = append(b.out.Widgets, widget{
		ID: "popup-close", Kind: widgetButton, Label: "×",
		Bounds: rect{X: bounds.X + bounds.W - 44, Y: bounds.Y + 8, W: 36, H: 36},
		OnTap:  func() { c.Advance(types.TriggerPopupDismiss) },
	})
}

// cornerAnchors 角落交互点的位置顺序
var cornerAnchors = []string{"top-left", "top-right", "bottom-left", "bottom-right"}

// buildCorners 四个角落的小光点
func buildCorners(b *layoutBuilder, c *game.SceneController) {
	if !c.CornersVisible() {
		return
	}
	env := b.env
	inset := config.CornerNodeInset
	r := config.CornerNodeRadius
	if env.Mobile {
		r *= 1.6
	}
	positions := map[string][2]float64{
		"top-left":     {inset, inset},
		"top-right":    {env.W - inset, inset},
		"bottom-left":  {inset, env.H - inset},
		"bottom-right": {env.W - inset, env.H - inset},
	}

	for i, node := range c.Story().Corners {
		pos, ok := positions[node.ID]
		if !ok {
			if i >= len(cornerAnchors) {
				continue
			}
			pos = positions[cornerAnchors[i]]
		}
		id := node.ID
		b.out.Widgets = append(b.out.Widgets, widget{
			ID: "corner:" + id, Kind: widgetCorner,
			Bounds: rect{X: pos[0] - r*1.8, Y: pos[1] - r*1.8, W: r * 3.6, H: r * 3.6},
			OnTap:  func() { c.TapCorner(id) },
		})
	}
	if text, ok := c.Transient(game.SlotCorner); ok {
		b.centered(c.Story().Personalize(text), roleSmall, 28, 0.9, colorAccent)
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
