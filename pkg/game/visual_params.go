package game

import (
	"image/color"

	"github.com/decker502/stay/pkg/config"
	"github.com/decker502/stay/pkg/types"
)

// VisualInputs 视觉层参数的全部输入
type VisualInputs struct {
	Scene            types.Scene
	Warmth           float64 // TimeOnPageFactor，0..1
	Paused           bool    // 用户暂停动画
	Dimmed           bool    // 用户调暗背景
	ReducedMotion    bool    // 启动参数 -reduced-motion
	HoldingAgreement bool    // 正在按住 "Hold if you agree"
}

// VisualParams 视觉层每帧读取的参数快照
type VisualParams struct {
	PrimaryColor  color.RGBA
	GlowIntensity float64 // 0..1
	IsSlowedDown  bool
	IsPaused      bool
	Warmth        float64 // 0..1
	Speed         float64 // 动画速度倍率，暂停时为 0
	Dim           float64 // 亮度倍率，0.5 或 1
	WarmOverlay   float64 // 全屏暖色覆盖层透明度 0..0.3
}

// 视觉参数映射常量
const (
	warmColorBlend     = 0.35
	warmGlowBoost      = 0.2
	agreementGlowBoost = 0.15
	warmSpeedBoost     = 0.5
	slowedSpeedFactor  = 0.5
	dimFactor          = 0.5
	agreementOverlay   = 0.3
)

// slowScenes 这些场景的背景动画放慢
var slowScenes = map[types.Scene]bool{
	types.SceneLoyalty:            true,
	types.SceneTransitionToScroll: true,
	types.SceneEndGamePopup:       true,
}

// DeriveVisualParams 将场景与暖度映射为视觉参数
// 纯函数：不读取也不修改任何状态，每帧调用
func DeriveVisualParams(in VisualInputs, palette config.Palette) VisualParams {
	warmth := clamp01(in.Warmth)
	tone := palette.Tone(in.Scene)

	glow := tone.Glow + warmGlowBoost*warmth
	if in.HoldingAgreement {
		glow += agreementGlowBoost
	}

	slowed := slowScenes[in.Scene] || in.ReducedMotion
	speed := 1.0 + warmSpeedBoost*warmth
	if slowed {
		speed *= slowedSpeedFactor
	}
	if in.Paused {
		speed = 0
	}

	dim := 1.0
	if in.Dimmed {
		dim = dimFactor
	}

	overlay := 0.0
	if in.HoldingAgreement {
		overlay = agreementOverlay
	}

	return VisualParams{
		PrimaryColor:  LerpColor(tone.Color, palette.Warm, warmth*warmColorBlend),
		GlowIntensity: clamp01(glow),
		IsSlowedDown:  slowed,
		IsPaused:      in.Paused,
		Warmth:        warmth,
		Speed:         speed,
		Dim:           dim,
		WarmOverlay:   overlay,
	}
}

// LerpColor 在两个颜色之间线性插值，t 被夹紧到 [0,1]
func LerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
