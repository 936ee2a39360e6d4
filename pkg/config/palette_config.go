package config

import (
	"image/color"

	"github.com/decker502/stay/pkg/types"
)

// SceneTone 每个场景的背景基调
type SceneTone struct {
	Color color.RGBA // 主色
	Glow  float64    // 基础辉光 0..1
}

// Palette 视觉层调色板
type Palette struct {
	Background color.RGBA               // 静态背景色（渲染失败时的降级颜色）
	Warm       color.RGBA               // 停留越久越接近的暖色
	Tones      map[types.Scene]SceneTone // 场景基调
}

// DefaultPalette 返回默认调色板
// 橙 -> 琥珀 -> 柔金，越往后越偏粉
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{R: 7, G: 7, B: 8, A: 255},
		Warm:       color.RGBA{R: 255, G: 140, B: 110, A: 255},
		Tones: map[types.Scene]SceneTone{
			types.SceneEntry:              {Color: color.RGBA{R: 255, G: 170, B: 80, A: 255}, Glow: 0.35},
			types.SceneProgression:        {Color: color.RGBA{R: 230, G: 140, B: 90, A: 255}, Glow: 0.30},
			types.SceneQuestion1:          {Color: color.RGBA{R: 236, G: 120, B: 150, A: 255}, Glow: 0.45},
			types.SceneLoyalty:            {Color: color.RGBA{R: 219, G: 39, B: 119, A: 255}, Glow: 0.60},
			types.SceneAffirmation:        {Color: color.RGBA{R: 244, G: 114, B: 182, A: 255}, Glow: 0.50},
			types.SceneTransitionToScroll: {Color: color.RGBA{R: 255, G: 200, B: 120, A: 255}, Glow: 0.70},
			types.ScenePhase2:             {Color: color.RGBA{R: 255, G: 160, B: 120, A: 255}, Glow: 0.40},
			types.SceneEndGamePopup:       {Color: color.RGBA{R: 250, G: 130, B: 170, A: 255}, Glow: 0.55},
		},
	}
}

// Tone 返回场景基调，未配置的场景使用 Entry 的基调
func (p Palette) Tone(scene types.Scene) SceneTone {
	if tone, ok := p.Tones[scene]; ok {
		return tone
	}
	return p.Tones[types.SceneEntry]
}
