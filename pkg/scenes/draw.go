package scenes

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// blurOffsets 模糊文字的叠加偏移
var blurOffsets = [][2]float64{{-2, 0}, {2, 0}, {0, -2}, {0, 2}, {-1.5, -1.5}, {1.5, 1.5}}

// withAlpha 返回 (非预乘) 带透明度的颜色
func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	a := math.Max(0, math.Min(1, alpha)) * float64(c.A)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a)}
}

// drawOverlay 按顺序绘制遮罩、底板、控件与文字
// pressed 为当前按住的控件 ID，用于按下反馈
func drawOverlay(screen *ebiten.Image, layout overlayLayout, fonts *FontSet, pressed string) {
	if layout.ScrimAlpha > 0 {
		b := screen.Bounds()
		vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()),
			color.NRGBA{A: uint8(layout.ScrimAlpha * 255)}, false)
	}

	for _, p := range layout.Panels {
		drawRoundedRect(screen, p.Bounds, 14, withAlpha(colorPanel, p.Alpha))
		strokeRect(screen, p.Bounds, withAlpha(colorAccent, 0.35*p.Alpha))
	}

	for i := range layout.Widgets {
		drawWidget(screen, &layout.Widgets[i], fonts, layout.Widgets[i].ID == pressed)
	}

	for _, t := range layout.Texts {
		drawTextBlock(screen, t, fonts)
	}
}

func drawWidget(screen *ebiten.Image, w *widget, fonts *FontSet, pressed bool) {
	alpha := w.opacity()
	if pressed {
		alpha *= 0.8
	}
	b := w.hitBounds()

	switch w.Kind {
	case widgetButton:
		if w.Primary {
			drawRoundedRect(screen, b, b.H/2, withAlpha(colorAccent, 0.9*alpha))
			drawLabel(screen, w.Label, roleButton, b, fonts, withAlpha(colorPanel, alpha), w.Scale)
		} else {
			drawRoundedRect(screen, b, b.H/2, withAlpha(colorPanel, 0.6*alpha))
			strokeRect(screen, b, withAlpha(colorTextMuted, 0.6*alpha))
			drawLabel(screen, w.Label, roleButton, b, fonts, withAlpha(colorText, alpha), w.Scale)
		}

	case widgetCard:
		drawRoundedRect(screen, b, 12, withAlpha(colorPanel, 0.75*alpha))
		border := 0.25
		if w.Expanded {
			border = 0.7
		}
		strokeRect(screen, b, withAlpha(colorAccent, border*alpha))

	case widgetTile:
		if w.Expanded {
			drawRoundedRect(screen, b, 10, withAlpha(colorAccent, 0.85*alpha))
			drawLabel(screen, w.Label, roleButton, b, fonts, withAlpha(colorPanel, alpha), 1)
		} else {
			drawRoundedRect(screen, b, 10, withAlpha(colorPanel, 0.7*alpha))
			drawLabel(screen, w.Label, roleButton, b, fonts, withAlpha(colorText, alpha), 1)
		}

	case widgetHoldCircle:
		cx, cy := float32(b.centerX()), float32(b.centerY())
		r := float32(b.W / 2)
		if w.Expanded {
			vector.DrawFilledCircle(screen, cx, cy, r*1.15, withAlpha(colorAccent, 0.35), true)
			vector.DrawFilledCircle(screen, cx, cy, r, withAlpha(colorAccent, 0.9), true)
		} else {
			vector.DrawFilledCircle(screen, cx, cy, r, withAlpha(colorPanel, 0.7), true)
		}
		vector.StrokeCircle(screen, cx, cy, r, 2, withAlpha(colorAccent, 0.8), true)

	case widgetSlider:
		cy := float32(b.centerY())
		vector.StrokeLine(screen, float32(b.X), cy, float32(b.X+b.W), cy, 4, withAlpha(colorTextMuted, 0.5), true)
		kx := float32(b.X + b.W*w.Value)
		vector.StrokeLine(screen, float32(b.X), cy, kx, cy, 4, withAlpha(colorAccent, 0.9), true)
		vector.DrawFilledCircle(screen, kx, cy, 11, withAlpha(colorText, 1), true)

	case widgetCorner:
		cx, cy := float32(b.centerX()), float32(b.centerY())
		r := float32(b.W / 3.6)
		vector.DrawFilledCircle(screen, cx, cy, r*1.8, withAlpha(colorAccent, 0.15), true)
		vector.DrawFilledCircle(screen, cx, cy, r, withAlpha(colorAccent, 0.6), true)

	case widgetHoldLine, widgetSurface:
		// 只是点击区域，文字由 textBlock 绘制
	}
}

// drawRoundedRect 以矩形与四个圆角拼出圆角矩形
func drawRoundedRect(screen *ebiten.Image, b rect, radius float64, clr color.Color) {
	r := math.Min(radius, math.Min(b.W, b.H)/2)
	x, y, w, h := float32(b.X), float32(b.Y), float32(b.W), float32(b.H)
	rr := float32(r)
	if rr <= 0 {
		vector.DrawFilledRect(screen, x, y, w, h, clr, false)
		return
	}
	vector.DrawFilledRect(screen, x+rr, y, w-2*rr, h, clr, false)
	vector.DrawFilledRect(screen, x, y+rr, rr, h-2*rr, clr, false)
	vector.DrawFilledRect(screen, x+w-rr, y+rr, rr, h-2*rr, clr, false)
	vector.DrawFilledCircle(screen, x+rr, y+rr, rr, clr, true)
	vector.DrawFilledCircle(screen, x+w-rr, y+rr, rr, clr, true)
	vector.DrawFilledCircle(screen, x+rr, y+h-rr, rr, clr, true)
	vector.DrawFilledCircle(screen, x+w-rr, y+h-rr, rr, clr, true)
}

func strokeRect(screen *ebiten.Image, b rect, clr color.Color) {
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, clr, true)
}

// drawLabel 在矩形中心绘制单行文字
func drawLabel(screen *ebiten.Image, label string, role textRole, b rect, fonts *FontSet, clr color.Color, scale float64) {
	face := fonts.Face(role)
	if face == nil || label == "" {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(b.centerX(), b.centerY())
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, label, face, op)
}

// drawTextBlock 逐行绘制文字，模糊文字用低透明度的偏移副本叠加
func drawTextBlock(screen *ebiten.Image, t textBlock, fonts *FontSet) {
	face := fonts.Face(t.Role)
	if face == nil || t.Alpha <= 0 {
		return
	}
	lineH := fonts.LineHeight(t.Role)
	for i, line := range t.Lines {
		y := t.Y + float64(i)*lineH
		if t.Blurred {
			for _, o := range blurOffsets {
				drawLine(screen, line, face, t, t.X+o[0], y+o[1], t.Alpha*0.12)
			}
			drawLine(screen, line, face, t, t.X, y, t.Alpha*0.18)
			continue
		}
		drawLine(screen, line, face, t, t.X, y, t.Alpha)
	}
}

func drawLine(screen *ebiten.Image, line string, face text.Face, t textBlock, x, y, alpha float64) {
	op := &text.DrawOptions{}
	if t.Center {
		op.PrimaryAlign = text.AlignCenter
	}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(t.Color)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, line, face, op)
}
