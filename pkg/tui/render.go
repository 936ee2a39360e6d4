package tui

import (
	"math"

	"github.com/decker502/stay/pkg/game"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// backdropGlyphs 光团亮度由低到高
var backdropGlyphs = []rune{' ', '.', '·', ':', '*'}

var (
	colorText   = tcell.NewRGBColor(245, 238, 232)
	colorMuted  = tcell.NewRGBColor(150, 140, 134)
	colorAccent = tcell.NewRGBColor(255, 170, 120)
	colorPanel  = tcell.NewRGBColor(22, 18, 20)
)

// renderer 把内容绘制到 tcell 屏幕
type renderer struct {
	screen tcell.Screen
	time   float64
}

func newRenderer(screen tcell.Screen) *renderer {
	return &renderer{screen: screen}
}

// advance 推进背景动画时间（已乘以速度倍率）
func (r *renderer) advance(dt float64) {
	r.time += dt * 0.3
}

// viewHeight 可滚动区域的行数（底部留一行状态栏）
func (r *renderer) viewHeight() int {
	_, h := r.screen.Size()
	return max(h-2, 1)
}

func (r *renderer) draw(c *game.SceneController, ct content) {
	w, h := r.screen.Size()
	params := c.DerivedVisualParams()
	r.drawBackdrop(w, h, params)

	if ct.Scrollable {
		offset := int(c.Scroll().Offset)
		for y := 0; y < r.viewHeight(); y++ {
			i := offset + y
			if i >= 0 && i < len(ct.Rows) {
				r.drawRow(ct.Rows[i], 0, w, y+1)
			}
		}
	} else {
		top := max((h-len(ct.Rows))/2, 0)
		for i, rw := range ct.Rows {
			r.drawRow(rw, 0, w, top+i)
		}
	}

	if len(ct.Popup) > 0 {
		r.drawPopup(ct.Popup, w, h)
	}
	r.drawStatus(c, w, h)
	r.screen.Show()
}

// drawBackdrop 由 VisualParams 与时间生成的色场
func (r *renderer) drawBackdrop(w, h int, p game.VisualParams) {
	cx, cy := float64(w)/2, float64(h)/2
	scale := math.Min(float64(w)/2, float64(h)) // 单元格高约为宽的两倍
	pr, pg, pb := float64(p.PrimaryColor.R), float64(p.PrimaryColor.G), float64(p.PrimaryColor.B)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			nx := (float64(x) - cx) / scale / 2
			ny := (float64(y) - cy) / scale
			d := math.Hypot(nx, ny)
			theta := math.Atan2(ny, nx)
			radius := 0.55 * (1 + 0.08*math.Sin(3*theta+r.time*2) + 0.05*math.Sin(5*theta-r.time*1.3))
			v := math.Max(0, 1-d/radius) * (0.3 + 0.7*p.GlowIntensity) * p.Dim

			glyph := backdropGlyphs[min(int(v*float64(len(backdropGlyphs))), len(backdropGlyphs)-1)]
			bg := v*0.25 + p.WarmOverlay*0.3
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(pr*v), int32(pg*v), int32(pb*v))).
				Background(tcell.NewRGBColor(int32(pr*bg), int32(pg*bg), int32(pb*bg)))
			r.screen.SetContent(x, y, glyph, nil, style)
		}
	}
}

func rowTcellStyle(s rowStyle) tcell.Style {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	switch s {
	case styleMuted:
		return base.Foreground(colorMuted)
	case styleAccent:
		return base.Foreground(colorAccent)
	case styleTitle:
		return base.Foreground(colorText).Bold(true)
	case styleFocused:
		return base.Foreground(colorText).Reverse(true)
	case styleHint:
		return base.Foreground(colorAccent).Dim(true)
	default:
		return base.Foreground(colorText)
	}
}

// drawRow 在 [left, left+width) 内绘制一行，Center 时居中
func (r *renderer) drawRow(rw row, left, width, y int) {
	if rw.Text == "" {
		return
	}
	x := left + 2
	if rw.Center {
		x = left + max((width-runewidth.StringWidth(rw.Text))/2, 0)
	}
	r.drawText(x, y, rw.Text, rowTcellStyle(rw.Style))
}

// drawText 逐字符写入，宽字符占两列
func (r *renderer) drawText(x, y int, s string, style tcell.Style) {
	col := x
	for _, ch := range s {
		r.screen.SetContent(col, y, ch, nil, style)
		if w := runewidth.RuneWidth(ch); w == 2 {
			r.screen.SetContent(col+1, y, ' ', nil, style)
			col += 2
		} else {
			col++
		}
	}
}

func (r *renderer) drawPopup(rows []row, w, h int) {
	bw := min(w-4, 46)
	bh := len(rows) + 4
	x0 := (w - bw) / 2
	y0 := max((h-bh)/2, 0)
	border := tcell.StyleDefault.Background(colorPanel).Foreground(colorAccent)
	fill := tcell.StyleDefault.Background(colorPanel)

	for y := y0; y < y0+bh; y++ {
		for x := x0; x < x0+bw; x++ {
			ch := ' '
			style := fill
			switch {
			case y == y0 && x == x0:
				ch, style = '┌', border
			case y == y0 && x == x0+bw-1:
				ch, style = '┐', border
			case y == y0+bh-1 && x == x0:
				ch, style = '└', border
			case y == y0+bh-1 && x == x0+bw-1:
				ch, style = '┘', border
			case y == y0 || y == y0+bh-1:
				ch, style = '─', border
			case x == x0 || x == x0+bw-1:
				ch, style = '│', border
			}
			r.screen.SetContent(x, y, ch, nil, style)
		}
	}
	for i, rw := range rows {
		if rw.Text == "" {
			continue
		}
		style := rowTcellStyle(rw.Style).Background(colorPanel)
		x := x0 + max((bw-runewidth.StringWidth(rw.Text))/2, 1)
		r.drawText(x, y0+2+i, rw.Text, style)
	}
}

func (r *renderer) drawStatus(c *game.SceneController, w, h int) {
	status := c.Scene().String()
	if c.Paused() {
		status += "  (paused)"
	}
	if c.Dimmed() {
		status += "  (dimmed)"
	}
	help := "[p] pause  [d] dim  [q] quit"
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(colorMuted)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, h-1, ' ', nil, style)
	}
	r.drawText(1, h-1, status, style)
	r.drawText(max(w-runewidth.StringWidth(help)-1, 0), h-1, help, style)
}
