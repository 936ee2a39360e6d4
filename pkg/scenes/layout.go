package scenes

import (
	"image/color"
	"math"

	"github.com/decker502/stay/pkg/config"
	"github.com/decker502/stay/pkg/utils"
)

// 界面颜色
var (
	colorText      = color.RGBA{R: 245, G: 238, B: 232, A: 255}
	colorTextMuted = color.RGBA{R: 190, G: 178, B: 170, A: 255}
	colorAccent    = color.RGBA{R: 255, G: 170, B: 120, A: 255}
	colorPanel     = color.RGBA{R: 22, G: 18, B: 20, A: 235}
)

// textBlock 一段居中（或左对齐）的文字
type textBlock struct {
	Lines   []string
	Role    textRole
	X       float64 // Center 为 true 时是中心 X，否则是左边界
	Y       float64 // 第一行顶部
	Center  bool
	Alpha   float64
	Color   color.RGBA
	Blurred bool // 按住之前保持模糊
}

// panel 弹窗等半透明底板
type panel struct {
	Bounds rect
	Alpha  float64
}

// overlayLayout 一帧的界面布局：文字、控件、底板
type overlayLayout struct {
	Texts      []textBlock
	Widgets    []widget
	Panels     []panel
	ScrimAlpha float64 // 弹窗背后的遮罩
	// Phase2 内容高度与结尾段落位置（内容坐标），非滚动场景为 0
	ContentHeight float64
	ClosingTop    float64
}

// layoutEnv 布局所需的环境参数
type layoutEnv struct {
	W, H         float64
	Fonts        *FontSet
	SceneElapsed float64 // 进入当前场景后的秒数
	StepElapsed  float64 // 当前短句 / 当前回应出现后的秒数
	Mobile       bool
}

func (e layoutEnv) contentWidth() float64 {
	return math.Min(config.ContentMaxWidth, e.W-48)
}

func (e layoutEnv) contentLeft() float64 {
	return (e.W - e.contentWidth()) / 2
}

func (e layoutEnv) buttonHeight() float64 {
	if e.Mobile {
		return config.ButtonHeight * 1.25
	}
	return config.ButtonHeight
}

// layoutBuilder 累积一帧的布局
type layoutBuilder struct {
	env layoutEnv
	out overlayLayout
}

func newLayoutBuilder(env layoutEnv) *layoutBuilder {
	return &layoutBuilder{env: env}
}

func (b *layoutBuilder) wrap(role textRole, s string, width float64) []string {
	return utils.WordWrap(s, width, func(line string) float64 {
		return b.env.Fonts.Measure(role, line)
	})
}

// centered 添加居中文字，返回文字底部 Y
func (b *layoutBuilder) centered(s string, role textRole, y, alpha float64, c color.RGBA) float64 {
	if s == "" {
		return y
	}
	lines := b.wrap(role, s, b.env.contentWidth())
	b.out.Texts = append(b.out.Texts, textBlock{
		Lines: lines, Role: role, X: b.env.W / 2, Y: y, Center: true, Alpha: alpha, Color: c,
	})
	return y + float64(len(lines))*b.env.Fonts.LineHeight(role)
}

// leftText 添加左对齐文字（卡片内），返回底部 Y
func (b *layoutBuilder) leftText(s string, role textRole, x, y, width, alpha float64, c color.RGBA) float64 {
	if s == "" {
		return y
	}
	lines := b.wrap(role, s, width)
	b.out.Texts = append(b.out.Texts, textBlock{
		Lines: lines, Role: role, X: x, Y: y, Alpha: alpha, Color: c,
	})
	return y + float64(len(lines))*b.env.Fonts.LineHeight(role)
}

// buttonWidth 根据文字计算按钮宽度
func (b *layoutBuilder) buttonWidth(label string) float64 {
	return math.Max(config.ButtonMinWidth, b.env.Fonts.Measure(roleButton, label)+2*config.ButtonPaddingX)
}

// button 添加以 cx 为中心的按钮
func (b *layoutBuilder) button(id, label string, cx, y float64, primary bool, onTap func()) *widget {
	w := b.buttonWidth(label)
	b.out.Widgets = append(b.out.Widgets, widget{
		ID:      id,
		Kind:    widgetButton,
		Bounds:  rect{X: cx - w/2, Y: y, W: w, H: b.env.buttonHeight()},
		Label:   label,
		Primary: primary,
		OnTap:   onTap,
	})
	return &b.out.Widgets[len(b.out.Widgets)-1]
}

// buttonRow 水平排列一组按钮，返回按钮底部 Y
func (b *layoutBuilder) buttonRow(y float64, specs ...buttonSpec) float64 {
	const gap = 24.0
	total := -gap
	for _, s := range specs {
		total += b.buttonWidth(s.label) + gap
	}
	x := b.env.W/2 - total/2
	for _, s := range specs {
		w := b.buttonWidth(s.label)
		btn := b.button(s.id, s.label, x+w/2, y, s.primary, s.onTap)
		btn.Scale = s.scale
		btn.Opacity = s.opacity
		x += w + gap
	}
	return y + b.env.buttonHeight()
}

type buttonSpec struct {
	id      string
	label   string
	primary bool
	scale   float64
	opacity float64
	onTap   func()
}

func (b *layoutBuilder) cue(s string, alpha float64) {
	if s == "" {
		return
	}
	b.centered(s, roleSmall, b.env.H-48, alpha*0.7, colorTextMuted)
}

// fade 进入场景后延迟 delay 秒、用 duration 秒淡入
func (b *layoutBuilder) fade(delay, duration float64) float64 {
	return utils.FadeProgress(b.env.SceneElapsed, delay, duration)
}

// fadeStep 与 fade 相同，但从当前短句出现时开始计时
func (b *layoutBuilder) fadeStep(delay, duration float64) float64 {
	return utils.FadeProgress(b.env.StepElapsed, delay, duration)
}

// shift 将 from 之后加入的文字与控件整体平移
func (b *layoutBuilder) shift(textFrom, widgetFrom int, dy float64) {
	for i := textFrom; i < len(b.out.Texts); i++ {
		b.out.Texts[i].Y += dy
	}
	for i := widgetFrom; i < len(b.out.Widgets); i++ {
		b.out.Widgets[i].Bounds = b.out.Widgets[i].Bounds.offset(dy)
	}
}

// cull 去掉完全在屏幕外的文字与控件
func (b *layoutBuilder) cull() {
	texts := b.out.Texts[:0]
	for _, t := range b.out.Texts {
		h := float64(len(t.Lines)) * b.env.Fonts.LineHeight(t.Role)
		if t.Y+h >= 0 && t.Y <= b.env.H {
			texts = append(texts, t)
		}
	}
	b.out.Texts = texts

	widgets := b.out.Widgets[:0]
	for _, w := range b.out.Widgets {
		if w.Bounds.Y+w.Bounds.H >= 0 && w.Bounds.Y <= b.env.H {
			widgets = append(widgets, w)
		}
	}
	b.out.Widgets = widgets
}
