package scenes

import (
	"image/color"

	"github.com/decker502/stay/pkg/utils"
)

// rect 轴对齐矩形（逻辑屏幕坐标）
type rect struct {
	X, Y, W, H float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

func (r rect) centerX() float64 { return r.X + r.W/2 }
func (r rect) centerY() float64 { return r.Y + r.H/2 }

func (r rect) offset(dy float64) rect {
	r.Y += dy
	return r
}

// widgetKind 控件类型，决定绘制方式与指针语义
type widgetKind int

const (
	widgetButton widgetKind = iota // 圆角按钮，松开时触发
	widgetCard                     // 可展开卡片，松开时触发
	widgetTile                     // 小方块（headspace / doubt）
	widgetHoldLine                 // 按住显示的模糊句子
	widgetHoldCircle               // "Hold if you agree"
	widgetSlider                   // 安心滑块
	widgetCorner                   // 角落交互点
	widgetSurface                  // 不可见的整屏点击区域
)

// widget 一帧内的一个可交互控件
// 每帧根据控制器状态重新生成，只通过回调修改控制器
type widget struct {
	ID       string
	Kind     widgetKind
	Bounds   rect
	Label    string
	Detail   string  // 卡片展开后的内容
	Expanded bool    // 卡片是否展开 / 方块是否选中
	Value    float64 // 滑块值 0..1
	Scale    float64 // 绘制缩放（"No" 按钮），0 视为 1
	Opacity  float64 // 绘制透明度，0 视为 1
	Primary  bool    // 主按钮使用实心样式
	Tint     color.RGBA

	OnTap     func()
	OnPress   func()
	OnRelease func()
	OnSlide   func(value float64)
}

func (w *widget) opacity() float64 {
	if w.Opacity <= 0 {
		return 1
	}
	return w.Opacity
}

// hitBounds 返回考虑缩放后的点击区域（以中心缩放）
func (w *widget) hitBounds() rect {
	s := w.Scale
	if s <= 0 || s == 1 {
		return w.Bounds
	}
	b := w.Bounds
	nw, nh := b.W*s, b.H*s
	return rect{X: b.centerX() - nw/2, Y: b.centerY() - nh/2, W: nw, H: nh}
}

// hitTest 返回位于 (x, y) 的最上层控件
// 后加入的控件覆盖先加入的控件
func hitTest(widgets []widget, x, y float64) *widget {
	for i := len(widgets) - 1; i >= 0; i-- {
		if widgets[i].hitBounds().contains(x, y) {
			return &widgets[i]
		}
	}
	return nil
}

func findWidget(widgets []widget, id string) *widget {
	for i := range widgets {
		if widgets[i].ID == id {
			return &widgets[i]
		}
	}
	return nil
}

// sliderValueAt 根据指针 X 坐标计算滑块值
func sliderValueAt(x float64, b rect) float64 {
	if b.W <= 0 {
		return 0
	}
	return utils.Clamp01((x - b.X) / b.W)
}

// pointerRouter 把指针边沿分发给控件
//
// 点击：按下与松开落在同一个控件上才触发 OnTap。
// 按住：按下触发 OnPress，松开（无论位置）触发 OnRelease。
// 滑块：按下后拖动持续触发 OnSlide，指针离开滑槽也继续跟随。
type pointerRouter struct {
	active        string
	activeKind    widgetKind
	activeRelease func()
}

// route 处理一帧指针状态
// 返回：本帧是否有控件消费了指针
func (r *pointerRouter) route(f utils.PointerFrame, widgets []widget) bool {
	x, y := float64(f.X), float64(f.Y)

	if f.JustPressed {
		r.cancel()
		hit := hitTest(widgets, x, y)
		if hit == nil {
			return false
		}
		r.active = hit.ID
		r.activeKind = hit.Kind
		switch hit.Kind {
		case widgetHoldLine, widgetHoldCircle:
			if hit.OnPress != nil {
				hit.OnPress()
			}
			r.activeRelease = hit.OnRelease
		case widgetSlider:
			if hit.OnSlide != nil {
				hit.OnSlide(sliderValueAt(x, hit.Bounds))
			}
		}
		return true
	}

	if r.active == "" {
		return false
	}

	if f.Pressed {
		if r.activeKind == widgetSlider {
			if w := findWidget(widgets, r.active); w != nil && w.OnSlide != nil {
				w.OnSlide(sliderValueAt(x, w.Bounds))
			}
		}
		return true
	}

	if f.JustReleased {
		id, kind, release := r.active, r.activeKind, r.activeRelease
		r.active, r.activeRelease = "", nil
		switch kind {
		case widgetHoldLine, widgetHoldCircle:
			if release != nil {
				release()
			}
		case widgetSlider:
		default:
			if hit := hitTest(widgets, x, y); hit != nil && hit.ID == id && hit.OnTap != nil {
				hit.OnTap()
			}
		}
		return true
	}

	// 错过了释放边沿（例如窗口失去焦点）
	r.cancel()
	return false
}

// cancel 放弃当前按住的控件
func (r *pointerRouter) cancel() {
	if r.activeRelease != nil {
		r.activeRelease()
	}
	r.active, r.activeRelease = "", nil
}

// isActive 返回控件是否正被按住
func (r *pointerRouter) isActive(id string) bool {
	return r.active != "" && r.active == id
}
