// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerInput 指针（鼠标左键或第一个触摸点）的原始状态
// 用于依赖注入，测试时用 mock 替换 Ebitengine 的全局输入
type PointerInput interface {
	Position() (int, int)
	Pressed() bool
}

// ebitenPointerInput Ebitengine 默认实现
// 同时支持鼠标和触摸，优先使用触摸
type ebitenPointerInput struct {
	touchIDs []ebiten.TouchID
}

// NewEbitenPointerInput 创建基于 Ebitengine 的指针输入
func NewEbitenPointerInput() PointerInput {
	return &ebitenPointerInput{}
}

func (e *ebitenPointerInput) Position() (int, int) {
	e.touchIDs = ebiten.AppendTouchIDs(e.touchIDs[:0])
	if len(e.touchIDs) > 0 {
		return ebiten.TouchPosition(e.touchIDs[0])
	}
	return ebiten.CursorPosition()
}

func (e *ebitenPointerInput) Pressed() bool {
	e.touchIDs = ebiten.AppendTouchIDs(e.touchIDs[:0])
	if len(e.touchIDs) > 0 {
		return true
	}
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// PointerFrame 一帧的指针状态
type PointerFrame struct {
	X, Y         int
	Pressed      bool
	JustPressed  bool
	JustReleased bool
	// 按下时的位置，用于判断点击是否落在同一个控件上
	PressX, PressY int
}

// PointerTracker 由逐帧采样推导按下/释放边沿
//
// 触摸释放的那一帧已经取不到触摸位置，所以释放位置使用最后一次按住时的位置
// （与 inpututil 的 JustReleased 语义一致）
type PointerTracker struct {
	input PointerInput
	frame PointerFrame
}

// NewPointerTracker 创建指针追踪器
func NewPointerTracker(input PointerInput) *PointerTracker {
	return &PointerTracker{input: input}
}

// Update 采样一帧，每帧调用一次
func (t *PointerTracker) Update() PointerFrame {
	prev := t.frame
	pressed := t.input.Pressed()

	frame := PointerFrame{
		Pressed:      pressed,
		JustPressed:  pressed && !prev.Pressed,
		JustReleased: !pressed && prev.Pressed,
		PressX:       prev.PressX,
		PressY:       prev.PressY,
	}
	if pressed {
		frame.X, frame.Y = t.input.Position()
	} else if frame.JustReleased {
		frame.X, frame.Y = prev.X, prev.Y
	} else {
		frame.X, frame.Y = t.input.Position()
	}
	if frame.JustPressed {
		frame.PressX, frame.PressY = frame.X, frame.Y
	}

	t.frame = frame
	return frame
}

// Frame 返回最近一次 Update 的结果
func (t *PointerTracker) Frame() PointerFrame {
	return t.frame
}

// KeyboardInput 键盘与滚轮输入
// 与 PointerInput 一样用于依赖注入
type KeyboardInput interface {
	JustPressed(key ebiten.Key) bool
	Pressed(key ebiten.Key) bool
	Wheel() (float64, float64)
}

type ebitenKeyboardInput struct{}

// NewEbitenKeyboardInput 创建基于 Ebitengine 的键盘输入
func NewEbitenKeyboardInput() KeyboardInput {
	return ebitenKeyboardInput{}
}

func (ebitenKeyboardInput) JustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

func (ebitenKeyboardInput) Pressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

func (ebitenKeyboardInput) Wheel() (float64, float64) {
	return ebiten.Wheel()
}
