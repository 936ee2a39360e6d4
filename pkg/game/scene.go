package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the app (the narrative itself, or a fallback notice).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Disposable 可选接口：场景被替换或窗口关闭时释放资源
//
// 实现此接口的场景会在以下时机被调用 Dispose()：
//   - SceneManager 切换到其它场景
//   - 窗口关闭
//
// 叙事场景在这里取消全部计时器，避免回调在卸载后触发
type Disposable interface {
	Dispose()
}
