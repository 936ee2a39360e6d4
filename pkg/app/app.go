// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/decker502/stay/pkg/config"
	"github.com/decker502/stay/pkg/game"
	"github.com/decker502/stay/pkg/scenes"
	"github.com/decker502/stay/pkg/types"
	"github.com/decker502/stay/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Name 覆盖叙事内容中的收件人名字
	Name string
	// StoryPath 叙事内容 YAML 路径，为空时使用内置内容
	StoryPath string
	// StartScene 调试用：直接进入指定场景（如 "phase2"）
	StartScene string
	// ReducedMotion 放慢背景动画
	ReducedMotion bool
	// Mute 关闭场景音效
	Mute bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	controller               *game.SceneController
	audioManager             *game.AudioManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	storyPath := cfg.StoryPath
	if storyPath == "" {
		storyPath = config.DefaultStoryPath
	}
	story, err := config.LoadStoryConfig(storyPath)
	if err != nil {
		return nil, fmt.Errorf("叙事内容加载失败: %w", err)
	}
	story = story.WithRecipient(cfg.Name)
	log.Printf("[App] Loaded story from %s (recipient %q)", storyPath, story.Recipient)

	var startScene types.Scene
	jump := false
	if cfg.StartScene != "" {
		scene, ok := types.ParseScene(cfg.StartScene)
		if !ok {
			return nil, fmt.Errorf("unknown scene %q", cfg.StartScene)
		}
		startScene, jump = scene, true
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(game.AudioSampleRate)
	audioManager := game.NewAudioManager(audioContext, cfg.Mute)
	audioManager.StartPad()
	log.Printf("[App] AudioManager initialized (muted=%v)", cfg.Mute)

	palette := config.DefaultPalette()
	controller := game.NewSceneController(story,
		game.WithPalette(palette),
		game.WithReducedMotion(cfg.ReducedMotion),
	)
	controller.OnSceneChange(audioManager.OnSceneChange)
	controller.Start()
	if jump {
		log.Printf("[App] Debug jump to %s", startScene)
		controller.DebugJump(startScene)
	}

	visual := scenes.NewVisualLayer(palette, config.GameWindowWidth, config.GameWindowHeight, time.Now().UnixNano())
	narrative := scenes.NewNarrativeScene(controller, scenes.NarrativeOptions{
		Audio:  audioManager,
		Visual: visual,
		Mobile: utils.IsMobile(),
	})

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(narrative)

	return &App{
		sceneManager: sceneManager,
		controller:   controller,
		audioManager: audioManager,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Close 释放场景、计时器与音频
// ebiten.RunGame 返回后调用
func (a *App) Close() {
	a.sceneManager.Close()
	a.audioManager.Close()
	log.Printf("[App] Closed")
}

// Controller 返回场景控制器
func (a *App) Controller() *game.SceneController {
	return a.controller
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
