package main

import (
	"flag"
	"log"

	"github.com/decker502/stay/assets"
	"github.com/decker502/stay/pkg/app"
	"github.com/decker502/stay/pkg/config"
	"github.com/decker502/stay/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose       = flag.Bool("verbose", false, "显示详细日志")
	name          = flag.String("name", "", "收件人名字（覆盖 story.yaml 中的 recipient）")
	storyPath     = flag.String("story", "", "外部叙事内容 YAML，默认使用内置内容")
	startScene    = flag.String("scene", "", "调试：直接进入指定场景（如 phase2、end-game-popup）")
	reducedMotion = flag.Bool("reduced-motion", false, "放慢背景动画")
	mute          = flag.Bool("mute", false, "关闭场景音效")
	fullscreen    = flag.Bool("fullscreen", false, "全屏启动")
)

func main() {
	flag.Parse()

	embedded.Init(assets.FS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:       *verbose,
		Name:          *name,
		StoryPath:     *storyPath,
		StartScene:    *startScene,
		ReducedMotion: *reducedMotion,
		Mute:          *mute,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(*fullscreen)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Printf("RunGame: %v", err)
	}
}
