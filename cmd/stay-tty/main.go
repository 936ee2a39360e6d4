// stay-tty 在终端中运行叙事
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/stay/assets"
	"github.com/decker502/stay/pkg/config"
	"github.com/decker502/stay/pkg/embedded"
	"github.com/decker502/stay/pkg/game"
	"github.com/decker502/stay/pkg/tui"
	"github.com/decker502/stay/pkg/types"
)

var (
	verbose       = flag.Bool("verbose", false, "把日志写入 stay-tty.log")
	name          = flag.String("name", "", "收件人名字（覆盖 story.yaml 中的 recipient）")
	storyPath     = flag.String("story", config.DefaultStoryPath, "叙事内容 YAML")
	startScene    = flag.String("scene", "", "调试：直接进入指定场景")
	reducedMotion = flag.Bool("reduced-motion", false, "放慢背景动画")
)

func main() {
	flag.Parse()

	// 终端被 tcell 占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *verbose {
		f, err := os.OpenFile("stay-tty.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	embedded.Init(assets.FS)
	story, err := config.LoadStoryConfig(*storyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	controller := game.NewSceneController(story.WithRecipient(*name), game.WithReducedMotion(*reducedMotion))
	controller.Start()
	defer controller.Shutdown()
	if *startScene != "" {
		scene, ok := types.ParseScene(*startScene)
		if !ok {
			fmt.Fprintf(os.Stderr, "error: unknown scene %q\n", *startScene)
			os.Exit(1)
		}
		controller.DebugJump(scene)
	}

	app, err := tui.New(controller)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
