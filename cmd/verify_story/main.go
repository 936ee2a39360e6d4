// verify_story 无界面地回放一段触发脚本并打印场景轨迹
//
// 用法：
//
//	go run ./cmd/verify_story -script "continue,tap,tap,tap,yes,wait:4,deep-down,yes,wait:4.1,scroll-end,one-last-thing"
//
// 脚本步骤：
//   - 触发名称：continue, tap, yes, no, deep-down, not-sure, one-last-thing,
//     popup-primary, popup-secondary, popup-dismiss
//   - wait:<秒>：推进计时器
//   - scroll-end：滚动到 Phase2 结尾
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/decker502/stay/assets"
	"github.com/decker502/stay/pkg/config"
	"github.com/decker502/stay/pkg/embedded"
	"github.com/decker502/stay/pkg/game"
	"github.com/decker502/stay/pkg/types"
)

const defaultScript = "continue,tap,tap,tap,yes,wait:4,deep-down,yes,wait:4.1,scroll-end,one-last-thing,popup-primary,popup-primary,popup-primary"

var (
	verbose   = flag.Bool("verbose", false, "显示控制器日志")
	storyPath = flag.String("story", config.DefaultStoryPath, "叙事内容 YAML")
	script    = flag.String("script", defaultScript, "逗号分隔的触发脚本")
	expect    = flag.String("expect", "", "脚本结束时期望的场景（如 PHASE_2），不符时退出码为 1")
)

// 每个 wait 步骤以 60 FPS 的 deltaTime 推进
const frameDelta = 1.0 / 60.0

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	embedded.Init(assets.FS)
	story, err := config.LoadStoryConfig(*storyPath)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	c := game.NewSceneController(story)
	c.Start()
	fmt.Printf("%-4s %-18s %-22s %s\n", "#", "STEP", "SCENE", "DETAIL")
	fmt.Printf("%-4d %-18s %-22s %s\n", 0, "start", c.Scene(), detail(c))

	failed := 0
	for i, step := range strings.Split(*script, ",") {
		step = strings.TrimSpace(step)
		if step == "" {
			continue
		}
		if err := run(c, step); err != nil {
			fmt.Printf("%-4d %-18s ❌ %v\n", i+1, step, err)
			failed++
			continue
		}
		fmt.Printf("%-4d %-18s %-22s %s\n", i+1, step, c.Scene(), detail(c))
	}

	if *expect != "" {
		want, ok := types.ParseScene(*expect)
		if !ok {
			fmt.Printf("❌ unknown expected scene %q\n", *expect)
			os.Exit(1)
		}
		if c.Scene() != want {
			fmt.Printf("❌ ended on %s, expected %s\n", c.Scene(), want)
			os.Exit(1)
		}
		fmt.Printf("✅ ended on %s\n", want)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func run(c *game.SceneController, step string) error {
	switch {
	case strings.HasPrefix(step, "wait:"):
		seconds, err := strconv.ParseFloat(strings.TrimPrefix(step, "wait:"), 64)
		if err != nil || seconds < 0 {
			return fmt.Errorf("invalid wait %q", step)
		}
		for t := 0.0; t < seconds; t += frameDelta {
			c.Update(frameDelta)
		}
		return nil

	case step == "scroll-end":
		if !c.Scene().Scrollable() {
			return fmt.Errorf("scroll is locked in %s", c.Scene())
		}
		// 无界面时内容高度未知，用一个固定范围代替
		c.SetScrollExtent(1000, 800)
		c.ScrollBy(1000)
		return nil
	}

	trigger := types.ParseTrigger(step)
	if trigger == types.TriggerUnknown {
		return fmt.Errorf("unknown trigger %q", step)
	}
	c.Advance(trigger)
	return nil
}

func detail(c *game.SceneController) string {
	switch c.Scene() {
	case types.SceneProgression:
		return fmt.Sprintf("message %d: %q", c.ProgressionCursor(), c.ProgressionText())
	case types.SceneQuestion1:
		return fmt.Sprintf("refusals=%d %q", c.RefusalCount(), c.QuestionText())
	case types.SceneLoyalty:
		return fmt.Sprintf("ready=%v", c.LoyaltyReady())
	case types.ScenePhase2:
		return fmt.Sprintf("scroll=%.0f closing=%v completed=%v", c.Scroll().Offset, c.Scroll().ClosingReached, c.PopupCompleted())
	case types.SceneEndGamePopup:
		step, _ := c.PopupStep()
		return fmt.Sprintf("step %d: %q", c.PopupCursor(), step.Prompt)
	}
	return ""
}
