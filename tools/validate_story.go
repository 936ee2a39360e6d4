package main

import (
	"fmt"
	"os"

	"github.com/decker502/stay/pkg/config"
	"github.com/decker502/stay/pkg/types"
)

// 用法：go run tools/validate_story.go [assets/story.yaml]
func main() {
	path := "assets/story.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}

	story, err := config.ParseStoryConfig(data)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ YAML 格式正确\n")
	fmt.Printf("✅ 收件人: %s\n", story.Recipient)
	fmt.Printf("✅ 短句: %d, 回应: %d, 弹窗步骤: %d\n",
		len(story.Progression.Messages), len(story.Question1.Rebuttals), len(story.EndGame.Steps))

	warnings := 0
	for _, group := range types.AllCardGroups() {
		cfg, ok := story.CardGroup(group)
		if !ok || len(cfg.Items) == 0 {
			fmt.Printf("⚠️  卡片组 %s 为空，Phase2 将跳过该段\n", group)
			warnings++
			continue
		}
		for _, item := range cfg.Items {
			if item.Title == "" || item.Content == "" {
				fmt.Printf("⚠️  卡片 %s/%s 缺少标题或内容\n", group, item.ID)
				warnings++
			}
		}
		fmt.Printf("✅ 卡片组 %s: %d 张\n", group, len(cfg.Items))
	}
	if len(story.Phase2.Closing.Lines) == 0 {
		fmt.Printf("⚠️  phase2.closing.lines 为空\n")
		warnings++
	}

	if warnings == 0 {
		fmt.Printf("✅ 所有内容完整\n")
	} else {
		fmt.Printf("⚠️  共 %d 个警告\n", warnings)
	}
}
