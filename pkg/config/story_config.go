package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/decker502/stay/pkg/embedded"
	"github.com/decker502/stay/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultStoryPath 内置叙事内容的路径（位于嵌入 FS 中）
const DefaultStoryPath = "assets/story.yaml"

// namePlaceholder 文本中的收件人占位符
const namePlaceholder = "{name}"

// StoryConfig 叙事内容配置
// 所有展示文字都来自这里，场景控制器只保存索引与开关
type StoryConfig struct {
	Recipient   string                              `yaml:"recipient"`   // 收件人名字，替换 {name}
	Entry       EntryConfig                         `yaml:"entry"`       // 开场
	Progression ProgressionConfig                   `yaml:"progression"` // 逐条短句
	Question1   QuestionConfig                      `yaml:"question1"`   // 第一个 Yes/No 问题
	Loyalty     LoyaltyConfig                       `yaml:"loyalty"`     // 忠诚陈述
	Affirmation AffirmationConfig                   `yaml:"affirmation"` // 确认问题
	Transition  TransitionConfig                    `yaml:"transition"`  // 过渡页
	Phase2      Phase2Config                        `yaml:"phase2"`      // 长滚动页的各段文字
	Cards       map[types.CardGroup]CardGroupConfig `yaml:"cards"`       // 可展开卡片组
	EndGame     EndGameConfig                       `yaml:"endGame"`     // 结尾弹窗序列
	Corners     []CornerNode                        `yaml:"corners"`     // 角落交互点（可选）
	Micro       []string                            `yaml:"micro"`       // Phase2 周期性微消息（可选）
}

// EntryConfig 开场文字
type EntryConfig struct {
	Greeting      string `yaml:"greeting"`
	Subtitle      string `yaml:"subtitle"`
	ContinueLabel string `yaml:"continueLabel"`
	Cue           string `yaml:"cue"`
}

// ProgressionConfig 逐条展示的短句
type ProgressionConfig struct {
	Messages []string `yaml:"messages"`
	Cue      string   `yaml:"cue"`
}

// QuestionConfig 第一个问题及 "No" 之后的回应
type QuestionConfig struct {
	Prompt       string   `yaml:"prompt"`
	YesLabel     string   `yaml:"yesLabel"`
	NoLabel      string   `yaml:"noLabel"`
	NoLabelAfter string   `yaml:"noLabelAfter"` // 第一次 "No" 之后按钮文字
	Cue          string   `yaml:"cue"`
	Rebuttals    []string `yaml:"rebuttals"` // NO_REBUTTALS，循环使用
}

// LoyaltyConfig 忠诚陈述
type LoyaltyConfig struct {
	Quote       string   `yaml:"quote"`
	Lines       []string `yaml:"lines"`
	ButtonLabel string   `yaml:"buttonLabel"`
	Cue         string   `yaml:"cue"`
}

// AffirmationConfig 确认问题
type AffirmationConfig struct {
	Prompt       string `yaml:"prompt"`
	YesLabel     string `yaml:"yesLabel"`
	NotSureLabel string `yaml:"notSureLabel"`
	Reassurance  string `yaml:"reassurance"`
	Cue          string `yaml:"cue"`
}

// TransitionConfig 过渡页文字
type TransitionConfig struct {
	Line string `yaml:"line"`
	Cue  string `yaml:"cue"`
}

// HeadspaceItem "My Headspace" 中的一个方块
type HeadspaceItem struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Line  string `yaml:"line"`
}

// CuriosityConfig "Still curious?" 段落
type CuriosityConfig struct {
	Prompt      string `yaml:"prompt"`
	LittleLabel string `yaml:"littleLabel"`
	GoodLabel   string `yaml:"goodLabel"`
	Text        string `yaml:"text"`
}

// AssuranceBand 滑块值 >= Min 时显示 Text
type AssuranceBand struct {
	Min  int    `yaml:"min"`
	Text string `yaml:"text"`
}

// AssuranceConfig 安心滑块，只影响文字
type AssuranceConfig struct {
	Label string          `yaml:"label"`
	Bands []AssuranceBand `yaml:"bands"`
}

// ClosingConfig 结尾段落
type ClosingConfig struct {
	Lines             []string `yaml:"lines"`
	OneLastThingLabel string   `yaml:"oneLastThingLabel"`
	StillHere         string   `yaml:"stillHere"`
}

// Phase2Config 长滚动页中非卡片部分的文字
type Phase2Config struct {
	Values            string          `yaml:"values"`
	Reality           string          `yaml:"reality"`
	BlurredTitle      string          `yaml:"blurredTitle"`
	BlurredCue        string          `yaml:"blurredCue"`
	BlurredLines      []string        `yaml:"blurredLines"`
	AgreementPrompt   string          `yaml:"agreementPrompt"`
	AgreementCue      string          `yaml:"agreementCue"`
	HeadspaceTitle    string          `yaml:"headspaceTitle"`
	Headspace         []HeadspaceItem `yaml:"headspace"`
	NowTitle          string          `yaml:"nowTitle"`
	NowLines          []string        `yaml:"nowLines"`
	ExpectationsTitle string          `yaml:"expectationsTitle"`
	Expectations      []string        `yaml:"expectations"`
	Curiosity         CuriosityConfig `yaml:"curiosity"`
	Assurance         AssuranceConfig `yaml:"assurance"`
	Closing           ClosingConfig   `yaml:"closing"`
}

// CardItem 一张卡片：标题面与内容面
type CardItem struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

// CardGroupConfig 一组卡片
type CardGroupConfig struct {
	Title string     `yaml:"title"`
	Cue   string     `yaml:"cue"`
	Items []CardItem `yaml:"items"`
}

// PopupStep 结尾弹窗的一步
type PopupStep struct {
	Prompt    string `yaml:"prompt"`
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Response  string `yaml:"response"` // 选择次选项时的短暂回应
}

// EndGameConfig 结尾弹窗序列
type EndGameConfig struct {
	Steps []PopupStep `yaml:"steps"`
}

// CornerNode 角落交互点
type CornerNode struct {
	ID      string `yaml:"id"`
	Message string `yaml:"message"`
}

// LoadStoryConfig 加载叙事内容配置
// 参数：
//
//	path - "assets/" 开头时从嵌入 FS 读取，否则从磁盘读取
//
// 返回：
//
//	*StoryConfig - 已应用默认值并通过验证的配置
//	error - 读取、解析或验证失败
func LoadStoryConfig(path string) (*StoryConfig, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(path, "assets/") && embedded.IsInitialized() {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read story config %s: %w", path, err)
	}

	story, err := ParseStoryConfig(data)
	if err != nil {
		return nil, fmt.Errorf("story config %s: %w", path, err)
	}
	return story, nil
}

// ParseStoryConfig 从 YAML 数据解析叙事内容配置
func ParseStoryConfig(data []byte) (*StoryConfig, error) {
	var story StoryConfig
	if err := yaml.Unmarshal(data, &story); err != nil {
		return nil, fmt.Errorf("failed to parse story YAML: %w", err)
	}

	applyStoryDefaults(&story)

	if err := validateStoryConfig(&story); err != nil {
		return nil, fmt.Errorf("invalid story config: %w", err)
	}
	return &story, nil
}

// applyStoryDefaults 为缺失的按钮文字等可选字段设置默认值
func applyStoryDefaults(story *StoryConfig) {
	if story.Recipient == "" {
		story.Recipient = "you"
	}
	setDefault(&story.Entry.ContinueLabel, "Continue")
	setDefault(&story.Question1.YesLabel, "Yes")
	setDefault(&story.Question1.NoLabel, "No")
	setDefault(&story.Question1.NoLabelAfter, story.Question1.NoLabel)
	setDefault(&story.Loyalty.ButtonLabel, "Deep down...")
	setDefault(&story.Affirmation.YesLabel, "Yes")
	setDefault(&story.Affirmation.NotSureLabel, "I’m not sure")
	setDefault(&story.Phase2.Closing.OneLastThingLabel, "One last thing")

	if story.Cards == nil {
		story.Cards = make(map[types.CardGroup]CardGroupConfig)
	}

	// 滑块区间按 Min 升序，AssuranceText 依赖这个顺序
	sort.SliceStable(story.Phase2.Assurance.Bands, func(i, j int) bool {
		return story.Phase2.Assurance.Bands[i].Min < story.Phase2.Assurance.Bands[j].Min
	})
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// validateStoryConfig 验证叙事内容的完整性
func validateStoryConfig(story *StoryConfig) error {
	if len(story.Progression.Messages) == 0 {
		return fmt.Errorf("progression.messages: at least one message is required")
	}
	if story.Question1.Prompt == "" {
		return fmt.Errorf("question1.prompt is required")
	}
	if len(story.Question1.Rebuttals) == 0 {
		return fmt.Errorf("question1.rebuttals: at least one rebuttal is required")
	}
	if len(story.EndGame.Steps) == 0 {
		return fmt.Errorf("endGame.steps: at least one step is required")
	}
	for i, step := range story.EndGame.Steps {
		if step.Prompt == "" || step.Primary == "" {
			return fmt.Errorf("endGame.steps[%d]: prompt and primary are required", i)
		}
	}

	known := make(map[types.CardGroup]bool)
	for _, g := range types.AllCardGroups() {
		known[g] = true
	}
	for group, cfg := range story.Cards {
		if !known[group] {
			return fmt.Errorf("cards: unknown group %q", group)
		}
		seen := make(map[string]bool)
		for i, item := range cfg.Items {
			if item.ID == "" {
				return fmt.Errorf("cards.%s.items[%d]: id is required", group, i)
			}
			if seen[item.ID] {
				return fmt.Errorf("cards.%s.items[%d]: duplicate id %q", group, i, item.ID)
			}
			seen[item.ID] = true
		}
	}

	seenHeadspace := make(map[string]bool)
	for i, h := range story.Phase2.Headspace {
		if h.ID == "" || seenHeadspace[h.ID] {
			return fmt.Errorf("phase2.headspace[%d]: id must be unique and non-empty", i)
		}
		seenHeadspace[h.ID] = true
	}

	for i, band := range story.Phase2.Assurance.Bands {
		if band.Min < AssuranceMin || band.Min > AssuranceMax {
			return fmt.Errorf("phase2.assurance.bands[%d]: min must be between %d and %d, got %d", i, AssuranceMin, AssuranceMax, band.Min)
		}
	}
	return nil
}

// WithRecipient 返回替换了收件人名字的副本（name 为空时原样返回）
func (s *StoryConfig) WithRecipient(name string) *StoryConfig {
	name = strings.TrimSpace(name)
	if name == "" {
		return s
	}
	clone := *s
	clone.Recipient = name
	return &clone
}

// Personalize 将文本中的 {name} 替换为收件人
func (s *StoryConfig) Personalize(text string) string {
	return strings.ReplaceAll(text, namePlaceholder, s.Recipient)
}

// CardGroup 返回指定卡片组配置
func (s *StoryConfig) CardGroup(group types.CardGroup) (CardGroupConfig, bool) {
	cfg, ok := s.Cards[group]
	return cfg, ok
}

// HasCard 检查卡片组中是否存在指定 ID
func (s *StoryConfig) HasCard(group types.CardGroup, id string) bool {
	cfg, ok := s.Cards[group]
	if !ok {
		return false
	}
	for _, item := range cfg.Items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// HeadspaceLine 返回 headspace 方块对应的句子
func (s *StoryConfig) HeadspaceLine(id string) (string, bool) {
	for _, h := range s.Phase2.Headspace {
		if h.ID == id {
			return h.Line, true
		}
	}
	return "", false
}

// CornerMessage 返回角落交互点的消息
func (s *StoryConfig) CornerMessage(id string) (string, bool) {
	for _, c := range s.Corners {
		if c.ID == id {
			return c.Message, true
		}
	}
	return "", false
}

// AssuranceText 返回滑块值所在区间的文字
// value 超出 [AssuranceMin, AssuranceMax] 时先夹紧
func (s *StoryConfig) AssuranceText(value int) string {
	value = ClampAssurance(value)
	text := ""
	for _, band := range s.Phase2.Assurance.Bands {
		if value >= band.Min {
			text = band.Text
		}
	}
	return text
}
