package tui

import (
	"fmt"
	"strings"

	"github.com/decker502/stay/pkg/config"
	"github.com/decker502/stay/pkg/game"
	"github.com/decker502/stay/pkg/types"
	"github.com/decker502/stay/pkg/utils"
	"github.com/mattn/go-runewidth"
)

// rowStyle 一行文字的样式
type rowStyle uint8

const (
	styleNormal rowStyle = iota
	styleMuted
	styleAccent
	styleTitle
	styleFocused
	styleHint
)

// cardRef 指向一张卡片
type cardRef struct {
	Group types.CardGroup
	ID    string
}

// row 终端中的一行
type row struct {
	Text   string
	Style  rowStyle
	Center bool
}

// content 一帧要绘制的全部内容
type content struct {
	Rows       []row
	Scrollable bool
	// Phase2：可聚焦卡片（按出现顺序）与结尾段落所在行
	Focusables []cardRef
	FocusRows  []int
	ClosingRow int
	// Popup 非空时在中央绘制弹窗
	Popup []row
}

// measureCells 以终端单元格计的宽度
func measureCells(s string) float64 {
	return float64(runewidth.StringWidth(s))
}

// contentBuilder 按宽度折行累积行
type contentBuilder struct {
	width int
	rows  []row
}

func (b *contentBuilder) add(text string, style rowStyle) {
	if text == "" {
		return
	}
	// 放得下的行原样保留（提示行靠多个空格分隔）
	if !strings.Contains(text, "\n") && measureCells(text) <= float64(b.width) {
		b.rows = append(b.rows, row{Text: text, Style: style, Center: true})
		return
	}
	for _, line := range utils.WordWrap(text, float64(b.width), measureCells) {
		b.rows = append(b.rows, row{Text: line, Style: style, Center: true})
	}
}

// addIndented 左对齐并缩进（卡片内容）
func (b *contentBuilder) addIndented(text string, indent int, style rowStyle) {
	pad := strings.Repeat(" ", indent)
	for _, line := range utils.WordWrap(text, float64(b.width-indent), measureCells) {
		b.rows = append(b.rows, row{Text: pad + line, Style: style})
	}
}

func (b *contentBuilder) blank(n int) {
	for i := 0; i < n; i++ {
		b.rows = append(b.rows, row{})
	}
}

// buildContent 根据控制器状态生成终端内容
// width 为可用列数，focus 为 Phase2 中当前聚焦卡片的下标（-1 表示无）
func buildContent(c *game.SceneController, width, focus int) content {
	b := &contentBuilder{width: max(width, 10)}
	story := c.Story()
	p := story.Personalize

	switch c.Scene() {
	case types.SceneEntry:
		b.add(p(story.Entry.Greeting), styleTitle)
		b.add(p(story.Entry.Subtitle), styleMuted)
		b.blank(2)
		b.add("[Enter] "+story.Entry.ContinueLabel, styleHint)

	case types.SceneProgression:
		b.add(p(c.ProgressionText()), styleTitle)
		b.blank(2)
		b.add(fmt.Sprintf("[Enter] %d/%d", c.ProgressionCursor()+1, len(story.Progression.Messages)), styleHint)

	case types.SceneQuestion1:
		b.add(p(c.QuestionText()), styleTitle)
		b.blank(2)
		b.add(fmt.Sprintf("[Enter] %s    [n] %s", story.Question1.YesLabel, c.NoButton().Label), styleHint)

	case types.SceneLoyalty:
		b.add(p(story.Loyalty.Quote), styleMuted)
		b.blank(1)
		for _, line := range story.Loyalty.Lines {
			b.add(p(line), styleNormal)
		}
		b.blank(2)
		if c.LoyaltyReady() {
			b.add("[Enter] "+story.Loyalty.ButtonLabel, styleHint)
		}

	case types.SceneAffirmation:
		b.add(p(story.Affirmation.Prompt), styleTitle)
		b.blank(2)
		b.add(fmt.Sprintf("[Enter] %s    [n] %s", story.Affirmation.YesLabel, story.Affirmation.NotSureLabel), styleHint)
		if text, ok := c.Transient(game.SlotReassurance); ok {
			b.blank(1)
			b.add(p(text), styleAccent)
		}

	case types.SceneTransitionToScroll:
		b.add(p(story.Transition.Line), styleTitle)

	case types.ScenePhase2, types.SceneEndGamePopup:
		return buildPhase2Content(c, b, focus)
	}

	if text, ok := c.Transient(game.SlotCorner); ok {
		b.blank(1)
		b.add(p(text), styleAccent)
	}
	return content{Rows: b.rows}
}

// buildPhase2Content 长滚动页，弹窗打开时附带弹窗内容
func buildPhase2Content(c *game.SceneController, b *contentBuilder, focus int) content {
	story := c.Story()
	p := story.Personalize
	p2 := story.Phase2
	out := content{Scrollable: true}

	section := func() { b.blank(3) }

	b.add(p(p2.Values), styleTitle)
	b.blank(1)
	b.add(p(p2.Reality), styleMuted)

	cards := func(group types.CardGroup) {
		cfg, ok := story.CardGroup(group)
		if !ok || len(cfg.Items) == 0 {
			return
		}
		section()
		b.add(p(cfg.Title), styleTitle)
		b.add(cfg.Cue, styleHint)
		b.blank(1)
		for _, item := range cfg.Items {
			ref := cardRef{Group: group, ID: item.ID}
			style := styleNormal
			if focus >= 0 && focus == len(out.Focusables) {
				style = styleFocused
			}
			out.Focusables = append(out.Focusables, ref)
			out.FocusRows = append(out.FocusRows, len(b.rows))

			marker := "▸ "
			expanded := c.IsCardExpanded(group, item.ID)
			if expanded {
				marker = "▾ "
			}
			b.rows = append(b.rows, row{Text: marker + p(item.Title), Style: style})
			if expanded {
				b.addIndented(p(item.Content), 4, styleMuted)
			}
		}
	}

	cards(types.CardGroupMemory)
	cards(types.CardGroupClarification)
	cards(types.CardGroupNotice)
	cards(types.CardGroupPromise)

	if len(p2.BlurredLines) > 0 {
		section()
		b.add(p(p2.BlurredTitle), styleTitle)
		b.add("[b] "+p2.BlurredCue, styleHint)
		for i, line := range p2.BlurredLines {
			if c.HeldLine() == i {
				b.add(p(line), styleAccent)
			} else {
				b.add(blur(p(line)), styleMuted)
			}
		}
	}

	if p2.AgreementPrompt != "" {
		section()
		b.add(p(p2.AgreementPrompt), styleTitle)
		mark := "( )"
		if c.HoldingAgreement() {
			mark = "(♥)"
		}
		b.add("[h] "+mark+" "+p2.AgreementCue, styleHint)
	}

	if len(p2.Headspace) > 0 {
		section()
		b.add(p(p2.HeadspaceTitle), styleTitle)
		var tiles []string
		for i, h := range p2.Headspace {
			label := fmt.Sprintf("[%d] %s", i+1, h.Title)
			if c.ActiveHeadspace() == h.ID {
				label = "*" + label + "*"
			}
			tiles = append(tiles, label)
		}
		b.add(strings.Join(tiles, "  "), styleHint)
		if text, ok := c.Transient(game.SlotHeadspace); ok {
			b.add(p(text), styleAccent)
		}
	}

	section()
	b.add(p(p2.NowTitle), styleTitle)
	for _, line := range p2.NowLines {
		b.add(p(line), styleNormal)
	}
	b.blank(1)
	b.add(p(p2.ExpectationsTitle), styleTitle)
	for _, line := range p2.Expectations {
		b.add(p(line), styleMuted)
	}

	cards(types.CardGroupDoubt)
	cards(types.CardGroupOptional)

	if p2.Curiosity.Prompt != "" {
		section()
		b.add(p(p2.Curiosity.Prompt), styleTitle)
		b.add(fmt.Sprintf("[l] %s    [g] %s", p2.Curiosity.LittleLabel, p2.Curiosity.GoodLabel), styleHint)
		if c.Curiosity() != game.CuriosityIdle {
			b.add(p(p2.Curiosity.Text), styleAccent)
		}
	}

	if p2.Assurance.Label != "" || len(p2.Assurance.Bands) > 0 {
		section()
		b.add(p(p2.Assurance.Label), styleTitle)
		b.add(sliderBar(c.Assurance(), 20), styleHint)
		b.add(p(c.AssuranceText()), styleAccent)
	}

	section()
	out.ClosingRow = len(b.rows)
	for _, line := range p2.Closing.Lines {
		b.add(p(line), styleNormal)
	}
	b.blank(1)
	switch {
	case c.OneLastThingAvailable():
		b.add("[o] "+p2.Closing.OneLastThingLabel, styleHint)
	case c.PopupCompleted():
		b.add(p(p2.Closing.StillHere), styleMuted)
	}
	if text, ok := c.Transient(game.SlotMicro); ok {
		b.blank(1)
		b.add(p(text), styleMuted)
	}
	b.blank(2)
	out.Rows = b.rows

	if c.Scene() == types.SceneEndGamePopup {
		out.Popup = popupRows(c, b.width)
	}
	return out
}

// popupRows 弹窗内容
func popupRows(c *game.SceneController, width int) []row {
	step, ok := c.PopupStep()
	if !ok {
		return nil
	}
	pb := &contentBuilder{width: max(min(width, 46)-4, 10)}
	pb.add(step.Prompt, styleTitle)
	pb.blank(1)
	hint := "[Enter] " + step.Primary
	if step.Secondary != "" {
		hint += "    [n] " + step.Secondary
	}
	pb.add(hint, styleHint)
	if text, ok := c.Transient(game.SlotPopupResponse); ok {
		pb.blank(1)
		pb.add(text, styleAccent)
	}
	pb.blank(1)
	pb.add("[Esc] close", styleMuted)
	return pb.rows
}

// blur 把句子中的字符替换为点，只保留空格（按住前不可读）
func blur(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' {
			return r
		}
		return '·'
	}, s)
}

// sliderBar [■■■■■□□□□□] 50
func sliderBar(value, cells int) string {
	span := config.AssuranceMax - config.AssuranceMin
	filled := (value - config.AssuranceMin) * cells / span
	return fmt.Sprintf("◀ [%s%s] %d ▶", strings.Repeat("■", filled), strings.Repeat("□", cells-filled), value)
}
