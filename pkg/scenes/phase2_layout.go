package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/stay/pkg/config"
	"github.com/decker502/stay/pkg/game"
	"github.com/decker502/stay/pkg/types"
)

// phase2Layout 在内容坐标系中（顶部为 0）逐段排布长滚动页
type phase2Layout struct {
	b   *layoutBuilder
	c   *game.SceneController
	y   float64
	top float64 // 当前段落的起点
}

// buildPhase2 排布 Phase2 全部段落，按滚动偏移平移并剔除屏幕外元素
// interactive 为 false 时（弹窗覆盖）不生成控件
func buildPhase2(b *layoutBuilder, c *game.SceneController, interactive bool) {
	textFrom, widgetFrom := len(b.out.Texts), len(b.out.Widgets)
	p := &phase2Layout{b: b, c: c}
	story := c.Story()
	p2 := story.Phase2

	p.section(func() {
		p.heading(p2.Values)
		p.gap(24)
		p.body(p2.Reality, colorTextMuted)
	})
	p.cardSection(types.CardGroupMemory)
	p.cardSection(types.CardGroupClarification)
	p.cardSection(types.CardGroupNotice)
	p.cardSection(types.CardGroupPromise)

	if len(p2.BlurredLines) > 0 {
		p.section(func() {
			p.heading(p2.BlurredTitle)
			p.cue(p2.BlurredCue)
			for i, line := range p2.BlurredLines {
				p.holdLine(i, line)
			}
		})
	}

	if p2.AgreementPrompt != "" {
		p.section(func() {
			p.heading(p2.AgreementPrompt)
			p.holdCircle()
			p.cue(p2.AgreementCue)
		})
	}

	if len(p2.Headspace) > 0 {
		p.section(func() {
			p.heading(p2.HeadspaceTitle)
			p.headspaceTiles()
			if text, ok := c.Transient(game.SlotHeadspace); ok {
				p.body(text, colorAccent)
			}
		})
	}

	p.section(func() {
		p.heading(p2.NowTitle)
		for _, line := range p2.NowLines {
			p.body(line, colorText)
		}
		p.gap(36)
		p.heading(p2.ExpectationsTitle)
		for _, line := range p2.Expectations {
			p.body(line, colorTextMuted)
		}
	})

	p.cardSection(types.CardGroupDoubt)
	p.cardSection(types.CardGroupOptional)

	if p2.Curiosity.Prompt != "" {
		p.section(func() {
			p.heading(p2.Curiosity.Prompt)
			p.curiosity()
		})
	}

	if len(p2.Assurance.Bands) > 0 || p2.Assurance.Label != "" {
		p.section(func() {
			p.heading(p2.Assurance.Label)
			p.slider()
			p.body(c.AssuranceText(), colorAccent)
		})
	}

	closingTop := p.y
	p.section(func() {
		for _, line := range p2.Closing.Lines {
			p.body(line, colorText)
		}
		p.gap(24)
		switch {
		case c.OneLastThingAvailable():
			p.button("one-last-thing", p2.Closing.OneLastThingLabel, true, func() {
				c.Advance(types.TriggerOneLastThing)
			})
		case c.PopupCompleted():
			p.body(p2.Closing.StillHere, colorTextMuted)
		}
	})

	b.out.ContentHeight = p.y
	b.out.ClosingTop = closingTop

	if !interactive {
		b.out.Widgets = b.out.Widgets[:widgetFrom]
	}
	b.shift(textFrom, widgetFrom, -c.Scroll().Offset)
	b.cull()
}

// section 一段内容至少占满大半屏，内容从段落上部开始
func (p *phase2Layout) section(fill func()) {
	p.top = p.y
	p.y += p.b.env.H * 0.18
	fill()
	p.y = math.Max(p.y+p.b.env.H*0.12, p.top+p.b.env.H*0.75)
}

func (p *phase2Layout) gap(dy float64) { p.y += dy }

func (p *phase2Layout) personalize(s string) string {
	return p.c.Story().Personalize(s)
}

func (p *phase2Layout) heading(s string) {
	if s == "" {
		return
	}
	p.y = p.b.centered(p.personalize(s), roleHeading, p.y, 1, colorText) + 12
}

func (p *phase2Layout) body(s string, c color.RGBA) {
	if s == "" {
		return
	}
	p.y = p.b.centered(p.personalize(s), roleBody, p.y, 1, c) + 8
}

func (p *phase2Layout) cue(s string) {
	if s == "" {
		return
	}
	p.y = p.b.centered(s, roleSmall, p.y+4, 0.7, colorTextMuted) + 12
}

func (p *phase2Layout) button(id, label string, primary bool, onTap func()) {
	p.y = p.b.buttonRow(p.y, buttonSpec{id: id, label: label, primary: primary, onTap: onTap}) + 16
}

// cardSection 一组可展开卡片，组不存在时跳过
func (p *phase2Layout) cardSection(group types.CardGroup) {
	cfg, ok := p.c.Story().CardGroup(group)
	if !ok || len(cfg.Items) == 0 {
		return
	}
	p.section(func() {
		p.heading(cfg.Title)
		p.cue(cfg.Cue)
		for _, item := range cfg.Items {
			p.card(group, item)
		}
	})
}

// card 卡片：收起时只显示标题，展开后追加内容
func (p *phase2Layout) card(group types.CardGroup, item config.CardItem) {
	env := p.b.env
	x, w := env.contentLeft(), env.contentWidth()
	inner := w - 2*config.CardPadding
	expanded := p.c.IsCardExpanded(group, item.ID)

	top := p.y
	y := p.b.leftText(p.personalize(item.Title), roleHeading, x+config.CardPadding, top+config.CardPadding, inner, 1, colorText)
	if expanded {
		y = p.b.leftText(p.personalize(item.Content), roleBody, x+config.CardPadding, y+8, inner, 1, colorTextMuted)
	}
	h := math.Max(y+config.CardPadding-top, config.CardHeight*0.6)

	id := item.ID
	p.b.out.Widgets = append(p.b.out.Widgets, widget{
		ID:       fmt.Sprintf("card:%s:%s", group, id),
		Kind:     widgetCard,
		Bounds:   rect{X: x, Y: top, W: w, H: h},
		Label:    item.Title,
		Detail:   item.Content,
		Expanded: expanded,
		OnTap:    func() { p.c.ToggleCard(group, id) },
	})
	p.y = top + h + config.CardGap
}

// holdLine 按住才变清晰的句子
func (p *phase2Layout) holdLine(index int, line string) {
	env := p.b.env
	top := p.y
	p.y = p.b.centered(p.personalize(line), roleBody, top+10, 1, colorText) + 10
	p.b.out.Texts[len(p.b.out.Texts)-1].Blurred = p.c.HeldLine() != index

	c := p.c
	p.b.out.Widgets = append(p.b.out.Widgets, widget{
		ID:        fmt.Sprintf("hold-line:%d", index),
		Kind:      widgetHoldLine,
		Bounds:    rect{X: env.contentLeft(), Y: top, W: env.contentWidth(), H: p.y - top},
		OnPress:   func() { c.HoldLine(index) },
		OnRelease: c.ReleaseLine,
	})
	p.y += 6
}

// holdCircle "Hold if you agree" 圆形按钮
func (p *phase2Layout) holdCircle() {
	env := p.b.env
	r := config.HoldButtonRadius
	if env.Mobile {
		r *= 1.3
	}
	c := p.c
	p.y += 12
	p.b.out.Widgets = append(p.b.out.Widgets, widget{
		ID:        "agreement",
		Kind:      widgetHoldCircle,
		Bounds:    rect{X: env.W/2 - r, Y: p.y, W: 2 * r, H: 2 * r},
		Expanded:  c.HoldingAgreement(),
		OnPress:   func() { c.SetHoldingAgreement(true) },
		OnRelease: func() { c.SetHoldingAgreement(false) },
	})
	p.y += 2*r + 16
}

// headspaceTiles 一行 headspace 方块
func (p *phase2Layout) headspaceTiles() {
	env := p.b.env
	items := p.c.Story().Phase2.Headspace
	const gap = 14.0
	n := float64(len(items))
	tw := math.Min(150, (env.contentWidth()-gap*(n-1))/n)
	th := 72.0
	x := env.W/2 - (tw*n+gap*(n-1))/2
	active := p.c.ActiveHeadspace()
	c := p.c

	for _, item := range items {
		id := item.ID
		p.b.out.Widgets = append(p.b.out.Widgets, widget{
			ID:       "headspace:" + id,
			Kind:     widgetTile,
			Bounds:   rect{X: x, Y: p.y, W: tw, H: th},
			Label:    item.Title,
			Expanded: active == id,
			OnTap:    func() { c.SelectHeadspace(id) },
		})
		x += tw + gap
	}
	p.y += th + 20
}

// curiosity "a little" / "a good amount" 两个按钮
func (p *phase2Layout) curiosity() {
	cfg := p.c.Story().Phase2.Curiosity
	c := p.c
	p.y = p.b.buttonRow(p.y,
		buttonSpec{id: "curiosity-little", label: cfg.LittleLabel, primary: c.Curiosity() == game.CuriosityLittle, onTap: func() {
			c.SetCuriosity(game.CuriosityLittle)
		}},
		buttonSpec{id: "curiosity-good", label: cfg.GoodLabel, primary: c.Curiosity() == game.CuriosityGood, onTap: func() {
			c.SetCuriosity(game.CuriosityGood)
		}},
	) + 20
	if c.Curiosity() != game.CuriosityIdle {
		p.body(cfg.Text, colorAccent)
	}
}

// slider 安心滑块
func (p *phase2Layout) slider() {
	env := p.b.env
	w := math.Min(config.SliderWidth, env.contentWidth())
	c := p.c
	// 点击区域比滑槽高，便于触摸
	p.b.out.Widgets = append(p.b.out.Widgets, widget{
		ID:     "assurance",
		Kind:   widgetSlider,
		Bounds: rect{X: env.W/2 - w/2, Y: p.y, W: w, H: 32},
		Value:  float64(c.Assurance()-config.AssuranceMin) / float64(config.AssuranceMax-config.AssuranceMin),
		OnSlide: func(v float64) {
			c.SetAssurance(config.AssuranceMin + int(math.Round(v*float64(config.AssuranceMax-config.AssuranceMin))))
		},
	})
	p.y += 32 + 20
}
