package config

// 布局配置常量
// 所有坐标都是逻辑屏幕坐标，Ebitengine 负责缩放到实际窗口

// 窗口 / 逻辑屏幕尺寸
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 800

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 600

	// WindowTitle 窗口标题
	WindowTitle = "stay for a minute"
)

// 文字尺寸
const (
	FontSizeTitle   = 36.0
	FontSizeHeading = 26.0
	FontSizeBody    = 20.0
	FontSizeSmall   = 12.0

	// LineSpacingFactor 行距 = 字号 * LineSpacingFactor
	LineSpacingFactor = 1.45
)

// 按钮与卡片
const (
	ButtonHeight        = 48.0
	ButtonMinWidth      = 140.0
	ButtonPaddingX      = 36.0
	CardPadding         = 22.0
	CardHeight          = 110.0
	CardGap             = 16.0
	ContentMaxWidth     = 620.0
	SliderWidth         = 360.0
	SliderHeight        = 10.0
	HoldButtonRadius    = 40.0
	CornerNodeRadius    = 10.0
	CornerNodeInset     = 24.0
	PopupWidth          = 460.0
	PopupHeight         = 260.0
	NoButtonMinScale    = 0.4
	NoButtonScaleStep   = 0.15
	NoButtonMinOpacity  = 0.3
	NoButtonOpacityStep = 0.1
)

// Phase2 滚动
const (
	// SectionMinHeight 每一段内容的最小高度（min-h-screen）
	SectionMinHeight = float64(GameWindowHeight)

	// ScrollWheelStep 鼠标滚轮一格对应的像素
	ScrollWheelStep = 48.0

	// ScrollKeyStep 方向键一次滚动的像素
	ScrollKeyStep = 64.0
)
