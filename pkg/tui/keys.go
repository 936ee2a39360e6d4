package tui

import "github.com/gdamore/tcell/v2"

// Action 终端前端的用户操作
type Action uint8

const (
	ActionNone Action = iota
	ActionPrimary
	ActionSecondary
	ActionDismiss
	ActionScrollUp
	ActionScrollDown
	ActionPageUp
	ActionPageDown
	ActionFocusNext
	ActionFocusPrev
	ActionOneLastThing
	ActionHoldAgree
	ActionHoldLine
	ActionSliderDown
	ActionSliderUp
	ActionCuriousLittle
	ActionCuriousGood
	ActionTapCorner
	ActionPause
	ActionDim
	ActionQuit
	// ActionHeadspace1 之后的值对应第 N 个 headspace 方块
	ActionHeadspace1
)

// maxHeadspaceKeys 数字键 1..9
const maxHeadspaceKeys = 9

// keyToAction 将按键映射为操作
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEnter:
		return ActionPrimary
	case tcell.KeyEscape:
		return ActionDismiss
	case tcell.KeyUp:
		return ActionScrollUp
	case tcell.KeyDown:
		return ActionScrollDown
	case tcell.KeyPgUp:
		return ActionPageUp
	case tcell.KeyPgDn:
		return ActionPageDown
	case tcell.KeyTab:
		return ActionFocusNext
	case tcell.KeyBacktab:
		return ActionFocusPrev
	case tcell.KeyLeft:
		return ActionSliderDown
	case tcell.KeyRight:
		return ActionSliderUp
	case tcell.KeyCtrlC:
		return ActionQuit
	}

	r := ev.Rune()
	if r >= '1' && r <= '0'+maxHeadspaceKeys {
		return ActionHeadspace1 + Action(r-'1')
	}
	switch r {
	case ' ':
		return ActionPrimary
	case 'n', 'N':
		return ActionSecondary
	case 'k', 'K':
		return ActionScrollUp
	case 'j', 'J':
		return ActionScrollDown
	case 'o', 'O':
		return ActionOneLastThing
	case 'h', 'H':
		return ActionHoldAgree
	case 'b', 'B':
		return ActionHoldLine
	case 'l', 'L':
		return ActionCuriousLittle
	case 'g', 'G':
		return ActionCuriousGood
	case '*':
		return ActionTapCorner
	case 'p', 'P':
		return ActionPause
	case 'd', 'D':
		return ActionDim
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}
