package game

// TransientSlot 短暂消息的显示位置
// 同一位置同一时刻只显示一条，新消息会替换旧消息并重新计时
type TransientSlot int

const (
	// SlotReassurance "I'm not sure" 之后的安慰文字
	SlotReassurance TransientSlot = iota
	// SlotHeadspace headspace 方块的句子
	SlotHeadspace
	// SlotCorner 角落交互点的消息
	SlotCorner
	// SlotMicro Phase2 周期性微消息
	SlotMicro
	// SlotPopupResponse 弹窗次选项的回应
	SlotPopupResponse
)

type transientMessage struct {
	text   string
	task   TaskID
	onHide func()
}
