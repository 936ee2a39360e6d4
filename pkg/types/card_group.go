package types

// CardGroup 标识 Phase2 中一组可展开的卡片
type CardGroup string

const (
	CardGroupMemory        CardGroup = "memory"
	CardGroupClarification CardGroup = "clarification"
	CardGroupNotice        CardGroup = "notice"
	CardGroupPromise       CardGroup = "promise"
	CardGroupDoubt         CardGroup = "doubt"
	CardGroupOptional      CardGroup = "optional"
)

// MultiSelect 返回该组是否允许同时展开多张卡片
// doubt 与 optional 为多选，其余组同一时刻最多展开一张
func (g CardGroup) MultiSelect() bool {
	return g == CardGroupDoubt || g == CardGroupOptional
}

// AllCardGroups 返回全部卡片组
func AllCardGroups() []CardGroup {
	return []CardGroup{
		CardGroupMemory,
		CardGroupClarification,
		CardGroupNotice,
		CardGroupPromise,
		CardGroupDoubt,
		CardGroupOptional,
	}
}
