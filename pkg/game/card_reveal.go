package game

import (
	"sort"

	"github.com/decker502/stay/pkg/types"
	"github.com/zyedidia/generic/mapset"
)

// CardRevealState 记录 Phase2 各卡片组的展开状态
//
// 单选组（memory / clarification / notice / promise）同一时刻最多展开一张，
// 多选组（doubt / optional）用集合记录全部展开的卡片。
// 各组之间互不影响。
type CardRevealState struct {
	single map[types.CardGroup]string
	multi  map[types.CardGroup]mapset.Set[string]
}

// NewCardRevealState 创建全部收起的展开状态
func NewCardRevealState() *CardRevealState {
	return &CardRevealState{
		single: make(map[types.CardGroup]string),
		multi:  make(map[types.CardGroup]mapset.Set[string]),
	}
}

// Toggle 翻转卡片的展开状态，返回翻转后是否展开
// 单选组中展开新卡片会收起同组的旧卡片
func (c *CardRevealState) Toggle(group types.CardGroup, id string) bool {
	if group.MultiSelect() {
		set, ok := c.multi[group]
		if !ok {
			set = mapset.New[string]()
			c.multi[group] = set
		}
		if set.Has(id) {
			set.Remove(id)
			return false
		}
		set.Put(id)
		return true
	}

	if c.single[group] == id {
		delete(c.single, group)
		return false
	}
	c.single[group] = id
	return true
}

// IsExpanded 检查卡片是否展开
func (c *CardRevealState) IsExpanded(group types.CardGroup, id string) bool {
	if group.MultiSelect() {
		set, ok := c.multi[group]
		return ok && set.Has(id)
	}
	open, ok := c.single[group]
	return ok && open == id
}

// Expanded 返回组内展开的卡片ID（升序）
func (c *CardRevealState) Expanded(group types.CardGroup) []string {
	if !group.MultiSelect() {
		if id, ok := c.single[group]; ok {
			return []string{id}
		}
		return nil
	}

	set, ok := c.multi[group]
	if !ok || set.Size() == 0 {
		return nil
	}
	ids := make([]string, 0, set.Size())
	set.Each(func(id string) {
		ids = append(ids, id)
	})
	sort.Strings(ids)
	return ids
}
