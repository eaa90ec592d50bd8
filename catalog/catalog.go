// Package catalog 负责把原始表格数据加载为内存中的香水目录。
//
// 目录在进程内一次性加载、之后只读共享：过滤 / 排序 / 相似度计算
// 都是目录快照上的纯函数，多个并发请求可以无锁共享同一快照。
package catalog

import "github.com/rushteam/scentkit/core"

// Catalog 是加载完成的只读目录快照，带 ID 索引。
type Catalog struct {
	items []*core.Fragrance
	byID  map[string]*core.Fragrance
}

// New 基于加载结果构建目录。items 的相对顺序被保留。
func New(items []*core.Fragrance) *Catalog {
	byID := make(map[string]*core.Fragrance, len(items))
	for _, f := range items {
		if f == nil {
			continue
		}
		byID[f.ID] = f
	}
	return &Catalog{items: items, byID: byID}
}

// All 返回目录中的全部香水（加载顺序）。
// 返回的切片为目录内部状态，调用方不应修改。
func (c *Catalog) All() []*core.Fragrance {
	return c.items
}

// Get 按 ID 查找香水。
func (c *Catalog) Get(id string) (*core.Fragrance, bool) {
	f, ok := c.byID[id]
	return f, ok
}

// Len 返回目录大小。
func (c *Catalog) Len() int {
	return len(c.items)
}
