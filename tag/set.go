package tag

import "github.com/samber/lo"

// Set 一个实体拥有的有序标签集合
type Set []AttachedTag

// Has 是否含有该种类的标签
func (s Set) Has(k Kind) bool {
	return lo.ContainsBy(s, func(t AttachedTag) bool { return t.kind == k })
}

// Get 该种类的第一个标签
func (s Set) Get(k Kind) (AttachedTag, bool) {
	return lo.Find(s, func(t AttachedTag) bool { return t.kind == k })
}

// Kinds 集合中出现的标签种类（去重，保持顺序）
func (s Set) Kinds() []Kind {
	return lo.Uniq(lo.Map(s, func(t AttachedTag, _ int) Kind { return t.kind }))
}

// Render 每个标签的规范字符串
func (s Set) Render() []string {
	return lo.Map(s, func(t AttachedTag, _ int) string { return t.Render() })
}
