package tag

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// Signature 标签签名：标签期望的参数类型序列，长度为0表示不带参数
type Signature []ParameterType

// Len 参数个数
func (s Signature) Len() int {
	return len(s)
}

func (s Signature) String() string {
	return "[" + strings.Join(lo.Map(s, func(t ParameterType, _ int) string {
		return t.String()
	}), ", ") + "]"
}

var (
	// 实体族内 标签名->Kind
	familyIndex [familyCount]map[string]Kind
	// 实体族内按声明顺序排列的Kind
	familyKinds [familyCount][]Kind
	// 每个Kind的规范字符串匹配器
	kindRegexps [kindCount]*regexp.Regexp
	// 每种参数类型的整段匹配器
	fragmentRegexps [parameterTypeCount]*regexp.Regexp
)

// init 构建注册表索引
// 功能：校验标签定义表的完备性并预编译正则
// 算法说明：
// 1. 每个Kind必须在kindDefs中有定义，且实体族、参数类型合法
// 2. 标签名在实体族内唯一
// 3. 预编译每个Kind的规范匹配正则与每种参数类型的片段正则
// 说明：定义表有缺失属于编程错误，直接panic
func init() {
	for t := ParameterType(0); t < parameterTypeCount; t++ {
		fragmentRegexps[t] = regexp.MustCompile("^(?:" + parameterTypes[t].fragment + ")$")
	}
	for f := range familyIndex {
		familyIndex[f] = make(map[string]Kind)
	}
	if len(kindDefs) != int(kindCount) {
		log.Panicf("tag table has %d entries, want %d", len(kindDefs), kindCount)
	}
	for k := Kind(0); k < kindCount; k++ {
		d, ok := kindDefs[k]
		if !ok {
			log.Panicf("tag kind %d has no definition", int(k))
		}
		if !d.family.Valid() || d.name == "" {
			log.Panicf("tag kind %d has invalid definition %+v", int(k), d)
		}
		for _, t := range d.signature {
			if !t.valid() {
				log.Panicf("tag %s/%s has invalid parameter type %d", d.family, d.name, int(t))
			}
		}
		if other, ok := familyIndex[d.family][d.name]; ok {
			log.Panicf("tag name %s is declared twice in family %s (%d, %d)", d.name, d.family, int(other), int(k))
		}
		familyIndex[d.family][d.name] = k
		familyKinds[d.family] = append(familyKinds[d.family], k)
		kindRegexps[k] = regexp.MustCompile(Regex(k))
	}
}

func (k Kind) def() kindDef {
	d, ok := kindDefs[k]
	if !ok {
		log.Panicf("undefined tag kind %d", int(k))
	}
	return d
}

// Valid 是否为已定义的标签种类
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// Name 标签名，即规范字符串中'<'之前的部分
func (k Kind) Name() string {
	return k.def().name
}

// Family 标签所属实体族
func (k Kind) Family() Family {
	return k.def().family
}

func (k Kind) String() string {
	if !k.Valid() {
		return "Kind(invalid)"
	}
	d := kindDefs[k]
	return d.family.String() + "/" + d.name
}

// Signature 获取标签签名（副本），未定义的Kind直接panic
func (k Kind) Signature() Signature {
	return append(Signature(nil), k.def().signature...)
}

// SignatureOf 获取标签签名
func SignatureOf(k Kind) Signature {
	return k.Signature()
}

// Regex 生成标签规范字符串的匹配正则
// 功能：构造 "^" + 标签名 + 参数模式 + "$"
// 说明：无参数标签的参数模式为空，否则为 "<" + 以';'连接的各参数片段 + ">"
func Regex(k Kind) string {
	d := k.def()
	if len(d.signature) == 0 {
		return "^" + d.name + "$"
	}
	return "^" + d.name + "<" + strings.Join(lo.Map(d.signature, func(t ParameterType, _ int) string {
		return Fragment(t)
	}), ";") + ">$"
}

// Matches 字符串是否在语法上符合该标签的规范形式（不解析引用）
func Matches(k Kind, s string) bool {
	k.def()
	return kindRegexps[k].MatchString(s)
}

// ExampleTag 使用示例参数渲染的标签，用于编辑器提示
func ExampleTag(k Kind) string {
	d := k.def()
	if len(d.signature) == 0 {
		return d.name
	}
	return d.name + "<" + strings.Join(lo.Map(d.signature, func(t ParameterType, _ int) string {
		return Example(t)
	}), ";") + ">"
}

// Lookup 在实体族中按名称（区分大小写）查找标签
func Lookup(f Family, name string) (Kind, bool) {
	if !f.Valid() {
		return 0, false
	}
	k, ok := familyIndex[f][name]
	return k, ok
}

// Kinds 实体族中的全部标签，按声明顺序
func Kinds(f Family) []Kind {
	if !f.Valid() {
		return nil
	}
	return append([]Kind(nil), familyKinds[f]...)
}

// AllKinds 所有已定义的标签
func AllKinds() []Kind {
	res := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		res = append(res, k)
	}
	return res
}

func matchFragment(t ParameterType, s string) bool {
	return fragmentRegexps[t].MatchString(s)
}
