package tag

import (
	"strconv"
	"strings"
)

// Value 标签参数值
// 功能：与ParameterType一一对应的封闭联合类型，运行时类别由typ决定
// 说明：零值不是合法参数，Create会拒绝；引用类参数同时保存实体标识与显示名称
type Value struct {
	typ  ParameterType
	i    int64
	f    float64
	s    string // Word的内容或引用的显示名称
	c    rune
	ref  EntityID
	init bool
}

// Int 整数参数
func Int(v int64) Value {
	return Value{typ: Integer, i: v, init: true}
}

// Dec 小数参数
func Dec(v float64) Value {
	return Value{typ: Decimal, f: v, init: true}
}

// WordOf 单词参数
func WordOf(s string) Value {
	return Value{typ: Word, s: s, init: true}
}

// Char 单字符参数
func Char(c rune) Value {
	return Value{typ: Character, c: c, init: true}
}

// Ref 实体引用参数
// 参数：t-引用类型（Product/Want/Job/Species/Culture），id-实体标识，name-显示名称
// 说明：t不是引用类型时返回零值，Create将拒绝它
func Ref(t ParameterType, id EntityID, name string) Value {
	if !t.IsReference() {
		return Value{}
	}
	return Value{typ: t, ref: id, s: name, init: true}
}

// Type 参数的运行时类别
func (v Value) Type() ParameterType {
	return v.typ
}

// IsZero 是否为未初始化的零值
func (v Value) IsZero() bool {
	return !v.init
}

// Integer 整数值
func (v Value) Integer() (int64, bool) {
	return v.i, v.init && v.typ == Integer
}

// Decimal 小数值
func (v Value) Decimal() (float64, bool) {
	return v.f, v.init && v.typ == Decimal
}

// Word 单词值
func (v Value) Word() (string, bool) {
	return v.s, v.init && v.typ == Word
}

// Character 字符值
func (v Value) Character() (rune, bool) {
	return v.c, v.init && v.typ == Character
}

// Reference 引用的实体标识与显示名称
func (v Value) Reference() (EntityID, string, bool) {
	return v.ref, v.s, v.init && v.typ.IsReference()
}

// ProductName 产品引用的名称与变体，"Bread(Rye)" -> ("Bread", "Rye")
func (v Value) ProductName() (name string, variant string, ok bool) {
	if !v.init || v.typ != Product {
		return "", "", false
	}
	name, variant = SplitProductName(v.s)
	return name, variant, true
}

// SplitProductName 拆分产品显示名称 Name(Variant)
func SplitProductName(s string) (name string, variant string) {
	if i := strings.IndexByte(s, '('); i > 0 && strings.HasSuffix(s, ")") {
		return s[:i], s[i+1 : len(s)-1]
	}
	return s, ""
}

// ProductDisplayName 组合产品显示名称，变体为空时只有名称
func ProductDisplayName(name, variant string) string {
	if variant == "" {
		return name
	}
	return name + "(" + variant + ")"
}

// withName 替换引用的显示名称
func (v Value) withName(name string) Value {
	v.s = name
	return v
}

// String 参数的规范字符串形式
// 说明：小数使用与区域无关的格式，不含千分位，不使用指数
func (v Value) String() string {
	if !v.init {
		return ""
	}
	switch v.typ {
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Decimal:
		if v.f == 0 {
			return "0" // -0
		}
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case Character:
		return string(v.c)
	default:
		return v.s
	}
}

// Equal 语义相等：类别相同且值相同，引用按实体标识比较
func (v Value) Equal(o Value) bool {
	if v.init != o.init || v.typ != o.typ {
		return false
	}
	if !v.init {
		return true
	}
	switch v.typ {
	case Integer:
		return v.i == o.i
	case Decimal:
		return v.f == o.f
	case Word:
		return v.s == o.s
	case Character:
		return v.c == o.c
	default:
		return v.ref == o.ref
	}
}
