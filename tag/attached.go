package tag

import (
	"math"
	"strings"

	"github.com/samber/lo"
)

// AttachedTag 附着在实体上的标签实例
// 功能：标签种类与一组按签名校验过的参数值
// 说明：创建后不可变，修改参数意味着构造新的AttachedTag
type AttachedTag struct {
	kind   Kind
	values []Value
}

// Create 创建标签实例
// 功能：按标签签名校验参数并构造不可变的标签实例
// 参数：kind-标签种类，values-按位置排列的参数值
// 返回：标签实例；参数个数或类型不符时返回*Error
// 算法说明：
// 1. 参数个数必须等于签名长度，否则ParameterCountMismatch
// 2. 逐个检查参数：零值、类别与签名不符、内容无法以规范形式表示时均为ParameterTypeMismatch
// 3. Any位置接受整数、小数、单词与字符，不接受引用，也不接受形如数值的单词
// 说明：未定义的Kind属于编程错误，直接panic
func Create(kind Kind, values ...Value) (AttachedTag, error) {
	d := kind.def()
	if len(values) != len(d.signature) {
		return AttachedTag{}, newError(ParameterCountMismatch, d.family, d.name).
			because("expected %d parameters, got %d", len(d.signature), len(values))
	}
	for i, v := range values {
		if err := checkValue(d, i, v); err != nil {
			return AttachedTag{}, err
		}
	}
	return AttachedTag{kind: kind, values: append([]Value(nil), values...)}, nil
}

// MustCreate 创建标签实例，失败时panic，用于静态定义的内容
func MustCreate(kind Kind, values ...Value) AttachedTag {
	t, err := Create(kind, values...)
	if err != nil {
		log.Panicf("invalid tag %s: %v", kind, err)
	}
	return t
}

func checkValue(d kindDef, i int, v Value) error {
	slot := d.signature[i]
	mismatch := func() *Error {
		return newError(ParameterTypeMismatch, d.family, d.name).at(i, slot, v.String())
	}
	if v.IsZero() {
		return mismatch().because("empty value")
	}
	if slot == Any {
		if v.typ.IsReference() {
			return mismatch().because("references are not allowed in %s slots", Any)
		}
		// Any位置按数值优先解析，纯数字单词无法原样读回
		if v.typ == Word && matchFragment(Decimal, v.s) {
			return mismatch().because("word %q would read back as a number", v.s)
		}
	} else if v.typ != slot {
		return mismatch().because("value is %s", v.typ)
	}
	switch v.typ {
	case Decimal:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return mismatch().because("decimal must be finite")
		}
	case Integer:
	default:
		if !matchFragment(v.typ, v.String()) {
			return mismatch().because("%q does not match %s", v.String(), Fragment(v.typ))
		}
	}
	return nil
}

// Tag 标签种类
func (t AttachedTag) Tag() Kind {
	return t.kind
}

// ParameterCount 参数个数
func (t AttachedTag) ParameterCount() int {
	return len(t.values)
}

// Get 按位置获取参数，越界时返回IndexOutOfRange
func (t AttachedTag) Get(index int) (Value, error) {
	if index < 0 || index >= len(t.values) {
		d := t.kind.def()
		return Value{}, newError(IndexOutOfRange, d.family, d.name).
			because("index %d, tag has %d parameters", index, len(t.values))
	}
	return t.values[index], nil
}

// Values 全部参数（副本）
func (t AttachedTag) Values() []Value {
	return append([]Value(nil), t.values...)
}

// Render 规范字符串形式
// 说明：无参数标签只有标签名，否则为 名称<p1;p2;...>，末尾没有分隔符
func (t AttachedTag) Render() string {
	return render(t.kind, t.values)
}

func render(k Kind, values []Value) string {
	name := k.Name()
	if len(values) == 0 {
		return name
	}
	return name + "<" + strings.Join(lo.Map(values, func(v Value, _ int) string {
		return v.String()
	}), ";") + ">"
}

func (t AttachedTag) String() string {
	return t.Render()
}

// MarshalText 实现encoding.TextMarshaler
func (t AttachedTag) MarshalText() ([]byte, error) {
	return []byte(t.Render()), nil
}

// MarshalYAML 以规范字符串写入YAML
func (t AttachedTag) MarshalYAML() (interface{}, error) {
	return t.Render(), nil
}

// Equal 语义相等
// 说明：数值按值比较，引用按实体标识比较；Any位置的原始类别不可恢复，按规范字符串比较
func (t AttachedTag) Equal(o AttachedTag) bool {
	if t.kind != o.kind || len(t.values) != len(o.values) {
		return false
	}
	sig := kindDefs[t.kind].signature
	for i := range t.values {
		if i < len(sig) && sig[i] == Any {
			if t.values[i].String() != o.values[i].String() {
				return false
			}
			continue
		}
		if !t.values[i].Equal(o.values[i]) {
			return false
		}
	}
	return true
}
