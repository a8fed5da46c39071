package tag

import "fmt"

// ParameterType 标签参数的类型
// 功能：既作为参数校验约束，也用于生成正则片段与示例
type ParameterType int

const (
	Any ParameterType = iota
	Integer
	Decimal
	Product
	Want
	Word
	Character
	Job
	Species
	Culture
	parameterTypeCount
)

type parameterTypeInfo struct {
	name     string
	fragment string // 规范字符串中该参数的正则片段
	example  string // 用于文档与编辑器提示的示例字面量
}

var parameterTypes = [...]parameterTypeInfo{
	Any:       {"Any", `[^;<>]+`, "Any"},
	Integer:   {"Integer", `-?\d*`, "1"},
	Decimal:   {"Decimal", `-?\d*(\.\d*)?`, "1"},
	Product:   {"Product", `\w+(\(\w+\))?`, "Product(Variant)"},
	Want:      {"Want", `\w+`, "Want"},
	Word:      {"Word", `\w+`, "Word"},
	Character: {"Character", `\w`, "A"},
	Job:       {"Job", `\w+( \w+)*`, "Job"},
	Species:   {"Species", `\w+( \w+)*`, "Species"},
	Culture:   {"Culture", `\w+( \w+)*`, "Culture"},
}

func (t ParameterType) valid() bool {
	return t >= 0 && t < parameterTypeCount
}

func (t ParameterType) String() string {
	if !t.valid() {
		return fmt.Sprintf("ParameterType(%d)", int(t))
	}
	return parameterTypes[t].name
}

// IsReference 该类型的参数是否引用其他实体
func (t ParameterType) IsReference() bool {
	_, ok := t.EntityKind()
	return ok
}

// EntityKind 引用类型参数对应的实体类别
func (t ParameterType) EntityKind() (EntityKind, bool) {
	switch t {
	case Product:
		return EntityProduct, true
	case Want:
		return EntityWant, true
	case Job:
		return EntityJob, true
	case Species:
		return EntitySpecies, true
	case Culture:
		return EntityCulture, true
	default:
		return 0, false
	}
}

// Fragment 参数类型的正则片段（不含锚点）
func Fragment(t ParameterType) string {
	if !t.valid() {
		log.Panicf("undefined parameter type %d", int(t))
	}
	return parameterTypes[t].fragment
}

// Example 参数类型的示例字面量
func Example(t ParameterType) string {
	if !t.valid() {
		log.Panicf("undefined parameter type %d", int(t))
	}
	return parameterTypes[t].example
}
