package tag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind 标签错误类别
type ErrorKind int

const (
	UnknownTag             ErrorKind = iota + 1 // 实体族中没有该标签名
	UnexpectedParameters                        // 无参数标签带了参数
	ParameterCountMismatch                      // 参数个数不符
	ParameterTypeMismatch                       // 参数与签名类型不符（含数值解析失败、引用无法解析）
	IndexOutOfRange                             // 按位置访问越界
	MalformedTag                                // 有'<'但没有以'>'结尾
)

var errorKindNames = map[ErrorKind]string{
	UnknownTag:             "unknown tag",
	UnexpectedParameters:   "unexpected parameters",
	ParameterCountMismatch: "parameter count mismatch",
	ParameterTypeMismatch:  "parameter type mismatch",
	IndexOutOfRange:        "index out of range",
	MalformedTag:           "malformed tag",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// 用于errors.Is比较的哨兵错误
var (
	ErrUnknownTag             = &Error{Kind: UnknownTag, Index: -1}
	ErrUnexpectedParameters   = &Error{Kind: UnexpectedParameters, Index: -1}
	ErrParameterCountMismatch = &Error{Kind: ParameterCountMismatch, Index: -1}
	ErrParameterTypeMismatch  = &Error{Kind: ParameterTypeMismatch, Index: -1}
	ErrIndexOutOfRange        = &Error{Kind: IndexOutOfRange, Index: -1}
	ErrMalformedTag           = &Error{Kind: MalformedTag, Index: -1}
)

// Error 标签构造、访问与解析的结构化错误
// 功能：记录出错的实体族、标签名、参数位置、期望类型与原因，供内容加载器拒绝记录、编辑器展示
// 说明：Index为-1表示与具体参数无关；hasExpected为false时Expected无意义
type Error struct {
	Kind     ErrorKind
	Family   Family
	Tag      string
	Index    int
	Expected ParameterType
	Actual   string
	Reason   string
	Err      error // 底层错误，如实体目录返回的ErrEntityNotFound

	hasExpected bool
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Tag != "" {
		fmt.Fprintf(&b, ": %s tag %q", e.Family, e.Tag)
	}
	if e.Index >= 0 {
		fmt.Fprintf(&b, " parameter %d", e.Index)
	}
	if e.hasExpected {
		fmt.Fprintf(&b, " expected %s", e.Expected)
		if e.Actual != "" {
			fmt.Fprintf(&b, " got %q", e.Actual)
		}
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 按错误类别匹配哨兵错误
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// ExpectedType 期望的参数类型，仅当错误与具体参数相关时有效
func (e *Error) ExpectedType() (ParameterType, bool) {
	return e.Expected, e.hasExpected
}

// Hint 面向编辑器的提示：标签名、出错位置、期望类型与示例并列
func (e *Error) Hint() string {
	parts := []string{"tag " + e.Tag}
	if e.Tag == "" {
		parts[0] = "tag ?"
	}
	if e.Index >= 0 {
		parts = append(parts, fmt.Sprintf("parameter %d", e.Index))
	}
	if e.hasExpected {
		parts = append(parts, "expected "+e.Expected.String(), "example "+Example(e.Expected))
	} else if k, ok := Lookup(e.Family, e.Tag); ok {
		parts = append(parts, "example "+ExampleTag(k))
	}
	return strings.Join(parts, " | ")
}

func newError(kind ErrorKind, f Family, name string) *Error {
	return &Error{Kind: kind, Family: f, Tag: name, Index: -1}
}

func (e *Error) at(index int, expected ParameterType, actual string) *Error {
	e.Index = index
	e.Expected = expected
	e.Actual = actual
	e.hasExpected = true
	return e
}

func (e *Error) because(format string, args ...any) *Error {
	e.Reason = fmt.Sprintf(format, args...)
	return e
}

func (e *Error) wrap(err error) *Error {
	e.Err = err
	return e
}
