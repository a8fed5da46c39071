package tag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// EntityKind 可被标签参数引用的实体类别
type EntityKind int

const (
	EntityProduct EntityKind = iota
	EntityWant
	EntityJob
	EntitySpecies
	EntityCulture
	entityKindCount
)

var entityKindNames = [...]string{
	EntityProduct: "product",
	EntityWant:    "want",
	EntityJob:     "job",
	EntitySpecies: "species",
	EntityCulture: "culture",
}

func (k EntityKind) String() string {
	if k < 0 || k >= entityKindCount {
		return fmt.Sprintf("EntityKind(%d)", int(k))
	}
	return entityKindNames[k]
}

// ParseEntityKind 根据名称（不区分大小写）查找实体类别
func ParseEntityKind(s string) (EntityKind, error) {
	for i, name := range entityKindNames {
		if strings.EqualFold(name, s) {
			return EntityKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown entity kind %q", s)
}

// EntityKinds 所有实体类别
func EntityKinds() []EntityKind {
	res := make([]EntityKind, 0, entityKindCount)
	for k := EntityKind(0); k < entityKindCount; k++ {
		res = append(res, k)
	}
	return res
}

// ReferenceType 引用该类别实体的参数类型
func (k EntityKind) ReferenceType() (ParameterType, bool) {
	for t := ParameterType(0); t < parameterTypeCount; t++ {
		if ek, ok := t.EntityKind(); ok && ek == k {
			return t, true
		}
	}
	return 0, false
}

// ValidName 名称能否作为该类别实体的引用出现在规范字符串中
func ValidName(k EntityKind, name string) bool {
	t, ok := k.ReferenceType()
	return ok && matchFragment(t, name)
}

// EntityID 实体的稳定标识
type EntityID uuid.UUID

// NilEntityID 空标识
var NilEntityID = EntityID(uuid.Nil)

func (id EntityID) String() string {
	return uuid.UUID(id).String()
}

// ParseEntityID 解析字符串形式的实体标识
func ParseEntityID(s string) (EntityID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilEntityID, err
	}
	return EntityID(u), nil
}

// ErrEntityNotFound 实体目录中不存在该实体
var ErrEntityNotFound = errors.New("entity not found")

// EntityCatalog 实体目录：名称与实体标识之间的解析服务
// 功能：Parse时将引用参数的名称解析为实体标识，Render时获取显示名称
// 说明：实现需支持并发读；查找失败时返回的error应包装ErrEntityNotFound
type EntityCatalog interface {
	Resolve(kind EntityKind, name string) (EntityID, error)
	DisplayName(id EntityID) (string, error)
}
