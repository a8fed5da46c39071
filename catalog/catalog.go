package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/JeremyDaug/EconomicCalculator-sub004/tag"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "catalog")

// namespace 由类别与名称派生实体标识时使用的UUID命名空间
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("econcalc/entity"))

// ErrInvalidName 名称不能作为引用出现在标签规范字符串中
var ErrInvalidName = errors.New("invalid entity name")

// Entry 实体目录项
type Entry struct {
	Kind tag.EntityKind
	Name string
	ID   tag.EntityID
}

type key struct {
	kind tag.EntityKind
	name string
}

// Catalog 内存实体目录
// 功能：维护 (类别, 名称) <-> 实体标识 的双向映射，实现tag.EntityCatalog
// 说明：内容加载阶段写入，之后只读；读写均加锁，可并发使用
type Catalog struct {
	mu     sync.RWMutex
	byName map[key]tag.EntityID
	byID   map[tag.EntityID]Entry
}

// New 创建空目录
func New() *Catalog {
	return &Catalog{
		byName: make(map[key]tag.EntityID),
		byID:   make(map[tag.EntityID]Entry),
	}
}

// FromEntries 由目录项创建目录，ID为空的项自动派生标识
func FromEntries(entries []Entry) (*Catalog, error) {
	c := New()
	for _, e := range entries {
		if _, err := c.AddWithID(e.Kind, e.Name, e.ID); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// DeriveID 由类别与名称派生稳定的实体标识
func DeriveID(kind tag.EntityKind, name string) tag.EntityID {
	return tag.EntityID(uuid.NewSHA1(namespace, []byte(kind.String()+":"+name)))
}

// Add 添加实体，标识由类别与名称派生
func (c *Catalog) Add(kind tag.EntityKind, name string) (tag.EntityID, error) {
	return c.AddWithID(kind, name, tag.NilEntityID)
}

// AddWithID 添加指定标识的实体
// 参数：kind-类别，name-显示名称，id-实体标识（为空则派生）
// 返回：实体标识；名称不符合该类别的引用片段时返回ErrInvalidName，同名实体已有不同标识、或标识已被其他实体占用时返回错误
// 说明：重复添加完全相同的实体不报错
func (c *Catalog) AddWithID(kind tag.EntityKind, name string, id tag.EntityID) (tag.EntityID, error) {
	if name == "" {
		return tag.NilEntityID, fmt.Errorf("empty %s name", kind)
	}
	if !tag.ValidName(kind, name) {
		return tag.NilEntityID, fmt.Errorf("%w: %s %q", ErrInvalidName, kind, name)
	}
	if id == tag.NilEntityID {
		id = DeriveID(kind, name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	k := key{kind, name}
	if old, ok := c.byName[k]; ok {
		if old != id {
			return tag.NilEntityID, fmt.Errorf("%s %q already exists with id %s", kind, name, old)
		}
		return id, nil
	}
	if other, ok := c.byID[id]; ok {
		return tag.NilEntityID, fmt.Errorf("id %s already used by %s %q", id, other.Kind, other.Name)
	}
	c.byName[k] = id
	c.byID[id] = Entry{Kind: kind, Name: name, ID: id}
	log.Debugf("add %s %q (%s)", kind, name, id)
	return id, nil
}

// Resolve 名称 -> 实体标识
func (c *Catalog) Resolve(kind tag.EntityKind, name string) (tag.EntityID, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if id, ok := c.byName[key{kind, name}]; ok {
		return id, nil
	}
	return tag.NilEntityID, fmt.Errorf("%w: %s %q", tag.ErrEntityNotFound, kind, name)
}

// DisplayName 实体标识 -> 显示名称
func (c *Catalog) DisplayName(id tag.EntityID) (string, error) {
	e, ok := c.Get(id)
	if !ok {
		return "", fmt.Errorf("%w: id %s", tag.ErrEntityNotFound, id)
	}
	return e.Name, nil
}

// Get 按标识查询目录项
func (c *Catalog) Get(id tag.EntityID) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.byID[id]
	return e, ok
}

// List 某类别的全部实体，按名称排序
func (c *Catalog) List(kind tag.EntityKind) []Entry {
	c.mu.RLock()
	res := lo.Filter(lo.Values(c.byID), func(e Entry, _ int) bool { return e.Kind == kind })
	c.mu.RUnlock()
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// Len 实体总数
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

var _ tag.EntityCatalog = (*Catalog)(nil)
