package tag_test

import (
	"fmt"

	"github.com/JeremyDaug/EconomicCalculator-sub004/tag"
	"github.com/google/uuid"
)

// fakeCatalog 测试用实体目录
type fakeCatalog struct {
	ids   map[tag.EntityKind]map[string]tag.EntityID
	names map[tag.EntityID]string
}

func newFakeCatalog(entries map[tag.EntityKind][]string) *fakeCatalog {
	c := &fakeCatalog{
		ids:   make(map[tag.EntityKind]map[string]tag.EntityID),
		names: make(map[tag.EntityID]string),
	}
	for kind, names := range entries {
		c.ids[kind] = make(map[string]tag.EntityID)
		for _, name := range names {
			id := tag.EntityID(uuid.NewSHA1(uuid.NameSpaceOID, []byte(kind.String()+":"+name)))
			c.ids[kind][name] = id
			c.names[id] = name
		}
	}
	return c
}

func (c *fakeCatalog) Resolve(kind tag.EntityKind, name string) (tag.EntityID, error) {
	if id, ok := c.ids[kind][name]; ok {
		return id, nil
	}
	return tag.NilEntityID, fmt.Errorf("%w: %s %q", tag.ErrEntityNotFound, kind, name)
}

func (c *fakeCatalog) DisplayName(id tag.EntityID) (string, error) {
	if name, ok := c.names[id]; ok {
		return name, nil
	}
	return "", fmt.Errorf("%w: %s", tag.ErrEntityNotFound, id)
}

func (c *fakeCatalog) ref(t tag.ParameterType, name string) tag.Value {
	kind, _ := t.EntityKind()
	id, err := c.Resolve(kind, name)
	if err != nil {
		panic(err)
	}
	return tag.Ref(t, id, name)
}

// refs 各引用类型的全部候选值
func (c *fakeCatalog) refs() map[tag.ParameterType][]tag.Value {
	res := make(map[tag.ParameterType][]tag.Value)
	for _, t := range []tag.ParameterType{tag.Product, tag.Want, tag.Job, tag.Species, tag.Culture} {
		kind, _ := t.EntityKind()
		for name := range c.ids[kind] {
			res[t] = append(res[t], c.ref(t, name))
		}
	}
	return res
}

func testCatalog() *fakeCatalog {
	return newFakeCatalog(map[tag.EntityKind][]string{
		tag.EntityProduct: {"Wheat", "Bread(Rye)", "Iron_Ore"},
		tag.EntityWant:    {"Food", "Rest"},
		tag.EntityJob:     {"Farmer", "Master Smith"},
		tag.EntitySpecies: {"Homo Sapiens", "Cattle"},
		tag.EntityCulture: {"Riverfolk"},
	})
}
