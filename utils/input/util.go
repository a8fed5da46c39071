package input

import (
	"fmt"
	"os"

	"git.fiblab.net/general/common/v2/mongoutil"
	"github.com/JeremyDaug/EconomicCalculator-sub004/catalog"
	"github.com/JeremyDaug/EconomicCalculator-sub004/tag"
	"go.mongodb.org/mongo-driver/bson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v2"
)

// EntityClass MongoDB中实体目录文档的class
const EntityClass = "entity"

// entityDoc MongoDB中实体文档的data部分，文档形如 {class: "entity", data: {kind, name, id?}}
type entityDoc struct {
	Kind string `bson:"kind"`
	Name string `bson:"name"`
	ID   string `bson:"id,omitempty"`
}

func (d entityDoc) entry() (catalog.Entry, error) {
	kind, err := tag.ParseEntityKind(d.Kind)
	if err != nil {
		return catalog.Entry{}, err
	}
	if d.Name == "" {
		return catalog.Entry{}, fmt.Errorf("%s without name", kind)
	}
	e := catalog.Entry{Kind: kind, Name: d.Name}
	if d.ID != "" {
		if e.ID, err = tag.ParseEntityID(d.ID); err != nil {
			return catalog.Entry{}, fmt.Errorf("%s %q: bad id: %w", kind, d.Name, err)
		}
	}
	return e, nil
}

// DecodeEntries 解码MongoDB文档
// 返回：成功解码的目录项与每条失败文档的错误
func DecodeEntries(raws []bson.Raw) ([]catalog.Entry, []error) {
	entries := make([]catalog.Entry, 0, len(raws))
	var errs []error
	for i, raw := range raws {
		var doc entityDoc
		if err := mongoutil.UnmarshalBson(raw, &doc); err != nil {
			errs = append(errs, fmt.Errorf("document %d: %w", i, err))
			continue
		}
		e, err := doc.entry()
		if err != nil {
			errs = append(errs, fmt.Errorf("document %d: %w", i, err))
			continue
		}
		entries = append(entries, e)
	}
	return entries, errs
}

// fileEntity YAML目录文件中的实体，id可省略
type fileEntity struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id,omitempty"`
}

// catalogFile YAML目录文件
type catalogFile struct {
	Products []fileEntity `yaml:"products"`
	Wants    []fileEntity `yaml:"wants"`
	Jobs     []fileEntity `yaml:"jobs"`
	Species  []fileEntity `yaml:"species"`
	Cultures []fileEntity `yaml:"cultures"`
}

// LoadFile 读取YAML目录文件
func LoadFile(path string) ([]catalog.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseFile(data)
}

// ParseFile 解析YAML目录文件内容
func ParseFile(data []byte) ([]catalog.Entry, error) {
	var f catalogFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	var entries []catalog.Entry
	groups := []struct {
		kind tag.EntityKind
		list []fileEntity
	}{
		{tag.EntityProduct, f.Products},
		{tag.EntityWant, f.Wants},
		{tag.EntityJob, f.Jobs},
		{tag.EntitySpecies, f.Species},
		{tag.EntityCulture, f.Cultures},
	}
	for _, g := range groups {
		for _, fe := range g.list {
			e, err := entityDoc{Kind: g.kind.String(), Name: fe.Name, ID: fe.ID}.entry()
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// EncodeEntries 将目录项转为缓存使用的protobuf ListValue
func EncodeEntries(entries []catalog.Entry) (*structpb.ListValue, error) {
	values := make([]any, 0, len(entries))
	for _, e := range entries {
		v := map[string]any{
			"kind": e.Kind.String(),
			"name": e.Name,
		}
		if e.ID != tag.NilEntityID {
			v["id"] = e.ID.String()
		}
		values = append(values, v)
	}
	return structpb.NewList(values)
}

// DecodeList 读取EncodeEntries生成的ListValue
func DecodeList(list *structpb.ListValue) ([]catalog.Entry, error) {
	entries := make([]catalog.Entry, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		fields := v.GetStructValue().GetFields()
		doc := entityDoc{
			Kind: fields["kind"].GetStringValue(),
			Name: fields["name"].GetStringValue(),
			ID:   fields["id"].GetStringValue(),
		}
		e, err := doc.entry()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
