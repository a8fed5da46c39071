package content

import (
	"errors"
	"fmt"
	"os"

	"github.com/JeremyDaug/EconomicCalculator-sub004/catalog"
	"github.com/JeremyDaug/EconomicCalculator-sub004/tag"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var log = logrus.WithField("module", "content")

// Product 产品定义
type Product struct {
	Name    string   `yaml:"name"`
	Variant string   `yaml:"variant,omitempty"`
	Tags    []string `yaml:"tags,omitempty"`
}

// DisplayName 产品显示名称 Name 或 Name(Variant)
func (p Product) DisplayName() string {
	return tag.ProductDisplayName(p.Name, p.Variant)
}

// Part 工艺的输入或输出部件，标签属于Production族
type Part struct {
	Product string   `yaml:"product"`
	Amount  float64  `yaml:"amount"`
	Tags    []string `yaml:"tags,omitempty"`
}

// Process 工艺定义
type Process struct {
	Name    string   `yaml:"name"`
	Tags    []string `yaml:"tags,omitempty"`
	Inputs  []Part   `yaml:"inputs,omitempty"`
	Outputs []Part   `yaml:"outputs,omitempty"`
}

// Culture 文化定义
type Culture struct {
	Name string   `yaml:"name"`
	Tags []string `yaml:"tags,omitempty"`
}

// Species 物种定义
type Species struct {
	Name string   `yaml:"name"`
	Tags []string `yaml:"tags,omitempty"`
}

// Document 内容文件
type Document struct {
	Products  []Product `yaml:"products,omitempty"`
	Processes []Process `yaml:"processes,omitempty"`
	Cultures  []Culture `yaml:"cultures,omitempty"`
	Species   []Species `yaml:"species,omitempty"`
}

// Load 读取并按顺序合并内容文件
func Load(paths ...string) (*Document, error) {
	doc := &Document{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read content file: %w", err)
		}
		part, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		doc.Merge(part)
	}
	return doc, nil
}

// Parse 解析内容文件，未知字段视为错误
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &doc, nil
}

// Merge 追加另一份内容
func (d *Document) Merge(o *Document) {
	d.Products = append(d.Products, o.Products...)
	d.Processes = append(d.Processes, o.Processes...)
	d.Cultures = append(d.Cultures, o.Cultures...)
	d.Species = append(d.Species, o.Species...)
}

// Register 将内容中定义的产品、物种、文化加入实体目录
// 说明：需在Validate之前调用，使内容间可以互相引用；目录中已存在的实体保持原标识
func (d *Document) Register(c *catalog.Catalog) error {
	var errs []error
	add := func(kind tag.EntityKind, name string) {
		if _, err := c.Resolve(kind, name); err == nil {
			return
		}
		if _, err := c.Add(kind, name); errors.Is(err, catalog.ErrInvalidName) {
			// 引用它的记录会在校验时被拒绝
			log.Warnf("skip %s %q: name cannot be referenced in tags", kind, name)
		} else if err != nil {
			errs = append(errs, err)
		}
	}
	for _, p := range d.Products {
		add(tag.EntityProduct, p.DisplayName())
	}
	for _, s := range d.Species {
		add(tag.EntitySpecies, s.Name)
	}
	for _, cu := range d.Cultures {
		add(tag.EntityCulture, cu.Name)
	}
	return errors.Join(errs...)
}

// Normalize 把通过校验的记录的标签改写为规范形式
func (d *Document) Normalize(res *Result) {
	for _, r := range res.Accepted {
		if r.target != nil {
			*r.target = append([]string(nil), r.Canonical...)
		}
	}
}

// Write 写出YAML
func (d *Document) Write(path string) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
