package content

import (
	"errors"
	"fmt"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/JeremyDaug/EconomicCalculator-sub004/tag"
	"github.com/samber/lo"
)

// Record 一个拥有标签的内容记录（产品、工艺、工艺部件、文化、物种）
type Record struct {
	Owner     string     // 记录名，如 "process Baking input[0]"
	Family    tag.Family // 记录标签所属实体族
	Tags      tag.Set    // 解析结果，被拒绝的记录为空
	Canonical []string   // 规范字符串，被拒绝的记录为空
	Err       error      // 被拒绝的原因

	raw     []string
	product string // 工艺部件引用的产品
	target  *[]string
}

// Result 校验结果
type Result struct {
	Accepted []Record
	Rejected []Record
}

// Err 所有被拒绝记录的错误
func (r *Result) Err() error {
	return errors.Join(lo.Map(r.Rejected, func(rec Record, _ int) error {
		return fmt.Errorf("%s: %w", rec.Owner, rec.Err)
	})...)
}

// records 按文档顺序列出所有带标签的记录
func (d *Document) records() []Record {
	var res []Record
	add := func(owner string, f tag.Family, tags *[]string, product string) {
		res = append(res, Record{Owner: owner, Family: f, raw: *tags, product: product, target: tags})
	}
	for i := range d.Products {
		p := &d.Products[i]
		add("product "+p.DisplayName(), tag.FamilyProduct, &p.Tags, "")
	}
	for i := range d.Processes {
		p := &d.Processes[i]
		add("process "+p.Name, tag.FamilyProcess, &p.Tags, "")
		for j := range p.Inputs {
			add(fmt.Sprintf("process %s input[%d]", p.Name, j), tag.FamilyProduction, &p.Inputs[j].Tags, p.Inputs[j].Product)
		}
		for j := range p.Outputs {
			add(fmt.Sprintf("process %s output[%d]", p.Name, j), tag.FamilyProduction, &p.Outputs[j].Tags, p.Outputs[j].Product)
		}
	}
	for i := range d.Cultures {
		c := &d.Cultures[i]
		add("culture "+c.Name, tag.FamilyCulture, &c.Tags, "")
	}
	for i := range d.Species {
		s := &d.Species[i]
		add("species "+s.Name, tag.FamilySpecies, &s.Tags, "")
	}
	return res
}

// Validate 校验内容中的全部标签
// 功能：并行解析每个记录的标签字符串，任何一个标签失败则整条记录被拒绝
// 参数：doc-内容，codec-绑定了实体目录的编解码器
// 返回：按文档顺序排列的通过与被拒绝记录
// 算法说明：
// 1. 展开所有记录，工艺的每个输入输出部件是单独的Production族记录
// 2. 工艺部件引用的产品必须能在目录中解析
// 3. 使用parallel.GoMap并行解析，目录在此阶段只读
// 4. 拒绝的记录记录合并后的错误，不保留部分解析结果
func Validate(doc *Document, codec *tag.Codec) *Result {
	parsed := parallel.GoMap(doc.records(), func(r Record) Record {
		return validateRecord(r, codec)
	})
	res := &Result{}
	for _, r := range parsed {
		if r.Err != nil {
			log.Warnf("reject %s: %v", r.Owner, r.Err)
			res.Rejected = append(res.Rejected, r)
		} else {
			res.Accepted = append(res.Accepted, r)
		}
	}
	return res
}

func validateRecord(r Record, codec *tag.Codec) Record {
	var errs []error
	if r.product != "" || r.Family == tag.FamilyProduction {
		if codec.Catalog() == nil {
			errs = append(errs, fmt.Errorf("no entity catalog to resolve product %q", r.product))
		} else if _, err := codec.Catalog().Resolve(tag.EntityProduct, r.product); err != nil {
			errs = append(errs, err)
		}
	}
	set, err := codec.ParseAll(r.Family, r.raw)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		r.Err = errors.Join(errs...)
		return r
	}
	r.Tags = set
	r.Canonical = lo.Map(set, func(t tag.AttachedTag, _ int) string { return codec.Render(t) })
	return r
}
