package tag

import (
	"errors"
	"strconv"
	"strings"
)

// Parse 解析规范字符串形式的标签
// 功能：将 Tag 或 Tag<p1;p2;...> 解析为AttachedTag，引用类参数通过实体目录解析
// 参数：f-实体族，s-规范字符串，catalog-实体目录（签名不含引用时可为nil）
// 返回：标签实例；失败时返回*Error，不产生部分结果
// 算法说明：
// 1. 以第一个'<'切分，之前的部分在实体族内按名称（区分大小写）查找，找不到为UnknownTag
// 2. 无参数标签：字符串必须恰好等于标签名，其后有任何内容为UnexpectedParameters
// 3. 有参数标签：必须以'>'结尾，内部按';'切分且段数等于签名长度
// 4. 逐段按签名位置解析：数值严格解析，单词/字符按片段正则校验，引用经实体目录解析
// 说明：内容是人工编写的静态数据，严格解析以便尽早拒绝错误记录
func Parse(f Family, s string, catalog EntityCatalog) (AttachedTag, error) {
	name, rest, hasParams := strings.Cut(s, "<")
	k, ok := Lookup(f, name)
	if !ok {
		return AttachedTag{}, newError(UnknownTag, f, name).because("no such tag in family %s", f)
	}
	d := k.def()
	if len(d.signature) == 0 {
		if hasParams {
			return AttachedTag{}, newError(UnexpectedParameters, f, name).
				because("%s takes no parameters, got %q", name, s[len(name):])
		}
		return Create(k)
	}
	if !hasParams {
		return AttachedTag{}, newError(ParameterCountMismatch, f, name).
			because("expected %d parameters, got none", len(d.signature))
	}
	if !strings.HasSuffix(rest, ">") {
		return AttachedTag{}, newError(MalformedTag, f, name).because("missing closing '>'")
	}
	segments := strings.Split(strings.TrimSuffix(rest, ">"), ";")
	if len(segments) != len(d.signature) {
		return AttachedTag{}, newError(ParameterCountMismatch, f, name).
			because("expected %d parameters, got %d", len(d.signature), len(segments))
	}
	values := make([]Value, len(segments))
	for i, seg := range segments {
		v, err := parseSegment(d, i, seg, catalog)
		if err != nil {
			return AttachedTag{}, err
		}
		values[i] = v
	}
	return Create(k, values...)
}

func parseSegment(d kindDef, i int, seg string, catalog EntityCatalog) (Value, error) {
	slot := d.signature[i]
	mismatch := func() *Error {
		return newError(ParameterTypeMismatch, d.family, d.name).at(i, slot, seg)
	}
	switch slot {
	case Integer:
		if !matchFragment(Integer, seg) {
			return Value{}, mismatch().because("not an integer")
		}
		n, err := strconv.ParseInt(seg, 10, 64)
		if err != nil {
			return Value{}, mismatch().wrap(err)
		}
		return Int(n), nil
	case Decimal:
		if !matchFragment(Decimal, seg) {
			return Value{}, mismatch().because("not a decimal")
		}
		x, err := strconv.ParseFloat(seg, 64)
		if err != nil {
			return Value{}, mismatch().wrap(err)
		}
		return Dec(x), nil
	case Word:
		if !matchFragment(Word, seg) {
			return Value{}, mismatch().because("not a word")
		}
		return WordOf(seg), nil
	case Character:
		if !matchFragment(Character, seg) {
			return Value{}, mismatch().because("not a single word character")
		}
		return Char(rune(seg[0])), nil
	case Any:
		if v, ok := parseAny(seg); ok {
			return v, nil
		}
		return Value{}, mismatch().because("not an integer, decimal or word")
	}

	// 引用
	if !matchFragment(slot, seg) {
		return Value{}, mismatch().because("%q is not a valid %s name", seg, slot)
	}
	kind, _ := slot.EntityKind()
	if catalog == nil {
		return Value{}, mismatch().because("no entity catalog to resolve %s references", kind)
	}
	id, err := catalog.Resolve(kind, seg)
	if err != nil {
		return Value{}, mismatch().because("unresolved %s reference", kind).wrap(err)
	}
	return Ref(slot, id, seg), nil
}

// parseAny Any位置依次尝试整数、小数、单词
func parseAny(seg string) (Value, bool) {
	if matchFragment(Integer, seg) {
		if n, err := strconv.ParseInt(seg, 10, 64); err == nil {
			return Int(n), true
		}
	}
	if matchFragment(Decimal, seg) {
		if x, err := strconv.ParseFloat(seg, 64); err == nil {
			return Dec(x), true
		}
	}
	if matchFragment(Word, seg) {
		return WordOf(seg), true
	}
	return Value{}, false
}

// Render 渲染规范字符串，引用名称以实体目录为准
// 说明：目录中找不到的实体沿用解析时记录的名称，因此不会失败；catalog为nil时等同于t.Render()
func Render(t AttachedTag, catalog EntityCatalog) string {
	if catalog == nil {
		return t.Render()
	}
	values := t.Values()
	for i, v := range values {
		id, _, ok := v.Reference()
		if !ok {
			continue
		}
		if name, err := catalog.DisplayName(id); err == nil {
			values[i] = v.withName(name)
		}
	}
	return render(t.kind, values)
}

// Codec 绑定实体目录的标签编解码器
type Codec struct {
	catalog EntityCatalog
}

// NewCodec 创建编解码器
func NewCodec(catalog EntityCatalog) *Codec {
	return &Codec{catalog: catalog}
}

// Catalog 编解码器使用的实体目录
func (c *Codec) Catalog() EntityCatalog {
	return c.catalog
}

// Parse 见包级函数Parse
func (c *Codec) Parse(f Family, s string) (AttachedTag, error) {
	return Parse(f, s, c.catalog)
}

// ParseAll 解析一组标签字符串，任何一个失败则整体失败，错误以errors.Join合并
func (c *Codec) ParseAll(f Family, ss []string) (Set, error) {
	res := make(Set, 0, len(ss))
	var errs []error
	for _, s := range ss {
		t, err := c.Parse(f, s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		res = append(res, t)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return res, nil
}

// Render 见包级函数Render
func (c *Codec) Render(t AttachedTag) string {
	return Render(t, c.catalog)
}
