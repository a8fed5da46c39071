package tag_test

import (
	"errors"
	"math"
	"testing"

	"github.com/JeremyDaug/EconomicCalculator-sub004/tag"
	"github.com/JeremyDaug/EconomicCalculator-sub004/utils/randengine"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenarios(t *testing.T) {
	c := testCatalog()

	opt, err := tag.Parse(tag.FamilyProduction, "Optional<0.5>", c)
	require.NoError(t, err)
	assert.Equal(t, tag.ProductionOptional, opt.Tag())
	v, _ := opt.Get(0)
	x, ok := v.Decimal()
	assert.True(t, ok)
	assert.Equal(t, 0.5, x)
	assert.Equal(t, "Optional<0.5>", tag.Render(opt, c))

	chance, err := tag.Parse(tag.FamilyProduction, "Chance<A;10>", c)
	require.NoError(t, err)
	want := tag.MustCreate(tag.ProductionChance, tag.Char('A'), tag.Int(10))
	assert.Empty(t, cmp.Diff(want, chance))
	assert.Equal(t, "Chance<A;10>", chance.Render())

	failure, err := tag.Parse(tag.FamilyProduction, "Failure", c)
	require.NoError(t, err)
	assert.Equal(t, 0, failure.ParameterCount())
	assert.Equal(t, "Failure", failure.Render())

	_, err = tag.Parse(tag.FamilyProduction, "Failure<X>", c)
	assert.ErrorIs(t, err, tag.ErrUnexpectedParameters)

	bio, err := tag.Parse(tag.FamilyCulture, "BioPreference<Homo Sapiens;1.2>", c)
	require.NoError(t, err)
	ref, _ := bio.Get(0)
	id, name, ok := ref.Reference()
	assert.True(t, ok)
	assert.Equal(t, "Homo Sapiens", name)
	expectedID, _ := c.Resolve(tag.EntitySpecies, "Homo Sapiens")
	assert.Equal(t, expectedID, id)
	assert.Equal(t, "BioPreference<Homo Sapiens;1.2>", bio.Render())
}

func TestParseZeroArity(t *testing.T) {
	for _, k := range tag.AllKinds() {
		if k.Signature().Len() != 0 {
			continue
		}
		at, err := tag.Parse(k.Family(), k.Name(), nil)
		require.NoError(t, err)
		assert.Equal(t, k.Name(), at.Render())
		for _, s := range []string{k.Name() + "<>", k.Name() + "<1>"} {
			_, err := tag.Parse(k.Family(), s, nil)
			assert.ErrorIs(t, err, tag.ErrUnexpectedParameters, s)
		}
	}
}

func TestParseStrictNumbers(t *testing.T) {
	for _, s := range []string{"1.2.3", "1a", "", ".", "-", "1e5", "Inf", "0x10", " 1", "+1"} {
		_, err := tag.Parse(tag.FamilyProduction, "Optional<"+s+">", nil)
		assert.ErrorIs(t, err, tag.ErrParameterTypeMismatch, "decimal %q", s)
	}
	for s, want := range map[string]float64{"-3": -3, "0": 0, "1.5": 1.5, ".5": 0.5, "2.": 2, "-.25": -0.25} {
		at, err := tag.Parse(tag.FamilyProduction, "Optional<"+s+">", nil)
		require.NoError(t, err, "decimal %q", s)
		v, _ := at.Get(0)
		x, _ := v.Decimal()
		assert.Equal(t, want, x)
	}
	for _, s := range []string{"1.5", "", "-", "1a", "99999999999999999999"} {
		_, err := tag.Parse(tag.FamilyProduction, "Offset<"+s+">", nil)
		assert.ErrorIs(t, err, tag.ErrParameterTypeMismatch, "integer %q", s)
	}
	at, err := tag.Parse(tag.FamilyProduction, "Offset<-7>", nil)
	require.NoError(t, err)
	assert.Equal(t, "Offset<-7>", at.Render())
}

func TestParseErrors(t *testing.T) {
	c := testCatalog()
	cases := []struct {
		family tag.Family
		input  string
		kind   *tag.Error
		index  int
	}{
		{tag.FamilyProduction, "NotARealTag<1>", tag.ErrUnknownTag, -1},
		{tag.FamilyProduction, "optional<1>", tag.ErrUnknownTag, -1},
		{tag.FamilyProcess, "Optional<1>", tag.ErrUnknownTag, -1},
		{tag.FamilyProduction, "", tag.ErrUnknownTag, -1},
		{tag.FamilyProduction, "Optional", tag.ErrParameterCountMismatch, -1},
		{tag.FamilyProduction, "Optional<1;2>", tag.ErrParameterCountMismatch, -1},
		{tag.FamilyProduction, "Chance<A>", tag.ErrParameterCountMismatch, -1},
		{tag.FamilyProduction, "Chance<A;1;>", tag.ErrParameterCountMismatch, -1},
		{tag.FamilyProduction, "Optional<1", tag.ErrMalformedTag, -1},
		{tag.FamilyProduction, "Optional<1>x", tag.ErrMalformedTag, -1},
		{tag.FamilyProduction, "Chance<AB;1>", tag.ErrParameterTypeMismatch, 0},
		{tag.FamilyProduction, "Chance<A;x>", tag.ErrParameterTypeMismatch, 1},
		{tag.FamilyProcess, "Crop<Barley;10>", tag.ErrParameterTypeMismatch, 0},
		{tag.FamilyProcess, "Crop<Bread(Rye;10>", tag.ErrParameterTypeMismatch, 0},
		{tag.FamilyCulture, "BioPreference<Elf;1>", tag.ErrParameterTypeMismatch, 0},
		{tag.FamilyCulture, "BioPreference<Homo  Sapiens;1>", tag.ErrParameterTypeMismatch, 0},
		{tag.FamilySpecies, "Habitat<Deep Sea>", tag.ErrParameterTypeMismatch, 0},
		{tag.FamilyProduct, "Attribute<color;a b>", tag.ErrParameterTypeMismatch, 1},
	}
	for _, tc := range cases {
		_, err := tag.Parse(tc.family, tc.input, c)
		require.ErrorIs(t, err, tc.kind, "%s %q", tc.family, tc.input)
		var e *tag.Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, tc.index, e.Index, "%s %q", tc.family, tc.input)
		assert.Equal(t, tc.family, e.Family)
	}
}

func TestParseUnresolvedReference(t *testing.T) {
	c := testCatalog()
	_, err := tag.Parse(tag.FamilyProcess, "Mine<Gold>", c)
	assert.ErrorIs(t, err, tag.ErrParameterTypeMismatch)
	assert.ErrorIs(t, err, tag.ErrEntityNotFound)

	_, err = tag.Parse(tag.FamilyProcess, "Mine<Wheat>", nil)
	assert.ErrorIs(t, err, tag.ErrParameterTypeMismatch)

	var e *tag.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "tag Mine | parameter 0 | expected Product | example Product(Variant)", e.Hint())
}

func TestParseAny(t *testing.T) {
	cases := map[string]tag.ParameterType{
		"12":   tag.Integer,
		"-1.5": tag.Decimal,
		"red":  tag.Word,
	}
	for s, want := range cases {
		at, err := tag.Parse(tag.FamilyProduct, "Attribute<color;"+s+">", nil)
		require.NoError(t, err, s)
		v, _ := at.Get(1)
		assert.Equal(t, want, v.Type(), s)
		assert.Equal(t, "Attribute<color;"+s+">", at.Render())
	}
}

func TestAnyRejectsNumericWords(t *testing.T) {
	for _, w := range []string{"007", "00", "7", "99999999999999999999"} {
		_, err := tag.Create(tag.ProductAttribute, tag.WordOf("code"), tag.WordOf(w))
		assert.ErrorIs(t, err, tag.ErrParameterTypeMismatch, w)
	}
	// 同样的字面量在Word位置保持原样
	at, err := tag.Create(tag.ProductStorage, tag.WordOf("007"), tag.Dec(1))
	require.NoError(t, err)
	assert.Equal(t, "Storage<007;1>", at.Render())

	// 解析时Any位置的数值规范化
	at, err = tag.Parse(tag.FamilyProduct, "Attribute<code;007>", nil)
	require.NoError(t, err)
	assert.Equal(t, "Attribute<code;7>", at.Render())
	at, err = tag.Parse(tag.FamilyProduct, "Attribute<code;99999999999999999999>", nil)
	require.NoError(t, err)
	v, _ := at.Get(1)
	assert.Equal(t, tag.Decimal, v.Type())
}

func TestRenderWithCatalog(t *testing.T) {
	c := testCatalog()
	at, err := tag.Parse(tag.FamilyProcess, "Labor<Master Smith;0.5>", c)
	require.NoError(t, err)

	// 目录中的显示名称优先
	id, _ := c.Resolve(tag.EntityJob, "Master Smith")
	c.names[id] = "Smith"
	assert.Equal(t, "Labor<Smith;0.5>", tag.Render(at, c))
	assert.Equal(t, "Labor<Master Smith;0.5>", at.Render())

	// 目录中不存在时沿用原名称
	delete(c.names, id)
	assert.Equal(t, "Labor<Master Smith;0.5>", tag.Render(at, c))
	assert.Equal(t, "Labor<Master Smith;0.5>", tag.Render(at, nil))
}

func TestRoundTripAnyEdgeCases(t *testing.T) {
	for _, v := range []tag.Value{
		tag.Char('7'),
		tag.Char('_'),
		tag.Int(0),
		tag.Int(-12),
		tag.Dec(2),
		tag.Dec(math.Copysign(0, -1)),
		tag.Dec(1e21),
		tag.Dec(-0.25),
		tag.WordOf("_007"),
		tag.WordOf("x1"),
	} {
		want, err := tag.Create(tag.ProductAttribute, tag.WordOf("code"), v)
		require.NoError(t, err, v.String())
		got, err := tag.Parse(tag.FamilyProduct, want.Render(), nil)
		require.NoError(t, err, want.Render())
		assert.Empty(t, cmp.Diff(want, got), "%q", want.Render())
		assert.Equal(t, want.Render(), got.Render())
	}
	// 负零按0渲染
	at := tag.MustCreate(tag.ProductionOptional, tag.Dec(math.Copysign(0, -1)))
	assert.Equal(t, "Optional<0>", at.Render())
}

func TestRoundTrip(t *testing.T) {
	c := testCatalog()
	refs := c.refs()
	e := randengine.New(20240601)
	for round := 0; round < 50; round++ {
		for _, k := range tag.AllKinds() {
			want := e.Sample(k, refs)
			got, err := tag.Parse(k.Family(), want.Render(), c)
			require.NoError(t, err, "%s -> %q", k, want.Render())
			assert.Empty(t, cmp.Diff(want, got), "%q", want.Render())
			assert.True(t, tag.Matches(k, want.Render()))
		}
	}
}

func TestCodec(t *testing.T) {
	c := testCatalog()
	codec := tag.NewCodec(c)
	assert.Same(t, c, codec.Catalog())

	set, err := codec.ParseAll(tag.FamilyProduction, []string{"Optional<0.5>", "Fixed", "Chance<A;10>"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Optional<0.5>", "Fixed", "Chance<A;10>"}, set.Render())

	set, err = codec.ParseAll(tag.FamilyProduction, []string{"Optional<x>", "Fixed", "Nope"})
	assert.Nil(t, set)
	assert.ErrorIs(t, err, tag.ErrParameterTypeMismatch)
	assert.ErrorIs(t, err, tag.ErrUnknownTag)

	at, err := codec.Parse(tag.FamilySpecies, "Need<Food;2>")
	require.NoError(t, err)
	assert.Equal(t, "Need<Food;2>", codec.Render(at))
}
