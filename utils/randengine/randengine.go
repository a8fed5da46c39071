// 随机数引擎，包装了golang.org/x/exp/rand，用于生成符合标签签名的随机参数
package randengine

import (
	"flag"
	"strings"
	"sync"

	"github.com/JeremyDaug/EconomicCalculator-sub004/tag"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数序列

	log = logrus.WithField("module", "randengine")
)

const wordChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_"

// anyWeights Any位置上生成整数、小数、单词、字符的权重
var anyWeights = []float64{1, 1, 1, 1}

// Engine 随机数引擎
// 功能：按标签签名生成随机但合法的参数值，主要用于往返一致性测试与示例数据
// 说明：非Safe方法不是线程安全的
type Engine struct {
	*rand.Rand            // 底层随机数生成器
	mtx        sync.Mutex // 互斥锁，用于线程安全操作
}

// New 创建随机数引擎
// 参数：seed-随机数种子，实际种子会加上-rand.seed_offset
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// DiscreteDistribution 按给定权重生成随机下标（非线程安全）
// 算法说明：
// 1. 计算总权重并在[0, 总权重)范围内取随机数
// 2. 累积权重，返回第一个累积值超过随机数的下标
func (e *Engine) DiscreteDistribution(weight []float64) int32 {
	random := .0
	for _, w := range weight {
		random += w
	}
	random *= e.Float64()
	sum := 0.
	for i, w := range weight {
		sum += w
		if sum > random {
			return int32(i)
		}
	}
	log.Panicf("randengine: DiscreteDistribution: sum: %f random: %f", sum, random)
	return -1
}

// PTrue 以指定概率返回true（非线程安全）
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}

// IntnSafe 随机生成[0, n)范围内的整数（线程安全）
func (e *Engine) IntnSafe(n int) int {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.Intn(n)
}

// Word 随机单词，长度1~8，只含单词字符
func (e *Engine) Word() string {
	n := 1 + e.Intn(8)
	b := make([]byte, n)
	for i := range b {
		b[i] = wordChars[e.Intn(len(wordChars))]
	}
	return string(b)
}

// Value 按参数类型生成随机参数值（非线程安全）
// 参数：t-参数类型，refs-各引用类型的候选值
// 返回：随机参数值；引用类型没有候选值时panic
// 算法说明：
// 1. 整数在[-10000, 10000]内，小数在[-1000, 1000)内
// 2. 单词与字符只使用单词字符
// 3. Any按anyWeights在整数、小数、单词、字符中选择，单词不为纯数字
// 4. 引用类型从refs中等概率选取
func (e *Engine) Value(t tag.ParameterType, refs map[tag.ParameterType][]tag.Value) tag.Value {
	switch t {
	case tag.Integer:
		v := int64(e.Intn(10001))
		if e.PTrue(0.5) {
			v = -v
		}
		return tag.Int(v)
	case tag.Decimal:
		return tag.Dec(e.Float64()*2000 - 1000)
	case tag.Word:
		return tag.WordOf(e.Word())
	case tag.Character:
		return tag.Char(rune(wordChars[e.Intn(len(wordChars))]))
	case tag.Any:
		t := []tag.ParameterType{tag.Integer, tag.Decimal, tag.Word, tag.Character}[e.DiscreteDistribution(anyWeights)]
		if t != tag.Word {
			return e.Value(t, refs)
		}
		// Any位置不接受纯数字单词
		w := e.Word()
		for strings.Trim(w, "0123456789") == "" {
			w = e.Word()
		}
		return tag.WordOf(w)
	}
	candidates := refs[t]
	if len(candidates) == 0 {
		log.Panicf("randengine: no candidate values for %s", t)
	}
	return candidates[e.Intn(len(candidates))]
}

// Values 按签名生成一组随机参数值（非线程安全）
func (e *Engine) Values(sig tag.Signature, refs map[tag.ParameterType][]tag.Value) []tag.Value {
	res := make([]tag.Value, len(sig))
	for i, t := range sig {
		res[i] = e.Value(t, refs)
	}
	return res
}

// Sample 随机生成一个合法的标签实例（非线程安全）
func (e *Engine) Sample(k tag.Kind, refs map[tag.ParameterType][]tag.Value) tag.AttachedTag {
	return tag.MustCreate(k, e.Values(k.Signature(), refs)...)
}
