package tag

import (
	"fmt"
	"strings"
)

// Family 标签所修饰的实体族
// 功能：划分标签的归属，每个Kind只属于一个Family
// 说明：Production族用于工艺（Process）的输入输出部件
type Family int

const (
	FamilyProduct    Family = iota // 产品
	FamilyProcess                  // 工艺
	FamilyProduction               // 工艺输入输出部件
	FamilyCulture                  // 文化
	FamilySpecies                  // 物种
	familyCount
)

var familyNames = [...]string{
	FamilyProduct:    "product",
	FamilyProcess:    "process",
	FamilyProduction: "production",
	FamilyCulture:    "culture",
	FamilySpecies:    "species",
}

func (f Family) String() string {
	if f < 0 || f >= familyCount {
		return fmt.Sprintf("Family(%d)", int(f))
	}
	return familyNames[f]
}

// Valid 是否为已定义的实体族
func (f Family) Valid() bool {
	return f >= 0 && f < familyCount
}

// ParseFamily 根据名称（不区分大小写）查找实体族
func ParseFamily(s string) (Family, error) {
	for i, name := range familyNames {
		if strings.EqualFold(name, s) {
			return Family(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tag family %q", s)
}

// Families 返回所有实体族
func Families() []Family {
	res := make([]Family, 0, familyCount)
	for f := Family(0); f < familyCount; f++ {
		res = append(res, f)
	}
	return res
}
