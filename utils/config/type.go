package config

// InputPath 指定实体目录数据来源的配置（MongoDB、文件系统）
// 说明：File优先级高于MongoDB；MongoDB数据可缓存到本地，缓存文件名默认为{db}.{col}.pb
type InputPath struct {
	DB        string `yaml:"db,omitempty"`         // 数据库名
	Col       string `yaml:"col,omitempty"`        // 集合名
	Cache     string `yaml:"cache,omitempty"`      // 缓存文件名，为空则采用默认路径{db}.{col}.pb
	OnlyCache bool   `yaml:"only_cache,omitempty"` // 只从缓存中获取
	File      string `yaml:"file,omitempty"`       // YAML目录文件路径（优先级高于MongoDB）
}

// GetDb 获取数据库名
func (p InputPath) GetDb() string {
	return p.DB
}

// GetColl 获取集合名
func (p InputPath) GetColl() string {
	return p.Col
}

// GetCachePath 获取缓存文件路径
// 说明：指定了缓存路径则直接返回，否则为 {数据库名}.{集合名}.pb
func (p InputPath) GetCachePath() string {
	if p.Cache != "" {
		return p.Cache
	}
	return p.DB + "." + p.Col + ".pb"
}

// Input 实体目录输入配置
type Input struct {
	URI     string    `yaml:"uri,omitempty"` // MongoDB连接字符串
	Catalog InputPath `yaml:"catalog"`       // 实体目录（产品、需求、职业、物种、文化）
}

// Content 待校验的内容文件
type Content struct {
	Files  []string `yaml:"files"`            // 内容文件列表，按顺序合并
	Output string   `yaml:"output,omitempty"` // 规范化后的内容输出路径，为空则不输出
}

// Control 运行控制
type Control struct {
	StopOnError bool `yaml:"stop_on_error,omitempty"` // 存在被拒绝的记录时以非零状态退出
	Serve       bool `yaml:"serve,omitempty"`         // 校验后继续提供标签RPC服务
}

// Config YAML配置文件的根结构
type Config struct {
	Input   Input   `yaml:"input"`   // 输入
	Content Content `yaml:"content"` // 内容
	Control Control `yaml:"control"` // 运行控制
}
