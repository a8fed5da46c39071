package config

import (
	"encoding/base64"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// MongoURIEnv 覆盖input.uri的环境变量
const MongoURIEnv = "ECONCALC_MONGO_URI"

// Load 读取配置
// 功能：从配置文件或Base64编码的配置数据中严格解析YAML配置
// 参数：path-配置文件路径，data-Base64编码的配置数据（path为空时使用）
// 返回：配置对象
// 说明：未知字段视为错误；环境变量ECONCALC_MONGO_URI非空时覆盖input.uri
func Load(path string, data string) (Config, error) {
	var c Config
	var file []byte
	var err error
	if path != "" {
		file, err = os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("config file load err: %w", err)
		}
	} else if data != "" {
		file, err = base64.StdEncoding.DecodeString(data)
		if err != nil {
			return c, fmt.Errorf("config data load err: %w", err)
		}
	} else {
		return c, fmt.Errorf("config file or config data must be specified")
	}
	if err := yaml.UnmarshalStrict(file, &c); err != nil {
		return c, fmt.Errorf("config file load err: %w", err)
	}
	if uri := os.Getenv(MongoURIEnv); uri != "" {
		c.Input.URI = uri
	}
	return c, nil
}
