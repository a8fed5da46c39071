package input

import (
	"context"
	"errors"
	"fmt"
	"os"

	"git.fiblab.net/general/common/v2/cache"
	"git.fiblab.net/general/common/v2/mongoutil"
	"github.com/JeremyDaug/EconomicCalculator-sub004/catalog"
	"github.com/JeremyDaug/EconomicCalculator-sub004/utils/config"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/protobuf/types/known/structpb"
)

var log = logrus.WithField("module", "input")

// Init 加载实体目录数据
// 功能：根据配置从YAML文件、本地缓存或MongoDB加载实体目录项
// 参数：c-配置对象，cacheDir-缓存目录（为空则禁用缓存）
// 返回：目录项列表
// 算法说明：
// 1. 配置了文件则只从文件加载
// 2. 通过cache.LoadWithCache先读取缓存 {cacheDir}/{db}.{col}.pb（绝对路径的cache直接使用）
// 3. 缓存不存在且未设置only_cache时从MongoDB下载，逐条解码，任何一条失败则panic
// 4. 下载成功后由cache写回缓存
// 说明：没有配置任何来源时返回空列表，目录只包含内容文件自身定义的实体
func Init(c config.Config, cacheDir string) ([]catalog.Entry, error) {
	p := c.Input.Catalog
	if p.File != "" {
		log.Infof("load catalog from file %s", p.File)
		return LoadFile(p.File)
	}
	if p.DB == "" && p.Col == "" {
		log.Warn("no catalog input configured")
		return nil, nil
	}
	if !preCheckCache(cacheDir) {
		cacheDir = ""
	}

	var downloadFunc func() *structpb.ListValue
	if !p.OnlyCache {
		if c.Input.URI == "" {
			return nil, fmt.Errorf("catalog %s.%s needs input.uri", p.DB, p.Col)
		}
		downloadFunc = func() *structpb.ListValue {
			return mustDownload(c.Input.URI, p)
		}
	}
	log.Infof("start fetching from %s.%s", p.DB, p.Col)
	list, err := cache.LoadWithCache(cacheDir, p, downloadFunc)
	if errors.Is(err, cache.ErrNoAvailableSource) {
		return nil, fmt.Errorf("catalog cache for %s.%s is unavailable and only_cache is set: %w", p.DB, p.Col, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s.%s with cache: %w", p.DB, p.Col, err)
	}
	entries, err := DecodeList(list)
	if err != nil {
		return nil, fmt.Errorf("bad catalog data for %s.%s: %w", p.DB, p.Col, err)
	}
	log.Infof("finish fetching %d entries from %s.%s", len(entries), p.DB, p.Col)
	return entries, nil
}

// mustDownload 从MongoDB下载实体目录并转为缓存格式，失败时panic
func mustDownload(uri string, p config.InputPath) *structpb.ListValue {
	client := mongoutil.NewClient(uri)
	defer client.Disconnect(context.Background())

	raws, err := download(context.Background(), mongoutil.GetMongoColl(client, p))
	if err != nil {
		log.Panicf("failed to download %s.%s: %v", p.DB, p.Col, err)
	}
	entries, errs := DecodeEntries(raws)
	if len(errs) > 0 {
		for _, err := range errs {
			log.Errorf("failed to download: %v", err)
		}
		log.Panicln("failed to download")
	}
	list, err := EncodeEntries(entries)
	if err != nil {
		log.Panicf("failed to encode %s.%s: %v", p.DB, p.Col, err)
	}
	return list
}

// download 读取集合中class为entity的全部文档
func download(ctx context.Context, coll *mongo.Collection) ([]bson.Raw, error) {
	cur, err := coll.Find(ctx, bson.M{"class": EntityClass})
	if err != nil {
		return nil, err
	}
	var raws []bson.Raw
	if err := cur.All(ctx, &raws); err != nil {
		return nil, err
	}
	return raws, nil
}

// preCheckCache 预检查缓存目录
// 功能：验证缓存目录的有效性，决定是否启用缓存功能
// 返回：true表示启用缓存，false表示禁用缓存
func preCheckCache(cacheDir string) bool {
	if cacheDir == "" {
		log.Info("disable input cache")
		return false
	} else {
		if stat, err := os.Stat(cacheDir); err == nil && stat.IsDir() {
			// 文件夹存在
			log.Infof("enable input cache at %s", cacheDir)
			return true
		} else {
			log.Errorf("disable input cache because invalid dir %s (not exist or file)", cacheDir)
			return false
		}
	}
}
