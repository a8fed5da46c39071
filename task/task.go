package task

import (
	"context"
	"fmt"

	"git.fiblab.net/sim/syncer/v3"
	"github.com/JeremyDaug/EconomicCalculator-sub004/catalog"
	"github.com/JeremyDaug/EconomicCalculator-sub004/content"
	"github.com/JeremyDaug/EconomicCalculator-sub004/tag"
	"github.com/JeremyDaug/EconomicCalculator-sub004/tagsvc"
	"github.com/JeremyDaug/EconomicCalculator-sub004/utils/config"
	"github.com/JeremyDaug/EconomicCalculator-sub004/utils/input"
	"github.com/sirupsen/logrus"
)

// SelfName 服务注册名
const SelfName = "econcalc"

var log = logrus.WithField("module", "task")

// Context 一次内容校验任务的上下文
// 功能：持有配置、实体目录、编解码器与校验结果，按顺序执行加载、校验、输出与服务
type Context struct {
	// 任务名
	job string
	// 配置
	config config.Config
	// 实体目录缓存目录
	cacheDir string

	catalog *catalog.Catalog
	codec   *tag.Codec
	doc     *content.Document
	result  *content.Result

	// 为nil时不提供RPC服务
	sidecar *syncer.Sidecar
}

// NewContext 创建任务上下文
// 参数：
//   - job: 任务名
//   - cacheDir: 实体目录缓存目录，为空则禁用缓存
//   - config: 配置
//   - sidecar: RPC服务所在的sidecar，仅在control.serve为true时使用
func NewContext(job string, cacheDir string, config config.Config, sidecar *syncer.Sidecar) *Context {
	return &Context{
		job:      job,
		config:   config,
		cacheDir: cacheDir,
		sidecar:  sidecar,
	}
}

// Init 加载实体目录与内容
// 算法说明：
// 1. 从目录文件、缓存或MongoDB加载实体目录
// 2. 按顺序读取并合并内容文件
// 3. 将内容自身定义的产品、物种、文化加入目录
func (ctx *Context) Init() error {
	entries, err := input.Init(ctx.config, ctx.cacheDir)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if ctx.catalog, err = catalog.FromEntries(entries); err != nil {
		return fmt.Errorf("failed to build catalog: %w", err)
	}
	if ctx.doc, err = content.Load(ctx.config.Content.Files...); err != nil {
		return err
	}
	if err := ctx.doc.Register(ctx.catalog); err != nil {
		return fmt.Errorf("failed to register content entities: %w", err)
	}
	ctx.codec = tag.NewCodec(ctx.catalog)
	log.Infof("job %s: %d catalog entities", ctx.job, ctx.catalog.Len())
	return nil
}

// Validate 校验全部标签，按配置输出规范化内容
// 返回：control.stop_on_error为true且存在被拒绝的记录时返回合并后的错误
func (ctx *Context) Validate() error {
	ctx.result = content.Validate(ctx.doc, ctx.codec)
	log.Infof("job %s: %d records accepted, %d rejected", ctx.job, len(ctx.result.Accepted), len(ctx.result.Rejected))
	if out := ctx.config.Content.Output; out != "" {
		ctx.doc.Normalize(ctx.result)
		if err := ctx.doc.Write(out); err != nil {
			return fmt.Errorf("failed to write normalized content: %w", err)
		}
		log.Infof("normalized content written to %s", out)
	}
	if ctx.config.Control.StopOnError {
		return ctx.result.Err()
	}
	return nil
}

// Run 执行任务，control.serve为true时一直提供标签服务直到ctx结束
func (ctx *Context) Run(c context.Context) error {
	if err := ctx.Init(); err != nil {
		return err
	}
	if err := ctx.Validate(); err != nil {
		return err
	}
	if !ctx.config.Control.Serve {
		return nil
	}
	if ctx.sidecar == nil {
		return fmt.Errorf("control.serve requires a sidecar")
	}
	tagsvc.NewServer(ctx.codec).Register(ctx.sidecar)
	closeCh := make(chan error, 1)
	// sidecar协程，用于提供RPC服务
	go func() {
		closeCh <- ctx.sidecar.Serve()
	}()
	select {
	case err := <-closeCh:
		return err
	case <-c.Done():
	}
	ctx.sidecar.Close()
	// wait for graceful stop
	return <-closeCh
}

// Catalog 实体目录，Init之后可用
func (ctx *Context) Catalog() *catalog.Catalog {
	return ctx.catalog
}

// Result 校验结果，Validate之后可用
func (ctx *Context) Result() *content.Result {
	return ctx.result
}
