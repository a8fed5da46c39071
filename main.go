package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"git.fiblab.net/sim/syncer/v3"
	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/JeremyDaug/EconomicCalculator-sub004/task"
	"github.com/JeremyDaug/EconomicCalculator-sub004/utils/config"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	// 分布式模式syncer地址，如果设置为空则激活独立部署模式
	syncerAddr = flag.String("syncer", "", "syncer address (empty means standalone mode), e.g. http://localhost:53001")
	// 任务名，用于日志与服务注册
	job = flag.String("job", "job0", "the name of the whole validation task")
	// 标签服务监听地址
	grpcAddr = flag.String("listen", ":51102", "gRPC listening address")
	// 配置文件路径
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 实体目录input的缓存地址，设置为空则禁用缓存功能
	// 缓存：将MongoDB中的目录数据序列化到本地文件系统，并总是先试图从文件系统中加载
	cacheDir = flag.String("cache", "data/", "input cache dir path (empty means disable cache)")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "econcalc")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	// .env 可选，用于提供MongoDB连接字符串等环境变量
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("failed to load .env: %v", err)
	}
	// 获取配置
	c, err := config.Load(*configPath, *configData)
	if err != nil {
		log.Panicf("%v", err)
	}
	log.Infof("%+v", c)

	var sidecar *syncer.Sidecar
	if c.Control.Serve {
		sidecar = syncer.NewSidecar(task.SelfName, *grpcAddr, *syncerAddr)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := task.NewContext(*job, *cacheDir, c, sidecar).Run(ctx); err != nil {
		log.Panicf("job %s failed: %v", *job, err)
	}
}
