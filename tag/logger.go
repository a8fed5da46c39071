package tag

import "github.com/sirupsen/logrus"

// log 标签模块的日志记录器
var log = logrus.WithField("module", "tag")
