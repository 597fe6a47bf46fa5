package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/pawhaven/internal/app"
	"github.com/pawhaven/internal/config"
	"github.com/pawhaven/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiCyan  = "\033[36m"
	ansiDim   = "\033[2m"
)

func main() {
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	printStartupBanner(mode)

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if weak := cfg.WeakSecrets(); len(weak) > 0 {
		if cfg.Server.Mode == "release" {
			stdLog.Fatalf("JWT 密钥过弱或仍为默认值: %v", weak)
		}
		stdLog.Printf("警告: JWT 密钥过弱或仍为默认值 %v，生产环境请更换", weak)
	}
	if !app.ValidMode(mode) {
		stdLog.Fatalf("未知启动模式: %s", mode)
	}
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner(mode string) {
	fmt.Println(ansiCyan + ansiBold + "PawHaven API" + ansiReset)
	fmt.Println(ansiDim + "mode: " + mode + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}
