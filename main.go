package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"bossarena/config"
	"bossarena/game"
	"bossarena/server"
)

// BossArena 入口：加载配置、初始化世界、启动 TCP 服务与管理端口
func main() {
	var cfgPath, adminAddr, logPath string
	flag.StringVar(&cfgPath, "config", "config.json", "config file path")
	flag.StringVar(&adminAddr, "admin", ":9090", "admin/metrics listen address, empty to disable")
	flag.StringVar(&logPath, "log", "server.log", "log file path")
	flag.Parse()

	// .env 可选：不存在时静默跳过，环境变量仍然生效
	_ = godotenv.Load()

	// 使用第三方 zap 日志库写入滚动文件并镜像到 stdout
	if err := server.InitLogger(logPath); err != nil {
		panic(err)
	}
	defer server.SyncLogger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		server.Log.Fatalf("load config: %v", err)
	}
	config.ApplyEnv(&cfg)

	// 世界：显式上下文对象，随入口构造一次并注入各组件
	mgr := game.NewManager(server.Log)
	mgr.ApplyTuning(map[string]float64{
		"damage_multiplier": cfg.Gameplay.DamageMultiplier,
		"boss_health_scale": cfg.Gameplay.BossHealthScale,
	})
	mgr.SpawnBoss("Dragon", game.Vec2{X: 500, Y: 300})

	srv := server.New(mgr, mgr, cfg.Gameplay.MaxPlayers)
	if err := srv.Start(cfg.Network.ServerHost, cfg.Network.ServerPort); err != nil {
		server.Log.Fatalf("start: %v", err)
	}

	// 管理与监控：/ws /metrics /healthz /admin/config
	if adminAddr != "" {
		adminSrv := &http.Server{Addr: adminAddr, Handler: server.NewAdminMux(srv, mgr)}
		go func() {
			server.Log.Infof("admin listening on %s", adminAddr)
			if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				server.Log.Errorf("admin listen: %v", err)
			}
		}()
	}

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("Shutting down...")
	srv.Stop()
}
