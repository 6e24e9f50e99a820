package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"FinSight/pkg/collector"
	"FinSight/pkg/config"
	"FinSight/pkg/database"
	"FinSight/pkg/engine"
	"FinSight/pkg/messaging"
	"FinSight/pkg/model"
	"FinSight/pkg/nav"
)

func main() {
	log.Println("启动净值监控服务...")

	// 加载.env文件（不存在则忽略）
	_ = godotenv.Load()

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v\n", err)
	}

	// 创建数据源适配器与流水线
	provider := collector.NewYahooAdapter(cfg.DataSources.Yahoo.BaseURL, cfg.DataSources.Yahoo.Timeout)
	pipeline := nav.NewPipeline(provider, cfg.NAV.Threshold)

	// 连接NATS，用于把预警事件广播给通知服务
	natsClient, err := messaging.NewNATSClient(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("连接NATS失败: %v\n", err)
	}
	defer natsClient.Close()

	// 连接数据库，失败时降级为只发不存
	var recorder engine.AlertRecorder
	if cfg.Database.Postgres.Host != "" {
		db, err := database.NewPostgres(cfg)
		if err != nil {
			log.Printf("警告: 连接数据库失败，预警事件不落库: %v", err)
		} else {
			recorder = db.Alert()
			defer db.Close()
		}
	}

	// 创建预警通道并启动处理协程
	alertChan := make(chan model.AlertEvent, 100)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		engine.DrainAlerts(alertChan, messaging.SubjectNAVAlert, natsClient, recorder)
	}()

	// 创建并启动监控引擎
	mon := engine.NewMonitor(pipeline, cfg.NAV.Watchlist, cfg.NAV.CronSpec, alertChan)
	if err := mon.Start(); err != nil {
		log.Fatalf("启动监控引擎失败: %v\n", err)
	}

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭净值监控服务...")
	mon.Stop()

	// 先排空缓冲中的事件，再让defer关闭NATS与数据库
	close(alertChan)
	<-drained
}
