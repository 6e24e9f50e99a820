package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"FinSight/pkg/config"
	"FinSight/pkg/database"
	"FinSight/pkg/messaging"
	"FinSight/pkg/model"
	"FinSight/pkg/notifier"
)

func main() {
	log.Println("启动通知服务...")

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

	// 创建Webhook通知器
	webhookNotifier := notifier.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Timeout)

	// 连接NATS
	natsClient, err := messaging.NewNATSClient(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("连接NATS失败: %v\n", err)
	}
	defer natsClient.Close()

	// 连接数据库，用于标记已通知（失败时跳过标记）
	var alertDB *database.AlertDB
	if cfg.Database.Postgres.Host != "" {
		db, err := database.NewPostgres(cfg)
		if err != nil {
			log.Printf("警告: 连接数据库失败，不标记通知状态: %v", err)
		} else {
			alertDB = db.Alert()
			defer db.Close()
		}
	}

	// 订阅净值预警事件
	err = natsClient.Subscribe("nav-notifier", messaging.SubjectNAVAlert, func(data []byte) error {
		var alert model.AlertEvent
		if err := json.Unmarshal(data, &alert); err != nil {
			return fmt.Errorf("解析预警事件失败: %w", err)
		}

		log.Printf("收到预警事件: 股票=%s, 严重程度=%s\n", alert.Symbol, alert.Severity)

		// 转发Webhook
		if err := webhookNotifier.SendAlertEvent(&alert); err != nil {
			return err
		}

		// 标记已通知
		if alertDB != nil && alert.ID != "" {
			if err := alertDB.MarkNotified(alert.ID); err != nil {
				log.Printf("标记预警事件失败: %v\n", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("订阅预警事件失败: %v\n", err)
	}

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("通知服务已退出")
}
