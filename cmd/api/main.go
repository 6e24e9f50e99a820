package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"FinSight/pkg/agent"
	"FinSight/pkg/api"
	"FinSight/pkg/collector"
	"FinSight/pkg/config"
	"FinSight/pkg/database"
	"FinSight/pkg/llm"
	"FinSight/pkg/nav"
	"FinSight/pkg/notifier"
	"FinSight/pkg/resolver"
)

func main() {
	log.Println("启动API服务...")

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

	// 创建数据源适配器
	provider := collector.NewYahooAdapter(cfg.DataSources.Yahoo.BaseURL, cfg.DataSources.Yahoo.Timeout)

	// 创建大模型客户端
	llmClient := llm.NewClient(cfg.LLM.APIURL, cfg.LLM.APIKey, cfg.LLM.ModelName, cfg.LLM.Timeout)

	// 创建解析器与查询路由器
	res := resolver.NewResolver(provider)
	router := agent.NewRouter(res, provider, llmClient)

	// 创建净值分析流水线
	pipeline := nav.NewPipeline(provider, cfg.NAV.Threshold)

	// 创建Webhook通知器
	webhookNotifier := notifier.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Timeout)

	// 连接数据库，失败时降级运行（预警历史接口返回503）
	var alertDB api.AlertStore
	if cfg.Database.Postgres.Host != "" {
		db, err := database.NewPostgres(cfg)
		if err != nil {
			log.Printf("警告: 连接数据库失败，预警历史不可用: %v", err)
		} else {
			alertDB = db.Alert()
			defer db.Close()
		}
	}

	// 创建API处理程序
	handlers := api.NewHandlers(router, provider, pipeline, webhookNotifier, alertDB)

	// 创建并启动服务器
	server := api.NewServer(cfg.API.Port)
	server.SetupRoutes(handlers)
	server.Start()
}
