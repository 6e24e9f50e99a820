package collector

import (
	"FinSight/pkg/model"
)

// MarketDataProvider 行情数据提供方接口
// 所有调用都是即时、尽力而为的，任何失败以错误返回值上浮，
// 由各数据操作的边界转换为错误载荷，绝不越过路由器
type MarketDataProvider interface {
	// FastQuote 快速报价，返回最新成交价，用于代码校验
	FastQuote(ticker string) (float64, error)

	// FetchSnapshot 获取价格快照及历史序列
	FetchSnapshot(ticker string, period string) (*model.PriceSnapshot, error)

	// FetchFinancials 获取关键比率与三大报表摘要
	FetchFinancials(ticker string) (*model.CompanyFinancials, error)

	// FetchProfile 获取公司概况
	FetchProfile(ticker string) (*model.CompanyProfile, error)

	// FetchNews 获取新闻列表
	FetchNews(ticker string, limit int) ([]model.NewsItem, error)

	// FetchIndex 获取指数行情
	FetchIndex(symbol string) (*model.IndexQuote, error)
}
