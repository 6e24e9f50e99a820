package agent

import (
	"strings"

	"FinSight/pkg/model"
)

// financeKeywords 判定查询是否属于财经领域的宽口径关键词
// 与下面各意图的窄口径关键词独立维护，两者允许不一致
var financeKeywords = []string{
	"stock", "stocks", "share", "shares", "equity", "equities",
	"nifty", "sensex", "index", "indices", "market", "markets",
	"invest", "investment", "investing", "trading", "intraday",
	"swing", "long term", "short term", "portfolio", "risk",
	"returns", "profit", "loss", "valuation", "pe ratio", "pe",
	"dividend", "eps", "earnings", "results", "balance sheet",
	"cash flow", "financials", "fundamental", "technical",
	"mutual fund", "mf", "etf", "sip", "brokerage", "price",
}

// 各意图的关键词组，匹配采用整句子串包含，刻意保持宽松
var (
	compareKeywords    = []string{"compare", "vs", "versus", "better than", "between"}
	marketKeywords     = []string{"market", "indices", "index", "nifty", "sensex"}
	financialsKeywords = []string{"profit", "financial", "valuation", "balance"}
	priceKeywords      = []string{"price", "cmp", "quote", "trading at"}
	adviceKeywords     = []string{"long term", "short term", "buy", "sell"}
)

// containsAny 判断查询是否包含任一关键词（子串匹配，非分词匹配）
func containsAny(queryLower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(queryLower, keyword) {
			return true
		}
	}
	return false
}

// IsFinanceQuery 宽口径判断查询是否与财经相关
func IsFinanceQuery(query string) bool {
	return containsAny(strings.ToLower(query), financeKeywords)
}

// ClassifyIntent 将查询归入唯一意图
// 纯函数：只依赖小写查询文本与已解析的代码集合，规则按优先级依次判定
func ClassifyIntent(queryLower string, tickers []string) model.Intent {
	if containsAny(queryLower, compareKeywords) {
		// 对比意图但代码不足两只时退化为普通聊天，不算错误
		if len(tickers) >= 2 {
			return model.IntentCompare
		}
		return model.IntentGeneral
	}

	if strings.Contains(queryLower, "news") {
		return model.IntentNews
	}

	if containsAny(queryLower, marketKeywords) {
		return model.IntentMarket
	}

	if containsAny(queryLower, financialsKeywords) && len(tickers) > 0 {
		return model.IntentFinancials
	}

	if containsAny(queryLower, priceKeywords) && len(tickers) > 0 {
		return model.IntentPrice
	}

	if len(tickers) > 0 && containsAny(queryLower, adviceKeywords) {
		return model.IntentFinancials
	}

	return model.IntentGeneral
}
