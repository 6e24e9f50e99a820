package resolver

import (
	"log"
	"regexp"
	"strings"

	"FinSight/pkg/collector"
)

// tokenPattern 从大写化后的查询中提取2-10位的连续大写字母串
var tokenPattern = regexp.MustCompile(`\b[A-Z]{2,10}\b`)

// validationSuffixes 外部校验时依次尝试的交易所后缀
var validationSuffixes = []string{".NS", ".BO", ""}

// Resolver 股票代码解析器
// 先查静态别名表，查不到再逐后缀向行情源做快速报价校验
type Resolver struct {
	provider collector.MarketDataProvider
}

// NewResolver 创建代码解析器
func NewResolver(provider collector.MarketDataProvider) *Resolver {
	return &Resolver{
		provider: provider,
	}
}

// Resolve 从自由文本中解析出已校验的股票代码，按出现顺序去重返回
func (r *Resolver) Resolve(query string) []string {
	tokens := tokenPattern.FindAllString(strings.ToUpper(query), -1)

	var found []string
	seen := make(map[string]struct{})
	add := func(symbol string) {
		if _, ok := seen[symbol]; ok {
			return
		}
		seen[symbol] = struct{}{}
		found = append(found, symbol)
	}

	for _, token := range tokens {
		if _, ok := StopWords[token]; ok {
			continue
		}

		// 最高优先级：静态别名表，命中即采信
		if mapped, ok := IndiaTickerMap[token]; ok {
			log.Printf("解析到别名代码: %s -> %s", token, mapped)
			add(mapped)
			continue
		}

		// 依次尝试NSE、BSE与原始代码，取第一个能报出价格的候选
		for _, suffix := range validationSuffixes {
			candidate := token + suffix
			price, err := r.provider.FastQuote(candidate)
			if err != nil || price <= 0 {
				continue
			}
			log.Printf("校验通过的代码: %s", candidate)
			add(candidate)
			break
		}
		// 所有后缀都校验失败则静默丢弃该词，不做模糊匹配
	}

	return found
}
