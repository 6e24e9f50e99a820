package model

import (
	"time"
)

// OHLCVBar 单根K线数据
type OHLCVBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSnapshot 个股价格快照
// 每次请求实时拉取，不做任何缓存
type PriceSnapshot struct {
	Ticker        string     `json:"ticker"`
	CurrentPrice  float64    `json:"current_price"`
	PreviousPrice float64    `json:"previous_price"`
	ChangePct     float64    `json:"change_pct"`
	ChangeAmount  float64    `json:"change_amount"`
	Volume        float64    `json:"volume"`
	AvgVolume     float64    `json:"avg_volume"`
	High52w       float64    `json:"high_52w"`
	Low52w        float64    `json:"low_52w"`
	Historical    []OHLCVBar `json:"historical_data"`
}

// IndexQuote 指数行情
type IndexQuote struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
}

// MarketSummary 大盘摘要
type MarketSummary struct {
	Indices        []IndexQuote `json:"indices"`
	Sentiment      string       `json:"market_sentiment"`
	SentimentScore float64      `json:"sentiment_score"`
	IndicesUp      int          `json:"indices_up"`
	IndicesDown    int          `json:"indices_down"`
	AsOf           time.Time    `json:"as_of"`
}

// NewsItem 新闻条目
type NewsItem struct {
	Title       string    `json:"title"`
	Publisher   string    `json:"publisher"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"published_at"`
}
