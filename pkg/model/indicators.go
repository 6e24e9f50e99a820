package model

// IndicatorSet 技术指标序列集合
// 各序列与输入K线按下标对齐，未满窗口期的前缀为0
type IndicatorSet struct {
	Ticker     string    `json:"ticker"`
	Dates      []string  `json:"dates"`
	Closes     []float64 `json:"closes"`
	SMA20      []float64 `json:"sma_20"`
	SMA50      []float64 `json:"sma_50"`
	SMA200     []float64 `json:"sma_200"`
	EMA12      []float64 `json:"ema_12"`
	EMA26      []float64 `json:"ema_26"`
	RSI        []float64 `json:"rsi"`
	MACD       []float64 `json:"macd"`
	MACDSignal []float64 `json:"macd_signal"`
	MACDHist   []float64 `json:"macd_hist"`
	BBUpper    []float64 `json:"bb_upper"`
	BBMiddle   []float64 `json:"bb_middle"`
	BBLower    []float64 `json:"bb_lower"`
}
