package indicator

import (
	"math"

	"FinSight/pkg/model"
)

// SMA 计算简单移动平均序列
// 返回与输入等长的序列，窗口未满的前缀为0
func SMA(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	if period <= 0 || len(closes) < period {
		return out
	}

	var sum float64
	for i, c := range closes {
		sum += c
		if i >= period {
			sum -= closes[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA 计算指数移动平均序列，首值取首个收盘价
func EMA(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	if period <= 0 || len(closes) == 0 {
		return out
	}

	alpha := 2.0 / float64(period+1)
	out[0] = closes[0]
	for i := 1; i < len(closes); i++ {
		out[i] = alpha*closes[i] + (1-alpha)*out[i-1]
	}
	return out
}

// RSI 计算Wilder平滑的相对强弱指数序列
// 至少需要period+1个收盘价，未满窗口的前缀为0
func RSI(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}

	// 前period个变动的初始均值
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // 取正值
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiFromAverages(avgGain, avgLoss)

	// 其余K线做Wilder平滑
	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}
	return out
}

// rsiFromAverages 由平均涨跌幅推导RSI值
func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// MACD 计算MACD线、信号线与柱状图
func MACD(closes []float64, fast, slow, signal int) (macd, signalLine, hist []float64) {
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	macd = make([]float64, len(closes))
	for i := range closes {
		macd[i] = emaFast[i] - emaSlow[i]
	}

	signalLine = EMA(macd, signal)

	hist = make([]float64, len(closes))
	for i := range closes {
		hist[i] = macd[i] - signalLine[i]
	}
	return macd, signalLine, hist
}

// Bollinger 计算布林带上中下轨
func Bollinger(closes []float64, period int, stdDev float64) (upper, middle, lower []float64) {
	middle = SMA(closes, period)
	upper = make([]float64, len(closes))
	lower = make([]float64, len(closes))
	if period <= 0 || len(closes) < period {
		return upper, middle, lower
	}

	for i := period - 1; i < len(closes); i++ {
		var variance float64
		for j := i - period + 1; j <= i; j++ {
			diff := closes[j] - middle[i]
			variance += diff * diff
		}
		sd := math.Sqrt(variance / float64(period))
		upper[i] = middle[i] + stdDev*sd
		lower[i] = middle[i] - stdDev*sd
	}
	return upper, middle, lower
}

// ComputeAll 对历史K线计算全部图表指标
func ComputeAll(ticker string, bars []model.OHLCVBar) *model.IndicatorSet {
	closes := make([]float64, len(bars))
	dates := make([]string, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
		dates[i] = bar.Date.Format("2006-01-02")
	}

	set := &model.IndicatorSet{
		Ticker: ticker,
		Dates:  dates,
		Closes: closes,
		SMA20:  SMA(closes, 20),
		SMA50:  SMA(closes, 50),
		SMA200: SMA(closes, 200),
		EMA12:  EMA(closes, 12),
		EMA26:  EMA(closes, 26),
		RSI:    RSI(closes, 14),
	}
	set.MACD, set.MACDSignal, set.MACDHist = MACD(closes, 12, 26, 9)
	set.BBUpper, set.BBMiddle, set.BBLower = Bollinger(closes, 20, 2)
	return set
}
