package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"FinSight/pkg/model"
)

// YahooClient Yahoo Finance公开API客户端
type YahooClient struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooClient 创建新的Yahoo客户端
func NewYahooClient(baseURL string, timeout time.Duration) *YahooClient {
	return &YahooClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// yahooChart chart接口响应结构
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ShortName          string  `json:"shortName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooValue quoteSummary接口中的数值对象
type yahooValue struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

// yahooQuoteSummary quoteSummary接口响应结构
type yahooQuoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				LongName  string     `json:"longName"`
				ShortName string     `json:"shortName"`
				MarketCap yahooValue `json:"marketCap"`
			} `json:"price"`
			SummaryProfile struct {
				Sector              string `json:"sector"`
				Industry            string `json:"industry"`
				LongBusinessSummary string `json:"longBusinessSummary"`
			} `json:"summaryProfile"`
			SummaryDetail struct {
				TrailingPE yahooValue `json:"trailingPE"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				ForwardPE   yahooValue `json:"forwardPE"`
				PegRatio    yahooValue `json:"pegRatio"`
				PriceToBook yahooValue `json:"priceToBook"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				ProfitMargins    yahooValue `json:"profitMargins"`
				OperatingMargins yahooValue `json:"operatingMargins"`
				ReturnOnAssets   yahooValue `json:"returnOnAssets"`
				ReturnOnEquity   yahooValue `json:"returnOnEquity"`
				TotalCash        yahooValue `json:"totalCash"`
				TotalDebt        yahooValue `json:"totalDebt"`
				CurrentRatio     yahooValue `json:"currentRatio"`
				QuickRatio       yahooValue `json:"quickRatio"`
			} `json:"financialData"`
			IncomeStatementHistory struct {
				IncomeStatementHistory []struct {
					TotalRevenue    yahooValue `json:"totalRevenue"`
					GrossProfit     yahooValue `json:"grossProfit"`
					OperatingIncome yahooValue `json:"operatingIncome"`
					NetIncome       yahooValue `json:"netIncome"`
				} `json:"incomeStatementHistory"`
			} `json:"incomeStatementHistory"`
			BalanceSheetHistory struct {
				BalanceSheetStatements []struct {
					TotalAssets            yahooValue `json:"totalAssets"`
					TotalLiab              yahooValue `json:"totalLiab"`
					TotalStockholderEquity yahooValue `json:"totalStockholderEquity"`
					Cash                   yahooValue `json:"cash"`
				} `json:"balanceSheetStatements"`
			} `json:"balanceSheetHistory"`
			CashflowStatementHistory struct {
				CashflowStatements []struct {
					TotalCashFromOperatingActivities yahooValue `json:"totalCashFromOperatingActivities"`
					CapitalExpenditures              yahooValue `json:"capitalExpenditures"`
				} `json:"cashflowStatements"`
			} `json:"cashflowStatementHistory"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// yahooSearch search接口响应结构，仅取新闻部分
type yahooSearch struct {
	News []struct {
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

// get 执行GET请求并读取响应体
func (c *YahooClient) get(u string) ([]byte, error) {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	// Yahoo对无UA的请求直接拒绝
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("执行HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API返回非200状态码: %d, 响应: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// FetchChart 获取K线序列
func (c *YahooClient) FetchChart(symbol, interval, rng string) ([]model.OHLCVBar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		c.BaseURL, url.PathEscape(symbol), interval, rng)

	body, err := c.get(u)
	if err != nil {
		return nil, fmt.Errorf("获取K线数据失败: %w", err)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("解析K线响应失败: %w", err)
	}

	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("API返回错误: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("未返回任何行情数据: %s", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("响应中缺少行情字段: %s", symbol)
	}
	quote := result.Indicators.Quote[0]

	// 各序列必须与时间戳等长，长度不齐视为响应损坏
	count := len(result.Timestamp)
	if len(quote.Open) != count || len(quote.High) != count ||
		len(quote.Low) != count || len(quote.Close) != count ||
		len(quote.Volume) != count {
		return nil, fmt.Errorf("行情序列长度不一致: %s, 时间戳 %d, 开 %d, 高 %d, 低 %d, 收 %d, 量 %d",
			symbol, count, len(quote.Open), len(quote.High), len(quote.Low), len(quote.Close), len(quote.Volume))
	}

	bars := make([]model.OHLCVBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o := toFloat64(quote.Open[i])
		h := toFloat64(quote.High[i])
		l := toFloat64(quote.Low[i])
		cl := toFloat64(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue // 跳过空K线（休市日等）
		}
		bars = append(bars, model.OHLCVBar{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  cl,
			Volume: toFloat64(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// FetchLastPrice 获取最新成交价
func (c *YahooClient) FetchLastPrice(symbol string) (float64, error) {
	bars, err := c.FetchChart(symbol, "1d", "1d")
	if err != nil {
		return 0, err
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("无最新价格数据: %s", symbol)
	}
	return bars[len(bars)-1].Close, nil
}

// FetchQuoteSummary 获取个股概况与财务模块
func (c *YahooClient) FetchQuoteSummary(symbol string, modules string) (*yahooQuoteSummary, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.BaseURL, url.PathEscape(symbol), url.QueryEscape(modules))

	body, err := c.get(u)
	if err != nil {
		return nil, fmt.Errorf("获取个股概况失败: %w", err)
	}

	var summary yahooQuoteSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("解析个股概况响应失败: %w", err)
	}

	if summary.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("API返回错误: %s", summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("未返回任何概况数据: %s", symbol)
	}

	return &summary, nil
}

// FetchNewsSearch 按关键词搜索新闻
func (c *YahooClient) FetchNewsSearch(query string, limit int) ([]model.NewsItem, error) {
	u := fmt.Sprintf("%s/v1/finance/search?q=%s&newsCount=%d",
		c.BaseURL, url.QueryEscape(query), limit)

	body, err := c.get(u)
	if err != nil {
		return nil, fmt.Errorf("搜索新闻失败: %w", err)
	}

	var search yahooSearch
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, fmt.Errorf("解析新闻响应失败: %w", err)
	}

	items := make([]model.NewsItem, 0, len(search.News))
	for _, n := range search.News {
		items = append(items, model.NewsItem{
			Title:       n.Title,
			Publisher:   n.Publisher,
			Link:        n.Link,
			PublishedAt: time.Unix(n.ProviderPublishTime, 0).UTC(),
		})
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}

// toFloat64 将接口类型转换为float64
func toFloat64(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch value := v.(type) {
	case float64:
		return value
	case float32:
		return float64(value)
	case int:
		return float64(value)
	case int64:
		return float64(value)
	default:
		return 0
	}
}
