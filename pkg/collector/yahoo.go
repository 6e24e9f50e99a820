package collector

import (
	"fmt"
	"time"

	"FinSight/pkg/model"
)

// YahooAdapter Yahoo数据源适配器
type YahooAdapter struct {
	client *YahooClient
}

// NewYahooAdapter 创建Yahoo适配器
func NewYahooAdapter(baseURL string, timeout time.Duration) *YahooAdapter {
	return &YahooAdapter{
		client: NewYahooClient(baseURL, timeout),
	}
}

// periodToRange 将请求周期映射为chart接口的range参数
func periodToRange(period string) string {
	switch period {
	case "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "max":
		return period
	case "":
		return "1y"
	default:
		return "1y"
	}
}

// FastQuote 快速报价，用于代码校验
func (y *YahooAdapter) FastQuote(ticker string) (float64, error) {
	if ticker == "" {
		return 0, fmt.Errorf("股票代码不能为空")
	}
	return y.client.FetchLastPrice(ticker)
}

// FetchSnapshot 获取价格快照及历史序列
func (y *YahooAdapter) FetchSnapshot(ticker string, period string) (*model.PriceSnapshot, error) {
	if ticker == "" {
		return nil, fmt.Errorf("股票代码不能为空")
	}

	bars, err := y.client.FetchChart(ticker, "1d", periodToRange(period))
	if err != nil {
		return nil, fmt.Errorf("获取历史行情失败: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("无行情数据: %s", ticker)
	}

	snapshot := &model.PriceSnapshot{
		Ticker:     ticker,
		Historical: bars,
	}

	// 最近两个收盘价推导涨跌
	last := bars[len(bars)-1]
	snapshot.CurrentPrice = last.Close
	snapshot.PreviousPrice = last.Close
	if len(bars) > 1 {
		snapshot.PreviousPrice = bars[len(bars)-2].Close
	}
	if snapshot.PreviousPrice != 0 {
		snapshot.ChangeAmount = snapshot.CurrentPrice - snapshot.PreviousPrice
		snapshot.ChangePct = snapshot.ChangeAmount / snapshot.PreviousPrice * 100
	}

	// 成交量与52周区间从序列汇总
	snapshot.Volume = last.Volume
	var volumeSum float64
	high, low := bars[0].High, bars[0].Low
	for _, bar := range bars {
		volumeSum += bar.Volume
		if bar.High > high {
			high = bar.High
		}
		if bar.Low < low && bar.Low > 0 {
			low = bar.Low
		}
	}
	snapshot.AvgVolume = volumeSum / float64(len(bars))
	snapshot.High52w = high
	snapshot.Low52w = low

	return snapshot, nil
}

// FetchFinancials 获取关键比率与三大报表摘要
func (y *YahooAdapter) FetchFinancials(ticker string) (*model.CompanyFinancials, error) {
	modules := "summaryDetail,defaultKeyStatistics,financialData," +
		"incomeStatementHistory,balanceSheetHistory,cashflowStatementHistory"
	summary, err := y.client.FetchQuoteSummary(ticker, modules)
	if err != nil {
		return nil, fmt.Errorf("获取财务数据失败: %w", err)
	}

	result := summary.QuoteSummary.Result[0]
	financials := &model.CompanyFinancials{
		Ticker: ticker,
		Ratios: model.KeyRatios{
			Valuation: model.ValuationRatios{
				PERatio:     result.SummaryDetail.TrailingPE.Raw,
				ForwardPE:   result.DefaultKeyStatistics.ForwardPE.Raw,
				PEGRatio:    result.DefaultKeyStatistics.PegRatio.Raw,
				PriceToBook: result.DefaultKeyStatistics.PriceToBook.Raw,
			},
			Profitability: model.ProfitabilityRatios{
				ProfitMargin:    result.FinancialData.ProfitMargins.Raw,
				OperatingMargin: result.FinancialData.OperatingMargins.Raw,
				ROA:             result.FinancialData.ReturnOnAssets.Raw,
				ROE:             result.FinancialData.ReturnOnEquity.Raw,
			},
			FinancialHealth: model.FinancialHealthRatios{
				TotalCash:    result.FinancialData.TotalCash.Raw,
				TotalDebt:    result.FinancialData.TotalDebt.Raw,
				CurrentRatio: result.FinancialData.CurrentRatio.Raw,
				QuickRatio:   result.FinancialData.QuickRatio.Raw,
			},
		},
		Statements: model.FinancialStatements{
			IncomeStatement: make(map[string]float64),
			BalanceSheet:    make(map[string]float64),
			CashFlow:        make(map[string]float64),
		},
	}

	// 各报表取最近一期
	if len(result.IncomeStatementHistory.IncomeStatementHistory) > 0 {
		income := result.IncomeStatementHistory.IncomeStatementHistory[0]
		financials.Statements.IncomeStatement["total_revenue"] = income.TotalRevenue.Raw
		financials.Statements.IncomeStatement["gross_profit"] = income.GrossProfit.Raw
		financials.Statements.IncomeStatement["operating_income"] = income.OperatingIncome.Raw
		financials.Statements.IncomeStatement["net_income"] = income.NetIncome.Raw
	}
	if len(result.BalanceSheetHistory.BalanceSheetStatements) > 0 {
		balance := result.BalanceSheetHistory.BalanceSheetStatements[0]
		financials.Statements.BalanceSheet["total_assets"] = balance.TotalAssets.Raw
		financials.Statements.BalanceSheet["total_liabilities"] = balance.TotalLiab.Raw
		financials.Statements.BalanceSheet["stockholder_equity"] = balance.TotalStockholderEquity.Raw
		financials.Statements.BalanceSheet["cash"] = balance.Cash.Raw
	}
	if len(result.CashflowStatementHistory.CashflowStatements) > 0 {
		cashflow := result.CashflowStatementHistory.CashflowStatements[0]
		financials.Statements.CashFlow["operating_cash_flow"] = cashflow.TotalCashFromOperatingActivities.Raw
		financials.Statements.CashFlow["capital_expenditures"] = cashflow.CapitalExpenditures.Raw
	}

	return financials, nil
}

// FetchProfile 获取公司概况
func (y *YahooAdapter) FetchProfile(ticker string) (*model.CompanyProfile, error) {
	summary, err := y.client.FetchQuoteSummary(ticker, "price,summaryProfile")
	if err != nil {
		return nil, fmt.Errorf("获取公司概况失败: %w", err)
	}

	result := summary.QuoteSummary.Result[0]
	name := result.Price.LongName
	if name == "" {
		name = result.Price.ShortName
	}

	return &model.CompanyProfile{
		Ticker:    ticker,
		Name:      name,
		Sector:    result.SummaryProfile.Sector,
		Industry:  result.SummaryProfile.Industry,
		Summary:   result.SummaryProfile.LongBusinessSummary,
		MarketCap: result.Price.MarketCap.Raw,
	}, nil
}

// FetchNews 获取新闻列表
func (y *YahooAdapter) FetchNews(ticker string, limit int) ([]model.NewsItem, error) {
	if limit <= 0 {
		limit = 5
	}
	return y.client.FetchNewsSearch(ticker, limit)
}

// FetchIndex 获取指数行情
func (y *YahooAdapter) FetchIndex(symbol string) (*model.IndexQuote, error) {
	bars, err := y.client.FetchChart(symbol, "1d", "5d")
	if err != nil {
		return nil, fmt.Errorf("获取指数行情失败: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("无指数数据: %s", symbol)
	}

	quote := &model.IndexQuote{
		Symbol: symbol,
		Price:  bars[len(bars)-1].Close,
	}
	if len(bars) > 1 {
		prev := bars[len(bars)-2].Close
		if prev != 0 {
			quote.ChangePct = (quote.Price - prev) / prev * 100
		}
	}
	return quote, nil
}
