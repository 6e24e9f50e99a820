package model

// ValuationRatios 估值指标
type ValuationRatios struct {
	PERatio     float64 `json:"pe_ratio"`
	ForwardPE   float64 `json:"forward_pe"`
	PEGRatio    float64 `json:"peg_ratio"`
	PriceToBook float64 `json:"price_to_book"`
}

// ProfitabilityRatios 盈利能力指标
type ProfitabilityRatios struct {
	ProfitMargin    float64 `json:"profit_margin"`
	OperatingMargin float64 `json:"operating_margin"`
	ROA             float64 `json:"roa"`
	ROE             float64 `json:"roe"`
}

// FinancialHealthRatios 财务健康指标
type FinancialHealthRatios struct {
	TotalCash    float64 `json:"total_cash"`
	TotalDebt    float64 `json:"total_debt"`
	CurrentRatio float64 `json:"current_ratio"`
	QuickRatio   float64 `json:"quick_ratio"`
}

// KeyRatios 关键比率汇总
type KeyRatios struct {
	Valuation       ValuationRatios       `json:"valuation"`
	Profitability   ProfitabilityRatios   `json:"profitability"`
	FinancialHealth FinancialHealthRatios `json:"financial_health"`
}

// FinancialStatements 三大报表摘要，按科目名到金额的映射组织
type FinancialStatements struct {
	IncomeStatement map[string]float64 `json:"income_statement"`
	BalanceSheet    map[string]float64 `json:"balance_sheet"`
	CashFlow        map[string]float64 `json:"cash_flow"`
}

// CompanyFinancials 个股财务数据
type CompanyFinancials struct {
	Ticker     string              `json:"ticker"`
	Ratios     KeyRatios           `json:"key_ratios"`
	Statements FinancialStatements `json:"financial_statements"`
}

// CompanyProfile 公司概况
type CompanyProfile struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name"`
	Sector    string  `json:"sector"`
	Industry  string  `json:"industry"`
	Summary   string  `json:"summary"`
	MarketCap float64 `json:"market_cap"`
}
