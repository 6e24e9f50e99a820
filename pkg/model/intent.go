package model

// Intent 查询意图枚举
// 每条查询有且仅有一个意图，由分类器从固定集合中选出
type Intent string

const (
	IntentPrice      Intent = "price"
	IntentFinancials Intent = "financials"
	IntentCompare    Intent = "compare"
	IntentMarket     Intent = "market"
	IntentNews       Intent = "news"
	IntentGeneral    Intent = "general"
	IntentOutOfScope Intent = "out_of_scope"
	IntentError      Intent = "error"
)
