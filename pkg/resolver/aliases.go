package resolver

// IndiaTickerMap 常见公司简称到交易所代码的静态映射，偏向印度市场
// 进程启动后只读；命中即采信，不再做外部校验
var IndiaTickerMap = map[string]string{
	// 大型银行
	"SBI": "SBIN.NS", "SBIN": "SBIN.NS",
	"HDFC": "HDFCBANK.NS", "HDFCBANK": "HDFCBANK.NS",
	"ICICI": "ICICIBANK.NS", "ICICIBANK": "ICICIBANK.NS",
	"AXIS": "AXISBANK.NS", "AXISBANK": "AXISBANK.NS",
	"KOTAK": "KOTAKBANK.NS", "KOTAKBANK": "KOTAKBANK.NS",

	// 头部IT
	"INFY": "INFY.NS", "INFOSYS": "INFY.NS",
	"TCS":   "TCS.NS",
	"WIPRO": "WIPRO.NS",
	"HCL":   "HCLTECH.NS", "HCLTECH": "HCLTECH.NS",
	"TECHM": "TECHM.NS",

	// 综合集团 / 权重股
	"RELIANCE":   "RELIANCE.NS",
	"LT":         "LT.NS",
	"ADANIPORTS": "ADANIPORTS.NS",
	"TITAN":      "TITAN.NS",

	// 汽车
	"MARUTI":     "MARUTI.NS",
	"TATAMOTORS": "TATAMOTORS.NS",
	"TVS":        "TVSMOTOR.NS",
	"BAJAJ":      "BAJAJ-AUTO.NS", "BAJAJAUTO": "BAJAJ-AUTO.NS",

	// 快消 / 消费
	"ITC": "ITC.NS",
	"HUL": "HINDUNILVR.NS",
	"NESTLE":      "NESTLEIND.NS",
	"ASIANPAINTS": "ASIANPAINT.NS", "ASIANPAINT": "ASIANPAINT.NS",
	"DMART":       "DMART.NS",

	// 医药
	"SUNPHARMA": "SUNPHARMA.NS",
	"CIPLA":     "CIPLA.NS",
	"LUPIN":     "LUPIN.NS",
	"DRREDDY":   "DRREDDY.NS", "REDDY": "DRREDDY.NS",

	// 金属 / 大宗
	"TATASTEEL": "TATASTEEL.NS",
	"JSW":       "JSWSTEEL.NS", "JSWSTEEL": "JSWSTEEL.NS",
	"HINDALCO":  "HINDALCO.NS",

	// 能源 / 油气
	"ONGC":      "ONGC.NS",
	"POWERGRID": "POWERGRID.NS",
	"NTPC":      "NTPC.NS",

	// 电信
	"JIO":    "RELIANCE.NS", // Jio隶属于Reliance
	"AIRTEL": "BHARTIARTL.NS", "BHARTI": "BHARTIARTL.NS",

	// 非银金融
	"BAJAJFIN": "BAJFINANCE.NS", "BAJFINANCE": "BAJFINANCE.NS",
	"BAJAJFINSERV": "BAJAJFINSV.NS",

	// 其他热门
	"ZOMATO":   "ZOMATO.NS",
	"NYKAA":    "NYKAA.NS",
	"PAYTM":    "PAYTM.NS",
	"MCDOWELL": "MCDOWELL-N.NS",
	"IRCTC":    "IRCTC.NS",
}

// StopWords 需要从候选代码中剔除的常见英文词与口水词
var StopWords = map[string]struct{}{
	"WHAT": {}, "THE": {}, "IS": {}, "A": {}, "AN": {}, "OF": {}, "TO": {},
	"IN": {}, "FOR": {}, "PRICE": {}, "HOW": {}, "ARE": {}, "YOU": {},
	"STOCK": {}, "STOCKS": {}, "TELL": {}, "ME": {}, "TODAY": {},
	"CHECK": {}, "SHOW": {}, "MARKET": {}, "UPDATES": {}, "NEWS": {},
	"LONG": {}, "BEST": {}, "TERM": {}, "INDIA": {}, "SHORT": {},
	"BETWEEN": {}, "VS": {}, "VERSUS": {}, "AND": {}, "ON": {},
	"ABOUT": {}, "WITH": {}, "WHICH": {}, "BETTER": {}, "GOOD": {},
	"GIVE": {}, "COMPARE": {}, "CAN": {}, "PLEASE": {}, "MY": {},
	"ADVISE": {}, "SUGGEST": {}, "LOOKING": {}, "AT": {}, "FORWARD": {},
	"INVESTMENT": {}, "INVEST": {}, "TRADING": {}, "I": {}, "WANT": {},
	"KNOW": {}, "CURRENT": {}, "VALUE": {},
}
