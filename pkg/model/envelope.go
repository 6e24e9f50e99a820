package model

// EnvelopeType 响应类别
type EnvelopeType string

const (
	EnvelopeTool  EnvelopeType = "tool"
	EnvelopeLLM   EnvelopeType = "llm"
	EnvelopeError EnvelopeType = "error"
)

// Envelope 路由器返回给展示层的统一响应结构
// 所有端点共用同一个构造入口，禁止各处手工拼装
type Envelope struct {
	Type     EnvelopeType `json:"type"`
	Intent   Intent       `json:"intent"`
	Ticker   string       `json:"ticker,omitempty"`
	Tickers  []string     `json:"tickers,omitempty"`
	Data     interface{}  `json:"data,omitempty"`
	Summary  string       `json:"summary,omitempty"`
	Response string       `json:"response,omitempty"`
	Message  string       `json:"message,omitempty"`
	Steps    []string     `json:"steps"`
}

// NewToolEnvelope 构造数据类响应
func NewToolEnvelope(intent Intent, data interface{}, steps []string) *Envelope {
	return &Envelope{
		Type:   EnvelopeTool,
		Intent: intent,
		Data:   data,
		Steps:  steps,
	}
}

// NewLLMEnvelope 构造模型生成类响应
func NewLLMEnvelope(intent Intent, response string, steps []string) *Envelope {
	return &Envelope{
		Type:     EnvelopeLLM,
		Intent:   intent,
		Response: response,
		Steps:    steps,
	}
}

// NewErrorEnvelope 构造错误响应
func NewErrorEnvelope(message string, steps []string) *Envelope {
	return &Envelope{
		Type:    EnvelopeError,
		Intent:  IntentError,
		Message: message,
		Steps:   steps,
	}
}
