package agent

import (
	"strings"
)

// confirmationWords 单轮追认词
var confirmationWords = map[string]struct{}{
	"yes":  {},
	"ok":   {},
	"okay": {},
	"sure": {},
	"yeah": {},
}

// Session 会话上下文
// 只保留上一条财经查询，用于"yes"/"ok"式的单轮追认；
// 每条非域外查询都会覆盖该值，不存在跨会话共享状态
type Session struct {
	LastQuery string
}

// NewSession 创建会话上下文
func NewSession() *Session {
	return &Session{}
}

// isConfirmation 判断输入是否为裸追认词
func isConfirmation(query string) bool {
	normalized := strings.ToLower(strings.TrimSpace(query))
	normalized = strings.TrimRight(normalized, ".!")
	_, ok := confirmationWords[normalized]
	return ok
}
