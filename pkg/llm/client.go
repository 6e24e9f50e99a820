package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// systemPrompt 面向初级投资者的系统提示词，偏向印度市场语境
const systemPrompt = `You are a financial research assistant helping beginner investors,
with a strong focus on the Indian equity markets (NSE / BSE).

Guidelines:
- Be clear, simple, and educational.
- When the user asks about specific stocks and you are given data
  (prices, PE, ROE, margins, etc.), explain them in plain English.
- NEVER give direct 'buy/sell' calls. Instead, explain pros/cons and
  what a long-term investor should think about.
- Assume prices may be slightly delayed; include a gentle disclaimer
  when talking about current prices.
- Keep answers reasonably concise: 3-6 short paragraphs or bullets.
- If something is uncertain, say so openly instead of guessing.`

// Client 大模型客户端，兼容OpenAI聊天接口
type Client struct {
	apiURL    string
	apiKey    string
	modelName string
	client    *http.Client
}

// Message 表示对话中的一条消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest 表示聊天请求
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// ChatResponse 表示聊天响应
type ChatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewClient 创建新的大模型客户端
func NewClient(apiURL, apiKey, modelName string, timeout time.Duration) *Client {
	return &Client{
		apiURL:    apiURL,
		apiKey:    apiKey,
		modelName: modelName,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Chat 发送聊天请求并获取响应
func (c *Client) Chat(messages []Message) (string, error) {
	// 构建请求
	reqBody := ChatRequest{
		Model:    c.modelName,
		Messages: messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("序列化请求失败: %w", err)
	}

	// 创建HTTP请求
	req, err := http.NewRequest("POST", c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("创建HTTP请求失败: %w", err)
	}

	// 设置请求头
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	// 发送请求
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("发送请求失败: %w", err)
	}
	defer resp.Body.Close()

	// 读取响应
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取响应失败: %w", err)
	}

	// 检查状态码
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API返回错误: %s", string(body))
	}

	// 解析响应
	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("解析响应失败: %w", err)
	}

	// 检查是否有响应内容
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("API返回空响应")
	}

	// 返回响应内容
	return chatResp.Choices[0].Message.Content, nil
}

// SummarizeComparison 生成多股对比的白话解读
func (c *Client) SummarizeComparison(data interface{}) (string, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("序列化对比数据失败: %w", err)
	}

	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("Explain comparison in beginner terms:\n\n%s", string(encoded))},
	}

	return c.Chat(messages)
}

// AnswerFinanceQuery 回答开放性财经问题
func (c *Client) AnswerFinanceQuery(query string) (string, error) {
	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: query},
	}

	return c.Chat(messages)
}
