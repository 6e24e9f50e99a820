package api

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"FinSight/pkg/agent"
	"FinSight/pkg/collector"
	"FinSight/pkg/indicator"
	"FinSight/pkg/model"
	"FinSight/pkg/nav"
)

// AlertForwarder 预警配置转发接口，便于测试替换
type AlertForwarder interface {
	SendAlertConfig(cfg *model.AlertConfig) error
}

// AlertStore 预警历史查询接口
type AlertStore interface {
	Recent(symbol string, limit int) ([]*model.AlertEvent, error)
	GetBySeverity(severity model.Severity, limit int) ([]*model.AlertEvent, error)
}

// Handlers API处理程序
type Handlers struct {
	router   *agent.Router
	provider collector.MarketDataProvider
	pipeline *nav.Pipeline
	notifier AlertForwarder
	alertDB  AlertStore

	// 会话按session_id隔离，仅存在于进程内存
	mu       sync.Mutex
	sessions map[string]*agent.Session
}

// NewHandlers 创建新的API处理程序
func NewHandlers(
	router *agent.Router,
	provider collector.MarketDataProvider,
	pipeline *nav.Pipeline,
	notifier AlertForwarder,
	alertDB AlertStore,
) *Handlers {
	return &Handlers{
		router:   router,
		provider: provider,
		pipeline: pipeline,
		notifier: notifier,
		alertDB:  alertDB,
		sessions: make(map[string]*agent.Session),
	}
}

// HealthCheck 健康检查处理程序
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ReadinessCheck 就绪检查处理程序
func (h *Handlers) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// ChatRequest 对话请求
type ChatRequest struct {
	Query     string `json:"query" binding:"required"`
	SessionID string `json:"session_id"`
}

// Chat 对话处理程序
func (h *Handlers) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的请求参数: " + err.Error(),
		})
		return
	}

	session := h.getSession(req.SessionID)
	envelope := h.router.Handle(session, req.Query)
	c.JSON(http.StatusOK, envelope)
}

// getSession 获取或创建会话
func (h *Handlers) getSession(sessionID string) *agent.Session {
	if sessionID == "" {
		sessionID = "default"
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	session, ok := h.sessions[sessionID]
	if !ok {
		session = agent.NewSession()
		h.sessions[sessionID] = session
	}
	return session
}

// GetPrice 价格快照处理程序
func (h *Handlers) GetPrice(c *gin.Context) {
	ticker := c.Param("ticker")
	period := c.DefaultQuery("period", "5d")

	snapshot, err := h.provider.FetchSnapshot(ticker, period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取价格快照失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": snapshot,
	})
}

// GetFinancials 财务数据处理程序
func (h *Handlers) GetFinancials(c *gin.Context) {
	ticker := c.Param("ticker")

	financials, err := h.provider.FetchFinancials(ticker)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取财务数据失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": financials,
	})
}

// GetProfile 公司概况处理程序
func (h *Handlers) GetProfile(c *gin.Context) {
	ticker := c.Param("ticker")

	profile, err := h.provider.FetchProfile(ticker)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取公司概况失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": profile,
	})
}

// GetNews 新闻处理程序
func (h *Handlers) GetNews(c *gin.Context) {
	ticker := c.Param("ticker")

	limit := 5
	if env := c.Query("limit"); env != "" {
		if parsed, err := strconv.Atoi(env); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	news, err := h.provider.FetchNews(ticker, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取新闻失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": news,
	})
}

// GetMarket 大盘摘要处理程序
func (h *Handlers) GetMarket(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": h.router.MarketData(),
	})
}

// GetIndicators 技术指标处理程序
func (h *Handlers) GetIndicators(c *gin.Context) {
	ticker := c.Param("ticker")
	period := c.DefaultQuery("period", "1y")

	snapshot, err := h.provider.FetchSnapshot(ticker, period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取历史数据失败: " + err.Error(),
		})
		return
	}
	if len(snapshot.Historical) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "历史数据为空: " + ticker,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": indicator.ComputeAll(ticker, snapshot.Historical),
	})
}

// GetNAVAnalysis 净值分析处理程序
func (h *Handlers) GetNAVAnalysis(c *gin.Context) {
	ticker := c.Param("ticker")

	threshold := 0.0
	if env := c.Query("threshold"); env != "" {
		parsed, err := strconv.ParseFloat(env, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "threshold参数必须是正数",
			})
			return
		}
		threshold = parsed
	}

	state := h.pipeline.RunWithThreshold(ticker, threshold)
	if state.Failed() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": state.ErrText,
			"stage": state.FailedStage,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": state,
	})
}

// AlertConfigRequest 预警配置请求
type AlertConfigRequest struct {
	Email          string  `json:"email" binding:"required,email"`
	Ticker         string  `json:"ticker" binding:"required"`
	ThresholdType  string  `json:"threshold_type" binding:"required"`
	ThresholdValue float64 `json:"threshold_value" binding:"required,gt=0"`
}

// SubmitAlertConfig 预警配置处理程序
// 配置整体转发给外部工作流，本地不存储
func (h *Handlers) SubmitAlertConfig(c *gin.Context) {
	var req AlertConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的请求参数: " + err.Error(),
		})
		return
	}

	cfg := &model.AlertConfig{
		Email:          req.Email,
		Ticker:         req.Ticker,
		ThresholdType:  req.ThresholdType,
		ThresholdValue: req.ThresholdValue,
		Timestamp:      time.Now().UTC(),
	}

	if err := h.notifier.SendAlertConfig(cfg); err != nil {
		log.Printf("转发预警配置失败: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "转发预警配置失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "预警配置已转发",
	})
}

// GetAlertHistory 预警历史处理程序
func (h *Handlers) GetAlertHistory(c *gin.Context) {
	if h.alertDB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "预警历史存储未启用",
		})
		return
	}

	symbol := c.Query("symbol")
	limit := 10
	if env := c.Query("limit"); env != "" {
		if parsed, err := strconv.Atoi(env); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	// 按严重程度过滤时走独立查询
	var alerts []*model.AlertEvent
	var err error
	if raw := c.Query("severity"); raw != "" {
		severity := model.Severity(strings.ToUpper(raw))
		switch severity {
		case model.SeverityLow, model.SeverityMedium, model.SeverityHigh:
		default:
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "severity参数必须是 LOW/MEDIUM/HIGH",
			})
			return
		}
		alerts, err = h.alertDB.GetBySeverity(severity, limit)
	} else {
		alerts, err = h.alertDB.Recent(symbol, limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "查询预警历史失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": alerts,
	})
}
