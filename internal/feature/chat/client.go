// Package chat 转发聊天请求到 OpenAI 兼容接口，外层包一层熔断。
package chat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

var (
	ErrNotConfigured = errors.New("chat assistant is not configured")
	ErrBreakerOpen   = errors.New("chat assistant is temporarily unavailable")
)

// UpstreamError 上游返回非 2xx 或响应无法解析
type UpstreamError struct {
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("chat upstream status %d", e.Status)
	}
	return "chat upstream: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

type Config struct {
	Endpoint     string
	APIKey       string
	Model        string
	Timeout      time.Duration
	SystemPrompt string
	// RequestID 取当前请求 id 并透传给上游
	RequestID func(context.Context) string
}

type Message struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required,max=4000"`
}

type Input struct {
	Message string    `json:"message" binding:"required,min=1,max=4000"`
	History []Message `json:"history" binding:"max=20,dive"`
}

type Reply struct {
	Reply string `json:"reply"`
	Model string `json:"model"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type Client struct {
	cfg   Config
	http  *http.Client
	cb    *gobreaker.CircuitBreaker[[]byte]
	log   *zap.Logger
	state prometheus.Gauge
}

func NewClient(cfg Config, l *zap.Logger, reg prometheus.Registerer) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if l == nil {
		l = zap.NewNop()
	}
	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  l,
		state: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "chat_breaker_state",
			Help: "Chat upstream breaker state (0 closed, 1 half-open, 2 open)",
		}),
	}
	c.cb = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "chat-upstream",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// 调用方取消不计入失败
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.Warn("breaker state change", zap.String("breaker", name),
				zap.String("from", from.String()), zap.String("to", to.String()))
			c.state.Set(stateValue(to))
		},
	})
	return c
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func (c *Client) Enabled() bool { return c != nil && c.cfg.Endpoint != "" }

func (c *Client) State() gobreaker.State { return c.cb.State() }

// Ask 组装 system prompt + 历史 + 当前消息并调用上游
func (c *Client) Ask(ctx context.Context, in Input) (*Reply, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}
	msgs := make([]Message, 0, len(in.History)+2)
	if c.cfg.SystemPrompt != "" {
		msgs = append(msgs, Message{Role: "system", Content: c.cfg.SystemPrompt})
	}
	msgs = append(msgs, in.History...)
	msgs = append(msgs, Message{Role: "user", Content: strings.TrimSpace(in.Message)})

	body, err := json.Marshal(completionRequest{Model: c.cfg.Model, Messages: msgs})
	if err != nil {
		return nil, err
	}
	raw, err := c.cb.Execute(func() ([]byte, error) { return c.post(ctx, body) })
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrBreakerOpen
		}
		return nil, err
	}

	var out completionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &UpstreamError{Err: err}
	}
	if len(out.Choices) == 0 {
		return nil, &UpstreamError{Err: errors.New("empty choices")}
	}
	model := out.Model
	if model == "" {
		model = c.cfg.Model
	}
	return &Reply{Reply: out.Choices[0].Message.Content, Model: model}, nil
}

func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.RequestID != nil {
		if rid := c.cfg.RequestID(ctx); rid != "" {
			req.Header.Set("X-Request-ID", rid)
		}
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}
	res, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &UpstreamError{Err: err}
	}
	defer res.Body.Close()
	b, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	if res.StatusCode/100 != 2 {
		return nil, &UpstreamError{Status: res.StatusCode}
	}
	return b, nil
}
