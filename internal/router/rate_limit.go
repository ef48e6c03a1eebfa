package router

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 从请求中提取限流维度，返回空串表示该维度缺失
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流，超限后可额外封禁 BlockSeconds 秒
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	BlockSeconds  int
	MessageKey    string
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

func (r RateLimitRule) messageKey() string {
	if key := strings.TrimSpace(r.MessageKey); key != "" {
		return key
	}
	return "error.rate_limited"
}

func (r RateLimitRule) keys(identity string) (string, string) {
	counter := identity
	if r.Prefix != "" {
		counter = r.Prefix + ":" + identity
	}
	return counter, counter + ":block"
}

// KEYS[1] 计数器 KEYS[2] 封禁标记
// ARGV[1] 窗口秒数 ARGV[2] 上限 ARGV[3] 封禁秒数
// 返回 {状态, 剩余秒数}，状态 0 放行 1 拒绝
var rateLimitScript = redis.NewScript(`
local blocked = redis.call("TTL", KEYS[2])
if blocked > 0 then
	return {1, blocked}
end
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
if current <= tonumber(ARGV[2]) then
	return {0, 0}
end
local block = tonumber(ARGV[3])
if block > 0 then
	redis.call("SET", KEYS[2], "1", "EX", block)
	redis.call("DEL", KEYS[1])
	return {1, block}
end
return {1, redis.call("TTL", KEYS[1])}
`)

// RateLimitMiddleware 基于 Redis 的限流，未启用 Redis 时直接放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !rule.enabled() {
			c.Next()
			return
		}

		identity := ""
		if keyFunc != nil {
			identity = strings.TrimSpace(keyFunc(c))
		}
		if identity == "" {
			identity = c.ClientIP()
		}
		counterKey, blockKey := rule.keys(identity)

		values, err := rateLimitScript.Run(
			c.Request.Context(), client,
			[]string{counterKey, blockKey},
			rule.WindowSeconds, rule.MaxRequests, rule.BlockSeconds,
		).Int64Slice()
		if err != nil || len(values) < 2 {
			logger.Warnw("rate_limit_eval_failed", "key", counterKey, "error", err)
			response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable"))
			c.Abort()
			return
		}
		if values[0] == 0 {
			c.Next()
			return
		}

		wait := int(values[1])
		if wait < 1 {
			wait = rule.WindowSeconds
		}
		c.Header("Retry-After", strconv.Itoa(wait))
		response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(i18n.ResolveLocale(c), rule.messageKey(), wait))
		c.Abort()
	}
}

// KeyByIP 按客户端 IP 限流
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByJSONField 按 JSON 请求体中的字符串字段限流，值统一小写
func KeyByJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		return strings.ToLower(peekJSONField(c, field))
	}
}

// KeyJoin 组合多个维度，缺失的维度跳过
func KeyJoin(funcs ...RateLimitKeyFunc) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		parts := make([]string, 0, len(funcs))
		for _, fn := range funcs {
			if fn == nil {
				continue
			}
			if part := strings.TrimSpace(fn(c)); part != "" {
				parts = append(parts, part)
			}
		}
		return strings.Join(parts, "|")
	}
}

// peekJSONField 读取字段后回填请求体，后续绑定不受影响
func peekJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	raw, ok := payload[field]
	if !ok {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
