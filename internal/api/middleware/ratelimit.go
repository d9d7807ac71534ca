package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
)

const (
	msgTooManyRequests = "слишком много запросов, попробуйте позже"
	msgLimiterDown     = "сервис временно недоступен"
)

// WindowCounter счётчик запросов в фиксированном окне
type WindowCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimitRecorder учёт отклонённых запросов (метрики)
type RateLimitRecorder interface {
	RecordRateLimited(route string)
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisCounter фиксированное окно в Redis: INCR и PEXPIRE одним скриптом,
// так что счётчик общий для всех экземпляров сервиса
type RedisCounter struct {
	rdb redis.Scripter
}

func NewRedisCounter(rdb redis.Scripter) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	ms := window.Milliseconds()
	if ms <= 0 {
		ms = time.Minute.Milliseconds()
	}

	res, err := fixedWindowScript.Run(ctx, c.rdb, []string{key}, ms).Result()
	if err != nil {
		return 0, err
	}

	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

// RateLimiter ограничивает число запросов с одного адреса за окно
type RateLimiter struct {
	counter        WindowCounter
	limit          int
	window         time.Duration
	prefix         string
	failOpen       bool
	trustForwarded bool // адрес клиента из X-Forwarded-For (только за доверенным прокси)
	recorder       RateLimitRecorder
	logger         Logger
}

func NewRateLimiter(counter WindowCounter, limit int, window time.Duration, failOpen bool, logger Logger) *RateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		counter:  counter,
		limit:    limit,
		window:   window,
		prefix:   "rl:interviews",
		failOpen: failOpen,
		logger:   logger,
	}
}

// WithTrustForwardedFor включает чтение адреса клиента из X-Forwarded-For
func (rl *RateLimiter) WithTrustForwardedFor(trust bool) *RateLimiter {
	rl.trustForwarded = trust
	return rl
}

// WithRecorder включает учёт отклонённых запросов
func (rl *RateLimiter) WithRecorder(r RateLimitRecorder) *RateLimiter {
	rl.recorder = r
	return rl
}

// Middleware отвечает 429, если лимит окна исчерпан.
// При недоступном Redis пропускает запрос (failOpen) или отвечает 503.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.prefix + ":" + clientKey(r, rl.trustForwarded)

		count, err := rl.counter.Incr(r.Context(), key, rl.window)
		if err != nil {
			rl.logger.Warn("RateLimiter: counter error for %s: %v", key, err)
			if rl.failOpen {
				next.ServeHTTP(w, r)
				return
			}
			handlers.RespondError(w, http.StatusServiceUnavailable, msgLimiterDown)
			return
		}

		if count > int64(rl.limit) {
			route := routeTemplate(r)
			rl.logger.Warn("RateLimiter: limit exceeded for %s on %s (%d/%d)", key, route, count, rl.limit)
			if rl.recorder != nil {
				rl.recorder.RecordRateLimited(route)
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey адрес клиента. Без доверенного прокси заголовок задаёт сам клиент,
// поэтому учитывается только RemoteAddr. Прокси дописывает адрес в конец списка.
func clientKey(r *http.Request, trustForwarded bool) string {
	if trustForwarded {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			if ip := strings.TrimSpace(parts[len(parts)-1]); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
