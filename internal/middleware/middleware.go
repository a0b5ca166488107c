package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
	"todo/internal/logger"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type contextKey string

const RequestIdKey contextKey = "request_id"

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get("X-Request-ID")
		if requestId == "" {
			requestId = uuid.New().String()
		}

		w.Header().Set("X-Request-ID", requestId)

		ctx := context.WithValue(r.Context(), RequestIdKey, requestId)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIdKey).(string); ok {
		return id
	}
	return ""
}

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := GetRequestID(r.Context())

		logger.Info(
			"HTTP_IN: Начало запроса",
			zap.String("request_id", requestId),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.String("client_ip", r.RemoteAddr),
		)

		m := httpsnoop.CaptureMetrics(next, w, r)

		logLevel := zap.InfoLevel
		if m.Code >= 400 && m.Code < 500 {
			logLevel = zap.WarnLevel
		} else if m.Code >= 500 {
			logLevel = zap.ErrorLevel
		}
		logger.Log(
			logLevel,
			"HTTP_OUT: Завершение запроса",
			zap.String("request_id", requestId),
			zap.Int("status", m.Code),
			zap.Int64("bytes_written", m.Written),
			zap.Duration("ms", m.Duration),
		)
	})
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit ограничивает запросы с одного IP: rps в секунду с запасом burst.
// Клиенты, не приходившие дольше ttl, забываются.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	const ttl = 10 * time.Minute

	visitors := make(map[string]*visitor)
	var mtx sync.Mutex
	lastSweep := time.Now()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getIp(r)
			now := time.Now()

			mtx.Lock()
			if now.Sub(lastSweep) > ttl {
				for key, v := range visitors {
					if now.Sub(v.lastSeen) > ttl {
						delete(visitors, key)
					}
				}
				lastSweep = now
			}

			v, exists := visitors[ip]
			if !exists {
				v = &visitor{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
				visitors[ip] = v
			}
			v.lastSeen = now
			reservation := v.limiter.ReserveN(now, 1)
			mtx.Unlock()

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(burst))

			if delay := reservation.DelayFrom(now); delay > 0 {
				reservation.CancelAt(now)

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(int(delay.Seconds())+1))
				w.WriteHeader(http.StatusTooManyRequests)

				json.NewEncoder(w).Encode(map[string]any{
					"error":       "rate_limit_exceeded",
					"message":     "Слишком много запросов. Попробуйте позже.",
					"retry_after": int(delay.Seconds()) + 1,
					"request_id":  GetRequestID(r.Context()),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func getIp(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
