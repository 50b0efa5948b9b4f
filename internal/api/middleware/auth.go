package middleware

import (
	"context"
	"net/http"
	"strconv"
)

// HeaderUserID заголовок, через который API Gateway передает ID пользователя
const HeaderUserID = "X-User-ID"

type userIDCtxKey struct{}

// Auth извлекает ID пользователя из заголовка X-User-ID и кладет его в контекст запроса.
// Запросы без заголовка пропускаются дальше — обязательность проверяет сам handler.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := r.Header.Get(HeaderUserID); raw != "" {
			if userID, err := strconv.ParseInt(raw, 10, 64); err == nil && userID > 0 {
				r = r.WithContext(context.WithValue(r.Context(), userIDCtxKey{}, userID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDCtxKey{}).(int64)
	return userID, ok
}
