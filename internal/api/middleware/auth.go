package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

const (
	// HeaderCompanyID ID компании (тенанта), выставляется API gateway
	HeaderCompanyID = "X-Company-ID"
	// HeaderUserID ID пользователя, выставляется API gateway
	HeaderUserID = "X-User-ID"

	msgMissingCompanyID = "отсутствует или некорректен заголовок X-Company-ID"
	msgMissingUserID    = "отсутствует или некорректен заголовок X-User-ID"
)

type contextKey int

const (
	companyIDKey contextKey = iota
	userIDKey
)

// Auth извлекает компанию и пользователя из заголовков и кладет их в контекст.
// Аутентификация выполняется на gateway, сервис доверяет заголовкам.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		companyID, err := uuid.Parse(strings.TrimSpace(r.Header.Get(HeaderCompanyID)))
		if err != nil || companyID == uuid.Nil {
			handlers.RespondUnauthorized(w, msgMissingCompanyID)
			return
		}

		userID, err := uuid.Parse(strings.TrimSpace(r.Header.Get(HeaderUserID)))
		if err != nil || userID == uuid.Nil {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := WithIdentity(r.Context(), companyID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithIdentity кладет компанию и пользователя в контекст
func WithIdentity(ctx context.Context, companyID, userID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, companyIDKey, companyID)
	return context.WithValue(ctx, userIDKey, userID)
}

// GetCompanyID возвращает ID компании из контекста
func GetCompanyID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(companyIDKey).(uuid.UUID)
	return id, ok
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}
