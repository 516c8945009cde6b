package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// PathUUID извлекает UUID из переменной пути
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

// QueryDate разбирает дату YYYY-MM-DD из query параметра
func QueryDate(r *http.Request, name string) (time.Time, error) {
	return time.Parse(domain.DateFormat, r.URL.Query().Get(name))
}

// QueryBool разбирает необязательный булев query параметр, по умолчанию false
func QueryBool(r *http.Request, name string) (bool, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return false, nil
	}
	return strconv.ParseBool(value)
}
