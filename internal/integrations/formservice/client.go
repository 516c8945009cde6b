package formservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с FormService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента FormService.
// Транспорт обёрнут otelhttp, чтобы trace context уходил в заголовках запроса.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// GetForm получает определение формы компании
func (c *Client) GetForm(ctx context.Context, companyID, formID uuid.UUID) (*domain.Form, error) {
	url := fmt.Sprintf("%s/internal/companies/%s/forms/%s", c.baseURL, companyID, formID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid form ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: form %s", ErrFormNotFound, formID)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var form Form
	if err := json.NewDecoder(resp.Body).Decode(&form); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return form.ToDomain(), nil
}

// GetForms получает набор форм. Формы, удалённые в FormService, пропускаются:
// их обязательные поля больше нечем проверять.
func (c *Client) GetForms(ctx context.Context, companyID uuid.UUID, formIDs []uuid.UUID) ([]*domain.Form, error) {
	forms := make([]*domain.Form, 0, len(formIDs))
	for _, formID := range formIDs {
		form, err := c.GetForm(ctx, companyID, formID)
		if errors.Is(err, ErrFormNotFound) {
			c.log.Warn("Form %s of company %s not found in FormService, skipping", formID, companyID)
			continue
		}
		if err != nil {
			c.log.Error("Failed to fetch form %s for company %s: %v", formID, companyID, err)
			return nil, err
		}
		forms = append(forms, form)
	}

	c.log.Info("Fetched %d/%d forms for company %s", len(forms), len(formIDs), companyID)
	return forms, nil
}
