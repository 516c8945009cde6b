package formservice

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Field модель поля формы из FormService
type Field struct {
	ID         uuid.UUID `json:"id"`
	Label      string    `json:"label"`
	FieldType  string    `json:"field_type"`
	Required   bool      `json:"required"`
	Options    []string  `json:"options,omitempty"`
	OrderIndex int       `json:"order_index"`
}

// Form модель формы из FormService
type Form struct {
	ID           uuid.UUID `json:"id"`
	CompanyID    uuid.UUID `json:"company_id"`
	Name         string    `json:"name"`
	FormRequired bool      `json:"form_required"`
	Fields       []Field   `json:"fields"`
}

// ToDomain конвертирует ответ сервиса в доменную модель (поля по order_index)
func (f *Form) ToDomain() *domain.Form {
	fields := make([]domain.FormField, 0, len(f.Fields))
	for _, field := range f.Fields {
		fields = append(fields, domain.FormField{
			ID:         field.ID,
			Label:      field.Label,
			Type:       domain.FieldType(field.FieldType),
			Required:   field.Required,
			Options:    field.Options,
			OrderIndex: field.OrderIndex,
		})
	}

	form := &domain.Form{
		ID:           f.ID,
		Name:         f.Name,
		FormRequired: f.FormRequired,
		Fields:       fields,
	}
	form.SortFields()
	return form
}

// ErrorResponse модель ошибки от FormService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
