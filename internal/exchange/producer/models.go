package producer

import (
	"time"

	"github.com/google/uuid"

	"github.com/srimathim2003/Employee-Management/internal/dto"
)

const (
	KindCreated = "employee.created"
	KindUpdated = "employee.updated"
	KindDeleted = "employee.deleted"
)

// DeletedPayload: событие об удалении сотрудника
type DeletedPayload struct {
	ID int64 `json:"id" example:"1"` // Идентификатор удалённого сотрудника
}

// EmployeePayload: снимок сотрудника после записи
type EmployeePayload = dto.EmployeeView

type Envelope[T any] struct {
	Kind       string    `json:"kind"        example:"employee.created"`                     // Тип события
	MessageID  uuid.UUID `json:"message_id"  example:"c7e06db5-4b71-4c54-9334-3f9a6e6c5d0e"` // Идентификатор события (UUID v4)
	EmployeeID int64     `json:"employee_id" example:"1"`                                    // Идентификатор сотрудника
	Payload    T         `json:"payload"`                                                    // Полезная нагрузка (структура зависит от kind)
	Timestamp  time.Time `json:"timestamp"   example:"2025-10-19T12:34:56Z"`                 // Время формирования события
	Source     string    `json:"source"      example:"ems-backend"`                          // Сервис-источник
}
