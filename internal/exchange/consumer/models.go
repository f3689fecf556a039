package consumer

import (
	"time"

	"github.com/google/uuid"

	"github.com/srimathim2003/Employee-Management/internal/dto"
)

const kindImport = "employee.import"

// ImportPayload: сотрудник для импорта, id игнорируется
type ImportPayload = dto.EmployeeView

type Envelope[T any] struct {
	Kind      string    `json:"kind"`
	MessageID uuid.UUID `json:"message_id"`
	Payload   T         `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}
