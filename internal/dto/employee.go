package dto

import (
	"time"
)

// Employee: запись сотрудника в хранилище.
type Employee struct {
	ID            int64
	FirstName     *string
	LastName      *string
	Email         string
	Phone         *string
	Department    *string
	Position      *string
	DateOfJoining *time.Time
	Salary        *float64
}

// EmployeeView: представление сотрудника на границе API.
type EmployeeView struct {
	ID            *int64   `json:"id,omitempty" example:"1"`                                // Идентификатор, назначается сервером
	FirstName     *string  `json:"firstname" example:"Ann"`                                 // Имя
	LastName      *string  `json:"lastname" example:"Lee"`                                  // Фамилия
	Email         string   `json:"email" example:"ann@x.com"`                               // Почта, уникальна
	Phone         *string  `json:"phone" example:"+1 555 0100"`                             // Телефон
	Department    *string  `json:"department" example:"Engineering"`                        // Отдел
	Position      *string  `json:"position" example:"Developer"`                            // Должность
	DateOfJoining *Date    `json:"dateOfJoining" swaggertype:"string" example:"2024-01-15"` // Дата приёма (YYYY-MM-DD)
	Salary        *float64 `json:"salary" example:"50000"`                                  // Оклад
}
