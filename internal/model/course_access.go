package model

import (
	"time"

	"github.com/google/uuid"
)

// CourseAccess represents access to a course granted by an approved payment
type CourseAccess struct {
	ID            uuid.UUID `json:"_id"`
	PaymentID     uuid.UUID `json:"paymentId"`
	UserID        string    `json:"userId"` // email или телефон плательщика
	CourseID      string    `json:"courseId"`
	AccessGranted bool      `json:"accessGranted"`
	AccessDate    time.Time `json:"accessDate"`
}

// NewCourseAccess строит запись доступа из одобренной оплаты
func NewCourseAccess(p *Payment, now time.Time) *CourseAccess {
	return &CourseAccess{
		ID:            uuid.New(),
		PaymentID:     p.ID,
		UserID:        p.Subject(),
		CourseID:      p.CourseID,
		AccessGranted: true,
		AccessDate:    now,
	}
}
