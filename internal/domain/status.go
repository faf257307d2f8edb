package domain

import (
	"time"

	"github.com/google/uuid"
)

type StatusCheck struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}
