package domain

import (
	"time"

	"github.com/google/uuid"
)

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient user-visible message.
type Notice struct {
	ID      uuid.UUID
	Level   NoticeLevel
	Message string
	At      time.Time
}

func NewNotice(level NoticeLevel, message string) Notice {
	return Notice{
		ID:      uuid.New(),
		Level:   level,
		Message: message,
		At:      time.Now(),
	}
}
