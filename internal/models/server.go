package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServerRecord is a persisted Minecraft server: its owner, its chosen name
// and host port, and the JDK-bearing image it was provisioned with.
type ServerRecord struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	Owner     string    `gorm:"size:36;not null;index" json:"owner"`
	Name      string    `gorm:"size:512;not null" json:"name"`
	Port      int       `gorm:"uniqueIndex;not null" json:"port"`
	Image     string    `gorm:"size:128;not null" json:"image"`
}

// BeforeCreate generates the record's id.
func (s *ServerRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// ContainerName returns the derived, never-stored Docker container name for
// this record.
func (s *ServerRecord) ContainerName() string {
	return "waitress-" + s.ID
}

const (
	// MinPort and MaxPort bound the host TCP port a ServerRecord may bind.
	MinPort = 1024
	MaxPort = 65535

	// MaxNameRunes bounds ServerRecord.Name length.
	MaxNameRunes = 128
)

// Custom errors
var (
	ErrInvalidName      = fmt.Errorf("name must be 1..%d unicode characters", MaxNameRunes)
	ErrInvalidPort      = fmt.Errorf("port must be between %d and %d", MinPort, MaxPort)
	ErrPortAlreadyInUse = fmt.Errorf("port is already allocated to another server")
	ErrServerNotFound   = fmt.Errorf("server not found")
)
