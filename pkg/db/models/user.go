package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/vendora-backend/pkg/enums"
)

// User is the authenticated principal. Credential storage lives with the
// identity service; this table only anchors foreign keys and roles.
type User struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string         `gorm:"column:email;not null;uniqueIndex"`
	Role      enums.UserRole `gorm:"column:role;type:user_role;not null;default:'buyer'"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
