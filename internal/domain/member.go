package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Member statuses (closed set, enforced at the service layer).
const (
	MemberActive    = "ACTIVE"
	MemberExited    = "EXITED"
	MemberSuspended = "SUSPENDED"
)

// Member is a cooperative participant. Every ledger record references a member;
// the member owns none of them.
type Member struct {
	MemberID     uuid.UUID      `gorm:"column:member_id;type:uuid;primaryKey" json:"member_id"`
	FirstName    string         `gorm:"column:first_name;type:varchar(255);not null" json:"first_name"`
	LastName     string         `gorm:"column:last_name;type:varchar(255);not null" json:"last_name"`
	Email        string         `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone        string         `gorm:"column:phone;type:varchar(32)" json:"phone"`
	PasswordHash string         `gorm:"column:password_hash;type:varchar(255)" json:"-"`
	Status       string         `gorm:"column:status;type:varchar(16);not null;default:ACTIVE" json:"status"`
	JoinDate     time.Time      `gorm:"column:join_date;type:date;not null" json:"join_date"`
	Roles        datatypes.JSON `gorm:"column:roles;not null" json:"roles"`
	CreatedAt    time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.MemberID == uuid.Nil {
		m.MemberID = uuid.New()
	}
	return nil
}

// RoleList decodes the stored roles set. A corrupt column yields an empty list,
// which fails every capability check rather than granting access.
func (m *Member) RoleList() []string {
	var roles []string
	if err := json.Unmarshal(m.Roles, &roles); err != nil {
		return nil
	}
	return roles
}

// HasRole reports whether the member carries the given role.
func (m *Member) HasRole(role string) bool {
	for _, r := range m.RoleList() {
		if r == role {
			return true
		}
	}
	return false
}

// SetRoles encodes the roles set into the JSON column.
func (m *Member) SetRoles(roles []string) error {
	b, err := json.Marshal(roles)
	if err != nil {
		return err
	}
	m.Roles = datatypes.JSON(b)
	return nil
}

// Fullname joins first and last name for session display.
func (m *Member) Fullname() string {
	return m.FirstName + " " + m.LastName
}
