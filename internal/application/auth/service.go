package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"prosper-backend/internal/domain"
)

// LoginInput for login request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionMemberShape is the object stored in session and returned by /me.
type SessionMemberShape struct {
	MemberID string   `json:"member_id"`
	Fullname string   `json:"fullname"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// MemberFinder abstracts member lookup by email+password (GORM in production,
// test doubles elsewhere).
type MemberFinder interface {
	FindByEmailAndPassword(email, password string) (*domain.Member, error)
}

// GormMemberFinder implements MemberFinder using GORM and bcrypt.
type GormMemberFinder struct{ DB *gorm.DB }

func (g *GormMemberFinder) FindByEmailAndPassword(email, password string) (*domain.Member, error) {
	return LoginMember(g.DB, LoginInput{Email: email, Password: password})
}

// LoginMember finds a member by email and verifies the password.
func LoginMember(db *gorm.DB, input LoginInput) (*domain.Member, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrEmailPasswordRequired
	}
	var m domain.Member
	if err := db.Where("email = ?", input.Email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidEmail
		}
		return nil, err
	}
	if m.PasswordHash == "" {
		return nil, ErrInvalidEmail
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	return &m, nil
}

// VerifyMember validates the session user and returns the shape for /me.
func VerifyMember(sessionUser interface{}) (*SessionMemberShape, error) {
	if sessionUser == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	memberID, _ := m["member_id"].(string)
	if memberID == "" {
		return nil, ErrNotAuthenticated
	}
	out := &SessionMemberShape{
		MemberID: memberID,
		Fullname: str(m["fullname"]),
		Email:    str(m["email"]),
		Roles:    RolesFromSession(sessionUser),
	}
	return out, nil
}

// RolesFromSession extracts the roles list from a session user value. Session
// data round-trips through JSON, so the list arrives as []interface{}.
func RolesFromSession(sessionUser interface{}) []string {
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil
	}
	switch v := m["roles"].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, r := range v {
			if s, ok := r.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// MemberIDFromSession extracts the member id from a session user value.
func MemberIDFromSession(sessionUser interface{}) string {
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return ""
	}
	id, _ := m["member_id"].(string)
	return id
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
