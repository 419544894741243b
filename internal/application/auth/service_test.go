package auth

import (
	"testing"
	"time"

	"prosper-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Member{}))
	return db
}

func seedMember(t *testing.T, db *gorm.DB, email, password string) *domain.Member {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	m := domain.Member{
		FirstName:    "Amina",
		LastName:     "Okafor",
		Email:        email,
		PasswordHash: string(hash),
		Status:       domain.MemberActive,
		JoinDate:     time.Now(),
	}
	require.NoError(t, m.SetRoles([]string{"MEMBER", "ADMIN"}))
	require.NoError(t, db.Create(&m).Error)
	return &m
}

func TestLoginMember_Success(t *testing.T) {
	db := setupAuthTest(t)
	seedMember(t, db, "amina@example.com", "Sekure#123")

	m, err := LoginMember(db, LoginInput{Email: "amina@example.com", Password: "Sekure#123"})
	require.NoError(t, err)
	assert.Equal(t, "amina@example.com", m.Email)
	assert.Equal(t, "Amina Okafor", m.Fullname())
}

func TestLoginMember_MissingFields(t *testing.T) {
	db := setupAuthTest(t)

	_, err := LoginMember(db, LoginInput{})
	assert.ErrorIs(t, err, ErrEmailPasswordRequired)
}

func TestLoginMember_UnknownEmail(t *testing.T) {
	db := setupAuthTest(t)

	_, err := LoginMember(db, LoginInput{Email: "ghost@example.com", Password: "Sekure#123"})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestLoginMember_WrongPassword(t *testing.T) {
	db := setupAuthTest(t)
	seedMember(t, db, "amina@example.com", "Sekure#123")

	_, err := LoginMember(db, LoginInput{Email: "amina@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrIncorrectPassword)
}

func TestVerifyMember_RoundTripsSessionShape(t *testing.T) {
	sessionUser := map[string]interface{}{
		"member_id": "abc-123",
		"fullname":  "Amina Okafor",
		"email":     "amina@example.com",
		// JSON round-trip turns the roles slice into []interface{}.
		"roles": []interface{}{"MEMBER", "ADMIN"},
	}

	shape, err := VerifyMember(sessionUser)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", shape.MemberID)
	assert.Equal(t, []string{"MEMBER", "ADMIN"}, shape.Roles)
}

func TestVerifyMember_RejectsMissingSession(t *testing.T) {
	_, err := VerifyMember(nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = VerifyMember(map[string]interface{}{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestRolesFromSession_HandlesBothShapes(t *testing.T) {
	asStrings := map[string]interface{}{"roles": []string{"MEMBER"}}
	assert.Equal(t, []string{"MEMBER"}, RolesFromSession(asStrings))

	asAny := map[string]interface{}{"roles": []interface{}{"MEMBER", "AUDITOR"}}
	assert.Equal(t, []string{"MEMBER", "AUDITOR"}, RolesFromSession(asAny))

	assert.Nil(t, RolesFromSession("not a map"))
}
