package statement

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	stmtsvc "prosper-backend/internal/application/statement"
	"prosper-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupStatementHandlerTest(t *testing.T, memberID string) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Member{}, &domain.Contribution{}, &domain.Penalty{},
		&domain.Investment{}, &domain.HoldingShare{},
		&domain.ExitRequest{}, &domain.BuyOut{}, &domain.Reversal{},
	))
	h := &Handlers{Service: &stmtsvc.Service{DB: db}}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"member_id": memberID,
			"roles":     []interface{}{"MEMBER"},
		})
		return c.Next()
	})
	app.Get("/me/statement", h.GetOwnStatement)
	return app, db
}

func TestGetOwnStatement_NoLinkedMember(t *testing.T) {
	app, _ := setupStatementHandlerTest(t, "")

	resp, err := app.Test(httptest.NewRequest("GET", "/me/statement", nil))
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestGetOwnStatement_InvalidDate(t *testing.T) {
	app, _ := setupStatementHandlerTest(t, uuid.New().String())

	resp, err := app.Test(httptest.NewRequest("GET", "/me/statement?from=yesterday", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetOwnStatement_InvertedRange(t *testing.T) {
	app, _ := setupStatementHandlerTest(t, uuid.New().String())

	resp, err := app.Test(httptest.NewRequest("GET", "/me/statement?from=2025-03-01&to=2025-01-01", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetOwnStatement_ReturnsHistory(t *testing.T) {
	memberID := uuid.New()
	app, db := setupStatementHandlerTest(t, memberID.String())
	require.NoError(t, db.Create(&domain.Contribution{
		MemberID:   memberID,
		WindowID:   uuid.New(),
		Amount:     decimal.RequireFromString("150.75"),
		RecordedAt: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
	}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/me/statement?from=2025-01-01&to=2025-02-01", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	data, _ := result["data"].(map[string]interface{})
	contributions, _ := data["contributions"].([]interface{})
	require.Len(t, contributions, 1)
	entry, _ := contributions[0].(map[string]interface{})
	assert.Equal(t, "150.75", entry["amount"])
}
