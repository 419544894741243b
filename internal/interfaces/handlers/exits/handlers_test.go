package exits

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	exitsvc "prosper-backend/internal/application/exits"
	"prosper-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupExitsHandlerTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Member{}, &domain.Contribution{}, &domain.Penalty{},
		&domain.ExitRequest{}, &domain.Reversal{},
	))
	h := &Handlers{Service: &exitsvc.Service{DB: db}}
	app := fiber.New()
	app.Post("/exit-requests", h.CreateExitRequest)
	app.Post("/exit-requests/:id/fulfill", h.Fulfill)
	app.Post("/exit-requests/:id/cancel", h.Cancel)
	app.Get("/exit-queue", h.ListQueue)
	return app, db
}

func seedMember(t *testing.T, db *gorm.DB) uuid.UUID {
	m := domain.Member{
		FirstName: "Test", LastName: "Member",
		Email:    uuid.New().String() + "@example.com",
		Status:   domain.MemberActive,
		JoinDate: time.Now(),
	}
	require.NoError(t, m.SetRoles([]string{"MEMBER"}))
	require.NoError(t, db.Create(&m).Error)
	return m.MemberID
}

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]interface{}) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateExitRequest_InvalidMemberID(t *testing.T) {
	app, _ := setupExitsHandlerTest(t)

	resp := postJSON(t, app, "/exit-requests", map[string]interface{}{"member_id": "not-a-uuid"})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestCreateExitRequest_UnknownMember(t *testing.T) {
	app, _ := setupExitsHandlerTest(t)

	resp := postJSON(t, app, "/exit-requests", map[string]interface{}{"member_id": uuid.New().String()})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestCreateExitRequest_Enqueues(t *testing.T) {
	app, db := setupExitsHandlerTest(t)
	memberID := seedMember(t, db)

	resp := postJSON(t, app, "/exit-requests", map[string]interface{}{"member_id": memberID.String()})
	require.Equal(t, 201, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	data, _ := result["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["queue_position"])
	assert.Equal(t, "queued", data["status"])
}

func TestFulfill_ThenSecondTransitionFails(t *testing.T) {
	app, db := setupExitsHandlerTest(t)
	memberID := seedMember(t, db)

	resp := postJSON(t, app, "/exit-requests", map[string]interface{}{"member_id": memberID.String()})
	require.Equal(t, 201, resp.StatusCode)
	var created map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	data, _ := created["data"].(map[string]interface{})
	id, _ := data["exit_request_id"].(string)
	require.NotEmpty(t, id)

	resp = postJSON(t, app, "/exit-requests/"+id+"/fulfill", map[string]interface{}{
		"amount_entitled": "250.00",
	})
	require.Equal(t, 200, resp.StatusCode)

	resp = postJSON(t, app, "/exit-requests/"+id+"/cancel", map[string]interface{}{})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestListQueue_ReturnsQueuedRequests(t *testing.T) {
	app, db := setupExitsHandlerTest(t)
	for i := 0; i < 2; i++ {
		resp := postJSON(t, app, "/exit-requests", map[string]interface{}{
			"member_id": seedMember(t, db).String(),
		})
		require.Equal(t, 201, resp.StatusCode)
	}

	req := httptest.NewRequest("GET", "/exit-queue", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	queue, _ := result["data"].([]interface{})
	assert.Len(t, queue, 2)
}
