package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Jataveda/Agriconnect/confs"
	"github.com/Jataveda/Agriconnect/entities"
	"github.com/Jataveda/Agriconnect/repositories"
	"github.com/Jataveda/Agriconnect/reports"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() confs.Config {
	return confs.Config{
		Port:                   "0",
		StoreDriver:            confs.DriverMemory,
		PasswordMode:           confs.PasswordModePlaintext,
		StrictOrderTransitions: true,
		SeedDemoData:           true,
		CORSAllowOrigins:       []string{"*"},
		TrackingInterval:       time.Hour,
		TrackingHistory:        10,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := NewServer(testConfig(), repositories.NewMemoryStore(), nil)
	if err := s.SeedDemoData(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

type loginResponse struct {
	User  entities.UserPublic `json:"user"`
	Token string              `json:"token"`
}

func login(t *testing.T, h http.Handler, username string) entities.UserPublic {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/auth/login", map[string]string{"username": username, "password": "password123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", username, rec.Code, rec.Body.String())
	}
	return decode[loginResponse](t, rec).User
}

func placeOrder(t *testing.T, h http.Handler, customer entities.UserPublic, itemID string) entities.Order {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/orders", map[string]any{
		"type":     "vehicle",
		"itemId":   itemID,
		"total":    290,
		"quantity": 1,
		"userId":   customer.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("place order: %d %s", rec.Code, rec.Body.String())
	}
	return decode[entities.Order](t, rec)
}

func TestLogin(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodPost, "/api/auth/login", map[string]string{"username": "farmer-test", "password": "password123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password123") {
		t.Fatalf("login response leaks the password: %s", rec.Body.String())
	}
	resp := decode[loginResponse](t, rec)
	if resp.Token != "mock-jwt-token" || resp.User.Username != "farmer-test" || resp.User.UserType != entities.UserTypeFarmer {
		t.Fatalf("unexpected login response %+v", resp)
	}

	rec = do(t, h, http.MethodPost, "/api/auth/login", map[string]string{"email": "customer@test.com", "password": "password123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("email login: expected 200, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/api/auth/login", map[string]string{"username": "farmer-test", "password": "nope"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/api/auth/login", map[string]string{"username": "farmer-test"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing password: expected 400, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/api/auth/login", map[string]string{"username": " customer-test ", "password": "password123"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("padded username: expected 401, got %d", rec.Code)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	h := newTestServer(t).Handler()

	body := map[string]any{
		"username": "farmer-test",
		"password": "x",
		"email":    "other@test.com",
		"userType": "farmer",
		"name":     "Dup",
	}
	rec := do(t, h, http.MethodPost, "/api/users", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[map[string]string](t, rec)["error"]; got != "Username already exists" {
		t.Fatalf("unexpected error %q", got)
	}

	body["username"] = "new-farmer"
	rec = do(t, h, http.MethodPost, "/api/users", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/users/does-not-exist", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSeededVehiclesByOwner(t *testing.T) {
	h := newTestServer(t).Handler()
	farmer := login(t, h, "farmer-test")

	rec := do(t, h, http.MethodGet, "/api/users/"+farmer.ID+"/vehicles", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	vehicles := decode[[]entities.Vehicle](t, rec)
	if len(vehicles) == 0 {
		t.Fatalf("expected seeded vehicles for the demo farmer")
	}
	for _, v := range vehicles {
		if v.OwnerID != farmer.ID {
			t.Fatalf("vehicle %s owned by %s", v.ID, v.OwnerID)
		}
	}
}

func TestOrderLifecycle(t *testing.T) {
	h := newTestServer(t).Handler()
	customer := login(t, h, "customer-test")

	order := placeOrder(t, h, customer, "vehicle-1")
	if order.Status != entities.OrderStatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
	if !strings.HasPrefix(order.OrderNumber, "ORD-") {
		t.Fatalf("unexpected order number %q", order.OrderNumber)
	}
	other := placeOrder(t, h, customer, "vehicle-1")
	if other.OrderNumber == order.OrderNumber {
		t.Fatalf("order numbers collide: %s", order.OrderNumber)
	}

	rec := do(t, h, http.MethodPut, "/api/orders/"+order.ID, map[string]string{"status": "delivered"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("pending -> delivered: expected 400, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodPut, "/api/orders/"+order.ID, map[string]string{"status": "in-transit"})
	if rec.Code != http.StatusOK {
		t.Fatalf("pending -> in_transit: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[entities.Order](t, rec).Status; got != entities.OrderStatusInTransit {
		t.Fatalf("expected in_transit, got %s", got)
	}

	rec = do(t, h, http.MethodGet, "/api/orders?itemId=vehicle-1", nil)
	if n := len(decode[[]entities.Order](t, rec)); n != 2 {
		t.Fatalf("expected 2 orders for the item, got %d", n)
	}
	rec = do(t, h, http.MethodGet, "/api/users/"+customer.ID+"/orders", nil)
	if n := len(decode[[]entities.Order](t, rec)); n != 2 {
		t.Fatalf("expected 2 orders for the customer, got %d", n)
	}

	if rec := do(t, h, http.MethodDelete, "/api/orders/"+order.ID, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/api/orders/"+order.ID, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/orders/"+order.ID, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted: expected 404, got %d", rec.Code)
	}
}

func TestRentalOrderWithCalendarDates(t *testing.T) {
	h := newTestServer(t).Handler()
	customer := login(t, h, "customer-test")

	rec := do(t, h, http.MethodPost, "/api/orders", map[string]any{
		"type":      "vehicle",
		"itemId":    "vehicle-1",
		"total":     290,
		"userId":    customer.ID,
		"startDate": "2024-01-15",
		"endDate":   "2024-01-17",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	order := decode[entities.Order](t, rec)
	wantStart := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if order.StartDate == nil || !order.StartDate.Equal(wantStart) {
		t.Fatalf("unexpected startDate %v", order.StartDate)
	}
	if order.EndDate == nil || !order.EndDate.Equal(wantStart.AddDate(0, 0, 2)) {
		t.Fatalf("unexpected endDate %v", order.EndDate)
	}

	rec = do(t, h, http.MethodPut, "/api/orders/"+order.ID, map[string]any{"endDate": "2024-01-20"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[entities.Order](t, rec).EndDate; got == nil || !got.Equal(wantStart.AddDate(0, 0, 5)) {
		t.Fatalf("unexpected updated endDate %v", got)
	}

	rec = do(t, h, http.MethodPut, "/api/orders/"+order.ID, map[string]any{"endDate": "2024-01-10"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("end before start: expected 400, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/api/orders", map[string]any{
		"type": "vehicle", "itemId": "vehicle-1", "total": 1, "userId": customer.ID, "startDate": "15/01/2024",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed date: expected 400, got %d", rec.Code)
	}
}

func TestMessages(t *testing.T) {
	h := newTestServer(t).Handler()
	customer := login(t, h, "customer-test")

	rec := do(t, h, http.MethodPost, "/api/messages", map[string]string{
		"orderId":  "missing",
		"senderId": customer.ID,
		"content":  "hello",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown order: expected 400, got %d", rec.Code)
	}

	order := placeOrder(t, h, customer, "vehicle-1")
	rec = do(t, h, http.MethodPost, "/api/messages", map[string]string{
		"orderId":  order.ID,
		"senderId": customer.ID,
		"content":  "when can you deliver?",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	msg := decode[entities.Message](t, rec)
	if msg.SenderName != customer.Name || msg.SenderType != entities.UserTypeCustomer {
		t.Fatalf("sender not filled from the user: %+v", msg)
	}

	rec = do(t, h, http.MethodGet, "/api/orders/"+order.ID+"/messages", nil)
	thread := decode[[]entities.Message](t, rec)
	if len(thread) != 1 || thread[0].Content != "when can you deliver?" {
		t.Fatalf("unexpected thread %+v", thread)
	}
}

func TestDashboardEndpoints(t *testing.T) {
	h := newTestServer(t).Handler()
	customer := login(t, h, "customer-test")
	placeOrder(t, h, customer, "vehicle-1")

	rec := do(t, h, http.MethodGet, "/api/users/"+customer.ID+"/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", rec.Code)
	}
	stats := decode[map[string]any](t, rec)
	if stats["totalOrders"] != float64(1) || stats["activeOrders"] != float64(1) {
		t.Fatalf("unexpected stats %v", stats)
	}
	if rec := do(t, h, http.MethodGet, "/api/users/missing/stats", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("stats for unknown user: expected 404, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/api/users/"+customer.ID+"/orders/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != reports.XLSXContentType {
		t.Fatalf("unexpected content type %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Fatalf("empty workbook")
	}

	rec = do(t, h, http.MethodGet, "/api/pricing/suggestions", nil)
	if rec.Code != http.StatusOK || len(decode[[]map[string]any](t, rec)) == 0 {
		t.Fatalf("suggestions: %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, h, http.MethodGet, "/api/pricing/suggestions?location=Atlantis", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown location: expected 404, got %d", rec.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(t).Handler()

	if rec := do(t, h, http.MethodGet, "/health", nil); rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	do(t, h, http.MethodGet, "/api/vehicles", nil)

	rec := do(t, h, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `agriconnect_http_requests_total{method="GET",route="/api/vehicles",status="200"} 1`) {
		t.Fatalf("request counter missing from metrics output:\n%s", body)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame map[string]any
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return frame
}

func TestOrderWebsocket(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	customer := login(t, s.Handler(), "customer-test")
	order := placeOrder(t, s.Handler(), customer, "vehicle-1")

	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/orders/"

	_, resp, err := websocket.DefaultDialer.Dial(base+"missing", nil)
	if err == nil || resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got err=%v resp=%v", err, resp)
	}

	conn, _, err := websocket.DefaultDialer.Dial(base+order.ID, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if frame := readFrame(t, conn); frame["type"] != "snapshot" {
		t.Fatalf("expected snapshot first, got %v", frame)
	}

	err = conn.WriteJSON(map[string]string{"type": "message", "senderId": customer.ID, "content": "on my way?"})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	frame := readFrame(t, conn)
	msg, _ := frame["message"].(map[string]any)
	if frame["type"] != "message" || msg["content"] != "on my way?" {
		t.Fatalf("expected message broadcast, got %v", frame)
	}

	// HTTP messages reach websocket subscribers too.
	do(t, s.Handler(), http.MethodPost, "/api/messages", map[string]string{"orderId": order.ID, "senderId": customer.ID, "content": "via http"})
	frame = readFrame(t, conn)
	msg, _ = frame["message"].(map[string]any)
	if msg["content"] != "via http" {
		t.Fatalf("expected http message broadcast, got %v", frame)
	}

	do(t, s.Handler(), http.MethodPut, "/api/orders/"+order.ID, map[string]string{"status": "in_transit"})
	if n := s.Simulator().Tick(context.Background()); n != 1 {
		t.Fatalf("expected one tracked order, got %d", n)
	}
	if frame := readFrame(t, conn); frame["type"] != "location" || frame["location"] == nil {
		t.Fatalf("expected location frame, got %v", frame)
	}

	rec := do(t, s.Handler(), http.MethodGet, "/api/orders/"+order.ID+"/tracking", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("tracking: expected 200, got %d", rec.Code)
	}
	tracking := decode[map[string]any](t, rec)
	if points, _ := tracking["points"].([]any); len(points) != 1 || tracking["latest"] == nil {
		t.Fatalf("unexpected tracking body %v", tracking)
	}
}
