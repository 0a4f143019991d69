package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/jeongphys/g-bird-platform/internal/auth"
	"github.com/jeongphys/g-bird-platform/internal/db"
	"github.com/jeongphys/g-bird-platform/internal/model"
	"github.com/jeongphys/g-bird-platform/internal/shop"
	"github.com/jeongphys/g-bird-platform/internal/store"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	database := db.NewTestDB(t)
	router := NewRouter(database, testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	// Create admin member.
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	store.CreateMember(ctx, database, "admin", "", string(hash), model.RoleAdmin)

	// Get token.
	body, _ := json.Marshal(map[string]string{"name": "admin", "password": "password"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp map[string]string
	json.NewDecoder(resp.Body).Decode(&loginResp)
	token := loginResp["token"]
	if token == "" {
		t.Fatal("empty token from login")
	}

	return server, token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func seedInventory(t *testing.T, server *httptest.Server, token string, boxes, unitsPerBox int) {
	t.Helper()
	req, _ := authRequest("POST", server.URL+"/api/inventory/seed", token, map[string]int{
		"boxes":         boxes,
		"units_per_box": unitsPerBox,
		"price":         16000,
	})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("seed request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("seed failed: %d", resp.StatusCode)
	}
}

func TestLoginEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	// Test invalid credentials.
	body, _ := json.Marshal(map[string]string{"name": "admin", "password": "wrong"})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestSelectionClickFlow(t *testing.T) {
	server, token := setupTestServer(t)
	seedInventory(t, server, token, 2, 3)

	// First click must pick unit 1-1.
	req, _ := authRequest("POST", server.URL+"/api/selection/click", token, map[string]any{
		"selection": []string{},
		"unit_id":   "1-1",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var click struct {
		Selection  []string `json:"selection"`
		TotalPrice int      `json:"total_price"`
	}
	json.NewDecoder(resp.Body).Decode(&click)
	resp.Body.Close()
	if len(click.Selection) != 1 || click.Selection[0] != "1-1" {
		t.Fatalf("unexpected selection: %v", click.Selection)
	}
	if click.TotalPrice != 16000 {
		t.Errorf("expected total 16000, got %d", click.TotalPrice)
	}

	// Skipping ahead to 1-3 is rejected.
	req, _ = authRequest("POST", server.URL+"/api/selection/click", token, map[string]any{
		"selection": []string{"1-1"},
		"unit_id":   "1-3",
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for out-of-sequence click, got %d", resp.StatusCode)
	}
	var errResp struct {
		Code string `json:"code"`
	}
	json.NewDecoder(resp.Body).Decode(&errResp)
	resp.Body.Close()
	if errResp.Code != "out_of_sequence" {
		t.Errorf("expected out_of_sequence code, got %q", errResp.Code)
	}
}

func TestOrderLifecycleFlow(t *testing.T) {
	server, token := setupTestServer(t)
	seedInventory(t, server, token, 1, 5)

	// Create order.
	req, _ := authRequest("POST", server.URL+"/api/orders", token, map[string]any{
		"items": []string{"1-1", "1-2"},
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var order model.Order
	json.NewDecoder(resp.Body).Decode(&order)
	resp.Body.Close()
	if order.Status != model.OrderStatusPending {
		t.Fatalf("expected pending order, got %q", order.Status)
	}
	if order.TotalPrice != 32000 {
		t.Errorf("expected total 32000, got %d", order.TotalPrice)
	}

	// Pending order does not deduct stock.
	req, _ = authRequest("GET", server.URL+"/api/inventory/summary", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	var summary struct {
		Total int `json:"total"`
		Sold  int `json:"sold"`
	}
	json.NewDecoder(resp.Body).Decode(&summary)
	resp.Body.Close()
	if summary.Sold != 0 {
		t.Errorf("expected 0 sold before approval, got %d", summary.Sold)
	}

	// A second order for the same units conflicts.
	req, _ = authRequest("POST", server.URL+"/api/orders", token, map[string]any{
		"items": []string{"1-2"},
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for reserved unit, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Approve: this is when stock is deducted.
	req, _ = authRequest("POST", server.URL+"/api/orders/"+order.ID+"/approve", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on approve, got %d", resp.StatusCode)
	}
	var approved model.Order
	json.NewDecoder(resp.Body).Decode(&approved)
	resp.Body.Close()
	if approved.Status != model.OrderStatusApproved {
		t.Errorf("expected approved status, got %q", approved.Status)
	}

	req, _ = authRequest("GET", server.URL+"/api/inventory/summary", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	json.NewDecoder(resp.Body).Decode(&summary)
	resp.Body.Close()
	if summary.Sold != 2 {
		t.Errorf("expected 2 sold after approval, got %d", summary.Sold)
	}

	// Approving twice fails: the order is no longer pending.
	req, _ = authRequest("POST", server.URL+"/api/orders/"+order.ID+"/approve", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for double approval, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestOrderRejectFlow(t *testing.T) {
	server, token := setupTestServer(t)
	seedInventory(t, server, token, 1, 3)

	req, _ := authRequest("POST", server.URL+"/api/orders", token, map[string]any{
		"items": []string{"1-1"},
	})
	resp, _ := http.DefaultClient.Do(req)
	var order model.Order
	json.NewDecoder(resp.Body).Decode(&order)
	resp.Body.Close()

	// Rejecting without a reason is invalid.
	req, _ = authRequest("POST", server.URL+"/api/orders/"+order.ID+"/reject", token, map[string]string{})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing reason, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("POST", server.URL+"/api/orders/"+order.ID+"/reject", token, map[string]string{
		"reason": "duplicate request",
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on reject, got %d", resp.StatusCode)
	}
	var rejected model.Order
	json.NewDecoder(resp.Body).Decode(&rejected)
	resp.Body.Close()
	if rejected.Status != model.OrderStatusRejected || rejected.RejectReason != "duplicate request" {
		t.Errorf("unexpected rejected order: %+v", rejected)
	}

	// Rejected items become orderable again.
	req, _ = authRequest("POST", server.URL+"/api/orders", token, map[string]any{
		"items": []string{"1-1"},
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201 reordering rejected items, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestInventoryResetRequiresConfirmation(t *testing.T) {
	server, token := setupTestServer(t)
	seedInventory(t, server, token, 1, 2)

	req, _ := authRequest("POST", server.URL+"/api/inventory/reset", token, map[string]string{
		"confirm": "yes please",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for wrong confirmation, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("POST", server.URL+"/api/inventory/reset", token, map[string]string{
		"confirm": shop.ResetConfirmPhrase,
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for confirmed reset, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUnauthenticatedAccess(t *testing.T) {
	database := db.NewTestDB(t)
	router := NewRouter(database, testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	resp, _ := http.Get(server.URL + "/api/inventory")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for unauthenticated request, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRoleBasedAccess(t *testing.T) {
	server, adminToken := setupTestServer(t)
	seedInventory(t, server, adminToken, 1, 2)

	// A regular member's token carries the member role.
	memberToken, _ := auth.GenerateToken(testJWTSecret, 2, "bob", model.RoleMember)

	// Regular members cannot seed inventory.
	req, _ := authRequest("POST", server.URL+"/api/inventory/seed", memberToken, map[string]int{
		"boxes": 1, "units_per_box": 1, "price": 16000,
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for member seeding, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Regular members cannot list all orders.
	req, _ = authRequest("GET", server.URL+"/api/orders", memberToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for member listing orders, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// But they can order, and cannot read other buyers' orders.
	req, _ = authRequest("POST", server.URL+"/api/orders", memberToken, map[string]any{
		"items": []string{"1-1"},
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 for member order, got %d", resp.StatusCode)
	}
	var order model.Order
	json.NewDecoder(resp.Body).Decode(&order)
	resp.Body.Close()

	otherToken, _ := auth.GenerateToken(testJWTSecret, 3, "carol", model.RoleMember)
	req, _ = authRequest("GET", server.URL+"/api/orders/"+order.ID, otherToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 reading another buyer's order, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLogoutRevokesToken(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/auth/logout", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on logout, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// The revoked token no longer works.
	req, _ = authRequest("GET", server.URL+"/api/inventory", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for revoked token, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}
