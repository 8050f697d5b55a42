package integration

import (
	"net/http"
	"testing"
)

func TestGroupFlow_CreateAndSplit(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "split@test.com", "password123")

	// Step 1: Create a group with an initial expense.
	rec := app.request("POST", "/api/v1/groups",
		`{"name":"Trip to Lisbon","members":["Alice","Bob"],"expenses":[{"description":"Hotel","amount":100,"paid_by":"Alice"}]}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	group := parseJSON(t, rec)["group"].(map[string]interface{})
	groupID := group["id"].(string)

	// Step 2: Add a second shared expense.
	rec = app.request("POST", "/api/v1/groups/"+groupID+"/expenses",
		`{"description":"Taxi","amount":50,"paid_by":"Bob"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 3: Shares split the total equally.
	rec = app.request("GET", "/api/v1/groups/"+groupID+"/shares", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	shares := parseJSON(t, rec)["shares"].(map[string]interface{})
	if shares["total_amount"].(float64) != 150 {
		t.Errorf("expected total 150, got %v", shares["total_amount"])
	}
	if shares["per_member_share"].(float64) != 75 {
		t.Errorf("expected share 75, got %v", shares["per_member_share"])
	}
	if shares["member_count"].(float64) != 2 {
		t.Errorf("expected 2 members, got %v", shares["member_count"])
	}

	// Step 4: The group appears in the list.
	rec = app.request("GET", "/api/v1/groups", "", token)
	groups := parseJSON(t, rec)["groups"].([]interface{})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}

	// Step 5: Delete removes the group and its expenses.
	rec = app.request("DELETE", "/api/v1/groups/"+groupID, "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/groups/"+groupID, "", token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestGroupFlow_Validation(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "groupval@test.com", "password123")

	// Members are required.
	rec := app.request("POST", "/api/v1/groups", `{"name":"Dinner","members":[]}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty members, got %d", rec.Code)
	}

	// Shared expenses must have a positive amount.
	rec = app.request("POST", "/api/v1/groups",
		`{"name":"Dinner","members":["Alice"],"expenses":[{"description":"Pizza","amount":-5,"paid_by":"Alice"}]}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative amount, got %d", rec.Code)
	}
}

func TestGroupFlow_OwnerIsolation(t *testing.T) {
	app := setupApp(t)
	alice, _, _ := app.registerUser(t, "galice@test.com", "password123")
	bob, _, _ := app.registerUser(t, "gbob@test.com", "password123")

	rec := app.request("POST", "/api/v1/groups", `{"name":"Private","members":["Alice"]}`, alice)
	groupID := parseJSON(t, rec)["group"].(map[string]interface{})["id"].(string)

	rec = app.request("GET", "/api/v1/groups/"+groupID, "", bob)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for other user's group, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/groups", "", bob)
	groups := parseJSON(t, rec)["groups"].([]interface{})
	if len(groups) != 0 {
		t.Errorf("expected no groups for other user, got %d", len(groups))
	}
}
