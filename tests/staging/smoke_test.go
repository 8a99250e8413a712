//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"os"
	"testing"
)

// Staging runs against the dev seeds: user-alex browsing the workshop.
func seededUser() string {
	if v := os.Getenv("SMOKE_USER_ID"); v != "" {
		return v
	}
	return "user-alex"
}

func seededLocation() string {
	if v := os.Getenv("SMOKE_LOCATION_ID"); v != "" {
		return v
	}
	return "loc-workshop"
}

type inventoryResponse struct {
	Location struct {
		LocationID string `json:"location_id"`
	} `json:"location"`
	Items []struct {
		Item struct {
			ItemID string `json:"item_id"`
			Name   string `json:"name"`
		} `json:"item"`
		Available int `json:"available"`
	} `json:"items"`
}

func TestInventoryView(t *testing.T) {
	path := "/api/v1/inventory?user_id=" + seededUser() + "&location_id=" + seededLocation()
	resp, body := makeRequest(t, "GET", path, nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}

	var inv inventoryResponse
	if err := json.Unmarshal(body, &inv); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if inv.Location.LocationID != seededLocation() {
		t.Errorf("Expected location %s, got %s", seededLocation(), inv.Location.LocationID)
	}
	if len(inv.Items) == 0 {
		t.Error("Expected at least one item in seeded inventory")
	}
	for _, item := range inv.Items {
		if item.Available < 0 {
			t.Errorf("Item %s has negative availability %d", item.Item.ItemID, item.Available)
		}
	}
}

func TestCartAddAndClear(t *testing.T) {
	// Find a seeded item to add
	path := "/api/v1/inventory?user_id=" + seededUser() + "&location_id=" + seededLocation()
	resp, body := makeRequest(t, "GET", path, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var inv inventoryResponse
	if err := json.Unmarshal(body, &inv); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(inv.Items) == 0 {
		t.Skip("No seeded items to exercise the cart with")
	}

	add := map[string]interface{}{
		"user_id":       seededUser(),
		"location_id":   seededLocation(),
		"action":        "ADD",
		"item_id":       inv.Items[0].Item.ItemID,
		"checkout_type": "TEMPORARY",
		"quantity":      1,
	}
	resp, body = makeRequest(t, "POST", "/api/v1/cart", add)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Cart add failed with status %d: %s", resp.StatusCode, body)
	}

	// Leave the seeded environment as we found it
	clear := map[string]interface{}{
		"user_id":     seededUser(),
		"location_id": seededLocation(),
		"action":      "CLEAR",
	}
	resp, body = makeRequest(t, "POST", "/api/v1/cart", clear)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Cart clear failed with status %d: %s", resp.StatusCode, body)
	}
}

func TestPendingTransactionsList(t *testing.T) {
	path := "/api/v1/transactions?location_id=" + seededLocation()
	resp, body := makeRequest(t, "GET", path, nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}

	var list struct {
		Transactions []json.RawMessage `json:"transactions"`
	}
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if list.Transactions == nil {
		t.Error("Expected transactions array, got null")
	}
}
