// Minimal end-to-end smoke test for the IERP application portal.
//
// Requires a running portal and pre-issued session tokens (the Discord OAuth
// hop cannot be automated here): set API_URL, USER_TOKEN and ADMIN_TOKEN.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

var (
	baseURL    = getenv("API_URL", "http://localhost:8080/v1")
	userToken  = getenv("USER_TOKEN", "")
	adminToken = getenv("ADMIN_TOKEN", "")
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	if userToken == "" || adminToken == "" {
		log.Fatal("USER_TOKEN and ADMIN_TOKEN must be set")
	}

	checkDepartments()
	id := submitApplication()
	checkPending(id)
	reviewApplication(id)
	resetApplication(id)

	fmt.Println("✓ all endpoints passed")
}

func checkDepartments() {
	var resp struct {
		Departments []struct {
			Code string `json:"code"`
		} `json:"departments"`
	}
	doJSON("GET", "/departments", "", nil, &resp, http.StatusOK)
	if len(resp.Departments) == 0 {
		log.Fatal("departments: empty catalog")
	}
}

func submitApplication() string {
	var resp struct {
		ID string `json:"id"`
	}
	doJSON("POST", "/applications", userToken, map[string]any{
		"displayName":   "Smoke Tester",
		"email":         "smoke@example.com",
		"contactHandle": "smoke#0001",
		"department":    "lsfd",
		"motivation":    "End to end check.",
	}, &resp, http.StatusCreated)
	if resp.ID == "" {
		log.Fatal("submit: empty id")
	}
	return resp.ID
}

func checkPending(id string) {
	var resp struct {
		Status string `json:"status"`
	}
	doJSON("GET", "/applications/"+id, adminToken, nil, &resp, http.StatusOK)
	if resp.Status != "pending" {
		log.Fatalf("expected pending, got %s", resp.Status)
	}
}

func reviewApplication(id string) {
	var resp struct {
		Status string `json:"status"`
	}
	doJSON("POST", "/applications/"+id+"/review", adminToken, map[string]any{
		"decision": "approved",
		"notes":    "smoke pass",
	}, &resp, http.StatusOK)
	if resp.Status != "approved" {
		log.Fatalf("expected approved, got %s", resp.Status)
	}
}

func resetApplication(id string) {
	var resp struct {
		Reset int64 `json:"reset"`
	}
	doJSON("POST", "/applications/reset", adminToken, map[string]any{
		"ids": []string{id},
	}, &resp, http.StatusOK)
	if resp.Reset != 1 {
		log.Fatalf("expected 1 reset, got %d", resp.Reset)
	}
}

func doJSON(method, path, token string, body, out any, want int) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, baseURL+path, &buf)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		log.Fatalf("%s %s: status %d, want %d", method, path, resp.StatusCode, want)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
}
