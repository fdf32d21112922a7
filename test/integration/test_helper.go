package integration

import (
	"net/http"
	"os"
	"testing"
	"time"
)

var BaseURL = baseURL()

func baseURL() string {
	if u := os.Getenv("API_BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}

// requireServer skips the test when no API server is reachable, so the
// suite can run standalone without a deployed stack.
func requireServer(t *testing.T) {
	t.Helper()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(BaseURL + "/api/health")
	if err != nil {
		t.Skipf("API server not reachable at %s: %v", BaseURL, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Skipf("API server unhealthy at %s: %d", BaseURL, resp.StatusCode)
	}
}
