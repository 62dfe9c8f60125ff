//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "checkout-api"
	ConsumerName = "checkout-web"

	StateDefaultCart = "default cart seeded"
	StateEmptyCart   = "cart is empty"
)

// Product ids from the static catalog.
const (
	SocksID      = "e43638ce-6aa0-4b85-b27f-e1d07eb678c6"
	BasketballID = "15b6fc6f-327a-4ec4-896f-486349e85a3d"
	TShirtID     = "83d4ca15-0f35-48f5-b7a3-1ea210004f2e"
	MissingID    = "00000000-0000-0000-0000-000000000404"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the checkout web consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// DeliveryOptionSelector mirrors the selector the provider binds for a
// delivery choice.
func DeliveryOptionSelector(productID, optionID string) string {
	return ".js-delivery-option-" + productID + "-" + optionID
}

// ExampleAddLinePayload is the body used to add one t-shirt.
func ExampleAddLinePayload() map[string]any {
	return map[string]any{
		"productId": TShirtID,
		"quantity":  1,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
