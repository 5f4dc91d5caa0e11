package rewriter

import (
	"net/http"
	"reflect"
	"strings"
	"testing"
)

func TestHeaderNames(t *testing.T) {
	names := HeaderNames()
	if len(names) != 12 {
		t.Fatalf("HeaderNames() returned %d names, want 12", len(names))
	}

	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			t.Errorf("duplicate header name %s", name)
		}
		seen[name] = true
		if name != strings.ToLower(name) {
			t.Errorf("header name %s is not lowercase", name)
		}
		if !strings.HasPrefix(name, "x-gateway-") {
			t.Errorf("header name %s lacks the x-gateway- prefix", name)
		}
	}
}

func TestIsGatewayHeader(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"x-gateway-service-host", true},
		{"X-Gateway-Service-Host", true},
		{"X-GATEWAY-SERVICE-TOKEN", true},
		{"x-gateway-unknown", false},
		{"Authorization", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsGatewayHeader(tt.input); got != tt.expected {
				t.Errorf("IsGatewayHeader(%s) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("X-Gateway-Service-Host", "api.openai.com")
	h.Set("X-Gateway-Service-Auth-Key", "secret")
	h.Set("Authorization", "Bearer abc")
	h.Set("Content-Type", "application/json")

	got := ParseHeaders(h)
	want := map[string]string{
		HeaderServiceHost:    "api.openai.com",
		HeaderServiceAuthKey: "secret",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseHeaders() = %v, want %v", got, want)
	}
}

func TestParseHeaders_RoundTrip(t *testing.T) {
	desc, err := Rewrite(testGateway, testTarget, NewBuilder().
		WithToken("tok").
		WithService("openai", "svc-1").
		WithProxy("relay.example.com").
		Build())
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}

	if got := ParseHeaders(desc.Header()); !reflect.DeepEqual(got, desc.Headers) {
		t.Errorf("ParseHeaders(Header()) = %v, want %v", got, desc.Headers)
	}
}
