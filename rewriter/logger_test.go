package rewriter

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Custom logger for testing
type testLogger struct {
	debugs []string
	warns  []string
}

func (l *testLogger) Debug(args ...interface{}) {
	l.debugs = append(l.debugs, fmt.Sprint(args...))
}

func (l *testLogger) Info(args ...interface{}) {}

func (l *testLogger) Warn(args ...interface{}) {
	l.warns = append(l.warns, fmt.Sprint(args...))
}

func (l *testLogger) Error(args ...interface{}) {}

func TestNewZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Debug("dropped")
	logger.Info("hello ", "world")
	logger.Warn("careful")
	logger.Error("broken")

	if logs.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", logs.Len())
	}
	if msg := logs.All()[0].Message; msg != "hello world" {
		t.Errorf("first message = %q, want %q", msg, "hello world")
	}
}

func TestNewZapLogger_Nil(t *testing.T) {
	if _, ok := NewZapLogger(nil).(NoOpLogger); !ok {
		t.Error("NewZapLogger(nil) should return NoOpLogger")
	}
}

func TestTransport_SetLogger(t *testing.T) {
	logger := &testLogger{}
	transport := NewTransport("/no-host", Options{}, &recordingTransport{})
	transport.SetLogger(logger)

	if _, err := transport.RoundTrip(httptest.NewRequest(http.MethodGet, testTarget, nil)); err == nil {
		t.Fatal("RoundTrip() expected error")
	}
	if len(logger.warns) != 1 {
		t.Errorf("expected 1 warning, got %v", logger.warns)
	}

	transport.SetLogger(nil)
	if _, ok := transport.logger.(NoOpLogger); !ok {
		t.Error("SetLogger(nil) should install NoOpLogger")
	}
}

func TestMaskSensitive(t *testing.T) {
	tests := []struct {
		input     string
		showChars int
		expected  string
	}{
		{"super-secret", 2, "su********et"},
		{"abcd", 2, "****"},
		{"", 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MaskSensitive(tt.input, tt.showChars); got != tt.expected {
				t.Errorf("MaskSensitive(%s) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDescriptor_RedactedHeaders(t *testing.T) {
	desc, err := Rewrite(testGateway, testTarget, NewBuilder().
		WithToken("super-secret").
		WithAuthentication(AuthTypeHeader, "key-123456", "").
		Build())
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}

	redacted := desc.RedactedHeaders()
	if redacted[HeaderServiceToken] != "su********et" {
		t.Errorf("token = %s", redacted[HeaderServiceToken])
	}
	if redacted[HeaderServiceAuthKey] != "ke******56" {
		t.Errorf("auth key = %s", redacted[HeaderServiceAuthKey])
	}
	if redacted[HeaderServiceHost] != "api.openai.com" {
		t.Errorf("host = %s", redacted[HeaderServiceHost])
	}
	if desc.Headers[HeaderServiceToken] != "super-secret" {
		t.Error("RedactedHeaders() modified the descriptor")
	}
}
