package rewriter

import (
	"errors"
	"regexp"
	"testing"
)

var uuidPattern = regexp.MustCompile(`^[0-9A-F]{8}-[0-9A-F]{4}-5[0-9A-F]{3}-[89AB][0-9A-F]{3}-[0-9A-F]{12}$`)

func withMachineID(t *testing.T, fn func() (string, error)) {
	t.Helper()
	orig := machineID
	machineID = fn
	t.Cleanup(func() { machineID = orig })
}

func TestVendorIdentity(t *testing.T) {
	withMachineID(t, func() (string, error) {
		return "4c4c4544004d3510804bb4c04f4e3732\n", nil
	})

	a := VendorIdentity("github.com/acme").Identity().VendorIdentifier
	b := VendorIdentity("github.com/acme").Identity().VendorIdentifier
	other := VendorIdentity("github.com/other").Identity().VendorIdentifier

	if !uuidPattern.MatchString(a) {
		t.Errorf("VendorIdentity() = %q, want an uppercase UUIDv5", a)
	}
	if a != b {
		t.Errorf("VendorIdentity() not stable: %q != %q", a, b)
	}
	if a == other {
		t.Errorf("VendorIdentity() equal for different vendors: %q", a)
	}
}

func TestVendorIdentity_NoMachineID(t *testing.T) {
	withMachineID(t, func() (string, error) {
		return "", errors.New("unsupported")
	})

	info := VendorIdentity("github.com/acme").Identity()
	if info != (IdentityInfo{}) {
		t.Errorf("VendorIdentity() = %+v, want empty", info)
	}

	desc, err := Rewrite(testGateway, testTarget, Options{Identity: VendorIdentity("github.com/acme")})
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if _, ok := desc.Headers[HeaderIdentifierForVendor]; ok {
		t.Errorf("Rewrite() set %s without a machine id", HeaderIdentifierForVendor)
	}
}

func TestVendorIdentity_ReadsMachineIDOnce(t *testing.T) {
	calls := 0
	withMachineID(t, func() (string, error) {
		calls++
		return "abc", nil
	})

	provider := VendorIdentity("github.com/acme")
	for i := 0; i < 3; i++ {
		provider.Identity()
	}
	if calls != 1 {
		t.Errorf("machine id read %d times, want 1", calls)
	}
}

func TestChainIdentity(t *testing.T) {
	chain := ChainIdentity(
		IdentityInfo{BundleIdentifier: "com.example.override"},
		nil,
		IdentityFunc(func() IdentityInfo {
			return IdentityInfo{
				VendorIdentifier: "VENDOR",
				BundleIdentifier: "com.example.detected",
				BundleVersion:    "2.0.0",
			}
		}),
	)

	got := chain.Identity()
	want := IdentityInfo{
		VendorIdentifier: "VENDOR",
		BundleIdentifier: "com.example.override",
		BundleVersion:    "2.0.0",
	}
	if got != want {
		t.Errorf("ChainIdentity() = %+v, want %+v", got, want)
	}
}

func TestBuildInfoIdentity(t *testing.T) {
	info := BuildInfoIdentity().Identity()
	if info.VendorIdentifier != "" {
		t.Errorf("BuildInfoIdentity() vendor = %q, want empty", info.VendorIdentifier)
	}
	if info.BundleVersion == "(devel)" {
		t.Error("BuildInfoIdentity() reported a development version")
	}
}

func TestVendorFromModule(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"github.com/acme/app/cmd/tool", "github.com/acme"},
		{"example.com/app", "example.com/app"},
		{"app", "app"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := vendorFromModule(tt.input); got != tt.expected {
				t.Errorf("vendorFromModule(%s) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}
