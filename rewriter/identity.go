package rewriter

import (
	"runtime/debug"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// IdentityInfo describes the calling application and device. Empty fields
// are absent and produce no header.
type IdentityInfo struct {
	VendorIdentifier string `json:"vendor_identifier,omitempty" yaml:"vendor_identifier,omitempty"`
	BundleIdentifier string `json:"bundle_identifier,omitempty" yaml:"bundle_identifier,omitempty"`
	BundleVersion    string `json:"bundle_version,omitempty" yaml:"bundle_version,omitempty"`
}

// Identity lets a fixed IdentityInfo act as its own provider.
func (i IdentityInfo) Identity() IdentityInfo {
	return i
}

// IdentityProvider supplies identity values at rewrite time. Providers must
// be safe for concurrent use.
type IdentityProvider interface {
	Identity() IdentityInfo
}

// IdentityFunc adapts a function to IdentityProvider.
type IdentityFunc func() IdentityInfo

// Identity calls f.
func (f IdentityFunc) Identity() IdentityInfo {
	return f()
}

// ChainIdentity merges providers field by field; the first provider that
// supplies a field wins. Nil providers are skipped.
func ChainIdentity(providers ...IdentityProvider) IdentityProvider {
	return IdentityFunc(func() IdentityInfo {
		var merged IdentityInfo
		for _, p := range providers {
			if p == nil {
				continue
			}
			info := p.Identity()
			if merged.VendorIdentifier == "" {
				merged.VendorIdentifier = info.VendorIdentifier
			}
			if merged.BundleIdentifier == "" {
				merged.BundleIdentifier = info.BundleIdentifier
			}
			if merged.BundleVersion == "" {
				merged.BundleVersion = info.BundleVersion
			}
		}
		return merged
	})
}

// BuildInfoIdentity reports the main module path and version of the running
// binary as bundle identifier and bundle version. Development builds have no
// version.
func BuildInfoIdentity() IdentityProvider {
	return IdentityFunc(buildInfo)
}

var buildInfo = sync.OnceValue(func() IdentityInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return IdentityInfo{}
	}
	identity := IdentityInfo{BundleIdentifier: info.Main.Path}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		identity.BundleVersion = v
	}
	return identity
})

// machineID is replaced in tests.
var machineID = platformMachineID

// VendorIdentity derives a stable identifier for this device that is shared
// by all applications of vendor and differs between vendors. The machine id
// is read once; on platforms without one the identifier is absent.
func VendorIdentity(vendor string) IdentityProvider {
	id := sync.OnceValue(func() string {
		raw, err := machineID()
		if err != nil {
			return ""
		}
		return vendorIdentifier(vendor, raw)
	})
	return IdentityFunc(func() IdentityInfo {
		return IdentityInfo{VendorIdentifier: id()}
	})
}

func vendorIdentifier(vendor, machine string) string {
	machine = strings.TrimSpace(machine)
	if machine == "" {
		return ""
	}
	namespace := uuid.NewSHA1(uuid.NameSpaceDNS, []byte(vendor))
	return strings.ToUpper(uuid.NewSHA1(namespace, []byte(machine)).String())
}

// SystemIdentity combines VendorIdentity and BuildInfoIdentity. The vendor
// defaults to the host part of the module path when empty.
func SystemIdentity(vendor string) IdentityProvider {
	if vendor == "" {
		vendor = vendorFromModule(buildInfo().BundleIdentifier)
	}
	return ChainIdentity(VendorIdentity(vendor), BuildInfoIdentity())
}

// vendorFromModule turns "github.com/acme/app" into "github.com/acme".
func vendorFromModule(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	return path
}
