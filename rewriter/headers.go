package rewriter

import (
	"net/http"
)

// Header names understood by gateway-compatible servers. These are a
// versioned wire contract and must not change.
const (
	HeaderServiceToken        = "x-gateway-service-token"
	HeaderServiceAuthType     = "x-gateway-service-auth-type"
	HeaderServiceAuthKey      = "x-gateway-service-auth-key"
	HeaderServiceAuthPrefix   = "x-gateway-service-auth-prefix"
	HeaderIdentifierForVendor = "x-gateway-identifier-for-vendor"
	HeaderServiceID           = "x-gateway-service-id"
	HeaderServiceName         = "x-gateway-service-name"
	HeaderBundleIdentifier    = "x-gateway-bundle-identifier"
	HeaderBundleVersion       = "x-gateway-bundle-version"
	HeaderServiceType         = "x-gateway-service-type"
	HeaderServiceProxy        = "x-gateway-service-proxy"
	HeaderServiceHost         = "x-gateway-service-host"
)

// ServiceTypeGateway is sent in HeaderServiceType when the request is relayed
// through a proxy.
const ServiceTypeGateway = "GATEWAY"

// HeaderNames returns every header name of the contract.
func HeaderNames() []string {
	return []string{
		HeaderServiceToken,
		HeaderServiceAuthType,
		HeaderServiceAuthKey,
		HeaderServiceAuthPrefix,
		HeaderIdentifierForVendor,
		HeaderServiceID,
		HeaderServiceName,
		HeaderBundleIdentifier,
		HeaderBundleVersion,
		HeaderServiceType,
		HeaderServiceProxy,
		HeaderServiceHost,
	}
}

// sensitiveHeaders are masked before being logged.
var sensitiveHeaders = map[string]bool{
	HeaderServiceToken:   true,
	HeaderServiceAuthKey: true,
}

// IsGatewayHeader reports whether name belongs to the contract. The
// comparison is case-insensitive.
func IsGatewayHeader(name string) bool {
	_, ok := canonicalNames[http.CanonicalHeaderKey(name)]
	return ok
}

var canonicalNames = func() map[string]string {
	m := make(map[string]string)
	for _, name := range HeaderNames() {
		m[http.CanonicalHeaderKey(name)] = name
	}
	return m
}()

// ParseHeaders extracts the gateway headers present in h, keyed by their
// lowercase wire names. Other headers are ignored.
func ParseHeaders(h http.Header) map[string]string {
	out := make(map[string]string)
	for key, values := range h {
		name, ok := canonicalNames[http.CanonicalHeaderKey(key)]
		if !ok || len(values) == 0 {
			continue
		}
		out[name] = values[0]
	}
	return out
}
