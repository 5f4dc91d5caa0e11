package rewriter

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeoutInterval is used when Options.TimeoutInterval is not set.
const DefaultTimeoutInterval = 60 * time.Second

// AuthType tells the gateway where to inject the authentication key.
type AuthType string

const (
	// AuthTypeHeader injects the key as a request header.
	AuthTypeHeader AuthType = "HEADER"
	// AuthTypeQuery injects the key as a query parameter.
	AuthTypeQuery AuthType = "QUERY"
)

// ParseAuthType parses HEADER or QUERY (case-insensitive). An empty string
// yields the empty AuthType, meaning "not set".
func ParseAuthType(s string) (AuthType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case string(AuthTypeHeader):
		return AuthTypeHeader, nil
	case string(AuthTypeQuery):
		return AuthTypeQuery, nil
	default:
		return "", fmt.Errorf("unknown authentication type: %q", s)
	}
}

// ProxyInfo marks a request as relayed through an additional intermediary.
type ProxyInfo struct {
	Host string `json:"host" yaml:"host"`
}

// Options carries the optional inputs of a rewrite. The zero value is valid
// and produces only the x-gateway-service-host header. Empty strings count as
// absent.
type Options struct {
	Token                string
	AuthenticationType   AuthType
	AuthenticationKey    string
	AuthenticationPrefix string
	ServiceName          string
	ServiceID            string
	// Proxy, when non-nil, adds the service type and proxy headers.
	Proxy *ProxyInfo
	// Identity is queried once per rewrite. Nil means no identity headers.
	Identity IdentityProvider
	// CachePolicy is passed through to the descriptor.
	CachePolicy CachePolicy
	// TimeoutInterval is passed through to the descriptor. Zero or negative
	// means DefaultTimeoutInterval.
	TimeoutInterval time.Duration
}

// Descriptor is a rewritten request ready to be handed to a transport.
type Descriptor struct {
	// URL points at the gateway; everything except the host name is taken
	// from the target.
	URL *url.URL
	// Headers holds the gateway headers keyed by lowercase wire name.
	Headers map[string]string
	// CachePolicy and TimeoutInterval are for the transport to honor.
	CachePolicy     CachePolicy
	TimeoutInterval time.Duration
}

// TargetHost returns the original destination host carried by the descriptor.
func (d *Descriptor) TargetHost() string {
	return d.Headers[HeaderServiceHost]
}

// Rewrite parses gatewayURL and targetURL and rewrites the target so that it
// is addressed to the gateway host. Only the host of gatewayURL is used.
func Rewrite(gatewayURL, targetURL string, opts Options) (*Descriptor, error) {
	gateway, err := url.Parse(gatewayURL)
	if err != nil {
		return nil, newRewriteError(ErrInvalidGatewayURL, gatewayURL, err)
	}
	target, err := url.Parse(targetURL)
	if err != nil {
		return nil, newRewriteError(ErrInvalidTargetURL, targetURL, err)
	}
	return RewriteURL(gateway, target, opts)
}

// RewriteURL is Rewrite for already parsed URLs. Neither input is modified.
func RewriteURL(gateway, target *url.URL, opts Options) (*Descriptor, error) {
	if gateway == nil || gateway.Hostname() == "" {
		return nil, newRewriteError(ErrInvalidGatewayURL, urlString(gateway), nil)
	}
	if target == nil || target.Hostname() == "" {
		return nil, newRewriteError(ErrInvalidTargetURL, urlString(target), nil)
	}

	gatewayHost := gateway.Hostname()
	targetHost := target.Hostname()

	rewritten, err := replaceHost(target, gatewayHost)
	if err != nil {
		return nil, newRewriteError(ErrURLReconstructionFailed, target.Redacted(), err)
	}

	timeout := opts.TimeoutInterval
	if timeout <= 0 {
		timeout = DefaultTimeoutInterval
	}

	return &Descriptor{
		URL:             rewritten,
		Headers:         buildHeaders(targetHost, opts),
		CachePolicy:     opts.CachePolicy,
		TimeoutInterval: timeout,
	}, nil
}

// replaceHost swaps the host name of target for host, keeping the port, and
// checks that the result survives a serialize/parse round trip.
func replaceHost(target *url.URL, host string) (*url.URL, error) {
	u := *target
	switch port := target.Port(); {
	case port != "":
		u.Host = net.JoinHostPort(host, port)
	case strings.Contains(host, ":"):
		u.Host = "[" + host + "]"
	default:
		u.Host = host
	}

	parsed, err := url.Parse(u.String())
	if err != nil {
		return nil, err
	}
	if parsed.Hostname() != host {
		return nil, fmt.Errorf("host %q did not survive serialization", host)
	}
	return parsed, nil
}

func buildHeaders(targetHost string, opts Options) map[string]string {
	headers := make(map[string]string)
	set := func(name, value string) {
		if value != "" {
			headers[name] = value
		}
	}

	set(HeaderServiceToken, opts.Token)
	set(HeaderServiceAuthType, string(opts.AuthenticationType))
	set(HeaderServiceAuthKey, opts.AuthenticationKey)
	set(HeaderServiceAuthPrefix, opts.AuthenticationPrefix)
	set(HeaderServiceID, opts.ServiceID)
	set(HeaderServiceName, opts.ServiceName)

	if opts.Identity != nil {
		identity := opts.Identity.Identity()
		set(HeaderIdentifierForVendor, identity.VendorIdentifier)
		set(HeaderBundleIdentifier, identity.BundleIdentifier)
		set(HeaderBundleVersion, identity.BundleVersion)
	}

	if opts.Proxy != nil {
		headers[HeaderServiceType] = ServiceTypeGateway
		headers[HeaderServiceProxy] = opts.Proxy.Host
	}

	headers[HeaderServiceHost] = targetHost
	return headers
}

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.Redacted()
}
