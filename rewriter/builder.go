package rewriter

import "time"

// Builder provides a fluent API for creating Options
type Builder struct {
	opts Options
}

// NewBuilder creates a new options builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithToken sets the gateway service token
func (b *Builder) WithToken(token string) *Builder {
	b.opts.Token = token
	return b
}

// WithAuthentication sets the authentication type, key and prefix. Empty
// values leave the corresponding header out.
func (b *Builder) WithAuthentication(authType AuthType, key, prefix string) *Builder {
	b.opts.AuthenticationType = authType
	b.opts.AuthenticationKey = key
	b.opts.AuthenticationPrefix = prefix
	return b
}

// WithService sets the service name and id
func (b *Builder) WithService(name, id string) *Builder {
	b.opts.ServiceName = name
	b.opts.ServiceID = id
	return b
}

// WithProxy marks requests as relayed through host
func (b *Builder) WithProxy(host string) *Builder {
	b.opts.Proxy = &ProxyInfo{Host: host}
	return b
}

// WithIdentity sets the identity provider
func (b *Builder) WithIdentity(provider IdentityProvider) *Builder {
	b.opts.Identity = provider
	return b
}

// WithCachePolicy sets the cache policy
func (b *Builder) WithCachePolicy(policy CachePolicy) *Builder {
	b.opts.CachePolicy = policy
	return b
}

// WithTimeout sets the timeout interval
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.opts.TimeoutInterval = timeout
	return b
}

// Build returns a copy of the collected options
func (b *Builder) Build() Options {
	opts := b.opts
	if opts.Proxy != nil {
		proxy := *opts.Proxy
		opts.Proxy = &proxy
	}
	return opts
}
