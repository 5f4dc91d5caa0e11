package rewriter

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Metadata returns the gateway headers as gRPC metadata.
func (d *Descriptor) Metadata() metadata.MD {
	return metadata.New(d.Headers)
}

// UnaryClientInterceptor attaches the gateway headers to every unary call.
// Gateway keys already present in the outgoing metadata are replaced.
func (d *Descriptor) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		return invoker(d.outgoingContext(ctx), method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor attaches the gateway headers to every stream.
func (d *Descriptor) StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		return streamer(d.outgoingContext(ctx), desc, cc, method, opts...)
	}
}

func (d *Descriptor) outgoingContext(ctx context.Context) context.Context {
	md, ok := metadata.FromOutgoingContext(ctx)
	if !ok {
		md = metadata.MD{}
	}
	for name, value := range d.Headers {
		md.Set(name, value)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

// ParseMetadata extracts the gateway headers present in md.
func ParseMetadata(md metadata.MD) map[string]string {
	out := make(map[string]string)
	for _, name := range HeaderNames() {
		if values := md.Get(name); len(values) > 0 {
			out[name] = values[0]
		}
	}
	return out
}

// IncomingHeaderMatcher lets a grpc-gateway mux pass the gateway headers to
// gRPC handlers under their wire names. Other headers use the runtime default.
func IncomingHeaderMatcher() runtime.HeaderMatcherFunc {
	return func(key string) (string, bool) {
		if IsGatewayHeader(key) {
			return strings.ToLower(key), true
		}
		return runtime.DefaultHeaderMatcher(key)
	}
}

// ServeMuxOption installs IncomingHeaderMatcher on a grpc-gateway mux.
func ServeMuxOption() runtime.ServeMuxOption {
	return runtime.WithIncomingHeaderMatcher(IncomingHeaderMatcher())
}
