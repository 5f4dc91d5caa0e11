// Package rewriter turns outbound HTTP requests into requests addressed to a
// fixed gateway host.
//
// The original destination host and optional authentication and identity
// metadata travel as x-gateway-* headers so the gateway can forward the call.
// Call sites keep using their normal URLs; only the descriptor changes.
//
// # Basic Usage
//
//	desc, err := rewriter.Rewrite(
//		"https://gateway.example.com",
//		"https://api.openai.com/v1/models",
//		rewriter.NewBuilder().
//			WithAuthentication(rewriter.AuthTypeHeader, "secret", "Bearer ").
//			Build(),
//	)
//	if err != nil {
//		// do not send the request
//	}
//	req, err := desc.NewRequest(ctx, http.MethodGet, nil)
//
// # Failure Handling
//
// Rewrite never returns a partial descriptor. Errors match one of
// ErrInvalidTargetURL, ErrInvalidGatewayURL or ErrURLReconstructionFailed via
// errors.Is. Callers must treat failure as "do not send"; sending to the
// original host would bypass the gateway.
//
// # HTTP Clients
//
// Transport wraps an http.RoundTripper and rewrites every request it sees:
//
//	client := rewriter.NewClient("https://gateway.example.com", opts, nil)
//	resp, err := client.Get("https://api.openai.com/v1/models")
//
// # gRPC Integration
//
// A descriptor can be attached to outgoing gRPC metadata:
//
//	conn, err := grpc.NewClient(desc.URL.Host,
//		grpc.WithUnaryInterceptor(desc.UnaryClientInterceptor()),
//		grpc.WithStreamInterceptor(desc.StreamClientInterceptor()),
//	)
//
// # Configuration
//
// Options can be built with the fluent Builder or loaded from a YAML/JSON
// file with LoadConfigFromFile.
package rewriter
