package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bhatti/gateway-rewriter/rewriter"
)

type flags struct {
	configFile     string
	gateway        string
	token          string
	authType       string
	authKey        string
	authPrefix     string
	serviceName    string
	serviceID      string
	proxy          string
	cachePolicy    string
	timeout        time.Duration
	detectIdentity bool
	vendor         string
	redact         bool
	logLevel       string
}

// output is the JSON form of a rewritten descriptor
type output struct {
	URL         string               `json:"url"`
	Headers     map[string]string    `json:"headers"`
	CachePolicy rewriter.CachePolicy `json:"cache_policy"`
	Timeout     string               `json:"timeout"`
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "gateway-rewrite [flags] <target-url>",
		Short: "Rewrite a request URL so it is routed through a gateway",
		Long: "Prints the URL and x-gateway-* headers a client would send to the gateway " +
			"instead of calling the target URL directly. Nothing is sent.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(f.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer logger.Sync()

			return run(cmd, f, args[0], logger)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.configFile, "config", "c", "", "YAML or JSON config file")
	fs.StringVarP(&f.gateway, "gateway", "g", "", "gateway URL (overrides config)")
	fs.StringVar(&f.token, "token", "", "gateway service token")
	fs.StringVar(&f.authType, "auth-type", "", "authentication type: HEADER or QUERY")
	fs.StringVar(&f.authKey, "auth-key", "", "authentication key")
	fs.StringVar(&f.authPrefix, "auth-prefix", "", "authentication prefix, e.g. \"Bearer \"")
	fs.StringVar(&f.serviceName, "service-name", "", "service name")
	fs.StringVar(&f.serviceID, "service-id", "", "service id")
	fs.StringVar(&f.proxy, "proxy", "", "relay the request through this proxy host")
	fs.StringVar(&f.cachePolicy, "cache-policy", "", "protocol, reload, reload-all, cache-else-load or cache-only")
	fs.DurationVar(&f.timeout, "timeout", 0, "timeout interval (default 60s)")
	fs.BoolVar(&f.detectIdentity, "detect-identity", false, "add vendor and bundle identity of this machine and binary")
	fs.StringVar(&f.vendor, "vendor", "", "vendor namespace for the vendor identifier")
	fs.BoolVar(&f.redact, "redact", false, "mask token and key values in the output")
	fs.StringVar(&f.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	return cmd
}

func run(cmd *cobra.Command, f *flags, target string, logger *zap.Logger) error {
	config := &rewriter.Config{}
	if f.configFile != "" {
		loaded, err := rewriter.LoadConfigFromFile(f.configFile)
		if err != nil {
			return err
		}
		config = loaded
		logger.Debug("loaded config", zap.String("file", f.configFile))
	}
	applyFlags(cmd, f, config)

	opts, err := config.Options()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	desc, err := rewriter.Rewrite(config.Gateway, target, opts)
	if err != nil {
		return err
	}
	logger.Info("rewrote request",
		zap.String("target_host", desc.TargetHost()),
		zap.String("gateway_url", desc.URL.Redacted()),
		zap.Int("headers", len(desc.Headers)),
	)

	out := output{
		URL:         desc.URL.String(),
		Headers:     desc.Headers,
		CachePolicy: desc.CachePolicy,
		Timeout:     desc.TimeoutInterval.String(),
	}
	if f.redact {
		out.URL = desc.URL.Redacted()
		out.Headers = desc.RedactedHeaders()
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// applyFlags overrides config values with the flags set on the command line
func applyFlags(cmd *cobra.Command, f *flags, config *rewriter.Config) {
	changed := cmd.Flags().Changed

	if changed("gateway") {
		config.Gateway = f.gateway
	}
	if changed("token") {
		config.Token = f.token
	}
	if changed("service-name") {
		config.ServiceName = f.serviceName
	}
	if changed("service-id") {
		config.ServiceID = f.serviceID
	}
	if changed("auth-type") || changed("auth-key") || changed("auth-prefix") {
		if config.Authentication == nil {
			config.Authentication = &rewriter.AuthConfig{}
		}
		if changed("auth-type") {
			config.Authentication.Type = f.authType
		}
		if changed("auth-key") {
			config.Authentication.Key = f.authKey
		}
		if changed("auth-prefix") {
			config.Authentication.Prefix = f.authPrefix
		}
	}
	if changed("proxy") {
		config.Proxy = &rewriter.ProxyInfo{Host: f.proxy}
	}
	if changed("cache-policy") {
		config.CachePolicy = f.cachePolicy
	}
	if changed("timeout") {
		config.Timeout = f.timeout.String()
	}
	if f.detectIdentity {
		if config.Identity == nil {
			config.Identity = &rewriter.IdentityConfig{}
		}
		config.Identity.Detect = true
		if f.vendor != "" {
			config.Identity.Vendor = f.vendor
		}
	}
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core), nil
}
