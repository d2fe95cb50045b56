package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh"

	"github.com/fieldkit/isovt/internal/debugserver"
	"github.com/fieldkit/isovt/internal/metrics"
	s3pool "github.com/fieldkit/isovt/internal/poolsource/s3"
	"github.com/fieldkit/isovt/internal/transport/sshbridge"
	"github.com/fieldkit/isovt/internal/transport/wsbridge"
	"github.com/fieldkit/isovt/vtclient"
)

// controlFunction is the CLI's concrete vtclient.ControlFunction, an
// address read straight out of the config file — the same one-liner
// looptest.ControlFunction and sshbridge's remoteControlFunction use.
type controlFunction uint8

func (c controlFunction) Address() uint8 { return uint8(c) }

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Connect to a Virtual Terminal and upload the configured object pool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}
			return runClient(cmd.Context(), cfg, cmd)
		},
	}
	return cmd
}

func runClient(ctx context.Context, cfg *Config, cmd *cobra.Command) error {
	logger, err := newLogger(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	net, closeNet, err := buildTransport(ctx, cfg.Transport, logger)
	if err != nil {
		return fmt.Errorf("build transport: %w", err)
	}
	defer closeNet()

	client, err := vtclient.NewClient(net, controlFunction(cfg.Local), controlFunction(cfg.Partner),
		vtclient.WithLogger(logger),
		vtclient.WithContext(ctx),
		vtclient.WithRequiredMemory(cfg.RequiredMemory),
	)
	if err != nil {
		return fmt.Errorf("build client: %w", err)
	}

	if err := registerPool(ctx, client, cfg.Pool); err != nil {
		return fmt.Errorf("register pool: %w", err)
	}

	stopDebug, err := maybeStartDebugServer(client, cfg.Debug)
	if err != nil {
		return fmt.Errorf("start debug server: %w", err)
	}
	if stopDebug != nil {
		defer stopDebug()
	}

	if err := client.Initialize(true); err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}
	defer client.Terminate()

	fmt.Fprintf(cmd.OutOrStdout(), "vtclient: waiting for %#x to appear on the bus\n", cfg.Partner)

	sigCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	<-sigCtx.Done()

	fmt.Fprintln(cmd.OutOrStdout(), "vtclient: shutting down")
	return nil
}

func newLogger(path string) (vtclient.Logger, error) {
	if path == "" {
		return stderrLogger{}, nil
	}
	return vtclient.NewFileLogger(path)
}

// stderrLogger is the CLI's default Logger, writing "LEVEL: message" lines
// to os.Stderr; unlike vtclient.FileLogger it adds no timestamp.
type stderrLogger struct{}

func (stderrLogger) Debug(format string, args ...interface{}) { logLine("DEBUG", format, args...) }
func (stderrLogger) Info(format string, args ...interface{})  { logLine("INFO", format, args...) }
func (stderrLogger) Error(format string, args ...interface{}) { logLine("ERROR", format, args...) }

func logLine(level, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, level+": "+format+"\n", args...)
}

// buildTransport constructs the one configured NetworkManager and returns
// a close function that tears down whatever connection it opened.
func buildTransport(ctx context.Context, cfg TransportConfig, logger vtclient.Logger) (vtclient.NetworkManager, func(), error) {
	switch cfg.Kind {
	case "ws":
		if cfg.WS.URL == "" {
			return nil, nil, fmt.Errorf("transport.ws.url is required for transport.kind = \"ws\"")
		}
		bridge, err := wsbridge.Dial(cfg.WS.URL, wsbridge.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		return bridge, func() { bridge.Close() }, nil

	case "ssh":
		if cfg.SSH.Host == "" || cfg.SSH.User == "" {
			return nil, nil, fmt.Errorf("transport.ssh.host and transport.ssh.user are required for transport.kind = \"ssh\"")
		}
		sshClient, err := ssh.Dial("tcp", cfg.SSH.Host, &ssh.ClientConfig{
			User:            cfg.SSH.User,
			Auth:            []ssh.AuthMethod{ssh.Password(cfg.SSH.Password)},
			HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("dial %s: %w", cfg.SSH.Host, err)
		}
		session, err := sshClient.NewSession()
		if err != nil {
			sshClient.Close()
			return nil, nil, fmt.Errorf("open session: %w", err)
		}
		bridge, err := sshbridge.New(session, sshbridge.WithLogger(logger))
		if err != nil {
			sshClient.Close()
			return nil, nil, err
		}
		return bridge, func() { bridge.Close(); sshClient.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown transport.kind %q (want \"ws\" or \"ssh\")", cfg.Kind)
	}
}

// registerPool installs cfg's one object pool, either read whole from a
// local file or served on demand from S3.
func registerPool(ctx context.Context, client *vtclient.Client, cfg PoolConfig) error {
	version := vtclient.VTVersion(cfg.Version)

	if cfg.File != "" {
		bytes, err := os.ReadFile(cfg.File)
		if err != nil {
			return fmt.Errorf("read pool file %s: %w", cfg.File, err)
		}
		if !client.SetObjectPool(cfg.Index, version, bytes) {
			return fmt.Errorf("SetObjectPool rejected pool %d (version mismatch or registration window closed)", cfg.Index)
		}
		return nil
	}

	if cfg.S3.Bucket != "" {
		awsCfg, err := config.LoadDefaultConfig(ctx, withRegion(cfg.S3.Region))
		if err != nil {
			return fmt.Errorf("load AWS config: %w", err)
		}
		s3Client := s3.NewFromConfig(awsCfg)
		return s3pool.Register(ctx, client, cfg.Index, version, s3Client, cfg.S3.Bucket, cfg.S3.Key)
	}

	return fmt.Errorf("pool.file or pool.s3.bucket must be set")
}

func withRegion(region string) func(*config.LoadOptions) error {
	return func(o *config.LoadOptions) error {
		if region == "" {
			return nil
		}
		return config.WithRegion(region)(o)
	}
}

func maybeStartDebugServer(client *vtclient.Client, cfg DebugConfig) (func(), error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	var reg *prometheus.Registry
	var collector *metrics.Collector
	if cfg.Metrics {
		reg = prometheus.NewRegistry()
		collector = metrics.Register(reg, client)
	}

	srv := &http.Server{Addr: cfg.Addr, Handler: debugserver.New(client, reg)}
	go srv.ListenAndServe()

	return func() {
		srv.Close()
		if collector != nil {
			collector.Unregister(reg)
		}
	}, nil
}
