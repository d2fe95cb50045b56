package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/crypto/ssh"

	"github.com/fieldkit/isovt/internal/transport/sshbridge"
	"github.com/fieldkit/isovt/internal/transport/wsbridge"
	"github.com/fieldkit/isovt/vtclient"
)

type controlFunction uint8

func (c controlFunction) Address() uint8 { return uint8(c) }

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "vtmonitor:", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "path to a TOML config file (default: ./vtclient.toml, or $VTMONITOR_CONFIG)")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	net, closeNet, err := buildTransport(cfg.Transport)
	if err != nil {
		return fmt.Errorf("build transport: %w", err)
	}
	defer closeNet()

	logger := vtclient.NoopLogger{}
	client, err := vtclient.NewClient(net, controlFunction(cfg.Local), controlFunction(cfg.Partner),
		vtclient.WithLogger(logger),
		vtclient.WithContext(ctx),
		vtclient.WithRequiredMemory(cfg.RequiredMemory),
	)
	if err != nil {
		return fmt.Errorf("build client: %w", err)
	}

	if cfg.Pool.File != "" {
		bytes, err := os.ReadFile(cfg.Pool.File)
		if err != nil {
			return fmt.Errorf("read pool file %s: %w", cfg.Pool.File, err)
		}
		client.SetObjectPool(cfg.Pool.Index, vtclient.VTVersion(cfg.Pool.Version), bytes)
	}

	if err := client.Initialize(true); err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}
	defer client.Terminate()

	m := newModel(client)
	p := tea.NewProgram(m, tea.WithContext(ctx))

	unsub := m.wireEvents(p)
	defer func() {
		for _, fn := range unsub {
			fn()
		}
	}()

	_, err = p.Run()
	return err
}

func buildTransport(cfg transportConfig) (vtclient.NetworkManager, func(), error) {
	switch cfg.Kind {
	case "ws":
		if cfg.WS.URL == "" {
			return nil, nil, fmt.Errorf("transport.ws.url is required for transport.kind = \"ws\"")
		}
		bridge, err := wsbridge.Dial(cfg.WS.URL)
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
		bridge, err := sshbridge.New(session)
		if err != nil {
			sshClient.Close()
			return nil, nil, err
		}
		return bridge, func() { bridge.Close(); sshClient.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown transport.kind %q (want \"ws\" or \"ssh\")", cfg.Kind)
	}
}
