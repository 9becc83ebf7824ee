package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"snowglobe/internal/client"
	"snowglobe/internal/config"
	"snowglobe/internal/lan"
	"snowglobe/internal/logging"
	"snowglobe/internal/notify"
	"snowglobe/internal/server"
	"snowglobe/internal/store"
	"snowglobe/internal/ui"
)

const usage = `usage: snowglobe [flags] [command]

commands:
  draw                     open the drawing pad (default)
  serve                    run the submission server
  browse                   list snow globe servers on the local network
  snowglobe://host/<id>    open a shared snow globe

flags:
`

// autoServer makes the drawing pad look for a server over mDNS.
const autoServer = "auto"

func main() {
	cfg, rest, err := config.Load("snowglobe", os.Args[1:], os.LookupEnv)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(os.Stderr, usage)
		config.PrintDefaults(os.Stderr)
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "snowglobe:", err)
		os.Exit(2)
	}
	setupLogging(cfg.LogLevel)

	cmd := "draw"
	if len(rest) > 0 {
		cmd = rest[0]
	}

	switch {
	case strings.HasPrefix(cmd, server.Scheme+"://"):
		err = runViewer(cmd)
	case cmd == "serve":
		err = runServer(cfg)
	case cmd == "draw":
		err = runDraw(cfg)
	case cmd == "browse":
		err = runBrowse()
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		logging.Logger().Error("snowglobe: exiting", "error", err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	lvl, _ := logging.ParseLevel(level)
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	logging.SetLogger(l)
	slog.SetDefault(l)
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.Store == config.StoreMemory {
		return store.NewMemory(), nil
	}
	dir, err := cfg.DataPath()
	if err != nil {
		return nil, err
	}
	return store.OpenFile(dir)
}

func runServer(cfg *config.Config) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	var n notify.Notifier = notify.LogNotifier{}
	if cfg.SMTP.Addr != "" {
		n = notify.NewSMTP(cfg.SMTP.Addr, cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password)
	}

	base := cfg.BaseURL
	if base == "" {
		base = server.LANBaseURL(cfg.Listen)
	}
	srv := server.New(st, server.WithNotifier(n), server.WithBaseURL(base))

	if cfg.Advertise {
		if port, err := listenPort(cfg.Listen); err != nil {
			logging.Logger().Warn("snowglobe: not advertising", "error", err)
		} else if mdnsServer, err := lan.Advertise(cfg.Instance, port); err != nil {
			logging.Logger().Warn("snowglobe: not advertising", "error", err)
		} else {
			defer mdnsServer.Shutdown()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx, cfg.Listen)
}

func listenPort(listen string) (int, error) {
	_, port, err := net.SplitHostPort(listen)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(port)
}

func findServer() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	found, err := lan.Browse(ctx, 2*time.Second)
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return "", errors.New("no snow globe server found on the local network")
	}
	return "http://" + found[0], nil
}

func runDraw(cfg *config.Config) error {
	base := cfg.Server
	if base == autoServer {
		found, err := findServer()
		if err != nil {
			return err
		}
		base = found
	}
	logging.Logger().Info("snowglobe: drawing pad", "server", base)
	ui.RunApp(client.New(base))
	return nil
}

func runViewer(link string) error {
	base, shortID, ok := server.ParseViewerLink(link)
	if !ok {
		return fmt.Errorf("invalid link %q", link)
	}
	logging.Logger().Info("snowglobe: viewer", "server", base, "shortid", shortID)
	ui.RunViewer(client.New(base), shortID)
	return nil
}

func runBrowse() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	found, err := lan.Browse(ctx, 3*time.Second)
	if err != nil {
		return err
	}
	for _, addr := range found {
		fmt.Println("http://" + addr)
	}
	return nil
}
