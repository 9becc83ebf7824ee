// Package lan advertises and discovers snow globe servers on the local
// network and picks the address to put in share links.
package lan

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sort"
	"time"

	"github.com/hashicorp/mdns"

	"snowglobe/internal/logging"
)

// ServiceType is the mDNS service advertised by snow globe servers.
const ServiceType = "_snowglobe._tcp"

// ErrNoPort is returned when advertising without a port.
var ErrNoPort = errors.New("lan: port must be positive")

// Advertise announces a server listening on port. An empty instance uses
// the host name. Call Shutdown on the returned server to withdraw it.
func Advertise(instance string, port int) (*mdns.Server, error) {
	if port <= 0 {
		return nil, ErrNoPort
	}
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("could not get hostname: %w", err)
		}
		instance = host
	}

	service, err := mdns.NewMDNSService(instance, ServiceType, "", "", port, nil, []string{"snowglobe"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	logging.Logger().Info("lan: advertising", "instance", instance, "service", ServiceType, "port", port)
	return server, nil
}

// Browse queries the network for advertised servers until timeout elapses
// or ctx is done, and returns their host:port addresses sorted and
// deduplicated.
func Browse(ctx context.Context, timeout time.Duration) ([]string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan []string)
	go func() {
		seen := make(map[string]bool)
		for e := range entries {
			if addr := entryAddr(e); addr != "" {
				seen[addr] = true
			}
		}
		out := make([]string, 0, len(seen))
		for addr := range seen {
			out = append(out, addr)
		}
		sort.Strings(out)
		done <- out
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.QueryContext(ctx, params)
	close(entries)
	found := <-done

	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return found, fmt.Errorf("lan: mDNS query: %w", err)
	}
	logging.Logger().Debug("lan: browse finished", "found", len(found))
	return found, nil
}

func entryAddr(e *mdns.ServiceEntry) string {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return ""
	}
	return net.JoinHostPort(e.AddrV4.String(), fmt.Sprint(e.Port))
}
