package lan

import (
	"net"

	"snowglobe/internal/logging"
)

// probeAddr is dialed over UDP to learn the preferred outgoing interface.
// No packet is sent.
var probeAddr = "8.8.8.8:80"

// OutgoingIP returns the local address other hosts should use to reach this
// machine. Without a default route it falls back to the first non-loopback
// IPv4 interface address, then to 127.0.0.1.
func OutgoingIP() string {
	conn, err := net.Dial("udp", probeAddr)
	if err == nil {
		defer conn.Close()
		if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok && !addr.IP.IsUnspecified() {
			return addr.IP.String()
		}
	}
	return fallbackIP()
}

func fallbackIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		logging.Logger().Warn("lan: cannot list interfaces", "error", err)
		return "127.0.0.1"
	}
	if ip := firstIPv4(addrs); ip != "" {
		return ip
	}
	logging.Logger().Warn("lan: no suitable local IP found, share links will use loopback")
	return "127.0.0.1"
}

func firstIPv4(addrs []net.Addr) string {
	for _, a := range addrs {
		if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ip4 := ipnet.IP.To4(); ip4 != nil {
				return ip4.String()
			}
		}
	}
	return ""
}
