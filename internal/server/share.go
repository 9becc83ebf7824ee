package server

import (
	"net"
	"net/url"
	"strings"

	"snowglobe/internal/lan"
)

// Scheme is the custom URL scheme that opens a submission in the desktop
// viewer.
const Scheme = "snowglobe"

// ShareURL joins base and a short id.
func ShareURL(base, shortID string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(shortID)
}

// LANBaseURL returns http://<outgoing ip>:<port> for a listen address such
// as ":8080". A listen address with an explicit host keeps that host.
func LANBaseURL(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		host, port = "", "80"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = lan.OutgoingIP()
	}
	return "http://" + net.JoinHostPort(host, port)
}

// ViewerLink returns the snowglobe:// link for a server address and short
// id.
func ViewerLink(hostport, shortID string) string {
	return Scheme + "://" + hostport + "/" + url.PathEscape(shortID)
}

// ParseViewerLink splits a snowglobe:// link into the server base URL and
// the short id.
func ParseViewerLink(link string) (base, shortID string, ok bool) {
	u, err := url.Parse(link)
	if err != nil || u.Scheme != Scheme || u.Host == "" {
		return "", "", false
	}
	shortID = strings.Trim(u.Path, "/")
	if shortID == "" || strings.Contains(shortID, "/") {
		return "", "", false
	}
	return "http://" + u.Host, shortID, true
}
