package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
)

// clientIP resolves the caller's address for rate limiting. Forwarding
// headers are only honored when the direct peer is a trusted proxy, so a
// client cannot spoof its way out of a limit bucket.
func clientIP(r *http.Request, trusted []*net.IPNet) string {
	remoteIP := parseIP(r.RemoteAddr)
	if remoteIP == nil {
		return r.RemoteAddr
	}

	if !containsIP(trusted, remoteIP) {
		return remoteIP.String()
	}

	if ip := fromXForwardedFor(r.Header.Get("X-Forwarded-For"), remoteIP, trusted); ip != "" {
		return ip
	}

	if realIP := parseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); realIP != nil && !containsIP(trusted, realIP) {
		return realIP.String()
	}

	return remoteIP.String()
}

// fromXForwardedFor walks the forwarding chain from the right and returns
// the first hop that is not one of our own proxies.
func fromXForwardedFor(header string, remoteIP net.IP, trusted []*net.IPNet) string {
	if header == "" {
		return ""
	}

	var chain []net.IP
	for _, part := range strings.Split(header, ",") {
		if ip := parseIP(strings.TrimSpace(part)); ip != nil {
			chain = append(chain, ip)
		}
	}
	if len(chain) == 0 {
		return ""
	}

	forwarded := chain
	chain = append(chain, remoteIP)
	for i := len(chain) - 1; i >= 0; i-- {
		if !containsIP(trusted, chain[i]) {
			return chain[i].String()
		}
	}

	return forwarded[0].String()
}

func containsIP(networks []*net.IPNet, ip net.IP) bool {
	for _, network := range networks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func parseIP(addr string) net.IP {
	if addr == "" {
		return nil
	}

	host := addr
	if parsedHost, _, err := net.SplitHostPort(addr); err == nil {
		host = parsedHost
	}

	return net.ParseIP(strings.Trim(host, "[]"))
}

func parseTrustedProxyCIDRs(cidrs []string) []*net.IPNet {
	out := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, network, err := net.ParseCIDR(strings.TrimSpace(cidr))
		if err != nil {
			slog.Warn("Ignoring invalid trusted proxy CIDR", "cidr", cidr, "error", err)
			continue
		}
		out = append(out, network)
	}
	return out
}
