package httpapi

import (
	"net/http"
	"net/netip"
	"strings"
)

// Checked in order; RemoteAddr is the last resort.
var (
	clientIPHeaders      = []string{"X-Forwarded-For", "X-Real-IP", "Fly-Client-IP"}
	clientCountryHeaders = []string{"X-Vercel-IP-Country", "CF-IPCountry", "Fly-Client-Country"}
)

const unknownCountry = "ZZ"

func clientIP(r *http.Request) string {
	for _, name := range clientIPHeaders {
		if addr, ok := parseClientAddr(r.Header.Get(name)); ok {
			return addr.String()
		}
	}
	if addr, ok := parseClientAddr(r.RemoteAddr); ok {
		return addr.String()
	}
	return ""
}

func clientCountry(r *http.Request) string {
	for _, name := range clientCountryHeaders {
		if code, ok := countryCode(r.Header.Get(name)); ok {
			return code
		}
	}
	return unknownCountry
}

// parseClientAddr takes the first hop of a forwarded list, with or without a port.
func parseClientAddr(raw string) (netip.Addr, bool) {
	first, _, _ := strings.Cut(raw, ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return netip.Addr{}, false
	}
	if ap, err := netip.ParseAddrPort(first); err == nil {
		return ap.Addr().Unmap(), true
	}
	addr, err := netip.ParseAddr(strings.Trim(first, "[]"))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

func countryCode(raw string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 2 || strings.Trim(code, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") != "" {
		return "", false
	}
	return code, true
}
