package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIPIgnoresHeadersFromUntrustedPeer(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.9:4321"
	r.Header.Set("X-Forwarded-For", "198.51.100.1")

	assert.Equal(t, "203.0.113.9", clientIP(r, nil))
}

func TestClientIPHonorsTrustedProxyChain(t *testing.T) {
	trusted := parseTrustedProxyCIDRs([]string{"10.0.0.0/8"})

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.5:4321"
	r.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.7")

	assert.Equal(t, "198.51.100.1", clientIP(r, trusted))
}

func TestClientIPSkipsSpoofedTrustedHops(t *testing.T) {
	trusted := parseTrustedProxyCIDRs([]string{"10.0.0.0/8"})

	// Every hop claims to be a trusted proxy; fall back to the leftmost.
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.5:4321"
	r.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")

	assert.Equal(t, "10.0.0.1", clientIP(r, trusted))
}

func TestClientIPUsesXRealIPFallback(t *testing.T) {
	trusted := parseTrustedProxyCIDRs([]string{"10.0.0.0/8"})

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.5:4321"
	r.Header.Set("X-Real-IP", "198.51.100.7")

	assert.Equal(t, "198.51.100.7", clientIP(r, trusted))
}

func TestParseTrustedProxyCIDRsSkipsInvalid(t *testing.T) {
	out := parseTrustedProxyCIDRs([]string{"10.0.0.0/8", "garbage", "192.168.0.0/16"})
	assert.Len(t, out, 2)
}

func TestParseIPHandlesIPv6(t *testing.T) {
	assert.Equal(t, "2001:db8::1", parseIP("[2001:db8::1]:443").String())
	assert.Nil(t, parseIP("not-an-ip"))
}
