package logx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"ipv4 with port", "203.0.113.77:52110", "203.0.113.0"},
		{"ipv4 bare", "203.0.113.77", "203.0.113.0"},
		{"loopback", "127.0.0.1:8080", "127.0.0.1"},
		{"ipv6", "[2001:db8:1:2:3:4:5:6]:443", "2001:db8:1:2::"},
		{"garbage", "not-an-ip", "unknown_ip"},
		{"empty", "", "unknown_ip"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, anonymizeIP(tc.in))
		})
	}
}
