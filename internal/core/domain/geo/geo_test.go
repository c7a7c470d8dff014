package geo

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPublic(t *testing.T) {
	cases := []struct {
		ip       string
		expected bool
	}{
		{ip: "8.8.8.8", expected: true},
		{ip: "211.234.10.20", expected: true},
		{ip: "2001:4860:4860::8888", expected: true},
		{ip: "127.0.0.1", expected: false},
		{ip: "::1", expected: false},
		{ip: "10.1.2.3", expected: false},
		{ip: "192.168.0.10", expected: false},
		{ip: "172.16.5.4", expected: false},
		{ip: "169.254.1.1", expected: false},
		{ip: "0.0.0.0", expected: false},
	}

	for _, testcase := range cases {
		t.Run(testcase.ip, func(t *testing.T) {
			require.Equal(t, testcase.expected, IsPublic(net.ParseIP(testcase.ip)))
		})
	}

	require.False(t, IsPublic(nil))
}
