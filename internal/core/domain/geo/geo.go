package geo

import (
	"context"
	"errors"
	"net"
)

var ErrLocationUnavailable = errors.New("location unavailable")

type Location struct {
	Latitude  float64
	Longitude float64
	City      string
	Country   string
}

// Locator resolves an approximate location for a public IP address.
type Locator interface {
	Locate(ctx context.Context, ip net.IP) (Location, error)
}

// IsPublic reports whether the address can be located by a provider.
func IsPublic(ip net.IP) bool {
	if ip == nil {
		return false
	}
	return !(ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsMulticast())
}
