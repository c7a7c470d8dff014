package geo

import (
	"context"
	"net"
)

type FakeLocator struct {
	Location Location
	Err      error
	Located  []net.IP
}

func NewFakeLocator(location Location) *FakeLocator {
	return &FakeLocator{Location: location}
}

func (l *FakeLocator) Locate(ctx context.Context, ip net.IP) (Location, error) {
	l.Located = append(l.Located, ip)
	if l.Err != nil {
		return Location{}, l.Err
	}
	return l.Location, nil
}
