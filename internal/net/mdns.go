package net

import (
	"fmt"
	"os"

	"github.com/hashicorp/mdns"
)

const serviceType = "_inkboard._tcp"

// Advertise announces the viewer endpoint on the LAN. The returned server
// must be shut down on exit.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("net: hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(
		host,
		serviceType,
		"", // default ".local" domain
		"", // default OS hostname
		port,
		nil, // auto-detect IPs
		[]string{"InkBoard viewer"},
	)
	if err != nil {
		return nil, fmt.Errorf("net: mdns service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("net: mdns server: %w", err)
	}
	return server, nil
}

// Browse reports viewer endpoints found on the LAN, returning once the
// lookup window has passed. Lookup never closes the entries channel, so the
// collector is shut down here rather than left ranging forever.
func Browse(found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port))
		}
	}()
	err := mdns.Lookup(serviceType, entries)
	close(entries)
	<-done
	return err
}
