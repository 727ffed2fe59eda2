package misc

import (
	"errors"
	"net"
)

var ErrNoLocalAddress = errors.New("no non-loopback interface with an ipv4 address")

// GetFreePort asks the kernel for an unused tcp port on the loopback interface.
func GetFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}

	port := l.Addr().(*net.TCPAddr).Port

	err = l.Close()
	if err != nil {
		return 0, err
	}

	return port, nil
}

// GetLocalAddress finds the first ipv4 address of an interface that is up and not a loop back.
func GetLocalAddress() (string, error) {
	networkInterfaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}

	for _, elt := range networkInterfaces {
		if elt.Flags&net.FlagLoopback != 0 || elt.Flags&net.FlagUp == 0 {
			continue
		}
		addresses, err := elt.Addrs()
		if err != nil {
			return "", err
		}

		for _, addr := range addresses {
			if ip, ok := addr.(*net.IPNet); ok {
				if ip4 := ip.IP.To4(); len(ip4) == net.IPv4len {
					return ip4.String(), nil
				}
			}
		}
	}

	return "", ErrNoLocalAddress
}

// GetLocalAddressOrLoopback falls back to 127.0.0.1 on machines with no usable interface.
func GetLocalAddressOrLoopback() string {
	address, err := GetLocalAddress()
	if err != nil {
		return "127.0.0.1"
	}
	return address
}
