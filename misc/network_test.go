package misc

import (
	"fmt"
	"net"
	"testing"
)

func TestGetFreePort(t *testing.T) {
	port, err := GetFreePort()
	if err != nil {
		t.Fatalf("GetFreePort: %v", err)
	}
	if port <= 0 || port > 65535 {
		t.Fatalf("Expected a valid port, got %d", port)
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		t.Fatalf("Expected port %d to be free: %v", port, err)
	}
	listener.Close()
}

func TestGetLocalAddressOrLoopback(t *testing.T) {
	address := GetLocalAddressOrLoopback()
	ip := net.ParseIP(address)
	if ip == nil || ip.To4() == nil {
		t.Errorf("Expected an ipv4 address, got %q", address)
	}
}
