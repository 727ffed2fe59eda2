package rpc

import (
	"errors"
	"testing"
	"time"
)

type Echo struct{}

type Greeting struct {
	Name string
}

func (e *Echo) Greet(request Greeting, reply *string) error {
	if request.Name == "" {
		return errors.New("no name")
	}
	*reply = "hello " + request.Name
	return nil
}

func (e *Echo) Slow(delay time.Duration, reply *string) error {
	time.Sleep(delay)
	*reply = "late"
	return nil
}

func TestTcpServerAndClient(t *testing.T) {
	server := NewTcpServer(&Echo{}, "127.0.0.1:0", "EchoServer")
	if err := server.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	defer server.Stop()

	client := NewTcpClient(server.Address(), "EchoClient")
	if err := client.Call("Echo.Greet", Greeting{Name: "early"}, new(string)); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Expected ErrNotConnected before connecting, got %v", err)
	}

	if err := client.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	var reply string
	if err := client.Call("Echo.Greet", Greeting{Name: "world"}, &reply); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if reply != "hello world" {
		t.Errorf("Expected %q, got %q", "hello world", reply)
	}
	if err := client.Call("Echo.Greet", Greeting{}, &reply); err == nil {
		t.Error("Expected the service error to reach the client")
	}

	if err := client.Disconnect(); err != nil {
		t.Errorf("Disconnect: %v", err)
	}
	if err := client.Disconnect(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Expected ErrNotConnected on a second disconnect, got %v", err)
	}
	if client.Connected() {
		t.Error("Expected the client to report no connection")
	}
}

func TestTcpClientCallTimeout(t *testing.T) {
	server := NewTcpServer(&Echo{}, "127.0.0.1:0", "EchoServer")
	if err := server.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	defer server.Stop()

	client := NewTcpClient(server.Address(), "EchoClient")
	client.CallTimeout = 20 * time.Millisecond
	if err := client.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer client.Disconnect()

	var late string
	if err := client.Call("Echo.Slow", 500*time.Millisecond, &late); !errors.Is(err, ErrCallTimeout) {
		t.Fatalf("Expected ErrCallTimeout, got %v", err)
	}

	client.CallTimeout = 0
	var reply string
	if err := client.Call("Echo.Greet", Greeting{Name: "again"}, &reply); err != nil || reply != "hello again" {
		t.Errorf("Expected the connection to survive a timeout, got %q, %v", reply, err)
	}
}

func TestTcpServerBadAddress(t *testing.T) {
	server := NewTcpServer(&Echo{}, "not an address", "EchoServer")
	if err := server.Run(); err == nil {
		server.Stop()
		t.Error("Expected an unresolvable address to fail")
	}
}

func TestTcpClientConnectRefused(t *testing.T) {
	server := NewTcpServer(&Echo{}, "127.0.0.1:0", "EchoServer")
	if err := server.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	address := server.Address()
	server.Stop()

	client := NewTcpClient(address, "EchoClient")
	if err := client.Connect(); err == nil {
		client.Disconnect()
		t.Error("Expected connecting to a stopped server to fail")
	}
}
