package rpc

import (
	"errors"
	"fmt"
	"net/rpc"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
)

var (
	ErrNotConnected = errors.New("not connected")
	ErrCallTimeout  = errors.New("call timed out")
)

// TcpClient is one connection to a TcpServer. Calls on it are not safe to share with Connect or Disconnect.
type TcpClient struct {
	client        *rpc.Client
	serverAddress string

	// CallTimeout bounds each call when positive. The connection stays usable after a timeout.
	CallTimeout time.Duration
	Logger      bslogger.Logger
	Name        string
}

func NewTcpClient(serverAddress string, name string) *TcpClient {
	return &TcpClient{
		serverAddress: serverAddress,
		Name:          name,
		Logger:        bslogger.NewLogger(name, bslogger.Normal, nil),
	}
}

func (tc *TcpClient) ServerAddress() string {
	return tc.serverAddress
}

func (tc *TcpClient) Connected() bool {
	return tc.client != nil
}

func (tc *TcpClient) Connect() error {
	if tc.Connected() {
		tc.Logger.Warningf("%s is already connected to %s", tc.Name, tc.serverAddress)
		return nil
	}

	client, err := rpc.Dial("tcp", tc.serverAddress)
	if err != nil {
		return fmt.Errorf("%s could not reach %s - %w", tc.Name, tc.serverAddress, err)
	}
	tc.client = client
	tc.Logger.Infof("%s connected to %s", tc.Name, tc.serverAddress)
	return nil
}

// Call invokes method ("Service.Method") and waits for the reply or for CallTimeout to pass. Failures are returned,
// not logged, so a caller drawing on the terminal decides where they are shown.
func (tc *TcpClient) Call(method string, request interface{}, reply interface{}) error {
	if !tc.Connected() {
		return fmt.Errorf("%w: %s calling %s on %s", ErrNotConnected, tc.Name, method, tc.serverAddress)
	}

	startTime := time.Now()
	call := tc.client.Go(method, request, reply, make(chan *rpc.Call, 1))

	var timeout <-chan time.Time
	if tc.CallTimeout > 0 {
		timer := time.NewTimer(tc.CallTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-call.Done:
	case <-timeout:
		return fmt.Errorf("%w: %s after %s", ErrCallTimeout, method, tc.CallTimeout)
	}

	if call.Error != nil {
		return call.Error
	}
	tc.Logger.Debugf("%s %s answered in %s", tc.serverAddress, method, time.Since(startTime))
	return nil
}

func (tc *TcpClient) Disconnect() error {
	if !tc.Connected() {
		return fmt.Errorf("%w: %s has no connection to %s to close", ErrNotConnected, tc.Name, tc.serverAddress)
	}

	err := tc.client.Close()
	tc.client = nil
	if err != nil {
		tc.Logger.Errorf("%s closing connection to %s - %s", tc.Name, tc.serverAddress, err)
		return err
	}
	tc.Logger.Infof("%s disconnected from %s", tc.Name, tc.serverAddress)
	return nil
}
