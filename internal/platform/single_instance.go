package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	activateCommand = "activate"
	activateTimeout = 2 * time.Second
)

// InstanceGuard holds the single-instance lock. The bound listener doubles
// as the channel later launches use to ask the running copy to come forward.
type InstanceGuard struct {
	listener net.Listener
	address  string
	appName  string
}

// AcquireSingleInstance binds the app's localhost port. A second launch gets
// ErrAlreadyRunning and should call ActivateRunning instead of starting.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, address)
	}
	return &InstanceGuard{listener: listener, address: address, appName: appName}, nil
}

// Serve accepts activation requests until Release and calls onActivate for
// each valid one. onActivate runs on the accept goroutine.
func (guard *InstanceGuard) Serve(onActivate func()) {
	if guard == nil || guard.listener == nil {
		return
	}
	go guard.acceptLoop(onActivate)
}

func (guard *InstanceGuard) acceptLoop(onActivate func()) {
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			return
		}
		if guard.readActivation(conn) && onActivate != nil {
			onActivate()
		}
	}
}

func (guard *InstanceGuard) readActivation(conn net.Conn) bool {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(activateTimeout))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == activationLine(guard.appName)
}

// ActivateRunning asks the instance holding appName's lock to show itself.
func ActivateRunning(appName string) error {
	address := instanceAddress(appName)
	conn, err := net.DialTimeout("tcp", address, activateTimeout)
	if err != nil {
		return fmt.Errorf("activate running instance: %w", err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(activateTimeout))
	if _, err := fmt.Fprintln(conn, activationLine(appName)); err != nil {
		return fmt.Errorf("activate running instance: %w", err)
	}
	return nil
}

// Release frees the single instance lock and stops Serve.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	return guard.listener.Close()
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func activationLine(appName string) string {
	return activateCommand + " " + appName
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
