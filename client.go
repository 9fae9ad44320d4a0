package bloomd

import (
	"net"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Fixed settings.
const (
	defaultHost           = "127.0.0.1"
	defaultPort           = 8673
	defaultReconnectDelay = 160 * time.Millisecond
	dialTimeout           = 2 * time.Second
	writeQueueCapacity    = 256
	readBufferSize        = 4096
)

// Config configures a Client. The zero value is valid: NewClient fills in
// the documented defaults for any field left unset.
type Config struct {
	// Host defaults to "127.0.0.1".
	Host string
	// Port defaults to 8673.
	Port int
	// Debug raises the Client's logger to debug level.
	Debug bool
	// ReconnectDelay is the linear-backoff unit: the n-th reconnect
	// attempt waits ReconnectDelay*n. Defaults to 160ms.
	ReconnectDelay time.Duration
	// MaxConnectionAttempts caps reconnect attempts before the client
	// becomes permanently Unavailable. Zero means unlimited.
	MaxConnectionAttempts int
	// MaxErrors caps the internal-error counter (§7.3) before the client
	// becomes permanently Unavailable. Zero means unlimited.
	MaxErrors int
}

func normalizeAddr(host string, port int) string {
	if host == "" {
		host = defaultHost
	}
	if port == 0 {
		port = defaultPort
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Client manages one connection to a bloomd service, pipelining commands
// across it and reconnecting automatically until disposed or made
// permanently unavailable. A Client is safe for concurrent use: all public
// methods may be called from any number of goroutines simultaneously.
type Client struct {
	// Addr is the normalized service address in use. Read-only.
	Addr string

	reconnectDelay        time.Duration
	maxConnectionAttempts int
	maxErrors             int

	log *zap.SugaredLogger

	mu sync.Mutex

	conn     net.Conn
	writeCh  chan []byte
	connGen  uint64
	disposed bool

	buffering   bool
	unavailable bool

	offlineQueue     []*Command
	inFlightQueue    []*Command
	filterHoldQueues map[string][]*Command

	commandsSent       uint64
	errorCount         int
	connectionAttempts int
	reconnectPending   bool
	reconnectTimer     *time.Timer

	events chan Event
}

// NewClient launches a managed connection to a bloomd service address.
// Construction never blocks on the network: the first connection attempt
// runs in the background, and commands submitted before it succeeds are
// buffered (see §4.J, testable property 3).
func NewClient(cfg Config) *Client {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = defaultReconnectDelay
	}

	c := &Client{
		Addr:                  normalizeAddr(cfg.Host, cfg.Port),
		reconnectDelay:        cfg.ReconnectDelay,
		maxConnectionAttempts: cfg.MaxConnectionAttempts,
		maxErrors:             cfg.MaxErrors,
		log:                   newLogger(cfg.Debug),
		buffering:             true,
		filterHoldQueues:      make(map[string][]*Command),
		events:                make(chan Event, eventBufferSize),
	}

	go c.dial()

	return c
}

// Dispose permanently shuts the Client down: the socket is closed, no
// further reconnection is attempted, and every command still queued
// (offline, in-flight, or held behind a safe sequence) is failed with
// ErrDisposed, along with any command submitted after this call. Calling
// Dispose more than once has no effect.
func (c *Client) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.connGen++ // invalidate any in-flight reader/writer goroutines
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
	}
	conn := c.conn
	c.conn = nil

	offline := c.offlineQueue
	c.offlineQueue = nil
	inFlight := c.inFlightQueue
	c.inFlightQueue = nil
	holds := c.filterHoldQueues
	c.filterHoldQueues = make(map[string][]*Command)
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	for _, cmd := range offline {
		c.invoke(cmd, ErrDisposed, nil)
	}
	for _, cmd := range inFlight {
		c.invoke(cmd, ErrDisposed, nil)
	}
	for _, q := range holds {
		for _, cmd := range q {
			c.invoke(cmd, ErrDisposed, nil)
		}
	}
	close(c.events)
}

// Reconnect resets the connection-attempt and internal-error counters and
// clears the Unavailable state, then attempts to reconnect immediately.
// It has no effect on a disposed Client.
func (c *Client) Reconnect() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.unavailable = false
	c.connectionAttempts = 0
	c.errorCount = 0
	c.reconnectPending = false
	c.mu.Unlock()

	go c.dial()
}

// invoke calls cmd's callback, if any, outside of the engine's lock.
func (c *Client) invoke(cmd *Command, err error, value interface{}) {
	if cmd.callback != nil {
		cmd.callback(err, value)
	}
}
