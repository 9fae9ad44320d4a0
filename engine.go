package bloomd

import "net"

// dial attempts one connection to c.Addr. On failure it feeds the
// reconnect supervisor (§4.F); on success it starts the reader and writer
// goroutines for the new connection and runs the drain procedure so
// anything queued while offline starts flowing immediately.
func (c *Client) dial() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	conn, err := net.DialTimeout("tcp", c.Addr, dialTimeout)
	if err != nil {
		c.log.Debugw("dial failed", "addr", c.Addr, "err", err)
		c.onDisconnect(0, err, true)
		return
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.SetNoDelay(true)
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.connGen++
	gen := c.connGen
	c.conn = conn
	writeCh := make(chan []byte, writeQueueCapacity)
	c.writeCh = writeCh
	c.mu.Unlock()

	parser := NewParser()
	go c.writeLoop(conn, writeCh, gen)
	go c.readLoop(conn, parser, gen)

	c.log.Debugw("connected", "addr", c.Addr)
	c.emit(EventConnected, nil)
	c.tryDrain()
}

// writeLoop serially drains ch onto conn, one encoded command at a time,
// standing in for the single-threaded event loop's synchronous write path.
func (c *Client) writeLoop(conn net.Conn, ch chan []byte, gen uint64) {
	for buf := range ch {
		if _, err := conn.Write(buf); err != nil {
			c.onDisconnect(gen, err, false)
			return
		}
		c.tryDrain()
	}
}

// readLoop reads raw bytes off conn, feeds them to parser, and dispatches
// every resulting Frame to handleFrame.
func (c *Client) readLoop(conn net.Conn, parser *Parser, gen uint64) {
	buf := make([]byte, readBufferSize)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			for _, frame := range parser.Feed(buf[:n]) {
				c.handleFrame(frame)
			}
		}
		if err != nil {
			c.onDisconnect(gen, err, false)
			return
		}
	}
}

// onDisconnect handles the loss of a connection, whether from a failed
// dial, a read error, or a write error. skipGenCheck is set only by dial's
// own failure path, which never had a live generation to check against.
// gen guards against the read and write goroutines of the same physical
// connection both reporting the same failure: only the first report acts.
func (c *Client) onDisconnect(gen uint64, err error, skipGenCheck bool) {
	c.mu.Lock()
	if c.disposed || c.unavailable {
		c.mu.Unlock()
		return
	}
	if !skipGenCheck && gen != c.connGen {
		c.mu.Unlock()
		return
	}
	c.connGen++

	c.buffering = true
	inFlight := c.inFlightQueue
	c.inFlightQueue = nil
	conn := c.conn
	c.conn = nil
	ch := c.writeCh
	c.writeCh = nil
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	if ch != nil {
		close(ch)
	}
	for _, cmd := range inFlight {
		c.invoke(cmd, ErrConnectionLost, nil)
	}

	c.log.Debugw("disconnected", "addr", c.Addr, "err", err)
	c.emit(EventDisconnected, err)
	c.scheduleReconnect()
}

// submit runs the Submission procedure (§4.E) for cmd and, if it was
// rejected outright rather than queued, invokes its callback.
func (c *Client) submit(cmd *Command) {
	c.mu.Lock()
	rejectErr := c.submitLocked(cmd)
	c.mu.Unlock()
	if rejectErr != nil {
		c.invoke(cmd, rejectErr, nil)
	}
}

// submitLocked assumes c.mu is held. It returns a non-nil error only when
// the command is rejected outright (not queued anywhere).
func (c *Client) submitLocked(cmd *Command) error {
	if c.disposed {
		return ErrDisposed
	}
	if c.unavailable {
		return ErrUnavailable
	}

	if cmd.FilterName != "" && cmd.Verb != "create" && !cmd.internal {
		if _, held := c.filterHoldQueues[cmd.FilterName]; held {
			c.filterHoldQueues[cmd.FilterName] = append(c.filterHoldQueues[cmd.FilterName], cmd)
			return nil
		}
	}

	if c.buffering {
		c.offlineQueue = append(c.offlineQueue, cmd)
		return nil
	}

	select {
	case c.writeCh <- cmd.encode():
		c.inFlightQueue = append(c.inFlightQueue, cmd)
		c.commandsSent++
	default:
		// The write-queue stands in for the socket's send buffer; a full
		// queue is this model's "write would block" signal.
		c.buffering = true
		c.offlineQueue = append(c.offlineQueue, cmd)
	}
	return nil
}

// tryDrain runs the Drain procedure (§4.E): while buffering, push queued
// offline commands onto the write-queue until it refuses one or the queue
// empties out, in which case buffering clears and a drain event fires.
func (c *Client) tryDrain() {
	c.mu.Lock()
	if !c.buffering {
		c.mu.Unlock()
		return
	}

	for len(c.offlineQueue) > 0 {
		cmd := c.offlineQueue[0]
		select {
		case c.writeCh <- cmd.encode():
			c.offlineQueue = c.offlineQueue[1:]
			c.inFlightQueue = append(c.inFlightQueue, cmd)
			c.commandsSent++
		default:
			c.mu.Unlock()
			return
		}
	}

	c.buffering = false
	c.mu.Unlock()
	c.emit(EventDrain, nil)
}

// handleFrame runs the Receive procedure (§4.E) for one parsed Frame.
func (c *Client) handleFrame(frame Frame) {
	c.mu.Lock()
	if len(c.inFlightQueue) == 0 {
		c.mu.Unlock()
		err := unexpectedServerError(frame.Line)
		c.log.Warnw("frame received with no pending command", "frame", frame)
		c.emit(EventError, err)
		return
	}
	cmd := c.inFlightQueue[0]
	c.inFlightQueue = c.inFlightQueue[1:]
	c.mu.Unlock()

	value, err := decodeFrame(cmd, frame)

	c.mu.Lock()
	if se, ok := err.(ServerError); ok && se.Internal() {
		c.errorCount++
		if c.maxErrors != 0 && c.errorCount >= c.maxErrors {
			c.mu.Unlock()
			c.giveUp()
			c.invoke(cmd, err, value)
			return
		}
	} else if c.errorCount > 0 {
		c.errorCount--
	}
	c.mu.Unlock()

	c.invoke(cmd, err, value)
}
