package bloomd

import "time"

// scheduleReconnect runs the Reconnect Supervisor (§4.F): give up if the
// attempt ceiling is already reached, otherwise schedule one more attempt
// after a linearly growing delay. Only one reconnect timer is ever
// outstanding at a time.
func (c *Client) scheduleReconnect() {
	c.mu.Lock()
	if c.disposed || c.unavailable {
		c.mu.Unlock()
		return
	}
	if c.reconnectPending {
		c.mu.Unlock()
		return
	}
	if c.maxConnectionAttempts != 0 && c.connectionAttempts >= c.maxConnectionAttempts {
		c.mu.Unlock()
		c.giveUp()
		return
	}

	c.connectionAttempts++
	attempts := c.connectionAttempts
	c.reconnectPending = true
	delay := c.reconnectDelay * time.Duration(attempts)
	c.reconnectTimer = time.AfterFunc(delay, func() {
		c.mu.Lock()
		c.reconnectPending = false
		c.mu.Unlock()
		c.dial()
	})
	c.mu.Unlock()
}

// giveUp transitions the client to the terminal Unavailable state,
// rejecting every queued command (offline, in-flight, and all per-filter
// hold queues) with ErrUnavailable. It is idempotent and emits
// EventUnavailable exactly once.
func (c *Client) giveUp() {
	c.mu.Lock()
	if c.unavailable || c.disposed {
		c.mu.Unlock()
		return
	}
	c.unavailable = true
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
	}

	offline := c.offlineQueue
	c.offlineQueue = nil
	inFlight := c.inFlightQueue
	c.inFlightQueue = nil
	holds := c.filterHoldQueues
	c.filterHoldQueues = make(map[string][]*Command)
	c.mu.Unlock()

	for _, cmd := range offline {
		c.invoke(cmd, ErrUnavailable, nil)
	}
	for _, cmd := range inFlight {
		c.invoke(cmd, ErrUnavailable, nil)
	}
	for _, q := range holds {
		for _, cmd := range q {
			c.invoke(cmd, ErrUnavailable, nil)
		}
	}

	c.log.Warnw("giving up reconnecting, client is now unavailable", "addr", c.Addr)
	c.emit(EventUnavailable, ErrUnavailable)
}
