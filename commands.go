package bloomd

// CreateOptions carries pass-through options for the create verb. Keys are
// not interpreted by the client; the server recognizes "prob", "capacity",
// and "in_memory". Insertion order has no wire meaning.
type CreateOptions map[string]string

func buildCreateArgs(filterName string, opts CreateOptions) []string {
	args := make([]string, 0, 2+len(opts))
	args = append(args, "create", filterName)
	for k, v := range opts {
		args = append(args, k+"="+v)
	}
	return args
}

func wrapBool(cb func(bool, error)) Callback {
	if cb == nil {
		return nil
	}
	return func(err error, value interface{}) {
		if err != nil {
			cb(false, err)
			return
		}
		cb(value.(bool), nil)
	}
}

func wrapBoolList(cb func(map[string]bool, error)) Callback {
	if cb == nil {
		return nil
	}
	return func(err error, value interface{}) {
		if err != nil {
			cb(nil, err)
			return
		}
		cb(value.(map[string]bool), nil)
	}
}

func wrapVoid(cb func(error)) Callback {
	if cb == nil {
		return nil
	}
	return func(err error, _ interface{}) {
		cb(err)
	}
}

func wrapFilterList(cb func([]*FilterInfo, error)) Callback {
	if cb == nil {
		return nil
	}
	return func(err error, value interface{}) {
		if err != nil {
			cb(nil, err)
			return
		}
		cb(value.([]*FilterInfo), nil)
	}
}

func wrapInfo(cb func(*FilterInfo, error)) Callback {
	if cb == nil {
		return nil
	}
	return func(err error, value interface{}) {
		if err != nil {
			cb(nil, err)
			return
		}
		cb(value.(*FilterInfo), nil)
	}
}

// Create creates a new filter. "Exists" is treated the same as "Done": the
// callback receives (true, nil) either way. Create also releases
// filterName's hold queue on completion, covering the case where user code
// explicitly creates a filter that a held *Safe sequence is waiting on.
func (c *Client) Create(filterName string, opts CreateOptions, cb func(bool, error)) {
	boolCb := wrapBool(cb)
	cmd := &Command{
		Verb:         "create",
		Arguments:    buildCreateArgs(filterName, opts),
		FilterName:   filterName,
		ExpectedType: RespCreateConfirmation,
	}
	cmd.callback = func(err error, value interface{}) {
		if boolCb != nil {
			boolCb(err, value)
		}
		c.releaseHoldQueue(filterName)
	}
	c.submit(cmd)
}

// Drop deletes a filter. A missing filter is reported as success.
func (c *Client) Drop(filterName string, cb func(error)) {
	cmd := &Command{
		Verb:         "drop",
		Arguments:    []string{"drop", filterName},
		FilterName:   filterName,
		ExpectedType: RespDropConfirmation,
		callback:     wrapDropVoid(cb),
	}
	c.submit(cmd)
}

func wrapDropVoid(cb func(error)) Callback {
	if cb == nil {
		return nil
	}
	return func(err error, _ interface{}) {
		cb(err)
	}
}

// CloseFilter closes a filter's in-memory handle on the server, without
// deleting it. Named CloseFilter, not Close, to avoid colliding with the
// Client's own lifecycle (see Dispose).
func (c *Client) CloseFilter(filterName string, cb func(error)) {
	cmd := &Command{
		Verb:         "close",
		Arguments:    []string{"close", filterName},
		FilterName:   filterName,
		ExpectedType: RespConfirmation,
		callback:     wrapVoid(cb),
	}
	c.submit(cmd)
}

// Clear deletes a filter's data while keeping it registered.
func (c *Client) Clear(filterName string, cb func(error)) {
	cmd := &Command{
		Verb:         "clear",
		Arguments:    []string{"clear", filterName},
		FilterName:   filterName,
		ExpectedType: RespConfirmation,
		callback:     wrapVoid(cb),
	}
	c.submit(cmd)
}

// Flush flushes a filter to disk, or every filter when filterName is
// empty.
func (c *Client) Flush(filterName string, cb func(error)) {
	args := []string{"flush"}
	if filterName != "" {
		args = append(args, filterName)
	}
	cmd := &Command{
		Verb:         "flush",
		Arguments:    args,
		FilterName:   filterName,
		ExpectedType: RespConfirmation,
		callback:     wrapVoid(cb),
	}
	c.submit(cmd)
}

// List returns every filter whose name has the given prefix, or every
// filter when prefix is empty.
func (c *Client) List(prefix string, cb func([]*FilterInfo, error)) {
	args := []string{"list"}
	if prefix != "" {
		args = append(args, prefix)
	}
	cmd := &Command{
		Verb:         "list",
		Arguments:    args,
		ExpectedType: RespFilterList,
		callback:     wrapFilterList(cb),
	}
	c.submit(cmd)
}

// Info returns a filter's metadata and usage counters.
func (c *Client) Info(filterName string, cb func(*FilterInfo, error)) {
	cmd := &Command{
		Verb:         "info",
		Arguments:    []string{"info", filterName},
		FilterName:   filterName,
		ExpectedType: RespInfo,
		callback:     wrapInfo(cb),
	}
	c.submit(cmd)
}

// Check reports whether key is (probably) present in filterName.
func (c *Client) Check(filterName, key string, cb func(bool, error)) {
	cmd := &Command{
		Verb:         "check",
		Arguments:    []string{"check", filterName, key},
		FilterName:   filterName,
		ExpectedType: RespBool,
		callback:     wrapBool(cb),
	}
	c.submit(cmd)
}

// Set adds key to filterName, reporting whether it was already present.
func (c *Client) Set(filterName, key string, cb func(bool, error)) {
	cmd := &Command{
		Verb:         "set",
		Arguments:    []string{"set", filterName, key},
		FilterName:   filterName,
		ExpectedType: RespBool,
		callback:     wrapBool(cb),
	}
	c.submit(cmd)
}

// Multi checks many keys against filterName in one round trip.
func (c *Client) Multi(filterName string, keys []string, cb func(map[string]bool, error)) {
	args := make([]string, 0, 2+len(keys))
	args = append(args, "multi", filterName)
	args = append(args, keys...)
	cmd := &Command{
		Verb:         "multi",
		Arguments:    args,
		FilterName:   filterName,
		ExpectedType: RespBoolList,
		Keys:         keys,
		callback:     wrapBoolList(cb),
	}
	c.submit(cmd)
}

// Bulk sets many keys in filterName in one round trip.
func (c *Client) Bulk(filterName string, keys []string, cb func(map[string]bool, error)) {
	args := make([]string, 0, 2+len(keys))
	args = append(args, "bulk", filterName)
	args = append(args, keys...)
	cmd := &Command{
		Verb:         "bulk",
		Arguments:    args,
		FilterName:   filterName,
		ExpectedType: RespBoolList,
		Keys:         keys,
		callback:     wrapBoolList(cb),
	}
	c.submit(cmd)
}

// SetSafe behaves like Set, except that if filterName does not exist it is
// transparently created (with opts) and the set retried before the
// callback fires. See §4.G.
func (c *Client) SetSafe(filterName, key string, opts CreateOptions, cb func(bool, error)) {
	c.safeCommand(safeSpec{
		verb:         "set",
		filterName:   filterName,
		arguments:    []string{"set", filterName, key},
		expectedType: RespBool,
		createOpts:   opts,
		callback:     wrapBool(cb),
	})
}

// CheckSafe behaves like Check, except that if filterName does not exist
// it is transparently created (with opts) and the check retried before the
// callback fires.
func (c *Client) CheckSafe(filterName, key string, opts CreateOptions, cb func(bool, error)) {
	c.safeCommand(safeSpec{
		verb:         "check",
		filterName:   filterName,
		arguments:    []string{"check", filterName, key},
		expectedType: RespBool,
		createOpts:   opts,
		callback:     wrapBool(cb),
	})
}

// MultiSafe behaves like Multi, except that if filterName does not exist
// it is transparently created (with opts) and the check retried before the
// callback fires.
func (c *Client) MultiSafe(filterName string, keys []string, opts CreateOptions, cb func(map[string]bool, error)) {
	args := make([]string, 0, 2+len(keys))
	args = append(args, "multi", filterName)
	args = append(args, keys...)
	c.safeCommand(safeSpec{
		verb:         "multi",
		filterName:   filterName,
		arguments:    args,
		keys:         keys,
		expectedType: RespBoolList,
		createOpts:   opts,
		callback:     wrapBoolList(cb),
	})
}

// BulkSafe behaves like Bulk, except that if filterName does not exist it
// is transparently created (with opts) and the set retried before the
// callback fires.
func (c *Client) BulkSafe(filterName string, keys []string, opts CreateOptions, cb func(map[string]bool, error)) {
	args := make([]string, 0, 2+len(keys))
	args = append(args, "bulk", filterName)
	args = append(args, keys...)
	c.safeCommand(safeSpec{
		verb:         "bulk",
		filterName:   filterName,
		arguments:    args,
		keys:         keys,
		expectedType: RespBoolList,
		createOpts:   opts,
		callback:     wrapBoolList(cb),
	})
}
