package bloomd

// safeSpec describes one *Safe invocation: the original command to try,
// and what to do if the server reports the filter is missing.
type safeSpec struct {
	verb         string
	filterName   string
	arguments    []string
	keys         []string
	expectedType ResponseType
	createOpts   CreateOptions
	callback     Callback
}

// safeCommand runs the Safe-Command Coordinator procedure (§4.G). It
// submits spec's command, then — in the same critical section, so nothing
// can interleave — registers the filter's hold queue. The ordering avoids
// the self-blocking paradox described in DESIGN.md Open Question (d): the
// command that owns a hold queue is never captured by it, because the
// queue does not exist yet at the moment that command is submitted.
func (c *Client) safeCommand(spec safeSpec) {
	original := &Command{
		Verb:         spec.verb,
		Arguments:    spec.arguments,
		FilterName:   spec.filterName,
		ExpectedType: spec.expectedType,
		Keys:         spec.keys,
	}
	original.callback = func(err error, value interface{}) {
		if se, ok := err.(ServerError); ok && string(se) == filterMissingText {
			c.recoverMissingFilter(spec, original)
			return
		}
		spec.callback(err, value)
		c.releaseHoldQueue(spec.filterName)
	}

	c.mu.Lock()
	rejectErr := c.submitLocked(original)
	if rejectErr == nil {
		if _, exists := c.filterHoldQueues[spec.filterName]; !exists {
			c.filterHoldQueues[spec.filterName] = nil
		}
	}
	c.mu.Unlock()

	if rejectErr != nil {
		c.invoke(original, rejectErr, nil)
	}
}

// recoverMissingFilter creates spec.filterName and, once that completes,
// resubmits the original command internally (bypassing the hold-queue
// gate it itself owns). If creation failed, the resubmitted command's
// overrideError is set to the creation failure, so the user sees why
// creation failed instead of a stale "Filter does not exist".
func (c *Client) recoverMissingFilter(spec safeSpec, original *Command) {
	createCmd := &Command{
		Verb:         "create",
		Arguments:    buildCreateArgs(spec.filterName, spec.createOpts),
		FilterName:   spec.filterName,
		ExpectedType: RespCreateConfirmation,
		internal:     true,
	}
	createCmd.callback = func(createErr error, _ interface{}) {
		retry := &Command{
			Verb:          original.Verb,
			Arguments:     original.Arguments,
			FilterName:    original.FilterName,
			ExpectedType:  original.ExpectedType,
			Keys:          original.Keys,
			overrideError: createErr,
			internal:      true,
		}
		retry.callback = func(err error, value interface{}) {
			spec.callback(err, value)
			c.releaseHoldQueue(spec.filterName)
		}
		c.submit(retry)
	}
	c.submit(createCmd)
}

// releaseHoldQueue removes filterName's hold queue, if any, and resubmits
// everything that had been held behind it, in FIFO order, via the normal
// submission path.
func (c *Client) releaseHoldQueue(filterName string) {
	c.mu.Lock()
	held, exists := c.filterHoldQueues[filterName]
	if !exists {
		c.mu.Unlock()
		return
	}
	delete(c.filterHoldQueues, filterName)
	c.mu.Unlock()

	for _, cmd := range held {
		c.submit(cmd)
	}
}
