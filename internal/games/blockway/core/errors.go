package core

import "fmt"

// ConfigError reports malformed or incomplete level data. It is surfaced at
// load time and is fatal to that level; the rule engine never sees one.
type ConfigError struct {
	Code    string
	Message string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// InvalidIntentError reports a malformed direction or an intent delivered
// after the level reached a terminal outcome. The call is rejected and the
// state left unchanged.
type InvalidIntentError struct {
	Reason string
}

func (e InvalidIntentError) Error() string {
	return "invalid intent: " + e.Reason
}

// InvariantError reports a post-resolution invariant violation (actor
// overlap, out-of-bounds position, actor on a wall). It indicates a rule
// engine defect rather than bad input; the simulation halts.
type InvariantError struct {
	Detail string
}

func (e InvariantError) Error() string {
	return "invariant violation: " + e.Detail
}
