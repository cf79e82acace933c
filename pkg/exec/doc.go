// Package exec runs rendered command lines through the host shell and
// reports their outcome. Run is the synchronous core; Execute wraps it on a
// goroutine and delivers exactly one of two callbacks. A blank command line
// is a skip sentinel and never spawns a process.
package exec
