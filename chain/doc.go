// Package chain defines the clock and scheduler capabilities the engine
// needs from its hosting environment, plus Sim, an in-process backend
// with a fake clock and manual height used by tests, the example, and
// the loadtest tool.
//
// A production deployment implements Clock and Scheduler against the
// real host (block height, delayed self-messages); the engine never
// talks to the host directly.
package chain
