// Package parallel runs independent jobs with bounded concurrency.
//
// The validate command uses a WorkerPool to load and check many files at
// once. Results come back in submission order regardless of completion
// order, so reports are deterministic.
package parallel
