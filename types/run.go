// Package types defines core domain types for the foldrun adapter.
//
//nolint:revive // types is a common Go package naming convention
package types

import "errors"

// RunMeta is the identity of a single managed run.
// Created once when a run begins and immutable thereafter, except for
// Volume, which is filled in by the dispatcher client before the
// pipeline launches.
type RunMeta struct {
	// RunName is the caller-chosen name for this run. Required.
	RunName string

	// ExecutionID identifies the managed execution on the platform.
	ExecutionID string

	// Volume is the opaque handle of the provisioned shared storage
	// volume. Empty until provisioning completes.
	Volume string

	// WorkDir is the shared workspace the pipeline runs in.
	WorkDir string
}

// Validate checks that required run identity fields are present.
func (m *RunMeta) Validate() error {
	if m == nil {
		return errors.New("run metadata is nil")
	}
	if m.RunName == "" {
		return errors.New("run_name is required")
	}
	if m.WorkDir == "" {
		return errors.New("work dir is required")
	}
	return nil
}
