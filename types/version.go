package types

// Version is the canonical project version.
// The CLI, the run report schema, and the dispatcher request bodies all
// reference this constant (lockstep versioning).
const Version = "0.3.0"
