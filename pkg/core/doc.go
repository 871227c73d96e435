// Package core defines the shared language of the leapcheck system.
//
// This package contains:
//   - Issue and Location (the unit of validation output)
//   - Severity levels and ranking
//   - RuleInfo metadata for documentation/tooling
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
