// Package match defines the match record, its set scores and the derived
// outcome.
//
// The outcome is a cached projection of the set list. Every write path goes
// through Normalize or Prepare, which recompute it with Derive, so a record
// read back from storage or an import always satisfies Outcome == Derive(Sets).
package match
