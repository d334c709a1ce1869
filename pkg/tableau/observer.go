package tableau

// Observer is called once per rule application during Build, after the
// triggering signed formula's rule has produced its child branch(es) and
// those have been installed. It is purely a diagnostic hook — spec.md §6
// item 6 — and must not be relied on for engine correctness.
//
// correlationID identifies the Build call this application belongs to —
// the same id reported in Result.Statistics.CorrelationID and, when a
// telemetry.Monitor is attached, in that monitor's log entries, so an
// observer and a log aggregator can be correlated. branchID is the
// branch the rule fired on (and, for an α-rule, the same branch the
// produced signed formulas were appended to). parentBranchID is -1 for
// the root branch. produced is the flattened list of signed formulas
// added across all children.
type Observer func(correlationID string, branchID, parentBranchID int64, ruleName string, triggering SignedFormula, produced []SignedFormula)
