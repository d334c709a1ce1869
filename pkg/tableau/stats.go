package tableau

// Statistics summarizes a completed (or aborted) Build, per spec.md §6
// item 7.
type Statistics struct {
	CorrelationID    string
	RuleApplications int
	TotalBranches    int
	OpenBranches     int
	ClosedBranches   int
	MaxBranchSize    int
}
