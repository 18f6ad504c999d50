package contract

import "fmt"

// ValidationError marks a raw record that cannot be normalized because
// it lacks a usable identity. Missing optional fields never produce one.
type ValidationError struct {
	Index  int    // position of the record in the input sequence
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record %d rejected: %s", e.Index, e.Reason)
}

// ComputationError marks an invariant violation inside the scoring or
// aggregation pipeline. Given documented defaults it should not occur.
type ComputationError struct {
	Op     string
	Detail string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation failed in %s: %s", e.Op, e.Detail)
}

// CollaboratorError wraps a failure from an external collaborator such
// as the narrative-text service. Callers recover it locally; it never
// fails an analysis run.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("collaborator %s failed: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}
