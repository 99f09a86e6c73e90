package stack

import "errors"

// ErrNothingStaged indicates absorb was invoked with an empty index.
var ErrNothingStaged = errors.New("no staged changes to absorb")

// ErrNoMergeablePR indicates no bottom-up prefix of the stack is currently
// safe to merge.
var ErrNoMergeablePR = errors.New("no mergeable PR at the bottom of the stack")

// ErrRebaseConflict indicates a rebase stopped on conflicts and the
// repository was intentionally left mid-rebase. The user must resolve and
// run 'git rebase --continue' (or abort); rolling back automatically would
// lose work that was already folded in.
var ErrRebaseConflict = errors.New("rebase stopped on conflicts: resolve them, then run 'git rebase --continue'")
