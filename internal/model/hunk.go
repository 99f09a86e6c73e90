package model

// Hunk is one contiguous change region parsed from a unified diff.
type Hunk struct {
	// File is the path of the file the hunk belongs to (the "b/" side).
	File string

	// OldStart and OldCount describe the replaced range in the old file.
	// OldCount == 0 means a pure insertion with no deleted context; such a
	// hunk has no existing lines to blame and can never be absorbed.
	OldStart int
	OldCount int

	// NewStart and NewCount describe the range in the new file.
	NewStart int
	NewCount int

	// Lines are the raw +/- body lines of the hunk, prefixes included.
	Lines []string
}

// IsPureInsertion reports whether the hunk deletes no existing lines.
func (h Hunk) IsPureInsertion() bool {
	return h.OldCount == 0
}

// BlameResult maps old-file line numbers to the sha of the commit that last
// touched them, covering the range a hunk replaces.
type BlameResult struct {
	// File is the blamed path.
	File string

	// LineOwners maps a 1-indexed line number to a full commit sha.
	LineOwners map[int]string
}

// DistinctOwners returns the deduplicated set of commit shas in the result.
func (b BlameResult) DistinctOwners() []string {
	seen := make(map[string]bool, len(b.LineOwners))
	var owners []string
	for _, sha := range b.LineOwners {
		if !seen[sha] {
			seen[sha] = true
			owners = append(owners, sha)
		}
	}
	return owners
}

// AbsorbTarget groups the hunks attributed to one stack commit. Targets are
// built, consumed, and discarded within a single absorb invocation.
type AbsorbTarget struct {
	// Commit is the stack commit that owns the hunks.
	Commit Commit

	// Hunks are the absorbable hunks attributed to the commit.
	Hunks []Hunk

	// Files is the deduplicated set of files touched by Hunks, in first-seen
	// order. Used for staging and display.
	Files []string
}

// AddHunk appends a hunk and records its file if unseen.
func (t *AbsorbTarget) AddHunk(h Hunk) {
	t.Hunks = append(t.Hunks, h)
	for _, f := range t.Files {
		if f == h.File {
			return
		}
	}
	t.Files = append(t.Files, h.File)
}
