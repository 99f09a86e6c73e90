package stack

import (
	"fmt"

	"github.com/ztk-sh/ztk/internal/forge"
	"github.com/ztk-sh/ztk/internal/model"
	"github.com/ztk-sh/ztk/internal/ui"
)

// PushOutcome describes what happened to one spec during an update.
type PushOutcome struct {
	Spec     model.PRSpec
	PRNumber int
	URL      string
	Created  bool
	Err      error
}

// PushStack makes the remote match the derived specs: for each spec, the
// branch is moved to the commit and force-pushed, then the PR is created or
// updated. Per-spec failures are logged and skipped so the rest of the
// stack still makes progress; the outcomes carry the per-item errors.
func (c *Client) PushStack(s *model.Stack) []PushOutcome {
	specs := DerivePRSpecs(s)
	outcomes := make([]PushOutcome, 0, len(specs))

	for _, spec := range specs {
		outcome := PushOutcome{Spec: spec}

		pr, created, err := c.pushSpec(spec)
		if err != nil {
			ui.Warningf("skipping %s: %v", spec.BranchName, err)
			outcome.Err = err
		} else {
			outcome.PRNumber = pr.Number
			outcome.URL = pr.HTMLURL
			outcome.Created = created
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (c *Client) pushSpec(spec model.PRSpec) (*forge.PR, bool, error) {
	if err := c.git.UpdateRef(spec.BranchName, spec.SHA); err != nil {
		return nil, false, err
	}
	if err := c.git.Push(c.cfg.Remote, spec.BranchName, true); err != nil {
		return nil, false, err
	}
	return c.CreateOrUpdatePR(spec)
}

// CreateOrUpdatePR makes the forge PR for a spec exist and match it.
// Returns the PR and whether it was newly created.
func (c *Client) CreateOrUpdatePR(spec model.PRSpec) (*forge.PR, bool, error) {
	existing, err := c.forge.FindOpenPR(spec.BranchName)
	if err != nil {
		return nil, false, err
	}

	if existing == nil {
		pr, err := c.forge.CreatePR(forge.CreatePRRequest{
			Title: spec.Title,
			Body:  spec.Body,
			Head:  spec.BranchName,
			Base:  spec.BaseRef,
		})
		if err != nil {
			return nil, false, err
		}
		return pr, true, nil
	}

	opts := forge.UpdatePROptions{}
	if existing.Title != spec.Title {
		opts.Title = &spec.Title
	}
	if existing.Body != spec.Body {
		opts.Body = &spec.Body
	}
	if existing.Base.Ref != spec.BaseRef {
		opts.Base = &spec.BaseRef
	}
	if err := c.forge.UpdatePR(existing.Number, opts); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// PRStatus pairs a derived spec with whatever open PR currently exists for
// its branch. PR is nil for specs not yet pushed.
type PRStatus struct {
	Spec model.PRSpec
	PR   *forge.PR
}

// StatusReport derives the specs and annotates each with its open PR.
func (c *Client) StatusReport(s *model.Stack) ([]PRStatus, error) {
	specs := DerivePRSpecs(s)
	statuses := make([]PRStatus, 0, len(specs))

	for _, spec := range specs {
		pr, err := c.forge.FindOpenPR(spec.BranchName)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, PRStatus{Spec: spec, PR: pr})
	}
	return statuses, nil
}

// PRFeedback is the review feedback for one open PR in the stack.
type PRFeedback struct {
	Status PRStatus
	Items  []model.FeedbackItem
}

// StackFeedback collects review feedback for every open PR in the stack,
// bottom first. Specs without an open PR are omitted.
func (c *Client) StackFeedback(s *model.Stack) ([]PRFeedback, error) {
	statuses, err := c.StatusReport(s)
	if err != nil {
		return nil, err
	}

	var feedback []PRFeedback
	for _, status := range statuses {
		if status.PR == nil {
			continue
		}
		items, err := c.forge.Feedback(status.PR.Number)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch feedback for PR #%d: %w", status.PR.Number, err)
		}
		feedback = append(feedback, PRFeedback{Status: status, Items: items})
	}
	return feedback, nil
}
