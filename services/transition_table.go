package services

import (
	"fmt"

	"ccaportal/models"
	"ccaportal/pkg/apperrors"
)

// The whole lifecycle is driven by one transition table instead of
// scattered conditionals: a rule names the acting role, the status it may
// request, the precondition on the current status (nil means the role is a
// terminal authority and may set its statuses at any time) and the
// notification the transition fires. ValidateTransitionTable checks the
// table exhaustively and runs at startup and in tests.

// notifySpec selects the side effect a transition triggers.
type notifySpec int

const (
	notifyNone notifySpec = iota
	// notifyIssueToSociety mails the society, naming the issuer, when an
	// Issue status is set with an issue message.
	notifyIssueToSociety
	// notifyReviewToPatron mails the patron a review link when the
	// President advances a submission.
	notifyReviewToPatron
)

// transitionRule is one row of the table.
type transitionRule struct {
	Role           models.ActorRole
	Target         models.SubmissionStatus
	RequireCurrent *models.SubmissionStatus
	Notify         notifySpec
}

func statusPtr(s models.SubmissionStatus) *models.SubmissionStatus { return &s }

var transitionTable = []transitionRule{
	// President acts only while the submission waits on them.
	{Role: models.RolePresident, Target: models.StatusIssuePresident, RequireCurrent: statusPtr(models.StatusPendingPresident), Notify: notifyIssueToSociety},
	{Role: models.RolePresident, Target: models.StatusPendingPatron, RequireCurrent: statusPtr(models.StatusPendingPresident), Notify: notifyReviewToPatron},

	// Patron, symmetric, gated on Pending(Patron).
	{Role: models.RolePatron, Target: models.StatusIssuePatron, RequireCurrent: statusPtr(models.StatusPendingPatron), Notify: notifyIssueToSociety},
	{Role: models.RolePatron, Target: models.StatusApprovedPatron, RequireCurrent: statusPtr(models.StatusPendingPatron)},

	// CCA is the terminal authority: no precondition, silent transitions.
	{Role: models.RoleCCA, Target: models.StatusPendingCCA},
	{Role: models.RoleCCA, Target: models.StatusIssueCCA},
	{Role: models.RoleCCA, Target: models.StatusApprovedCCA},
	{Role: models.RoleCCA, Target: models.StatusWriteUp},
	{Role: models.RoleCCA, Target: models.StatusCompleted},
}

// lookupTransition finds the rule for a role naming a target status. The
// role whitelist is the set of targets that have a rule for that role.
func lookupTransition(role models.ActorRole, target models.SubmissionStatus) (transitionRule, bool) {
	for _, rule := range transitionTable {
		if rule.Role == role && rule.Target == target {
			return rule, true
		}
	}
	return transitionRule{}, false
}

// allowedTargets lists the statuses a role may name, in table order.
func allowedTargets(role models.ActorRole) []models.SubmissionStatus {
	var targets []models.SubmissionStatus
	for _, rule := range transitionTable {
		if rule.Role == role {
			targets = append(targets, rule.Target)
		}
	}
	return targets
}

// autoAdvanceRule describes the server-computed transition a society submit
// performs while the submission sits in an Issue status: the next status
// and the reviewer whose address receives the review link.
type autoAdvanceRule struct {
	Next     models.SubmissionStatus
	Reviewer models.ActorRole
}

var autoAdvanceRules = map[models.SubmissionStatus]autoAdvanceRule{
	models.StatusIssuePresident: {Next: models.StatusPendingPresident, Reviewer: models.RolePresident},
	models.StatusIssuePatron:    {Next: models.StatusPendingPatron, Reviewer: models.RolePatron},
}

// statusFilterApplicable is the fixed allow-list a CCA listing filter is
// validated against.
var statusFilterApplicable = []models.SubmissionStatus{
	models.StatusApprovedPatron,
	models.StatusPendingCCA,
	models.StatusIssueCCA,
	models.StatusApprovedCCA,
	models.StatusWriteUp,
	models.StatusCompleted,
}

// validateStatusFilter checks a CCA listing filter: 1-6 entries, every
// entry applicable, no duplicates. A malformed list is a validation error,
// never silently ignored.
func validateStatusFilter(statusList []models.SubmissionStatus) error {
	if len(statusList) < 1 || len(statusList) > len(statusFilterApplicable) {
		return apperrors.NewValidation("too many statuses given")
	}
	checked := make(map[models.SubmissionStatus]struct{}, len(statusList))
	for _, s := range statusList {
		applicable := false
		for _, a := range statusFilterApplicable {
			if s == a {
				applicable = true
				break
			}
		}
		if _, dup := checked[s]; !applicable || dup {
			return apperrors.NewValidation("status %s is either invalid or included multiple times", string(s))
		}
		checked[s] = struct{}{}
	}
	return nil
}

// ValidateTransitionTable checks the table's internal consistency. Main
// calls it before serving; a broken table is a programming error and the
// process refuses to start.
func ValidateTransitionTable() error {
	known := make(map[models.SubmissionStatus]struct{}, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		known[s] = struct{}{}
	}

	seen := make(map[string]struct{}, len(transitionTable))
	for _, rule := range transitionTable {
		switch rule.Role {
		case models.RolePresident, models.RolePatron, models.RoleCCA:
		default:
			return fmt.Errorf("transition table: role %q may not set statuses directly", rule.Role)
		}
		if _, ok := known[rule.Target]; !ok {
			return fmt.Errorf("transition table: unknown target status %q", rule.Target)
		}
		if rule.RequireCurrent != nil {
			if _, ok := known[*rule.RequireCurrent]; !ok {
				return fmt.Errorf("transition table: unknown precondition status %q", *rule.RequireCurrent)
			}
		}
		if rule.Role != models.RoleCCA && rule.RequireCurrent == nil {
			return fmt.Errorf("transition table: role %q requires a current-status precondition for %q", rule.Role, rule.Target)
		}
		key := string(rule.Role) + "→" + string(rule.Target)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("transition table: duplicate rule %s", key)
		}
		seen[key] = struct{}{}
	}

	for issue, rule := range autoAdvanceRules {
		if !issue.IsIssue() {
			return fmt.Errorf("transition table: auto-advance keyed on non-issue status %q", issue)
		}
		if _, ok := known[rule.Next]; !ok {
			return fmt.Errorf("transition table: auto-advance to unknown status %q", rule.Next)
		}
		if rule.Reviewer != models.RolePresident && rule.Reviewer != models.RolePatron {
			return fmt.Errorf("transition table: auto-advance reviewer %q is not in the review chain", rule.Reviewer)
		}
	}
	return nil
}
