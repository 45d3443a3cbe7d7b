package models

// SubmissionStatus is the lifecycle state of a submission. The literal
// values are part of the API contract and appear verbatim in responses.
type SubmissionStatus string

const (
	StatusPendingPresident SubmissionStatus = "Pending(President)"
	StatusIssuePresident   SubmissionStatus = "Issue(President)"
	StatusPendingPatron    SubmissionStatus = "Pending(Patron)"
	StatusIssuePatron      SubmissionStatus = "Issue(Patron)"
	StatusApprovedPatron   SubmissionStatus = "Approved(Patron)"
	StatusPendingCCA       SubmissionStatus = "Pending(CCA)"
	StatusIssueCCA         SubmissionStatus = "Issue(CCA)"
	StatusApprovedCCA      SubmissionStatus = "Approved(CCA)"
	StatusWriteUp          SubmissionStatus = "Write-Up"
	StatusCompleted        SubmissionStatus = "Completed"
)

// AllStatuses lists every lifecycle state.
var AllStatuses = []SubmissionStatus{
	StatusPendingPresident, StatusIssuePresident,
	StatusPendingPatron, StatusIssuePatron, StatusApprovedPatron,
	StatusPendingCCA, StatusIssueCCA, StatusApprovedCCA,
	StatusWriteUp, StatusCompleted,
}

// IsIssue reports whether s is one of the Issue statuses that permit a
// full resubmission round.
func (s SubmissionStatus) IsIssue() bool {
	return s == StatusIssuePresident || s == StatusIssuePatron || s == StatusIssueCCA
}

// IsTerminal reports whether the lifecycle has ended.
func (s SubmissionStatus) IsTerminal() bool { return s == StatusCompleted }

// ActorRole identifies who is acting on a submission. The short tokens
// match the role claims carried in actor JWTs.
type ActorRole string

const (
	RoleSociety   ActorRole = "soc"
	RolePresident ActorRole = "pres"
	RolePatron    ActorRole = "pat"
	RoleCCA       ActorRole = "cca"
)

// DisplayName is used in issue emails to name the issuer.
func (r ActorRole) DisplayName() string {
	switch r {
	case RolePresident:
		return "President"
	case RolePatron:
		return "Patron"
	case RoleCCA:
		return "CCA"
	case RoleSociety:
		return "Society"
	}
	return string(r)
}

// Actor is the authenticated principal extracted from a request token.
// SubmissionID is only set on review tokens (President/Patron links).
type Actor struct {
	ID           uint
	Role         ActorRole
	SubmissionID uint
}
