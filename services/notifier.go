package services

import (
	"fmt"

	"ccaportal/configs"
	"ccaportal/configs/configslog"
	"ccaportal/models"
	"ccaportal/pkg/tokens"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// INotifier is the side-effect boundary the state machine dispatches into.
// Implementations must never block the lifecycle operation on delivery:
// dispatch failures are logged and do not roll back the transition that
// triggered them.
type INotifier interface {
	SendReview(recipientEmail string, reviewerRole models.ActorRole, societyInitials string, submissionID, societyID uint)
	SendIssue(recipientEmail, issue string, submissionID uint, issuerRole models.ActorRole, issuerEmail string)
}

// MailNotifier delivers review and issue emails over SMTP. Every send runs
// on its own goroutine, fire and forget.
type MailNotifier struct {
	cfg    *configs.Config
	signer *tokens.Signer
	dialer *gomail.Dialer
}

func NewMailNotifier(cfg *configs.Config, signer *tokens.Signer) *MailNotifier {
	return &MailNotifier{
		cfg:    cfg,
		signer: signer,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
	}
}

// SendReview mails a reviewer a signed link to the submission under review.
func (n *MailNotifier) SendReview(recipientEmail string, reviewerRole models.ActorRole, societyInitials string, submissionID, societyID uint) {
	token, err := n.signer.SignReview(societyID, submissionID, string(reviewerRole))
	if err != nil {
		configslog.Log.Error("review token signing failed",
			zap.Uint("submissionId", submissionID), zap.Error(err))
		return
	}
	link := fmt.Sprintf("%sreview/%s?token=%s", n.cfg.ServerURL, string(reviewerRole), token)
	subject := fmt.Sprintf("Submission Review Request - %s", societyInitials)
	body := fmt.Sprintf(
		"A submission by %s is awaiting your review.<br />Open the link below to review it:<br /><a href=%q>%s</a>",
		societyInitials, link, link)

	n.dispatch(recipientEmail, subject, body)
}

// SendIssue mails the society the issue a reviewer raised.
func (n *MailNotifier) SendIssue(recipientEmail, issue string, submissionID uint, issuerRole models.ActorRole, issuerEmail string) {
	subject := fmt.Sprintf("Issue Raised on Submission %d", submissionID)
	body := fmt.Sprintf(
		"An issue has been identified by the %s (email: %s) of your society in Submission %d. "+
			"Kindly rectify the issue by attaching notes to the submission or editing the fields previously unfilled!"+
			"<br /><b>Issue:</b> %s",
		issuerRole.DisplayName(), issuerEmail, submissionID, issue)

	n.dispatch(recipientEmail, subject, body)
}

func (n *MailNotifier) dispatch(recipient, subject, body string) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", n.cfg.SMTPFrom)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	go func() {
		if err := n.dialer.DialAndSend(msg); err != nil {
			configslog.Log.Error("email dispatch failed",
				zap.String("recipient", recipient), zap.String("subject", subject), zap.Error(err))
		}
	}()
}

var _ INotifier = (*MailNotifier)(nil)
