package worker

// email_worker.go
// Processes email jobs from QueueEmail: account verification links and
// leave-decision notifications. SMTP failures are returned to the pool so
// retries and the DLQ apply.

import (
	"context"
	"encoding/json"
	"fmt"

	"dayflow/internal/infra"

	"github.com/rs/zerolog/log"
)

const (
	EmailKindVerification  = "verification"
	EmailKindLeaveDecision = "leave_decision"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	Kind    string `json:"kind"`
	ToEmail string `json:"to_email"`
	// Verification
	Link string `json:"link,omitempty"`
	// Leave decision
	Decision string `json:"decision,omitempty"`
	Comments string `json:"comments,omitempty"`
}

type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends the email described by the payload.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return nil
	}

	var err error
	switch payload.Kind {
	case EmailKindVerification:
		err = w.mailer.SendVerification(payload.ToEmail, payload.Link)
	case EmailKindLeaveDecision:
		body := fmt.Sprintf("Your leave request has been %s.", payload.Decision)
		if payload.Comments != "" {
			body += "\n\nComments: " + payload.Comments
		}
		err = w.mailer.Send(payload.ToEmail, "Leave request "+payload.Decision, body)
	default:
		log.Warn().Str("kind", payload.Kind).Msg("email_worker: unknown kind — skipping")
		return nil
	}

	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Str("kind", payload.Kind).Msg("email_worker: send failed")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Str("kind", payload.Kind).Msg("email_worker: sent")
	return nil
}
