// internal/service/billing_service.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/brandcasthq/brandcast-backend/internal/repository"
)

// BillingEvent is the payload the billing provider posts to our webhook.
type BillingEvent struct {
	Type string `json:"type"` // subscription.updated, subscription.deleted
	Data struct {
		UserID int    `json:"user_id"`
		Plan   string `json:"plan"`
	} `json:"data"`
}

type BillingService struct {
	UserRepo repository.UserRepositoryInterface
	Secret   string
	Log      zerolog.Logger
}

// VerifySignature checks the provider's HMAC-SHA256 signature over the raw
// webhook body.
func (s *BillingService) VerifySignature(body []byte, signature string) bool {
	if s.Secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(s.Secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandleEvent applies a billing event to the user's plan. Unknown event
// types are acknowledged and ignored so the provider stops retrying them.
func (s *BillingService) HandleEvent(ev BillingEvent) error {
	switch ev.Type {
	case "subscription.updated":
		plan := ev.Data.Plan
		if plan != "free" && plan != "pro" {
			return fmt.Errorf("unknown plan: %s", plan)
		}
		s.Log.Info().Int("user_id", ev.Data.UserID).Str("plan", plan).Msg("billing: plan updated")
		return s.UserRepo.UpdatePlan(ev.Data.UserID, plan)
	case "subscription.deleted":
		s.Log.Info().Int("user_id", ev.Data.UserID).Msg("billing: subscription cancelled")
		return s.UserRepo.UpdatePlan(ev.Data.UserID, "free")
	default:
		s.Log.Debug().Str("type", ev.Type).Msg("billing: ignoring event")
		return nil
	}
}
