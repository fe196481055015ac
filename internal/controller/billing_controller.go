// internal/controller/billing_controller.go
package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/brandcasthq/brandcast-backend/internal/service"
)

type BillingController struct {
	BillingService *service.BillingService
}

// Webhook receives billing-provider events. The provider signs the raw
// body with a shared secret; unverifiable requests are dropped.
func (c *BillingController) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "cannot read body", http.StatusBadRequest)
		return
	}

	if !c.BillingService.VerifySignature(body, r.Header.Get("X-Billing-Signature")) {
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var ev service.BillingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		http.Error(w, "invalid event", http.StatusBadRequest)
		return
	}

	if err := c.BillingService.HandleEvent(ev); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
