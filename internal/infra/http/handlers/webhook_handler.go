package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/nyaruka/phonenumbers"
	"github.com/xavierca1/ghost-funnel/internal/entity"
	"github.com/xavierca1/ghost-funnel/internal/infra/http/middleware"
	"github.com/xavierca1/ghost-funnel/internal/infra/integration/whatsapp"
	"github.com/xavierca1/ghost-funnel/internal/usecase"
)

const defaultRegion = "BR"

// InteractionProcessor é o pipeline que trata uma mensagem recebida.
type InteractionProcessor interface {
	Execute(ctx context.Context, input usecase.ProcessInteractionInput) string
}

// WebhookHandler recebe as chamadas da WhatsApp Cloud API: o handshake
// de verificação (GET) e as mensagens recebidas (POST).
type WebhookHandler struct {
	Processor   InteractionProcessor
	VerifyToken string
	rateLimiter *RateLimiter
}

func NewWebhookHandler(processor InteractionProcessor, verifyToken string) *WebhookHandler {
	return &WebhookHandler{
		Processor:   processor,
		VerifyToken: verifyToken,
		rateLimiter: NewRateLimiter(60, time.Minute), // 60 req/min por IP
	}
}

func (h *WebhookHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.mode") != "subscribe" || q.Get("hub.verify_token") != h.VerifyToken {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(q.Get("hub.challenge")))
}

func (h *WebhookHandler) HandleMessages(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}

	var payload whatsapp.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad JSON", http.StatusBadRequest)
		return
	}

	for _, msg := range payload.TextMessages() {
		log.Printf("[WhatsApp] Mensagem recebida de %s: %s", msg.From, msg.Body)
		middleware.RecordInteraction(string(entity.SourceWhatsApp))

		h.Processor.Execute(r.Context(), usecase.ProcessInteractionInput{
			Identifier: normalizePhone(msg.From),
			Name:       msg.Name,
			Message:    msg.Body,
			Source:     entity.SourceWhatsApp,
		})
	}

	// A Cloud API reenvia o webhook em qualquer status != 200.
	w.WriteHeader(http.StatusOK)
}

// normalizePhone leva o wa_id para E.164, para que o mesmo contato nunca
// seja criado duas vezes por variação de formato.
func normalizePhone(raw string) string {
	input := raw
	if input != "" && input[0] != '+' {
		input = "+" + input
	}

	number, err := phonenumbers.Parse(input, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return raw
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
