package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendMessageMontaRequisicaoDaCloudAPI(t *testing.T) {
	var got sendTextRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/phone-123/messages", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]any{
			"messages": []map[string]any{{"id": "wamid.1"}},
		})
	}))
	defer server.Close()

	client := NewClient("token-abc", "phone-123")
	client.baseURL = server.URL

	err := client.SendMessage(context.Background(), "+5511999990001", "Olá!")

	assert.NoError(t, err)
	assert.Equal(t, "whatsapp", got.MessagingProduct)
	assert.Equal(t, "+5511999990001", got.To)
	assert.Equal(t, "Olá!", got.Text.Body)
}

func TestSendMessageErroDaAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "token expirado", "code": 190},
		})
	}))
	defer server.Close()

	client := NewClient("token-abc", "phone-123")
	client.baseURL = server.URL

	err := client.SendMessage(context.Background(), "+5511999990001", "Olá!")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "token expirado")
}

func TestSendMessageSemConfiguracao(t *testing.T) {
	client := NewClient("", "")

	err := client.SendMessage(context.Background(), "+5511999990001", "Olá!")

	assert.Error(t, err)
}

func TestTextMessagesAchataOPayload(t *testing.T) {
	raw := `{
		"object": "whatsapp_business_account",
		"entry": [{
			"changes": [{
				"value": {
					"contacts": [{"wa_id": "5511999990001", "profile": {"name": "Maria"}}],
					"messages": [
						{"from": "5511999990001", "type": "text", "text": {"body": "oi"}},
						{"from": "5511999990001", "type": "audio"}
					]
				}
			}]
		}]
	}`

	var payload WebhookPayload
	assert.NoError(t, json.Unmarshal([]byte(raw), &payload))

	msgs := payload.TextMessages()
	assert.Len(t, msgs, 1)
	assert.Equal(t, "5511999990001", msgs[0].From)
	assert.Equal(t, "Maria", msgs[0].Name)
	assert.Equal(t, "oi", msgs[0].Body)
}
