package whatsapp

type sendTextRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	RecipientType    string   `json:"recipient_type"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

type SendMessageResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Contacts []struct {
		Input string `json:"input"`
		WaID  string `json:"wa_id"`
	} `json:"contacts"`
	Error *ErrorResponse `json:"error"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

// WebhookPayload é o corpo POST que a Cloud API entrega quando chegam
// mensagens novas.
type WebhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Changes []struct {
			Field string `json:"field"`
			Value struct {
				Contacts []struct {
					WaID    string `json:"wa_id"`
					Profile struct {
						Name string `json:"name"`
					} `json:"profile"`
				} `json:"contacts"`
				Messages []struct {
					From string `json:"from"`
					ID   string `json:"id"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// InboundText é uma mensagem de texto extraída do webhook.
type InboundText struct {
	From string
	Name string
	Body string
}

// TextMessages achata o payload do webhook nas mensagens de texto
// recebidas, com o nome de perfil quando disponível.
func (p WebhookPayload) TextMessages() []InboundText {
	var out []InboundText
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			names := make(map[string]string)
			for _, c := range change.Value.Contacts {
				names[c.WaID] = c.Profile.Name
			}
			for _, m := range change.Value.Messages {
				if m.Type != "text" {
					continue
				}
				out = append(out, InboundText{
					From: m.From,
					Name: names[m.From],
					Body: m.Text.Body,
				})
			}
		}
	}
	return out
}
