package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/xavierca1/ghost-funnel/internal/entity"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "deepseek/deepseek-chat:free"

	systemPrompt = "Você é uma IA empresarial objetiva e persuasiva, focada em converter " +
		"leads para vendas rapidamente. No primeiro contato, engaje o cliente com uma " +
		"abordagem curta e cativante, perguntando sobre o negócio ou necessidades sem " +
		"oferecer reuniões diretamente. Depois, use o histórico para evitar repetições e " +
		"guie o lead para agendar uma reunião ou tomar uma ação concreta, com respostas " +
		"curtas, diretas e sempre com um call-to-action claro. Não ensine ou dê dicas " +
		"longas, foque em fechar o próximo passo."

	// Alguns modelos vazam o marcador de fim de sentença no texto.
	stopMarker = "<｜end▁of▁sentence｜>"

	historyDepth = 4
)

// Client fala com a API de chat-completions do OpenRouter e mantém um
// histórico curto por contato para dar contexto às respostas.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client

	mu      sync.Mutex
	history map[string][]chatMessage
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   defaultModel,
		http:    &http.Client{Timeout: 30 * time.Second},
		history: make(map[string][]chatMessage),
	}
}

// GenerateReply redige a resposta para uma mensagem recebida. identifier
// é a chave do histórico (telefone ou e-mail do contato).
func (c *Client) GenerateReply(ctx context.Context, identifier, message string, source entity.Source) (string, error) {
	log.Printf("[%s] Recebido de %s: %s", source, identifier, message)

	messages := []chatMessage{{Role: "system", Content: systemPrompt}}
	messages = append(messages, c.snapshotHistory(identifier)...)
	messages = append(messages, chatMessage{Role: "user", Content: message})

	payload := chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   100,
		Temperature: 0.7,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("erro ao marshal chat: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro request openrouter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("erro openrouter (status %d): %s", resp.StatusCode, string(body))
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta: %w", err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("openrouter: %s (code %d)", response.Error.Message, response.Error.Code)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("openrouter não retornou escolhas")
	}

	reply := strings.TrimSpace(strings.ReplaceAll(response.Choices[0].Message.Content, stopMarker, ""))

	c.appendHistory(identifier, message, reply)

	return reply, nil
}

func (c *Client) snapshotHistory(identifier string) []chatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]chatMessage(nil), c.history[identifier]...)
}

func (c *Client) appendHistory(identifier, message, reply string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := append(c.history[identifier],
		chatMessage{Role: "user", Content: message},
		chatMessage{Role: "assistant", Content: reply},
	)
	if len(h) > historyDepth {
		h = h[len(h)-historyDepth:]
	}
	c.history[identifier] = h
}
