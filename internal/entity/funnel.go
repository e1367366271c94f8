package entity

import (
	"context"
	"strings"
	"time"
)

// Stage é uma etapa do funil de vendas. Os valores são os mesmos
// gravados no banco e trafegados nos eventos do controlador.
type Stage string

const (
	StageContatoInicial  Stage = "contato_inicial"
	StageResposta        Stage = "resposta"
	StageLeadQuente      Stage = "lead_quente"
	StageLeadsEsqueceram Stage = "leads_esqueceram"
	StageReuniaoAgendada Stage = "reuniao_agendada"
	StageDescartado      Stage = "descartado"
)

func (s Stage) Valid() bool {
	switch s {
	case StageContatoInicial, StageResposta, StageLeadQuente,
		StageLeadsEsqueceram, StageReuniaoAgendada, StageDescartado:
		return true
	}
	return false
}

// Palavras-chave que indicam interesse ou pedido de agendamento.
// A comparação é por substring, em minúsculas; "ajud" e "reuni" cobrem
// as flexões (ajuda/ajude, reunião/reuniao).
var (
	hotKeywords      = []string{"sim", "quero", "ajud"}
	scheduleKeywords = []string{"agendar", "reuni", "sim"}
)

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// NextStage aplica a tabela de transição do funil: função pura de
// (etapa atual, texto da mensagem). Retorna a própria etapa quando não
// há transição.
func NextStage(current Stage, message string) Stage {
	text := strings.ToLower(message)

	switch current {
	case StageContatoInicial:
		return StageResposta
	case StageResposta:
		if containsAny(text, hotKeywords) {
			return StageLeadQuente
		}
		return StageLeadsEsqueceram
	case StageLeadQuente:
		if containsAny(text, scheduleKeywords) {
			return StageReuniaoAgendada
		}
		return StageLeadsEsqueceram
	case StageLeadsEsqueceram:
		if containsAny(text, scheduleKeywords) {
			return StageReuniaoAgendada
		}
		return StageLeadsEsqueceram
	}

	// reuniao_agendada e descartado são terminais para o pipeline automático.
	return current
}

// FunnelState é a etapa corrente de um contato. nurture_offset é a marca
// d'água de nutrição: quantas mensagens de resgate já foram enviadas.
type FunnelState struct {
	ContactID     string    `json:"contact_id"`
	Stage         Stage     `json:"stage"`
	NurtureOffset int       `json:"nurture_offset"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ForgottenLead é um lead em leads_esqueceram candidato a nutrição.
type ForgottenLead struct {
	ContactID     string
	Phone         string
	NurtureOffset int
	FirstContact  time.Time
}

// DiscardedLead é um lead recém-movido para descartado.
type DiscardedLead struct {
	Name  string
	Phone string
}

// StaleLead é um lead esquecido sem interação recente.
type StaleLead struct {
	Name        string
	Phone       string
	LastContact time.Time
}

type FunnelRepositoryInterface interface {
	// GetStage retorna a etapa corrente, ou "" quando o contato ainda
	// não entrou no funil.
	GetStage(ctx context.Context, contactID string) (Stage, error)
	SetStage(ctx context.Context, contactID string, stage Stage) error
	SetNurtureOffset(ctx context.Context, contactID string, offset int) error
	QueryForgotten(ctx context.Context) ([]ForgottenLead, error)
	QueryRecentlyDiscarded(ctx context.Context, since time.Time) ([]DiscardedLead, error)
	QueryStaleForgotten(ctx context.Context, olderThan time.Time) ([]StaleLead, error)
}
