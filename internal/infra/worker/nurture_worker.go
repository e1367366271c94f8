package worker

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/ghost-funnel/internal/entity"
	"github.com/xavierca1/ghost-funnel/internal/infra/http/middleware"
)

// StageMover é o único escritor de etapas (FunnelService); os workers
// nunca gravam etapa direto no banco.
type StageMover interface {
	MoveToStage(ctx context.Context, contactID string, stage entity.Stage) bool
}

type ChatSender interface {
	SendMessage(ctx context.Context, to, text string) error
}

// nurtureSteps são as mensagens de resgate por dias desde o primeiro
// contato. O último passo coincide com o descarte.
var nurtureSteps = []struct {
	Day     int
	Message string
}{
	{2, "Oi! Tudo bem? Ainda estamos aqui para te ajudar com suas vendas. Quer conversar?"},
	{5, "Olá! Não te esqueci! Está precisando de algo para o seu negócio?"},
	{7, "Oi de novo! Vamos transformar suas vendas? Só dizer \"sim\"!"},
	{15, "Última chance! Se quiser ajuda, é só dizer \"sim\". Caso contrário, até logo!"},
}

const discardAfterDays = 15

// NurtureWorker varre os leads esquecidos uma vez por dia, envia as
// mensagens de nutrição devidas e descarta quem nunca respondeu.
type NurtureWorker struct {
	FunnelRepo   entity.FunnelRepositoryInterface
	Stages       StageMover
	Chat         ChatSender
	TickInterval time.Duration
	Now          func() time.Time
}

func NewNurtureWorker(funnelRepo entity.FunnelRepositoryInterface, stages StageMover, chat ChatSender) *NurtureWorker {
	return &NurtureWorker{
		FunnelRepo:   funnelRepo,
		Stages:       stages,
		Chat:         chat,
		TickInterval: 24 * time.Hour,
		Now:          time.Now,
	}
}

func (w *NurtureWorker) Start(ctx context.Context) {
	log.Printf("🕒 Worker de nutrição iniciado (a cada %s)", w.TickInterval)

	ticker := time.NewTicker(w.TickInterval)
	defer ticker.Stop()

	w.run(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Worker de nutrição encerrado")
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

func (w *NurtureWorker) run(ctx context.Context) {
	leads, err := w.FunnelRepo.QueryForgotten(ctx)
	if err != nil {
		log.Printf("❌ Erro na nutrição de leads: %v", err)
		return
	}

	for _, lead := range leads {
		// Falha em um lead não pode travar os demais.
		w.nurture(ctx, lead)
	}
}

func (w *NurtureWorker) nurture(ctx context.Context, lead entity.ForgottenLead) {
	days := int(w.Now().Sub(lead.FirstContact).Hours() / 24)

	// A comparação é >= com marca d'água, não igualdade exata: um tick
	// atrasado ainda envia a mensagem devida, e nunca duas vezes.
	due := 0
	for i, step := range nurtureSteps {
		if days >= step.Day {
			due = i + 1
		}
	}

	if due > lead.NurtureOffset {
		step := nurtureSteps[due-1]
		if err := w.Chat.SendMessage(ctx, lead.Phone, step.Message); err != nil {
			log.Printf("⚠️ Erro ao enviar mensagem de nutrição para %s: %v", lead.Phone, err)
		} else {
			log.Printf("[Nutrição] Mensagem enviada para %s: %q", lead.Phone, step.Message)
			middleware.RecordNurtureMessage()
			if err := w.FunnelRepo.SetNurtureOffset(ctx, lead.ContactID, due); err != nil {
				log.Printf("⚠️ Erro ao gravar marca de nutrição de %s: %v", lead.ContactID, err)
			}
		}
	}

	if days >= discardAfterDays {
		if w.Stages.MoveToStage(ctx, lead.ContactID, entity.StageDescartado) {
			log.Printf("Lead %s descartado após %d dias sem resposta.", lead.Phone, discardAfterDays)
		}
	}
}
