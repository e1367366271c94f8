package usecase

import (
	"context"
	"log"

	"github.com/xavierca1/ghost-funnel/internal/entity"
	"github.com/xavierca1/ghost-funnel/internal/infra/http/middleware"
)

// FunnelService é o único escritor de etapas do funil. Todo movimento
// de lead (do processador de interações, dos workers ou do controlador)
// passa por MoveToStage.
type FunnelService struct {
	FunnelRepo entity.FunnelRepositoryInterface
	Events     EventPublisher
}

func NewFunnelService(funnelRepo entity.FunnelRepositoryInterface, events EventPublisher) *FunnelService {
	return &FunnelService{
		FunnelRepo: funnelRepo,
		Events:     events,
	}
}

// MoveToStage persiste a nova etapa e emite o evento leadMoved.
// Falha é não-fatal: loga e devolve false, nunca propaga.
func (s *FunnelService) MoveToStage(ctx context.Context, contactID string, stage entity.Stage) bool {
	if err := s.FunnelRepo.SetStage(ctx, contactID, stage); err != nil {
		log.Printf("❌ Erro ao mover contato %s para %s: %v", contactID, stage, err)
		return false
	}

	log.Printf("Contato %s movido para a etapa: %s", contactID, stage)
	middleware.RecordStageTransition(string(stage))

	if s.Events != nil {
		if err := s.Events.Publish(ctx, Event{
			Type:      EventLeadMoved,
			ContactID: contactID,
			Stage:     stage,
		}); err != nil {
			log.Printf("⚠️ Erro ao publicar evento leadMoved de %s: %v", contactID, err)
		}
	}

	return true
}
