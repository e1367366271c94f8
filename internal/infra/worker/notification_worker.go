package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/xavierca1/ghost-funnel/internal/entity"
	"github.com/xavierca1/ghost-funnel/internal/infra/http/middleware"
)

type EmailSender interface {
	Send(to, subject, body string) error
}

// NotificationWorker roda a cada 15 minutos e faz três varreduras
// independentes: reuniões próximas, leads recém-descartados e leads
// esquecidos sem interação há mais de 7 dias. Todo alerta sai pelos dois
// canais para o mesmo par de endereços do operador.
type NotificationWorker struct {
	FunnelRepo    entity.FunnelRepositoryInterface
	Appointments  entity.AppointmentRepositoryInterface
	Chat          ChatSender
	Mail          EmailSender
	OperatorPhone string
	OperatorEmail string
	TickInterval  time.Duration
	Now           func() time.Time
}

func NewNotificationWorker(
	funnelRepo entity.FunnelRepositoryInterface,
	appointments entity.AppointmentRepositoryInterface,
	chat ChatSender,
	mail EmailSender,
	operatorPhone, operatorEmail string,
) *NotificationWorker {
	return &NotificationWorker{
		FunnelRepo:    funnelRepo,
		Appointments:  appointments,
		Chat:          chat,
		Mail:          mail,
		OperatorPhone: operatorPhone,
		OperatorEmail: operatorEmail,
		TickInterval:  15 * time.Minute,
		Now:           time.Now,
	}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	log.Printf("🕒 Worker de notificações iniciado (a cada %s)", w.TickInterval)

	ticker := time.NewTicker(w.TickInterval)
	defer ticker.Stop()

	w.run(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Worker de notificações encerrado")
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

func (w *NotificationWorker) run(ctx context.Context) {
	w.checkAppointments(ctx)
	w.checkDiscarded(ctx)
	w.checkStale(ctx)
}

func (w *NotificationWorker) checkAppointments(ctx context.Context) {
	now := w.Now()

	appts, err := w.Appointments.QueryUpcoming(ctx, now, now.Add(24*time.Hour))
	if err != nil {
		log.Printf("❌ Erro ao verificar reuniões agendadas: %v", err)
		return
	}

	for _, appt := range appts {
		diff := appt.DateTime.Sub(now)

		var message string
		switch {
		case diff > 0 && diff <= time.Hour:
			message = fmt.Sprintf("Lembrete: Reunião com %s (%s) em 1 hora (%s).",
				appt.Name, appt.Phone, appt.DateTime.Format(time.RFC3339))
		case diff > 23*time.Hour && diff <= 24*time.Hour:
			message = fmt.Sprintf("Aviso: Reunião com %s (%s) amanhã (%s). Prepare-se!",
				appt.Name, appt.Phone, appt.DateTime.Format(time.RFC3339))
		default:
			continue
		}

		w.notify(ctx, "appointment", "Lembrete de Reunião", message)
	}
}

func (w *NotificationWorker) checkDiscarded(ctx context.Context) {
	discarded, err := w.FunnelRepo.QueryRecentlyDiscarded(ctx, w.Now().Add(-time.Hour))
	if err != nil {
		log.Printf("❌ Erro ao verificar leads descartados: %v", err)
		return
	}

	for _, lead := range discarded {
		message := fmt.Sprintf("Lead descartado: %s (%s) após %d dias sem resposta.",
			lead.Name, lead.Phone, discardAfterDays)
		w.notify(ctx, "discarded", "Lead Descartado", message)
	}
}

func (w *NotificationWorker) checkStale(ctx context.Context) {
	stale, err := w.FunnelRepo.QueryStaleForgotten(ctx, w.Now().Add(-7*24*time.Hour))
	if err != nil {
		log.Printf("❌ Erro ao verificar interações pendentes: %v", err)
		return
	}

	for _, lead := range stale {
		message := fmt.Sprintf("Atenção: %s (%s) está em %q há mais de 7 dias sem resposta.",
			lead.Name, lead.Phone, entity.StageLeadsEsqueceram)
		w.notify(ctx, "stale", "Interação Pendente", message)
	}
}

// NotifyNewAppointment avisa o operador de uma reunião recém-marcada.
// Chamado pelo processador de interações no momento do agendamento.
func (w *NotificationWorker) NotifyNewAppointment(ctx context.Context, name, phone string, dateTime time.Time) {
	message := fmt.Sprintf("Nova reunião agendada com %s (%s) para %s.",
		name, phone, dateTime.Format(time.RFC3339))
	w.notify(ctx, "appointment", "Reunião Agendada", message)
}

// notify faz o fan-out para o operador. Canal indisponível é tolerado:
// loga e segue pelo outro.
func (w *NotificationWorker) notify(ctx context.Context, kind, subject, message string) {
	if w.Chat != nil && w.OperatorPhone != "" {
		if err := w.Chat.SendMessage(ctx, w.OperatorPhone, message); err != nil {
			log.Printf("⚠️ Erro ao enviar notificação WhatsApp para %s: %v", w.OperatorPhone, err)
		} else {
			log.Printf("[Notificação WhatsApp] Enviada para %s: %q", w.OperatorPhone, message)
			middleware.RecordOperatorNotification(kind, string(entity.SourceWhatsApp))
		}
	}

	if w.Mail != nil && w.OperatorEmail != "" {
		if err := w.Mail.Send(w.OperatorEmail, subject, message); err != nil {
			log.Printf("⚠️ Erro ao enviar notificação Email para %s: %v", w.OperatorEmail, err)
		} else {
			log.Printf("[Notificação Email] Enviada para %s: %q", w.OperatorEmail, subject)
			middleware.RecordOperatorNotification(kind, string(entity.SourceEmail))
		}
	}
}
