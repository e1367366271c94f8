package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ghost-funnel/internal/infra/database"
	"github.com/xavierca1/ghost-funnel/internal/infra/http/handlers"
	"github.com/xavierca1/ghost-funnel/internal/infra/http/middleware"
	"github.com/xavierca1/ghost-funnel/internal/infra/integration/openrouter"
	"github.com/xavierca1/ghost-funnel/internal/infra/integration/whatsapp"
	"github.com/xavierca1/ghost-funnel/internal/infra/mail"
	"github.com/xavierca1/ghost-funnel/internal/infra/queue"
	"github.com/xavierca1/ghost-funnel/internal/infra/worker"
	"github.com/xavierca1/ghost-funnel/internal/usecase"
)

func main() {
	godotenv.Load()

	ctx := context.Background()

	// 1. Banco de dados
	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ Erro ao conectar ao banco de dados: %v", err)
	}
	defer db.Close()

	if err := database.InitSchema(ctx, db); err != nil {
		log.Fatalf("❌ Erro ao criar tabelas: %v", err)
	}
	log.Println("Banco de dados inicializado no funil.")

	// 2. RabbitMQ (canal de comando/evento do controlador)
	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		log.Fatalf("❌ Erro ao conectar no RabbitMQ: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	producer := queue.NewEventProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	fatal := func(format string, err error) {
		producer.Publish(ctx, usecase.Event{Type: usecase.EventError, Message: err.Error()})
		log.Fatalf(format, err)
	}

	// 3. Repositórios
	contactRepo := database.NewContactRepository(db)
	funnelRepo := database.NewFunnelRepository(db)
	interactionRepo := database.NewInteractionRepository(db)
	appointmentRepo := database.NewAppointmentRepository(db)

	// 4. Clientes de canal e IA
	whatsappClient := whatsapp.NewClient(
		os.Getenv("WHATSAPP_ACCESS_TOKEN"), os.Getenv("WHATSAPP_PHONE_ID"),
	)
	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if mailPort == 0 {
		mailPort = 587
	}
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"),
	)
	aiClient := openrouter.NewClient(os.Getenv("OPENROUTER_API_KEY"))

	// 5. Serviços e use cases
	funnelService := usecase.NewFunnelService(funnelRepo, producer)

	notifier := worker.NewNotificationWorker(
		funnelRepo, appointmentRepo, whatsappClient, mailSender,
		os.Getenv("OPERATOR_PHONE"), os.Getenv("OPERATOR_EMAIL"),
	)

	processUC := usecase.NewProcessInteractionUseCase(
		contactRepo, funnelRepo, interactionRepo, appointmentRepo,
		funnelService, aiClient, whatsappClient, mailSender, notifier,
	)

	controlUC := usecase.NewControlUseCase(contactRepo, appointmentRepo, funnelService, producer)

	// 6. Workers
	nurture := worker.NewNurtureWorker(funnelRepo, funnelService, whatsappClient)
	go nurture.Start(ctx)
	go notifier.Start(ctx)

	if imapHost := os.Getenv("IMAP_HOST"); imapHost != "" {
		imapPort, _ := strconv.Atoi(os.Getenv("IMAP_PORT"))
		if imapPort == 0 {
			imapPort = 993
		}
		inbox, err := mail.NewInbox(os.Getenv("IMAP_USER"), os.Getenv("IMAP_PASS"), imapHost, imapPort)
		if err != nil {
			fatal("❌ Erro ao conectar no IMAP: %v", err)
		}
		defer inbox.Close()

		go worker.NewInboxWorker(inbox, processUC).Start(ctx)
	} else {
		log.Println("⚠️ IMAP não configurado; polling de e-mails desativado")
	}

	commandWorker := queue.NewWorker(rabbitMQ.Ch, controlUC)
	go commandWorker.Start(queue.CommandQueue)

	// Bootstrap completo: listener, workers e consumidor registrados.
	controlUC.SetReady(ctx)
	log.Println("Funil de vendas inicializado com sucesso!")

	// 7. Router
	webhookHandler := handlers.NewWebhookHandler(processUC, os.Getenv("WHATSAPP_VERIFY_TOKEN"))
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, controlUC)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Get("/webhook/whatsapp", webhookHandler.HandleVerify)
	r.Post("/webhook/whatsapp", webhookHandler.HandleMessages)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🔥 Motor do funil rodando na porta :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		fatal("❌ Servidor HTTP encerrou: %v", err)
	}
}
