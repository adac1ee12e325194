package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vgpsi/clinic-scheduler/internal/audit"
	"github.com/vgpsi/clinic-scheduler/internal/clock"
	"github.com/vgpsi/clinic-scheduler/internal/config"
	"github.com/vgpsi/clinic-scheduler/internal/domain/schedule"
	"github.com/vgpsi/clinic-scheduler/internal/handlers"
	"github.com/vgpsi/clinic-scheduler/internal/ledger"
	"github.com/vgpsi/clinic-scheduler/internal/media"
	"github.com/vgpsi/clinic-scheduler/internal/middleware"
	"github.com/vgpsi/clinic-scheduler/internal/notifylog"
	"github.com/vgpsi/clinic-scheduler/internal/payments"
	"github.com/vgpsi/clinic-scheduler/internal/store"
	ucAppointment "github.com/vgpsi/clinic-scheduler/internal/usecase/appointment"
	ucNotes "github.com/vgpsi/clinic-scheduler/internal/usecase/notes"
	ucNotification "github.com/vgpsi/clinic-scheduler/internal/usecase/notification"
	ucPatient "github.com/vgpsi/clinic-scheduler/internal/usecase/patient"
	ucSession "github.com/vgpsi/clinic-scheduler/internal/usecase/session"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, st store.Store, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	ck := clock.System()

	window := schedule.Window{
		DayStart:       cfg.WorkDayStart,
		DayEnd:         cfg.WorkDayEnd,
		SlotMinutes:    cfg.SlotMinutes,
		OverbookFactor: cfg.OverbookFactor,
	}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	txLedger := ledger.New(db)
	notifLog := notifylog.New(db)

	var charger payments.Charger
	if mp, err := payments.NewMercadoPago(cfg.MercadoPagoToken, cfg.PayerEmail); err != nil {
		log.Printf("mercado pago desabilitado: %v", err)
	} else if mp != nil {
		charger = mp
	}

	var uploader *media.Uploader
	if cfg.S3Bucket != "" {
		uploader = media.NewUploader(media.UploaderConfig{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreate(st, auditDispatcher, ck)
	rescheduleAppointmentUC := ucAppointment.NewReschedule(st, auditDispatcher, ck)
	cancelAppointmentUC := ucAppointment.NewCancel(st, auditDispatcher)
	completeAppointmentUC := ucAppointment.NewComplete(st, txLedger, auditDispatcher)
	listAppointmentsByDateUC := ucAppointment.NewListByDate(st)
	listAppointmentsByMonthUC := ucAppointment.NewListByMonth(st)
	availabilityUC := ucAppointment.NewGetAvailability(st, window, ck)
	markReminderUC := ucAppointment.NewMarkReminderSent(st, notifLog, auditDispatcher)

	// ======================================================
	// 🧠 USE CASES — PACIENTES E ANOTAÇÕES
	// ======================================================
	listPatientsUC := &ucPatient.List{Store: st}
	createPatientUC := &ucPatient.Create{Store: st, Audit: auditDispatcher, Clock: ck}
	updatePatientUC := &ucPatient.Update{Store: st, Audit: auditDispatcher}
	saveAnamnesisUC := &ucPatient.SaveAnamnesis{Store: st, Audit: auditDispatcher}

	saveNoteUC := &ucNotes.Save{Store: st, Audit: auditDispatcher, Clock: ck}
	editNoteUC := &ucNotes.Edit{Store: st, Audit: auditDispatcher}
	listNotesUC := &ucNotes.ListByPatient{Store: st}

	// ======================================================
	// 🧠 MODO CONSULTA E AVISOS
	// ======================================================
	sessionController := ucSession.NewController(st, txLedger, auditDispatcher, ck, charger)
	sequencer := ucNotification.NewSequencer(st, ck)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(st, cfg, auditDispatcher, sequencer)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		rescheduleAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		availabilityUC,
	)

	patientHandler := handlers.NewPatientHandler(
		listPatientsUC,
		createPatientUC,
		updatePatientUC,
		saveAnamnesisUC,
		listNotesUC,
	)

	sessionHandler := handlers.NewSessionHandler(sessionController, saveNoteUC, editNoteUC)
	notificationHandler := handlers.NewNotificationHandler(sequencer, markReminderUC, notifLog)
	settingsHandler := handlers.NewSettingsHandler(st, auditDispatcher, uploader)
	financeHandler := handlers.NewFinanceHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	eventsHandler := handlers.NewEventsHandler(st)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/auth/change-password", authHandler.ChangePassword)

			// ------------------------------
			// PACIENTES
			// ------------------------------
			secured.GET("/patients", patientHandler.List)
			secured.POST("/patients", patientHandler.Create)
			secured.PATCH("/patients/:id", patientHandler.Update)
			secured.PUT("/patients/:id/anamnesis", patientHandler.SaveAnamnesis)
			secured.GET("/patients/:id/notes", patientHandler.ListNotes)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.GET("/availability", appointmentHandler.AvailabilityByDate)
			secured.GET("/availability/month", appointmentHandler.AvailabilityByMonth)

			// ------------------------------
			// MODO CONSULTA
			// ------------------------------
			secured.POST("/session/open", sessionHandler.Open)
			secured.POST("/session/start", sessionHandler.Start)
			secured.POST("/session/end", sessionHandler.End)
			secured.POST("/session/finalize", sessionHandler.Finalize)
			secured.POST("/session/payment", sessionHandler.ConfirmPayment)
			secured.POST("/session/receipt", sessionHandler.CloseReceipt)
			secured.POST("/session/close", sessionHandler.Close)
			secured.GET("/session", sessionHandler.State)
			secured.GET("/session/completeness", sessionHandler.Completeness)
			secured.POST("/session/notes", sessionHandler.SaveNote)
			secured.PATCH("/session/notes/:id", sessionHandler.EditNote)

			// ------------------------------
			// AVISOS PÓS-LOGIN
			// ------------------------------
			secured.POST("/notifications/start", notificationHandler.Start)
			secured.GET("/notifications/current", notificationHandler.Current)
			secured.POST("/notifications/dismiss", notificationHandler.Dismiss)
			secured.PATCH("/notifications/reminders/:id/sent", notificationHandler.MarkReminderSent)
			secured.GET("/notifications/log", notificationHandler.ListLog)

			// ------------------------------
			// CONFIGURAÇÕES
			// ------------------------------
			secured.GET("/settings/consultation-types", settingsHandler.ListConsultationTypes)
			secured.POST("/settings/consultation-types", settingsHandler.CreateConsultationType)
			secured.PATCH("/settings/consultation-types/:id", settingsHandler.UpdateConsultationType)
			secured.GET("/settings/account", settingsHandler.GetAccount)
			secured.PATCH("/settings/account", settingsHandler.UpdateAccount)
			secured.POST("/settings/account/profile-image", settingsHandler.UploadProfileImage)
			secured.POST("/settings/account/signature-image", settingsHandler.UploadSignatureImage)

			// ------------------------------
			// FINANCEIRO E AUDITORIA
			// ------------------------------
			// ------------------------------
			// FEED DE MUDANÇAS (SSE)
			// ------------------------------
			secured.GET("/events", eventsHandler.Stream)

			secured.GET("/finance/transactions", financeHandler.ListTransactions)
			secured.GET("/finance/transactions/month", financeHandler.ListByMonth)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
