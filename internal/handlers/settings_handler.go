package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vgpsi/clinic-scheduler/internal/audit"
	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/httpresp"
	"github.com/vgpsi/clinic-scheduler/internal/media"
	"github.com/vgpsi/clinic-scheduler/internal/models"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

// 5 MB por imagem é mais do que suficiente para foto de perfil e assinatura.
const maxImageBytes = 5 << 20

// ======================================================
// HANDLER
// ======================================================

type SettingsHandler struct {
	store    store.Store
	audit    audit.Recorder
	uploader *media.Uploader // nil desabilita uploads
}

func NewSettingsHandler(st store.Store, ad audit.Recorder, uploader *media.Uploader) *SettingsHandler {
	return &SettingsHandler{store: st, audit: ad, uploader: uploader}
}

// ======================================================
// REQUESTS
// ======================================================

type ConsultationTypeRequest struct {
	Name  string   `json:"name" binding:"required"`
	Price *float64 `json:"price" binding:"required"`
}

type UpdateAccountRequest struct {
	Name string `json:"name" binding:"required"`
}

// ======================================================
// TIPOS DE CONSULTA
// ======================================================

func (h *SettingsHandler) ListConsultationTypes(c *gin.Context) {
	types, err := h.store.ConsultationTypes(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "consultation_types_failed", "Erro ao listar tipos de consulta.")
		return
	}
	httpresp.List(c, types)
}

func (h *SettingsHandler) CreateConsultationType(c *gin.Context) {
	var req ConsultationTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if *req.Price < 0 {
		httperr.BadRequest(c, "invalid_price", "Preço não pode ser negativo.")
		return
	}

	types, err := h.store.ConsultationTypes(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "consultation_types_failed", "Erro ao carregar tipos de consulta.")
		return
	}

	ct := models.ConsultationType{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(req.Name),
		Price: *req.Price,
	}
	types = append(types, ct)

	if err := h.store.ReplaceConsultationTypes(c.Request.Context(), types); err != nil {
		httperr.Internal(c, "consultation_types_failed", "Erro ao salvar tipos de consulta.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "consultation_type_created",
		Entity:   "consultation_type",
		EntityID: ct.ID,
		Metadata: map[string]any{"name": ct.Name, "price": ct.Price},
	})

	httpresp.Created(c, ct)
}

// UpdateConsultationType altera nome e preço. Consultas já agendadas
// mantêm o preço congelado na criação.
func (h *SettingsHandler) UpdateConsultationType(c *gin.Context) {
	var req ConsultationTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if *req.Price < 0 {
		httperr.BadRequest(c, "invalid_price", "Preço não pode ser negativo.")
		return
	}

	types, err := h.store.ConsultationTypes(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "consultation_types_failed", "Erro ao carregar tipos de consulta.")
		return
	}

	id := c.Param("id")
	var updated *models.ConsultationType
	for i := range types {
		if types[i].ID == id {
			types[i].Name = strings.TrimSpace(req.Name)
			types[i].Price = *req.Price
			updated = &types[i]
			break
		}
	}
	if updated == nil {
		httperr.NotFound(c, "consultation_type_not_found", "Tipo de consulta não encontrado.")
		return
	}

	if err := h.store.ReplaceConsultationTypes(c.Request.Context(), types); err != nil {
		httperr.Internal(c, "consultation_types_failed", "Erro ao salvar tipos de consulta.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "consultation_type_updated",
		Entity:   "consultation_type",
		EntityID: updated.ID,
	})

	c.JSON(200, updated)
}

// ======================================================
// CONTA
// ======================================================

func (h *SettingsHandler) GetAccount(c *gin.Context) {
	account, err := h.store.Account(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "account_error", "Erro ao carregar a conta.")
		return
	}
	if account == nil {
		httperr.NotFound(c, "account_not_found", "Conta ainda não inicializada.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":                account.Name,
		"password_changed":    account.PasswordChanged,
		"profile_image_key":   account.ProfileImageKey,
		"signature_image_key": account.SignatureImageKey,
	})
}

func (h *SettingsHandler) UpdateAccount(c *gin.Context) {
	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	account, err := h.store.Account(c.Request.Context())
	if err != nil || account == nil {
		httperr.Internal(c, "account_error", "Erro ao carregar a conta.")
		return
	}

	account.Name = strings.TrimSpace(req.Name)
	if err := h.store.SaveAccount(c.Request.Context(), account); err != nil {
		httperr.Internal(c, "account_error", "Erro ao salvar a conta.")
		return
	}

	h.audit.Dispatch(audit.Event{Action: "account_updated", Entity: "account", EntityID: "practitioner"})

	c.JSON(http.StatusOK, gin.H{"name": account.Name})
}

// ======================================================
// IMAGENS (PERFIL E ASSINATURA)
// ======================================================

func (h *SettingsHandler) UploadProfileImage(c *gin.Context) {
	h.uploadImage(c, "profile")
}

func (h *SettingsHandler) UploadSignatureImage(c *gin.Context) {
	h.uploadImage(c, "signature")
}

func (h *SettingsHandler) uploadImage(c *gin.Context, kind string) {
	if h.uploader == nil {
		httperr.Internal(c, "uploads_disabled", "Armazenamento de imagens não configurado.")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Envie a imagem no campo 'file'.")
		return
	}
	if file.Size > maxImageBytes {
		httperr.BadRequest(c, "file_too_large", "Imagem muito grande.")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao ler a imagem.")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao ler a imagem.")
		return
	}

	key := kind + "/" + uuid.NewString() + ".webp"
	if err := h.uploader.Upload(c.Request.Context(), key, data); err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao enviar a imagem.")
		return
	}

	account, err := h.store.Account(c.Request.Context())
	if err != nil || account == nil {
		httperr.Internal(c, "account_error", "Erro ao carregar a conta.")
		return
	}

	switch kind {
	case "profile":
		account.ProfileImageKey = key
	case "signature":
		account.SignatureImageKey = key
	}

	if err := h.store.SaveAccount(c.Request.Context(), account); err != nil {
		httperr.Internal(c, "account_error", "Erro ao salvar a conta.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   kind + "_image_uploaded",
		Entity:   "account",
		EntityID: "practitioner",
		Metadata: map[string]any{"key": key},
	})

	c.JSON(http.StatusOK, gin.H{"key": key})
}
