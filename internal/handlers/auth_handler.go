package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/vgpsi/clinic-scheduler/internal/audit"
	"github.com/vgpsi/clinic-scheduler/internal/config"
	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/models"
	"github.com/vgpsi/clinic-scheduler/internal/store"
	ucNotification "github.com/vgpsi/clinic-scheduler/internal/usecase/notification"
)

// Senha de fábrica da conta única. Enquanto estiver em uso, a etapa de
// onboarding aparece a cada login.
const defaultPassword = "2577"

type AuthHandler struct {
	store  store.Store
	config *config.Config
	audit  audit.Recorder
	seq    *ucNotification.Sequencer
}

func NewAuthHandler(st store.Store, cfg *config.Config, ad audit.Recorder, seq *ucNotification.Sequencer) *AuthHandler {
	return &AuthHandler{store: st, config: cfg, audit: ad, seq: seq}
}

// --------- Requests ---------

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=4"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	account, err := h.ensureAccount(c)
	if err != nil {
		httperr.Internal(c, "account_error", "Erro ao carregar a conta.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Senha incorreta.")
		return
	}

	token, err := h.generateToken()
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	// novo login descarta a sequência de avisos anterior
	h.seq.Reset()

	h.audit.Dispatch(audit.Event{Action: "login", Entity: "account", EntityID: "practitioner"})

	c.JSON(http.StatusOK, gin.H{
		"account": gin.H{
			"name":              account.Name,
			"password_changed":  account.PasswordChanged,
			"profile_image_key": account.ProfileImageKey,
		},
		"token": token,
	})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	account, err := h.ensureAccount(c)
	if err != nil {
		httperr.Internal(c, "account_error", "Erro ao carregar a conta.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Senha atual incorreta.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(req.NewPassword)), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao salvar a senha.")
		return
	}

	account.PasswordHash = string(hashed)
	account.PasswordChanged = true

	if err := h.store.SaveAccount(c.Request.Context(), account); err != nil {
		httperr.Internal(c, "account_error", "Erro ao salvar a conta.")
		return
	}

	h.audit.Dispatch(audit.Event{Action: "password_changed", Entity: "account", EntityID: "practitioner"})

	c.JSON(http.StatusOK, gin.H{"password_changed": true})
}

// ensureAccount devolve a conta única, criando-a com a senha de fábrica no
// primeiro acesso.
func (h *AuthHandler) ensureAccount(c *gin.Context) (*models.Account, error) {
	account, err := h.store.Account(c.Request.Context())
	if err != nil {
		return nil, err
	}
	if account != nil {
		return account, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account = &models.Account{
		Name:            "Profissional",
		PasswordHash:    string(hashed),
		PasswordChanged: false,
	}
	if err := h.store.SaveAccount(c.Request.Context(), account); err != nil {
		return nil, err
	}
	return account, nil
}

// --------- JWT ---------

func (h *AuthHandler) generateToken() (string, error) {
	claims := jwt.MapClaims{
		"sub": "practitioner",
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
