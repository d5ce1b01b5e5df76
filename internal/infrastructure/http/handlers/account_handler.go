package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/dustmassingale/ProjectPlanningTool/internal/application/account"
	"github.com/dustmassingale/ProjectPlanningTool/internal/application/ports"
	domerrors "github.com/dustmassingale/ProjectPlanningTool/internal/domain/errors"
	"github.com/dustmassingale/ProjectPlanningTool/internal/infrastructure/http/middleware"
)

// AccountHandler is the boundary of the account workflow: request decoding,
// validation, error-kind mapping, cookies. No collaborator error leaves a
// handler undisguised.
type AccountHandler struct {
	login         *account.Login
	join          *account.Join
	forgot        *account.ForgotPassword
	reset         *account.ResetPassword
	switchTeam    *account.SwitchTeam
	logout        *account.Logout
	telemetry     ports.Telemetry
	validate      *validator.Validate
	log           zerolog.Logger
	secureCookies bool
}

func NewAccountHandler(
	login *account.Login,
	join *account.Join,
	forgot *account.ForgotPassword,
	reset *account.ResetPassword,
	switchTeam *account.SwitchTeam,
	logout *account.Logout,
	telemetry ports.Telemetry,
	log zerolog.Logger,
	secureCookies bool,
) *AccountHandler {
	return &AccountHandler{
		login:         login,
		join:          join,
		forgot:        forgot,
		reset:         reset,
		switchTeam:    switchTeam,
		logout:        logout,
		telemetry:     telemetry,
		validate:      validator.New(),
		log:           log,
		secureCookies: secureCookies,
	}
}

func (h *AccountHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AccountHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// internalError records the exception and answers with the generic message.
func (h *AccountHandler) internalError(w http.ResponseWriter, err error) {
	h.telemetry.RecordException(err)
	writeErr(w, http.StatusInternalServerError, genericProcessingError)
}

// respondError shapes a workflow failure by its kind. Business-rule errors
// carry their own message and a stable code; anything else collapses to the
// generic internal error so collaborator details never leak.
func (h *AccountHandler) respondError(w http.ResponseWriter, err error) {
	if domerrors.Classify(err) != domerrors.KindBusinessRule {
		h.internalError(w, err)
		return
	}
	status := businessStatus(err)
	code := defaultErrCode(status)
	if errors.Is(err, domerrors.ErrInvalidCredentials) {
		code = ErrCodeInvalidCredentials
	}
	writeErrCode(w, status, code, err.Error())
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "invalid email or password length")
		return
	}
	result, err := h.login.Execute(r.Context(), account.LoginInput{Email: email, Password: password})
	if err != nil {
		AuditLog(h.log, r, "account.login", 0, false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		h.respondError(w, err)
		return
	}
	AuditLog(h.log, r, "account.login", result.User.ID, true, "")
	middleware.RecordAuthAttempt("login", true)
	h.setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"redirect": result.RedirectTo,
		"user": map[string]interface{}{
			"id":    result.User.ID,
			"email": result.User.Email,
			"name":  result.User.Name,
		},
	})
}

func (h *AccountHandler) Join(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Name      string `json:"name" validate:"required,max=100"`
		Password  string `json:"password" validate:"required,min=8,max=128"`
		ReturnURL string `json:"return_url" validate:"max=512"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	name := SanitizeName(body.Name)
	password := SanitizePassword(body.Password)
	if email == "" || name == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "invalid email, name, or password length")
		return
	}
	result, err := h.join.Execute(r.Context(), account.JoinInput{
		Email:     email,
		Name:      name,
		Password:  password,
		ReturnURL: body.ReturnURL,
	})
	if err != nil {
		AuditLog(h.log, r, "account.join", 0, false, err.Error())
		middleware.RecordAuthAttempt("join", false)
		h.respondError(w, err)
		return
	}
	AuditLog(h.log, r, "account.join", result.Seed.UserID, true, "")
	middleware.RecordAuthAttempt("join", true)
	h.setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"redirect": result.RedirectTo,
		"user": map[string]interface{}{
			"id":    result.Seed.UserID,
			"email": result.Seed.Email,
		},
	})
}

func (h *AccountHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email,max=254"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	if email == "" {
		writeErr(w, http.StatusBadRequest, "invalid email")
		return
	}
	if _, err := h.forgot.Execute(r.Context(), account.ForgotPasswordInput{Email: email}); err != nil {
		h.internalError(w, err)
		return
	}
	// Accepted for every well-formed email: the response must not reveal
	// whether an account exists.
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "pending"})
}

func (h *AccountHandler) ResetPasswordLookup(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		writeErr(w, http.StatusBadRequest, "missing activation code")
		return
	}
	result, err := h.reset.Lookup(r.Context(), code)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"activation_code": result.ActivationCode})
}

func (h *AccountHandler) ResetPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ActivationCode string `json:"activation_code" validate:"required,max=128"`
		Password       string `json:"password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	password := SanitizePassword(body.Password)
	if password == "" {
		writeErr(w, http.StatusBadRequest, "invalid password length")
		return
	}
	result, err := h.reset.Submit(r.Context(), account.ResetSubmitInput{
		ActivationCode: body.ActivationCode,
		NewPassword:    password,
	})
	if err != nil {
		middleware.RecordAuthAttempt("reset_password", false)
		h.respondError(w, err)
		return
	}
	middleware.RecordAuthAttempt("reset_password", true)
	writeJSON(w, http.StatusOK, map[string]string{"redirect": result.RedirectTo})
}

// switchTeamResponse matches what the dashboard team picker expects.
type switchTeamResponse struct {
	Status  string `json:"Status"`
	Message string `json:"Message,omitempty"`
}

func (h *AccountHandler) SwitchTeam(w http.ResponseWriter, r *http.Request) {
	token, sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		writeErr(w, http.StatusUnauthorized, "sign in required")
		return
	}
	var body struct {
		TeamID int64 `json:"team_id" validate:"required,gt=0"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	_, err := h.switchTeam.Execute(r.Context(), account.SwitchTeamInput{
		SessionToken: token,
		UserID:       sess.UserID,
		TeamID:       body.TeamID,
	})
	if err != nil {
		AuditLog(h.log, r, "account.switch_team", sess.UserID, false, err.Error())
		// Legacy payload shape for the team picker, still routed by kind.
		if domerrors.Classify(err) == domerrors.KindBusinessRule {
			writeJSON(w, http.StatusForbidden, switchTeamResponse{
				Status:  "Error",
				Message: "You do not belong to this team!",
			})
			return
		}
		h.telemetry.RecordException(err)
		writeJSON(w, http.StatusInternalServerError, switchTeamResponse{
			Status:  "Error",
			Message: "Error processing your request",
		})
		return
	}
	AuditLog(h.log, r, "account.switch_team", sess.UserID, true, "")
	writeJSON(w, http.StatusOK, switchTeamResponse{Status: "Success"})
}

func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie(middleware.CookieName); err == nil {
		token = cookie.Value
	}
	result, err := h.logout.Execute(r.Context(), token)
	if err != nil {
		h.internalError(w, err)
		return
	}
	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"redirect": result.RedirectTo})
}
