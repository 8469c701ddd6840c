package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"meditation-backend/config"
	"meditation-backend/core/auth"
	"meditation-backend/core/catalog"
	"meditation-backend/core/practice"
	"meditation-backend/logger"
	"meditation-backend/model"
	"meditation-backend/repository"
	"meditation-backend/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// APIHandler serves every /api/v1 endpoint.
type APIHandler struct {
	cfg      *config.Config
	db       *gorm.DB
	tokens   *auth.TokenService
	accounts *auth.Accounts
	catalog  *catalog.Service
	ledger   *practice.Ledger
	validate *validator.Validate
}

// NewAPIHandler wires the repositories and services on top of gdb and blobs.
// now may be nil.
func NewAPIHandler(
	cfg *config.Config,
	gdb *gorm.DB,
	tokens *auth.TokenService,
	blobs storage.BlobStore,
	now func() time.Time,
) *APIHandler {
	validate := validator.New()
	// Report payload fields by their JSON names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &APIHandler{
		cfg:      cfg,
		db:       gdb,
		tokens:   tokens,
		accounts: auth.NewAccounts(repository.NewUserRepository(gdb), tokens),
		catalog:  catalog.NewService(repository.NewMeditationRepository(gdb), blobs),
		ledger:   practice.NewLedger(repository.NewSessionRepository(gdb), now),
		validate: validate,
	}
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", logger.ErrorField(err))
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// fail maps a service error to its HTTP status. notFound is the detail used for
// repository.ErrNotFound.
func (h *APIHandler) fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, repository.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, auth.ErrPasswordTooLong):
		writeError(w, http.StatusBadRequest, "Password is too long")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, auth.ErrForbidden):
		writeError(w, http.StatusForbidden, "Admin only")
	case errors.Is(err, catalog.ErrNotAudio):
		writeError(w, http.StatusBadRequest, "File must be an audio file")
	case errors.Is(err, model.ErrNullField):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, practice.ErrAlreadyCompleted):
		writeError(w, http.StatusConflict, "Session already completed")
	default:
		logger.Error("Request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decode reads a JSON body into dst and runs its validation tags. On failure
// the 400 response has already been written.
func (h *APIHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Debug("Invalid request body", logger.String("path", r.URL.Path), logger.ErrorField(err))
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, validationDetail(err))
		return false
	}
	return true
}

func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email address", fe.Field()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(parts, "; ")
}

// pathID parses a numeric mux variable. Routes constrain ids to digits, so an
// error here only means overflow.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return id, true
}
