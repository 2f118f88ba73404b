package handler

import (
	"anxonews-server/internal/apierrors"
	"anxonews-server/internal/clients/mailerlite"
	"anxonews-server/internal/observability"
	"anxonews-server/internal/subscribe/processor"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// maxBodyBytes caps the request body; a subscribe payload is tiny and
// anything bigger is abuse.
const maxBodyBytes = 1024

// Client-facing messages. Generic on purpose: internal details stay in
// the server logs.
const (
	msgInvalidEmail      = "Por favor ingresa un email válido."
	msgNameTooShort      = "El nombre debe tener al menos 2 caracteres"
	msgNameTooLong       = "El nombre es demasiado largo"
	msgNameInvalidChars  = "El nombre contiene caracteres no permitidos"
	msgAlreadySubscribed = "Este email ya está suscrito."
	msgServerError       = "No se pudo procesar la suscripción. Intenta más tarde."
	msgConfigError       = "Servicio temporalmente no disponible."
)

type Handler struct {
	processor processor.SubscribeProcessor
	logger    *observability.Logger
}

func New(processor processor.SubscribeProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// SubscribeRequest represents the HTTP request for subscribing an email
type SubscribeRequest struct {
	Email string  `json:"email"`
	Name  *string `json:"name,omitempty"`
}

// HandleSubscribe handles POST /api/subscribe
func (h *Handler) HandleSubscribe(c *gin.Context) {
	ctx := c.Request.Context()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "failed to bind request", err)
		apierrors.BadRequest(c, msgInvalidEmail)
		return
	}

	err := h.processor.Subscribe(ctx, processor.SubscribeRequest{
		Email: req.Email,
		Name:  req.Name,
	})
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Suscripción exitosa"})
		return
	}

	switch {
	case errors.Is(err, processor.ErrInvalidEmail):
		apierrors.BadRequest(c, msgInvalidEmail)
	case errors.Is(err, processor.ErrNameTooShort):
		apierrors.BadRequest(c, msgNameTooShort)
	case errors.Is(err, processor.ErrNameTooLong):
		apierrors.BadRequest(c, msgNameTooLong)
	case errors.Is(err, processor.ErrNameInvalidChars):
		apierrors.BadRequest(c, msgNameInvalidChars)
	case errors.Is(err, processor.ErrNotConfigured):
		apierrors.ServiceUnavailable(c, msgConfigError, err)
	case errors.Is(err, mailerlite.ErrAlreadySubscribed):
		apierrors.Conflict(c, msgAlreadySubscribed, upstreamDebug(err))
	default:
		apierrors.InternalError(c, msgServerError, upstreamDebug(err), err)
	}
}

// upstreamDebug extracts provider correlation details when the error
// came from the upstream API.
func upstreamDebug(err error) *apierrors.Debug {
	var upstream *mailerlite.UpstreamError
	if !errors.As(err, &upstream) {
		return nil
	}
	return &apierrors.Debug{
		Status:  upstream.StatusCode,
		Message: upstream.Message,
	}
}
