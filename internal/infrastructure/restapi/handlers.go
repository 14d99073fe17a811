package restapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souvik0908/sei-sense/internal/app/port"
	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

// Handler carries the service ports the REST surface exposes.
type Handler struct {
	networks  port.NetworkRegistry
	reads     port.ChainReadService
	tokens    port.TokenService
	history   port.HistoryService
	analysis  port.AnalysisService
	transfers port.TransferService
	agent     port.AgentService
	logger    port.Logger
}

// NewHandler creates a new instance of Handler.
func NewHandler(
	networks port.NetworkRegistry,
	reads port.ChainReadService,
	tokens port.TokenService,
	history port.HistoryService,
	analysis port.AnalysisService,
	transfers port.TransferService,
	agent port.AgentService,
	l port.Logger,
) *Handler {
	return &Handler{
		networks:  networks,
		reads:     reads,
		tokens:    tokens,
		history:   history,
		analysis:  analysis,
		transfers: transfers,
		agent:     agent,
		logger:    l,
	}
}

// writeError maps domain error types onto HTTP status codes: bad input is
// 400, unknown networks 404, node failures 502, anything unrecognized 500.
// The body always carries a single error message.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var (
		addrErr *entity.InvalidAddressError
		keyErr  *entity.InvalidKeyError
		valErr  *entity.ValidationError
		netErr  *entity.UnsupportedNetworkError
		rpcErr  *entity.NodeCommunicationError
	)
	switch {
	case errors.As(err, &addrErr), errors.As(err, &keyErr), errors.As(err, &valErr):
		status = http.StatusBadRequest
	case errors.As(err, &netErr):
		status = http.StatusNotFound
	case errors.As(err, &rpcErr):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// HealthHandler reports liveness.
func (h *Handler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
