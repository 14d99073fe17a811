package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

// AgentAskRequest carries a natural language question for the agent.
type AgentAskRequest struct {
	Prompt string `json:"prompt"`
}

// AskAgentHandler answers a natural language question, calling chain tools
// when the model decides it needs live data.
func (h *Handler) AskAgentHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var req AgentAskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &entity.ValidationError{Field: "body", Msg: "malformed JSON request", Cause: err})
		return
	}

	reply, err := h.agent.Ask(ctx, req.Prompt)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}
