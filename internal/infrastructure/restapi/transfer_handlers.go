package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

// NativeTransferRequest describes a native coin transfer.
type NativeTransferRequest struct {
	To      string `json:"to"`
	Amount  string `json:"amount"`
	Network string `json:"network"`
}

// ERC20TransferRequest describes an ERC-20 transfer or approval. To is the
// recipient for transfers and the spender for approvals.
type ERC20TransferRequest struct {
	Token   string `json:"token"`
	To      string `json:"to"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
	Network string `json:"network"`
}

// NFTTransferRequest describes an ERC-721 or ERC-1155 transfer. Amount is
// only used for ERC-1155 and defaults to 1 when omitted.
type NFTTransferRequest struct {
	Contract string `json:"contract"`
	To       string `json:"to"`
	TokenID  string `json:"tokenId"`
	Amount   string `json:"amount"`
	Network  string `json:"network"`
}

// TransferNativeHandler submits a native coin transfer.
func (h *Handler) TransferNativeHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var req NativeTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &entity.ValidationError{Field: "body", Msg: "malformed JSON request", Cause: err})
		return
	}

	receipt, err := h.transfers.TransferNative(ctx, req.To, req.Amount, req.Network)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// TransferERC20Handler submits an ERC-20 transfer.
func (h *Handler) TransferERC20Handler(c *gin.Context) {
	ctx := c.Request.Context()

	var req ERC20TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &entity.ValidationError{Field: "body", Msg: "malformed JSON request", Cause: err})
		return
	}

	receipt, err := h.transfers.TransferERC20(ctx, req.Token, req.To, req.Amount, req.Network)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// ApproveERC20Handler submits an ERC-20 allowance approval.
func (h *Handler) ApproveERC20Handler(c *gin.Context) {
	ctx := c.Request.Context()

	var req ERC20TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &entity.ValidationError{Field: "body", Msg: "malformed JSON request", Cause: err})
		return
	}

	receipt, err := h.transfers.ApproveERC20(ctx, req.Token, req.Spender, req.Amount, req.Network)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// TransferERC721Handler submits an ERC-721 transfer.
func (h *Handler) TransferERC721Handler(c *gin.Context) {
	ctx := c.Request.Context()

	var req NFTTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &entity.ValidationError{Field: "body", Msg: "malformed JSON request", Cause: err})
		return
	}

	receipt, err := h.transfers.TransferERC721(ctx, req.Contract, req.To, req.TokenID, req.Network)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// TransferERC1155Handler submits an ERC-1155 transfer.
func (h *Handler) TransferERC1155Handler(c *gin.Context) {
	ctx := c.Request.Context()

	var req NFTTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &entity.ValidationError{Field: "body", Msg: "malformed JSON request", Cause: err})
		return
	}

	amount := req.Amount
	if amount == "" {
		amount = "1"
	}

	receipt, err := h.transfers.TransferERC1155(ctx, req.Contract, req.To, req.TokenID, amount, req.Network)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}
