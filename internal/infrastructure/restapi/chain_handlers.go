package restapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

// NetworksResponse lists the supported network aliases and the default.
type NetworksResponse struct {
	Networks       []string `json:"networks"`
	DefaultNetwork string   `json:"defaultNetwork"`
}

// ContractCheckResponse reports whether an address carries bytecode.
type ContractCheckResponse struct {
	Address    string `json:"address"`
	IsContract bool   `json:"isContract"`
}

// ContractCallRequest describes a contract function invocation. The same
// shape serves both read-only calls and state-changing writes.
type ContractCallRequest struct {
	Contract string `json:"contract"`
	ABI      string `json:"abi"`
	Function string `json:"function"`
	Args     []any  `json:"args"`
	Network  string `json:"network"`
}

// ContractReadResponse carries the decoded result of a read-only call.
type ContractReadResponse struct {
	Result any `json:"result"`
}

// ContractWriteResponse carries the hash of a submitted transaction.
type ContractWriteResponse struct {
	TxHash string `json:"txHash"`
}

// ListNetworksHandler returns the supported network aliases.
func (h *Handler) ListNetworksHandler(c *gin.Context) {
	response := NetworksResponse{
		Networks:       h.networks.SupportedNetworks(),
		DefaultNetwork: h.defaultNetworkName(),
	}
	c.JSON(http.StatusOK, response)
}

// GetNetworkHandler resolves a network name strictly and returns its
// descriptor. Unknown names produce 404.
func (h *Handler) GetNetworkHandler(c *gin.Context) {
	descriptor, err := h.networks.DescriptorByName(c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, descriptor)
}

// GetBalanceHandler returns the native balance of an account.
func (h *Handler) GetBalanceHandler(c *gin.Context) {
	ctx := c.Request.Context()

	balance, err := h.reads.GetBalance(ctx, c.Param("address"), c.Query("network"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

// GetLatestBlockHandler returns the current head block.
func (h *Handler) GetLatestBlockHandler(c *gin.Context) {
	ctx := c.Request.Context()

	includeTxs, err := parseIncludeTxs(c)
	if err != nil {
		writeError(c, err)
		return
	}

	block, err := h.reads.GetLatestBlock(ctx, c.Query("network"), includeTxs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

// GetBlockHandler returns a block addressed either by decimal height or by
// 0x-prefixed hash.
func (h *Handler) GetBlockHandler(c *gin.Context) {
	ctx := c.Request.Context()

	includeTxs, err := parseIncludeTxs(c)
	if err != nil {
		writeError(c, err)
		return
	}

	id := c.Param("id")
	var block *entity.Block
	if strings.HasPrefix(id, "0x") {
		block, err = h.reads.GetBlockByHash(ctx, id, c.Query("network"), includeTxs)
	} else {
		var number uint64
		number, err = strconv.ParseUint(id, 10, 64)
		if err != nil {
			writeError(c, &entity.ValidationError{Field: "block", Msg: "must be a decimal height or a 0x-prefixed hash"})
			return
		}
		block, err = h.reads.GetBlockByNumber(ctx, number, c.Query("network"), includeTxs)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

// GetTransactionHandler returns a transaction by hash.
func (h *Handler) GetTransactionHandler(c *gin.Context) {
	ctx := c.Request.Context()

	record, err := h.reads.GetTransaction(ctx, c.Param("hash"), c.Query("network"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetHistoryHandler returns recent transactions involving an address.
func (h *Handler) GetHistoryHandler(c *gin.Context) {
	ctx := c.Request.Context()

	limit, err := parseLimit(c)
	if err != nil {
		writeError(c, err)
		return
	}

	historyResult, err := h.history.GetTransactionHistory(ctx, c.Param("address"), c.Query("network"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, historyResult)
}

// GetActivityHandler returns an activity summary for an address.
func (h *Handler) GetActivityHandler(c *gin.Context) {
	ctx := c.Request.Context()

	activity, err := h.history.GetWalletActivity(ctx, c.Param("address"), c.Query("network"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity)
}

// AnalyzeWalletHandler returns a heuristic wallet risk analysis.
func (h *Handler) AnalyzeWalletHandler(c *gin.Context) {
	ctx := c.Request.Context()

	analysis, err := h.analysis.AnalyzeWallet(ctx, c.Param("address"), c.Query("network"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// CheckContractHandler reports whether bytecode is deployed at an address.
func (h *Handler) CheckContractHandler(c *gin.Context) {
	ctx := c.Request.Context()

	address := c.Param("address")
	isContract, err := h.reads.IsContract(ctx, address, c.Query("network"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ContractCheckResponse{Address: address, IsContract: isContract})
}

// ReadContractHandler executes a read-only contract call.
func (h *Handler) ReadContractHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var req ContractCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &entity.ValidationError{Field: "body", Msg: "malformed JSON request", Cause: err})
		return
	}

	result, err := h.reads.ReadContract(ctx, req.Contract, req.ABI, req.Function, req.Args, req.Network)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ContractReadResponse{Result: result})
}

// WriteContractHandler submits a state-changing contract call.
func (h *Handler) WriteContractHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var req ContractCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &entity.ValidationError{Field: "body", Msg: "malformed JSON request", Cause: err})
		return
	}

	txHash, err := h.reads.WriteContract(ctx, req.Contract, req.ABI, req.Function, req.Args, req.Network)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ContractWriteResponse{TxHash: txHash})
}

func (h *Handler) defaultNetworkName() string {
	descriptor, err := h.networks.Descriptor(h.networks.DefaultChainID())
	if err != nil {
		return ""
	}
	return descriptor.Name
}

func parseIncludeTxs(c *gin.Context) (bool, error) {
	raw := c.DefaultQuery("includeTransactions", "false")
	includeTxs, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &entity.ValidationError{Field: "includeTransactions", Msg: "must be a boolean"}
	}
	return includeTxs, nil
}

func parseLimit(c *gin.Context) (int, error) {
	raw := c.DefaultQuery("limit", "0")
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, &entity.ValidationError{Field: "limit", Msg: "must be a non-negative integer"}
	}
	return limit, nil
}
