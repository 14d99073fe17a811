package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

// NFTBalanceResponse reports how many tokens of a collection an account holds.
type NFTBalanceResponse struct {
	Contract string         `json:"contract"`
	Owner    string         `json:"owner"`
	Balance  *entity.BigInt `json:"balance"`
}

// TokenURIResponse carries the metadata URI of an ERC-1155 token id.
type TokenURIResponse struct {
	Contract string `json:"contract"`
	TokenID  string `json:"tokenId"`
	URI      string `json:"uri"`
}

// GetTokenMetadataHandler returns the ERC-20 descriptor of a contract.
func (h *Handler) GetTokenMetadataHandler(c *gin.Context) {
	ctx := c.Request.Context()

	metadata, err := h.tokens.GetTokenMetadata(ctx, c.Param("contract"), c.Query("network"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, metadata)
}

// GetTokenBalanceHandler returns an account's ERC-20 balance.
func (h *Handler) GetTokenBalanceHandler(c *gin.Context) {
	ctx := c.Request.Context()

	balance, err := h.tokens.GetTokenBalance(ctx, c.Param("contract"), c.Param("owner"), c.Query("network"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

// GetNFTCollectionHandler returns the name and symbol of an ERC-721 contract.
func (h *Handler) GetNFTCollectionHandler(c *gin.Context) {
	ctx := c.Request.Context()

	collection, err := h.tokens.GetNFTCollection(ctx, c.Param("contract"), c.Query("network"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, collection)
}

// GetNFTTokenHandler returns the owner and URI of a single ERC-721 token.
func (h *Handler) GetNFTTokenHandler(c *gin.Context) {
	ctx := c.Request.Context()

	token, err := h.tokens.GetNFTToken(ctx, c.Param("contract"), c.Param("tokenId"), c.Query("network"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// GetNFTBalanceHandler returns an account's ERC-721 holdings count.
func (h *Handler) GetNFTBalanceHandler(c *gin.Context) {
	ctx := c.Request.Context()

	contract := c.Param("contract")
	owner := c.Param("owner")
	balance, err := h.tokens.GetNFTBalance(ctx, contract, owner, c.Query("network"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NFTBalanceResponse{Contract: contract, Owner: owner, Balance: balance})
}

// GetERC1155BalanceHandler returns an account's balance of one ERC-1155
// token id.
func (h *Handler) GetERC1155BalanceHandler(c *gin.Context) {
	ctx := c.Request.Context()

	balance, err := h.tokens.GetERC1155Balance(ctx, c.Param("contract"), c.Param("owner"), c.Param("tokenId"), c.Query("network"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

// GetERC1155URIHandler returns the metadata URI of an ERC-1155 token id.
func (h *Handler) GetERC1155URIHandler(c *gin.Context) {
	ctx := c.Request.Context()

	contract := c.Param("contract")
	tokenID := c.Param("tokenId")
	uri, err := h.tokens.GetERC1155TokenURI(ctx, contract, tokenID, c.Query("network"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, TokenURIResponse{Contract: contract, TokenID: tokenID, URI: uri})
}
