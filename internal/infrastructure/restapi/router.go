package restapi

import (
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/souvik0908/sei-sense/internal/pkg/utils"
	"github.com/souvik0908/sei-sense/pkg/metrics"
)

// SetupRouter configures and returns the Gin engine with all REST routes
// attached. Tool protocol routes, swagger and profiling endpoints are
// registered separately by the caller.
func SetupRouter(h *Handler, zapLogger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(utils.ZapLoggerMiddleware(zapLogger.Named("HTTP")))
	router.Use(gin.Recovery())
	router.Use(requestMetrics())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", h.HealthHandler)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/networks", h.ListNetworksHandler)
		v1.GET("/networks/:name", h.GetNetworkHandler)

		v1.GET("/balance/:address", h.GetBalanceHandler)

		v1.GET("/blocks/latest", h.GetLatestBlockHandler)
		v1.GET("/blocks/:id", h.GetBlockHandler)

		v1.GET("/transactions/:hash", h.GetTransactionHandler)

		v1.GET("/accounts/:address/history", h.GetHistoryHandler)
		v1.GET("/accounts/:address/activity", h.GetActivityHandler)
		v1.GET("/accounts/:address/analysis", h.AnalyzeWalletHandler)
		v1.GET("/accounts/:address/contract", h.CheckContractHandler)

		v1.POST("/contracts/read", h.ReadContractHandler)
		v1.POST("/contracts/write", h.WriteContractHandler)

		v1.GET("/tokens/:contract", h.GetTokenMetadataHandler)
		v1.GET("/tokens/:contract/balance/:owner", h.GetTokenBalanceHandler)

		v1.GET("/nft/:contract", h.GetNFTCollectionHandler)
		v1.GET("/nft/:contract/tokens/:tokenId", h.GetNFTTokenHandler)
		v1.GET("/nft/:contract/balance/:owner", h.GetNFTBalanceHandler)

		v1.GET("/erc1155/:contract/tokens/:tokenId/uri", h.GetERC1155URIHandler)
		v1.GET("/erc1155/:contract/balance/:owner/:tokenId", h.GetERC1155BalanceHandler)

		v1.POST("/transfers/native", h.TransferNativeHandler)
		v1.POST("/transfers/erc20", h.TransferERC20Handler)
		v1.POST("/transfers/erc20/approve", h.ApproveERC20Handler)
		v1.POST("/transfers/erc721", h.TransferERC721Handler)
		v1.POST("/transfers/erc1155", h.TransferERC1155Handler)

		v1.POST("/agent", h.AskAgentHandler)
	}

	return router
}

// requestMetrics counts requests per matched route and status code.
func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
