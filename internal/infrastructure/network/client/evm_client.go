package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/souvik0908/sei-sense/internal/domain/entity"
	"github.com/souvik0908/sei-sense/pkg/metrics"
)

// EVMClient implements the port.ChainReader interface for EVM-compatible
// networks. Every call gets its own timeout derived from the configured RPC
// call timeout.
type EVMClient struct {
	ethClient      *ethclient.Client
	netDef         entity.NetworkDescriptor
	rpcCallTimeout time.Duration
}

// ERC20 ABI minimal part for metadata reads
const erc20MetadataABI = `[
	{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

var (
	parsedMetadataABI  abi.ABI
	parsedMetadataOnce sync.Once
)

func initParsedMetadataABI() {
	parsedMetadataOnce.Do(func() {
		var err error
		parsedMetadataABI, err = abi.JSON(strings.NewReader(erc20MetadataABI))
		if err != nil {
			// This is a critical error during initialization, panic is appropriate
			panic(fmt.Sprintf("failed to parse ERC20 metadata ABI: %v", err))
		}
	})
}

// NewEVMClient creates a new EVM client for the given network descriptor.
// The endpoint pool is tried in order and the first endpoint that answers
// wins; construction fails only when the whole pool is unreachable.
func NewEVMClient(ctx context.Context, netDef entity.NetworkDescriptor, connectionTimeout, rpcCallTimeout time.Duration) (*EVMClient, error) {
	initParsedMetadataABI()
	var lastErr error

	for _, rpcURL := range netDef.RPCURLs {
		dialCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
		ethClient, err := ethclient.DialContext(dialCtx, rpcURL)
		cancel()

		if err == nil {
			return &EVMClient{ethClient: ethClient, netDef: netDef, rpcCallTimeout: rpcCallTimeout}, nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}

	return nil, fmt.Errorf("all RPC connection attempts failed for network %s: %w", netDef.Name, lastErr)
}

// Descriptor returns the network descriptor for this client.
func (c *EVMClient) Descriptor() entity.NetworkDescriptor {
	return c.netDef
}

// BlockNumber returns the current chain head height.
func (c *EVMClient) BlockNumber(ctx context.Context) (uint64, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()
	start := time.Now()
	n, err := c.ethClient.BlockNumber(callCtx)
	metrics.ObserveRPCCall("eth_blockNumber", time.Since(start).Seconds(), err)
	return n, err
}

// BlockByNumber fetches a full block, the latest one when number is nil.
func (c *EVMClient) BlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()
	start := time.Now()
	block, err := c.ethClient.BlockByNumber(callCtx, number)
	metrics.ObserveRPCCall("eth_getBlockByNumber", time.Since(start).Seconds(), err)
	return block, err
}

// BlockByHash fetches a full block by hash.
func (c *EVMClient) BlockByHash(ctx context.Context, hash common.Hash) (*types.Block, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()
	start := time.Now()
	block, err := c.ethClient.BlockByHash(callCtx, hash)
	metrics.ObserveRPCCall("eth_getBlockByHash", time.Since(start).Seconds(), err)
	return block, err
}

// HeaderByNumber fetches a block header, the latest one when number is nil.
func (c *EVMClient) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()
	start := time.Now()
	header, err := c.ethClient.HeaderByNumber(callCtx, number)
	metrics.ObserveRPCCall("eth_getBlockByNumber", time.Since(start).Seconds(), err)
	return header, err
}

// TransactionByHash returns a transaction and whether it is still pending.
func (c *EVMClient) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()
	start := time.Now()
	tx, pending, err := c.ethClient.TransactionByHash(callCtx, hash)
	metrics.ObserveRPCCall("eth_getTransactionByHash", time.Since(start).Seconds(), err)
	return tx, pending, err
}

// TransactionReceipt returns the receipt of a mined transaction.
func (c *EVMClient) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()
	start := time.Now()
	receipt, err := c.ethClient.TransactionReceipt(callCtx, hash)
	metrics.ObserveRPCCall("eth_getTransactionReceipt", time.Since(start).Seconds(), err)
	return receipt, err
}

// BalanceAt returns the native balance of an account.
func (c *EVMClient) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()
	start := time.Now()
	balance, err := c.ethClient.BalanceAt(callCtx, account, blockNumber)
	metrics.ObserveRPCCall("eth_getBalance", time.Since(start).Seconds(), err)
	return balance, err
}

// NonceAt returns the confirmed transaction count of an account.
func (c *EVMClient) NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()
	start := time.Now()
	nonce, err := c.ethClient.NonceAt(callCtx, account, blockNumber)
	metrics.ObserveRPCCall("eth_getTransactionCount", time.Since(start).Seconds(), err)
	return nonce, err
}

// CodeAt returns the bytecode deployed at an address.
func (c *EVMClient) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()
	start := time.Now()
	code, err := c.ethClient.CodeAt(callCtx, account, blockNumber)
	metrics.ObserveRPCCall("eth_getCode", time.Since(start).Seconds(), err)
	return code, err
}

// CallContract executes a read-only contract call.
func (c *EVMClient) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()
	start := time.Now()
	out, err := c.ethClient.CallContract(callCtx, msg, blockNumber)
	metrics.ObserveRPCCall("eth_call", time.Since(start).Seconds(), err)
	return out, err
}

// EVMAddress resolves a native bech32 account to its associated EVM address.
// Sei nodes answer this through the sei_getEVMAddress method; accounts that
// never linked an EVM address come back as an error from the node.
func (c *EVMClient) EVMAddress(ctx context.Context, bech32Addr string) (common.Address, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()
	var hexAddr string
	start := time.Now()
	err := c.ethClient.Client().CallContext(callCtx, &hexAddr, "sei_getEVMAddress", bech32Addr)
	metrics.ObserveRPCCall("sei_getEVMAddress", time.Since(start).Seconds(), err)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to resolve EVM address for %s: %w", bech32Addr, err)
	}
	return common.HexToAddress(hexAddr), nil
}

// TokenMetadata fetches name, symbol, decimals and totalSupply of an ERC-20
// contract with a single JSON-RPC batch. Tokens without name or symbol are
// tolerated; a missing decimals getter is not, since every amount
// conversion depends on it.
func (c *EVMClient) TokenMetadata(ctx context.Context, token common.Address) (entity.TokenMetadata, error) {
	fields := []string{"name", "symbol", "decimals", "totalSupply"}
	batchElems := make([]rpc.BatchElem, len(fields))

	for i, field := range fields {
		callData, err := parsedMetadataABI.Pack(field)
		if err != nil {
			return entity.TokenMetadata{}, fmt.Errorf("failed to pack %s call: %w", field, err)
		}
		callArgs := map[string]interface{}{
			"to":   token,
			"data": hexutil.Bytes(callData),
		}
		batchElems[i] = rpc.BatchElem{
			Method: "eth_call",
			Args:   []interface{}{callArgs, "latest"},
			Result: new(hexutil.Bytes),
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()
	start := time.Now()
	err := c.ethClient.Client().BatchCallContext(callCtx, batchElems)
	metrics.ObserveRPCCall("eth_call_batch", time.Since(start).Seconds(), err)
	if err != nil {
		return entity.TokenMetadata{}, fmt.Errorf("RPC batch call failed: %w", err)
	}

	md := entity.TokenMetadata{
		Address: token.Hex(),
		Network: c.netDef.Identifier,
	}
	for i, field := range fields {
		if batchElems[i].Error != nil {
			if field == "decimals" {
				return entity.TokenMetadata{}, fmt.Errorf("contract %s does not expose decimals: %w", token.Hex(), batchElems[i].Error)
			}
			continue
		}
		raw, ok := batchElems[i].Result.(*hexutil.Bytes)
		if !ok || raw == nil || len(*raw) == 0 {
			if field == "decimals" {
				return entity.TokenMetadata{}, fmt.Errorf("contract %s returned no data for decimals", token.Hex())
			}
			continue
		}
		unpacked, err := parsedMetadataABI.Unpack(field, *raw)
		if err != nil || len(unpacked) == 0 {
			if field == "decimals" {
				return entity.TokenMetadata{}, fmt.Errorf("failed to unpack decimals for %s: %w", token.Hex(), err)
			}
			continue
		}
		switch field {
		case "name":
			if v, ok := unpacked[0].(string); ok {
				md.Name = v
			}
		case "symbol":
			if v, ok := unpacked[0].(string); ok {
				md.Symbol = v
			}
		case "decimals":
			if v, ok := unpacked[0].(uint8); ok {
				md.Decimals = v
			}
		case "totalSupply":
			if v, ok := unpacked[0].(*big.Int); ok {
				md.TotalSupply = entity.NewBigInt(v)
			}
		}
	}
	return md, nil
}
