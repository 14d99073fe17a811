package client

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/souvik0908/sei-sense/internal/domain/entity"
	"github.com/souvik0908/sei-sense/pkg/metrics"
)

// SigningClient submits transactions signed with a configured private key.
// It shares the underlying connection of an EVMClient.
type SigningClient struct {
	reader  *EVMClient
	key     *ecdsa.PrivateKey
	address common.Address
	chainID *big.Int
}

// NewSigningClient derives the signing account from privateKeyHex. A key
// that does not parse yields entity.InvalidKeyError.
func NewSigningClient(reader *EVMClient, privateKeyHex string) (*SigningClient, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")
	if trimmed == "" {
		return nil, &entity.InvalidKeyError{Cause: fmt.Errorf("signing key is empty")}
	}
	key, err := crypto.HexToECDSA(trimmed)
	if err != nil {
		return nil, &entity.InvalidKeyError{Cause: err}
	}
	return &SigningClient{
		reader:  reader,
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		chainID: new(big.Int).SetUint64(reader.netDef.ChainID),
	}, nil
}

// Address returns the account address derived from the signing key.
func (s *SigningClient) Address() common.Address {
	return s.address
}

// Descriptor returns the network this signer submits to.
func (s *SigningClient) Descriptor() entity.NetworkDescriptor {
	return s.reader.netDef
}

// SuggestGasPrice returns the node's current gas price suggestion.
func (s *SigningClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.reader.rpcCallTimeout)
	defer cancel()
	start := time.Now()
	price, err := s.reader.ethClient.SuggestGasPrice(callCtx)
	metrics.ObserveRPCCall("eth_gasPrice", time.Since(start).Seconds(), err)
	return price, err
}

// SendTransaction builds a legacy transaction, signs it and submits it,
// returning the hash without waiting for inclusion. Gas estimation failures
// (reverts, insufficient funds) propagate to the caller with the node's
// message intact.
func (s *SigningClient) SendTransaction(ctx context.Context, to *common.Address, value *big.Int, data []byte) (common.Hash, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.reader.rpcCallTimeout)
	defer cancel()

	start := time.Now()
	nonce, err := s.reader.ethClient.PendingNonceAt(callCtx, s.address)
	metrics.ObserveRPCCall("eth_getTransactionCount", time.Since(start).Seconds(), err)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to fetch pending nonce: %w", err)
	}

	gasPrice, err := s.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to fetch gas price: %w", err)
	}

	estimateCtx, cancelEstimate := context.WithTimeout(ctx, s.reader.rpcCallTimeout)
	defer cancelEstimate()
	start = time.Now()
	gasLimit, err := s.reader.ethClient.EstimateGas(estimateCtx, ethereum.CallMsg{
		From:  s.address,
		To:    to,
		Value: value,
		Data:  data,
	})
	metrics.ObserveRPCCall("eth_estimateGas", time.Since(start).Seconds(), err)
	if err != nil {
		return common.Hash{}, fmt.Errorf("gas estimation failed: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       to,
		Value:    value,
		Data:     data,
	})
	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(s.chainID), s.key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	sendCtx, cancelSend := context.WithTimeout(ctx, s.reader.rpcCallTimeout)
	defer cancelSend()
	start = time.Now()
	err = s.reader.ethClient.SendTransaction(sendCtx, signedTx)
	metrics.ObserveRPCCall("eth_sendRawTransaction", time.Since(start).Seconds(), err)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to submit transaction: %w", err)
	}
	return signedTx.Hash(), nil
}
