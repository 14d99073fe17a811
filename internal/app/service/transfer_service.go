package service

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/souvik0908/sei-sense/internal/app/port"
	"github.com/souvik0908/sei-sense/internal/domain/entity"
	"github.com/souvik0908/sei-sense/internal/pkg/utils"
	"github.com/souvik0908/sei-sense/internal/pkg/validation"
)

// Minimal ABI fragments for the token standard mutators.
const (
	erc20WriteABI = `[
	{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
	{"constant":false,"inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`

	erc721WriteABI = `[
	{"constant":false,"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"name":"transferFrom","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

	erc1155WriteABI = `[
	{"constant":false,"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"id","type":"uint256"},{"name":"amount","type":"uint256"},{"name":"data","type":"bytes"}],"name":"safeTransferFrom","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`
)

var (
	parsedERC20WriteABI   abi.ABI
	parsedERC721WriteABI  abi.ABI
	parsedERC1155WriteABI abi.ABI
	writeABIOnce          sync.Once
)

func initWriteABIs() {
	writeABIOnce.Do(func() {
		var err error
		if parsedERC20WriteABI, err = abi.JSON(strings.NewReader(erc20WriteABI)); err != nil {
			panic(fmt.Sprintf("failed to parse ERC20 write ABI: %v", err))
		}
		if parsedERC721WriteABI, err = abi.JSON(strings.NewReader(erc721WriteABI)); err != nil {
			panic(fmt.Sprintf("failed to parse ERC721 write ABI: %v", err))
		}
		if parsedERC1155WriteABI, err = abi.JSON(strings.NewReader(erc1155WriteABI)); err != nil {
			panic(fmt.Sprintf("failed to parse ERC1155 write ABI: %v", err))
		}
	})
}

// TransferServiceImpl implements port.TransferService.
type TransferServiceImpl struct {
	clientProvider port.ChainClientProvider
	tokenSvc       port.TokenService
	logger         port.Logger
}

// NewTransferService creates a new instance of TransferServiceImpl.
func NewTransferService(cp port.ChainClientProvider, ts port.TokenService, l port.Logger) port.TransferService {
	initWriteABIs()
	return &TransferServiceImpl{
		clientProvider: cp,
		tokenSvc:       ts,
		logger:         l,
	}
}

// parseAmount converts a whole-unit decimal string to raw units, rejecting
// non-positive values and excess fractional digits.
func parseAmount(amount string, decimals uint8) (*big.Int, error) {
	raw, err := utils.ParseUnits(amount, decimals)
	if err != nil {
		return nil, &entity.ValidationError{Field: "amount", Msg: fmt.Sprintf("expected a positive decimal amount, got %q", amount), Cause: err}
	}
	if raw.Sign() <= 0 {
		return nil, &entity.ValidationError{Field: "amount", Msg: "amount must be positive"}
	}
	return raw, nil
}

// resolveRecipient validates and resolves a recipient of either address
// form into an EVM address.
func (s *TransferServiceImpl) resolveRecipient(ctx context.Context, to, network string) (common.Address, error) {
	if _, err := validation.ValidateAddress(to); err != nil {
		return common.Address{}, err
	}
	reader, err := dialReader(ctx, s.clientProvider, network)
	if err != nil {
		return common.Address{}, err
	}
	return resolveAccount(ctx, reader, to)
}

// TransferNative sends native coin to the recipient and returns as soon as
// the node accepted the transaction.
func (s *TransferServiceImpl) TransferNative(ctx context.Context, to, amount, network string) (*entity.TransferReceipt, error) {
	toAddr, err := s.resolveRecipient(ctx, to, network)
	if err != nil {
		return nil, err
	}
	signer, err := dialSigner(ctx, s.clientProvider, network)
	if err != nil {
		return nil, err
	}

	netDef := signer.Descriptor()
	raw, err := parseAmount(amount, netDef.Decimals)
	if err != nil {
		return nil, err
	}

	hash, err := signer.SendTransaction(ctx, &toAddr, raw, nil)
	if err != nil {
		return nil, nodeErr(netDef.Identifier, "submit native transfer to "+to, err)
	}
	s.logger.Info("Native transfer submitted", "to", to, "amount", amount, "network", netDef.Identifier, "hash", hash.Hex())

	return &entity.TransferReceipt{
		TxHash:  hash.Hex(),
		Network: netDef.Identifier,
		ChainID: netDef.ChainID,
		From:    signer.Address().Hex(),
		To:      to,
		Amount: &entity.TokenAmount{
			Raw:       entity.NewBigInt(raw),
			Decimals:  netDef.Decimals,
			Formatted: utils.FormatUnits(raw, netDef.Decimals),
		},
	}, nil
}

// TransferERC20 sends tokens with a transfer call on the token contract.
// The token's metadata is fetched first, amount conversion needs its
// decimals.
func (s *TransferServiceImpl) TransferERC20(ctx context.Context, token, to, amount, network string) (*entity.TransferReceipt, error) {
	return s.submitERC20(ctx, "transfer", token, to, amount, network)
}

// ApproveERC20 grants the spender allowance over the signer's tokens.
func (s *TransferServiceImpl) ApproveERC20(ctx context.Context, token, spender, amount, network string) (*entity.TransferReceipt, error) {
	return s.submitERC20(ctx, "approve", token, spender, amount, network)
}

func (s *TransferServiceImpl) submitERC20(ctx context.Context, function, token, counterparty, amount, network string) (*entity.TransferReceipt, error) {
	md, err := s.tokenSvc.GetTokenMetadata(ctx, token, network)
	if err != nil {
		return nil, err
	}
	raw, err := parseAmount(amount, md.Decimals)
	if err != nil {
		return nil, err
	}
	counterpartyAddr, err := s.resolveRecipient(ctx, counterparty, network)
	if err != nil {
		return nil, err
	}
	signer, err := dialSigner(ctx, s.clientProvider, network)
	if err != nil {
		return nil, err
	}

	data, err := parsedERC20WriteABI.Pack(function, counterpartyAddr, raw)
	if err != nil {
		return nil, &entity.ValidationError{Field: "amount", Msg: "arguments do not match the ABI", Cause: err}
	}

	netDef := signer.Descriptor()
	tokenAddr := common.HexToAddress(md.Address)
	hash, err := signer.SendTransaction(ctx, &tokenAddr, new(big.Int), data)
	if err != nil {
		return nil, nodeErr(netDef.Identifier, fmt.Sprintf("submit %s on %s", function, token), err)
	}
	s.logger.Info("Token operation submitted", "function", function, "token", token, "counterparty", counterparty, "amount", amount, "network", netDef.Identifier, "hash", hash.Hex())

	return &entity.TransferReceipt{
		TxHash:  hash.Hex(),
		Network: netDef.Identifier,
		ChainID: netDef.ChainID,
		From:    signer.Address().Hex(),
		To:      counterparty,
		Amount: &entity.TokenAmount{
			Raw:       entity.NewBigInt(raw),
			Decimals:  md.Decimals,
			Formatted: utils.FormatUnits(raw, md.Decimals),
		},
		Token: md,
	}, nil
}

// TransferERC721 transfers one NFT owned by the signer with transferFrom.
func (s *TransferServiceImpl) TransferERC721(ctx context.Context, contract, to, tokenID, network string) (*entity.TransferReceipt, error) {
	contractAddr, err := validation.RequireHexAddress(contract)
	if err != nil {
		return nil, err
	}
	id, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	toAddr, err := s.resolveRecipient(ctx, to, network)
	if err != nil {
		return nil, err
	}
	signer, err := dialSigner(ctx, s.clientProvider, network)
	if err != nil {
		return nil, err
	}

	data, err := parsedERC721WriteABI.Pack("transferFrom", signer.Address(), toAddr, id)
	if err != nil {
		return nil, &entity.ValidationError{Field: "tokenId", Msg: "arguments do not match the ABI", Cause: err}
	}

	netDef := signer.Descriptor()
	hash, err := signer.SendTransaction(ctx, &contractAddr, new(big.Int), data)
	if err != nil {
		return nil, nodeErr(netDef.Identifier, fmt.Sprintf("submit NFT transfer of token %s on %s", tokenID, contract), err)
	}
	s.logger.Info("NFT transfer submitted", "contract", contract, "tokenId", tokenID, "to", to, "network", netDef.Identifier, "hash", hash.Hex())

	return &entity.TransferReceipt{
		TxHash:  hash.Hex(),
		Network: netDef.Identifier,
		ChainID: netDef.ChainID,
		From:    signer.Address().Hex(),
		To:      to,
		TokenID: entity.NewBigInt(id),
	}, nil
}

// TransferERC1155 transfers an amount of one ERC-1155 token id with
// safeTransferFrom. Amounts are raw integer counts, the standard carries no
// decimals.
func (s *TransferServiceImpl) TransferERC1155(ctx context.Context, contract, to, tokenID, amount, network string) (*entity.TransferReceipt, error) {
	contractAddr, err := validation.RequireHexAddress(contract)
	if err != nil {
		return nil, err
	}
	id, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	raw, err := toBigInt(amount)
	if err != nil || raw.Sign() <= 0 {
		return nil, &entity.ValidationError{Field: "amount", Msg: fmt.Sprintf("expected a positive integer count, got %q", amount)}
	}
	toAddr, err := s.resolveRecipient(ctx, to, network)
	if err != nil {
		return nil, err
	}
	signer, err := dialSigner(ctx, s.clientProvider, network)
	if err != nil {
		return nil, err
	}

	data, err := parsedERC1155WriteABI.Pack("safeTransferFrom", signer.Address(), toAddr, id, raw, []byte{})
	if err != nil {
		return nil, &entity.ValidationError{Field: "amount", Msg: "arguments do not match the ABI", Cause: err}
	}

	netDef := signer.Descriptor()
	hash, err := signer.SendTransaction(ctx, &contractAddr, new(big.Int), data)
	if err != nil {
		return nil, nodeErr(netDef.Identifier, fmt.Sprintf("submit transfer of token %s on %s", tokenID, contract), err)
	}
	s.logger.Info("Multi-token transfer submitted", "contract", contract, "tokenId", tokenID, "amount", amount, "to", to, "network", netDef.Identifier, "hash", hash.Hex())

	return &entity.TransferReceipt{
		TxHash:  hash.Hex(),
		Network: netDef.Identifier,
		ChainID: netDef.ChainID,
		From:    signer.Address().Hex(),
		To:      to,
		TokenID: entity.NewBigInt(id),
		Amount: &entity.TokenAmount{
			Raw:       entity.NewBigInt(raw),
			Decimals:  0,
			Formatted: raw.String(),
		},
	}, nil
}
