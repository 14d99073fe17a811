package service

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
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/souvik0908/sei-sense/internal/app/port"
	"github.com/souvik0908/sei-sense/internal/domain/entity"
	"github.com/souvik0908/sei-sense/internal/pkg/utils"
	"github.com/souvik0908/sei-sense/internal/pkg/validation"
)

// Minimal ABI fragments for the token standard getters.
const (
	erc20BalanceABI = `[
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

	erc721ABI = `[
	{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"tokenURI","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"}
]`

	erc1155ABI = `[
	{"constant":true,"inputs":[{"name":"account","type":"address"},{"name":"id","type":"uint256"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"id","type":"uint256"}],"name":"uri","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"}
]`
)

var (
	parsedERC20BalanceABI abi.ABI
	parsedERC721ABI       abi.ABI
	parsedERC1155ABI      abi.ABI
	tokenABIOnce          sync.Once
)

func initTokenABIs() {
	tokenABIOnce.Do(func() {
		var err error
		if parsedERC20BalanceABI, err = abi.JSON(strings.NewReader(erc20BalanceABI)); err != nil {
			panic(fmt.Sprintf("failed to parse ERC20 balance ABI: %v", err))
		}
		if parsedERC721ABI, err = abi.JSON(strings.NewReader(erc721ABI)); err != nil {
			panic(fmt.Sprintf("failed to parse ERC721 ABI: %v", err))
		}
		if parsedERC1155ABI, err = abi.JSON(strings.NewReader(erc1155ABI)); err != nil {
			panic(fmt.Sprintf("failed to parse ERC1155 ABI: %v", err))
		}
	})
}

// TokenServiceImpl implements port.TokenService.
type TokenServiceImpl struct {
	clientProvider port.ChainClientProvider
	metadataCache  *cache.Cache
	logger         port.Logger
}

// NewTokenService creates a new instance of TokenServiceImpl. Token
// metadata answers are cached for metadataTTL since the fields are
// effectively immutable on deployed contracts.
func NewTokenService(cp port.ChainClientProvider, l port.Logger, metadataTTL time.Duration) port.TokenService {
	initTokenABIs()
	return &TokenServiceImpl{
		clientProvider: cp,
		metadataCache:  cache.New(metadataTTL, 10*time.Minute),
		logger:         l,
	}
}

// callView packs a view call, executes it and decodes the result.
func callView(ctx context.Context, reader port.ChainReader, parsed *abi.ABI, contract common.Address, function string, args ...any) ([]any, error) {
	data, err := parsed.Pack(function, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", function, err)
	}
	out, err := reader.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return nil, err
	}
	return parsed.Unpack(function, out)
}

func parseTokenID(tokenID string) (*big.Int, error) {
	n, err := toBigInt(tokenID)
	if err != nil || n.Sign() < 0 {
		return nil, &entity.ValidationError{Field: "tokenId", Msg: fmt.Sprintf("expected a non-negative integer, got %q", tokenID)}
	}
	return n, nil
}

// GetTokenMetadata returns the ERC-20 descriptor of a contract, from cache
// when a previous call already fetched it.
func (s *TokenServiceImpl) GetTokenMetadata(ctx context.Context, contract, network string) (*entity.TokenMetadata, error) {
	tokenAddr, err := validation.RequireHexAddress(contract)
	if err != nil {
		return nil, err
	}
	reader, err := dialReader(ctx, s.clientProvider, network)
	if err != nil {
		return nil, err
	}

	netDef := reader.Descriptor()
	cacheKey := fmt.Sprintf("%d_%s", netDef.ChainID, strings.ToLower(tokenAddr.Hex()))
	if cached, found := s.metadataCache.Get(cacheKey); found {
		md := cached.(entity.TokenMetadata)
		return &md, nil
	}

	md, err := reader.TokenMetadata(ctx, tokenAddr)
	if err != nil {
		return nil, nodeErr(netDef.Identifier, "fetch token metadata for "+contract, err)
	}
	s.metadataCache.Set(cacheKey, md, cache.DefaultExpiration)
	s.logger.Debug("Cached token metadata", "contract", contract, "network", netDef.Identifier, "symbol", md.Symbol)
	return &md, nil
}

// GetTokenBalance returns an account's ERC-20 balance formatted with the
// token's own decimals.
func (s *TokenServiceImpl) GetTokenBalance(ctx context.Context, contract, owner, network string) (*entity.TokenBalance, error) {
	if _, err := validation.ValidateAddress(owner); err != nil {
		return nil, err
	}
	md, err := s.GetTokenMetadata(ctx, contract, network)
	if err != nil {
		return nil, err
	}
	reader, err := dialReader(ctx, s.clientProvider, network)
	if err != nil {
		return nil, err
	}
	ownerAddr, err := resolveAccount(ctx, reader, owner)
	if err != nil {
		return nil, err
	}

	netDef := reader.Descriptor()
	tokenAddr := common.HexToAddress(md.Address)
	results, err := callView(ctx, reader, &parsedERC20BalanceABI, tokenAddr, "balanceOf", ownerAddr)
	if err != nil {
		return nil, nodeErr(netDef.Identifier, "fetch token balance of "+owner, err)
	}
	raw, ok := results[0].(*big.Int)
	if !ok {
		return nil, nodeErr(netDef.Identifier, "decode token balance of "+owner, fmt.Errorf("unexpected balanceOf result %T", results[0]))
	}

	return &entity.TokenBalance{
		Address: owner,
		Token:   md,
		Amount: &entity.TokenAmount{
			Raw:       entity.NewBigInt(raw),
			Decimals:  md.Decimals,
			Formatted: utils.FormatUnits(raw, md.Decimals),
		},
	}, nil
}

// GetNFTCollection returns the name and symbol of an ERC-721 contract.
// Collections may omit either getter; the lookup fails only when both are
// unanswerable.
func (s *TokenServiceImpl) GetNFTCollection(ctx context.Context, contract, network string) (*entity.NFTCollection, error) {
	contractAddr, err := validation.RequireHexAddress(contract)
	if err != nil {
		return nil, err
	}
	reader, err := dialReader(ctx, s.clientProvider, network)
	if err != nil {
		return nil, err
	}

	netDef := reader.Descriptor()
	var (
		name, symbol       string
		nameErr, symbolErr error
	)
	eg, childCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		results, err := callView(childCtx, reader, &parsedERC721ABI, contractAddr, "name")
		if err != nil {
			nameErr = err
			return nil
		}
		if v, ok := results[0].(string); ok {
			name = v
		}
		return nil
	})
	eg.Go(func() error {
		results, err := callView(childCtx, reader, &parsedERC721ABI, contractAddr, "symbol")
		if err != nil {
			symbolErr = err
			return nil
		}
		if v, ok := results[0].(string); ok {
			symbol = v
		}
		return nil
	})
	_ = eg.Wait()

	if nameErr != nil && symbolErr != nil {
		return nil, nodeErr(netDef.Identifier, "fetch collection metadata for "+contract, nameErr)
	}
	if nameErr != nil || symbolErr != nil {
		s.logger.Debug("Collection getter unavailable", "contract", contract, "nameErr", nameErr, "symbolErr", symbolErr)
	}

	return &entity.NFTCollection{
		Address: contractAddr.Hex(),
		Network: netDef.Identifier,
		Name:    name,
		Symbol:  symbol,
	}, nil
}

// GetNFTToken returns the owner and token URI of one ERC-721 token. The
// owner lookup is mandatory; a missing tokenURI getter is tolerated.
func (s *TokenServiceImpl) GetNFTToken(ctx context.Context, contract, tokenID, network string) (*entity.NFTToken, error) {
	contractAddr, err := validation.RequireHexAddress(contract)
	if err != nil {
		return nil, err
	}
	id, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	reader, err := dialReader(ctx, s.clientProvider, network)
	if err != nil {
		return nil, err
	}

	netDef := reader.Descriptor()
	var (
		owner common.Address
		uri   string
	)
	eg, childCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		results, err := callView(childCtx, reader, &parsedERC721ABI, contractAddr, "ownerOf", id)
		if err != nil {
			return nodeErr(netDef.Identifier, fmt.Sprintf("fetch owner of token %s in %s", tokenID, contract), err)
		}
		v, ok := results[0].(common.Address)
		if !ok {
			return nodeErr(netDef.Identifier, "decode owner of token "+tokenID, fmt.Errorf("unexpected ownerOf result %T", results[0]))
		}
		owner = v
		return nil
	})
	eg.Go(func() error {
		results, err := callView(childCtx, reader, &parsedERC721ABI, contractAddr, "tokenURI", id)
		if err != nil {
			s.logger.Debug("Token URI unavailable", "contract", contract, "tokenId", tokenID, "error", err)
			return nil
		}
		if v, ok := results[0].(string); ok {
			uri = v
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &entity.NFTToken{
		Contract: contractAddr.Hex(),
		TokenID:  entity.NewBigInt(id),
		Owner:    owner.Hex(),
		TokenURI: uri,
	}, nil
}

// GetNFTBalance returns how many tokens of an ERC-721 collection an account
// holds.
func (s *TokenServiceImpl) GetNFTBalance(ctx context.Context, contract, owner, network string) (*entity.BigInt, error) {
	contractAddr, err := validation.RequireHexAddress(contract)
	if err != nil {
		return nil, err
	}
	if _, err := validation.ValidateAddress(owner); err != nil {
		return nil, err
	}
	reader, err := dialReader(ctx, s.clientProvider, network)
	if err != nil {
		return nil, err
	}
	ownerAddr, err := resolveAccount(ctx, reader, owner)
	if err != nil {
		return nil, err
	}

	netDef := reader.Descriptor()
	results, err := callView(ctx, reader, &parsedERC721ABI, contractAddr, "balanceOf", ownerAddr)
	if err != nil {
		return nil, nodeErr(netDef.Identifier, "fetch NFT balance of "+owner, err)
	}
	raw, ok := results[0].(*big.Int)
	if !ok {
		return nil, nodeErr(netDef.Identifier, "decode NFT balance of "+owner, fmt.Errorf("unexpected balanceOf result %T", results[0]))
	}
	return entity.NewBigInt(raw), nil
}

// GetERC1155Balance returns an account's balance of one ERC-1155 token id.
func (s *TokenServiceImpl) GetERC1155Balance(ctx context.Context, contract, owner, tokenID, network string) (*entity.MultiTokenBalance, error) {
	contractAddr, err := validation.RequireHexAddress(contract)
	if err != nil {
		return nil, err
	}
	if _, err := validation.ValidateAddress(owner); err != nil {
		return nil, err
	}
	id, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	reader, err := dialReader(ctx, s.clientProvider, network)
	if err != nil {
		return nil, err
	}
	ownerAddr, err := resolveAccount(ctx, reader, owner)
	if err != nil {
		return nil, err
	}

	netDef := reader.Descriptor()
	results, err := callView(ctx, reader, &parsedERC1155ABI, contractAddr, "balanceOf", ownerAddr, id)
	if err != nil {
		return nil, nodeErr(netDef.Identifier, fmt.Sprintf("fetch balance of token %s for %s", tokenID, owner), err)
	}
	raw, ok := results[0].(*big.Int)
	if !ok {
		return nil, nodeErr(netDef.Identifier, "decode balance of token "+tokenID, fmt.Errorf("unexpected balanceOf result %T", results[0]))
	}

	return &entity.MultiTokenBalance{
		Contract: contractAddr.Hex(),
		TokenID:  entity.NewBigInt(id),
		Address:  owner,
		Amount:   entity.NewBigInt(raw),
	}, nil
}

// GetERC1155TokenURI returns the metadata URI of an ERC-1155 token id.
func (s *TokenServiceImpl) GetERC1155TokenURI(ctx context.Context, contract, tokenID, network string) (string, error) {
	contractAddr, err := validation.RequireHexAddress(contract)
	if err != nil {
		return "", err
	}
	id, err := parseTokenID(tokenID)
	if err != nil {
		return "", err
	}
	reader, err := dialReader(ctx, s.clientProvider, network)
	if err != nil {
		return "", err
	}

	netDef := reader.Descriptor()
	results, err := callView(ctx, reader, &parsedERC1155ABI, contractAddr, "uri", id)
	if err != nil {
		return "", nodeErr(netDef.Identifier, "fetch URI of token "+tokenID, err)
	}
	uri, ok := results[0].(string)
	if !ok {
		return "", nodeErr(netDef.Identifier, "decode URI of token "+tokenID, fmt.Errorf("unexpected uri result %T", results[0]))
	}
	return uri, nil
}
