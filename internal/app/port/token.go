package port

import (
	"context"

	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

// TokenService defines the interface for token standard reads across
// ERC-20, ERC-721 and ERC-1155 contracts.
type TokenService interface {
	// GetTokenMetadata returns the ERC-20 descriptor of a contract. Results
	// are cached since token metadata is effectively immutable.
	GetTokenMetadata(ctx context.Context, contract, network string) (*entity.TokenMetadata, error)

	// GetTokenBalance returns an account's ERC-20 balance formatted with the
	// token's own decimals.
	GetTokenBalance(ctx context.Context, contract, owner, network string) (*entity.TokenBalance, error)

	// GetNFTCollection returns the name and symbol of an ERC-721 contract.
	GetNFTCollection(ctx context.Context, contract, network string) (*entity.NFTCollection, error)

	// GetNFTToken returns the owner and token URI of a single ERC-721 token.
	GetNFTToken(ctx context.Context, contract, tokenID, network string) (*entity.NFTToken, error)

	// GetNFTBalance returns how many tokens of an ERC-721 collection an
	// account holds.
	GetNFTBalance(ctx context.Context, contract, owner, network string) (*entity.BigInt, error)

	// GetERC1155Balance returns an account's balance of one ERC-1155 token id.
	GetERC1155Balance(ctx context.Context, contract, owner, tokenID, network string) (*entity.MultiTokenBalance, error)

	// GetERC1155TokenURI returns the metadata URI of an ERC-1155 token id.
	GetERC1155TokenURI(ctx context.Context, contract, tokenID, network string) (string, error)
}
