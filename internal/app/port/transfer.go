package port

import (
	"context"

	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

// TransferService defines the interface for submitting value transfers
// signed with the configured account key. All operations return as soon as
// the transaction is accepted by the node; none of them wait for inclusion.
type TransferService interface {
	// TransferNative sends native coin. Amount is a decimal string in whole
	// units, converted with the network's native decimals.
	TransferNative(ctx context.Context, to, amount, network string) (*entity.TransferReceipt, error)

	// TransferERC20 sends ERC-20 tokens. Amount is a decimal string in whole
	// units, converted with the token's own decimals.
	TransferERC20(ctx context.Context, token, to, amount, network string) (*entity.TransferReceipt, error)

	// ApproveERC20 grants a spender allowance over the signer's tokens.
	ApproveERC20(ctx context.Context, token, spender, amount, network string) (*entity.TransferReceipt, error)

	// TransferERC721 transfers one NFT owned by the signer.
	TransferERC721(ctx context.Context, contract, to, tokenID, network string) (*entity.TransferReceipt, error)

	// TransferERC1155 transfers an amount of one ERC-1155 token id. Amount
	// is a raw integer count, ERC-1155 balances carry no decimals.
	TransferERC1155(ctx context.Context, contract, to, tokenID, amount, network string) (*entity.TransferReceipt, error)
}
