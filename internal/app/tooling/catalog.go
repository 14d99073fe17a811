package tooling

import (
	"context"

	jsoniter "github.com/json-iterator/go"

	"github.com/souvik0908/sei-sense/internal/app/port"
	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func objectSchema(required []string, props map[string]any) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func boolProp(desc string) map[string]any {
	return map[string]any{"type": "boolean", "description": desc}
}

func intProp(desc string) map[string]any {
	return map[string]any{"type": "integer", "description": desc}
}

func networkProp() map[string]any {
	return stringProp("Network name or chain id, e.g. sei, sei-testnet, 1329. Defaults to the configured network.")
}

func addressProp() map[string]any {
	return stringProp("Account address, hex (0x...) or bech32 (sei1...).")
}

func decodeArgs(args []byte, v any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return &entity.ValidationError{Field: "arguments", Msg: "malformed tool arguments", Cause: err}
	}
	return nil
}

// RegisterChainTools wires every gateway capability into the registry as an
// invocable tool. The descriptions are written for the language model: they
// say when to use the tool, not how it works.
func RegisterChainTools(
	reg *Registry,
	networks port.NetworkRegistry,
	reads port.ChainReadService,
	tokens port.TokenService,
	history port.HistoryService,
	analysis port.AnalysisService,
	transfers port.TransferService,
) {
	reg.Register(Tool{
		Name:        "get_supported_networks",
		Description: "List the networks this gateway can query, with the default network.",
		InputSchema: objectSchema(nil, map[string]any{}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			defaultName := ""
			if def, err := networks.Descriptor(networks.DefaultChainID()); err == nil {
				defaultName = def.Identifier
			}
			return map[string]any{
				"networks":       networks.SupportedNetworks(),
				"defaultNetwork": defaultName,
			}, nil
		},
	})

	reg.Register(Tool{
		Name:        "get_balance",
		Description: "Get the native coin balance of an account.",
		InputSchema: objectSchema([]string{"address"}, map[string]any{
			"address": addressProp(),
			"network": networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Address string `json:"address"`
				Network string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return reads.GetBalance(ctx, in.Address, in.Network)
		},
	})

	reg.Register(Tool{
		Name:        "get_latest_block",
		Description: "Get the newest block on a network.",
		InputSchema: objectSchema(nil, map[string]any{
			"network":             networkProp(),
			"includeTransactions": boolProp("Include full transaction records instead of just the count."),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Network             string `json:"network"`
				IncludeTransactions bool   `json:"includeTransactions"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return reads.GetLatestBlock(ctx, in.Network, in.IncludeTransactions)
		},
	})

	reg.Register(Tool{
		Name:        "get_block_by_number",
		Description: "Get a block by its height.",
		InputSchema: objectSchema([]string{"number"}, map[string]any{
			"number":              intProp("Block height."),
			"network":             networkProp(),
			"includeTransactions": boolProp("Include full transaction records instead of just the count."),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Number              uint64 `json:"number"`
				Network             string `json:"network"`
				IncludeTransactions bool   `json:"includeTransactions"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return reads.GetBlockByNumber(ctx, in.Number, in.Network, in.IncludeTransactions)
		},
	})

	reg.Register(Tool{
		Name:        "get_block_by_hash",
		Description: "Get a block by its hash.",
		InputSchema: objectSchema([]string{"hash"}, map[string]any{
			"hash":                stringProp("0x-prefixed 32-byte block hash."),
			"network":             networkProp(),
			"includeTransactions": boolProp("Include full transaction records instead of just the count."),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Hash                string `json:"hash"`
				Network             string `json:"network"`
				IncludeTransactions bool   `json:"includeTransactions"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return reads.GetBlockByHash(ctx, in.Hash, in.Network, in.IncludeTransactions)
		},
	})

	reg.Register(Tool{
		Name:        "get_transaction",
		Description: "Get a transaction by hash, with status, gas used and fee when mined.",
		InputSchema: objectSchema([]string{"hash"}, map[string]any{
			"hash":    stringProp("0x-prefixed 32-byte transaction hash."),
			"network": networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Hash    string `json:"hash"`
				Network string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return reads.GetTransaction(ctx, in.Hash, in.Network)
		},
	})

	reg.Register(Tool{
		Name:        "get_transaction_history",
		Description: "List recent transactions involving an address. Covers only a bounded window of newest blocks.",
		InputSchema: objectSchema([]string{"address"}, map[string]any{
			"address": addressProp(),
			"limit":   intProp("Maximum number of transactions to return, default 10."),
			"network": networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Address string `json:"address"`
				Limit   int    `json:"limit"`
				Network string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return history.GetTransactionHistory(ctx, in.Address, in.Network, in.Limit)
		},
	})

	reg.Register(Tool{
		Name:        "get_wallet_activity",
		Description: "Summarize an account's activity: transaction count, last activity and a recent sample.",
		InputSchema: objectSchema([]string{"address"}, map[string]any{
			"address": addressProp(),
			"network": networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Address string `json:"address"`
				Network string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return history.GetWalletActivity(ctx, in.Address, in.Network)
		},
	})

	reg.Register(Tool{
		Name:        "analyze_wallet",
		Description: "Produce a combined wallet report with balance, activity, contract detection and a heuristic risk score.",
		InputSchema: objectSchema([]string{"address"}, map[string]any{
			"address": addressProp(),
			"network": networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Address string `json:"address"`
				Network string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return analysis.AnalyzeWallet(ctx, in.Address, in.Network)
		},
	})

	reg.Register(Tool{
		Name:        "is_contract",
		Description: "Check whether an address has contract bytecode deployed.",
		InputSchema: objectSchema([]string{"address"}, map[string]any{
			"address": addressProp(),
			"network": networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Address string `json:"address"`
				Network string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			isContract, err := reads.IsContract(ctx, in.Address, in.Network)
			if err != nil {
				return nil, err
			}
			return map[string]any{"address": in.Address, "isContract": isContract}, nil
		},
	})

	reg.Register(Tool{
		Name:        "read_contract",
		Description: "Call a read-only contract function. Requires the ABI fragment of the function.",
		InputSchema: objectSchema([]string{"contract", "abi", "function"}, map[string]any{
			"contract": stringProp("Contract address in hex form."),
			"abi":      stringProp("JSON ABI fragment containing the function."),
			"function": stringProp("Function name to call."),
			"args":     map[string]any{"type": "array", "description": "Positional arguments for the function."},
			"network":  networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Contract string `json:"contract"`
				ABI      string `json:"abi"`
				Function string `json:"function"`
				Args     []any  `json:"args"`
				Network  string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			result, err := reads.ReadContract(ctx, in.Contract, in.ABI, in.Function, in.Args, in.Network)
			if err != nil {
				return nil, err
			}
			return map[string]any{"result": result}, nil
		},
	})

	reg.Register(Tool{
		Name:        "write_contract",
		Description: "Submit a state-changing contract call signed with the gateway's account. Returns the transaction hash.",
		InputSchema: objectSchema([]string{"contract", "abi", "function"}, map[string]any{
			"contract": stringProp("Contract address in hex form."),
			"abi":      stringProp("JSON ABI fragment containing the function."),
			"function": stringProp("Function name to call."),
			"args":     map[string]any{"type": "array", "description": "Positional arguments for the function."},
			"network":  networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Contract string `json:"contract"`
				ABI      string `json:"abi"`
				Function string `json:"function"`
				Args     []any  `json:"args"`
				Network  string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			hash, err := reads.WriteContract(ctx, in.Contract, in.ABI, in.Function, in.Args, in.Network)
			if err != nil {
				return nil, err
			}
			return map[string]any{"txHash": hash}, nil
		},
	})

	reg.Register(Tool{
		Name:        "get_token_metadata",
		Description: "Get the name, symbol, decimals and total supply of an ERC-20 token.",
		InputSchema: objectSchema([]string{"contract"}, map[string]any{
			"contract": stringProp("Token contract address in hex form."),
			"network":  networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Contract string `json:"contract"`
				Network  string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return tokens.GetTokenMetadata(ctx, in.Contract, in.Network)
		},
	})

	reg.Register(Tool{
		Name:        "get_token_balance",
		Description: "Get an account's ERC-20 token balance, formatted with the token's decimals.",
		InputSchema: objectSchema([]string{"contract", "owner"}, map[string]any{
			"contract": stringProp("Token contract address in hex form."),
			"owner":    addressProp(),
			"network":  networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Contract string `json:"contract"`
				Owner    string `json:"owner"`
				Network  string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return tokens.GetTokenBalance(ctx, in.Contract, in.Owner, in.Network)
		},
	})

	reg.Register(Tool{
		Name:        "get_nft_collection",
		Description: "Get the name and symbol of an ERC-721 collection.",
		InputSchema: objectSchema([]string{"contract"}, map[string]any{
			"contract": stringProp("Collection contract address in hex form."),
			"network":  networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Contract string `json:"contract"`
				Network  string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return tokens.GetNFTCollection(ctx, in.Contract, in.Network)
		},
	})

	reg.Register(Tool{
		Name:        "get_nft_token",
		Description: "Get the owner and metadata URI of one ERC-721 token.",
		InputSchema: objectSchema([]string{"contract", "tokenId"}, map[string]any{
			"contract": stringProp("Collection contract address in hex form."),
			"tokenId":  stringProp("Token id as a decimal string."),
			"network":  networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Contract string `json:"contract"`
				TokenID  string `json:"tokenId"`
				Network  string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return tokens.GetNFTToken(ctx, in.Contract, in.TokenID, in.Network)
		},
	})

	reg.Register(Tool{
		Name:        "get_nft_balance",
		Description: "Count how many tokens of an ERC-721 collection an account holds.",
		InputSchema: objectSchema([]string{"contract", "owner"}, map[string]any{
			"contract": stringProp("Collection contract address in hex form."),
			"owner":    addressProp(),
			"network":  networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Contract string `json:"contract"`
				Owner    string `json:"owner"`
				Network  string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			count, err := tokens.GetNFTBalance(ctx, in.Contract, in.Owner, in.Network)
			if err != nil {
				return nil, err
			}
			return map[string]any{"contract": in.Contract, "owner": in.Owner, "balance": count}, nil
		},
	})

	reg.Register(Tool{
		Name:        "get_erc1155_balance",
		Description: "Get an account's balance of one ERC-1155 token id.",
		InputSchema: objectSchema([]string{"contract", "owner", "tokenId"}, map[string]any{
			"contract": stringProp("Contract address in hex form."),
			"owner":    addressProp(),
			"tokenId":  stringProp("Token id as a decimal string."),
			"network":  networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Contract string `json:"contract"`
				Owner    string `json:"owner"`
				TokenID  string `json:"tokenId"`
				Network  string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return tokens.GetERC1155Balance(ctx, in.Contract, in.Owner, in.TokenID, in.Network)
		},
	})

	reg.Register(Tool{
		Name:        "get_erc1155_token_uri",
		Description: "Get the metadata URI of an ERC-1155 token id.",
		InputSchema: objectSchema([]string{"contract", "tokenId"}, map[string]any{
			"contract": stringProp("Contract address in hex form."),
			"tokenId":  stringProp("Token id as a decimal string."),
			"network":  networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Contract string `json:"contract"`
				TokenID  string `json:"tokenId"`
				Network  string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			uri, err := tokens.GetERC1155TokenURI(ctx, in.Contract, in.TokenID, in.Network)
			if err != nil {
				return nil, err
			}
			return map[string]any{"contract": in.Contract, "tokenId": in.TokenID, "uri": uri}, nil
		},
	})

	reg.Register(Tool{
		Name:        "transfer_native",
		Description: "Send native coin from the gateway's account. Amount is a decimal string in whole units.",
		InputSchema: objectSchema([]string{"to", "amount"}, map[string]any{
			"to":      addressProp(),
			"amount":  stringProp("Amount in whole units, e.g. \"1.5\"."),
			"network": networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				To      string `json:"to"`
				Amount  string `json:"amount"`
				Network string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return transfers.TransferNative(ctx, in.To, in.Amount, in.Network)
		},
	})

	reg.Register(Tool{
		Name:        "transfer_erc20",
		Description: "Send ERC-20 tokens from the gateway's account. Amount is a decimal string in whole token units.",
		InputSchema: objectSchema([]string{"token", "to", "amount"}, map[string]any{
			"token":   stringProp("Token contract address in hex form."),
			"to":      addressProp(),
			"amount":  stringProp("Amount in whole token units."),
			"network": networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Token   string `json:"token"`
				To      string `json:"to"`
				Amount  string `json:"amount"`
				Network string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return transfers.TransferERC20(ctx, in.Token, in.To, in.Amount, in.Network)
		},
	})

	reg.Register(Tool{
		Name:        "approve_erc20",
		Description: "Grant a spender allowance over the gateway account's ERC-20 tokens.",
		InputSchema: objectSchema([]string{"token", "spender", "amount"}, map[string]any{
			"token":   stringProp("Token contract address in hex form."),
			"spender": addressProp(),
			"amount":  stringProp("Allowance in whole token units."),
			"network": networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Token   string `json:"token"`
				Spender string `json:"spender"`
				Amount  string `json:"amount"`
				Network string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return transfers.ApproveERC20(ctx, in.Token, in.Spender, in.Amount, in.Network)
		},
	})

	reg.Register(Tool{
		Name:        "transfer_erc721",
		Description: "Transfer one NFT owned by the gateway's account.",
		InputSchema: objectSchema([]string{"contract", "to", "tokenId"}, map[string]any{
			"contract": stringProp("Collection contract address in hex form."),
			"to":       addressProp(),
			"tokenId":  stringProp("Token id as a decimal string."),
			"network":  networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Contract string `json:"contract"`
				To       string `json:"to"`
				TokenID  string `json:"tokenId"`
				Network  string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return transfers.TransferERC721(ctx, in.Contract, in.To, in.TokenID, in.Network)
		},
	})

	reg.Register(Tool{
		Name:        "transfer_erc1155",
		Description: "Transfer an amount of one ERC-1155 token id from the gateway's account. Amount is a raw integer count.",
		InputSchema: objectSchema([]string{"contract", "to", "tokenId", "amount"}, map[string]any{
			"contract": stringProp("Contract address in hex form."),
			"to":       addressProp(),
			"tokenId":  stringProp("Token id as a decimal string."),
			"amount":   stringProp("Raw integer count of tokens to move."),
			"network":  networkProp(),
		}),
		Handler: func(ctx context.Context, args []byte) (any, error) {
			var in struct {
				Contract string `json:"contract"`
				To       string `json:"to"`
				TokenID  string `json:"tokenId"`
				Amount   string `json:"amount"`
				Network  string `json:"network"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			return transfers.TransferERC1155(ctx, in.Contract, in.To, in.TokenID, in.Amount, in.Network)
		},
	})
}
