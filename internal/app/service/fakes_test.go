package service

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/trie"

	"github.com/souvik0908/sei-sense/internal/app/port"
	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

var testNetwork = entity.NetworkDescriptor{
	ChainID:      1329,
	Name:         "Sei Network",
	Identifier:   "sei",
	NativeSymbol: "SEI",
	Decimals:     18,
	RPCURLs:      []string{"http://localhost:8545"},
}

// fakeReader is a handwritten port.ChainReader backed by maps.
type fakeReader struct {
	head        uint64
	headErr     error
	blocks      map[uint64]*types.Block
	receipts    map[common.Hash]*types.Receipt
	receiptErrs map[common.Hash]error
	balances    map[common.Address]*big.Int
	nonces      map[common.Address]uint64
	code        map[common.Address][]byte
	callResult  []byte
	callErr     error

	metadataCalls int
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		blocks:      make(map[uint64]*types.Block),
		receipts:    make(map[common.Hash]*types.Receipt),
		receiptErrs: make(map[common.Hash]error),
		balances:    make(map[common.Address]*big.Int),
		nonces:      make(map[common.Address]uint64),
		code:        make(map[common.Address][]byte),
	}
}

func (f *fakeReader) BlockNumber(ctx context.Context) (uint64, error) {
	if f.headErr != nil {
		return 0, f.headErr
	}
	return f.head, nil
}

func (f *fakeReader) BlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error) {
	n := f.head
	if number != nil {
		n = number.Uint64()
	}
	block, ok := f.blocks[n]
	if !ok {
		return nil, errors.New("block not found")
	}
	return block, nil
}

func (f *fakeReader) BlockByHash(ctx context.Context, hash common.Hash) (*types.Block, error) {
	for _, block := range f.blocks {
		if block.Hash() == hash {
			return block, nil
		}
	}
	return nil, errors.New("block not found")
}

func (f *fakeReader) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	block, err := f.BlockByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return block.Header(), nil
}

func (f *fakeReader) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	for _, block := range f.blocks {
		for _, tx := range block.Transactions() {
			if tx.Hash() == hash {
				return tx, false, nil
			}
		}
	}
	return nil, false, errors.New("transaction not found")
}

func (f *fakeReader) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if err, ok := f.receiptErrs[hash]; ok {
		return nil, err
	}
	receipt, ok := f.receipts[hash]
	if !ok {
		return nil, errors.New("receipt not found")
	}
	return receipt, nil
}

func (f *fakeReader) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	if balance, ok := f.balances[account]; ok {
		return new(big.Int).Set(balance), nil
	}
	return new(big.Int), nil
}

func (f *fakeReader) NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error) {
	return f.nonces[account], nil
}

func (f *fakeReader) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	return f.code[account], nil
}

func (f *fakeReader) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if f.callErr != nil {
		return nil, f.callErr
	}
	return f.callResult, nil
}

func (f *fakeReader) TokenMetadata(ctx context.Context, token common.Address) (entity.TokenMetadata, error) {
	f.metadataCalls++
	return entity.TokenMetadata{
		Address:  token.Hex(),
		Network:  testNetwork.Identifier,
		Name:     "Test Token",
		Symbol:   "TST",
		Decimals: 6,
	}, nil
}

func (f *fakeReader) EVMAddress(ctx context.Context, bech32Addr string) (common.Address, error) {
	return common.Address{}, errors.New("no association for " + bech32Addr)
}

func (f *fakeReader) Descriptor() entity.NetworkDescriptor {
	return testNetwork
}

// addBlock builds a block at the given height and registers it.
func (f *fakeReader) addBlock(number, timestamp uint64, txs ...*types.Transaction) *types.Block {
	header := &types.Header{
		Number: new(big.Int).SetUint64(number),
		Time:   timestamp,
	}
	block := types.NewBlock(header, &types.Body{Transactions: txs}, nil, trie.NewStackTrie(nil))
	f.blocks[number] = block
	if number > f.head {
		f.head = number
	}
	return block
}

// addReceipt registers a successful receipt for tx.
func (f *fakeReader) addReceipt(tx *types.Transaction, blockNumber, gasUsed uint64, gasPrice *big.Int) *types.Receipt {
	receipt := &types.Receipt{
		TxHash:            tx.Hash(),
		BlockNumber:       new(big.Int).SetUint64(blockNumber),
		GasUsed:           gasUsed,
		Status:            types.ReceiptStatusSuccessful,
		EffectiveGasPrice: gasPrice,
	}
	f.receipts[tx.Hash()] = receipt
	return receipt
}

// legacyTx builds an unsigned legacy transaction to the given recipient.
// Sender recovery fails on it, so matching in tests goes through the To
// field only.
func legacyTx(nonce uint64, to common.Address, value *big.Int, data []byte) *types.Transaction {
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      21000,
		GasPrice: big.NewInt(1000000000),
		Data:     data,
	})
}

// fakeProvider hands out one fixed reader and, when configured, one signer.
type fakeProvider struct {
	reader    *fakeReader
	readerErr error
	signer    *fakeSigner
}

func (p *fakeProvider) Reader(ctx context.Context, network string) (port.ChainReader, error) {
	if p.readerErr != nil {
		return nil, p.readerErr
	}
	return p.reader, nil
}

func (p *fakeProvider) Signer(ctx context.Context, network string) (port.ChainSigner, error) {
	if p.signer == nil {
		return nil, errors.New("no signer configured")
	}
	return p.signer, nil
}

// fakeSigner records submitted transactions instead of signing anything.
type fakeSigner struct {
	from    common.Address
	sendErr error

	sentTo    *common.Address
	sentValue *big.Int
	sentData  []byte
}

func (s *fakeSigner) Address() common.Address {
	return s.from
}

func (s *fakeSigner) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1000000000), nil
}

func (s *fakeSigner) SendTransaction(ctx context.Context, to *common.Address, value *big.Int, data []byte) (common.Hash, error) {
	if s.sendErr != nil {
		return common.Hash{}, s.sendErr
	}
	s.sentTo = to
	s.sentValue = value
	s.sentData = data
	return common.HexToHash("0xabc123"), nil
}

func (s *fakeSigner) Descriptor() entity.NetworkDescriptor {
	return testNetwork
}
