package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/souvik0908/sei-sense/internal/app/port"
	"github.com/souvik0908/sei-sense/internal/infrastructure/configloader"
)

// evmClientProvider implements the port.ChainClientProvider interface.
// Clients are cached per chain id so every network is dialed at most once.
type evmClientProvider struct {
	registry          port.NetworkRegistry
	clients           map[uint64]*EVMClient
	signers           map[uint64]*SigningClient
	mu                sync.Mutex
	loggerInfo        func(msg string, args ...any)
	loggerError       func(msg string, args ...any)
	connectionTimeout time.Duration
	rpcCallTimeout    time.Duration
	signingKeyHex     string
}

// NewEVMClientProvider creates a new EVMClientProvider.
func NewEVMClientProvider(
	cfg *configloader.Config,
	registry port.NetworkRegistry,
	loggerInfo func(msg string, args ...any),
	loggerError func(msg string, args ...any),
) port.ChainClientProvider {
	return &evmClientProvider{
		registry:          registry,
		clients:           make(map[uint64]*EVMClient),
		signers:           make(map[uint64]*SigningClient),
		loggerInfo:        loggerInfo,
		loggerError:       loggerError,
		connectionTimeout: time.Duration(cfg.Chain.ConnectionTimeoutSeconds) * time.Second,
		rpcCallTimeout:    time.Duration(cfg.Chain.RPCCallTimeoutSeconds) * time.Second,
		signingKeyHex:     cfg.Signer.PrivateKey(),
	}
}

// Reader retrieves a read client for the given network name, dialing and
// caching it on first use. Resolution is lenient: unknown names land on the
// default network.
func (p *evmClientProvider) Reader(ctx context.Context, network string) (port.ChainReader, error) {
	reader, err := p.reader(ctx, network)
	if err != nil {
		return nil, err
	}
	return reader, nil
}

func (p *evmClientProvider) reader(ctx context.Context, network string) (*EVMClient, error) {
	chainID := p.registry.ResolveChainID(network)

	p.mu.Lock()
	defer p.mu.Unlock()

	if cached, exists := p.clients[chainID]; exists {
		return cached, nil
	}

	netDef, err := p.registry.Descriptor(chainID)
	if err != nil {
		return nil, err
	}

	p.loggerInfo("Creating new EVM client", "network", netDef.Identifier, "rpc_primary", netDef.PrimaryRPCURL())
	newClient, err := NewEVMClient(ctx, netDef, p.connectionTimeout, p.rpcCallTimeout)
	if err != nil {
		p.loggerError("Failed to create EVM client", "network", netDef.Identifier, "error", err)
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", netDef.Identifier, err)
	}

	p.clients[chainID] = newClient
	p.loggerInfo("Successfully created and cached new EVM client", "network", netDef.Identifier)
	return newClient, nil
}

// Signer retrieves a signing client for the given network name. The signing
// key comes from the environment; a missing or malformed key surfaces as
// entity.InvalidKeyError.
func (p *evmClientProvider) Signer(ctx context.Context, network string) (port.ChainSigner, error) {
	reader, err := p.reader(ctx, network)
	if err != nil {
		return nil, err
	}

	chainID := reader.netDef.ChainID

	p.mu.Lock()
	defer p.mu.Unlock()

	if cached, exists := p.signers[chainID]; exists {
		return cached, nil
	}

	signer, err := NewSigningClient(reader, p.signingKeyHex)
	if err != nil {
		p.loggerError("Failed to create signing client", "network", reader.netDef.Identifier, "error", err)
		return nil, err
	}

	p.signers[chainID] = signer
	p.loggerInfo("Signing client initialized", "network", reader.netDef.Identifier, "address", signer.Address().Hex())
	return signer, nil
}
