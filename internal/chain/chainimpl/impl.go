package chainimpl

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/fiboy83/vibesphere--sub000/internal/chain"
	"github.com/fiboy83/vibesphere--sub000/pkg/config"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
}

type ChainImpl struct {
	client   *ethclient.Client
	chainID  *big.Int
	key      *ecdsa.PrivateKey
	from     common.Address
	post     *bind.BoundContract
	identity *bind.BoundContract
	logger   logger.Logger
	cfg      *config.Config
}

var _ chain.Client = (*ChainImpl)(nil)

func New(opts Opts) (*ChainImpl, error) {
	cfg := opts.Config
	log := opts.Logger.WithComponent("Chain")

	client, err := ethclient.DialContext(context.Background(), cfg.Chain.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}

	c := &ChainImpl{
		client:  client,
		chainID: big.NewInt(cfg.Chain.ChainID),
		logger:  log,
		cfg:     cfg,
	}

	if cfg.Chain.PrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.Chain.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		c.key = key
		c.from = crypto.PubkeyToAddress(key.PublicKey)
	}

	if c.post, err = bindContract(client, cfg.Chain.PostContract, postABI); err != nil {
		return nil, fmt.Errorf("post contract: %w", err)
	}
	if c.identity, err = bindContract(client, cfg.Chain.IdentityContract, identityABI); err != nil {
		return nil, fmt.Errorf("identity contract: %w", err)
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			id, err := client.ChainID(ctx)
			if err != nil {
				log.Warn("Chain id check skipped, rpc unreachable", "error", err)
				return nil
			}
			if id.Cmp(c.chainID) != 0 {
				return fmt.Errorf("%w: want %s, got %s", chain.ErrWrongChain, c.chainID, id)
			}
			log.Info("Connected to chain", "chain_id", id, "account", c.Account())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			client.Close()
			return nil
		},
	})

	return c, nil
}

func bindContract(client *ethclient.Client, address, raw string) (*bind.BoundContract, error) {
	if address == "" {
		return nil, nil
	}
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid address %q", address)
	}
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return bind.NewBoundContract(common.HexToAddress(address), parsed, client, client, client), nil
}

func (c *ChainImpl) Account() string {
	if c.key == nil {
		return ""
	}
	return c.from.Hex()
}
