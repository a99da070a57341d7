package chainimpl

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/fiboy83/vibesphere--sub000/internal/chain"
)

var errNoContract = errors.New("contract address not configured")

func (c *ChainImpl) Balance(ctx context.Context, address string) (*big.Int, error) {
	if !common.IsHexAddress(address) {
		return nil, chain.ErrInvalidTarget
	}
	return c.client.BalanceAt(ctx, common.HexToAddress(address), nil)
}

func (c *ChainImpl) CreatePost(ctx context.Context, text string) (string, error) {
	return c.transact(ctx, c.post, "createPost", text)
}

func (c *ChainImpl) MintHandle(ctx context.Context, handle string) (string, error) {
	return c.transact(ctx, c.identity, "mintHandle", handle)
}

func (c *ChainImpl) HandleOf(ctx context.Context, address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", chain.ErrInvalidTarget
	}
	var out []interface{}
	if err := c.call(ctx, c.identity, &out, "getHandleByAddress", common.HexToAddress(address)); err != nil {
		return "", err
	}
	handle, _ := out[0].(string)
	return handle, nil
}

func (c *ChainImpl) IsHandleTaken(ctx context.Context, handle string) (bool, error) {
	var out []interface{}
	if err := c.call(ctx, c.identity, &out, "isHandleTaken", handle); err != nil {
		return false, err
	}
	taken, _ := out[0].(bool)
	return taken, nil
}

func (c *ChainImpl) call(ctx context.Context, contract *bind.BoundContract, out *[]interface{}, method string, args ...interface{}) error {
	if contract == nil {
		return errNoContract
	}
	if err := contract.Call(&bind.CallOpts{Context: ctx}, out, method, args...); err != nil {
		return classify(err)
	}
	if len(*out) == 0 {
		return fmt.Errorf("%s returned no values", method)
	}
	return nil
}

func (c *ChainImpl) transact(ctx context.Context, contract *bind.BoundContract, method string, args ...interface{}) (string, error) {
	if contract == nil {
		return "", errNoContract
	}
	opts, err := c.transactOpts(ctx)
	if err != nil {
		return "", err
	}

	tx, err := contract.Transact(opts, method, args...)
	if err != nil {
		return "", classify(err)
	}
	c.logger.Info("Transaction submitted", "method", method, "tx", tx.Hash().Hex())

	if _, err := c.waitMined(ctx, tx); err != nil {
		return "", err
	}
	return tx.Hash().Hex(), nil
}

func (c *ChainImpl) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if c.key == nil {
		return nil, chain.ErrNoSigner
	}
	opts, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

func (c *ChainImpl) waitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Chain.ConfirmTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(ctx, c.client, tx)
	if err != nil {
		return nil, fmt.Errorf("wait for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, &chain.RejectedError{Reason: "transaction reverted"}
	}
	return receipt, nil
}

// classify keeps node-reported errors (reverts, nonce or gas refusals) as
// rejections so their message reaches the user.
func classify(err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return &chain.RejectedError{Reason: rpcErr.Error(), Err: err}
	}
	return err
}
