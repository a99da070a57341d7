package chainimpl

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"github.com/fiboy83/vibesphere--sub000/internal/chain"
	"github.com/fiboy83/vibesphere--sub000/internal/domain"
)

func (c *ChainImpl) Transfer(ctx context.Context, to string, wei *big.Int) (domain.Transaction, error) {
	if c.key == nil {
		return domain.Transaction{}, chain.ErrNoSigner
	}
	if !common.IsHexAddress(to) || wei == nil || wei.Sign() <= 0 {
		return domain.Transaction{}, chain.ErrInvalidTarget
	}
	recipient := common.HexToAddress(to)

	nonce, err := c.client.PendingNonceAt(ctx, c.from)
	if err != nil {
		return domain.Transaction{}, err
	}
	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return domain.Transaction{}, err
	}

	tx := types.NewTransaction(nonce, recipient, wei, params.TxGas, gasPrice, nil)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := c.client.SendTransaction(ctx, signed); err != nil {
		return domain.Transaction{}, classify(err)
	}

	receipt, err := c.waitMined(ctx, signed)
	if err != nil {
		return domain.Transaction{}, err
	}

	ts := int64(0)
	if header, err := c.client.HeaderByHash(ctx, receipt.BlockHash); err == nil {
		ts = int64(header.Time)
	}

	return domain.Transaction{
		Hash:      signed.Hash().Hex(),
		From:      c.from.Hex(),
		To:        recipient.Hex(),
		ValueWei:  wei.String(),
		Timestamp: ts,
	}, nil
}
