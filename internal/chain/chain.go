// Package chain is the boundary to the EVM network: balance reads, the post
// contract, the identity contract and plain value transfers.
package chain

import (
	"context"
	"errors"
	"math/big"

	"github.com/fiboy83/vibesphere--sub000/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=chain.go -destination=mocks/mock.go

var (
	ErrNoSigner      = errors.New("no signing key configured")
	ErrWrongChain    = errors.New("rpc endpoint serves a different chain")
	ErrInvalidTarget = errors.New("invalid recipient address")
)

// RejectedError is a failure the network reported with a reason, such as a
// contract revert or a node refusing the transaction.
type RejectedError struct {
	Reason string
	Err    error
}

func (e *RejectedError) Error() string { return e.Reason }
func (e *RejectedError) Unwrap() error { return e.Err }

// Reason returns the most specific rejection reason carried by err, or ""
// when there is none.
func Reason(err error) string {
	var r *RejectedError
	if errors.As(err, &r) {
		return r.Reason
	}
	return ""
}

// Client methods that write block until the transaction is mined.
type Client interface {
	// Account is the address that signs writes, empty when read-only.
	Account() string

	Balance(ctx context.Context, address string) (*big.Int, error)

	// CreatePost submits text to the post contract.
	CreatePost(ctx context.Context, text string) (txHash string, err error)

	MintHandle(ctx context.Context, handle string) (txHash string, err error)
	HandleOf(ctx context.Context, address string) (string, error)
	IsHandleTaken(ctx context.Context, handle string) (bool, error)

	// Transfer sends wei from Account to the recipient.
	Transfer(ctx context.Context, to string, wei *big.Int) (domain.Transaction, error)
}
