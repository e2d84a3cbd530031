package committer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
)

var errNoClient = errors.New("committer: spanner client is nil")

type transactionRunner interface {
	ReadWriteTransaction(ctx context.Context, f func(context.Context, *spanner.ReadWriteTransaction) error) (time.Time, error)
}

// Adapter applies a Plan inside a single read-write transaction.
type Adapter struct {
	client transactionRunner
}

func NewAdapter(client *spanner.Client) *Adapter {
	if client == nil {
		return &Adapter{}
	}
	return &Adapter{client: client}
}

func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}
	if a.client == nil {
		return errNoClient
	}

	_, err := a.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		for _, guard := range plan.Guards() {
			if err := guard(ctx, tx); err != nil {
				return err
			}
		}
		return tx.BufferWrite(plan.Mutations())
	})
	if err != nil {
		return fmt.Errorf("commit %d mutations: %w", plan.Len(), err)
	}
	return nil
}
