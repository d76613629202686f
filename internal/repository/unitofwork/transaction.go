package unitofwork

import (
	"context"
	"fmt"
)

// RunInTx runs f inside a transaction on uow. The transaction is committed
// when f returns nil and rolled back on an error or a panic.
func RunInTx(ctx context.Context, uow UnitOfWork, f func(uow UnitOfWork) error) error {
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if v := recover(); v != nil {
			if err := uow.Rollback(); err != nil {
				v = fmt.Sprintf("%v: rolling back transaction: %v", v, err)
			}
			panic(v)
		}
	}()

	if err := f(uow); err != nil {
		if rerr := uow.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: rolling back transaction: %v", err, rerr)
		}
		return err
	}

	return uow.Commit()
}
