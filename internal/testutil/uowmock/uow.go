package uowmock

import (
	"context"
	"errors"

	"approvals-engine/internal/domain/approval"
	"approvals-engine/internal/domain/uow"
)

// Ensure compile-time compliance
var (
	_ uow.UnitOfWork = (*UoW)(nil)
	_ uow.Locker     = (*Locker)(nil)
)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinApprovalTxFn func(ctx context.Context, approvalID uint64, fn func(r uow.Repos, a *approval.Approval) error) error
	WithinOwnerTxFn    func(ctx context.Context, ownerID string, fn func(r uow.Repos) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinApprovalTx(fn func(context.Context, uint64, func(uow.Repos, *approval.Approval) error) error) *UoW {
	m.WithinApprovalTxFn = fn
	return m
}
func (m *UoW) WithWithinOwnerTx(fn func(context.Context, string, func(uow.Repos) error) error) *UoW {
	m.WithinOwnerTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Passthrough wires every method to run fn directly against repos.
// WithinApprovalTx loads the approval through repos.Approvals.GetByIDForUpdate.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error { return fn(repos) },
		WithinApprovalTxFn: func(ctx context.Context, id uint64, fn func(uow.Repos, *approval.Approval) error) error {
			a, err := repos.Approvals.GetByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			return fn(repos, a)
		},
		WithinOwnerTxFn: func(ctx context.Context, ownerID string, fn func(uow.Repos) error) error {
			if repos.Locks != nil {
				if err := repos.Locks.Acquire(ctx, uow.OwnerLockKey(ownerID)); err != nil {
					return err
				}
			}
			return fn(repos)
		},
	}
}

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinApprovalTx(ctx context.Context, approvalID uint64, fn func(r uow.Repos, a *approval.Approval) error) error {
	if m.WithinApprovalTxFn != nil {
		return m.WithinApprovalTxFn(ctx, approvalID, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinOwnerTx(ctx context.Context, ownerID string, fn func(r uow.Repos) error) error {
	if m.WithinOwnerTxFn != nil {
		return m.WithinOwnerTxFn(ctx, ownerID, fn)
	}
	return errUnimplemented
}

// Locker records acquired keys; AcquireFn overrides the default nil error.
type Locker struct {
	AcquireFn func(ctx context.Context, key string) error
	Keys      []string
}

func (l *Locker) Acquire(ctx context.Context, key string) error {
	l.Keys = append(l.Keys, key)
	if l.AcquireFn != nil {
		return l.AcquireFn(ctx, key)
	}
	return nil
}
