package uowmock

import (
	"context"
	"errors"
	"testing"

	"approvals-engine/internal/domain/approval"
	"approvals-engine/internal/domain/uow"
	"approvals-engine/internal/testutil/adjustmentmock"
	"approvals-engine/internal/testutil/approvalmock"
)

func TestUoW_WithinTx_Happy(t *testing.T) {
	ctx := context.Background()

	apprs := &approvalmock.Repo{}
	adjs := &adjustmentmock.Repo{}
	repos := uow.Repos{Approvals: apprs, Adjustments: adjs}

	innerCalled := false
	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(r uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			if fn == nil {
				t.Fatalf("WithinTx: fn is nil")
			}
			// simulate transaction body
			return fn(repos)
		},
	}

	err := m.WithinTx(ctx, func(r uow.Repos) error {
		innerCalled = true
		if r.Approvals != apprs || r.Adjustments != adjs {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_WithinTx_PropagatesError(t *testing.T) {
	ctx := context.Background()
	sentinel := errors.New("boom")

	m := &UoW{
		WithinTxFn: func(context.Context, func(uow.Repos) error) error {
			return sentinel
		},
	}
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, sentinel) {
		t.Fatalf("WithinTx: want %v, got %v", sentinel, err)
	}
}

func TestUoW_Defaults_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := &UoW{} // no funcs set
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
	if err := m.WithinApprovalTx(ctx, 1, func(uow.Repos, *approval.Approval) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinApprovalTx default: want errUnimplemented, got %v", err)
	}
	if err := m.WithinOwnerTx(ctx, "o", func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinOwnerTx default: want errUnimplemented, got %v", err)
	}
}

func TestUoW_WithinApprovalTx_Happy(t *testing.T) {
	ctx := context.Background()

	lock := &approval.Approval{ID: 7, Number: "999992400007"}
	repos := uow.Repos{Approvals: &approvalmock.Repo{}}

	innerCalled := false
	m := &UoW{
		WithinApprovalTxFn: func(gotCtx context.Context, approvalID uint64, fn func(r uow.Repos, a *approval.Approval) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinApprovalTx: ctx mismatch")
			}
			if approvalID != 7 {
				t.Fatalf("WithinApprovalTx: id mismatch, got %d", approvalID)
			}
			return fn(repos, lock)
		},
	}

	err := m.WithinApprovalTx(ctx, 7, func(r uow.Repos, a *approval.Approval) error {
		innerCalled = true
		if a != lock {
			t.Fatalf("WithinApprovalTx: approval not forwarded correctly: %+v", a)
		}
		return nil
	})
	if err != nil || !innerCalled {
		t.Fatalf("WithinApprovalTx: called=%v err=%v", innerCalled, err)
	}
}

func TestPassthrough(t *testing.T) {
	ctx := context.Background()
	locks := &Locker{}
	apprs := &approvalmock.Repo{
		GetByIDForUpdateFn: func(_ context.Context, id uint64) (*approval.Approval, error) {
			return &approval.Approval{ID: id}, nil
		},
	}
	m := Passthrough(uow.Repos{Approvals: apprs, Locks: locks})

	if err := m.WithinOwnerTx(ctx, "o-1", func(uow.Repos) error { return nil }); err != nil {
		t.Fatalf("WithinOwnerTx: %v", err)
	}
	if len(locks.Keys) != 1 || locks.Keys[0] != "owner:o-1" {
		t.Fatalf("owner lock not taken: %v", locks.Keys)
	}

	var got uint64
	if err := m.WithinApprovalTx(ctx, 9, func(_ uow.Repos, a *approval.Approval) error {
		got = a.ID
		return nil
	}); err != nil || got != 9 {
		t.Fatalf("WithinApprovalTx: id=%d err=%v", got, err)
	}
}

func TestUoW_FluentSetters_And_Reset(t *testing.T) {
	m := New()
	if m.WithinTxFn != nil || m.WithinApprovalTxFn != nil || m.WithinOwnerTxFn != nil {
		t.Fatalf("New should start with nil funcs")
	}

	// set via fluent setters
	m.WithWithinTx(func(context.Context, func(uow.Repos) error) error { return nil }).
		WithWithinApprovalTx(func(context.Context, uint64, func(uow.Repos, *approval.Approval) error) error { return nil }).
		WithWithinOwnerTx(func(context.Context, string, func(uow.Repos) error) error { return nil })

	if m.WithinTxFn == nil || m.WithinApprovalTxFn == nil || m.WithinOwnerTxFn == nil {
		t.Fatalf("fluent setters didn't assign funcs")
	}

	// reset clears funcs
	m.Reset()
	if m.WithinTxFn != nil || m.WithinApprovalTxFn != nil || m.WithinOwnerTxFn != nil {
		t.Fatalf("Reset should clear function fields")
	}
}
