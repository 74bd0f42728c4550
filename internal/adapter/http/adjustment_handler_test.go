package http

import (
	stdhttp "net/http"
	"strings"
	"testing"

	ucAdjustment "approvals-engine/internal/usecase/adjustment"
)

type listResp struct {
	Items []ucAdjustment.AdjustmentDTO `json:"items"`
}

func TestAdjustments_Lifecycle(t *testing.T) {
	e, db := newServer(t)
	a := seedApproval(t, db, "999992400001", "owner-1", d(2024, 1, 1), d(2026, 1, 1))
	base := "/approvals/" + itoa(a.ID) + "/adjustments"

	// 30-day closed suspension
	rec := do(t, e, stdhttp.MethodPost, base, mustJSON(map[string]any{
		"kind": "suspension", "start_at": "2024-06-01", "end_at": "2024-06-30", "reason": "SICKNESS",
	}))
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("insert: status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	susp := decode[ucAdjustment.AdjustmentDTO](t, rec)
	if susp.Days != 30 || susp.ApprovalEndAt != "2026-01-31" {
		t.Fatalf("unexpected suspension: %+v", susp)
	}

	// touching the suspension's end date overlaps
	rec = do(t, e, stdhttp.MethodPost, base, mustJSON(map[string]any{
		"kind": "suspension", "start_at": "2024-06-30", "end_at": "2024-07-01", "reason": "SICKNESS",
	}))
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("overlap: status = %d, want 409", rec.Code)
	}
	if er := decode[ErrorResponse](t, rec); !strings.Contains(er.Error, susp.ID) {
		t.Fatalf("overlap error should name the conflict: %q", er.Error)
	}

	// half-open prolongation
	rec = do(t, e, stdhttp.MethodPost, base, mustJSON(map[string]any{
		"kind": "prolongation", "start_at": "2024-03-01", "end_at": "2024-03-11", "reason": "RQTH",
	}))
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("prolongation: status = %d; body=%s", rec.Code, rec.Body.String())
	}
	prol := decode[ucAdjustment.AdjustmentDTO](t, rec)
	if prol.Days != 10 || prol.ApprovalEndAt != "2026-02-10" {
		t.Fatalf("unexpected prolongation: %+v", prol)
	}

	rec = do(t, e, stdhttp.MethodGet, base, nil)
	if got := decode[listResp](t, rec); rec.Code != stdhttp.StatusOK || len(got.Items) != 2 {
		t.Fatalf("list: status = %d, items = %+v", rec.Code, got.Items)
	}
	rec = do(t, e, stdhttp.MethodGet, base+"?kind=prolongation", nil)
	if got := decode[listResp](t, rec); len(got.Items) != 1 || got.Items[0].ID != prol.ID {
		t.Fatalf("list by kind: %+v", got.Items)
	}
	if rec := do(t, e, stdhttp.MethodGet, base+"?kind=pause", nil); rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("list bad kind: status = %d, want 422", rec.Code)
	}

	// shrink the suspension to 10 days
	rec = do(t, e, stdhttp.MethodPut, "/adjustments/"+susp.ID, mustJSON(map[string]any{
		"start_at": "2024-06-01", "end_at": "2024-06-10", "reason": "MATERNITY",
	}))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("update: status = %d; body=%s", rec.Code, rec.Body.String())
	}
	if upd := decode[ucAdjustment.AdjustmentDTO](t, rec); upd.ApprovalEndAt != "2026-01-21" || upd.Reason != "MATERNITY" {
		t.Fatalf("unexpected update: %+v", upd)
	}

	rec = do(t, e, stdhttp.MethodDelete, "/adjustments/"+prol.ID, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("delete: status = %d", rec.Code)
	}
	if del := decode[ucAdjustment.AdjustmentDTO](t, rec); del.ApprovalEndAt != "2026-01-11" {
		t.Fatalf("unexpected delete: %+v", del)
	}
	if rec := do(t, e, stdhttp.MethodDelete, "/adjustments/"+prol.ID, nil); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("second delete: status = %d, want 404", rec.Code)
	}
}

func TestAdjustments_Rejections(t *testing.T) {
	e, db := newServer(t)
	a := seedApproval(t, db, "999992400001", "owner-1", d(2024, 1, 1), d(2026, 1, 1))
	base := "/approvals/" + itoa(a.ID) + "/adjustments"

	tests := []struct {
		name string
		path string
		body map[string]any
		want int
	}{
		{"unknown kind", base, map[string]any{"kind": "pause", "start_at": "2024-06-01", "end_at": "2024-06-02", "reason": "SICKNESS"}, stdhttp.StatusUnprocessableEntity},
		{"missing reason", base, map[string]any{"kind": "suspension", "start_at": "2024-06-01", "end_at": "2024-06-02"}, stdhttp.StatusUnprocessableEntity},
		{"reason of the other kind", base, map[string]any{"kind": "suspension", "start_at": "2024-06-01", "end_at": "2024-06-02", "reason": "RQTH"}, stdhttp.StatusUnprocessableEntity},
		{"reversed range", base, map[string]any{"kind": "suspension", "start_at": "2024-06-10", "end_at": "2024-06-01", "reason": "SICKNESS"}, stdhttp.StatusUnprocessableEntity},
		{"before the approval", base, map[string]any{"kind": "suspension", "start_at": "2023-12-01", "end_at": "2023-12-10", "reason": "SICKNESS"}, stdhttp.StatusUnprocessableEntity},
		{"suspension in the future", base, map[string]any{"kind": "suspension", "start_at": "2024-08-01", "end_at": "2024-08-10", "reason": "SICKNESS"}, stdhttp.StatusUnprocessableEntity},
		{"unknown approval", "/approvals/424242/adjustments", map[string]any{"kind": "suspension", "start_at": "2024-06-01", "end_at": "2024-06-02", "reason": "SICKNESS"}, stdhttp.StatusNotFound},
		{"bad approval id", "/approvals/zero/adjustments", map[string]any{}, stdhttp.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, stdhttp.MethodPost, tt.path, mustJSON(tt.body))
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d; body=%s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}

	if rec := do(t, e, stdhttp.MethodPut, "/adjustments/nope", mustJSON(map[string]any{
		"start_at": "2024-06-01", "end_at": "2024-06-10", "reason": "SICKNESS",
	})); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("update unknown: status = %d, want 404", rec.Code)
	}
	if rec := do(t, e, stdhttp.MethodGet, "/approvals/424242/adjustments", nil); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("list unknown approval: status = %d, want 404", rec.Code)
	}
}
