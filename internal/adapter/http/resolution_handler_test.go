package http

import (
	stdhttp "net/http"
	"testing"

	"approvals-engine/internal/domain/legacy"
	ucApproval "approvals-engine/internal/usecase/approval"
	"approvals-engine/internal/usecase/resolver"

	"gorm.io/gorm"
)

var jean = map[string]any{
	"owner_id":   "owner-1",
	"first_name": "Jean",
	"last_name":  "Dupont",
	"birthdate":  "1980-05-01",
}

func seedLegacy(t *testing.T, db *gorm.DB, number, lastName, birthName string) {
	t.Helper()
	l := &legacy.Approval{
		Number: number, FirstName: "JEAN", LastName: lastName, BirthName: birthName,
		Birthdate: d(1980, 5, 1), StartAt: d(2024, 1, 1), EndAt: d(2025, 12, 31),
	}
	if err := db.Create(l).Error; err != nil {
		t.Fatalf("seed legacy: %v", err)
	}
}

func TestResolve_Codes(t *testing.T) {
	t.Run("nothing known", func(t *testing.T) {
		e, _ := newServer(t)
		rec := do(t, e, stdhttp.MethodPost, "/resolutions", mustJSON(jean))
		if rec.Code != stdhttp.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		got := decode[resolver.ResultDTO](t, rec)
		if got.Code != "CAN_OBTAIN_NEW_APPROVAL" || got.Approval != nil {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("legacy found by birth name", func(t *testing.T) {
		e, db := newServer(t)
		seedLegacy(t, db, "123452400001", "MARTIN", "DUPONT")
		got := decode[resolver.ResultDTO](t, do(t, e, stdhttp.MethodPost, "/resolutions", mustJSON(jean)))
		if got.Code != "FOUND" || got.Approval == nil {
			t.Fatalf("unexpected result: %+v", got)
		}
		if got.Approval.Source != "legacy" || got.Approval.ExternalNumber != "12345 24 00001" || !got.Approval.IsValid {
			t.Fatalf("unexpected approval view: %+v", got.Approval)
		}
	})

	t.Run("several legacy matches", func(t *testing.T) {
		e, db := newServer(t)
		seedLegacy(t, db, "123452400001", "DUPONT", "")
		seedLegacy(t, db, "543212400001", "DUPONT", "")
		got := decode[resolver.ResultDTO](t, do(t, e, stdhttp.MethodPost, "/resolutions", mustJSON(jean)))
		if got.Code != "MULTIPLE_RESULTS" || len(got.Candidates) != 2 || got.Approval != nil {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("validation", func(t *testing.T) {
		e, _ := newServer(t)
		rec := do(t, e, stdhttp.MethodPost, "/resolutions", mustJSON(map[string]any{"owner_id": "o", "birthdate": "01/05/1980"}))
		if rec.Code != stdhttp.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
		er := decode[ErrorResponse](t, rec)
		if !containsFieldMsg(er.Details, "first_name", "is required") || !containsFieldMsg(er.Details, "birthdate", "YYYY-MM-DD") {
			t.Fatalf("missing field errors: %+v", er.Details)
		}
	})
}

func TestGetOrCreateApproval_HTTP(t *testing.T) {
	t.Run("copies legacy", func(t *testing.T) {
		e, db := newServer(t)
		seedLegacy(t, db, "123452400001", "DUPONT", "")
		rec := do(t, e, stdhttp.MethodPost, "/resolutions/approval", mustJSON(jean))
		if rec.Code != stdhttp.StatusOK {
			t.Fatalf("status = %d; body=%s", rec.Code, rec.Body.String())
		}
		got := decode[ucApproval.ApprovalDTO](t, rec)
		if got.Number != "123452400001" || got.Origin != "legacy_copy" || got.OwnerID != "owner-1" {
			t.Fatalf("unexpected copy: %+v", got)
		}
	})

	t.Run("ambiguous", func(t *testing.T) {
		e, db := newServer(t)
		seedLegacy(t, db, "123452400001", "DUPONT", "")
		seedLegacy(t, db, "543212400001", "DUPONT", "")
		if rec := do(t, e, stdhttp.MethodPost, "/resolutions/approval", mustJSON(jean)); rec.Code != stdhttp.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("already copied for someone else", func(t *testing.T) {
		e, db := newServer(t)
		seedLegacy(t, db, "123452400001", "DUPONT", "")
		seedApproval(t, db, "123452400001", "owner-2", d(2024, 1, 1), d(2025, 12, 31))
		if rec := do(t, e, stdhttp.MethodPost, "/resolutions/approval", mustJSON(jean)); rec.Code != stdhttp.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("nothing valid", func(t *testing.T) {
		e, _ := newServer(t)
		if rec := do(t, e, stdhttp.MethodPost, "/resolutions/approval", mustJSON(jean)); rec.Code != stdhttp.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}
