package sbp_test

import (
	"testing"
	"time"

	"sbp-go/internal/sbp"
	"sbp-go/internal/testutil"
)

func TestSBPService_GetHistory(t *testing.T) {
	store := testutil.NewTestStore(t)
	clock := testutil.FixedClock()
	svc := sbp.NewSBPService(store, nil, nil, sbp.NewNopLogger(), clock, testutil.NewStubIDGenerator())

	for _, name := range []string{"create", "clients add", "assets"} {
		op, err := store.CreateOperation(name, "", clock.Now())
		if err != nil {
			t.Fatalf("CreateOperation() error = %v", err)
		}
		clock.Advance(time.Second)
		if err := store.FinishOperation(op.ID, "success", clock.Now()); err != nil {
			t.Fatalf("FinishOperation() error = %v", err)
		}
	}

	ops, err := svc.GetHistory(2)
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("len(GetHistory(2)) = %d, want 2", len(ops))
	}
	if ops[0].Operation != "assets" || ops[1].Operation != "clients add" {
		t.Errorf("GetHistory() = [%s %s], want newest first", ops[0].Operation, ops[1].Operation)
	}
	if ops[0].Duration() != time.Second {
		t.Errorf("Duration() = %v, want 1s", ops[0].Duration())
	}

	all, err := svc.GetHistory(0)
	if err != nil {
		t.Fatalf("GetHistory(0) error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(GetHistory(0)) = %d, want 3", len(all))
	}
}
