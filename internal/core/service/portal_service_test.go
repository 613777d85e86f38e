package service

import (
	"context"
	"errors"
	"testing"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		done, total, want int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 12}, // 12.5 rounds to even
		{3, 8, 38}, // 37.5 rounds to even
		{1, 2, 50},
		{4, 4, 100},
	}
	for _, tc := range cases {
		if got := ProgressPercent(tc.done, tc.total); got != tc.want {
			t.Fatalf("ProgressPercent(%d, %d) = %d, want %d", tc.done, tc.total, got, tc.want)
		}
	}
}

func TestPortalService_Get(t *testing.T) {
	workorders := newStubWorkorderRepo(nil)
	workorders.rows["wo-1"] = &domain.Workorder{ID: "wo-1", OrgID: "org-1", Vehicle: "Saab", Status: domain.WorkorderInProgress}
	tasks := newStubTaskRepo()
	tasks.rows[1] = &domain.Task{ID: 1, OrgID: "org-1", WorkorderID: "wo-1", Name: "a", Status: domain.TaskDone}
	tasks.rows[2] = &domain.Task{ID: 2, OrgID: "org-1", WorkorderID: "wo-1", Name: "b", Status: domain.TaskToDo}
	tasks.rows[3] = &domain.Task{ID: 3, OrgID: "org-1", WorkorderID: "wo-1", Name: "c", Status: domain.TaskInProgress}

	svc := NewPortalService(workorders, tasks)

	// no user in context: the portal is public
	view, err := svc.Get(context.Background(), "wo-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if view.ProgressPct != 33 {
		t.Fatalf("expected 33%%, got %d", view.ProgressPct)
	}
	if view.Customer != domain.UnknownCustomer || len(view.Tasks) != 3 {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestPortalService_EmptyAndMissing(t *testing.T) {
	workorders := newStubWorkorderRepo(nil)
	workorders.rows["wo-1"] = &domain.Workorder{ID: "wo-1", OrgID: "org-1", Vehicle: "Saab", Status: domain.WorkorderNew}
	svc := NewPortalService(workorders, newStubTaskRepo())

	view, err := svc.Get(context.Background(), "wo-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if view.ProgressPct != 0 || len(view.Tasks) != 0 {
		t.Fatalf("unexpected empty view %+v", view)
	}

	_, err = svc.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if d, _ := domain.DetailOf(err); d != "Not found" {
		t.Fatalf("unexpected detail %q", d)
	}
}
