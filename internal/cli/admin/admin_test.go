package admin

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/moodlit/internal/api"
	"github.com/julianstephens/moodlit/internal/cli/clitest"
	"github.com/julianstephens/moodlit/internal/cli/missions"
	"github.com/julianstephens/moodlit/internal/models"
)

func submitProof(t *testing.T, h *clitest.Harness, id int64) {
	t.Helper()
	board := h.Ctx.Roadmap()
	if _, err := board.Refresh(h.Ctx.Ctx()); err != nil {
		t.Fatal(err)
	}
	photos := []models.Photo{{Name: "proof.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}}}
	ok, err := board.SubmitReview(h.Ctx.Ctx(), id, "went for it today", photos)
	if err != nil || !ok {
		t.Fatalf("SubmitReview() = %v, %v", ok, err)
	}
}

func TestApproveFlow(t *testing.T) {
	h := clitest.New(t)
	h.LoginDemo(t)
	submitProof(t, h, 2)

	h.LoginAdmin(t)
	if err := (&SubmissionsCmd{Status: "pending"}).Run(h.Ctx); err != nil {
		t.Fatalf("admin submissions failed: %v", err)
	}
	out := h.Output()
	if !strings.Contains(out, "mission #2") || !strings.Contains(out, "photos: proof.jpg") {
		t.Fatalf("unexpected listing:\n%s", out)
	}
	id := strings.Fields(out)[0]

	if err := (&DecideCmd{ID: id}).Run(h.Ctx); err != nil {
		t.Fatalf("admin approve failed: %v", err)
	}
	if !strings.Contains(h.Output(), "Approved submission "+id) {
		t.Error("missing confirmation")
	}

	if err := (&RejectCmd{ID: id}).Run(h.Ctx); err == nil || !strings.Contains(err.Error(), "already decided") {
		t.Errorf("second decision err = %v", err)
	}
	if err := (&SubmissionsCmd{Status: "pending"}).Run(h.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(h.Output(), "No submissions.") {
		t.Error("approved submission still listed as pending")
	}

	h.LoginDemo(t)
	if err := (&missions.RoadmapListCmd{}).Run(h.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(h.Output(), "approved") {
		t.Error("approval not visible to the user")
	}
}

func TestRejectCmd(t *testing.T) {
	h := clitest.New(t)
	h.LoginDemo(t)
	submitProof(t, h, 1)

	h.LoginAdmin(t)
	if err := (&SubmissionsCmd{}).Run(h.Ctx); err != nil {
		t.Fatal(err)
	}
	id := strings.Fields(h.Output())[0]
	if err := (&RejectCmd{ID: id}).Run(h.Ctx); err != nil {
		t.Fatalf("admin reject failed: %v", err)
	}
	if !strings.Contains(h.Output(), "Rejected") {
		t.Error("missing confirmation")
	}
	if err := (&RejectCmd{ID: "nope"}).Run(h.Ctx); err == nil || !strings.Contains(err.Error(), "no submission") {
		t.Errorf("unknown id err = %v", err)
	}
}

func TestNonAdminKeepsSession(t *testing.T) {
	h := clitest.New(t)
	h.LoginDemo(t)

	err := (&SubmissionsCmd{}).Run(h.Ctx)
	if !errors.Is(err, api.ErrForbidden) || !strings.Contains(err.Error(), "admin access required") {
		t.Fatalf("err = %v", err)
	}
	h.Reload(t)
	if !h.Ctx.Session.IsAuthenticated() {
		t.Error("forbidden admin call ended the session")
	}
}
