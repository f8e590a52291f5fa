package missions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/moodlit/internal/cli/clitest"
)

// smallest valid PNG header is enough for content sniffing
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func writePhoto(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "proof.png")
	if err := os.WriteFile(p, pngBytes, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDailyMissionFlow(t *testing.T) {
	h := clitest.New(t)
	h.LoginDemo(t)

	if err := (&TodayCmd{}).Run(h.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(h.Output(), "No missions for today") {
		t.Error("expected an empty board before generation")
	}

	if err := (&GenerateCmd{}).Run(h.Ctx); err != nil {
		t.Fatalf("mission generate failed: %v", err)
	}
	if !strings.Contains(h.Output(), "Today's missions (3)") {
		t.Error("expected three generated missions")
	}

	// a new process sees the same missions
	h.Reload(t)
	list, err := h.Ctx.Daily().Refresh(h.Ctx.Ctx())
	if err != nil || len(list) != 3 {
		t.Fatalf("Refresh() = %v, %v", list, err)
	}
	id := list[0].ID

	if err := (&CompleteCmd{ID: id}).Run(h.Ctx); err != nil {
		t.Fatalf("mission complete failed: %v", err)
	}
	out := h.Output()
	if !strings.Contains(out, "Completed: "+list[0].Title) || !strings.Contains(out, "Level 1") {
		t.Errorf("unexpected completion output:\n%s", out)
	}

	if err := (&CompleteCmd{ID: id}).Run(h.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(h.Output(), "already complete") {
		t.Error("second completion was not a no-op")
	}

	if err := (&TodayCmd{}).Run(h.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(h.Output(), "[✓]") {
		t.Error("completed mission not marked")
	}

	if err := (&CompleteCmd{ID: 9999}).Run(h.Ctx); err == nil || !strings.Contains(err.Error(), "not on today's list") {
		t.Errorf("unknown mission err = %v", err)
	}
}

func TestRoadmapSubmit(t *testing.T) {
	h := clitest.New(t)
	h.LoginDemo(t)

	if err := (&RoadmapListCmd{}).Run(h.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(h.Output(), "Visit a park") {
		t.Error("roadmap listing missing seeded missions")
	}

	photo := writePhoto(t)
	if err := (&RoadmapSubmitCmd{ID: 3, Review: "hi", Photo: []string{photo}}).Run(h.Ctx); err == nil {
		t.Error("short review accepted")
	}
	if err := (&RoadmapSubmitCmd{ID: 3, Review: "lovely afternoon"}).Run(h.Ctx); err == nil {
		t.Error("review without photos accepted")
	}

	cmd := &RoadmapSubmitCmd{ID: 3, Review: "lovely afternoon", Photo: []string{photo}}
	if err := cmd.Run(h.Ctx); err != nil {
		t.Fatalf("roadmap submit failed: %v", err)
	}
	if !strings.Contains(h.Output(), "submitted for approval") {
		t.Error("missing confirmation")
	}

	if err := cmd.Run(h.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(h.Output(), "already pending") {
		t.Error("resubmit while pending was not a no-op")
	}
}

func TestReadPhotos(t *testing.T) {
	photos, err := ReadPhotos([]string{writePhoto(t)})
	if err != nil {
		t.Fatal(err)
	}
	if photos[0].Name != "proof.png" || photos[0].ContentType != "image/png" {
		t.Errorf("photo = %+v", photos[0])
	}
	if _, err := ReadPhotos([]string{filepath.Join(t.TempDir(), "missing.jpg")}); err == nil {
		t.Error("missing file accepted")
	}
}
