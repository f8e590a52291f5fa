package emotion

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/julianstephens/moodlit/internal/api"
	"github.com/julianstephens/moodlit/internal/constants"
	apperrors "github.com/julianstephens/moodlit/internal/errors"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/storage"
)

// fakeRemote is an in-memory record backend with per-date failure injection
type fakeRemote struct {
	mu       sync.Mutex
	records  map[string]models.EmotionRecord
	failGet  map[string]bool
	failPut  bool
	puts     int
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		records: map[string]models.EmotionRecord{},
		failGet: map[string]bool{},
	}
}

func (f *fakeRemote) GetRecord(ctx context.Context, date string) (models.EmotionRecord, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet[date] {
		return models.EmotionRecord{}, fmt.Errorf("%w: simulated", api.ErrNetwork)
	}
	rec, ok := f.records[date]
	if !ok {
		return models.EmotionRecord{}, api.ErrNotFound
	}
	return rec, nil
}

func (f *fakeRemote) PutRecord(ctx context.Context, rec models.EmotionRecord) (models.EmotionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.failPut {
		return models.EmotionRecord{}, fmt.Errorf("%w: simulated", api.ErrNetwork)
	}
	f.records[rec.Date] = rec
	return rec, nil
}

func newTestStore(t *testing.T, remote Source, opts ...Option) (*Store, storage.Provider) {
	t.Helper()
	local := storage.NewJSONStore(filepath.Join(t.TempDir(), "state.json"))
	if err := local.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return NewStore(remote, NewPersistentSuppression(local), opts...), local
}

func TestSaveThenGet(t *testing.T) {
	remote := newFakeRemote()
	s, _ := newTestStore(t, remote)
	ctx := context.Background()

	saved, err := s.Save(ctx, "2024-05-01", 4, []string{"calm", " ", "grateful"}, "tea with a friend")
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, ok, err := s.Get(ctx, "2024-05-01")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !ok {
		t.Fatal("Get() reported absent after Save()")
	}
	want := models.EmotionRecord{
		Date:      "2024-05-01",
		MoodLevel: 4,
		Keywords:  []string{"calm", "grateful"},
		Memo:      "tea with a friend",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, saved); diff != "" {
		t.Errorf("Save() mismatch (-want +got):\n%s", diff)
	}
}

// stuckSuppression hides dates but fails to unhide them
type stuckSuppression struct{ hidden map[string]bool }

func (s *stuckSuppression) Hide(date string) error {
	s.hidden[date] = true
	return nil
}

func (s *stuckSuppression) Unhide(date string) error {
	return errors.New("disk full")
}

func (s *stuckSuppression) IsHidden(date string) (bool, error) {
	return s.hidden[date], nil
}

func TestSaveReportsUnhideFailure(t *testing.T) {
	remote := newFakeRemote()
	s := NewStore(remote, &stuckSuppression{hidden: map[string]bool{"2024-05-01": true}})

	saved, err := s.Save(context.Background(), "2024-05-01", 5, nil, "")
	if !errors.Is(err, ErrStillHidden) {
		t.Fatalf("Save() error = %v, want ErrStillHidden", err)
	}
	if strings.Contains(err.Error(), "failed to save") {
		t.Errorf("error claims the save failed: %v", err)
	}
	if saved.MoodLevel != 5 || remote.records["2024-05-01"].MoodLevel != 5 {
		t.Errorf("remote write not reported: saved=%+v", saved)
	}
}

func TestGetNeverRecorded(t *testing.T) {
	s, _ := newTestStore(t, newFakeRemote())
	_, ok, err := s.Get(context.Background(), "2024-05-09")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if ok {
		t.Error("Get() reported a record for an unrecorded date")
	}
}

func TestGetSurfacesTransportErrors(t *testing.T) {
	remote := newFakeRemote()
	remote.failGet["2024-05-01"] = true
	s, _ := newTestStore(t, remote)

	_, ok, err := s.Get(context.Background(), "2024-05-01")
	if !errors.Is(err, api.ErrNetwork) {
		t.Errorf("Get() error = %v, want ErrNetwork", err)
	}
	if ok {
		t.Error("Get() reported a record on failure")
	}
}

func TestSoftDeleteHidesAndSaveRestores(t *testing.T) {
	remote := newFakeRemote()
	s, _ := newTestStore(t, remote)
	ctx := context.Background()
	date := "2024-05-03"

	if _, err := s.Save(ctx, date, 2, []string{"tired"}, ""); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	// the remote refuses the clear so it keeps the original record
	remote.failPut = true
	if err := s.SoftDelete(ctx, date); err != nil {
		t.Fatalf("SoftDelete() failed: %v", err)
	}
	if rec := remote.records[date]; rec.MoodLevel != 2 {
		t.Fatalf("remote record changed: %+v", rec)
	}

	if _, ok, err := s.Get(ctx, date); err != nil || ok {
		t.Fatalf("Get() after SoftDelete() = ok %v, err %v; want absent", ok, err)
	}

	remote.failPut = false
	if _, err := s.Save(ctx, date, 5, []string{"rested"}, "slept well"); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	got, ok, err := s.Get(ctx, date)
	if err != nil || !ok {
		t.Fatalf("Get() after re-Save() = ok %v, err %v; want visible", ok, err)
	}
	if got.MoodLevel != 5 {
		t.Errorf("MoodLevel = %d, want 5", got.MoodLevel)
	}
}

func TestSoftDeleteClearsRemoteWhenPossible(t *testing.T) {
	remote := newFakeRemote()
	s, _ := newTestStore(t, remote)
	ctx := context.Background()

	if _, err := s.Save(ctx, "2024-05-04", 1, []string{"sad"}, "rough day"); err != nil {
		t.Fatal(err)
	}
	if err := s.SoftDelete(ctx, "2024-05-04"); err != nil {
		t.Fatal(err)
	}

	want := models.EmotionRecord{Date: "2024-05-04", MoodLevel: constants.DefaultMoodLevel, Keywords: []string{}}
	if diff := cmp.Diff(want, remote.records["2024-05-04"]); diff != "" {
		t.Errorf("remote clear mismatch (-want +got):\n%s", diff)
	}
	if _, ok, _ := s.Get(ctx, "2024-05-04"); ok {
		t.Error("cleared date still visible")
	}
}

func TestSuppressionSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	local := storage.NewJSONStore(path)
	if err := local.Init(); err != nil {
		t.Fatal(err)
	}
	remote := newFakeRemote()
	remote.records["2024-06-10"] = models.EmotionRecord{Date: "2024-06-10", MoodLevel: 3, Keywords: []string{"ok"}}

	first := NewStore(remote, NewPersistentSuppression(local))
	if err := first.SoftDelete(context.Background(), "2024-06-10"); err != nil {
		t.Fatal(err)
	}

	reopened := storage.NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatal(err)
	}
	raw, err := reopened.GetValue(constants.KeyDeletedEmotionDates)
	if err != nil {
		t.Fatalf("suppression key missing: %v", err)
	}
	if raw != `["2024-06-10"]` {
		t.Errorf("persisted suppression = %s", raw)
	}

	second := NewStore(remote, NewPersistentSuppression(reopened))
	if _, ok, _ := second.Get(context.Background(), "2024-06-10"); ok {
		t.Error("date visible after reload")
	}
}

func TestSaveValidation(t *testing.T) {
	tests := []struct {
		name string
		date string
		mood int
	}{
		{name: "mood too low", date: "2024-05-01", mood: 0},
		{name: "mood too high", date: "2024-05-01", mood: 6},
		{name: "bad date", date: "05/01/2024", mood: 3},
		{name: "impossible date", date: "2024-02-30", mood: 3},
		{name: "empty date", date: "", mood: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := newFakeRemote()
			s, _ := newTestStore(t, remote)
			_, err := s.Save(context.Background(), tt.date, tt.mood, nil, "")
			if !errors.Is(err, ErrInvalidRecord) || !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("Save() error = %v, want ErrInvalidRecord", err)
			}
			if remote.puts != 0 {
				t.Errorf("remote saw %d writes for invalid input", remote.puts)
			}
		})
	}
}

func TestFetchRangeToleratesDayFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	remote := newFakeRemote()
	days := MonthDates(2024, time.February)
	for i, d := range days {
		remote.records[d] = models.EmotionRecord{Date: d, MoodLevel: i%5 + 1}
	}
	remote.failGet["2024-02-14"] = true

	s, _ := newTestStore(t, remote)
	got, err := s.FetchRange(context.Background(), 2024, time.February)
	if err != nil {
		t.Fatalf("FetchRange() failed: %v", err)
	}
	if len(days) != 29 {
		t.Fatalf("February 2024 has %d days, want 29", len(days))
	}
	if len(got) != len(days)-1 {
		t.Errorf("FetchRange() returned %d records, want %d", len(got), len(days)-1)
	}
	if _, ok := got["2024-02-14"]; ok {
		t.Error("failed day present in result")
	}
}

func TestFetchRangeAppliesSuppression(t *testing.T) {
	remote := newFakeRemote()
	for _, d := range []string{"2024-03-01", "2024-03-02", "2024-03-03"} {
		remote.records[d] = models.EmotionRecord{Date: d, MoodLevel: 3}
	}
	s, _ := newTestStore(t, remote)
	ctx := context.Background()

	remote.failPut = true
	if err := s.SoftDelete(ctx, "2024-03-02"); err != nil {
		t.Fatal(err)
	}

	got, err := s.FetchRange(ctx, 2024, time.March)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("FetchRange() returned %d records, want 2", len(got))
	}
	if _, ok := got["2024-03-02"]; ok {
		t.Error("suppressed day returned")
	}
}

func TestFetchRangeConcurrencyCap(t *testing.T) {
	defer goleak.VerifyNone(t)

	remote := newFakeRemote()
	remote.delay = 5 * time.Millisecond
	s, _ := newTestStore(t, remote, WithConcurrency(3))

	if _, err := s.FetchRange(context.Background(), 2024, time.January); err != nil {
		t.Fatal(err)
	}
	if peak := remote.peak.Load(); peak > 3 {
		t.Errorf("peak in-flight lookups = %d, want <= 3", peak)
	}
	if peak := remote.peak.Load(); peak < 1 {
		t.Errorf("peak in-flight lookups = %d, no lookups ran", peak)
	}
}

func TestFetchRangeRejectsBadMonth(t *testing.T) {
	s, _ := newTestStore(t, newFakeRemote())
	if _, err := s.FetchRange(context.Background(), 2024, 13); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("FetchRange(13) error = %v, want ErrInvalidRecord", err)
	}
}

func TestMoodOrDefault(t *testing.T) {
	remote := newFakeRemote()
	remote.records["2024-05-01"] = models.EmotionRecord{Date: "2024-05-01", MoodLevel: 5}
	remote.failGet["2024-05-02"] = true
	s, _ := newTestStore(t, remote)
	ctx := context.Background()

	tests := []struct {
		date string
		want int
	}{
		{"2024-05-01", 5},
		{"2024-05-02", constants.DefaultMoodLevel}, // transport failure
		{"2024-05-03", constants.DefaultMoodLevel}, // never recorded
		{"not-a-date", constants.DefaultMoodLevel},
	}
	for _, tt := range tests {
		if got := s.MoodOrDefault(ctx, tt.date); got != tt.want {
			t.Errorf("MoodOrDefault(%q) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestMonthDates(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2023, time.February, 28},
		{2024, time.February, 29},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		got := MonthDates(tt.year, tt.month)
		if len(got) != tt.want {
			t.Errorf("MonthDates(%d, %s) has %d days, want %d", tt.year, tt.month, len(got), tt.want)
		}
		if got[0][8:] != "01" {
			t.Errorf("first date = %s", got[0])
		}
	}
}
