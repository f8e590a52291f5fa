package archetype

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/moodlit/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		server   models.ServerTestResult
		localKey Key
		want     models.ArchetypeResult
	}{
		{
			name: "known label with grades",
			server: models.ServerTestResult{
				ResultID:      "r-1",
				CharacterType: "ARTIST",
				EnergyLevel:   2,
				Adaptability:  3,
				Resilience:    5,
				Keywords:      []string{"Quiet", "Warm"},
				Description:   "A server description.",
			},
			localKey: Explorer,
			want: models.ArchetypeResult{
				ResultID:    "r-1",
				Key:         "dreamer",
				Name:        "Gentle Dreamer",
				Gauges:      models.Gauges{EnergyLevel: 40, Adaptability: 60, Resilience: 100},
				Tags:        []string{"Quiet", "Warm"},
				Description: "A server description.",
			},
		},
		{
			name: "percentages pass through",
			server: models.ServerTestResult{
				CharacterType: "achiever_type",
				EnergyLevel:   80,
				Adaptability:  60,
				Resilience:    100,
			},
			localKey: Guardian,
			want: models.ArchetypeResult{
				Key:         "challenger",
				Name:        "Bold Challenger",
				Gauges:      models.Gauges{EnergyLevel: 80, Adaptability: 60, Resilience: 100},
				Tags:        []string{"Driven", "Resilient", "Decisive"},
				Description: profiles[Challenger].Encouragement,
			},
		},
		{
			name: "unknown label falls back to local key",
			server: models.ServerTestResult{
				CharacterType: "WANDERER",
				EnergyLevel:   1,
				Adaptability:  1,
				Resilience:    1,
				Keywords:      []string{"", "  "},
				Description:   "   ",
			},
			localKey: Guardian,
			want: models.ArchetypeResult{
				Key:         "guardian",
				Name:        "Steady Guardian",
				Gauges:      models.Gauges{EnergyLevel: 20, Adaptability: 20, Resilience: 20},
				Tags:        []string{"Reliable", "Calm", "Caring"},
				Description: profiles[Guardian].Encouragement,
			},
		},
		{
			name: "server keywords trimmed and capped",
			server: models.ServerTestResult{
				CharacterType: "Curious Explorer",
				EnergyLevel:   3,
				Adaptability:  3,
				Resilience:    3,
				Keywords:      []string{" Bright ", "", "Playful", "Bold", "Extra"},
			},
			localKey: Dreamer,
			want: models.ArchetypeResult{
				Key:         "explorer",
				Name:        "Curious Explorer",
				Gauges:      models.Gauges{EnergyLevel: 60, Adaptability: 60, Resilience: 60},
				Tags:        []string{"Bright", "Playful", "Bold"},
				Description: profiles[Explorer].Encouragement,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.server, tt.localKey)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	server := models.ServerTestResult{
		ResultID:      "r-9",
		CharacterType: "PROTECTOR",
		EnergyLevel:   1,
		Adaptability:  4,
		Resilience:    5,
		Keywords:      []string{"Calm"},
	}

	once := Normalize(server, Explorer)
	again := Normalize(models.ServerTestResult{
		ResultID:      once.ResultID,
		CharacterType: once.Name,
		EnergyLevel:   once.Gauges.EnergyLevel,
		Adaptability:  once.Gauges.Adaptability,
		Resilience:    once.Gauges.Resilience,
		Keywords:      once.Tags,
		Description:   once.Description,
	}, Explorer)

	if diff := cmp.Diff(once, again); diff != "" {
		t.Errorf("second Normalize() changed the result (-once +again):\n%s", diff)
	}
}

func TestToPercent(t *testing.T) {
	for v := 1; v <= 5; v++ {
		p := ToPercent(v)
		if p != v*20 {
			t.Errorf("ToPercent(%d) = %d, want %d", v, p, v*20)
		}
		if ToPercent(p) != p {
			t.Errorf("ToPercent(ToPercent(%d)) = %d, double scaled", v, ToPercent(p))
		}
	}
	if ToPercent(73) != 73 {
		t.Errorf("ToPercent(73) = %d, want passthrough", ToPercent(73))
	}
}

func TestNormalizeMatchesLocalScore(t *testing.T) {
	local, err := Score(repeat(2))
	if err != nil {
		t.Fatal(err)
	}
	ev, err := Evaluate(repeat(2))
	if err != nil {
		t.Fatal(err)
	}

	server := models.ServerTestResult{
		CharacterType: ServerLabels[ev.Key],
		EnergyLevel:   ev.Grades.EnergyLevel,
		Adaptability:  ev.Grades.Adaptability,
		Resilience:    ev.Grades.Resilience,
	}
	got := Normalize(server, Key(local.Key))
	if diff := cmp.Diff(local, got); diff != "" {
		t.Errorf("server-shaped local score differs from Score() (-local +normalized):\n%s", diff)
	}
}
