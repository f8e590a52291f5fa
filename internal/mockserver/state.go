package mockserver

import (
	"fmt"
	"time"

	"github.com/julianstephens/moodlit/internal/models"
)

type user struct {
	ID            string
	Email         string
	Password      string
	Nickname      string
	Admin         bool
	TestCompleted bool
	Character     models.Character
}

// dailyState is one user's missions for one day
type dailyState struct {
	Date     string
	Missions []models.Mission
}

var missionTemplates = []models.Mission{
	{Title: "Morning light", Content: "Step outside for ten minutes of daylight before noon.", Theme: "rhythm", Theory: "circadian entrainment", Reward: 40},
	{Title: "Three good things", Content: "Write down three things that went well today.", Theme: "gratitude", Theory: "positive psychology", Reward: 30},
	{Title: "Walk it off", Content: "Take a twenty minute walk without your phone.", Theme: "movement", Theory: "behavioral activation", Reward: 50},
	{Title: "Say hello", Content: "Send a message to someone you have not talked to this week.", Theme: "connection", Theory: "social baseline", Reward: 40},
	{Title: "Slow breath", Content: "Try five minutes of box breathing.", Theme: "calm", Theory: "vagal tone", Reward: 30},
	{Title: "Tidy corner", Content: "Clear one small surface at home.", Theme: "environment", Theory: "small wins", Reward: 30},
}

const dailyMissionCount = 3

var roadmapTitles = []string{
	"Wake up at the same time",
	"Cook one meal yourself",
	"Visit a park",
	"Read for twenty minutes",
	"Try a new cafe",
	"Call a family member",
	"Plan next week",
}

var seedRecommendations = []models.Recommendation{
	{ID: 1, Kind: models.KindPlace, Title: "Riverside trail", Description: "A flat loop along the water, good for an easy walk.", Location: "Riverside Park"},
	{ID: 2, Kind: models.KindProgram, Title: "Beginner yoga", Description: "A free weekly class for first timers.", Location: "Community Center"},
	{ID: 3, Kind: models.KindPlace, Title: "Botanical garden", Description: "Quiet greenhouses open all year.", Location: "North District"},
	{ID: 4, Kind: models.KindProgram, Title: "Journaling circle", Description: "Guided reflective writing in a small group.", Location: "Public Library"},
	{ID: 5, Kind: models.KindPlace, Title: "Hilltop lookout", Description: "A short climb with a wide view of the city.", Location: "East Hill"},
	{ID: 6, Kind: models.KindProgram, Title: "Pottery taster", Description: "Two hours on the wheel, no experience needed.", Location: "Arts Quarter"},
	{ID: 7, Kind: models.KindPlace, Title: "Reading room", Description: "A silent reading room with natural light.", Location: "Old Town"},
	{ID: 8, Kind: models.KindProgram, Title: "Running club", Description: "A relaxed 5k every Saturday morning.", Location: "Stadium Gate"},
	{ID: 9, Kind: models.KindPlace, Title: "Lakeside benches", Description: "Shaded benches facing the lake.", Location: "West Lake"},
	{ID: 10, Kind: models.KindProgram, Title: "Mindful cooking", Description: "Cook a simple seasonal meal together.", Location: "Market Hall"},
	{ID: 11, Kind: models.KindPlace, Title: "Rooftop garden", Description: "Small herb beds you can tend for an hour.", Location: "City Hall Annex"},
}

func newRoadmap() []models.RoadmapMission {
	out := make([]models.RoadmapMission, len(roadmapTitles))
	for i, title := range roadmapTitles {
		out[i] = models.RoadmapMission{ID: int64(i + 1), Day: i + 1, Title: title}
	}
	return out
}

// dailyFor picks missions for a date. The selection rotates with the day of
// the year so consecutive days differ.
func dailyFor(date time.Time, nextID func() int64) []models.Mission {
	offset := date.YearDay() % len(missionTemplates)
	out := make([]models.Mission, 0, dailyMissionCount)
	for i := 0; i < dailyMissionCount; i++ {
		m := missionTemplates[(offset+i)%len(missionTemplates)]
		m.ID = nextID()
		m.Status = models.MissionPending
		out = append(out, m)
	}
	return out
}

func recordKey(userID, date string) string {
	return fmt.Sprintf("%s/%s", userID, date)
}
