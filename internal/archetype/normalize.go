package archetype

import (
	"strings"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
)

// ToPercent interprets a backend trait value. Values up to 5 are grades,
// larger values are already percentages. The backend does not tag which
// scale it used.
func ToPercent(v int) int {
	if v <= MaxGrade {
		return GradeToPercent(v)
	}
	return v
}

// Normalize reconciles the backend result with the locally computed key.
// Server values win; the local key and the catalog fill whatever is
// missing or unrecognized.
func Normalize(server models.ServerTestResult, localKey Key) models.ArchetypeResult {
	key, ok := ParseServerLabel(server.CharacterType)
	if !ok {
		key = localKey
	}

	res := models.ArchetypeResult{
		ResultID: server.ResultID,
		Key:      string(key),
		Name:     server.CharacterType,
		Gauges: models.Gauges{
			EnergyLevel:  ToPercent(server.EnergyLevel),
			Adaptability: ToPercent(server.Adaptability),
			Resilience:   ToPercent(server.Resilience),
		},
		Tags:        serverTags(server.Keywords),
		Description: strings.TrimSpace(server.Description),
	}

	if p, found := Lookup(key); found {
		res.Name = p.Name
		if len(res.Tags) == 0 {
			res.Tags = limitTags(p.Tags)
		}
		if res.Description == "" {
			res.Description = p.Encouragement
		}
	}
	return res
}

func serverTags(keywords []string) []string {
	var tags []string
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		tags = append(tags, k)
		if len(tags) == constants.MaxArchetypeTags {
			break
		}
	}
	return tags
}
