package missions

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/mission"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/session"
)

type RoadmapCmd struct {
	List   RoadmapListCmd   `cmd:"" default:"1" help:"List roadmap missions."`
	Submit RoadmapSubmitCmd `cmd:"" help:"Submit a review with photo proof."`
}

type RoadmapListCmd struct{}

func (RoadmapListCmd) Access() session.Access { return session.Authenticated }

func (c *RoadmapListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Roadmap().Refresh(ctx.Ctx())
	if err != nil {
		return err
	}
	for _, m := range list {
		ctx.Printf("  #%d  day %d  %-32s %s\n", m.ID, m.Day, m.Title, m.Status)
	}
	return nil
}

type RoadmapSubmitCmd struct {
	ID     int64    `arg:"" help:"Roadmap mission id."`
	Review string   `help:"Review text." short:"r" required:""`
	Photo  []string `help:"Photo file to attach. Repeatable." short:"p" type:"existingfile"`
}

func (RoadmapSubmitCmd) Access() session.Access { return session.Authenticated }

func (c *RoadmapSubmitCmd) Run(ctx *cli.Context) error {
	photos, err := ReadPhotos(c.Photo)
	if err != nil {
		return err
	}
	if err := mission.ValidateReview(c.Review, photos); err != nil {
		return err
	}

	board := ctx.Roadmap()
	if _, err := board.Refresh(ctx.Ctx()); err != nil {
		return err
	}
	submitted, err := board.SubmitReview(ctx.Ctx(), c.ID, c.Review, photos)
	if err != nil {
		return err
	}
	if !submitted {
		for _, m := range board.Missions() {
			if m.ID == c.ID {
				ctx.Printf("Mission #%d is already %s; nothing submitted.\n", c.ID, m.Status)
			}
		}
		return nil
	}
	ctx.Printf("✓ Review for mission #%d submitted for approval\n", c.ID)
	return nil
}

// ReadPhotos loads photo files and sniffs their content type
func ReadPhotos(paths []string) ([]models.Photo, error) {
	photos := make([]models.Photo, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read photo: %w", err)
		}
		photos = append(photos, models.Photo{
			Name:        filepath.Base(p),
			ContentType: http.DetectContentType(data),
			Data:        data,
		})
	}
	return photos, nil
}
