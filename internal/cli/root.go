package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/moodlit/internal/api"
	"github.com/julianstephens/moodlit/internal/config"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/emotion"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/mission"
	"github.com/julianstephens/moodlit/internal/recommend"
	"github.com/julianstephens/moodlit/internal/session"
	"github.com/julianstephens/moodlit/internal/storage"
	"github.com/julianstephens/moodlit/internal/storage/postgres"
	"github.com/julianstephens/moodlit/internal/storage/sqlite"
)

type Context struct {
	Config  config.Config
	Store   storage.Provider
	Session *session.Session
	Client  *api.Client

	// Base is cancelled on interrupt
	Base context.Context
	Out  io.Writer
	Now  func() time.Time
}

// New loads the session and builds a client that carries its token and
// drops it on a 401
func New(cfg config.Config, store storage.Provider, tokens session.TokenStore) (*Context, error) {
	sess, err := session.Load(tokens, store, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	client := api.New(cfg.APIURL,
		api.WithTimeout(cfg.Timeout),
		api.WithTokenSource(sess.AccessToken),
		api.WithUnauthorizedHook(sess.ForceLogout),
	)
	return &Context{
		Config:  cfg,
		Store:   store,
		Session: sess,
		Client:  client,
		Base:    context.Background(),
		Out:     os.Stdout,
		Now:     time.Now,
	}, nil
}

// NewStore picks the storage backend from its location, a PostgreSQL connection
// string, a .json file, or (the default) a SQLite file
func NewStore(location string) (storage.Provider, error) {
	switch {
	case postgres.IsConnString(location), postgres.IsDSN(location):
		if err := postgres.ValidateConnString(location); err != nil {
			return nil, err
		}
		return postgres.New(location), nil
	case strings.HasSuffix(strings.ToLower(location), ".json"):
		return storage.NewJSONStore(location), nil
	default:
		return sqlite.NewStore(location), nil
	}
}

func (c *Context) Ctx() context.Context {
	if c.Base == nil {
		return context.Background()
	}
	return c.Base
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Today is the local date as YYYY-MM-DD
func (c *Context) Today() string {
	return c.now().Format(constants.DateFormat)
}

// ResolveDate accepts YYYY-MM-DD, "today" or "yesterday"
func (c *Context) ResolveDate(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return c.Today(), nil
	case "yesterday":
		return c.now().AddDate(0, 0, -1).Format(constants.DateFormat), nil
	}
	if err := emotion.ValidateDate(s); err != nil {
		return "", err
	}
	return s, nil
}

// ResolveMonth accepts YYYY-MM or an empty string for the current month
func (c *Context) ResolveMonth(s string) (int, time.Month, error) {
	if strings.TrimSpace(s) == "" {
		now := c.now()
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (expected YYYY-MM)", s)
	}
	return t.Year(), t.Month(), nil
}

// Records is the emotion store over the backend and the local suppression set
func (c *Context) Records() *emotion.Store {
	return emotion.NewStore(c.Client,
		emotion.NewPersistentSuppression(c.Store),
		emotion.WithConcurrency(c.Config.FetchConcurrency),
	)
}

func (c *Context) Daily() *mission.DailyBoard {
	return mission.NewDailyBoard(c.Client)
}

func (c *Context) Roadmap() *mission.RoadmapBoard {
	return mission.NewRoadmapBoard(c.Client)
}

func (c *Context) Rotator() *recommend.Rotator {
	return recommend.NewRotator(c.Client, constants.DefaultRecommendationPageSize)
}

// LoadCursor reads the saved rotator position. ok is false when none is saved.
func (c *Context) LoadCursor() (page, index int, ok bool) {
	v, err := c.Store.GetValue(constants.KeyRecommendationCursor)
	if err != nil {
		return 0, 0, false
	}
	parts := strings.Split(v, ":")
	if len(parts) != 2 {
		logger.Warn("ignoring malformed recommendation cursor", "value", v)
		return 0, 0, false
	}
	page, perr := strconv.Atoi(parts[0])
	index, ierr := strconv.Atoi(parts[1])
	if perr != nil || ierr != nil {
		logger.Warn("ignoring malformed recommendation cursor", "value", v)
		return 0, 0, false
	}
	return page, index, true
}

func (c *Context) SaveCursor(page, index int) error {
	return c.Store.SetValue(constants.KeyRecommendationCursor, fmt.Sprintf("%d:%d", page, index))
}
