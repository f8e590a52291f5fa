// Package mockserver is an in-memory stand-in for the wellness backend. It
// implements the REST contract the client consumes and is used for offline
// development and as the integration harness in tests.
package mockserver

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oklog/ulid/v2"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
)

const (
	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 24 * time.Hour

	// Seeded accounts
	AdminEmail    = "admin@moodlit.local"
	AdminPassword = "admin"
	DemoEmail     = "demo@moodlit.local"
	DemoPassword  = "demo"
)

// Options configures a Server
type Options struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// Now replaces the clock in tests
	Now func() time.Time
	// NoSeed skips the demo and admin accounts
	NoSeed bool
}

// Server holds all backend state in memory
type Server struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time

	mu          sync.Mutex
	users       map[string]*user // by id
	emails      map[string]string
	records     map[string]models.EmotionRecord // by user/date
	daily       map[string]*dailyState
	progress    map[string]models.Progress
	roadmaps    map[string][]models.RoadmapMission
	submissions []*models.Submission
	results     map[string]models.ServerTestResult
	nextMission int64
	entropy     *ulid.MonotonicEntropy

	router chi.Router
}

func New(opts Options) *Server {
	s := &Server{
		secret:     opts.Secret,
		accessTTL:  opts.AccessTTL,
		refreshTTL: opts.RefreshTTL,
		now:        opts.Now,
		users:      map[string]*user{},
		emails:     map[string]string{},
		records:    map[string]models.EmotionRecord{},
		daily:      map[string]*dailyState{},
		progress:   map[string]models.Progress{},
		roadmaps:   map[string][]models.RoadmapMission{},
		results:    map[string]models.ServerTestResult{},
		entropy:    ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	if len(s.secret) == 0 {
		s.secret = []byte("moodlit-mock-secret")
	}
	if s.accessTTL <= 0 {
		s.accessTTL = defaultAccessTTL
	}
	if s.refreshTTL <= 0 {
		s.refreshTTL = defaultRefreshTTL
	}
	if s.now == nil {
		s.now = time.Now
	}
	if !opts.NoSeed {
		s.addUser(AdminEmail, AdminPassword, "admin", true)
		s.addUser(DemoEmail, DemoPassword, "demo", false)
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler serving the API
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get(constants.APIHealth, s.handleHealth)
	r.Post(constants.APILogin, s.handleLogin)
	r.Post(constants.APISignup, s.handleSignup)
	r.Post(constants.APICheckEmail, s.handleCheckEmail)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get(constants.APIMain, s.handleDashboard)
		r.Get(constants.APIRecordByDate+"{date}", s.handleGetRecord)
		r.Put(constants.APIRecordByDate+"{date}", s.handlePutRecord)

		r.Get(constants.APIWeeklyMissions, s.handleRoadmap)
		r.Post(constants.APIWeeklyReview, s.handleReview)

		r.Post(constants.APIDailyGenerate, s.handleGenerateDaily)
		r.Get(constants.APIDailyToday, s.handleTodayMissions)
		r.Post(constants.APIDailyComplete, s.handleCompleteMission)

		r.Post(constants.APICharacterTest, s.handleSubmitTest)
		r.Get(constants.APICharacterResult+"{id}", s.handleTestResult)

		r.Get(constants.APIRecommendations, s.handleRecommendations)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get(constants.APIAdminSubmissions, s.handleSubmissions)
			r.Post(constants.APIAdminApprove, s.handleApprove)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no such endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Serve accepts connections on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

var mockLog = logger.With("component", "mockserver")

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		mockLog.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", r.Header.Get("X-Request-ID"),
		)
	})
}

type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Status: status, Message: http.StatusText(status), Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Status: status, Message: message})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 8<<20)).Decode(v)
}
