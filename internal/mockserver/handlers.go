package mockserver

import (
	"errors"
	"net/http"
	"net/mail"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/julianstephens/moodlit/internal/archetype"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/emotion"
	"github.com/julianstephens/moodlit/internal/mission"
	"github.com/julianstephens/moodlit/internal/models"
)

// addUser must not be called with mu held
func (s *Server) addUser(email, password, nickname string, admin bool) *user {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &user{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(email),
		Password: password,
		Nickname: nickname,
		Admin:    admin,
	}
	s.users[u.ID] = u
	s.emails[u.Email] = u.ID
	s.progress[u.ID] = models.Progress{Level: 1}
	s.roadmaps[u.ID] = newRoadmap()
	return u
}

func (s *Server) today() string {
	return s.now().Format(constants.DateFormat)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decode(w, r, &creds); err != nil {
		writeError(w, http.StatusBadRequest, "malformed credentials")
		return
	}

	s.mu.Lock()
	id, ok := s.emails[strings.ToLower(strings.TrimSpace(creds.Email))]
	var u *user
	if ok {
		u = s.users[id]
	}
	s.mu.Unlock()

	if u == nil || u.Password != creds.Password {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	access, err := s.signToken(u, tokenAccess, s.accessTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	refresh, err := s.signToken(u, tokenRefresh, s.refreshTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	s.mu.Lock()
	completed := u.TestCompleted
	character := u.Character
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, models.LoginResult{
		AccessToken:   access,
		RefreshToken:  refresh,
		UserID:        u.ID,
		Nickname:      u.Nickname,
		TestCompleted: completed,
		CharacterID:   character.ID,
		CharacterKey:  character.Key,
		CharacterName: character.Name,
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed signup request")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		writeError(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if len(req.Password) < 4 {
		writeError(w, http.StatusBadRequest, "password must be at least 4 characters")
		return
	}
	if strings.TrimSpace(req.Nickname) == "" {
		writeError(w, http.StatusBadRequest, "nickname is required")
		return
	}

	s.mu.Lock()
	_, taken := s.emails[email]
	s.mu.Unlock()
	if taken {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}

	u := s.addUser(email, req.Password, strings.TrimSpace(req.Nickname), false)
	writeJSON(w, http.StatusCreated, map[string]string{"userId": u.ID})
}

func (s *Server) handleCheckEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}
	s.mu.Lock()
	_, taken := s.emails[strings.ToLower(strings.TrimSpace(req.Email))]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"available": !taken})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	uid := userIDFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[uid]
	if !ok {
		writeError(w, http.StatusUnauthorized, "unknown user")
		return
	}

	dash := models.Dashboard{
		Nickname:  u.Nickname,
		Character: u.Character,
	}
	dash.Character.Progress = s.progress[uid]
	if st, ok := s.daily[uid]; ok && st.Date == s.today() {
		dash.TodayMissions = append([]models.Mission(nil), st.Missions...)
	}

	var latest *models.EmotionRecord
	prefix := uid + "/"
	for k, rec := range s.records {
		if !strings.HasPrefix(k, prefix) || rec.IsEmpty() {
			continue
		}
		if latest == nil || rec.Date > latest.Date {
			cp := rec
			latest = &cp
		}
	}
	dash.RecentRecord = latest
	writeJSON(w, http.StatusOK, dash)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if err := emotion.ValidateDate(date); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	rec, ok := s.records[recordKey(userIDFrom(r.Context()), date)]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "no record for "+date)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if err := emotion.ValidateDate(date); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var rec models.EmotionRecord
	if err := decode(w, r, &rec); err != nil {
		writeError(w, http.StatusBadRequest, "malformed record")
		return
	}
	if err := emotion.ValidateMood(rec.MoodLevel); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec.Date = date
	if rec.Keywords == nil {
		rec.Keywords = []string{}
	}

	s.mu.Lock()
	s.records[recordKey(userIDFrom(r.Context()), date)] = rec
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := append([]models.RoadmapMission(nil), s.roadmaps[userIDFrom(r.Context())]...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	var sub models.ReviewSubmission
	if err := decode(w, r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, "malformed review")
		return
	}
	if err := mission.ValidateReview(sub.Review, sub.Photos); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	uid := userIDFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	missions := s.roadmaps[uid]
	idx := -1
	for i := range missions {
		if missions[i].ID == sub.MissionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		writeError(w, http.StatusNotFound, "no such roadmap mission")
		return
	}
	if missions[idx].Status != models.RoadmapNone {
		writeError(w, http.StatusConflict, "mission already "+missions[idx].Status.String())
		return
	}

	names := make([]string, len(sub.Photos))
	for i, p := range sub.Photos {
		names[i] = p.Name
	}
	submission := &models.Submission{
		ID:          ulid.MustNew(ulid.Timestamp(s.now()), s.entropy).String(),
		MissionID:   sub.MissionID,
		UserID:      uid,
		Nickname:    s.users[uid].Nickname,
		Review:      strings.TrimSpace(sub.Review),
		PhotoNames:  names,
		Status:      models.RoadmapPending,
		SubmittedAt: s.now().UTC(),
	}
	s.submissions = append(s.submissions, submission)
	missions[idx].Status = models.RoadmapPending
	writeJSON(w, http.StatusOK, missions[idx])
}

func (s *Server) handleGenerateDaily(w http.ResponseWriter, r *http.Request) {
	uid := userIDFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.daily[uid]
	if !ok || st.Date != s.today() {
		st = &dailyState{
			Date: s.today(),
			Missions: dailyFor(s.now(), func() int64 {
				s.nextMission++
				return s.nextMission
			}),
		}
		s.daily[uid] = st
	}
	writeJSON(w, http.StatusOK, append([]models.Mission(nil), st.Missions...))
}

func (s *Server) handleTodayMissions(w http.ResponseWriter, r *http.Request) {
	uid := userIDFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	list := []models.Mission{}
	if st, ok := s.daily[uid]; ok && st.Date == s.today() {
		list = append(list, st.Missions...)
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCompleteMission(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MissionID int64 `json:"missionId"`
	}
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}
	uid := userIDFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.daily[uid]
	if !ok || st.Date != s.today() {
		writeError(w, http.StatusNotFound, "no missions today")
		return
	}
	for i := range st.Missions {
		m := &st.Missions[i]
		if m.ID != req.MissionID {
			continue
		}
		res := models.CompletionResult{Progress: s.progress[uid]}
		if !m.IsCompleted() {
			m.Status = models.MissionCompleted
			res.Progress, res.LevelUp = mission.ApplyReward(s.progress[uid], m.Reward)
			s.progress[uid] = res.Progress
		}
		res.Mission = *m
		writeJSON(w, http.StatusOK, res)
		return
	}
	writeError(w, http.StatusNotFound, "no such mission")
}

func (s *Server) handleSubmitTest(w http.ResponseWriter, r *http.Request) {
	var sub models.TestSubmission
	if err := decode(w, r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, "malformed answers")
		return
	}
	ev, err := archetype.Evaluate(sub.Answers)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	profile, _ := archetype.Lookup(ev.Key)

	res := models.ServerTestResult{
		ResultID:      uuid.NewString(),
		CharacterType: archetype.ServerLabels[ev.Key],
		EnergyLevel:   ev.Grades.EnergyLevel,
		Adaptability:  ev.Grades.Adaptability,
		Resilience:    ev.Grades.Resilience,
		Keywords:      append([]string(nil), profile.Tags...),
		Description:   profile.Encouragement,
	}

	uid := userIDFrom(r.Context())
	s.mu.Lock()
	s.results[res.ResultID] = res
	if u, ok := s.users[uid]; ok {
		u.TestCompleted = true
		u.Character.ID = res.ResultID
		u.Character.Key = string(ev.Key)
		u.Character.Name = profile.Name
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTestResult(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	res, ok := s.results[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "no such result")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 0)
	if err != nil || page < 0 {
		writeError(w, http.StatusBadRequest, "invalid page")
		return
	}
	size, err := queryInt(r, "size", constants.DefaultRecommendationPageSize)
	if err != nil || size <= 0 {
		writeError(w, http.StatusBadRequest, "invalid size")
		return
	}

	total := (len(seedRecommendations) + size - 1) / size
	out := models.RecommendationPage{Items: []models.Recommendation{}, Page: page, TotalPages: total}
	if start := page * size; start < len(seedRecommendations) {
		end := start + size
		if end > len(seedRecommendations) {
			end = len(seedRecommendations)
		}
		out.Items = append(out.Items, seedRecommendations[start:end]...)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSubmissions(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	s.mu.Lock()
	out := make([]models.Submission, 0, len(s.submissions))
	for _, sub := range s.submissions {
		if status != "" && sub.Status.String() != status {
			continue
		}
		out = append(out, *sub)
	}
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

// handleApprove settles a pending submission. Approval moves the roadmap
// mission to approved; rejection returns it to none so the user can retry.
func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	var d models.ApprovalDecision
	if err := decode(w, r, &d); err != nil {
		writeError(w, http.StatusBadRequest, "malformed decision")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sub, err := s.findSubmission(d.SubmissionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if sub.Status != models.RoadmapPending {
		writeError(w, http.StatusConflict, "submission already "+sub.Status.String())
		return
	}

	next := models.RoadmapNone
	if d.Approved {
		next = models.RoadmapApproved
	}
	sub.Status = next
	missions := s.roadmaps[sub.UserID]
	for i := range missions {
		if missions[i].ID == sub.MissionID {
			missions[i].Status = next
		}
	}
	writeJSON(w, http.StatusOK, *sub)
}

// findSubmission must be called with mu held
func (s *Server) findSubmission(id string) (*models.Submission, error) {
	for _, sub := range s.submissions {
		if sub.ID == id {
			return sub, nil
		}
	}
	return nil, errors.New("no such submission")
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
