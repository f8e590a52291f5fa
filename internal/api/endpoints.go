package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
)

// Health checks backend liveness
func (c *Client) Health(ctx context.Context) error {
	return c.Do(ctx, http.MethodGet, constants.APIHealth, nil, nil)
}

// Login exchanges credentials for tokens
func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.LoginResult, error) {
	var res models.LoginResult
	err := c.Do(ctx, http.MethodPost, constants.APILogin, creds, &res)
	return res, err
}

// Signup creates an account
func (c *Client) Signup(ctx context.Context, req models.SignupRequest) error {
	return c.Do(ctx, http.MethodPost, constants.APISignup, req, nil)
}

// CheckEmail reports whether an email address is still available
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	var res struct {
		Available bool `json:"available"`
	}
	err := c.Do(ctx, http.MethodPost, constants.APICheckEmail, map[string]string{"email": email}, &res)
	return res.Available, err
}

// Dashboard loads the main screen
func (c *Client) Dashboard(ctx context.Context) (models.Dashboard, error) {
	var res models.Dashboard
	err := c.Do(ctx, http.MethodGet, constants.APIMain, nil, &res)
	return res, err
}

// GetRecord reads the emotion record for one date. A day without a record
// yields ErrNotFound.
func (c *Client) GetRecord(ctx context.Context, date string) (models.EmotionRecord, error) {
	var res models.EmotionRecord
	err := c.Do(ctx, http.MethodGet, constants.APIRecordByDate+escape(date), nil, &res)
	return res, err
}

// PutRecord writes the emotion record for rec.Date
func (c *Client) PutRecord(ctx context.Context, rec models.EmotionRecord) (models.EmotionRecord, error) {
	var res models.EmotionRecord
	if err := c.Do(ctx, http.MethodPut, constants.APIRecordByDate+escape(rec.Date), rec, &res); err != nil {
		return models.EmotionRecord{}, err
	}
	if res.Date == "" {
		res = rec
	}
	return res, nil
}

// RoadmapMissions lists the roadmap mission set
func (c *Client) RoadmapMissions(ctx context.Context) ([]models.RoadmapMission, error) {
	var res []models.RoadmapMission
	err := c.Do(ctx, http.MethodGet, constants.APIWeeklyMissions, nil, &res)
	return res, err
}

// SubmitReview sends a roadmap review with its photo proof
func (c *Client) SubmitReview(ctx context.Context, sub models.ReviewSubmission) (models.RoadmapMission, error) {
	var res models.RoadmapMission
	err := c.Do(ctx, http.MethodPost, constants.APIWeeklyReview, sub, &res)
	return res, err
}

// GenerateDailyMissions asks the backend to create today's missions
func (c *Client) GenerateDailyMissions(ctx context.Context) ([]models.Mission, error) {
	var res []models.Mission
	err := c.Do(ctx, http.MethodPost, constants.APIDailyGenerate, nil, &res)
	return res, err
}

// TodayMissions lists today's daily missions
func (c *Client) TodayMissions(ctx context.Context) ([]models.Mission, error) {
	var res []models.Mission
	err := c.Do(ctx, http.MethodGet, constants.APIDailyToday, nil, &res)
	return res, err
}

// CompleteMission marks a daily mission complete
func (c *Client) CompleteMission(ctx context.Context, id int64) (models.CompletionResult, error) {
	var res models.CompletionResult
	body := map[string]int64{"missionId": id}
	err := c.Do(ctx, http.MethodPost, constants.APIDailyComplete, body, &res)
	return res, err
}

// SubmitTest sends quiz answers for authoritative scoring
func (c *Client) SubmitTest(ctx context.Context, answers []int) (models.ServerTestResult, error) {
	var res models.ServerTestResult
	err := c.Do(ctx, http.MethodPost, constants.APICharacterTest, models.TestSubmission{Answers: answers}, &res)
	return res, err
}

// TestResult fetches a previously computed quiz result
func (c *Client) TestResult(ctx context.Context, id string) (models.ServerTestResult, error) {
	var res models.ServerTestResult
	err := c.Do(ctx, http.MethodGet, constants.APICharacterResult+escape(id), nil, &res)
	return res, err
}

// Submissions lists roadmap proof submissions (admin)
func (c *Client) Submissions(ctx context.Context) ([]models.Submission, error) {
	var res []models.Submission
	err := c.Do(ctx, http.MethodGet, constants.APIAdminSubmissions, nil, &res)
	return res, err
}

// Decide approves or rejects a submission (admin)
func (c *Client) Decide(ctx context.Context, d models.ApprovalDecision) (models.Submission, error) {
	var res models.Submission
	err := c.Do(ctx, http.MethodPost, constants.APIAdminApprove, d, &res)
	return res, err
}

// Recommendations fetches one page of recommendations. Pages start at 0.
func (c *Client) Recommendations(ctx context.Context, page, size int) (models.RecommendationPage, error) {
	if page < 0 || size <= 0 {
		return models.RecommendationPage{}, fmt.Errorf("invalid page %d or size %d", page, size)
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var res models.RecommendationPage
	err := c.Do(ctx, http.MethodGet, constants.APIRecommendations+"?"+q.Encode(), nil, &res)
	return res, err
}
