package constants

// Backend REST paths
const (
	APIHealth           = "/api/v1/health"
	APILogin            = "/api/v1/users/login"
	APISignup           = "/api/v1/signup"
	APICheckEmail       = "/api/v1/users/check-email"
	APIMain             = "/api/v1/main"
	APIRecordByDate     = "/api/v1/records/date/"
	APIWeeklyMissions   = "/api/v1/missions/weekly"
	APIWeeklyReview     = "/api/v1/missions/weekly/review"
	APIDailyGenerate    = "/api/missions/daily"
	APIDailyToday       = "/api/missions/today"
	APIDailyComplete    = "/api/missions/complete"
	APICharacterTest    = "/api/v1/characters/test"
	APICharacterResult  = "/api/v1/characters/test/complete/"
	APIAdminSubmissions = "/api/v1/admin/missions/submissions"
	APIAdminApprove     = "/api/v1/admin/missions/approve"
	APIRecommendations  = "/api/v1/recommendations"
)

// PublicEndpoints never carry a bearer credential.
var PublicEndpoints = []string{
	APILogin,
	APISignup,
	APICheckEmail,
	APIHealth,
}
