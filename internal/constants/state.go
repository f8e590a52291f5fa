package constants

// Keys persisted in the local state store. They mirror the key names the
// web client kept in browser storage so exported state stays recognizable.
const (
	KeyTestCompleted = "testCompleted"
	KeyNickname      = "nickname"
	KeyCharacterKey  = "characterKey"
	KeyCharacterName = "characterName"
	KeyCharacterID   = "characterId"
	KeyUserID        = "userId"

	// KeyDeletedEmotionDates holds a JSON array of YYYY-MM-DD strings
	KeyDeletedEmotionDates = "deletedEmotionDates"

	// KeyRecommendationCursor is the rotator position as "page:index"
	KeyRecommendationCursor = "recommendationCursor"

	// Keyring entries
	KeyringAccessToken  = "accessToken"
	KeyringRefreshToken = "refreshToken"
)

const (
	DefaultMoodLevel        = 3
	MinMoodLevel            = 1
	MaxMoodLevel            = 5
	DefaultFetchConcurrency = 8
	DefaultTimeoutSeconds   = 10

	MinReviewLength  = 5
	MinReviewPhotos  = 1
	MaxArchetypeTags = 3

	DefaultRecommendationPageSize = 5
)

// Route paths used by the session guard
const (
	PathLogin  = "/login"
	PathSignup = "/signup"
	PathMain   = "/main"
	PathTest   = "/test"
)
