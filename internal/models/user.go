package models

// Credentials is the login request body
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest creates an account
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// LoginResult is returned by a successful credential exchange
type LoginResult struct {
	AccessToken   string `json:"accessToken"`
	RefreshToken  string `json:"refreshToken"`
	UserID        string `json:"userId"`
	Nickname      string `json:"nickname"`
	TestCompleted bool   `json:"testCompleted"`
	// Character fields are set once the user has a quiz result
	CharacterID   string `json:"characterId,omitempty"`
	CharacterKey  string `json:"characterKey,omitempty"`
	CharacterName string `json:"characterName,omitempty"`
}

// Character is the archetype character shown on the dashboard
type Character struct {
	ID   string `json:"characterId"`
	Key  string `json:"characterKey"`
	Name string `json:"characterName"`
	Progress
}

// Dashboard is the main-screen payload
type Dashboard struct {
	Nickname      string         `json:"nickname"`
	Character     Character      `json:"character"`
	TodayMissions []Mission      `json:"todayMissions"`
	RecentRecord  *EmotionRecord `json:"recentRecord,omitempty"`
}
