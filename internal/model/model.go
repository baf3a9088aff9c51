package model

// Preferences is the onboarding preference set. All four fields must be
// set (content types non-empty) for the account to count as onboarded.
type Preferences struct {
	Platform     string   `json:"platform"`
	Niche        string   `json:"niche"`
	ContentTypes []string `json:"content_types"`
	Frequency    int      `json:"frequency"` // posts per week: 3, 5 or 7
}

// Post is one AI-generated content plan entry, keyed by YYYY-MM-DD.
type Post struct {
	Date        string   `json:"date"`
	Hook        string   `json:"hook"`
	Caption     string   `json:"caption"`
	CTA         string   `json:"cta"`
	Tags        []string `json:"tags"`
	ContentType string   `json:"content_type"`
	Niche       string   `json:"niche"`
}

// Edit is a user override for one calendar date.
type Edit struct {
	Caption string `json:"caption,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// MetricPoint is a mock engagement sample (analytics is static data only).
type MetricPoint struct {
	Date     string `json:"date"`
	Views    int    `json:"views"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
	Saves    int    `json:"saves"`
}

// UserState is the whole per-account planner state, persisted as one blob.
type UserState struct {
	Preferences Preferences     `json:"preferences"`
	Step        int             `json:"step"` // onboarding step 1..4
	Calendar    map[string]Post `json:"calendar"`
	Done        map[string]bool `json:"done"`
	Edits       map[string]Edit `json:"edits"`
	Metrics     []MetricPoint   `json:"metrics"`
	BestStreak  int             `json:"best_streak"`
}

// NewUserState returns the default state for a fresh or signed-out account.
func NewUserState() *UserState {
	return &UserState{
		Step:     1,
		Calendar: map[string]Post{},
		Done:     map[string]bool{},
		Edits:    map[string]Edit{},
	}
}

// Onboarded reports whether all four preference fields are set.
func (s *UserState) Onboarded() bool {
	p := s.Preferences
	return p.Platform != "" && p.Niche != "" && len(p.ContentTypes) > 0 && p.Frequency != 0
}

// Stats are the dashboard numbers, recomputed on every toggle and load.
type Stats struct {
	Planned       int `json:"planned"`
	Done          int `json:"done"`
	CompletionPct int `json:"completion_pct"`
	Streak        int `json:"streak"`
	BestStreak    int `json:"best_streak"`
}

// --- API request/response types ---

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token     string `json:"token"`
	User      User   `json:"user"`
	Onboarded bool   `json:"onboarded"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SelectRequest struct {
	Field  string   `json:"field" binding:"required"` // platform, niche, content_types, frequency
	Value  string   `json:"value"`
	Values []string `json:"values"`
}

type GenerateRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"` // 1..12
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type MilestoneRequest struct {
	Email  string `json:"email" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Streak int    `json:"streak" binding:"required"`
}
