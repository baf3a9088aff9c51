package service

import (
	"context"
	"strconv"

	"socialtrackr/internal/model"
	"socialtrackr/internal/repository"
)

// Onboarding is a 4-step linear wizard: platform, niche, content types,
// frequency. Steps enforce no selection of their own (the completion check
// happens at routing time), but fields that do get set are validated
// against the option tables.
const (
	StepPlatform     = 1
	StepNiche        = 2
	StepContentTypes = 3
	StepFrequency    = 4
)

type PlatformOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

type ContentTypeOption struct {
	Value string `json:"value"`
	Icon  string `json:"icon"`
	Sub   string `json:"sub"`
}

var Platforms = []PlatformOption{
	{Value: "instagram", Label: "Instagram", Icon: "📸"},
	{Value: "linkedin", Label: "LinkedIn", Icon: "💼"},
	{Value: "youtube", Label: "YouTube", Icon: "▶️"},
	{Value: "twitter", Label: "X (Twitter)", Icon: "𝕏"},
	{Value: "pinterest", Label: "Pinterest", Icon: "📌"},
	{Value: "threads", Label: "Threads", Icon: "🧵"},
}

var Niches = []string{
	"Lifestyle", "Fitness", "Tech", "Finance", "Travel", "Fashion",
	"Food", "Education", "Business", "Marketing", "Gaming", "Health",
}

// ContentTypes is keyed by platform; selecting a platform constrains the
// content-type choices to its entry.
var ContentTypes = map[string][]ContentTypeOption{
	"instagram": {
		{Value: "Reels", Icon: "🎬", Sub: "Short-form video"},
		{Value: "Carousel", Icon: "📊", Sub: "Multi-slide posts"},
		{Value: "Static Post", Icon: "🖼️", Sub: "Single image"},
	},
	"linkedin": {
		{Value: "Text Post", Icon: "✍️", Sub: "Written updates"},
		{Value: "Carousel", Icon: "📊", Sub: "Document slides"},
		{Value: "Poll", Icon: "📋", Sub: "Audience question"},
	},
	"youtube": {
		{Value: "Shorts", Icon: "⚡", Sub: "Under 60 seconds"},
		{Value: "Video", Icon: "🎬", Sub: "Full-length content"},
	},
	"twitter": {
		{Value: "Text Post", Icon: "💬", Sub: "Short update"},
		{Value: "Thread", Icon: "🧵", Sub: "Multi-tweet story"},
	},
	"pinterest": {
		{Value: "Pin", Icon: "📌", Sub: "Standard pin"},
		{Value: "Idea Pin", Icon: "💡", Sub: "Multi-page story"},
	},
	"threads": {
		{Value: "Text Post", Icon: "💬", Sub: "Short update"},
		{Value: "Thread", Icon: "🧵", Sub: "Multi-post chain"},
	},
}

var Frequencies = []int{3, 5, 7}

type OnboardingService struct {
	states repository.StateRepo
}

func NewOnboardingService(states repository.StateRepo) *OnboardingService {
	return &OnboardingService{states: states}
}

type OnboardingView struct {
	Step         int                            `json:"step"`
	Preferences  model.Preferences              `json:"preferences"`
	Onboarded    bool                           `json:"onboarded"`
	Platforms    []PlatformOption               `json:"platforms"`
	Niches       []string                       `json:"niches"`
	ContentTypes map[string][]ContentTypeOption `json:"content_types"`
	Frequencies  []int                          `json:"frequencies"`
}

func (s *OnboardingService) View(ctx context.Context, email string) (*OnboardingView, error) {
	st, err := s.states.Load(ctx, email)
	if err != nil {
		return nil, err
	}
	return &OnboardingView{
		Step:         st.Step,
		Preferences:  st.Preferences,
		Onboarded:    st.Onboarded(),
		Platforms:    Platforms,
		Niches:       Niches,
		ContentTypes: ContentTypes,
		Frequencies:  Frequencies,
	}, nil
}

// Select applies one preference selection. Switching to a different
// platform clears previously chosen content types, since the options
// are platform-keyed.
func (s *OnboardingService) Select(ctx context.Context, email string, req model.SelectRequest) (*model.UserState, error) {
	st, err := s.states.Load(ctx, email)
	if err != nil {
		return nil, err
	}

	switch req.Field {
	case "platform":
		if _, ok := ContentTypes[req.Value]; !ok {
			return nil, model.NewValidationError("unknown platform: " + req.Value)
		}
		if st.Preferences.Platform != req.Value {
			st.Preferences.ContentTypes = nil
		}
		st.Preferences.Platform = req.Value
	case "niche":
		if req.Value == "" {
			return nil, model.NewValidationError("niche must not be empty")
		}
		st.Preferences.Niche = req.Value
	case "content_types":
		if st.Preferences.Platform == "" {
			return nil, model.NewValidationError("select a platform first")
		}
		opts := ContentTypes[st.Preferences.Platform]
		for _, v := range req.Values {
			if !containsContentType(opts, v) {
				return nil, model.NewValidationError("content type not available on " + st.Preferences.Platform + ": " + v)
			}
		}
		st.Preferences.ContentTypes = req.Values
	case "frequency":
		n, err := strconv.Atoi(req.Value)
		if err != nil || !containsInt(Frequencies, n) {
			return nil, model.NewValidationError("frequency must be 3, 5 or 7")
		}
		st.Preferences.Frequency = n
	default:
		return nil, model.NewValidationError("unknown field: " + req.Field)
	}

	if err := s.states.Save(ctx, email, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Next advances the wizard without checking the current step's selection;
// completeness is only checked at routing time.
func (s *OnboardingService) Next(ctx context.Context, email string) (int, error) {
	st, err := s.states.Load(ctx, email)
	if err != nil {
		return 0, err
	}
	if st.Step < StepFrequency {
		st.Step++
		if err := s.states.Save(ctx, email, st); err != nil {
			return 0, err
		}
	}
	return st.Step, nil
}

func (s *OnboardingService) Back(ctx context.Context, email string) (int, error) {
	st, err := s.states.Load(ctx, email)
	if err != nil {
		return 0, err
	}
	if st.Step > StepPlatform {
		st.Step--
		if err := s.states.Save(ctx, email, st); err != nil {
			return 0, err
		}
	}
	return st.Step, nil
}

func containsContentType(opts []ContentTypeOption, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

func containsInt(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}
