package service

import (
	"context"
	"sort"
	"time"

	"socialtrackr/internal/model"
	"socialtrackr/internal/repository"
)

// StateService owns the per-account planner state: calendar entries,
// completion flags, edits and the derived streak numbers. Every mutation
// rewrites the whole blob.
type StateService struct {
	states repository.StateRepo
	now    func() time.Time
}

func NewStateService(states repository.StateRepo) *StateService {
	return &StateService{states: states, now: time.Now}
}

// SetClock overrides the time source in tests.
func (s *StateService) SetClock(now func() time.Time) { s.now = now }

func (s *StateService) Get(ctx context.Context, email string) (*model.UserState, error) {
	return s.states.Load(ctx, email)
}

// ComputeStats derives the dashboard numbers from the given state.
// The streak is always recomputed from the completion flags; only the
// best value is trusted across sessions.
func (s *StateService) ComputeStats(st *model.UserState) model.Stats {
	planned := len(st.Calendar)
	done := 0
	for _, v := range st.Done {
		if v {
			done++
		}
	}
	pct := 0
	if planned > 0 {
		pct = int(float64(done)/float64(planned)*100 + 0.5)
	}
	streak := CurrentStreak(st.Done, s.now())
	if streak > st.BestStreak {
		st.BestStreak = streak
	}
	return model.Stats{
		Planned:       planned,
		Done:          done,
		CompletionPct: pct,
		Streak:        streak,
		BestStreak:    st.BestStreak,
	}
}

// ToggleDone flips the completion flag for a date and recomputes the
// streak. The date does not have to carry a post, and future dates are
// accepted (they just never count toward the streak).
func (s *StateService) ToggleDone(ctx context.Context, email, date string) (bool, model.Stats, error) {
	if _, err := time.Parse(dateKeyLayout, date); err != nil {
		return false, model.Stats{}, model.NewValidationError("invalid date key: " + date)
	}
	st, err := s.states.Load(ctx, email)
	if err != nil {
		return false, model.Stats{}, err
	}
	st.Done[date] = !st.Done[date]
	stats := s.ComputeStats(st)
	if err := s.states.Save(ctx, email, st); err != nil {
		return false, model.Stats{}, err
	}
	return st.Done[date], stats, nil
}

// SaveEdit stores a caption/notes override for a date.
func (s *StateService) SaveEdit(ctx context.Context, email, date string, edit model.Edit) error {
	if _, err := time.Parse(dateKeyLayout, date); err != nil {
		return model.NewValidationError("invalid date key: " + date)
	}
	st, err := s.states.Load(ctx, email)
	if err != nil {
		return err
	}
	st.Edits[date] = edit
	return s.states.Save(ctx, email, st)
}

type PostDetail struct {
	Post model.Post  `json:"post"`
	Edit *model.Edit `json:"edit,omitempty"`
	Done bool        `json:"done"`
}

func (s *StateService) GetPost(ctx context.Context, email, date string) (*PostDetail, error) {
	st, err := s.states.Load(ctx, email)
	if err != nil {
		return nil, err
	}
	post, ok := st.Calendar[date]
	if !ok {
		return nil, model.NewPostNotFoundError(date)
	}
	d := &PostDetail{Post: post, Done: st.Done[date]}
	if e, ok := st.Edits[date]; ok {
		d.Edit = &e
	}
	return d, nil
}

// ApplyPlan inserts generated posts into the calendar, overwriting any
// existing entries for the same dates. Edits for overwritten dates are
// left in place and become orphaned, matching the regeneration contract.
func (s *StateService) ApplyPlan(ctx context.Context, email string, posts []model.Post) (*model.UserState, error) {
	st, err := s.states.Load(ctx, email)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		st.Calendar[p.Date] = p
	}
	if err := s.states.Save(ctx, email, st); err != nil {
		return nil, err
	}
	return st, nil
}

type MonthView struct {
	Posts    map[string]model.Post `json:"posts"`
	Done     map[string]bool       `json:"done"`
	Edits    map[string]model.Edit `json:"edits"`
	Upcoming []model.Post          `json:"upcoming"`
	Stats    model.Stats           `json:"stats"`
}

// Month returns the calendar slice for one month plus up to five upcoming
// posts (dated today or later, not yet done) within that month. Stats
// cover the whole calendar, not just the viewed month.
func (s *StateService) Month(ctx context.Context, email string, year, month int) (*MonthView, error) {
	if month < 1 || month > 12 {
		return nil, model.NewValidationError("month must be 1..12")
	}
	st, err := s.states.Load(ctx, email)
	if err != nil {
		return nil, err
	}

	prefix := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
	today := dateOnly(s.now()).Format(dateKeyLayout)

	view := &MonthView{
		Posts: map[string]model.Post{},
		Done:  map[string]bool{},
		Edits: map[string]model.Edit{},
	}
	for date, post := range st.Calendar {
		if len(date) < 7 || date[:7] != prefix {
			continue
		}
		view.Posts[date] = post
		if st.Done[date] {
			view.Done[date] = true
		}
		if e, ok := st.Edits[date]; ok {
			view.Edits[date] = e
		}
		if date >= today && !st.Done[date] {
			view.Upcoming = append(view.Upcoming, post)
		}
	}
	sort.Slice(view.Upcoming, func(i, j int) bool {
		return view.Upcoming[i].Date < view.Upcoming[j].Date
	})
	if len(view.Upcoming) > 5 {
		view.Upcoming = view.Upcoming[:5]
	}

	view.Stats = s.ComputeStats(st)
	return view, nil
}
