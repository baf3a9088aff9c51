package service

import (
	"context"
	"testing"
	"time"

	"socialtrackr/internal/model"
	"socialtrackr/internal/repository"
	"socialtrackr/internal/store"

	"github.com/stretchr/testify/require"
)

func newStateService(t *testing.T, today string) (*StateService, repository.StateRepo) {
	t.Helper()
	states := repository.NewStateRepo(store.NewMemoryKV())
	svc := NewStateService(states)
	svc.SetClock(func() time.Time { return day(today) })
	return svc, states
}

func TestToggleDoneRecomputesStreakAndBest(t *testing.T) {
	svc, _ := newStateService(t, "2024-06-05")
	ctx := context.Background()

	var stats model.Stats
	for _, d := range []string{"2024-06-01", "2024-06-02", "2024-06-03", "2024-06-04", "2024-06-05"} {
		done, s, err := svc.ToggleDone(ctx, testEmail, d)
		require.NoError(t, err)
		require.True(t, done)
		stats = s
	}
	require.Equal(t, 5, stats.Streak)
	require.Equal(t, 5, stats.BestStreak)

	// un-marking a middle day shrinks the current streak but never the best
	done, stats, err := svc.ToggleDone(ctx, testEmail, "2024-06-03")
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, 2, stats.Streak)
	require.Equal(t, 5, stats.BestStreak)
}

func TestBestStreakSurvivesReload(t *testing.T) {
	svc, states := newStateService(t, "2024-06-05")
	ctx := context.Background()

	_, _, err := svc.ToggleDone(ctx, testEmail, "2024-06-04")
	require.NoError(t, err)
	_, _, err = svc.ToggleDone(ctx, testEmail, "2024-06-05")
	require.NoError(t, err)

	st, err := states.Load(ctx, testEmail)
	require.NoError(t, err)
	require.Equal(t, 2, st.BestStreak)
}

func TestToggleDoneAllowsFutureAndPostlessDates(t *testing.T) {
	svc, _ := newStateService(t, "2024-06-05")
	ctx := context.Background()

	// no post exists for this date and it is in the future; both allowed
	done, stats, err := svc.ToggleDone(ctx, testEmail, "2024-06-20")
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, 0, stats.Streak)

	_, _, err = svc.ToggleDone(ctx, testEmail, "june 20th")
	requireValidation(t, err)
}

func TestApplyPlanOverwritesAndOrphansEdits(t *testing.T) {
	svc, states := newStateService(t, "2024-06-05")
	ctx := context.Background()

	_, err := svc.ApplyPlan(ctx, testEmail, []model.Post{
		{Date: "2024-06-03", Hook: "old hook", Caption: "old caption"},
	})
	require.NoError(t, err)
	require.NoError(t, svc.SaveEdit(ctx, testEmail, "2024-06-03", model.Edit{Caption: "my caption"}))

	st, err := svc.ApplyPlan(ctx, testEmail, []model.Post{
		{Date: "2024-06-03", Hook: "new hook"},
		{Date: "2024-06-07", Hook: "another"},
	})
	require.NoError(t, err)
	require.Equal(t, "new hook", st.Calendar["2024-06-03"].Hook)
	require.Len(t, st.Calendar, 2)

	// the old edit stays in place, now orphaned against the new post
	stored, err := states.Load(ctx, testEmail)
	require.NoError(t, err)
	require.Equal(t, "my caption", stored.Edits["2024-06-03"].Caption)
}

func TestGetPostMergesEditAndDone(t *testing.T) {
	svc, _ := newStateService(t, "2024-06-05")
	ctx := context.Background()

	_, err := svc.ApplyPlan(ctx, testEmail, []model.Post{{Date: "2024-06-03", Hook: "h", Caption: "c"}})
	require.NoError(t, err)
	require.NoError(t, svc.SaveEdit(ctx, testEmail, "2024-06-03", model.Edit{Caption: "edited", Notes: "n"}))
	_, _, err = svc.ToggleDone(ctx, testEmail, "2024-06-03")
	require.NoError(t, err)

	d, err := svc.GetPost(ctx, testEmail, "2024-06-03")
	require.NoError(t, err)
	require.Equal(t, "h", d.Post.Hook)
	require.NotNil(t, d.Edit)
	require.Equal(t, "edited", d.Edit.Caption)
	require.True(t, d.Done)

	_, err = svc.GetPost(ctx, testEmail, "2024-06-04")
	apiErr, ok := model.AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, model.ErrCodePostNotFound, apiErr.Code)
}

func TestMonthViewFiltersAndUpcoming(t *testing.T) {
	svc, _ := newStateService(t, "2024-06-05")
	ctx := context.Background()

	posts := []model.Post{
		{Date: "2024-06-01", Hook: "past"},
		{Date: "2024-06-05", Hook: "today"},
		{Date: "2024-06-06", Hook: "a"},
		{Date: "2024-06-07", Hook: "b"},
		{Date: "2024-06-08", Hook: "c"},
		{Date: "2024-06-09", Hook: "d"},
		{Date: "2024-06-10", Hook: "e"},
		{Date: "2024-07-01", Hook: "next month"},
	}
	_, err := svc.ApplyPlan(ctx, testEmail, posts)
	require.NoError(t, err)
	_, _, err = svc.ToggleDone(ctx, testEmail, "2024-06-05")
	require.NoError(t, err)

	view, err := svc.Month(ctx, testEmail, 2024, 6)
	require.NoError(t, err)
	require.Len(t, view.Posts, 7)
	require.NotContains(t, view.Posts, "2024-07-01")
	require.True(t, view.Done["2024-06-05"])

	// today-done excluded, capped at five, ascending
	require.Len(t, view.Upcoming, 5)
	require.Equal(t, "2024-06-06", view.Upcoming[0].Date)
	require.Equal(t, "2024-06-10", view.Upcoming[4].Date)

	// stats cover the whole calendar
	require.Equal(t, 8, view.Stats.Planned)
	require.Equal(t, 1, view.Stats.Done)

	_, err = svc.Month(ctx, testEmail, 2024, 13)
	requireValidation(t, err)
}

func TestComputeStatsPct(t *testing.T) {
	svc, _ := newStateService(t, "2024-06-05")

	st := model.NewUserState()
	require.Equal(t, 0, svc.ComputeStats(st).CompletionPct)

	st.Calendar["2024-06-01"] = model.Post{Date: "2024-06-01"}
	st.Calendar["2024-06-02"] = model.Post{Date: "2024-06-02"}
	st.Calendar["2024-06-03"] = model.Post{Date: "2024-06-03"}
	st.Done["2024-06-01"] = true
	stats := svc.ComputeStats(st)
	require.Equal(t, 3, stats.Planned)
	require.Equal(t, 1, stats.Done)
	require.Equal(t, 33, stats.CompletionPct)
}
