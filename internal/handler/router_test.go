package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"socialtrackr/internal/metrics"
	"socialtrackr/internal/middleware"
	"socialtrackr/internal/model"
	"socialtrackr/internal/repository"
	"socialtrackr/internal/service"
	"socialtrackr/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

// memAccountRepo is the test double for repository.AccountRepo.
type memAccountRepo struct {
	accounts map[string]*model.Account
}

func (r *memAccountRepo) Create(ctx context.Context, a *model.Account) error {
	cp := *a
	r.accounts[a.Email] = &cp
	return nil
}

func (r *memAccountRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	a, ok := r.accounts[email]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

type testEnv struct {
	router   *gin.Engine
	accounts *memAccountRepo
	states   repository.StateRepo
	state    *service.StateService
}

// newTestEnv wires the full route table against in-memory backends. The
// AI and email upstreams point at aiURL/mailURL (usually httptest servers).
func newTestEnv(t *testing.T, aiURL, mailKey, mailURL string) *testEnv {
	t.Helper()

	accounts := &memAccountRepo{accounts: map[string]*model.Account{}}
	states := repository.NewStateRepo(store.NewMemoryKV())

	col := metrics.NewCollector(prometheus.NewRegistry())
	authSvc := service.NewAuthService(accounts)
	stateSvc := service.NewStateService(states)
	stateSvc.SetClock(func() time.Time {
		return time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	})
	obSvc := service.NewOnboardingService(states)
	plannerSvc := service.NewPlannerService(aiURL, "test-key", "test-model")
	mailSvc := service.NewMailService(mailURL, mailKey, "SocialTrackr <t@t>")

	authH := NewAuthHandler(authSvc, stateSvc)
	obH := NewOnboardingHandler(obSvc)
	calH := NewCalendarHandler(plannerSvc, stateSvc, col)
	chatH := NewChatHandler(plannerSvc, stateSvc, col)
	mileH := NewMilestoneHandler(mailSvc, col)
	anH := NewAnalyticsHandler(stateSvc)

	r := gin.New()
	r.POST("/api/register", authH.Register)
	r.POST("/api/login", authH.Login)
	api := r.Group("/api", middleware.JWTAuth())
	api.POST("/logout", authH.Logout)
	api.GET("/me", authH.Me)
	api.GET("/onboarding", obH.View)
	api.POST("/onboarding/select", obH.Select)
	api.POST("/onboarding/next", obH.Next)
	api.POST("/onboarding/back", obH.Back)
	api.POST("/calendar/generate", calH.Generate)
	api.GET("/calendar", calH.Month)
	api.GET("/posts/:date", calH.GetPost)
	api.PUT("/posts/:date", calH.SaveEdit)
	api.POST("/posts/:date/toggle", calH.Toggle)
	api.POST("/chat", chatH.Chat)
	api.GET("/chat/chips", chatH.Chips)
	api.POST("/milestone", mileH.Send)
	api.GET("/analytics", anH.View)

	return &testEnv{router: r, accounts: accounts, states: states, state: stateSvc}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) register(t *testing.T, name, email, password string) string {
	t.Helper()
	w := e.do(t, "POST", "/api/register", "", model.RegisterRequest{Name: name, Email: email, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp model.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

// seedAccount bypasses the register endpoint when only a token is needed.
func (e *testEnv) seedAccount(t *testing.T, name, email string) string {
	t.Helper()
	e.accounts.accounts[email] = &model.Account{ID: uuid.NewString(), Email: email, Name: name}
	token, err := middleware.IssueToken(email, name)
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}
