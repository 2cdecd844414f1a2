package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freelance_hub_backend/internal/config"
	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/testinfra"
	"freelance_hub_backend/internal/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "app-test-secret"

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: gin.TestMode},
		JWT:       config.JWTConfig{Secret: testSecret, ExpireTime: time.Hour},
		Storage:   config.StorageConfig{Type: "local", LocalPath: t.TempDir(), MaxUploadMB: 1},
		RateLimit: config.RateLimitConfig{MaxRequests: 10000, WindowMinutes: 1},
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	db := testinfra.NewTestDB(t)
	a := &App{Config: cfg, DB: db, Redis: rdb}
	engine := a.NewEngine(db, rdb)
	t.Cleanup(a.rateLimiter.Stop)

	return &testServer{t: t, db: db, engine: engine}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) data(w *httptest.ResponseRecorder, out interface{}) {
	s.t.Helper()
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.NoError(s.t, json.Unmarshal(resp.Data, out))
}

func (s *testServer) tokenFor(u *model.User) string {
	tok, err := util.GenerateJWT(u, testSecret, time.Hour)
	require.NoError(s.t, err)
	return tok
}

func (s *testServer) register(name string, role model.UserRole) string {
	body := gin.H{"name": name, "email": name + "@example.test", "password": "s3cret-pass", "role": role}
	w := s.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": name + "@example.test", "password": "s3cret-pass"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Token string     `json:"token"`
		User  model.User `json:"user"`
	}
	s.data(w, &login)
	return login.Token
}

func TestPublicAndInfraRoutes(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/metrics", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/projects", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/auth/profile", "bogus", nil).Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	s := newTestServer(t)
	client := s.register("carol", model.Client)
	admin := testinfra.CreateUser(t, s.db, "root", model.Admin)

	w := s.do(http.MethodPost, "/api/categories", client, gin.H{"name": "Pricing"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/categories", s.tokenFor(admin), gin.H{"name": "Pricing"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var category model.Category
	s.data(w, &category)

	w = s.do(http.MethodPost, "/api/resources", s.tokenFor(admin), gin.H{
		"title":       "Pricing your first gig",
		"type":        "article",
		"categoryId":  category.ID,
		"isPublished": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resource model.Resource
	s.data(w, &resource)

	// 非管理员也能访问 /resources/:id，静态路由 /resources/all 仍然只对管理员开放
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/resources/"+resource.ID, client, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/resources/all", client, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/resources/all", s.tokenFor(admin), nil).Code)

	w = s.do(http.MethodPost, "/api/resources/"+resource.ID+"/pin", client, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var toggled struct {
		Added bool `json:"added"`
	}
	s.data(w, &toggled)
	assert.True(t, toggled.Added)
}

func TestProjectWorkflowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	client := s.register("clara", model.Client)
	freelancer := s.register("felix", model.Freelancer)

	var felix model.User
	s.data(s.do(http.MethodGet, "/api/auth/profile", freelancer, nil), &felix)

	w := s.do(http.MethodPost, "/api/projects", client, gin.H{"title": "Landing page", "freelancerId": felix.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var project model.Project
	s.data(w, &project)

	// 看板：默认三列，卡片移动到 Done
	w = s.do(http.MethodPost, "/api/projects/"+project.ID+"/boards", freelancer, gin.H{"name": "Sprint 1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var board model.KanbanBoard
	s.data(w, &board)
	require.Len(t, board.Columns, 3)

	w = s.do(http.MethodPost, "/api/columns/"+board.Columns[0].ID+"/cards", freelancer, gin.H{"title": "Hero section"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var card model.KanbanCard
	s.data(w, &card)

	w = s.do(http.MethodPatch, "/api/cards/"+card.ID+"/move", client, gin.H{"columnId": board.Columns[2].ID, "position": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	s.data(w, &card)
	assert.Equal(t, board.Columns[2].ID, card.ColumnID)

	// 会议：结束时间早于开始时间被拒绝
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	w = s.do(http.MethodPost, "/api/projects/"+project.ID+"/meetings", client, gin.H{
		"title": "Kickoff", "startTime": start, "endTime": start.Add(-time.Hour),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/projects/"+project.ID+"/meetings", client, gin.H{
		"title": "Kickoff", "startTime": start, "endTime": start.Add(time.Hour), "attendeeIds": []uint{felix.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var meeting model.Meeting
	s.data(w, &meeting)
	assert.Len(t, meeting.Attendees, 2)

	w = s.do(http.MethodGet, "/api/projects/"+project.ID+"/meetings?upcoming=true", freelancer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var meetings []model.Meeting
	s.data(w, &meetings)
	assert.Len(t, meetings, 1)

	w = s.do(http.MethodPatch, "/api/meetings/"+meeting.ID+"/complete", client, gin.H{"notes": "Agreed on scope"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	s.data(w, &meeting)
	assert.Equal(t, model.MeetingCompleted, meeting.Status)

	// 交付物评审流程
	w = s.do(http.MethodPost, "/api/projects/"+project.ID+"/deliverables", client, gin.H{"title": "Wireframes"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var deliverable model.Deliverable
	s.data(w, &deliverable)

	assert.Equal(t, http.StatusOK, s.do(http.MethodPatch, "/api/deliverables/"+deliverable.ID+"/start", freelancer, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/deliverables/"+deliverable.ID+"/review", freelancer, nil).Code)
	w = s.do(http.MethodPost, "/api/deliverables/"+deliverable.ID+"/approve", client, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	s.data(w, &deliverable)
	assert.Equal(t, model.DeliverableApproved, deliverable.Status)

	// 非成员看不到项目
	outsider := s.register("oscar", model.Freelancer)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/projects/"+project.ID, outsider, nil).Code)
}
