package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/clinsync/triage-api/schema"
)

func caseRouter(s *Server) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("requester", "op-1")
		c.Set("role", string(schema.RoleOperator))
	})
	router.GET("/", s.caseList)
	router.POST("/", s.caseCreate)
	router.PUT("/:caseID", s.caseUpdate)
	router.DELETE("/", s.caseDelete)
	return router
}

func TestCaseCreate(t *testing.T) {
	s := Server{repo: testRepository()}
	router := caseRouter(&s)

	body := `{
		"subject": {"age": 52, "sex": "m", "height_cm": 175, "weight_kg": 70},
		"observations": {
			"symptoms": ["cough-over-2-weeks", "night-sweats", "weight-loss"],
			"exposure": "household"
		}
	}`

	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp struct {
		Result schema.CaseRecord `json:"result"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "wrong json unmarshal")

	// 10 + 8 + 10 + 20 against the default table
	assert.Equal(t, 48, resp.Result.Score, "wrong snapshot score")
	assert.Equal(t, "high", resp.Result.Category, "wrong snapshot category")
	assert.Equal(t, "op-1", resp.Result.CreatorID, "wrong creator")
	assert.NotEmpty(t, resp.Result.ID, "wrong id")
	assert.Equal(t, 22.9, resp.Result.Subject.BMI, "wrong derived bmi")

	assert.Len(t, s.repo.Cases(), 1, "wrong repository state")
}

func TestCaseCreateInvalidSubject(t *testing.T) {
	s := Server{repo: testRepository()}
	router := caseRouter(&s)

	body := `{"subject": {"age": 52, "sex": "", "height_cm": 175, "weight_kg": 70}}`

	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code")

	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "wrong json unmarshal")
	assert.Equal(t, int64(1200), resp.Code, "wrong error code")
	assert.Len(t, s.repo.Cases(), 0, "blocked submission must not mutate")
}

func TestCaseUpdateKeepsProvenance(t *testing.T) {
	existing := schema.CaseRecord{
		ID:        "c1",
		Subject:   schema.Subject{Age: 30, Sex: "f", HeightCM: 160, WeightKG: 55},
		CreatorID: "op-9",
		CreatedAt: 12345,
	}
	s := Server{repo: testRepository(existing)}
	router := caseRouter(&s)

	body := `{
		"subject": {"age": 30, "sex": "f", "height_cm": 160, "weight_kg": 55},
		"observations": {"smear": "positive"}
	}`

	req := httptest.NewRequest("PUT", "/c1", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	got, ok := s.repo.Case("c1")
	assert.True(t, ok, "wrong lookup")
	assert.Equal(t, "confirmed", got.Category, "wrong recomputed category")
	assert.Equal(t, "op-9", got.CreatorID, "creator must survive the edit")
	assert.Equal(t, int64(12345), got.CreatedAt, "creation time must survive the edit")
}

func TestCaseUpdateUnknownID(t *testing.T) {
	s := Server{repo: testRepository()}
	router := caseRouter(&s)

	req := httptest.NewRequest("PUT", "/nope", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code, "wrong status code")
}

func TestCaseDelete(t *testing.T) {
	s := Server{repo: testRepository(
		schema.CaseRecord{ID: "c1", CreatedAt: 1},
		schema.CaseRecord{ID: "c2", CreatedAt: 2},
	)}
	router := caseRouter(&s)

	req := httptest.NewRequest("DELETE", "/", strings.NewReader(`{"ids":["c1"]}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
	assert.Len(t, s.repo.Cases(), 1, "wrong remaining count")
}
