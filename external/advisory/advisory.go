package advisory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/clinsync/triage-api/schema"
)

const (
	statusOK = "ok"
)

var (
	ErrResponseStatus = fmt.Errorf("response status not ok")
	errEmptyEndpoint  = fmt.Errorf("empty endpoint")
)

// Client calls the external advisory annotation service. The service is
// optional and purely advisory: its failure must never block a case save,
// and its fusion score never replaces the deterministic case score.
type Client interface {
	Annotate(record schema.CaseRecord) (*schema.AdvisoryReport, error)
}

type client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

type promptPayload struct {
	Subject        schema.Subject      `json:"subject"`
	Observations   schema.Observations `json:"observations"`
	Score          int                 `json:"score"`
	Category       string              `json:"category"`
	Recommendation string              `json:"recommendation"`
}

type jsonResponse struct {
	Status string                `json:"status"`
	Report schema.AdvisoryReport `json:"report"`
}

func (c *client) Annotate(record schema.CaseRecord) (*schema.AdvisoryReport, error) {
	if c.endpoint == "" {
		return nil, errEmptyEndpoint
	}

	body, err := json.Marshal(promptPayload{
		Subject:        record.Subject,
		Observations:   record.Observations,
		Score:          record.Score,
		Category:       record.Category,
		Recommendation: record.Recommendation,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint+"/v1/annotate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var r jsonResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK || r.Status != statusOK {
		return nil, ErrResponseStatus
	}

	report := r.Report
	if report.GeneratedAt == 0 {
		report.GeneratedAt = time.Now().Unix()
	}

	return &report, nil
}

func New(endpoint, token string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &client{
		endpoint:   endpoint,
		token:      token,
		httpClient: httpClient,
	}
}
