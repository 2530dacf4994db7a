// Package client provides a Go client for the OceanRepo species
// identification API.
//
// It offers a type-safe way to perform all major operations:
//   - Species identification (single sequence and batch).
//   - Reference index introspection (species listing, index stats).
//   - Asynchronous index rebuilds with task polling.
//
// The client handles HTTP communication, JSON serialization, bearer
// token authentication, and standardized error handling.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIError represents an error returned by the API (status >= 400).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// --- JSON Response Structs ---

// Match is one ranked species candidate.
type Match struct {
	SpeciesID       string        `json:"species_id"`
	ScientificName  string        `json:"scientific_name"`
	CommonName      string        `json:"common_name"`
	MatchingScore   float64       `json:"matching_score"`
	ConfidenceLevel string        `json:"confidence_level"`
	Taxonomy        Taxonomy      `json:"taxonomy"`
	SequenceStats   SequenceStats `json:"sequence_stats"`
}

// Taxonomy is the lineage block attached to each match.
type Taxonomy struct {
	Kingdom string `json:"kingdom"`
	Phylum  string `json:"phylum"`
	Class   string `json:"class"`
	Order   string `json:"order"`
	Family  string `json:"family"`
	Genus   string `json:"genus"`
}

type SequenceStats struct {
	QueryLength int `json:"query_length"`
	QueryKmers  int `json:"query_kmers"`
}

// QueryInfo summarizes how the server processed a query.
type QueryInfo struct {
	SequenceLength    int     `json:"sequence_length"`
	ProcessedSequence string  `json:"processed_sequence"`
	KmerSize          int     `json:"k_mer_size"`
	MinScoreThreshold float64 `json:"min_score_threshold"`
	TotalMatchesFound int     `json:"total_matches_found"`
}

// IdentifyResult is the response of Identify.
type IdentifyResult struct {
	Matches   []Match   `json:"matches"`
	QueryInfo QueryInfo `json:"query_info"`
	Message   string    `json:"message,omitempty"`
}

// BatchQuery is one named query of a batch request.
type BatchQuery struct {
	ID            string `json:"test_id"`
	Sequence      string `json:"sequence"`
	ExpectedMatch string `json:"expected_match,omitempty"`
	Description   string `json:"description,omitempty"`
}

// BatchItem is the outcome of one batch query.
type BatchItem struct {
	Matches []BareMatch `json:"matches"`
	Error   string      `json:"error,omitempty"`
}

// BareMatch is a match without the taxonomy enrichment, as returned in
// batch results.
type BareMatch struct {
	SpeciesID       string  `json:"species_id"`
	ScientificName  string  `json:"scientific_name"`
	CommonName      string  `json:"common_name"`
	Phylum          string  `json:"phylum"`
	MatchingScore   float64 `json:"matching_score"`
	ConfidenceLevel string  `json:"confidence_level"`
	QueryLength     int     `json:"query_length"`
	QueryKmerCount  int     `json:"query_kmers"`
}

// BatchReport aggregates a batch run.
type BatchReport struct {
	TotalQueries    int     `json:"total_queries"`
	WithExpectation int     `json:"with_expectation"`
	Correct         int     `json:"correct"`
	Accuracy        float64 `json:"accuracy"`
	MeanBestScore   float64 `json:"mean_best_score"`
	StdDevBestScore float64 `json:"stddev_best_score"`
}

// BatchResult is the response of IdentifyBatch.
type BatchResult struct {
	Results map[string]BatchItem `json:"results"`
	Report  BatchReport          `json:"report"`
}

// Species is one reference index entry.
type Species struct {
	SpeciesID      string `json:"species_id"`
	ScientificName string `json:"scientific_name"`
	CommonName     string `json:"common_name"`
	Phylum         string `json:"phylum"`
	Kingdom        string `json:"kingdom,omitempty"`
	Class          string `json:"class,omitempty"`
	Order          string `json:"order,omitempty"`
	Family         string `json:"family,omitempty"`
	Genus          string `json:"genus,omitempty"`
}

// IndexStats describes the loaded reference index.
type IndexStats struct {
	SpeciesCount   int     `json:"species_count"`
	ProfiledKmers  int     `json:"profiled_kmers"`
	KmerSize       int     `json:"k_mer_size"`
	MinScore       float64 `json:"min_score_threshold"`
	TopN           int     `json:"top_n"`
	IndexAvailable bool    `json:"index_available"`
}

// Task represents an asynchronous operation on the server.
type Task struct {
	ID              string `json:"id"`
	Kind            string `json:"kind"`
	Status          string `json:"status"`
	ProgressMessage string `json:"progress_message,omitempty"`
	Error           string `json:"error,omitempty"`

	client *Client // Reference to the client for polling.
}

// --- Client ---

// Client is the Go client for the species identification API.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// New creates a new client. token may be empty when the server runs
// without authentication.
func New(host string, port int, token string) *Client {
	return &Client{
		baseURL:    fmt.Sprintf("http://%s:%d", host, port),
		authToken:  token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// jsonRequest is a helper method to execute all requests to the API.
// It handles JSON serialization, HTTP calls, and error management.
func (c *Client) jsonRequest(method, endpoint string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON payload: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		if json.Unmarshal(respBody, &errResp) == nil {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: errResp["error"]}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	return respBody, nil
}

// --- Identification Methods ---

// Identify matches a single eDNA sequence against the reference index.
// minScore <= 0 and topMatches <= 0 fall back to the server defaults.
func (c *Client) Identify(sequence string, minScore float64, topMatches int) (*IdentifyResult, error) {
	payload := map[string]any{"sequence": sequence}
	if minScore > 0 {
		payload["min_score"] = minScore
	}
	if topMatches > 0 {
		payload["top_matches"] = topMatches
	}

	respBody, err := c.jsonRequest(http.MethodPost, "/api/species/identify", payload)
	if err != nil {
		return nil, err
	}

	var result IdentifyResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse identify response: %w", err)
	}
	return &result, nil
}

// IdentifyBatch matches several named sequences in one call.
func (c *Client) IdentifyBatch(queries []BatchQuery, minScore float64, topMatches int) (*BatchResult, error) {
	payload := map[string]any{"queries": queries}
	if minScore > 0 {
		payload["min_score"] = minScore
	}
	if topMatches > 0 {
		payload["top_matches"] = topMatches
	}

	respBody, err := c.jsonRequest(http.MethodPost, "/api/species/identify/batch", payload)
	if err != nil {
		return nil, err
	}

	var result BatchResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse batch response: %w", err)
	}
	return &result, nil
}

// --- Index Methods ---

// ListSpecies returns every indexed species in species_id order.
func (c *Client) ListSpecies() ([]Species, error) {
	respBody, err := c.jsonRequest(http.MethodGet, "/api/species", nil)
	if err != nil {
		return nil, err
	}

	var species []Species
	if err := json.Unmarshal(respBody, &species); err != nil {
		return nil, fmt.Errorf("failed to parse species list: %w", err)
	}
	return species, nil
}

// GetSpecies retrieves the metadata of a single species.
func (c *Client) GetSpecies(speciesID string) (*Species, error) {
	respBody, err := c.jsonRequest(http.MethodGet, "/api/species/"+speciesID, nil)
	if err != nil {
		return nil, err
	}

	var species Species
	if err := json.Unmarshal(respBody, &species); err != nil {
		return nil, fmt.Errorf("failed to parse species: %w", err)
	}
	return &species, nil
}

// IndexStats retrieves the shape of the loaded reference index.
func (c *Client) IndexStats() (*IndexStats, error) {
	respBody, err := c.jsonRequest(http.MethodGet, "/api/index/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats IndexStats
	if err := json.Unmarshal(respBody, &stats); err != nil {
		return nil, fmt.Errorf("failed to parse index stats: %w", err)
	}
	return &stats, nil
}

// RebuildIndex triggers an asynchronous index rebuild and returns the
// task handle for polling.
func (c *Client) RebuildIndex() (*Task, error) {
	respBody, err := c.jsonRequest(http.MethodPost, "/api/index/rebuild", nil)
	if err != nil {
		return nil, err
	}

	var ack struct {
		TaskID string `json:"task_id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(respBody, &ack); err != nil {
		return nil, fmt.Errorf("failed to parse rebuild response: %w", err)
	}
	return &Task{ID: ack.TaskID, Status: ack.Status, client: c}, nil
}

// GetTaskStatus retrieves the current state of an asynchronous task.
func (c *Client) GetTaskStatus(taskID string) (*Task, error) {
	respBody, err := c.jsonRequest(http.MethodGet, "/api/tasks/"+taskID, nil)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := json.Unmarshal(respBody, &task); err != nil {
		return nil, fmt.Errorf("failed to parse task: %w", err)
	}
	task.client = c
	return &task, nil
}

// --- Task polling ---

// Refresh updates the task's status by querying the server.
func (t *Task) Refresh() error {
	if t.client == nil {
		return fmt.Errorf("client is not associated with the task")
	}
	updated, err := t.client.GetTaskStatus(t.ID)
	if err != nil {
		return err
	}
	t.Status = updated.Status
	t.ProgressMessage = updated.ProgressMessage
	t.Error = updated.Error
	return nil
}

// Wait blocks until the task completes, checking its status at regular
// intervals.
func (t *Task) Wait(interval, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-timer.C:
			return fmt.Errorf("timeout exceeded while waiting for task %s", t.ID)
		case <-ticker.C:
			if err := t.Refresh(); err != nil {
				return err
			}
			switch t.Status {
			case "completed":
				return nil
			case "failed":
				return fmt.Errorf("task %s failed with error: %s", t.ID, t.Error)
			case "running", "started":
				// Continue waiting.
			default:
				return fmt.Errorf("unknown task status: %s", t.Status)
			}
		}
	}
}
