package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/RewanshChoudhary/OceanRepo/pkg/engine"
	"github.com/RewanshChoudhary/OceanRepo/pkg/metrics"
)

// registerHTTPHandlers sets up the REST API routes.
func (s *Server) registerHTTPHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/", s.router)
}

// router is the main manual router. It inspects the URL and delegates to
// the right handler.
func (s *Server) router(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	// --- Debug endpoints (pprof) ---
	if strings.HasPrefix(path, "/debug/pprof") {
		switch {
		case path == "/debug/pprof/":
			pprof.Index(w, r)
		case path == "/debug/pprof/cmdline":
			pprof.Cmdline(w, r)
		case path == "/debug/pprof/profile":
			pprof.Profile(w, r)
		case path == "/debug/pprof/symbol":
			pprof.Symbol(w, r)
		case path == "/debug/pprof/trace":
			pprof.Trace(w, r)
		default:
			s.writeHTTPError(w, http.StatusNotFound, "pprof endpoint not found")
		}
		return
	}

	switch path {
	case "/api/species/identify":
		s.handleIdentify(w, r)
		return
	case "/api/species/identify/batch":
		s.handleIdentifyBatch(w, r)
		return
	case "/api/species":
		s.handleListSpecies(w, r)
		return
	case "/api/index/stats":
		s.handleIndexStats(w, r)
		return
	case "/api/index/rebuild":
		s.handleIndexRebuild(w, r)
		return
	}

	// URLs with parameters, like /api/species/{id} and /api/tasks/{id}.
	if strings.HasPrefix(path, "/api/species/") {
		speciesID := strings.TrimPrefix(path, "/api/species/")
		s.handleGetSpecies(w, r, speciesID)
		return
	}
	if strings.HasPrefix(path, "/api/tasks/") {
		taskID := strings.TrimPrefix(path, "/api/tasks/")
		s.handleGetTask(w, r, taskID)
		return
	}

	s.writeHTTPError(w, http.StatusNotFound, "endpoint not found")
}

// validBatchAlphabet reports whether the sequence only uses the bases the
// upstream validation layer admits: A, C, G, T and the ambiguity code N.
func validBatchAlphabet(sequence string) bool {
	for i := 0; i < len(sequence); i++ {
		switch sequence[i] {
		case 'A', 'C', 'G', 'T', 'N':
		default:
			return false
		}
	}
	return true
}

func (s *Server) handleIdentify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeHTTPError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	var req IdentifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	sequence := strings.ToUpper(strings.TrimSpace(req.Sequence))
	if sequence == "" {
		s.writeHTTPError(w, http.StatusBadRequest, "eDNA sequence is required")
		return
	}
	if !validBatchAlphabet(sequence) {
		s.writeHTTPError(w, http.StatusBadRequest, "sequence contains invalid DNA bases; only A, T, G, C, N are allowed")
		return
	}

	opts := s.Engine.Options()
	minScore := opts.MinScore
	if req.MinScore != nil {
		minScore = *req.MinScore
	}
	topMatches := req.TopMatches
	if topMatches <= 0 {
		topMatches = opts.TopN
	}
	if topMatches > s.cfg.Engine.MaxTopN {
		topMatches = s.cfg.Engine.MaxTopN
	}

	matches, err := s.Engine.MatchWith(sequence, topMatches, minScore)
	if err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := IdentifyResponse{
		Matches: s.enrichMatches(matches),
		QueryInfo: QueryInfo{
			SequenceLength:    len(sequence),
			ProcessedSequence: truncateSequence(sequence, 50),
			KmerSize:          opts.K,
			MinScoreThreshold: minScore,
			TotalMatchesFound: len(matches),
		},
		AnalysisTimestamp: time.Now().UTC(),
	}

	if len(matches) == 0 {
		resp.Message = fmt.Sprintf("No species matches found above %g%% similarity threshold", minScore)
		metrics.IdentificationsTotal.WithLabelValues("none").Inc()
	} else {
		resp.Message = fmt.Sprintf("Found %d species matches", len(matches))
		metrics.IdentificationsTotal.WithLabelValues(string(matches[0].ConfidenceLevel)).Inc()
	}

	s.writeHTTPResponse(w, http.StatusOK, resp)
}

// enrichMatches attaches the full taxonomic lineage to each scored match,
// as stored in the index metadata table.
func (s *Server) enrichMatches(matches []engine.ScoredMatch) []IdentifiedMatch {
	idx := s.Engine.Index()
	enriched := make([]IdentifiedMatch, 0, len(matches))

	for _, m := range matches {
		im := IdentifiedMatch{
			SpeciesID:       m.SpeciesID,
			ScientificName:  m.ScientificName,
			CommonName:      m.CommonName,
			MatchingScore:   m.MatchingScore,
			ConfidenceLevel: m.ConfidenceLevel,
			SequenceStats: SequenceStats{
				QueryLength: m.QueryLength,
				QueryKmers:  m.QueryKmerCount,
			},
		}

		meta := idx.Metadata(m.SpeciesID)
		im.Taxonomy = TaxonomyBlock{
			Kingdom: meta.Kingdom,
			Phylum:  m.Phylum,
			Class:   meta.Class,
			Order:   meta.Order,
			Family:  meta.Family,
			Genus:   meta.Genus,
		}
		enriched = append(enriched, im)
	}
	return enriched
}

func truncateSequence(sequence string, limit int) string {
	if len(sequence) <= limit {
		return sequence
	}
	return sequence[:limit] + "..."
}

func (s *Server) handleIdentifyBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeHTTPError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	var req BatchIdentifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req.Queries) == 0 {
		s.writeHTTPError(w, http.StatusBadRequest, "queries is required")
		return
	}

	opts := s.Engine.Options()
	minScore := opts.MinScore
	if req.MinScore != nil {
		minScore = *req.MinScore
	}
	topMatches := req.TopMatches
	if topMatches <= 0 {
		topMatches = opts.TopN
	}
	if topMatches > s.cfg.Engine.MaxTopN {
		topMatches = s.cfg.Engine.MaxTopN
	}

	result, err := s.Engine.RunBatch(req.Queries, topMatches, minScore, s.cfg.Engine.BatchWorkers)
	if err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeHTTPResponse(w, http.StatusOK, BatchIdentifyResponse{
		Results:           result.Results,
		Report:            result.Report,
		AnalysisTimestamp: time.Now().UTC(),
	})
}

func (s *Server) handleListSpecies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeHTTPError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}

	idx := s.Engine.Index()
	if idx == nil {
		s.writeHTTPResponse(w, http.StatusOK, []any{})
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, idx.ListSpecies())
}

func (s *Server) handleGetSpecies(w http.ResponseWriter, r *http.Request, speciesID string) {
	if r.Method != http.MethodGet {
		s.writeHTTPError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}
	if speciesID == "" {
		s.writeHTTPError(w, http.StatusBadRequest, "species id is required")
		return
	}

	idx := s.Engine.Index()
	if idx == nil || !idx.HasSpecies(speciesID) {
		s.writeHTTPError(w, http.StatusNotFound, fmt.Sprintf("species '%s' not found", speciesID))
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, idx.Metadata(speciesID))
}

func (s *Server) handleIndexStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeHTTPError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, s.Engine.Stats())
}

// handleIndexRebuild kicks off an asynchronous corpus reload and returns
// a task ID for polling.
func (s *Server) handleIndexRebuild(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeHTTPError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	task := s.taskManager.NewTask("index_rebuild")
	go func() {
		task.SetStatus(TaskStatusRunning)
		task.SetProgress("rebuilding reference index")
		if err := s.ReloadCorpus(); err != nil {
			task.SetError(err)
			return
		}
		task.SetProgress("")
		task.SetStatus(TaskStatusCompleted)
	}()

	s.writeHTTPResponse(w, http.StatusAccepted, RebuildResponse{
		TaskID: task.ID(),
		Status: string(TaskStatusStarted),
	})
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request, taskID string) {
	if r.Method != http.MethodGet {
		s.writeHTTPError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}

	task, found := s.taskManager.GetTask(taskID)
	if !found {
		s.writeHTTPError(w, http.StatusNotFound, fmt.Sprintf("task '%s' not found", taskID))
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, task.View())
}

// --- JSON helpers ---

func (s *Server) writeHTTPResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are gone at this point; nothing left to do but log.
		slog.Error("error encoding response", "error", err)
	}
}

func (s *Server) writeHTTPError(w http.ResponseWriter, status int, message string) {
	s.writeHTTPResponse(w, status, map[string]string{"error": message})
}
