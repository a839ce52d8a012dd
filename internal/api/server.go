package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"litscan/internal/config"
	"litscan/internal/models"
	"litscan/internal/storage"
	"litscan/internal/survey"
	"litscan/internal/tokenbudget"
	"litscan/internal/util"
	"litscan/internal/workflows"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"
)

type Server struct {
	cfg       config.Config
	db        *storage.DB
	runRepo   *storage.RunRepo
	paperRepo *storage.PaperRepo
	temporal  tclient.Client
}

func NewServer(cfg config.Config) *Server {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		panic(err)
	}
	tc, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		panic(err)
	}
	return &Server{
		cfg:       cfg,
		db:        db,
		runRepo:   storage.NewRunRepo(db),
		paperRepo: storage.NewPaperRepo(db),
		temporal:  tc,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/runs", s.handleRuns)
	mux.HandleFunc("/runs/", s.handleRunsScoped)
	mux.HandleFunc("/papers/upload", s.handleUpload)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		runs, err := s.runRepo.ListRuns(r.Context())
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
	case http.MethodPost:
		s.handleStartRun(w, r)
	default:
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	}
}

func (s *Server) handleStartRun(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Keyword  string `json:"keyword"`
		Strategy string `json:"strategy"`
		InputDir string `json:"input_dir"`
	}
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
			return
		}
	}
	if strings.TrimSpace(req.Keyword) == "" {
		req.Keyword = s.cfg.SurveyKeyword
	}
	if strings.TrimSpace(req.Strategy) == "" {
		req.Strategy = s.cfg.TruncateStrategy
	}
	req.Strategy = string(tokenbudget.ParseStrategy(req.Strategy))
	if strings.TrimSpace(req.InputDir) == "" {
		req.InputDir = s.cfg.PapersRoot
	}

	runID := uuid.NewString()
	csvPath := survey.MergedCSVPath(s.cfg.ExportRoot, time.Now())
	if err := s.runRepo.CreateRun(r.Context(), models.Run{
		RunID:    runID,
		Keyword:  req.Keyword,
		Strategy: req.Strategy,
		Status:   models.RunRunning,
		CSVPath:  csvPath,
	}); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
		ID:                                       "run-" + runID,
		TaskQueue:                                s.cfg.TemporalTaskQueue,
		WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}, workflows.BatchAnalyzeWorkflow, workflows.BatchAnalyzeInput{
		RunID:                 runID,
		InputDir:              req.InputDir,
		Keyword:               req.Keyword,
		Strategy:              req.Strategy,
		CSVPath:               csvPath,
		MaxConcurrentChildren: s.cfg.BatchMaxChildren,
	})
	if err != nil {
		writeErr(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"run_id":      runID,
		"workflow_id": we.GetID(),
		"csv_path":    csvPath,
		"keyword":     req.Keyword,
		"strategy":    req.Strategy,
	})
}

func (s *Server) handleRunsScoped(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/runs/"), "/"), "/")
	if len(parts) < 1 || parts[0] == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	runID := parts[0]
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}

	if len(parts) == 1 {
		run, err := s.runRepo.GetRun(r.Context(), runID)
		if err != nil {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, run)
		return
	}

	switch parts[1] {
	case "progress":
		s.handleRunProgress(w, r, runID)
	case "papers":
		var (
			papers []models.Paper
			err    error
		)
		if r.URL.Query().Get("status") == models.PaperFailed {
			papers, err = s.paperRepo.ListFailedPapers(r.Context(), runID)
		} else {
			papers, err = s.paperRepo.ListPapersByRun(r.Context(), runID)
		}
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"papers": papers})
	case "csv":
		run, err := s.runRepo.GetRun(r.Context(), runID)
		if err != nil || strings.TrimSpace(run.CSVPath) == "" {
			writeErr(w, http.StatusNotFound, fmt.Errorf("merged csv not available"))
			return
		}
		w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(run.CSVPath))
		http.ServeFile(w, r, run.CSVPath)
	case "report":
		path := filepath.Join(s.cfg.ExportRoot, "runs", runID, "report.md")
		if _, err := os.Stat(path); err != nil {
			writeErr(w, http.StatusNotFound, fmt.Errorf("report not available"))
			return
		}
		http.ServeFile(w, r, path)
	default:
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
	}
}

func (s *Server) handleRunProgress(w http.ResponseWriter, r *http.Request, runID string) {
	var prog workflows.BatchAnalyzeProgress
	resp, err := s.temporal.QueryWorkflow(r.Context(), "run-"+runID, "", workflows.QueryGetProgress)
	if err != nil {
		// Fall back to DB-derived progress when the workflow is gone.
		run, rErr := s.runRepo.GetRun(r.Context(), runID)
		if rErr != nil {
			writeErr(w, http.StatusNotFound, rErr)
			return
		}
		papers, pErr := s.paperRepo.ListPapersByRun(r.Context(), runID)
		if pErr != nil {
			writeErr(w, http.StatusInternalServerError, pErr)
			return
		}
		per := make(map[string]string, len(papers))
		for _, p := range papers {
			per[p.Path] = p.Status
		}
		writeJSON(w, http.StatusOK, workflows.BatchAnalyzeProgress{
			RunID:     runID,
			CSVPath:   run.CSVPath,
			Total:     run.Processed + run.Skipped + run.Failed,
			Processed: run.Processed,
			Skipped:   run.Skipped,
			Failed:    run.Failed,
			PerPaper:  per,
		})
		return
	}
	if err := resp.Get(&prog); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, prog)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	if err := r.ParseMultipartForm(128 << 20); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("parse multipart: %w", err))
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		if single, ok := firstSingleFile(r.MultipartForm.File); ok {
			files = append(files, single)
		}
	}
	if len(files) == 0 {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("no files provided"))
		return
	}

	if err := util.EnsureDir(s.cfg.PapersRoot); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	type uploadResult struct {
		Filename  string `json:"filename"`
		PaperHash string `json:"paper_hash"`
	}
	out := make([]uploadResult, 0, len(files))

	for _, fh := range files {
		if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
			continue
		}
		paperHash, savedPath, err := saveUploadedFile(s.cfg.PapersRoot, fh)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		out = append(out, uploadResult{Filename: filepath.Base(savedPath), PaperHash: paperHash})
	}

	writeJSON(w, http.StatusOK, map[string]any{"uploaded": out})
}

func saveUploadedFile(dstDir string, fh *multipart.FileHeader) (paperHash, path string, err error) {
	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(dstDir, "upload-*.pdf")
	if err != nil {
		return "", "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
	}()

	hashes := io.TeeReader(src, tmp)
	paperHash, err = util.SHA256HexFromReader(hashes)
	if err != nil {
		return "", "", fmt.Errorf("write upload: %w", err)
	}

	finalPath := util.SafeJoin(dstDir, fh.Filename)
	if err := tmp.Close(); err != nil {
		return "", "", err
	}
	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		return "", "", fmt.Errorf("atomic move upload: %w", err)
	}

	return paperHash, finalPath, nil
}

func firstSingleFile(m map[string][]*multipart.FileHeader) (*multipart.FileHeader, bool) {
	for _, v := range m {
		if len(v) > 0 {
			return v[0], true
		}
	}
	return nil, false
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "LS-API-4000"
	raw := ""
	if err != nil {
		raw = strings.ToLower(err.Error())
	}

	switch {
	case status >= 500:
		switch {
		case strings.Contains(raw, "relation") && strings.Contains(raw, "does not exist"):
			return apiError{
				Code:    "LS-DB-5001",
				Message: "Database schema is not initialized. Restart the service so it can create its tables, then retry.",
			}
		case strings.Contains(raw, "connect"), strings.Contains(raw, "dial tcp"), strings.Contains(raw, "connection refused"):
			return apiError{
				Code:    "LS-DB-5002",
				Message: "Database connection is unavailable. Check local services and retry.",
			}
		default:
			return apiError{
				Code:    "LS-API-5000",
				Message: "Internal server error. Please retry or check service logs.",
			}
		}
	case status == http.StatusBadRequest:
		code = "LS-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "LS-API-4004"
		msg = "Requested resource was not found."
	case status == http.StatusConflict:
		code = "LS-API-4009"
		msg = "Operation conflicts with current state. Retry after checking status."
	case status == http.StatusMethodNotAllowed:
		code = "LS-API-4005"
		msg = "This endpoint does not support the requested method."
	case status == http.StatusBadGateway:
		code = "LS-API-5020"
		msg = "Upstream provider unavailable. Retry shortly."
	}

	// For 4xx, keep user-safe validation context only.
	if status >= 400 && status < 500 && err != nil {
		low := strings.ToLower(err.Error())
		switch {
		case strings.Contains(low, "no files provided"):
			msg = "No PDF files were provided."
		case strings.Contains(low, "invalid json"):
			msg = "Malformed JSON request body."
		case strings.Contains(low, "merged csv not available"):
			msg = "The merged CSV has not been produced yet."
		case strings.Contains(low, "report not available"):
			msg = "The run report has not been produced yet."
		}
	}

	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
