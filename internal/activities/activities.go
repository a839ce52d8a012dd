package activities

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.temporal.io/sdk/temporal"

	"litscan/internal/config"
	"litscan/internal/meta"
	"litscan/internal/models"
	"litscan/internal/pdfdoc"
	"litscan/internal/providers"
	"litscan/internal/storage"
	"litscan/internal/survey"
	"litscan/internal/tokenbudget"
	"litscan/internal/util"
)

type Activities struct {
	cfg          config.Config
	paperRepo    *storage.PaperRepo
	runRepo      *storage.RunRepo
	llmAuditRepo *storage.LLMAuditRepo
	providers    *providers.Manager
	tokens       *tokenbudget.Manager

	mu      sync.Mutex
	writers map[string]*survey.MergedWriter
}

func New(cfg config.Config, db *storage.DB) (*Activities, error) {
	pm, err := providers.NewManager(cfg)
	if err != nil {
		return nil, err
	}
	return &Activities{
		cfg:          cfg,
		paperRepo:    storage.NewPaperRepo(db),
		runRepo:      storage.NewRunRepo(db),
		llmAuditRepo: storage.NewLLMAuditRepo(db),
		providers:    pm,
		tokens:       tokenbudget.NewManager(cfg.MaxTokens),
		writers:      make(map[string]*survey.MergedWriter),
	}, nil
}

func (a *Activities) ListPDFsActivity(ctx context.Context, in ListPDFsInput) (ListPDFsOutput, error) {
	_ = ctx
	entries, err := os.ReadDir(in.InputDir)
	if err != nil {
		return ListPDFsOutput{}, fmt.Errorf("read input dir: %w", err)
	}
	paths := make([]string, 0)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			paths = append(paths, filepath.Join(in.InputDir, e.Name()))
		}
	}
	sort.Strings(paths)
	return ListPDFsOutput{Paths: paths}, nil
}

func (a *Activities) HashPaperActivity(ctx context.Context, in HashPaperInput) (HashPaperOutput, error) {
	_ = ctx
	f, err := os.Open(in.PaperPath)
	if err != nil {
		return HashPaperOutput{}, fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()
	sum, err := util.SHA256HexFromReader(f)
	if err != nil {
		return HashPaperOutput{}, fmt.Errorf("hash file: %w", err)
	}
	return HashPaperOutput{PaperHash: sum}, nil
}

func (a *Activities) CheckPaperDoneActivity(ctx context.Context, in CheckPaperDoneInput) (CheckPaperDoneOutput, error) {
	done, err := a.paperRepo.IsCompleted(ctx, in.PaperHash)
	if err != nil {
		return CheckPaperDoneOutput{}, err
	}
	return CheckPaperDoneOutput{Completed: done}, nil
}

// DocumentErrorType marks activity failures that make one paper
// unprocessable (unopenable, empty, or without extractable text). The paper
// workflow fails that document and moves on instead of retrying.
const DocumentErrorType = "DocumentError"

func (a *Activities) LoadDocumentActivity(ctx context.Context, in LoadDocumentInput) (LoadDocumentOutput, error) {
	_ = ctx
	doc, err := pdfdoc.Load(in.PaperPath)
	if err != nil {
		var docErr *pdfdoc.DocumentError
		if errors.As(err, &docErr) {
			return LoadDocumentOutput{}, temporal.NewNonRetryableApplicationError(err.Error(), DocumentErrorType, err)
		}
		return LoadDocumentOutput{}, err
	}
	names := make([]string, 0, len(doc.Sections))
	for _, ref := range doc.Sections {
		names = append(names, ref.Name)
	}
	return LoadDocumentOutput{
		Title:         doc.Title,
		TitlePage:     doc.TitlePage,
		SectionNames:  names,
		LabeledText:   survey.BuildLabeledText(doc),
		FirstPageText: doc.FirstPageText(),
	}, nil
}

func (a *Activities) ExtractMetadataActivity(ctx context.Context, in ExtractMetadataInput) (ExtractMetadataOutput, error) {
	_ = ctx
	md := meta.Extract(in.FirstPageText, in.Title, in.PaperPath)
	return ExtractMetadataOutput{
		Title:    md.Title,
		Authors:  md.Authors,
		Year:     md.Year,
		Venue:    md.Venue,
		DOI:      md.DOI,
		ArxivID:  md.ArxivID,
		Abstract: md.Abstract,
		Keywords: md.Keywords,
	}, nil
}

// AnalyzePaperActivity runs the full condense-prompt-parse chain for one
// paper, failing over across configured providers. Each attempt is audited
// whether it succeeded or not.
func (a *Activities) AnalyzePaperActivity(ctx context.Context, in AnalyzePaperInput) (AnalyzePaperOutput, error) {
	condensed, err := a.tokens.Truncate(in.LabeledText, a.cfg.ReservedTokens, tokenbudget.ParseStrategy(in.Strategy))
	if err != nil {
		return AnalyzePaperOutput{}, fmt.Errorf("condense paper text: %w", err)
	}
	msgs := survey.BuildMessages(in.Keyword, condensed)
	req := providers.GenerateRequest{Operation: "survey_record", Messages: msgs}

	var lastErr error
	for _, idx := range a.providers.PreferredLLMOrder() {
		provider, ref := a.providers.LLMProviderByIndex(idx)
		resp, info, err := provider.Generate(ctx, req)
		if err != nil {
			errType := providers.ClassifyError(err)
			a.auditCall(ctx, in, info, "error", string(errType), providers.TokenUsage{})
			if errType == providers.ErrorQuota || errType == providers.ErrorRate {
				a.providers.AdvanceRotation()
			}
			lastErr = fmt.Errorf("generate via %s: %w", ref.Raw, providers.Classified(err))
			continue
		}
		rec, perr := survey.ParseResponse(resp.Text)
		if perr != nil {
			a.auditCall(ctx, in, info, "malformed", "", resp.Usage)
			lastErr = fmt.Errorf("response from %s: %w", ref.Raw, perr)
			continue
		}
		a.auditCall(ctx, in, info, "ok", "", resp.Usage)
		merged := survey.MergeMetadata(rec, meta.PaperMetadata{
			Title:   in.Metadata.Title,
			Authors: in.Metadata.Authors,
			Year:    in.Metadata.Year,
			Venue:   in.Metadata.Venue,
			DOI:     in.Metadata.DOI,
			ArxivID: in.Metadata.ArxivID,
		})
		return AnalyzePaperOutput{
			Record:       merged,
			ProviderName: info.Name,
			Model:        info.Model,
			Usage:        resp.Usage,
		}, nil
	}
	return AnalyzePaperOutput{}, fmt.Errorf("all %d llm providers failed: %w", a.providers.LLMCount(), lastErr)
}

func (a *Activities) auditCall(ctx context.Context, in AnalyzePaperInput, info providers.ProviderInfo, status, errType string, usage providers.TokenUsage) {
	if a.llmAuditRepo == nil {
		return
	}
	_ = a.llmAuditRepo.Insert(ctx, storage.LLMCallRecord{
		Operation:        "survey_record",
		RunID:            in.RunID,
		PaperHash:        in.PaperHash,
		ProviderName:     info.Name,
		Model:            info.Model,
		Status:           status,
		ErrorType:        errType,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
	})
}

func (a *Activities) AppendMergedCSVActivity(ctx context.Context, in AppendMergedCSVInput) error {
	_ = ctx
	w, err := a.mergedWriter(in.CSVPath)
	if err != nil {
		return err
	}
	return w.Append(survey.Record(in.Record))
}

func (a *Activities) mergedWriter(path string) (*survey.MergedWriter, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if w, ok := a.writers[path]; ok {
		return w, nil
	}
	w, err := survey.NewMergedWriter(path)
	if err != nil {
		return nil, err
	}
	a.writers[path] = w
	return w, nil
}

func (a *Activities) WriteBackupActivity(ctx context.Context, in WriteBackupInput) (WriteBackupOutput, error) {
	_ = ctx
	path := survey.BackupPath(a.cfg.ExportRoot, in.Title, time.Now())
	if err := survey.WriteBackup(path, survey.Record(in.Record)); err != nil {
		return WriteBackupOutput{}, err
	}
	return WriteBackupOutput{Path: path}, nil
}

func (a *Activities) WritePaperArtifactsActivity(ctx context.Context, in WritePaperArtifactsInput) error {
	_ = ctx
	base := filepath.Join(a.cfg.ExportRoot, "papers", in.PaperHash)
	if err := util.EnsureDir(base); err != nil {
		return err
	}
	if err := util.WriteJSONAtomic(filepath.Join(base, "metadata.json"), in.Metadata); err != nil {
		return err
	}
	return util.WriteJSONAtomic(filepath.Join(base, "record.json"), in.Record)
}

func (a *Activities) UpdatePaperStatusActivity(ctx context.Context, in UpdatePaperStatusInput) error {
	return a.paperRepo.UpsertPaper(ctx, models.Paper{
		PaperHash:  in.PaperHash,
		RunID:      in.RunID,
		Path:       in.Path,
		Title:      in.Title,
		Authors:    in.Authors,
		Year:       in.Year,
		Venue:      in.Venue,
		DOI:        in.DOI,
		ArxivID:    in.ArxivID,
		Status:     in.Status,
		FailReason: util.Snippet(in.FailReason, 500),
		OutputFile: in.OutputFile,
	})
}

func (a *Activities) MarkPaperCompletedActivity(ctx context.Context, in MarkPaperCompletedInput) error {
	return a.paperRepo.MarkCompleted(ctx, in.PaperHash, in.OutputFile)
}

func (a *Activities) MarkPaperFailedActivity(ctx context.Context, in MarkPaperFailedInput) error {
	return a.paperRepo.MarkFailed(ctx, in.PaperHash, util.Snippet(in.FailReason, 500))
}

func (a *Activities) UpdateRunActivity(ctx context.Context, in UpdateRunInput) error {
	return a.runRepo.UpdateRun(ctx, in.RunID, in.Status, in.CSVPath, in.Processed, in.Skipped, in.Failed)
}

func (a *Activities) WriteReportActivity(ctx context.Context, in WriteReportInput) (WriteReportOutput, error) {
	_ = ctx
	started, _ := time.Parse(time.RFC3339, in.StartedAt)
	report := survey.Report{
		RunID:    in.RunID,
		Keyword:  in.Keyword,
		CSVPath:  in.CSVPath,
		Counts:   survey.Counts{Processed: in.Processed, Skipped: in.Skipped, Failed: in.Failed},
		Started:  started,
		Finished: time.Now(),
		Failures: in.Failures,
	}
	if agg, err := survey.AggregateCSV(in.CSVPath); err == nil {
		report.Analysis = &agg
	}
	path := filepath.Join(a.cfg.ExportRoot, "runs", in.RunID, "report.md")
	if err := util.WriteTextAtomic(path, report.Markdown()); err != nil {
		return WriteReportOutput{}, err
	}
	return WriteReportOutput{Path: path}, nil
}
