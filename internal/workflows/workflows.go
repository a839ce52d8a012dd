package workflows

import (
	"errors"
	"strings"
	"time"

	"litscan/internal/activities"
	"litscan/internal/models"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	QueryGetPaperStatus = "GetPaperStatus"
	QueryGetProgress    = "GetProgress"
)

// Child workflow result values, also used as per-paper progress states.
const (
	resultCompleted = "completed"
	resultSkipped   = "skipped"
	resultFailed    = "failed"
)

// BatchAnalyzeWorkflow fans one PaperAnalyzeWorkflow out per PDF in the
// input directory, bounded by MaxConcurrentChildren, and closes the run
// with counts and a report.
func BatchAnalyzeWorkflow(ctx workflow.Context, input BatchAnalyzeInput) (string, error) {
	progress := BatchAnalyzeProgress{
		RunID:         input.RunID,
		CSVPath:       input.CSVPath,
		PerPaper:      map[string]string{},
		ChildWorkflow: map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetProgress, func() (BatchAnalyzeProgress, error) {
		return progress, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	startedAt := workflow.Now(ctx).Format(time.RFC3339)

	_ = workflow.ExecuteActivity(ctx, "UpdateRunActivity", activities.UpdateRunInput{
		RunID:   input.RunID,
		Status:  models.RunRunning,
		CSVPath: input.CSVPath,
	}).Get(ctx, nil)

	var listOut activities.ListPDFsOutput
	if err := workflow.ExecuteActivity(ctx, "ListPDFsActivity", activities.ListPDFsInput{InputDir: input.InputDir}).Get(ctx, &listOut); err != nil {
		return "", err
	}
	paths := listOut.Paths
	progress.Total = len(paths)

	maxChildren := input.MaxConcurrentChildren
	if maxChildren <= 0 {
		maxChildren = 3
	}

	var failures []string
	for i := 0; i < len(paths); i += maxChildren {
		end := i + maxChildren
		if end > len(paths) {
			end = len(paths)
		}
		futures := make([]workflow.ChildWorkflowFuture, 0, end-i)
		childPaths := make([]string, 0, end-i)
		for _, path := range paths[i:end] {
			progress.PerPaper[path] = "processing"
			workflowID := "paper-" + sanitizeID(input.RunID) + "-" + sanitizeID(filepathBase(path))
			childCtx := workflow.WithChildOptions(ctx, workflow.ChildWorkflowOptions{WorkflowID: workflowID})
			f := workflow.ExecuteChildWorkflow(childCtx, PaperAnalyzeWorkflow, PaperAnalyzeInput{
				RunID:     input.RunID,
				PaperPath: path,
				Keyword:   input.Keyword,
				Strategy:  input.Strategy,
				CSVPath:   input.CSVPath,
			})
			futures = append(futures, f)
			childPaths = append(childPaths, path)
			progress.ChildWorkflow[path] = workflowID
		}

		for idx, f := range futures {
			var childStatus string
			err := f.Get(ctx, &childStatus)
			path := childPaths[idx]
			if err != nil {
				childStatus = resultFailed
			}
			progress.PerPaper[path] = childStatus
			switch childStatus {
			case resultSkipped:
				progress.Skipped++
			case resultFailed:
				progress.Failed++
				failures = append(failures, path)
			default:
				progress.Processed++
			}
		}
	}

	_ = workflow.ExecuteActivity(ctx, "UpdateRunActivity", activities.UpdateRunInput{
		RunID:     input.RunID,
		Status:    models.RunCompleted,
		CSVPath:   input.CSVPath,
		Processed: progress.Processed,
		Skipped:   progress.Skipped,
		Failed:    progress.Failed,
	}).Get(ctx, nil)

	var reportOut activities.WriteReportOutput
	_ = workflow.ExecuteActivity(ctx, "WriteReportActivity", activities.WriteReportInput{
		RunID:     input.RunID,
		Keyword:   input.Keyword,
		CSVPath:   input.CSVPath,
		Processed: progress.Processed,
		Skipped:   progress.Skipped,
		Failed:    progress.Failed,
		Failures:  failures,
		StartedAt: startedAt,
	}).Get(ctx, &reportOut)

	return resultCompleted, nil
}

// PaperAnalyzeWorkflow runs the per-document pipeline: hash, checkpoint
// lookup, structuring, metadata extraction, LLM analysis, then the shared
// CSV append and the backup artifacts. Document-level failures complete the
// workflow with a failed result instead of erroring, so the batch continues.
func PaperAnalyzeWorkflow(ctx workflow.Context, input PaperAnalyzeInput) (string, error) {
	status := PaperStatus{
		PaperPath:   input.PaperPath,
		CurrentStep: "init",
		Status:      "processing",
		Steps:       map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetPaperStatus, func() (PaperStatus, error) {
		return status, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	status.CurrentStep = "hash"
	status.Steps[status.CurrentStep] = "processing"
	var hashOut activities.HashPaperOutput
	if err := workflow.ExecuteActivity(ctx, "HashPaperActivity", activities.HashPaperInput{PaperPath: input.PaperPath}).Get(ctx, &hashOut); err != nil {
		return "", err
	}
	status.PaperHash = hashOut.PaperHash
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "checkpoint"
	status.Steps[status.CurrentStep] = "processing"
	var doneOut activities.CheckPaperDoneOutput
	if err := workflow.ExecuteActivity(ctx, "CheckPaperDoneActivity", activities.CheckPaperDoneInput{PaperHash: hashOut.PaperHash}).Get(ctx, &doneOut); err != nil {
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"
	if doneOut.Completed {
		status.Status = resultSkipped
		status.CurrentStep = "done"
		return resultSkipped, nil
	}

	_ = workflow.ExecuteActivity(ctx, "UpdatePaperStatusActivity", activities.UpdatePaperStatusInput{
		PaperHash: hashOut.PaperHash,
		RunID:     input.RunID,
		Path:      input.PaperPath,
		Status:    models.PaperProcessing,
	}).Get(ctx, nil)

	status.CurrentStep = "load_document"
	status.Steps[status.CurrentStep] = "processing"
	var docOut activities.LoadDocumentOutput
	if err := workflow.ExecuteActivity(ctx, "LoadDocumentActivity", activities.LoadDocumentInput{PaperPath: input.PaperPath}).Get(ctx, &docOut); err != nil {
		if isDocumentError(err) {
			return failPaper(ctx, &status, hashOut.PaperHash, "document unreadable: "+rootMessage(err))
		}
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "extract_metadata"
	status.Steps[status.CurrentStep] = "processing"
	var metaOut activities.ExtractMetadataOutput
	if err := workflow.ExecuteActivity(ctx, "ExtractMetadataActivity", activities.ExtractMetadataInput{
		FirstPageText: docOut.FirstPageText,
		Title:         docOut.Title,
		PaperPath:     input.PaperPath,
	}).Get(ctx, &metaOut); err != nil {
		return "", err
	}
	_ = workflow.ExecuteActivity(ctx, "UpdatePaperStatusActivity", activities.UpdatePaperStatusInput{
		PaperHash: hashOut.PaperHash,
		RunID:     input.RunID,
		Path:      input.PaperPath,
		Title:     metaOut.Title,
		Authors:   metaOut.Authors,
		Year:      metaOut.Year,
		Venue:     metaOut.Venue,
		DOI:       metaOut.DOI,
		ArxivID:   metaOut.ArxivID,
		Status:    models.PaperProcessing,
	}).Get(ctx, nil)
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "analyze"
	status.Steps[status.CurrentStep] = "processing"
	var analyzeOut activities.AnalyzePaperOutput
	if err := workflow.ExecuteActivity(ctx, "AnalyzePaperActivity", activities.AnalyzePaperInput{
		RunID:       input.RunID,
		PaperHash:   hashOut.PaperHash,
		Keyword:     input.Keyword,
		Strategy:    input.Strategy,
		LabeledText: docOut.LabeledText,
		Metadata:    metaOut,
	}).Get(ctx, &analyzeOut); err != nil {
		return failPaper(ctx, &status, hashOut.PaperHash, "analysis failed: "+rootMessage(err))
	}
	status.Provider = analyzeOut.ProviderName
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "append_csv"
	status.Steps[status.CurrentStep] = "processing"
	if err := workflow.ExecuteActivity(ctx, "AppendMergedCSVActivity", activities.AppendMergedCSVInput{
		CSVPath: input.CSVPath,
		Record:  analyzeOut.Record,
	}).Get(ctx, nil); err != nil {
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "write_backup"
	status.Steps[status.CurrentStep] = "processing"
	var backupOut activities.WriteBackupOutput
	if err := workflow.ExecuteActivity(ctx, "WriteBackupActivity", activities.WriteBackupInput{
		Title:  metaOut.Title,
		Record: analyzeOut.Record,
	}).Get(ctx, &backupOut); err != nil {
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "write_artifacts"
	status.Steps[status.CurrentStep] = "processing"
	if err := workflow.ExecuteActivity(ctx, "WritePaperArtifactsActivity", activities.WritePaperArtifactsInput{
		PaperHash: hashOut.PaperHash,
		Metadata:  metaOut,
		Record:    analyzeOut.Record,
	}).Get(ctx, nil); err != nil {
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "mark_completed"
	status.Steps[status.CurrentStep] = "processing"
	if err := workflow.ExecuteActivity(ctx, "MarkPaperCompletedActivity", activities.MarkPaperCompletedInput{
		PaperHash:  hashOut.PaperHash,
		OutputFile: input.CSVPath,
	}).Get(ctx, nil); err != nil {
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"
	status.CurrentStep = "done"
	status.Status = resultCompleted
	return resultCompleted, nil
}

func failPaper(ctx workflow.Context, status *PaperStatus, paperHash, reason string) (string, error) {
	status.Status = resultFailed
	status.FailReason = reason
	status.Steps[status.CurrentStep] = "failed"
	_ = workflow.ExecuteActivity(ctx, "MarkPaperFailedActivity", activities.MarkPaperFailedInput{
		PaperHash:  paperHash,
		FailReason: reason,
	}).Get(ctx, nil)
	return resultFailed, nil
}

// isDocumentError matches the typed error LoadDocumentActivity raises for
// unopenable, empty, or text-free PDFs.
func isDocumentError(err error) bool {
	var appErr *temporal.ApplicationError
	return errors.As(err, &appErr) && appErr.Type() == activities.DocumentErrorType
}

// rootMessage trims temporal's wrapper prefixes down to the activity error text.
func rootMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 && i+2 < len(msg) {
		return msg[i+2:]
	}
	return msg
}

func filepathBase(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) == 0 {
		return path
	}
	return parts[len(parts)-1]
}

func sanitizeID(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, ".", "-")
	s = strings.ReplaceAll(s, "/", "-")
	return s
}
