package workflows

import (
	"context"
	"errors"
	"testing"

	"litscan/internal/activities"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
)

func registerActivityName[T any](env *testsuite.TestWorkflowEnvironment, name string, fn T) {
	env.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
}

func registerPaperActivities(env *testsuite.TestWorkflowEnvironment) {
	registerActivityName(env, "HashPaperActivity", func(context.Context, activities.HashPaperInput) (activities.HashPaperOutput, error) {
		return activities.HashPaperOutput{}, nil
	})
	registerActivityName(env, "CheckPaperDoneActivity", func(context.Context, activities.CheckPaperDoneInput) (activities.CheckPaperDoneOutput, error) {
		return activities.CheckPaperDoneOutput{}, nil
	})
	registerActivityName(env, "UpdatePaperStatusActivity", func(context.Context, activities.UpdatePaperStatusInput) error { return nil })
	registerActivityName(env, "LoadDocumentActivity", func(context.Context, activities.LoadDocumentInput) (activities.LoadDocumentOutput, error) {
		return activities.LoadDocumentOutput{}, nil
	})
	registerActivityName(env, "ExtractMetadataActivity", func(context.Context, activities.ExtractMetadataInput) (activities.ExtractMetadataOutput, error) {
		return activities.ExtractMetadataOutput{}, nil
	})
	registerActivityName(env, "AnalyzePaperActivity", func(context.Context, activities.AnalyzePaperInput) (activities.AnalyzePaperOutput, error) {
		return activities.AnalyzePaperOutput{}, nil
	})
	registerActivityName(env, "AppendMergedCSVActivity", func(context.Context, activities.AppendMergedCSVInput) error { return nil })
	registerActivityName(env, "WriteBackupActivity", func(context.Context, activities.WriteBackupInput) (activities.WriteBackupOutput, error) {
		return activities.WriteBackupOutput{}, nil
	})
	registerActivityName(env, "WritePaperArtifactsActivity", func(context.Context, activities.WritePaperArtifactsInput) error { return nil })
	registerActivityName(env, "MarkPaperCompletedActivity", func(context.Context, activities.MarkPaperCompletedInput) error { return nil })
	registerActivityName(env, "MarkPaperFailedActivity", func(context.Context, activities.MarkPaperFailedInput) error { return nil })
}

func TestPaperAnalyzeWorkflowSuccess(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(PaperAnalyzeWorkflow)
	registerPaperActivities(env)

	record := make([]string, 27)
	for i := range record {
		record[i] = "not mentioned"
	}
	record[0] = "A Paper"

	env.OnActivity("HashPaperActivity", mock.Anything, activities.HashPaperInput{PaperPath: "/tmp/p.pdf"}).Return(activities.HashPaperOutput{PaperHash: "abc123"}, nil)
	env.OnActivity("CheckPaperDoneActivity", mock.Anything, activities.CheckPaperDoneInput{PaperHash: "abc123"}).Return(activities.CheckPaperDoneOutput{Completed: false}, nil)
	env.OnActivity("UpdatePaperStatusActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("LoadDocumentActivity", mock.Anything, activities.LoadDocumentInput{PaperPath: "/tmp/p.pdf"}).Return(activities.LoadDocumentOutput{
		Title:         "A Paper",
		LabeledText:   "Title: A Paper\nAbstract: text\n",
		FirstPageText: "A Paper\nAda Lovelace\nAbstract: text",
	}, nil)
	env.OnActivity("ExtractMetadataActivity", mock.Anything, mock.Anything).Return(activities.ExtractMetadataOutput{Title: "A Paper", Authors: "Ada Lovelace"}, nil)
	env.OnActivity("AnalyzePaperActivity", mock.Anything, mock.Anything).Return(activities.AnalyzePaperOutput{Record: record, ProviderName: "mock", Model: "mock-llm-v1"}, nil)
	env.OnActivity("AppendMergedCSVActivity", mock.Anything, activities.AppendMergedCSVInput{CSVPath: "/tmp/merged.csv", Record: record}).Return(nil)
	env.OnActivity("WriteBackupActivity", mock.Anything, mock.Anything).Return(activities.WriteBackupOutput{Path: "/tmp/backup.csv"}, nil)
	env.OnActivity("WritePaperArtifactsActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("MarkPaperCompletedActivity", mock.Anything, activities.MarkPaperCompletedInput{PaperHash: "abc123", OutputFile: "/tmp/merged.csv"}).Return(nil)

	env.ExecuteWorkflow(PaperAnalyzeWorkflow, PaperAnalyzeInput{RunID: "r1", PaperPath: "/tmp/p.pdf", Keyword: "vla", Strategy: "sections", CSVPath: "/tmp/merged.csv"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "completed", out)
}

func TestPaperAnalyzeWorkflowSkipsCompleted(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(PaperAnalyzeWorkflow)
	registerPaperActivities(env)

	env.OnActivity("HashPaperActivity", mock.Anything, mock.Anything).Return(activities.HashPaperOutput{PaperHash: "abc123"}, nil)
	env.OnActivity("CheckPaperDoneActivity", mock.Anything, mock.Anything).Return(activities.CheckPaperDoneOutput{Completed: true}, nil)

	env.ExecuteWorkflow(PaperAnalyzeWorkflow, PaperAnalyzeInput{RunID: "r1", PaperPath: "/tmp/p.pdf", CSVPath: "/tmp/merged.csv"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "skipped", out)
}

func TestPaperAnalyzeWorkflowUnreadableDocumentFailsGracefully(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(PaperAnalyzeWorkflow)
	registerPaperActivities(env)

	env.OnActivity("HashPaperActivity", mock.Anything, mock.Anything).Return(activities.HashPaperOutput{PaperHash: "abc123"}, nil)
	env.OnActivity("CheckPaperDoneActivity", mock.Anything, mock.Anything).Return(activities.CheckPaperDoneOutput{Completed: false}, nil)
	env.OnActivity("UpdatePaperStatusActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("LoadDocumentActivity", mock.Anything, mock.Anything).Return(activities.LoadDocumentOutput{},
		temporal.NewNonRetryableApplicationError("document /tmp/p.pdf: no extractable text", activities.DocumentErrorType, nil))

	var failed activities.MarkPaperFailedInput
	env.OnActivity("MarkPaperFailedActivity", mock.Anything, mock.Anything).Return(func(_ context.Context, in activities.MarkPaperFailedInput) error {
		failed = in
		return nil
	})

	env.ExecuteWorkflow(PaperAnalyzeWorkflow, PaperAnalyzeInput{RunID: "r1", PaperPath: "/tmp/p.pdf", CSVPath: "/tmp/merged.csv"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "failed", out)
	require.Equal(t, "abc123", failed.PaperHash)
	require.Contains(t, failed.FailReason, "no extractable text")
}

func TestPaperAnalyzeWorkflowCorruptPDFFailsGracefully(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(PaperAnalyzeWorkflow)
	registerPaperActivities(env)

	env.OnActivity("HashPaperActivity", mock.Anything, mock.Anything).Return(activities.HashPaperOutput{PaperHash: "abc123"}, nil)
	env.OnActivity("CheckPaperDoneActivity", mock.Anything, mock.Anything).Return(activities.CheckPaperDoneOutput{Completed: false}, nil)
	env.OnActivity("UpdatePaperStatusActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("LoadDocumentActivity", mock.Anything, mock.Anything).Return(activities.LoadDocumentOutput{},
		temporal.NewNonRetryableApplicationError("document /tmp/p.pdf: malformed xref table", activities.DocumentErrorType, nil))

	var failed activities.MarkPaperFailedInput
	env.OnActivity("MarkPaperFailedActivity", mock.Anything, mock.Anything).Return(func(_ context.Context, in activities.MarkPaperFailedInput) error {
		failed = in
		return nil
	})

	env.ExecuteWorkflow(PaperAnalyzeWorkflow, PaperAnalyzeInput{RunID: "r1", PaperPath: "/tmp/p.pdf", CSVPath: "/tmp/merged.csv"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "failed", out)
	require.Contains(t, failed.FailReason, "document unreadable")
	require.Contains(t, failed.FailReason, "malformed xref table")
}

func TestPaperAnalyzeWorkflowAnalysisFailureFailsGracefully(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(PaperAnalyzeWorkflow)
	registerPaperActivities(env)

	env.OnActivity("HashPaperActivity", mock.Anything, mock.Anything).Return(activities.HashPaperOutput{PaperHash: "abc123"}, nil)
	env.OnActivity("CheckPaperDoneActivity", mock.Anything, mock.Anything).Return(activities.CheckPaperDoneOutput{Completed: false}, nil)
	env.OnActivity("UpdatePaperStatusActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("LoadDocumentActivity", mock.Anything, mock.Anything).Return(activities.LoadDocumentOutput{Title: "A Paper", LabeledText: "Title: A Paper\n"}, nil)
	env.OnActivity("ExtractMetadataActivity", mock.Anything, mock.Anything).Return(activities.ExtractMetadataOutput{Title: "A Paper"}, nil)
	env.OnActivity("AnalyzePaperActivity", mock.Anything, mock.Anything).Return(activities.AnalyzePaperOutput{}, errors.New("generate via mock: quota exceeded"))

	env.ExecuteWorkflow(PaperAnalyzeWorkflow, PaperAnalyzeInput{RunID: "r1", PaperPath: "/tmp/p.pdf", CSVPath: "/tmp/merged.csv"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "failed", out)
}
