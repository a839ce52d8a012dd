package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.ListPDFsActivity)
	w.RegisterActivity(a.HashPaperActivity)
	w.RegisterActivity(a.CheckPaperDoneActivity)
	w.RegisterActivity(a.LoadDocumentActivity)
	w.RegisterActivity(a.ExtractMetadataActivity)
	w.RegisterActivity(a.AnalyzePaperActivity)
	w.RegisterActivity(a.AppendMergedCSVActivity)
	w.RegisterActivity(a.WriteBackupActivity)
	w.RegisterActivity(a.WritePaperArtifactsActivity)
	w.RegisterActivity(a.UpdatePaperStatusActivity)
	w.RegisterActivity(a.MarkPaperCompletedActivity)
	w.RegisterActivity(a.MarkPaperFailedActivity)
	w.RegisterActivity(a.UpdateRunActivity)
	w.RegisterActivity(a.WriteReportActivity)
}
