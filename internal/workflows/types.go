package workflows

type BatchAnalyzeInput struct {
	RunID                 string `json:"run_id"`
	InputDir              string `json:"input_dir"`
	Keyword               string `json:"keyword"`
	Strategy              string `json:"strategy"`
	CSVPath               string `json:"csv_path"`
	MaxConcurrentChildren int    `json:"max_concurrent_children"`
}

type PaperAnalyzeInput struct {
	RunID     string `json:"run_id"`
	PaperPath string `json:"paper_path"`
	Keyword   string `json:"keyword"`
	Strategy  string `json:"strategy"`
	CSVPath   string `json:"csv_path"`
}

type PaperStatus struct {
	PaperHash   string            `json:"paper_hash"`
	PaperPath   string            `json:"paper_path"`
	CurrentStep string            `json:"current_step"`
	Status      string            `json:"status"`
	FailReason  string            `json:"fail_reason,omitempty"`
	Provider    string            `json:"provider,omitempty"`
	Steps       map[string]string `json:"steps"`
}

type BatchAnalyzeProgress struct {
	RunID         string            `json:"run_id"`
	CSVPath       string            `json:"csv_path"`
	Total         int               `json:"total"`
	Processed     int               `json:"processed"`
	Skipped       int               `json:"skipped"`
	Failed        int               `json:"failed"`
	PerPaper      map[string]string `json:"per_paper_status"`
	ChildWorkflow map[string]string `json:"child_workflow_ids,omitempty"`
}
