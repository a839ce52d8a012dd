package activities

import "litscan/internal/providers"

type ListPDFsInput struct {
	InputDir string `json:"input_dir"`
}

type ListPDFsOutput struct {
	Paths []string `json:"paths"`
}

type HashPaperInput struct {
	PaperPath string `json:"paper_path"`
}

type HashPaperOutput struct {
	PaperHash string `json:"paper_hash"`
}

type CheckPaperDoneInput struct {
	PaperHash string `json:"paper_hash"`
}

type CheckPaperDoneOutput struct {
	Completed bool `json:"completed"`
}

type LoadDocumentInput struct {
	PaperPath string `json:"paper_path"`
}

type LoadDocumentOutput struct {
	Title         string   `json:"title"`
	TitlePage     int      `json:"title_page"`
	SectionNames  []string `json:"section_names"`
	LabeledText   string   `json:"labeled_text"`
	FirstPageText string   `json:"first_page_text"`
}

type ExtractMetadataInput struct {
	FirstPageText string `json:"first_page_text"`
	Title         string `json:"title"`
	PaperPath     string `json:"paper_path"`
}

type ExtractMetadataOutput struct {
	Title    string   `json:"title"`
	Authors  string   `json:"authors"`
	Year     string   `json:"year"`
	Venue    string   `json:"venue"`
	DOI      string   `json:"doi"`
	ArxivID  string   `json:"arxiv_id"`
	Abstract string   `json:"abstract,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

type AnalyzePaperInput struct {
	RunID       string                `json:"run_id"`
	PaperHash   string                `json:"paper_hash"`
	Keyword     string                `json:"keyword"`
	Strategy    string                `json:"strategy"`
	LabeledText string                `json:"labeled_text"`
	Metadata    ExtractMetadataOutput `json:"metadata"`
}

type AnalyzePaperOutput struct {
	Record       []string             `json:"record"`
	ProviderName string               `json:"provider_name"`
	Model        string               `json:"model"`
	Usage        providers.TokenUsage `json:"usage"`
}

type AppendMergedCSVInput struct {
	CSVPath string   `json:"csv_path"`
	Record  []string `json:"record"`
}

type WriteBackupInput struct {
	Title  string   `json:"title"`
	Record []string `json:"record"`
}

type WriteBackupOutput struct {
	Path string `json:"path"`
}

type WritePaperArtifactsInput struct {
	PaperHash string                `json:"paper_hash"`
	Metadata  ExtractMetadataOutput `json:"metadata"`
	Record    []string              `json:"record"`
}

type UpdatePaperStatusInput struct {
	PaperHash  string `json:"paper_hash"`
	RunID      string `json:"run_id"`
	Path       string `json:"path"`
	Title      string `json:"title"`
	Authors    string `json:"authors"`
	Year       string `json:"year"`
	Venue      string `json:"venue"`
	DOI        string `json:"doi"`
	ArxivID    string `json:"arxiv_id"`
	Status     string `json:"status"`
	FailReason string `json:"fail_reason"`
	OutputFile string `json:"output_file"`
}

type MarkPaperCompletedInput struct {
	PaperHash  string `json:"paper_hash"`
	OutputFile string `json:"output_file"`
}

type MarkPaperFailedInput struct {
	PaperHash  string `json:"paper_hash"`
	FailReason string `json:"fail_reason"`
}

type UpdateRunInput struct {
	RunID     string `json:"run_id"`
	Status    string `json:"status"`
	CSVPath   string `json:"csv_path"`
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
}

type WriteReportInput struct {
	RunID     string   `json:"run_id"`
	Keyword   string   `json:"keyword"`
	CSVPath   string   `json:"csv_path"`
	Processed int      `json:"processed"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Failures  []string `json:"failures,omitempty"`
	StartedAt string   `json:"started_at"`
}

type WriteReportOutput struct {
	Path string `json:"path"`
}
