package survey

// Columns is the fixed header of the merged survey CSV. Downstream
// spreadsheets key on these names, so order and spelling are frozen.
var Columns = []string{
	"paper title",
	"authors",
	"year",
	"venue",
	"DOI",
	"arXiv ID",
	"architecture type",
	"contribution",
	"data bottleneck",
	"compute bottleneck",
	"constraint types",
	"data type",
	"data scale",
	"data collection method",
	"data solution",
	"model scale",
	"training resources",
	"inference efficiency",
	"compute solution",
	"task type",
	"environment",
	"performance",
	"tradeoff",
	"advantages",
	"limitations",
	"future work",
	"innovation",
}

// Indexes of the bibliographic columns that local extraction can fill
// more reliably than the model, plus the analysis columns the aggregate
// report groups by.
const (
	colTitle = iota
	colAuthors
	colYear
	colVenue
	colDOI
	colArxivID
	colArchitecture
	colContribution
	colDataBottleneck
	colComputeBottleneck
)
