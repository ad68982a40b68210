package providers

const ServerName = "class-fold"

var ServerVersion = "dev"

const (
	SelectionChangeMethod    = "classFold/selectionChange"
	ActiveEditorChangeMethod = "classFold/activeEditorChange"
	ConfigChangeMethod       = "config/change"

	FoldMethod        = "classFold/fold"
	UnfoldMethod      = "classFold/unfold"
	UnfoldAllMethod   = "classFold/unfoldAll"
	DecorationsMethod = "classFold/decorations"
)

// ExperimentalKey names the server capabilities entry under "experimental".
const ExperimentalKey = "classFold"
