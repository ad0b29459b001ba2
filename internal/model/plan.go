package model

import "time"

// OperationKind names the kind of file operation in a plan.
type OperationKind string

// OperationMove is the only operation kind currently produced: the source
// dataset is copied into its destination slot.
const OperationMove OperationKind = "move"

// Operation is a single planned file operation.
type Operation struct {
	Metadata    FileMetadata  `json:"metadata"`
	Kind        OperationKind `json:"kind"`
	Source      string        `json:"source"`
	Destination string        `json:"destination"`
	Category    string        `json:"category"`
}

// OrganizationPlan is an ordered set of file operations computed from a
// batch of classification results and a template. Planning never touches
// the filesystem; the plan is inert until executed.
type OrganizationPlan struct {
	Template        OrganizationTemplate   `json:"template"`
	DestinationRoot string                 `json:"destination_root"`
	SourceFiles     []ClassificationResult `json:"source_files"`
	Operations      []Operation            `json:"operations"`
	// Collisions lists destination paths claimed by more than one
	// operation. The plan is still executable; callers decide whether a
	// collision is acceptable.
	Collisions []string `json:"collisions,omitempty"`
}

// OrganizationResult aggregates the outcome of executing a plan.
type OrganizationResult struct {
	Timestamp     time.Time        `json:"timestamp"`
	Message       string           `json:"message"`
	Plan          OrganizationPlan `json:"plan"`
	Successful    int              `json:"successful_operations"`
	Failed        int              `json:"failed_operations"`
	ExecutionTime time.Duration    `json:"execution_time"`
	Success       bool             `json:"success"`
}

// OrganizationPreview is a side-effect-free summary of a plan.
type OrganizationPreview struct {
	FolderStructure map[string]any     `json:"folder_structure"`
	Template        string             `json:"template"`
	DestinationRoot string             `json:"destination_root"`
	Operations      []PreviewOperation `json:"operations"`
	FileCount       int                `json:"file_count"`
}

// PreviewOperation is the flat (source, relative destination, category)
// view of one planned operation.
type PreviewOperation struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Category    string `json:"category"`
}
