package organize

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/geoshelf/geoshelf/internal/model"
)

// Execute materializes the plan's folder structure and performs each
// operation in order. Operations fail independently; a failed copy is
// logged and counted without aborting the batch. In dry-run mode the same
// control flow runs but nothing on disk is touched.
func (o *Organizer) Execute(plan *model.OrganizationPlan, dryRun bool) *model.OrganizationResult {
	start := time.Now()
	result := &model.OrganizationResult{
		Plan:      *plan,
		Success:   true,
		Timestamp: start,
		Message:   "Organization completed successfully",
	}

	if err := createFolderStructure(plan.DestinationRoot, plan.Template.FolderStructure.Roots, dryRun); err != nil {
		result.Success = false
		result.Message = fmt.Sprintf("Organization failed: %v", err)
		result.ExecutionTime = time.Since(start)
		return result
	}

	for _, op := range plan.Operations {
		if err := o.executeOperation(op, dryRun); err != nil {
			slog.Error("Operation failed", "source", op.Source, "destination", op.Destination, "error", err)
			result.Failed++
			continue
		}

		verb := "Moved"
		if dryRun {
			verb = "[DRY RUN] Would move"
		}
		slog.Info(verb, "source", op.Source, "destination", op.Destination)
		result.Successful++
	}

	result.ExecutionTime = time.Since(start)
	if result.Failed > 0 {
		result.Success = false
		result.Message = fmt.Sprintf("Organization completed with %d errors", result.Failed)
	}
	if dryRun {
		result.Message = "[DRY RUN] " + result.Message
	}

	return result
}

// executeOperation performs a single copy. Directory-based datasets are
// copied recursively after any existing destination directory is removed;
// plain files are copied with mode and mtime preserved.
func (o *Organizer) executeOperation(op model.Operation, dryRun bool) error {
	destDir := filepath.Dir(op.Destination)
	if !dryRun {
		if err := os.MkdirAll(destDir, 0o750); err != nil {
			return fmt.Errorf("failed to create destination folder: %w", err)
		}
	}

	if dryRun {
		// Source must at least exist for the dry run to be honest about
		// per-operation outcomes.
		if _, err := os.Stat(op.Source); err != nil {
			return fmt.Errorf("source not accessible: %w", err)
		}
		return nil
	}

	info, err := os.Stat(op.Source)
	if err != nil {
		return fmt.Errorf("source not accessible: %w", err)
	}

	if info.IsDir() {
		if err := os.RemoveAll(op.Destination); err != nil {
			return fmt.Errorf("failed to remove existing destination: %w", err)
		}
		return copyDir(op.Source, op.Destination)
	}
	return copyFile(op.Source, op.Destination, info)
}

// createFolderStructure creates every folder the template declares under
// root. Creation is idempotent; existing folders are left untouched. The
// whole step is skipped in dry-run mode.
func createFolderStructure(root string, nodes []*model.FolderNode, dryRun bool) error {
	if dryRun {
		return nil
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return fmt.Errorf("failed to create folder %s: %w", root, err)
	}
	for _, node := range nodes {
		if err := createFolderStructure(filepath.Join(root, node.Name), node.Children, dryRun); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(source, destination string, info os.FileInfo) error {
	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy contents: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to finalize destination: %w", err)
	}

	// Preserve the source timestamps the way a metadata-preserving copy
	// would.
	return os.Chtimes(destination, info.ModTime(), info.ModTime())
}

func copyDir(source, destination string) error {
	return filepath.Walk(source, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		target := filepath.Join(destination, rel)

		if info.IsDir() {
			return os.MkdirAll(target, 0o750)
		}
		return copyFile(path, target, info)
	})
}
