package server

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geoshelf/geoshelf/internal/metadata/export"
	"github.com/geoshelf/geoshelf/internal/model"
	"github.com/geoshelf/geoshelf/internal/organize"
)

type scanRequest struct {
	Directory string `json:"directory" binding:"required"`
}

func (s *Server) handleScan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid directory path"})
		return
	}
	if _, err := os.Stat(req.Directory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid directory path"})
		return
	}

	files, err := s.scanner.ScanDirectory(req.Directory)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if s.catalog != nil {
		for _, file := range files {
			result := s.classifier.Classify(file)
			record := RecordFromScan(file, result)
			if err := s.catalog.SaveDataset(c.Request.Context(), record); err != nil {
				s.logger.Error("failed to catalog dataset", "path", file.Path, "error", err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(files),
		"files": files,
	})
}

// RecordFromScan builds a catalog entry from a scan result and its
// classification.
func RecordFromScan(file model.FileMetadata, result model.ClassificationResult) *model.DatasetRecord {
	record := &model.DatasetRecord{
		Path:             file.Path,
		Name:             file.Name,
		Format:           file.Format,
		Size:             file.Size,
		CoordinateSystem: file.CRS,
		Category:         result.Category,
	}
	if !file.LastModified.IsZero() {
		record.ModificationDate = file.LastModified.UTC().Format(time.RFC3339)
	}
	if file.Bounds != nil {
		record.BBoxWest = model.Float64Ptr(file.Bounds.West)
		record.BBoxEast = model.Float64Ptr(file.Bounds.East)
		record.BBoxSouth = model.Float64Ptr(file.Bounds.South)
		record.BBoxNorth = model.Float64Ptr(file.Bounds.North)
	}
	for _, name := range sortedSchemaKeys(file.AttributeSchema) {
		record.Attributes = append(record.Attributes, model.DatasetAttribute{
			Name:     name,
			DataType: file.AttributeSchema[name],
		})
	}
	return record
}

func sortedSchemaKeys(schema map[string]string) []string {
	if len(schema) == 0 {
		return nil
	}
	keys := make([]string, 0, len(schema))
	for key := range schema {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

type classifyRequest struct {
	FilePaths []string `json:"file_paths" binding:"required"`
}

func (s *Server) handleClassify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.FilePaths) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}

	classifications := make(map[string]model.ClassificationResult)
	for _, path := range req.FilePaths {
		meta, err := s.scanner.Extract(path)
		if err != nil {
			s.logger.Warn("skipping unreadable file", "path", path, "error", err)
			continue
		}
		classifications[path] = s.classifier.Classify(meta)
	}

	c.JSON(http.StatusOK, gin.H{"classifications": classifications})
}

type organizeRequest struct {
	SourceDirectory string `json:"source_directory" binding:"required"`
	TargetDirectory string `json:"target_directory" binding:"required"`
	Template        string `json:"template"`
	DryRun          bool   `json:"dry_run"`
}

func (s *Server) handleOrganize(c *gin.Context) {
	var req organizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid directory paths"})
		return
	}
	if _, err := os.Stat(req.SourceDirectory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid directory paths"})
		return
	}
	if req.Template == "" {
		req.Template = organize.TemplateStandard
	}

	files, err := s.scanner.ScanDirectory(req.SourceDirectory)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results := s.classifier.ClassifyBatch(files)
	plan, err := s.organizer.Plan(results, req.Template, req.TargetDirectory)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := s.organizer.Execute(plan, req.DryRun)

	if s.catalog != nil {
		if _, err := s.catalog.RecordRun(c.Request.Context(), result, req.DryRun); err != nil {
			s.logger.Error("failed to record organization run", "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         result.Success,
		"organized_files": result.Successful,
		"failed_files":    result.Failed,
		"message":         result.Message,
		"collisions":      plan.Collisions,
		"preview":         s.organizer.Preview(plan),
	})
}

type extractRequest struct {
	FilePath string `json:"file_path" binding:"required"`
}

func (s *Server) handleMetadataExtract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file path"})
		return
	}
	if _, err := os.Stat(req.FilePath); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file path"})
		return
	}

	meta, err := s.scanner.Extract(req.FilePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	existing := s.metadata.ExtractExisting(req.FilePath)
	enhanced := s.metadata.CreateEnhanced(meta, existing)

	c.JSON(http.StatusOK, gin.H{"metadata": enhanced})
}

type saveRequest struct {
	Metadata *model.EnhancedMetadata `json:"metadata" binding:"required"`
	FilePath string                  `json:"file_path" binding:"required"`
	Format   string                  `json:"format"`
}

func (s *Server) handleMetadataSave(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}
	if _, err := os.Stat(req.FilePath); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	format := strings.ToLower(req.Format)
	if format == "" {
		format = "fgdc"
	}

	base := strings.TrimSuffix(req.FilePath, filepath.Ext(req.FilePath))
	outputPath := base + "_" + format + ".xml"

	var ok bool
	if format == "iso" {
		ok = export.ToISO(req.Metadata, outputPath)
	} else {
		ok = export.ToFGDC(req.Metadata, outputPath)
	}
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save metadata"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "output_path": outputPath})
}

func (s *Server) handleRules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rules": s.classifier.Rules()})
}

func (s *Server) handleTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": s.organizer.Templates()})
}

func (s *Server) handleListDatasets(c *gin.Context) {
	if s.catalog == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Catalog is not configured"})
		return
	}

	records, err := s.catalog.ListDatasets(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(records), "datasets": records})
}

func (s *Server) handleListRuns(c *gin.Context) {
	if s.catalog == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Catalog is not configured"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	runs, err := s.catalog.ListRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(runs), "runs": runs})
}
