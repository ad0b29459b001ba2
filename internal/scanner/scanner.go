// Package scanner discovers geospatial datasets on disk and reads the
// structural metadata the rest of the pipeline consumes. GeoJSON and
// shapefile headers are parsed natively; other formats get stat-level
// information only.
package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/geoshelf/geoshelf/internal/model"
)

// supportedExtensions maps a lowercased file extension to its format tag.
var supportedExtensions = map[string]model.FileFormat{
	".shp":     model.FormatShapefile,
	".geojson": model.FormatGeoJSON,
	".json":    model.FormatJSON,
	".gdb":     model.FormatGeodatabase,
	".gpkg":    model.FormatGeoPackage,
	".kml":     model.FormatKML,
	".tif":     model.FormatGeoTIFF,
	".tiff":    model.FormatGeoTIFF,
}

// Scanner walks directories for supported datasets.
type Scanner struct {
	logger *slog.Logger
}

// New creates a Scanner.
func New() *Scanner {
	return &Scanner{logger: slog.Default()}
}

// IsSupported reports whether the path looks like a dataset the scanner
// can describe.
func (s *Scanner) IsSupported(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ScanDirectory walks root recursively and extracts metadata for every
// supported dataset. Unreadable or malformed datasets are logged and
// skipped; the walk continues.
func (s *Scanner) ScanDirectory(root string) ([]model.FileMetadata, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning %s: not a directory", root)
	}

	var results []model.FileMetadata
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			s.logger.Warn("skipping unreadable path", "path", path, "error", walkErr)
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			// A .gdb directory is one dataset; do not descend into it.
			if strings.HasSuffix(strings.ToLower(d.Name()), ".gdb") {
				meta, err := s.Extract(path)
				if err != nil {
					s.logger.Error("failed to read geodatabase", "path", path, "error", err)
				} else {
					results = append(results, meta)
				}
				return filepath.SkipDir
			}
			return nil
		}

		if !s.IsSupported(path) {
			return nil
		}
		meta, err := s.Extract(path)
		if err != nil {
			s.logger.Error("failed to read dataset", "path", path, "error", err)
			return nil
		}
		results = append(results, meta)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	s.logger.Info("scan complete", "root", root, "datasets", len(results))
	return results, nil
}

// Extract reads structural metadata for a single dataset. The stat-level
// fields are always populated; format detail is best effort and a
// parsing failure falls back to the basic record.
func (s *Scanner) Extract(path string) (model.FileMetadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.FileMetadata{}, fmt.Errorf("reading %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	format, ok := supportedExtensions[ext]
	if !ok {
		format = model.FormatUnknown
	}

	meta := model.FileMetadata{
		Path:         path,
		Name:         filepath.Base(path),
		Format:       format,
		Size:         info.Size(),
		LastModified: info.ModTime(),
		LayerCount:   1,
	}

	switch format {
	case model.FormatGeoJSON, model.FormatJSON:
		if err := s.inspectGeoJSON(path, &meta); err != nil {
			s.logger.Warn("geojson inspection failed", "path", path, "error", err)
		}
	case model.FormatShapefile:
		if err := s.inspectShapefile(path, &meta); err != nil {
			s.logger.Warn("shapefile inspection failed", "path", path, "error", err)
		}
	case model.FormatGeodatabase:
		meta.Size = directorySize(path)
	}

	return meta, nil
}

// directorySize sums the regular files under a directory dataset.
func directorySize(root string) int64 {
	var total int64
	_ = filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}
