package main

import (
	"context"
	"fmt"

	"github.com/geoshelf/geoshelf/internal/classify"
	"github.com/geoshelf/geoshelf/internal/common"
	"github.com/geoshelf/geoshelf/internal/config"
	"github.com/geoshelf/geoshelf/internal/organize"
	"github.com/geoshelf/geoshelf/internal/storage"
)

// initCatalog opens the catalog database and brings it to the current
// schema version.
func initCatalog(ctx context.Context) (*storage.SQLiteCatalog, error) {
	cfg := config.Load()

	catalog, err := storage.NewSQLiteCatalog(cfg.DatabasePath)
	if err != nil {
		return nil, common.NewUserError("failed to open catalog database", err)
	}

	if err := catalog.Migrate(ctx); err != nil {
		_ = catalog.Close()
		return nil, common.NewUserError("failed to run catalog migrations", err)
	}

	return catalog, nil
}

// initClassifier builds a classifier, layering user rules from the
// configured rules file over the defaults when one is set.
func initClassifier() (*classify.Classifier, error) {
	classifier := classify.New()

	if path := config.Load().RulesPath; path != "" {
		if err := classifier.LoadRules(path); err != nil {
			return nil, fmt.Errorf("failed to load rules from %s: %w", path, err)
		}
	}
	return classifier, nil
}

// initOrganizer builds an organizer, adding user templates from the
// configured templates file when one is set.
func initOrganizer() (*organize.Organizer, error) {
	organizer := organize.New()

	if path := config.Load().TemplatesPath; path != "" {
		if err := organizer.LoadTemplates(path); err != nil {
			return nil, fmt.Errorf("failed to load templates from %s: %w", path, err)
		}
	}
	return organizer, nil
}
