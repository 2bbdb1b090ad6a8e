package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/iiTzIsh/reviewlens/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// Store is the data access interface. All database operations go through here.
type Store interface {
	Ping(ctx context.Context) error

	GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error)
	UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error
	CreateAPIKey(ctx context.Context, key *models.APIKey) error
	ListAPIKeys(ctx context.Context) ([]*models.APIKey, error)
	RevokeAPIKey(ctx context.Context, id uuid.UUID) error

	SaveAnalysis(ctx context.Context, analysis *models.StoredAnalysis) error
	GetAnalysis(ctx context.Context, id uuid.UUID) (*models.StoredAnalysis, error)
	ListRecentAnalyses(ctx context.Context, filter AnalysisFilter) ([]*models.StoredAnalysis, int, error)
}

type AnalysisFilter struct {
	Sentiment string
	MinScore  float64
	MaxScore  float64
	Since     time.Time
	Page      int
	Limit     int
}
