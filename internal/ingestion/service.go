package ingestion

import (
	"github.com/aevon-lab/xapi-connect/internal/core/storage"
	"github.com/aevon-lab/xapi-connect/internal/metrics"
	"github.com/aevon-lab/xapi-connect/internal/xapi"
	"github.com/gin-gonic/gin"
)

// Options tune the intake limits.
type Options struct {
	MaxBodySizeMB int
	BatchWorkers  int
	MaxBatchSize  int
	Metrics       *metrics.Manager
}

type Service struct {
	resolver         *storage.Resolver
	reporter         *xapi.Reporter
	metrics          *metrics.Manager
	maxBodySizeBytes int
	batchWorkers     int
	maxBatchSize     int
}

func NewService(resolver *storage.Resolver, reporter *xapi.Reporter, opts Options) *Service {
	if resolver == nil {
		panic("ingestion: resolver must not be nil")
	}
	if reporter == nil {
		panic("ingestion: reporter must not be nil")
	}
	if opts.MaxBodySizeMB <= 0 {
		opts.MaxBodySizeMB = 1 // default to 1MB
	}
	if opts.BatchWorkers <= 0 {
		opts.BatchWorkers = 4
	}
	if opts.MaxBatchSize <= 0 {
		opts.MaxBatchSize = 100
	}
	return &Service{
		resolver:         resolver,
		reporter:         reporter,
		metrics:          opts.Metrics,
		maxBodySizeBytes: opts.MaxBodySizeMB * 1024 * 1024,
		batchWorkers:     opts.BatchWorkers,
		maxBatchSize:     opts.MaxBatchSize,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/statements", s.IngestHandler)
	r.POST("/v1/statements/batch", s.BatchHandler)
}
