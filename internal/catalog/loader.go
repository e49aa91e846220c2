package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
)

type loadOptions struct {
	logger     *zap.Logger
	skipSchema bool
}

// LoadOption customises Load.
type LoadOption func(*loadOptions)

// WithLogger reports load results on logger.
func WithLogger(logger *zap.Logger) LoadOption {
	return func(o *loadOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithoutSchema skips the structural schema check. Record validation still runs.
func WithoutSchema() LoadOption {
	return func(o *loadOptions) {
		o.skipSchema = true
	}
}

// Load reads every record from src and builds a Store. Any invalid record fails
// the whole load.
func Load(ctx context.Context, src Source, opts ...LoadOption) (*Store, error) {
	if src == nil {
		return nil, errors.New("catalog: source is required")
	}
	options := loadOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	records, err := src.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: load from %s: %w", src.Name(), err)
	}

	if !options.skipSchema {
		if err := CheckSchema(records); err != nil {
			options.logger.Error("catalog rejected", zap.String("source", src.Name()), zap.Error(err))
			return nil, err
		}
	}

	jobs, err := decodeJobs(records)
	if err != nil {
		return nil, err
	}

	store, err := New(jobs)
	if err != nil {
		options.logger.Error("catalog rejected", zap.String("source", src.Name()), zap.Error(err))
		return nil, err
	}

	options.logger.Info("catalog loaded",
		zap.String("source", src.Name()),
		zap.Int("jobs", store.Len()),
		zap.String("version", store.Version()),
	)
	return store, nil
}

func decodeJobs(records []map[string]any) ([]domain.Job, error) {
	jobs := make([]domain.Job, 0, len(records))
	for i, record := range records {
		payload, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("catalog: encode record %d: %w", i, err)
		}
		var job domain.Job
		if err := json.Unmarshal(payload, &job); err != nil {
			verr := &ValidationError{}
			id, _ := record["id"].(string)
			verr.add(i, id, "", err.Error())
			return nil, verr
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
