package catalog

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"gopkg.in/yaml.v3"

	pfirestore "github.com/ironarian/ukr-jobs-japan/internal/platform/firestore"
)

//go:embed data/jobs.yaml
var embeddedData embed.FS

const embeddedPath = "data/jobs.yaml"

// Source yields raw catalog records. Sources are read once at start-up.
type Source interface {
	Name() string
	Records(ctx context.Context) ([]map[string]any, error)
}

// EmbeddedSource serves the catalog compiled into the binary.
type EmbeddedSource struct{}

// Name implements Source.
func (EmbeddedSource) Name() string { return "embedded" }

// Records implements Source.
func (EmbeddedSource) Records(context.Context) ([]map[string]any, error) {
	data, err := embeddedData.ReadFile(embeddedPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: read embedded data: %w", err)
	}
	return DecodeDocument(data)
}

// FileSource reads a YAML or JSON document from disk.
type FileSource struct {
	Path string
}

// Name implements Source.
func (s FileSource) Name() string { return "file:" + s.Path }

// Records implements Source.
func (s FileSource) Records(context.Context) ([]map[string]any, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", s.Path, err)
	}
	return DecodeDocument(data)
}

// ObjectReader fetches a whole Cloud Storage object.
type ObjectReader interface {
	ReadObject(ctx context.Context, bucket, object string) ([]byte, error)
}

// StorageSource reads a YAML or JSON document from Cloud Storage.
type StorageSource struct {
	Reader ObjectReader
	Bucket string
	Object string
}

// Name implements Source.
func (s StorageSource) Name() string { return fmt.Sprintf("gs://%s/%s", s.Bucket, s.Object) }

// Records implements Source.
func (s StorageSource) Records(ctx context.Context) ([]map[string]any, error) {
	if s.Reader == nil {
		return nil, errors.New("catalog: storage reader is required")
	}
	data, err := s.Reader.ReadObject(ctx, s.Bucket, s.Object)
	if err != nil {
		return nil, err
	}
	return DecodeDocument(data)
}

// ClientProvider hands out a Firestore client.
type ClientProvider interface {
	Client(ctx context.Context) (*firestore.Client, error)
}

// FirestoreSource reads one document per job from a collection. Documents are
// ordered by OrderBy when set, otherwise by document id. A document without an
// id field takes its document id.
type FirestoreSource struct {
	Provider   ClientProvider
	Collection string
	OrderBy    string
}

// Name implements Source.
func (s FirestoreSource) Name() string { return "firestore:" + s.Collection }

// Records implements Source.
func (s FirestoreSource) Records(ctx context.Context) ([]map[string]any, error) {
	if s.Provider == nil {
		return nil, errors.New("catalog: firestore provider is required")
	}
	client, err := s.Provider.Client(ctx)
	if err != nil {
		return nil, err
	}

	query := client.Collection(s.Collection).OrderBy(firestore.DocumentID, firestore.Asc)
	if s.OrderBy != "" {
		query = client.Collection(s.Collection).OrderBy(s.OrderBy, firestore.Asc)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var records []map[string]any
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, pfirestore.WrapError("catalog.firestore.list", err)
		}
		record := snap.Data()
		if _, ok := record["id"]; !ok {
			record["id"] = snap.Ref.ID
		}
		records = append(records, normalizeRecord(record))
	}
	return records, nil
}

// DecodeDocument parses a catalog document: either a sequence of records or a
// mapping with a "jobs" sequence. JSON documents are accepted as YAML.
func DecodeDocument(data []byte) ([]map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []map[string]any{}, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("catalog: decode document: %w", err)
	}
	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind == yaml.MappingNode {
		var wrapper struct {
			Jobs yaml.Node `yaml:"jobs"`
		}
		if err := node.Decode(&wrapper); err != nil {
			return nil, fmt.Errorf("catalog: decode document: %w", err)
		}
		if wrapper.Jobs.Kind == 0 {
			return nil, errors.New(`catalog: decode document: mapping without "jobs" key`)
		}
		node = &wrapper.Jobs
	}
	if node.Kind != yaml.SequenceNode {
		return nil, errors.New("catalog: decode document: expected a sequence of jobs")
	}

	var records []map[string]any
	if err := node.Decode(&records); err != nil {
		return nil, fmt.Errorf("catalog: decode document: %w", err)
	}
	for i, record := range records {
		if record == nil {
			record = map[string]any{}
		}
		records[i] = normalizeRecord(record)
	}
	return records, nil
}

// normalizeRecord converts timestamp values to the YYYY-MM-DD form used by updatedAt.
func normalizeRecord(record map[string]any) map[string]any {
	for key, value := range record {
		if ts, ok := value.(time.Time); ok {
			record[key] = ts.UTC().Format("2006-01-02")
		}
	}
	return record
}
