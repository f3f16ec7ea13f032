// Package backup exports the herd to an S3-compatible bucket and restores it.
//
// A backup is one JSON document per export stored at
// <prefix>/herd-<UTC timestamp>.json. Restore upserts every record in a
// single transaction, so a broken document leaves the local herd untouched.
package backup

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/farmily/farmily/internal/client/models"
	"github.com/farmily/farmily/internal/client/repositories/animals"
	"github.com/farmily/farmily/internal/common"
	"github.com/farmily/farmily/internal/dbx"
)

const formatVersion = 1

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectStore {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// ObjectStore is the subset of the S3 API used here.
type ObjectStore interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Config locates the bucket. An empty Bucket disables backups. Endpoint is
// for S3-compatible servers such as MinIO and switches to path-style
// addressing. Without AccessKey the default AWS credential chain is used.
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	Prefix    string
	AccessKey string
	SecretKey string
}

type Service struct {
	cfg Config
	db  *sql.DB
	now func() time.Time

	once     sync.Once
	store    ObjectStore
	storeErr error
}

func New(cfg Config, db *sql.DB) *Service {
	return &Service{cfg: cfg, db: db, now: time.Now}
}

func (s *Service) Enabled() bool {
	return s.cfg.Bucket != ""
}

func (s *Service) client(ctx context.Context) (ObjectStore, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("%w: no backup bucket configured", common.ErrDisabled)
	}

	s.once.Do(func() {
		opts := []func(*config.LoadOptions) error{}
		if s.cfg.Region != "" {
			opts = append(opts, config.WithRegion(s.cfg.Region))
		}
		if s.cfg.AccessKey != "" {
			opts = append(opts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(s.cfg.AccessKey, s.cfg.SecretKey, ""),
			))
		}

		cfg, err := loadDefaultAWSConfig(ctx, opts...)
		if err != nil {
			s.storeErr = fmt.Errorf("failed to load aws config: %w", err)
			return
		}

		s.store = newS3ClientFromConfig(cfg, func(o *s3.Options) {
			if s.cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(s.cfg.Endpoint)
				o.UsePathStyle = true
			}
		})
	})
	return s.store, s.storeErr
}

type document struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Animals    []record  `json:"animals"`
}

type record struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Breed        string     `json:"breed,omitempty"`
	BirthDate    *time.Time `json:"birthDate,omitempty"`
	Weight       float64    `json:"weight"`
	HealthStatus string     `json:"healthStatus"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func toRecord(a models.Animal) record {
	return record{
		ID: a.ID, Name: a.Name, Type: string(a.Type), Breed: a.Breed, BirthDate: a.BirthDate,
		Weight: a.Weight, HealthStatus: string(a.HealthStatus), Notes: a.Notes,
		CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt,
	}
}

func (r record) toAnimal() models.Animal {
	return models.Animal{
		ID: r.ID, Name: r.Name, Type: models.ParseAnimalType(r.Type), Breed: r.Breed, BirthDate: r.BirthDate,
		Weight: r.Weight, HealthStatus: models.ParseHealthStatus(r.HealthStatus), Notes: r.Notes,
		CreatedAt: r.CreatedAt.UTC(), UpdatedAt: r.UpdatedAt.UTC(),
	}
}

// Export uploads the whole herd and returns the object key.
func (s *Service) Export(ctx context.Context) (string, error) {
	store, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	herd, err := animals.NewSQLiteRepository(s.db).GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("error reading herd: %w", err)
	}

	now := s.now().UTC()
	doc := document{Version: formatVersion, ExportedAt: now, Animals: make([]record, 0, len(herd))}
	for _, a := range herd {
		doc.Animals = append(doc.Animals, toRecord(a))
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding backup: %w", err)
	}

	key := path.Join(s.cfg.Prefix, "herd-"+now.Format("20060102T150405Z")+".json")
	_, err = store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading backup: %w", err)
	}
	return key, nil
}

// List returns the backup keys under the prefix, newest first.
func (s *Service) List(ctx context.Context) ([]string, error) {
	store, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	in := &s3.ListObjectsV2Input{Bucket: aws.String(s.cfg.Bucket)}
	if s.cfg.Prefix != "" {
		in.Prefix = aws.String(strings.TrimSuffix(s.cfg.Prefix, "/") + "/")
	}

	var keys []string
	p := s3.NewListObjectsV2Paginator(store, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing backups: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasPrefix(path.Base(key), "herd-") && strings.HasSuffix(key, ".json") {
				keys = append(keys, key)
			}
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys, nil
}

// Restore downloads key and upserts its records. It returns how many were
// restored.
func (s *Service) Restore(ctx context.Context, key string) (int, error) {
	store, err := s.client(ctx)
	if err != nil {
		return 0, err
	}

	out, err := store.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, fmt.Errorf("error downloading backup: %w", err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return 0, fmt.Errorf("error downloading backup: %w", err)
	}

	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return 0, fmt.Errorf("%w: backup is not valid json: %w", common.ErrValidation, err)
	}
	if doc.Version != formatVersion {
		return 0, fmt.Errorf("%w: unsupported backup version %d", common.ErrValidation, doc.Version)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := animals.NewSQLiteRepository(tx)
		for i, r := range doc.Animals {
			if r.ID == "" || strings.TrimSpace(r.Name) == "" {
				return fmt.Errorf("%w: record %d has no id or name", common.ErrValidation, i)
			}
			a := r.toAnimal()
			if err := repo.CreateOrUpdate(ctx, &a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			return 0, err
		}
		return 0, fmt.Errorf("error restoring backup: %w", err)
	}
	return len(doc.Animals), nil
}
