package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalonResult is one salon's line in a reconciliation run.
type SalonResult struct {
	SalonID       uuid.UUID       `json:"salon_id"`
	VisitsBefore  int64           `json:"visits_before"`
	RevenueBefore decimal.Decimal `json:"revenue_before"`
	VisitsAfter   int64           `json:"visits_after"`
	RevenueAfter  decimal.Decimal `json:"revenue_after"`
	Drifted       bool            `json:"drifted"`
	Error         string          `json:"error,omitempty"`
}

type DriftReport struct {
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Salons     []SalonResult `json:"salons"`
}

func (r DriftReport) DriftCount() int {
	n := 0
	for _, s := range r.Salons {
		if s.Drifted {
			n++
		}
	}
	return n
}

func (r DriftReport) ErrorCount() int {
	n := 0
	for _, s := range r.Salons {
		if s.Error != "" {
			n++
		}
	}
	return n
}

// Key is the object key a report is stored under.
func (r DriftReport) Key() string {
	return "stats-reconcile/" + r.StartedAt.UTC().Format("2006/01/02/150405") + ".json"
}

// Archive stores finished reports.
type Archive interface {
	Put(ctx context.Context, r DriftReport) error
}

type S3Archive struct {
	client *s3.Client
	bucket string
}

func NewS3Archive(region, bucket, accessKeyID, secretKey string) *S3Archive {
	client := s3.New(s3.Options{
		Region: region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretKey, ""),
		),
	})
	return &S3Archive{client: client, bucket: bucket}
}

func (a *S3Archive) Put(ctx context.Context, r DriftReport) error {
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(r.Key()),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", r.Key(), err)
	}
	return nil
}

// MemoryArchive keeps reports in memory.
type MemoryArchive struct {
	mu      sync.Mutex
	reports []DriftReport
}

func (a *MemoryArchive) Put(_ context.Context, r DriftReport) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reports = append(a.reports, r)
	return nil
}

func (a *MemoryArchive) Reports() []DriftReport {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]DriftReport, len(a.reports))
	copy(out, a.reports)
	return out
}

var (
	_ Archive = (*S3Archive)(nil)
	_ Archive = (*MemoryArchive)(nil)
)
