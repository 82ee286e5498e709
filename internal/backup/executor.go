package backup

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Result is what an executor produced for one backup.
type Result struct {
	FilePath string
	FileSize int64
}

// Executor performs the storage work for a named backup. Implementations may
// fail; the ledger records the failure and surfaces it.
type Executor interface {
	Execute(ctx context.Context, name string) (Result, error)
}

// SyntheticExecutor fabricates a backup result without touching storage:
// a nominal dump path and a pseudorandom size. It never fails.
type SyntheticExecutor struct{}

func (SyntheticExecutor) Execute(_ context.Context, name string) (Result, error) {
	return Result{
		FilePath: fmt.Sprintf("/backups/%s.sql", name),
		FileSize: 100000 + rand.Int64N(1000000),
	}, nil
}

// s3Client is an interface for testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config holds S3-compatible storage configuration for snapshot uploads.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

func (c S3Config) enabled() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

func newS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// SnapshotConfig configures a SnapshotExecutor.
type SnapshotConfig struct {
	// DBPath is the live SQLite file to snapshot.
	DBPath string
	// Dir receives the snapshot files.
	Dir string
	// Passphrase, when set, encrypts snapshots at rest.
	Passphrase string
	// S3, when configured, receives a copy of each snapshot.
	S3 S3Config
}

// SnapshotExecutor takes a real copy of the live database: WAL checkpoint,
// file copy, optional encryption, optional S3 upload. Unlike the synthetic
// executor it can genuinely fail.
type SnapshotExecutor struct {
	cfg    SnapshotConfig
	db     *sql.DB
	client s3Client
}

func NewSnapshotExecutor(cfg SnapshotConfig, db *sql.DB) *SnapshotExecutor {
	e := &SnapshotExecutor{cfg: cfg, db: db}
	if cfg.S3.enabled() {
		e.client = newS3Client(cfg.S3)
	}
	return e
}

func (e *SnapshotExecutor) Execute(ctx context.Context, name string) (Result, error) {
	if err := os.MkdirAll(e.cfg.Dir, 0700); err != nil {
		return Result{}, fmt.Errorf("create backup dir: %w", err)
	}

	// Flush the WAL so the main file is a consistent snapshot.
	if _, err := e.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return Result{}, fmt.Errorf("wal checkpoint: %w", err)
	}

	dst := filepath.Join(e.cfg.Dir, name+".db")
	if err := copyFile(e.cfg.DBPath, dst); err != nil {
		return Result{}, fmt.Errorf("copy database: %w", err)
	}

	if e.cfg.Passphrase != "" {
		enc := dst + ".enc"
		if err := encryptFile(dst, enc, e.cfg.Passphrase); err != nil {
			os.Remove(dst)
			return Result{}, fmt.Errorf("encrypt snapshot: %w", err)
		}
		os.Remove(dst)
		dst = enc
	}

	stat, err := os.Stat(dst)
	if err != nil {
		return Result{}, fmt.Errorf("stat snapshot: %w", err)
	}

	if e.client != nil {
		f, err := os.Open(dst)
		if err != nil {
			return Result{}, fmt.Errorf("open snapshot: %w", err)
		}
		defer f.Close()

		_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(e.cfg.S3.Bucket),
			Key:           aws.String(filepath.Base(dst)),
			Body:          f,
			ContentLength: aws.Int64(stat.Size()),
		})
		if err != nil {
			return Result{}, fmt.Errorf("upload snapshot: %w", err)
		}
	}

	return Result{FilePath: dst, FileSize: stat.Size()}, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
