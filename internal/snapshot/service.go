// Package snapshot copies the whole account set to and from S3 as a
// users_db.json document.
package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/mrtrade/internal/common"
	"github.com/dmitrijs2005/mrtrade/internal/cryptox"
	"github.com/dmitrijs2005/mrtrade/internal/logging"
	"github.com/dmitrijs2005/mrtrade/internal/repositories/accounts"
	"github.com/oklog/ulid/v2"
)

const keySuffix = ".json"

var ErrInvalidSnapshot = errors.New("invalid snapshot")

// ObjectStore is the part of *s3.Client the service uses.
type ObjectStore interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Info describes one stored snapshot.
type Info struct {
	Key          string
	Size         int64
	LastModified time.Time
}

type Service struct {
	repo   accounts.Repository
	store  ObjectStore
	bucket string
	prefix string
	logger logging.Logger
}

func NewService(repo accounts.Repository, store ObjectStore, opts Options, logger logging.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		bucket: opts.Bucket,
		prefix: opts.Prefix,
		logger: logger.With("bucket", opts.Bucket),
	}
}

// newID is a test seam; ULIDs sort by creation time.
var newID = func() string { return ulid.Make().String() }

// Backup uploads every account and returns the object key and the number
// of records written.
func (s *Service) Backup(ctx context.Context) (string, int, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("list accounts: %w", err)
	}

	data, err := accounts.EncodeDocument(list)
	if err != nil {
		return "", 0, err
	}

	key := s.prefix + newID() + keySuffix
	_, err = s.store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return "", 0, fmt.Errorf("upload snapshot: %w", err)
	}

	s.logger.Info(ctx, "snapshot uploaded", "key", key, "users", len(list))
	return key, len(list), nil
}

// Restore downloads key and inserts every record whose email is not yet
// registered, keeping the stored hash. Existing accounts are left alone.
// A snapshot holding anything but password digests is rejected whole.
func (s *Service) Restore(ctx context.Context, key string) (restored, skipped int, err error) {
	out, err := s.store.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, 0, fmt.Errorf("download snapshot: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return 0, 0, fmt.Errorf("read snapshot: %w", err)
	}

	list, err := accounts.DecodeDocument(data)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	for _, a := range list {
		if !cryptox.IsEncodedHash(a.PasswordHash) {
			return 0, 0, fmt.Errorf("%w: record %q has no password digest", ErrInvalidSnapshot, a.Email)
		}
	}

	for _, a := range list {
		err := s.repo.Create(ctx, a)
		switch {
		case err == nil:
			restored++
		case errors.Is(err, common.ErrorAlreadyExists):
			skipped++
		default:
			return restored, skipped, fmt.Errorf("restore %q: %w", a.Email, err)
		}
	}

	s.logger.Info(ctx, "snapshot restored", "key", key, "restored", restored, "skipped", skipped)
	return restored, skipped, nil
}

// List returns the snapshots under the configured prefix, newest first.
func (s *Service) List(ctx context.Context) ([]Info, error) {
	var out []Info

	p := s3.NewListObjectsV2Paginator(s.store, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list snapshots: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, keySuffix) {
				continue
			}
			out = append(out, Info{
				Key:          key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key > out[j].Key })
	return out, nil
}
