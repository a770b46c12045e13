package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// AvatarStore keeps user avatar images in a MinIO bucket.
type AvatarStore struct {
	client   *minio.Client
	endpoint string
	bucket   string
}

// NewAvatarStore connects to MinIO and ensures the avatar bucket exists.
func NewAvatarStore(endpoint, accessKey, secretKey, bucket string) (*AvatarStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		log.Printf("Warning: Failed to check bucket existence: %v", err)
	} else if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			log.Printf("Warning: Failed to create bucket: %v", err)
		} else {
			log.Printf("Created bucket: %s", bucket)
		}
	}

	return &AvatarStore{client: client, endpoint: endpoint, bucket: bucket}, nil
}

// PutAvatar stores one avatar image and returns its public URL.
func (s *AvatarStore) PutAvatar(ctx context.Context, userID string, r io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("%s/%s", userID, uuid.NewString())

	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return fmt.Sprintf("http://%s/%s/%s", s.endpoint, s.bucket, objectName), nil
}
