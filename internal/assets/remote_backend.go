package assets

import (
	"bytes"
	"context"
	"fmt"
	"imgstore/internal/structures"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectClient is the subset of *minio.Client the remote backend uses.
type ObjectClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// RemoteBackend stores images as image-<id>.jpg objects in the images bucket.
type RemoteBackend struct {
	client    ObjectClient
	bucket    string
	publicURL string
}

// NewRemoteBackend builds a client from the connection descriptor. No
// request is sent until the first Save or Remove.
func NewRemoteBackend(raw string) (*RemoteBackend, error) {
	conn, err := ParseRemoteConnection(raw)
	if err != nil {
		return nil, err
	}
	client, err := minio.New(conn.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conn.AccessKey, conn.SecretKey, ""),
		Secure: conn.Secure,
		Region: conn.Region,
	})
	if err != nil {
		return nil, configError(err)
	}
	return newRemoteBackend(client, conn.PublicURL), nil
}

func newRemoteBackend(client ObjectClient, publicURL string) *RemoteBackend {
	return &RemoteBackend{
		client:    client,
		bucket:    ContainerName,
		publicURL: publicURL,
	}
}

func objectName(imageID int) string {
	return fmt.Sprintf("image-%d.jpg", imageID)
}

func (b *RemoteBackend) Save(ctx context.Context, imageID int, data []byte) error {
	_, err := b.client.PutObject(ctx, b.bucket, objectName(imageID), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: ContentType,
	})
	if err != nil {
		return structures.Unavailable("put object", err)
	}
	return nil
}

// Remove is idempotent: S3 answers a delete of a missing key with success,
// and NoSuchKey from stricter implementations is treated the same way.
func (b *RemoteBackend) Remove(ctx context.Context, imageID int) error {
	err := b.client.RemoveObject(ctx, b.bucket, objectName(imageID), minio.RemoveObjectOptions{})
	if err == nil {
		return nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return nil
	}
	return structures.Unavailable("remove object", err)
}

// Reference is the absolute URI of the object, e.g. https://host/images/image-42.jpg.
func (b *RemoteBackend) Reference(imageID int) string {
	return b.publicURL + "/" + b.bucket + "/" + objectName(imageID)
}

func (b *RemoteBackend) Kind() BackendKind {
	return KindRemote
}
