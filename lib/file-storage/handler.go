package filestorage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"github.com/sajib4386/Asset-verse-Server/config"
)

// Provider stores uploaded images (company logos, asset photos) and hands
// back the public URL the records denormalize.
type Provider interface {
	UploadImage(ctx context.Context, fileName, contentType string, fileReader io.Reader, fileSize int64) (url string, err error)
}

var Instance Provider

func NewHandler(client *minio.Client) {
	Instance = &impl{
		s3client: client,
	}
}

type impl struct {
	s3client *minio.Client
}

func (i impl) UploadImage(ctx context.Context, fileName, contentType string, fileReader io.Reader, fileSize int64) (string, error) {
	objectName := fmt.Sprintf("images/%s%s", uuid.NewString(), path.Ext(fileName))
	_, err := i.s3client.PutObject(ctx, config.Conf.S3.Bucket, objectName, fileReader, fileSize,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "image upload failed")
	}
	base := config.Conf.S3.PublicURL
	if base == "" {
		base = fmt.Sprintf("https://%s/%s", config.Conf.S3.Endpoint, config.Conf.S3.Bucket)
	}
	return fmt.Sprintf("%s/%s", base, objectName), nil
}
