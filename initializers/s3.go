package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	filestorage "github.com/sajib4386/Asset-verse-Server/lib/file-storage"
	s3client "github.com/sajib4386/Asset-verse-Server/s3"
)

func InitS3(ctx context.Context) {
	client, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("S3 client initialization failed, image upload is disabled")
		return
	}
	if err = client.MakeBucket(ctx); err != nil {
		log.WithError(err).Error("S3 bucket check failed, image upload is disabled")
		return
	}
	filestorage.NewHandler(client.GetClient())
	log.Info("S3 client initialized")
}
