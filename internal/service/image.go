package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/fridgechef/backend/config"
)

// maxImageBytes caps downloads so a bad upstream URL cannot balloon
// memory.
const maxImageBytes = 10 << 20

// ImageService mirrors externally hosted recipe images into S3 so
// stored recipes do not depend on upstream URLs staying alive.
type ImageService struct {
	s3Config *config.S3Config
	client   *http.Client
}

func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{
		s3Config: s3Config,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// MirrorImage downloads an image URL and re-hosts it in S3, returning
// the public URL. Failures fall back to the original URL so a broken
// mirror never blocks recipe storage.
func (s *ImageService) MirrorImage(ctx context.Context, imageURL string) string {
	if imageURL == "" {
		return ""
	}

	s3URL, err := s.downloadAndUpload(ctx, imageURL)
	if err != nil {
		log.Printf("[ImageService] Failed to mirror image, keeping original URL: %v", err)
		return imageURL
	}
	return s3URL
}

func (s *ImageService) downloadAndUpload(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image, status: %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	fileName := fmt.Sprintf("recipe-images/%s.png", uuid.New().String())
	return s.UploadImage(ctx, imageData, fileName, contentType)
}

// UploadImage stores image data in S3 and returns the public URL.
func (s *ImageService) UploadImage(ctx context.Context, imageData []byte, fileName, contentType string) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[ImageService] Uploaded image to S3: %s", publicURL)
	return publicURL, nil
}
