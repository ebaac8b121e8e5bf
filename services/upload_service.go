// Package services: services/upload_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"gaittrib/config"
	"gaittrib/logger"
)

const (
	// MaxImageSize caps event image uploads at 5MB.
	MaxImageSize = 5 * 1024 * 1024

	localUploadDir = "static/uploads/events"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// UploadServiceInterface stores event images and returns a public URL.
type UploadServiceInterface interface {
	UploadEventImage(file *multipart.FileHeader) (string, error)
}

// UploadService writes event images to S3 when a bucket is configured and
// to the local static directory otherwise.
type UploadService struct {
	bucket string
	region string
	s3     *s3.S3
}

// NewUploadService creates an UploadService. S3 setup failures degrade to
// local storage rather than blocking startup.
func NewUploadService(cfg config.Config) *UploadService {
	svc := &UploadService{bucket: cfg.S3Bucket, region: cfg.AWSRegion}

	if cfg.S3Bucket != "" {
		sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.AWSRegion)})
		if err != nil {
			logger.Error.Printf("UploadService: S3 session failed, falling back to local storage: %v", err)
			svc.bucket = ""
			return svc
		}
		svc.s3 = s3.New(sess)
		logger.Info.Printf("UploadService: storing event images in s3://%s", cfg.S3Bucket)
	} else {
		logger.Info.Printf("UploadService: storing event images under %s", localUploadDir)
	}
	return svc
}

func sanitizeFileName(name string) string {
	return unsafeFileChars.ReplaceAllString(name, "_")
}

// UploadEventImage validates and stores an uploaded image, returning the
// URL to serve it from. A nil header is not an error: events without an
// image are allowed.
func (s *UploadService) UploadEventImage(file *multipart.FileHeader) (string, error) {
	if file == nil || file.Size == 0 {
		return "", nil
	}
	if file.Size > MaxImageSize {
		return "", NewValidationError("image exceeds the 5MB limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return "", NewValidationError("only JPG and PNG images are allowed")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFileName(file.Filename))

	if s.bucket != "" {
		key := "events/" + fileName
		contentType := file.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		_, err := s.s3.PutObject(&s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
		if err != nil {
			return "", fmt.Errorf("s3 upload: %w", err)
		}
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
	}

	if err := os.MkdirAll(localUploadDir, 0750); err != nil {
		return "", err
	}
	outputPath := filepath.Join(localUploadDir, fileName)
	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(outputPath), nil
}
