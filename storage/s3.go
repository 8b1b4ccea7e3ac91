package storage

import (
	"blog/config"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const presignedURLExpiry = 15 * time.Minute

type S3Storage struct {
	Bucket   string
	Prefix   string
	s3Client *s3.S3
}

func NewS3Storage(bucket, prefix string) (*S3Storage, error) {
	awsConfig := aws.NewConfig().WithRegion(config.S3_REGION)
	if config.S3_ENDPOINT != "" {
		// S3 compatible services (MinIO etc)
		awsConfig = awsConfig.WithEndpoint(config.S3_ENDPOINT).WithS3ForcePathStyle(true)
	}
	if config.S3_ACCESS_KEY != "" {
		awsConfig = awsConfig.WithCredentials(credentials.NewStaticCredentials(config.S3_ACCESS_KEY, config.S3_SECRET, ""))
	}
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("s3 session: %w", err)
	}
	return &S3Storage{
		Bucket:   bucket,
		Prefix:   strings.Trim(prefix, "/"),
		s3Client: s3.New(sess),
	}, nil
}

func (s *S3Storage) Name() string {
	return "s3://" + s.Bucket + "/" + s.Prefix
}

func (s *S3Storage) remotePath(path string) (string, error) {
	cleaned, err := CleanPath(path)
	if err != nil {
		return "", err
	}
	if s.Prefix == "" {
		return cleaned, nil
	}
	return s.Prefix + "/" + cleaned, nil
}

func (s *S3Storage) Save(path, mimeType string, reader io.Reader) (int64, error) {
	key, err := s.remotePath(path)
	if err != nil {
		return 0, err
	}
	counter := &countingReader{Reader: reader}
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	input := s3manager.UploadInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
		Body:   counter,
	}
	if mimeType != "" {
		input.ContentType = aws.String(mimeType)
	}
	_, err = uploader.Upload(&input)
	return counter.n, err
}

func (s *S3Storage) Load(path string, writer io.Writer) (int64, error) {
	key, err := s.remotePath(path)
	if err != nil {
		return 0, err
	}
	resp, err := s.s3Client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return io.Copy(writer, resp.Body)
}

// Serve redirects to a presigned URL
func (s *S3Storage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	key, err := s.remotePath(path)
	if err != nil {
		http.NotFound(writer, request)
		return
	}
	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	url, err := req.Presign(presignedURLExpiry)
	if err != nil {
		log.Printf("Cannot presign %s: %v", key, err)
		http.Error(writer, "storage error", http.StatusInternalServerError)
		return
	}
	http.Redirect(writer, request, url, http.StatusFound)
}

func (s *S3Storage) Delete(path string) error {
	key, err := s.remotePath(path)
	if err != nil {
		return err
	}
	_, err = s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	return err
}

type countingReader struct {
	io.Reader
	n int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	r.n += int64(n)
	return n, err
}
