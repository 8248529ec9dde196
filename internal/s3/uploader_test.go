package s3_test

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"waste-retrieval-api-server/config"
	"waste-retrieval-api-server/internal/s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportBucket = "waste-reports"

func newS3Server(t *testing.T) *httptest.Server {
	t.Helper()
	backend := s3mem.New()
	require.Nil(t, backend.CreateBucket(reportBucket))
	faker := gofakes3.New(backend)
	server := httptest.NewServer(faker.Server())
	t.Cleanup(server.Close)
	return server
}

func newTestUploader(t *testing.T, endpoint string) *s3.Uploader {
	t.Helper()
	uploader, err := s3.NewUploader(context.Background(), config.S3Config{
		Bucket:          reportBucket,
		Region:          "us-east-1",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		Endpoint:        endpoint,
		UsePathStyle:    true,
	})
	require.Nil(t, err)
	return uploader
}

func TestUploadFile(t *testing.T) {
	server := newS3Server(t)
	uploader := newTestUploader(t, server.URL)

	csv := "id,type\n1,organic\n"
	url, err := uploader.UploadFile(context.Background(), bytes.NewReader([]byte(csv)), "exports/report.csv", "text/csv")
	require.Nil(t, err)
	assert.Equal(t, server.URL+"/waste-reports/exports/report.csv", url)

	out, err := uploader.Client.GetObject(context.Background(), &awss3.GetObjectInput{
		Bucket: aws.String(reportBucket),
		Key:    aws.String("exports/report.csv"),
	})
	require.Nil(t, err)
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	require.Nil(t, err)
	assert.Equal(t, csv, string(data))
	assert.Equal(t, "text/csv", aws.ToString(out.ContentType))
}

func TestUploadFileMissingBucket(t *testing.T) {
	server := newS3Server(t)
	uploader := newTestUploader(t, server.URL)
	uploader.Bucket = "no-such-bucket"

	_, err := uploader.UploadFile(context.Background(), bytes.NewReader([]byte("x")), "exports/report.csv", "text/csv")
	assert.NotNil(t, err)
}

func TestObjectURL(t *testing.T) {
	u := &s3.Uploader{Bucket: "b", Region: "ap-southeast-1"}
	assert.Equal(t, "https://b.s3.ap-southeast-1.amazonaws.com/k.csv", u.ObjectURL("k.csv"))

	u.CloudFrontDomain = "cdn.example.com"
	assert.Equal(t, "https://cdn.example.com/k.csv", u.ObjectURL("k.csv"))
}
