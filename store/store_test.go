package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func TestStubRecordsPut(t *testing.T) {
	stub := NewStub()
	if err := stub.Put(context.Background(), "runs/a/nextflow.log", strings.NewReader("log body")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if got := string(stub.Objects["runs/a/nextflow.log"]); got != "log body" {
		t.Errorf("object = %q", got)
	}
}

func TestFSClientPut(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFSClient(dir)
	if err != nil {
		t.Fatalf("NewFSClient: %v", err)
	}

	if err := c.Put(context.Background(), "runs/hopeful_fold/nextflow.log", strings.NewReader("done")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "runs", "hopeful_fold", "nextflow.log"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "done" {
		t.Errorf("content = %q", got)
	}
}

func TestFSClientRequiresDir(t *testing.T) {
	if _, err := NewFSClient(""); err == nil {
		t.Fatal("expected error for empty dir")
	}
}

func TestS3ConfigValidate(t *testing.T) {
	if err := (&S3Config{}).Validate(); err == nil {
		t.Error("expected error for missing bucket")
	}
	if err := (&S3Config{Bucket: "logs"}).Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestParseS3Path(t *testing.T) {
	tests := []struct {
		in             string
		bucket, prefix string
	}{
		{"logs", "logs", ""},
		{"logs/proteinfold", "logs", "proteinfold"},
		{"logs/proteinfold/runs", "logs", "proteinfold/runs"},
	}
	for _, tt := range tests {
		bucket, prefix := ParseS3Path(tt.in)
		if bucket != tt.bucket || prefix != tt.prefix {
			t.Errorf("ParseS3Path(%q) = %q, %q; want %q, %q", tt.in, bucket, prefix, tt.bucket, tt.prefix)
		}
	}
}

type fakeS3 struct {
	bucket, key string
	err         error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = *in.Bucket
	f.key = *in.Key
	return &s3.PutObjectOutput{}, nil
}

func TestS3ClientKeyPrefix(t *testing.T) {
	fake := &fakeS3{}
	c := &S3Client{api: fake, bucket: "logs", prefix: "proteinfold"}

	if err := c.Put(context.Background(), "hopeful_fold/nextflow.log", strings.NewReader("x")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if fake.bucket != "logs" {
		t.Errorf("bucket = %q", fake.bucket)
	}
	if fake.key != "proteinfold/hopeful_fold/nextflow.log" {
		t.Errorf("key = %q", fake.key)
	}
}

func TestS3ClientPutError(t *testing.T) {
	fake := &fakeS3{err: errors.New("access denied")}
	c := &S3Client{api: fake, bucket: "logs"}

	err := c.Put(context.Background(), "k", strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "s3://logs/k") {
		t.Fatalf("err = %v, want wrapped key context", err)
	}
}
