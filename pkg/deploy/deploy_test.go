package deploy

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/glint-dev/glint/internal/errors"
)

type fakeObject struct {
	Bucket      string
	Body        []byte
	ContentType string
}

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]fakeObject
	err     error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string]fakeObject)}
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[*params.Key] = fakeObject{
		Bucket:      *params.Bucket,
		Body:        body,
		ContentType: *params.ContentType,
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func distWithFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestDeployUploadsAllFiles(t *testing.T) {
	dir := distWithFiles(t, map[string]string{
		"index.html":   "<p>hi</p>",
		"css/site.css": "body{}",
	})

	client := newFakeS3()
	d := New(client, Options{Bucket: "site", Logger: quietLogger()})

	res, err := d.Deploy(context.Background(), dir)
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}

	if res.Uploaded != 2 {
		t.Errorf("Uploaded = %d, want 2", res.Uploaded)
	}
	got := client.keys()
	want := []string{"css/site.css", "index.html"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("keys = %v, want %v", got, want)
	}

	obj := client.objects["index.html"]
	if obj.Bucket != "site" {
		t.Errorf("Bucket = %q", obj.Bucket)
	}
	if string(obj.Body) != "<p>hi</p>" {
		t.Errorf("Body = %q", obj.Body)
	}
}

func TestDeployPrefix(t *testing.T) {
	dir := distWithFiles(t, map[string]string{"index.html": "x"})

	client := newFakeS3()
	d := New(client, Options{Bucket: "site", Prefix: "v2/", Logger: quietLogger()})

	if _, err := d.Deploy(context.Background(), dir); err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if _, ok := client.objects["v2/index.html"]; !ok {
		t.Fatalf("keys = %v, want v2/index.html", client.keys())
	}
}

func TestDeployContentTypes(t *testing.T) {
	dir := distWithFiles(t, map[string]string{
		"site.css": "body{}",
		"blob.bin": "\x00\x01",
	})

	client := newFakeS3()
	d := New(client, Options{Bucket: "site", Logger: quietLogger()})

	if _, err := d.Deploy(context.Background(), dir); err != nil {
		t.Fatalf("Deploy: %v", err)
	}

	if ct := client.objects["site.css"].ContentType; ct != "text/css; charset=utf-8" {
		t.Errorf("css content type = %q", ct)
	}
	if ct := client.objects["blob.bin"].ContentType; ct != "application/octet-stream" {
		t.Errorf("bin content type = %q", ct)
	}
}

func TestDeployDryRun(t *testing.T) {
	dir := distWithFiles(t, map[string]string{"index.html": "x"})

	client := newFakeS3()
	d := New(client, Options{Bucket: "site", DryRun: true, Logger: quietLogger()})

	res, err := d.Deploy(context.Background(), dir)
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if res.Uploaded != 1 {
		t.Errorf("Uploaded = %d, want 1", res.Uploaded)
	}
	if len(client.objects) != 0 {
		t.Fatalf("dry run uploaded objects: %v", client.keys())
	}
}

func TestDeployRequiresBucket(t *testing.T) {
	d := New(newFakeS3(), Options{Logger: quietLogger()})

	_, err := d.Deploy(context.Background(), t.TempDir())
	if !errors.Is(err, "E612") {
		t.Fatalf("err = %v, want E612", err)
	}
}

func TestDeployMissingDir(t *testing.T) {
	d := New(newFakeS3(), Options{Bucket: "site", Logger: quietLogger()})

	_, err := d.Deploy(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, "E611") {
		t.Fatalf("err = %v, want E611", err)
	}
}

func TestDeployUploadFailure(t *testing.T) {
	dir := distWithFiles(t, map[string]string{"index.html": "x"})

	client := newFakeS3()
	client.err = context.DeadlineExceeded
	d := New(client, Options{Bucket: "site", Logger: quietLogger()})

	_, err := d.Deploy(context.Background(), dir)
	if !errors.Is(err, "E611") {
		t.Fatalf("err = %v, want E611", err)
	}
}
