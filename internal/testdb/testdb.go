// Package testdb provides helpers for tests that talk to Google Cloud
// backends: the Firestore emulator and an in-process fake of Cloud Storage.
package testdb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	"github.com/fsouza/fake-gcs-server/fakestorage"
)

// EmulatorProject is the project ID used against the Firestore emulator.
const EmulatorProject = "campsite-test"

// TestBucket is the bucket created by Bucket.
const TestBucket = "campsite-test"

// Firestore returns a client connected to the emulator named by
// FIRESTORE_EMULATOR_HOST, or skips the test when it is unset.
// The client is closed when the test finishes.
func Firestore(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set; start the emulator with `gcloud emulators firestore start`")
	}

	client, err := firestore.NewClient(context.Background(), EmulatorProject)
	if err != nil {
		t.Fatalf("testdb.Firestore: open client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// Collection returns a collection name unique to this test run.
func Collection(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf("campgrounds_test_%d", time.Now().UnixNano())
}

// Bucket starts an in-process fake Cloud Storage server holding one empty
// bucket and returns a client for it with the bucket name. The server is
// stopped when the test finishes.
func Bucket(t *testing.T) (*storage.Client, string) {
	t.Helper()

	server, err := fakestorage.NewServerWithOptions(fakestorage.Options{NoListener: true})
	if err != nil {
		t.Fatalf("testdb.Bucket: start fake storage: %v", err)
	}
	t.Cleanup(server.Stop)

	server.CreateBucketWithOpts(fakestorage.CreateBucketOpts{Name: TestBucket})
	return server.Client(), TestBucket
}
