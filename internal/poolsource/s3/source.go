// Package s3pool backs an object pool's chunk-callback PoolSource
// (vtclient.Client.RegisterChunkCallback) with byte-range reads against
// an S3 object, for fleet deployments that keep object pools versioned in
// a bucket and stream them down per-connection instead of embedding them
// in the ECU firmware image.
//
// Grounded on vango-go-vango/pkg/upload/s3_example.go's S3Store: the same
// aws.String/context.Context call shape around HeadObject and GetObject,
// generalized from "buffer an entire upload into memory" to "serve one
// byte range per upload-engine fetch call."
package s3pool

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/fieldkit/isovt/vtclient"
)

// Source pulls one S3 object's bytes on demand via ranged GetObject
// requests. vtclient.FetchFunc carries no context parameter, so the
// context a Source issues its S3 calls with is fixed at construction
// time rather than threaded through per fetch — the natural tradeoff of
// adapting a context-free callback contract to an SDK that wants one.
type Source struct {
	client *s3.Client
	bucket string
	key    string
	ctx    context.Context
}

// New resolves key's size via HeadObject and returns a Source ready to
// back vtclient.Client.RegisterChunkCallback, along with the declared
// total size RegisterChunkCallback needs.
func New(ctx context.Context, client *s3.Client, bucket, key string) (*Source, uint32, error) {
	head, err := client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("s3pool: head %s/%s: %w", bucket, key, err)
	}
	if head.ContentLength == nil {
		return nil, 0, fmt.Errorf("s3pool: %s/%s reported no content length", bucket, key)
	}
	return &Source{client: client, bucket: bucket, key: key, ctx: ctx}, uint32(*head.ContentLength), nil
}

// byteRange formats the HTTP Range value for an inclusive
// [byteOffset, byteOffset+length) span, the form S3's GetObjectInput.Range
// expects.
func byteRange(byteOffset, length uint32) string {
	return fmt.Sprintf("bytes=%d-%d", byteOffset, byteOffset+length-1)
}

// Fetch implements vtclient.FetchFunc: one ranged GetObject per call,
// reading exactly len(out) bytes starting at byteOffset.
func (s *Source) Fetch(byteOffset uint32, out []byte) bool {
	if len(out) == 0 {
		return true
	}
	result, err := s.client.GetObject(s.ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
		Range:  aws.String(byteRange(byteOffset, uint32(len(out)))),
	})
	if err != nil {
		return false
	}
	defer result.Body.Close()
	_, err = io.ReadFull(result.Body, out)
	return err == nil
}

// Register resolves key's size and installs it on client as the
// chunk-callback source for pool index, a one-call convenience over
// New + vtclient.Client.RegisterChunkCallback.
func Register(ctx context.Context, client *vtclient.Client, index uint8, version vtclient.VTVersion, s3Client *s3.Client, bucket, key string) error {
	src, totalSize, err := New(ctx, s3Client, bucket, key)
	if err != nil {
		return err
	}
	if !client.RegisterChunkCallback(index, version, totalSize, src.Fetch) {
		return fmt.Errorf("s3pool: RegisterChunkCallback rejected pool %d (version mismatch or registration window closed)", index)
	}
	return nil
}
