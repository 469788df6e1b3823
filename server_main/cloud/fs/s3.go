// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"bytes"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"path"
)

type S3Filesystem struct {
	svc          *s3.S3
	staticBucket string
	prefix       string
}

// NewS3Filesystem uploads to the stage's static bucket. Files are put under prefix,
// so servers in different regions don't overwrite each other.
func NewS3Filesystem(session *session.Session, stage, prefix string) (*S3Filesystem, error) {
	return &S3Filesystem{
		svc:          s3.New(session),
		staticBucket: "cosmic-" + stage + "-static",
		prefix:       prefix,
	}, nil
}

// S3 guesses most content types wrong
var s3ContentTypes = map[string]string{
	".json": "application/json",
	".csv":  "text/csv",
}

func (s3Filesystem *S3Filesystem) UploadStaticFile(filename string, secondsCache int, data []byte) error {
	var contentType *string
	if mime, ok := s3ContentTypes[path.Ext(filename)]; ok {
		contentType = aws.String(mime)
	}

	_, err := s3Filesystem.svc.PutObject(&s3.PutObjectInput{
		Bucket:       aws.String(s3Filesystem.staticBucket),
		Key:          aws.String(path.Join(s3Filesystem.prefix, filename)),
		Body:         bytes.NewReader(data),
		CacheControl: aws.String(fmt.Sprintf("no-transform, public, max-age=%d", secondsCache)),
		ContentType:  contentType,
	})
	return err
}
