// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package safeplots

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadService sends multipart uploads and returns the stored file URL.
type UploadService service

func (s *UploadService) Document(ctx context.Context, name string, r io.Reader, fields map[string]string) (*Upload, *Response, error) {
	return s.upload(ctx, "/upload/document", name, r, fields)
}

func (s *UploadService) PropertyImage(ctx context.Context, name string, r io.Reader) (*Upload, *Response, error) {
	return s.upload(ctx, "/upload/property-image", name, r, nil)
}

func (s *UploadService) PropertyVideo(ctx context.Context, name string, r io.Reader) (*Upload, *Response, error) {
	return s.upload(ctx, "/upload/property-video", name, r, nil)
}

func (s *UploadService) upload(ctx context.Context, endpoint, name string, r io.Reader, fields map[string]string) (*Upload, *Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, nil, err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, nil, fmt.Errorf("read upload %q: %w", name, err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, nil, err
	}

	req, err := s.client.NewRequest(ctx, http.MethodPost, endpoint, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Body = io.NopCloser(bytes.NewReader(buf.Bytes()))
	req.ContentLength = int64(buf.Len())
	req.Header.Set("Content-Type", mw.FormDataContentType())

	out := new(Upload)
	rs, err := s.client.Call(req, out)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message == MsgRequestFailed {
			apiErr.Message = MsgUploadFailed
		}
		return nil, rs, err
	}
	return out, rs, nil
}
