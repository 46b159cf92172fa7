// Copyright (c) 2025, The Agro24 Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package disease

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/agro24/agrod/pkg/defaults"
	cnserrors "github.com/agro24/agrod/pkg/errors"
	"github.com/agro24/agrod/pkg/serializer"
	"github.com/agro24/agrod/pkg/server"
)

// FormField is the multipart field carrying the image.
const FormField = "image"

const msgNoImage = "No image file provided"

// Response is the body of a successful detection.
type Response struct {
	Disease        string  `json:"disease" yaml:"disease"`
	Confidence     float64 `json:"confidence" yaml:"confidence"`
	ProcessingTime string  `json:"processing_time" yaml:"processing_time"`
}

// HandleDetectDisease serves POST /detect_disease.
func (c *Classifier) HandleDetectDisease(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// Add request-scoped timeout
	ctx, cancel := context.WithTimeout(r.Context(), defaults.DiseaseHandlerTimeout)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, defaults.MaxUploadBytes)
	if err := r.ParseMultipartForm(defaults.MaxMultipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			server.WriteError(w, r, http.StatusRequestEntityTooLarge, cnserrors.ErrCodeInvalidRequest,
				fmt.Sprintf("Image exceeds the %d byte upload limit", tooLarge.Limit))
			return
		}
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest, msgNoImage)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			if err := r.MultipartForm.RemoveAll(); err != nil {
				slog.Warn("failed to remove multipart files", "error", err)
			}
		}
	}()

	file, header, err := r.FormFile(FormField)
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest, msgNoImage)
		return
	}
	defer file.Close()

	slog.Debug("image received",
		"requestID", server.RequestID(r.Context()),
		"filename", header.Filename,
		"size", header.Size,
	)

	// The extension check runs before the body is read.
	if err := CheckExtension(header.Filename); err != nil {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeUnsupportedFormat, MsgInvalidFileType)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		server.WriteError(w, r, http.StatusInternalServerError, cnserrors.ErrCodeInternal,
			fmt.Sprintf("Error processing image: %v", err))
		return
	}

	pred, err := c.Classify(ctx, header.Filename, data)
	if err != nil {
		msg := err.Error()
		var se *cnserrors.StructuredError
		if errors.As(err, &se) {
			msg = se.Message
		}
		server.WriteError(w, r, http.StatusInternalServerError, cnserrors.CodeOf(err),
			"Error processing image: "+msg)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, Response{
		Disease:        pred.Label,
		Confidence:     pred.Confidence,
		ProcessingTime: fmt.Sprintf("%.2f seconds", time.Since(start).Seconds()),
	})
}
