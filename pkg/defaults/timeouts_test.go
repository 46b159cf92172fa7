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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Handler timeouts
		{"DiseaseHandlerTimeout", DiseaseHandlerTimeout, 10 * time.Second, 120 * time.Second},
		{"InferenceTimeout", InferenceTimeout, 5 * time.Second, 90 * time.Second},

		// Server timeouts
		{"ServerReadTimeout", ServerReadTimeout, 5 * time.Second, 60 * time.Second},
		{"ServerWriteTimeout", ServerWriteTimeout, 15 * time.Second, 180 * time.Second},
		{"ServerIdleTimeout", ServerIdleTimeout, 30 * time.Second, 300 * time.Second},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 10 * time.Second, 60 * time.Second},

		// Startup
		{"StartupTimeout", StartupTimeout, 30 * time.Second, 10 * time.Minute},
		{"ModelReadyTimeout", ModelReadyTimeout, 1 * time.Second, 60 * time.Second},

		// HTTP client timeouts
		{"HTTPClientTimeout", HTTPClientTimeout, 10 * time.Second, 60 * time.Second},
		{"HTTPConnectTimeout", HTTPConnectTimeout, 1 * time.Second, 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) exceeds maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestTimeoutRelationships(t *testing.T) {
	if InferenceTimeout >= DiseaseHandlerTimeout {
		t.Errorf("InferenceTimeout (%v) should be less than DiseaseHandlerTimeout (%v)",
			InferenceTimeout, DiseaseHandlerTimeout)
	}
	if DiseaseHandlerTimeout >= ServerWriteTimeout {
		t.Errorf("DiseaseHandlerTimeout (%v) should be less than ServerWriteTimeout (%v)",
			DiseaseHandlerTimeout, ServerWriteTimeout)
	}
	if ServerReadHeaderTimeout >= ServerReadTimeout {
		t.Errorf("ServerReadHeaderTimeout (%v) should be less than ServerReadTimeout (%v)",
			ServerReadHeaderTimeout, ServerReadTimeout)
	}
}

func TestLimits(t *testing.T) {
	if TopCrops != 5 {
		t.Errorf("TopCrops = %d, want 5", TopCrops)
	}
	if MaxMultipartMemory > MaxUploadBytes {
		t.Errorf("MaxMultipartMemory (%d) should not exceed MaxUploadBytes (%d)", MaxMultipartMemory, MaxUploadBytes)
	}
	if HoldoutFraction <= 0 || HoldoutFraction >= 1 {
		t.Errorf("HoldoutFraction = %v, want (0, 1)", HoldoutFraction)
	}
	if ImageCropSize > ImageShortestEdge {
		t.Errorf("ImageCropSize (%d) should not exceed ImageShortestEdge (%d)", ImageCropSize, ImageShortestEdge)
	}
}
