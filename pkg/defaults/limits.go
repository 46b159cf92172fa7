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

// Recommendation defaults.
const (
	// TopCrops is the number of crops returned by /crop_recommendation.
	TopCrops = 5

	// HoldoutFraction is the share of crop records held out to report accuracy.
	HoldoutFraction = 0.3

	// SplitSeed seeds the train/holdout shuffle so startup is reproducible.
	SplitSeed = 0
)

// Upload limits.
const (
	// MaxUploadBytes caps the multipart body accepted by /detect_disease.
	MaxUploadBytes = 16 << 20

	// MaxMultipartMemory is the part of an upload kept in memory before
	// spilling to temporary files.
	MaxMultipartMemory = 8 << 20

	// MaxImagePixels caps the decoded size of an uploaded image. A small
	// compressed file can declare enormous dimensions, so the header is
	// checked against this before decoding.
	MaxImagePixels = 1 << 25
)

// Dataset defaults.
const (
	// PriceSentinel marks "no price data" in the price table.
	PriceSentinel = -1.0

	// StateColumn, DistrictColumn and YearColumn name the key columns of the
	// district-level tables.
	StateColumn    = "State Name"
	DistrictColumn = "Dist Name"
	YearColumn     = "Year"

	// LabelColumn names the target column of the crop recommendation table.
	LabelColumn = "label"
)

// Image preprocessing defaults for a 224x224 MobileNetV2 processor.
const (
	ImageShortestEdge = 256
	ImageCropSize     = 224
	ImageMean         = 0.5
	ImageStd          = 0.5
)
