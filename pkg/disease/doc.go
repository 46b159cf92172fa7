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

// Package disease classifies plant disease from a leaf image.
//
// Classification runs in two validation stages. CheckExtension looks only at
// the claimed filename (.png, .jpg, .jpeg, any case) and rejects anything
// else before a byte is decoded. Decode then validates the content with the
// PNG and JPEG decoders, so a mislabeled file passes the first stage and
// fails at the second.
//
// Decoded images are flattened to RGB by dropping alpha (no compositing),
// resized on the shortest edge, center cropped, and normalized into a
// [1, 3, H, W] float32 tensor. The tensor is sent to a Model; RemoteModel
// speaks the KServe v2 REST inference protocol:
//
//	POST {endpoint}/v2/models/{name}/infer
//	GET  {endpoint}/v2/models/{name}/ready
//
// The returned logits go through softmax; the argmax class and its
// probability form the Prediction. Class names come from the id2label map
// of a Hugging Face config.json, with LABEL_<i> for unmapped indices.
package disease
