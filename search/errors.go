// Copyright 2025 Candor Labs
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


package search

import "errors"

var (
	// ErrStoreRequired is returned when an entry store is not provided.
	ErrStoreRequired = errors.New("entry store required")

	// ErrDuplicateID is returned when two entries share an ID.
	ErrDuplicateID = errors.New("duplicate entry id")

	// ErrInvalidWeights is returned when search weights are not all positive.
	ErrInvalidWeights = errors.New("search weights must be positive")
)
