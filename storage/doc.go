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

// Package storage defines the persistence abstraction for knowledge
// entries and the binary serialization helpers shared by its backends.
//
// The EntryRepository interface is what the rest of the system depends on;
// the badger sub-package provides the production implementation. Entries
// are serialized with the mus format, and duplicate content is suppressed
// through the entries' content fingerprints.
package storage
