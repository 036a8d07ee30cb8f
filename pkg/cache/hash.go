// Copyright 2026 KrakLabs
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
//
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash/v2"
)

// HashModTime computes the 64-bit staleness hash for a file: xxhash over
// its modification time, encoded as 8 little-endian bytes of the Unix
// nanosecond value. Two runs over an unchanged file produce the identical
// hash; any mtime change (content edit, touch) changes it.
func HashModTime(t time.Time) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(t.UnixNano()))
	return xxhash.Sum64(buf[:])
}
