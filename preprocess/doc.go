/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package preprocess turns a time-value series into a stream of window features
for approximate-match indexes.

A preprocessor slides a window over a source.Source and, for every window
position, produces an Identifier (start time, end time, window length) and an
aligned offset (the source index of the window's first element). Index builders
use identifiers for coarse matching and aligned offsets to read the raw window
back for exact distance computation.

# Window Types

	COUNT_FIXED  window k spans elements [k*step, k*step+range)
	TIME_FIXED   a window starting at element s ends at the first element at least
	             range time units after TimeAt(s); the next window starts at the
	             first element at least step time units after TimeAt(s)

Both share the Preprocessor interface, so callers drive them the same way:

	p, err := preprocess.NewCountFixed(src, 3, 2, true, true)
	for p.HasNext() {
		if err := p.ProcessNext(); err != nil {
			return err
		}
	}
	ids := p.LatestIdentifiers(16)
	offsets := p.LatestAlignedOffsets(16)
	p.Clear()

# Storage

With StoreIdentifier the identifiers are kept in a primitive int64 array and
LatestIdentifiers reads them back; without it they are recomputed from the
source on demand. Both return the same values. Aligned offsets are always
recomputed from the cursor; StoreAligned additionally records every offset in
an int32 array readable through StoredAligned.

# Fixed and Variable Sources

Over a fixed source the number of windows is computed once. Over a source that
implements source.Appendable, HasNext re-checks the live size on every call so
processing can resume as points arrive.

A preprocessor has exactly one writer and no internal locking.
*/
package preprocess
