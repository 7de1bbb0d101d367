/*
Package idxsnap implements the storage layer of a search index: a fixed set of
sorted binary tables on top of a key-value store (Bolt, or an in-memory store
for tests), with codecs for every table's keys and values. Package snapshot
renders those tables as deterministic text for fixture-based tests.

# Technical Details

**Tables.**
Each table is a flat Bolt bucket named after the table (word_docids, main, ...).
Iteration is always in ascending byte order of keys.

**Main table.**
The main table holds settings and computed index-wide values under well-known
string keys. Structured values are msgpack with sorted map keys; document id
sets are plain roaring bitmaps; word lists are vellum FSTs. Per-field values
use the key name followed by the big-endian u16 field id.

## Binary encoding

**Document id sets**.
Plain sets are the roaring portable serialization. CBO ("cbo") sets store up
to 7 ids as raw little-endian u32s and switch to roaring above that; the
length of the value tells the two apart.

**Multi-part keys**.
Keys that start with words (word pairs, word positions) write each word
followed by a zero byte, then the fixed-width parts. Keys therefore sort by
the first word, then the second, then the number. Words never contain zero
bytes.

Keys that start with a document id use a _tuple encoding_: each component is
written verbatim, and the component lengths are appended at the end as
reverse uvarints, followed by a one-byte component count. The leading id is
fixed-width, so these keys sort by id.

**Facet keys**.
Facet keys are fixed layouts: field id (u16 BE), level (u8), then either an
ordered f64 pair (number facets), a normalized string (level 0 of string
facets) or a u32 pair (higher levels of string facets). A string facet key
whose level byte is zero is always a level-zero string key.
*/
package idxsnap
