// Package classify turns pasted identifier lists into validated SKU/SPU
// pairs, rejects bad lines with a reason, partitions pairs by exclusion-set
// membership, and slices the excluded partition into ordered batches.
package classify
