//Package editdist implements the banded Landau-Vishkin prefix
//edit-distance kernel used by overlap correction: align a read A against a
//prefix of a target T within an error budget, falling back to the
//highest-scoring branch-point alignment when the budget is exceeded.
//WorkAreas are not safe for concurrent use; build one per worker goroutine.
package editdist
