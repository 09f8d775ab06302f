// Package series turns the canonical record set into per-group monthly
// series ready for forecasting: grouping by area, state+area or a single
// collapsed key, summing duplicates, scaling rupees to lakhs and
// resampling to a strict gap-free month grid.
package series
