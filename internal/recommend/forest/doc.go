// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

/*
Package forest implements a random forest binary classifier: bagged CART
trees split on Gini impurity, combined by averaging their leaf probabilities.

Each tree is grown on a bootstrap sample of the rows. At every node the
features are visited in random order; after MaxFeatures non-constant features
have been examined the search stops as soon as a valid split exists. Split
thresholds lie halfway between consecutive distinct values, and rows go left
when their value is less than or equal to the threshold. Leaves store the
fraction of positive rows they hold.

Fitting is deterministic: tree i uses a generator seeded Seed+i, so the same
rows, labels and Config give the same forest for any number of Jobs.

	f, err := forest.Fit(ctx, rows, labels, forest.DefaultConfig())
	if err != nil {
	    return err
	}
	label, vote, err := f.Classify(vector)

Rows not drawn into a tree's sample are scored by that tree; OOBScore
reports accuracy, precision, recall and AUC over those predictions.
*/
package forest
