// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package audit provides identifiers and digests that make a count
verifiable after the fact.

# Run IDs

	runID := audit.NewRunID() // random UUID, attached to every log line

# Ballot Digests

Digest hashes the candidate list and every ballot with SHA-256:

	digest := audit.Digest(candidates, ballots)
	fmt.Println(audit.ShortDigest(digest)) // e.g. "3kZq9TfA0bX"

The digest covers timestamps, weights, and rankings in input order, so it
changes if any ballot is added, removed, reordered, or reweighted. Printed
next to the seed, it lets anyone rerunning the count confirm they used the
same ballots.
*/
package audit
