// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballotcsv reads ranked-choice ballots exported from Google Forms.

# File Layout

The first row is a header. Column 0 is the submission timestamp and every
other column is one candidate, titled "Question [Candidate Name]":

	Timestamp,Rank your choices [Ada],Rank your choices [Grace]
	2020/11/02 8:01:12 PM EST,2nd choice,1st choice
	2020/11/02 8:03:40 PM EST,1st choice,No preference

Candidate names are NFKC-normalized with whitespace collapsed.

# Cells

  - "Nth choice" ranks the candidate at ordinal N
  - the no-preference text (DefaultNoPreference, compared case-folded)
    leaves the candidate unranked
  - anything else, including a blank cell, also leaves it unranked

Only the order of ordinals matters; gaps are closed up. Two candidates with
the same ordinal keep their column order, so the first listed wins.

# Usage

	sheet, err := ballotcsv.ReadFile("president.csv", ballotcsv.Options{})
	fmt.Println(sheet.Candidates, len(sheet.Ballots), sheet.Empty)

A supervote file is read the same way and must list the same candidates:

	if err := ballotcsv.CheckCandidates(sheet.Candidates, exec.Candidates); err != nil {
		return err
	}
*/
package ballotcsv
