// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audit

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-stv/models"
)

// NewRunID returns a random identifier for one tabulation run, used to
// correlate log lines and reports.
func NewRunID() string {
	return uuid.NewString()
}

// Digest hashes the candidate list and every ballot (timestamp, weight,
// rankings) in order. Two runs over the same inputs produce the same
// digest, so a reproduced count can be checked against the original.
func Digest(candidates []string, ballots []models.Ballot) string {
	h := sha256.New()
	for _, c := range candidates {
		fmt.Fprintf(h, "c:%s\n", c)
	}
	for _, b := range ballots {
		ranks := make([]string, len(b.Rankings))
		for i, r := range b.Rankings {
			ranks[i] = strconv.Itoa(r)
		}
		fmt.Fprintf(h, "b:%q\t%s\t%s\n", b.Timestamp, b.Weight.String(), strings.Join(ranks, ","))
	}
	return hex.EncodeToString(h.Sum(nil))
}

const digestAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ShortDigest condenses a hex digest for display: the first 8 bytes, read
// as a big-endian integer, written in base 62. Shorter digests are
// zero-padded on the right.
func ShortDigest(digest string) string {
	raw, err := hex.DecodeString(digest)
	if err != nil || len(raw) == 0 {
		return ""
	}
	var prefix [8]byte
	copy(prefix[:], raw)
	n := binary.BigEndian.Uint64(prefix[:])

	// 62^11 > 2^64
	var buf [11]byte
	i := len(buf)
	for {
		i--
		buf[i] = digestAlphabet[n%62]
		n /= 62
		if n == 0 {
			break
		}
	}
	return string(buf[i:])
}
