// Package kmer provides k-mer profile extraction for DNA sequences.
//
// A Profile is the frequency multiset of the length-k substrings of a
// sequence, restricted to the unambiguous bases {A, C, G, T}. Windows
// containing any other byte (including the ambiguity code N) are dropped
// entirely rather than substituted, so a profile never contains a k-mer
// outside the ACGT alphabet.
package kmer

import "strings"

// Profile is a k-mer frequency table. Keys are k-mers over {A,C,G,T},
// values are occurrence counts.
type Profile map[string]int

// Extract builds the k-mer profile of sequence.
//
// The sequence is uppercased and trimmed of surrounding whitespace before
// the sliding window runs, so "  atgc " and "ATGC" yield identical
// profiles. A sequence shorter than k, or one whose every window touches
// an invalid base, yields an empty (non-nil) profile.
//
// k must be positive; Extract panics otherwise. Callers are expected to
// validate k once at configuration time (see engine.Options).
func Extract(sequence string, k int) Profile {
	if k <= 0 {
		panic("kmer: non-positive k")
	}

	seq := strings.ToUpper(strings.TrimSpace(sequence))
	profile := make(Profile)

	for i := 0; i+k <= len(seq); i++ {
		window := seq[i : i+k]
		if !validBases(window) {
			continue
		}
		profile[window]++
	}

	return profile
}

// validBases reports whether every byte of s is one of A, C, G, T.
func validBases(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return false
		}
	}
	return true
}

// Distinct returns the number of unique k-mers in the profile, which is
// the key count rather than the sum of occurrences.
func (p Profile) Distinct() int {
	return len(p)
}

// Total returns the total number of k-mer occurrences in the profile.
func (p Profile) Total() int {
	n := 0
	for _, c := range p {
		n += c
	}
	return n
}

// Merge adds every count of other into p. Used to accumulate multiple
// reference sequences of the same species into a single profile.
func (p Profile) Merge(other Profile) {
	for kmer, count := range other {
		p[kmer] += count
	}
}
