// Package textsim provides the string metrics used by the ranking engine.
//
// All functions are pure and safe for concurrent use:
//
//   - Levenshtein and Similarity measure edit distance between two strings.
//   - Soundex and DoubleMetaphone map words to phonetic codes.
//   - NGramSimilarity compares the character n-gram sets of two strings.
//
// Lengths are measured in runes, never bytes.
package textsim
